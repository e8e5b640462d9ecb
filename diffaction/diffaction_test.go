// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package diffaction_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/grailbio/intervalidus/diffaction"
)

func TestKindString(t *testing.T) {
	assert.Equal(t, "Create", diffaction.Create.String())
	assert.Equal(t, "Update", diffaction.Update.String())
	assert.Equal(t, "Delete", diffaction.Delete.String())
}

func TestActionFields(t *testing.T) {
	a := diffaction.Action[int, string]{Kind: diffaction.Update, Key: 1, Interval: 1, Value: "hi"}
	assert.Equal(t, diffaction.Update, a.Kind)
	assert.Equal(t, "hi", a.Value)
}
