// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package errors_test

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"testing"

	"github.com/grailbio/intervalidus/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError(t *testing.T) {
	cause := errors.New("no such record")
	e1 := errors.E(errors.NotFound, "looking up interval", cause)
	assert.Equal(t, "looking up interval: not found: no such record", e1.Error())

	e2 := errors.E(cause)
	assert.Equal(t, "no such record", e2.Error())

	assert.True(t, errors.Is(errors.NotFound, e1))
}

func TestErrorChaining(t *testing.T) {
	err := errors.E("failed to subdivide node", errors.InvariantViolated)
	err = errors.E(errors.Retriable, "cannot proceed", err)
	assert.Equal(t,
		"cannot proceed: invariant violated (retriable):\n\tfailed to subdivide node",
		err.Error())
}

type temporaryError string

func (t temporaryError) Error() string   { return string(t) }
func (t temporaryError) Temporary() bool { return true }

func TestIsTemporary(t *testing.T) {
	for _, c := range []struct {
		err       error
		temporary bool
	}{
		{errors.New("no idea"), false},
		{temporaryError(""), true},
		{errors.E(temporaryError(""), errors.NotFound), true},
		{errors.E(errors.Temporary, "retry this"), true},
		{errors.E("no idea"), false},
		{errors.E(errors.Fatal, "fatal error"), false},
		{errors.E(errors.Retriable, "this one you can retry"), true},
		{errors.E(fmt.Errorf("test")), false},
	} {
		assert.Equal(t, c.temporary, errors.IsTemporary(c.err), "error %v", c.err)
		if c.temporary {
			continue
		}
		assert.True(t, errors.IsTemporary(errors.E(c.err, errors.Temporary)), "error %v: temporary conversion failed", c.err)
	}
}

func TestGobEncoding(t *testing.T) {
	err := errors.E("failed to open store", errors.NotFound)
	err = errors.E(errors.Fatal, "cannot proceed", err)

	var b bytes.Buffer
	require.NoError(t, gob.NewEncoder(&b).Encode(errors.Recover(err)))
	e2 := new(errors.Error)
	require.NoError(t, gob.NewDecoder(&b).Decode(e2))
	assert.True(t, errors.Match(err, e2))
}

func TestMessage(t *testing.T) {
	for _, c := range []struct {
		err     error
		message string
	}{
		{errors.E("hello"), "hello"},
		{errors.E("hello", "world"), "hello world"},
	} {
		assert.Equal(t, c.message, c.err.Error())
	}
}

// TestEKindInheritsFromCauseChain ensures that wrapping an *Error without
// specifying a new Kind inherits the cause's Kind.
func TestEKindInheritsFromCauseChain(t *testing.T) {
	cause := errors.E("disjoint write", errors.DisjointnessViolated)
	err := errors.E("retrying", cause)
	assert.Equal(t, errors.DisjointnessViolated, err.(*errors.Error).Kind)
}
