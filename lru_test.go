// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLRUEvictsOldest(t *testing.T) {
	l := NewLRU(3)
	assert.Equal(t, "", l.Touch("a"))
	assert.Equal(t, "", l.Touch("b"))
	assert.Equal(t, "", l.Touch("c"))
	assert.Equal(t, "a", l.Touch("d"))
	assert.Equal(t, 3, l.Len())
}

func TestLRUTouchRefreshes(t *testing.T) {
	l := NewLRU(2)
	l.Touch("a")
	l.Touch("b")
	assert.Equal(t, "", l.Touch("a"))
	assert.Equal(t, "b", l.Touch("c"))
	assert.Equal(t, "a", l.Touch("d"))
}

func TestLRUMinimumSize(t *testing.T) {
	l := NewLRU(0)
	assert.Equal(t, "", l.Touch("a"))
	assert.Equal(t, "a", l.Touch("b"))
	assert.Equal(t, "", l.Touch("b"))
	assert.Equal(t, 1, l.Len())
}
