// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/spezifisch/tunebox/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEviction(string) string { return "" }

// fetched collects callback deliveries.
type fetched struct {
	mu   sync.Mutex
	keys []string
	ch   chan string
}

func newFetched() *fetched {
	return &fetched{ch: make(chan string, 16)}
}

func (f *fetched) add(key string, _ string) {
	f.mu.Lock()
	f.keys = append(f.keys, key)
	f.mu.Unlock()
	f.ch <- key
}

func (f *fetched) wait(t *testing.T) string {
	t.Helper()
	select {
	case key := <-f.ch:
		return key
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for fetch")
		return ""
	}
}

func TestNewCache(t *testing.T) {
	logger := logger.Logger{}

	t.Run("basic string cache creation", func(t *testing.T) {
		zero := "empty"
		c := NewCache(
			zero,
			func(k string) (string, error) { return zero, nil },
			func(k, v string) {},
			noEviction,
			&logger,
		)
		defer c.Close()
		assert.Equal(t, zero, c.zero)
		assert.NotNil(t, c.cache)
		assert.Equal(t, 0, c.Len())
		assert.NotNil(t, c.pipeline)
	})

	t.Run("different data type cache creation", func(t *testing.T) {
		zero := -1
		c := NewCache(
			zero,
			func(k string) (int, error) { return zero, nil },
			func(k string, v int) {},
			noEviction,
			&logger,
		)
		defer c.Close()
		assert.Equal(t, zero, c.zero)
		assert.Equal(t, 0, c.Len())
	})
}

func TestGet(t *testing.T) {
	logger := logger.Logger{}
	zero := "zero"
	f := newFetched()
	c := NewCache(
		zero,
		func(k string) (string, error) { return "value of " + k, nil },
		f.add,
		noEviction,
		&logger,
	)
	defer c.Close()

	t.Run("miss returns zero and fetches", func(t *testing.T) {
		assert.Equal(t, zero, c.Get("song1.flac"))
		assert.Equal(t, "song1.flac", f.wait(t))
	})

	t.Run("hit returns the fetched value", func(t *testing.T) {
		assert.Equal(t, "value of song1.flac", c.Get("song1.flac"))
		assert.Equal(t, 1, c.Len())
	})
}

func TestGetFetchesOnce(t *testing.T) {
	logger := logger.Logger{}
	release := make(chan struct{})
	var mu sync.Mutex
	calls := 0
	f := newFetched()
	c := NewCache(
		"",
		func(k string) (string, error) {
			mu.Lock()
			calls++
			mu.Unlock()
			<-release
			return k, nil
		},
		f.add,
		noEviction,
		&logger,
	)
	defer c.Close()

	for i := 0; i < 5; i++ {
		c.Get("song2.flac")
	}
	close(release)
	f.wait(t)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, calls)
}

func TestFetchError(t *testing.T) {
	logger := logger.Init()
	f := newFetched()
	done := make(chan struct{}, 1)
	c := NewCache(
		"zero",
		func(k string) (string, error) {
			done <- struct{}{}
			return "", errors.New("boom")
		},
		f.add,
		noEviction,
		logger,
	)
	defer c.Close()

	assert.Equal(t, "zero", c.Get("song3.flac"))
	<-done
	select {
	case line := <-logger.Prints:
		assert.Contains(t, line, "song3.flac")
	case <-time.After(2 * time.Second):
		t.Fatal("error was not logged")
	}
	assert.Equal(t, 0, c.Len())
	assert.Empty(t, f.ch)
}

func TestCacheWithLRU(t *testing.T) {
	logger := logger.Logger{}
	lru := NewLRU(2)
	f := newFetched()
	c := NewCache(
		"",
		func(k string) (string, error) { return k, nil },
		f.add,
		lru.Touch,
		&logger,
	)
	defer c.Close()

	for _, key := range []string{"a", "b", "c"} {
		c.Get(key)
		require.Equal(t, key, f.wait(t))
	}

	assert.Equal(t, 2, c.Len())
	// "a" was evicted, so this is a miss again
	assert.Equal(t, "", c.Get("a"))
	assert.Equal(t, "a", f.wait(t))
	assert.Equal(t, "c", c.Get("c"))
}

func TestClose(t *testing.T) {
	logger := logger.Logger{}
	f := newFetched()
	c := NewCache(
		"zero",
		func(k string) (string, error) { return k, nil },
		f.add,
		noEviction,
		&logger,
	)

	c.Get("x")
	f.wait(t)
	require.Equal(t, "x", c.Get("x"))

	c.Close()
	assert.Equal(t, 0, c.Len())
	assert.NotPanics(t, func() {
		assert.Equal(t, "zero", c.Get("x"))
		assert.Equal(t, "zero", c.Get("y"))
		c.Close()
	})
}
