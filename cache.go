// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"sync"

	"github.com/spezifisch/tunebox/logger"
)

// Cache fetches assets and holds a copy, returning them on request.
// A Cache is composed of four mechanisms:
//
// 1. a zero object
// 2. a function for fetching assets
// 3. a function for invalidating assets
// 4. a call-back function for when an asset is fetched
//
// When an asset is requested, Cache returns the asset if it is cached.
// Otherwise, it returns the zero object, and queues up a fetch for the object
// in the background. When the fetch is complete, the callback function is
// called, allowing the caller to get the real asset. The invalidation
// function bounds the cache size by naming a key to drop.
//
// Caches are indexed by strings; tunebox keys album art by asset name.
type Cache[T any] struct {
	mu sync.Mutex

	zero       T
	cache      map[string]T
	pending    map[string]struct{}
	pipeline   chan string
	closed     bool
	cacheCheck func(string) string
}

// NewCache sets up a new cache, given
//
//   - a zeroValue, returned immediately on cache misses
//   - a fetcher, which can be a long-running function that loads assets.
//     fetcher should take a key ID and return an asset, or an error.
//   - a fetchedItem call-back function, which will be called when a requested asset is available. It
//     will be called with the asset ID, and the loaded asset.
//   - a cacheCheck function which, when given a key that was just used, returns a key to remove from the
//     cache, or the empty string if nothing is to be removed.
//   - a logger, used for reporting errors returned by the fetching function
//
// cacheCheck is always called with the cache locked.
func NewCache[T any](
	zeroValue T,
	fetcher func(string) (T, error),
	fetchedItem func(string, T),
	cacheCheck func(string) string,
	logger logger.LoggerInterface,
) *Cache[T] {
	c := &Cache[T]{
		zero:       zeroValue,
		cache:      make(map[string]T),
		pending:    make(map[string]struct{}),
		pipeline:   make(chan string, 1000),
		cacheCheck: cacheCheck,
	}

	go func() {
		for key := range c.pipeline {
			asset, err := fetcher(key)

			c.mu.Lock()
			delete(c.pending, key)
			if c.closed {
				c.mu.Unlock()
				continue
			}
			if err != nil {
				c.mu.Unlock()
				logger.Printf("error fetching asset %s: %s", key, err)
				continue
			}
			c.cache[key] = asset
			if remove := c.cacheCheck(key); remove != "" && remove != key {
				delete(c.cache, remove)
			}
			c.mu.Unlock()

			fetchedItem(key, asset)
		}
	}()

	return c
}

// Get returns a cached asset, or the zero asset on a cache miss.
// On a cache miss, the requested asset is queued for fetching unless a fetch
// for it is already underway.
func (c *Cache[T]) Get(key string) T {
	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := c.cache[key]; ok {
		// refresh the key's age
		c.cacheCheck(key)
		return v
	}
	if c.closed {
		return c.zero
	}
	if _, ok := c.pending[key]; ok {
		return c.zero
	}

	select {
	case c.pipeline <- key:
		c.pending[key] = struct{}{}
	default:
		// queue full, a later Get retries
	}
	return c.zero
}

// Len reports how many assets are held.
func (c *Cache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.cache)
}

// Close clears the cache and stops the fetch goroutine. Later Gets return
// the zero asset. Close is idempotent.
func (c *Cache[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	for k := range c.cache {
		delete(c.cache, k)
	}
	close(c.pipeline)
}
