// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"testing"

	"github.com/spezifisch/tunebox/assets"
	"github.com/spezifisch/tunebox/catalog"
	"github.com/spezifisch/tunebox/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceholderArt(t *testing.T) {
	img := placeholderArt()
	require.NotNil(t, img)
	assert.Equal(t, 32, img.Bounds().Dx())
}

func TestDecodeArtRejectsGarbage(t *testing.T) {
	_, err := decodeArt([]byte("not an image"))
	assert.Error(t, err)
}

func TestArtFetcherBundledTracks(t *testing.T) {
	logger := logger.Logger{}
	tracks := catalog.Load(assets.Tracks(), assets.TrackNames(), &logger)
	placeholder := placeholderArt()
	fetch := newArtFetcher(tracks, placeholder, &logger)

	withArt := map[string]bool{
		"song1.flac": true,
		"song2.flac": true,
		"song3.flac": false,
		"song4.flac": true,
		"song5.flac": false,
	}
	for name, hasArt := range withArt {
		img, err := fetch(name)
		require.NoError(t, err, name)
		require.NotNil(t, img, name)
		if hasArt {
			assert.NotSame(t, placeholder, img, name)
		} else {
			assert.Equal(t, placeholder, img, name)
		}
	}
}

func TestArtFetcherUnknownAsset(t *testing.T) {
	logger := logger.Logger{}
	fetch := newArtFetcher(nil, placeholderArt(), &logger)
	_, err := fetch("nope.flac")
	assert.Error(t, err)
}
