// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/spezifisch/tunebox/assets"
	"github.com/spezifisch/tunebox/catalog"
	"github.com/spezifisch/tunebox/logger"
)

func decodeArt(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode art: %w", err)
	}
	return img, nil
}

// placeholderArt never fails: a broken bundled image degrades to one
// transparent pixel.
func placeholderArt() image.Image {
	img, err := decodeArt(assets.Placeholder())
	if err != nil {
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}
	return img
}

// newArtFetcher resolves asset names to decoded album art. Missing or
// undecodable pictures yield the placeholder instead of an error, so the
// art view always has something to show.
func newArtFetcher(tracks []catalog.Track, placeholder image.Image, logger logger.LoggerInterface) func(string) (image.Image, error) {
	byName := make(map[string]catalog.Asset, len(tracks))
	for _, t := range tracks {
		byName[t.Asset.Name()] = t.Asset
	}

	return func(name string) (image.Image, error) {
		asset, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown asset %q", name)
		}

		data, err := catalog.Picture(asset)
		if err != nil {
			if !errors.Is(err, catalog.ErrNoPicture) {
				logger.PrintError("album art "+name, err)
			}
			return placeholder, nil
		}
		img, err := decodeArt(data)
		if err != nil {
			logger.PrintError("album art "+name, err)
			return placeholder, nil
		}
		return img, nil
	}
}
