// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

// Package assets holds the audio files and images compiled into the binary.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed tracks/*.flac
var tracks embed.FS

//go:embed placeholder.png
var placeholder []byte

// trackNames is the playback order of the bundled tracks.
var trackNames = []string{
	"song1.flac",
	"song2.flac",
	"song3.flac",
	"song4.flac",
	"song5.flac",
}

// Tracks returns the bundled tracks rooted at their directory, so names from
// TrackNames open directly.
func Tracks() fs.FS {
	sub, err := fs.Sub(tracks, "tracks")
	if err != nil {
		panic(err)
	}
	return sub
}

func TrackNames() []string {
	names := make([]string, len(trackNames))
	copy(names, trackNames)
	return names
}

// Placeholder is the PNG shown when a track has no usable album art.
func Placeholder() []byte {
	return placeholder
}
