// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package remote

import "github.com/spezifisch/tunebox/catalog"

// ControlledPlayer is the part of the playback controller a remote drives.
// Positions are in milliseconds.
type ControlledPlayer interface {
	Resume()
	Pause()
	TogglePlayPause()
	Next()
	Previous()

	Seek(positionMs int64) error
	CurrentPosition() int64
	Duration() int64

	IsPlaying() bool
	CurrentIndex() int
	CurrentTrack() (catalog.Track, bool)
}

type TrackInterface interface {
	GetArtist() string
	GetTitle() string
	GetAlbum() string
}
