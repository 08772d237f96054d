// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

//go:build !((linux && cgo) || windows || darwin)

package beepplayer

import (
	"fmt"

	"github.com/spezifisch/tunebox/catalog"
	"github.com/spezifisch/tunebox/playback"
)

// AudioAvailable indicates whether audio playback is supported in this build.
// The speaker needs cgo on linux.
const AudioAvailable = false

type Opener struct{}

func NewOpener() *Opener {
	return &Opener{}
}

// Open still decodes, so format errors surface the same way as with audio.
func (o *Opener) Open(track catalog.Track) (playback.Decoder, error) {
	data, err := track.Asset.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", track.Asset.Name(), err)
	}
	streamer, _, err := decode(track.Asset.Name(), data)
	if err != nil {
		return nil, err
	}
	streamer.Close()
	return nil, fmt.Errorf("open %s: %w", track.Asset.Name(), ErrAudioUnavailable)
}
