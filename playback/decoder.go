// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package playback

import (
	"errors"

	"github.com/spezifisch/tunebox/catalog"
	"github.com/spezifisch/tunebox/logger"
)

// ErrInvalidState is wrapped by decoders when an operation is not allowed in
// their current state, e.g. anything after Release.
var ErrInvalidState = errors.New("decoder in invalid state")

// Decoder is one live, playable audio instance bound to a single track.
// Positions and durations are in milliseconds.
type Decoder interface {
	Start() error
	Pause() error
	IsPlaying() bool
	Seek(positionMs int64) error
	Position() (int64, error)
	Duration() (int64, error)

	// OnCompletion registers the end-of-track callback. Implementations
	// invoke it on their own goroutine.
	OnCompletion(cb func())

	Release() error
}

// Opener creates a prepared, paused decoder for a track.
type Opener interface {
	Open(track catalog.Track) (Decoder, error)
}

type OpenerFunc func(track catalog.Track) (Decoder, error)

func (f OpenerFunc) Open(track catalog.Track) (Decoder, error) {
	return f(track)
}

// decoderSlot owns the single live decoder.
type decoderSlot struct {
	decoder Decoder
	logger  logger.LoggerInterface
}

// replace releases the live decoder before open runs, so two instances
// never coexist. On failure the slot stays empty.
func (s *decoderSlot) replace(open func() (Decoder, error)) (Decoder, error) {
	s.release()
	d, err := open()
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, errors.New("opener returned no decoder")
	}
	s.decoder = d
	return d, nil
}

// release is idempotent. Release errors are logged; the instance is gone
// either way.
func (s *decoderSlot) release() {
	if s.decoder == nil {
		return
	}
	d := s.decoder
	s.decoder = nil
	if err := d.Release(); err != nil && s.logger != nil {
		s.logger.PrintError("decoder release", err)
	}
}

func (s *decoderSlot) live() Decoder {
	return s.decoder
}
