// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

// Package beepplayer plays tracks in-process through the beep speaker.
package beepplayer

import (
	"bytes"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

var (
	// ErrAudioUnavailable is returned by builds without native audio output.
	ErrAudioUnavailable  = errors.New("audio output not available in this build")
	ErrUnsupportedFormat = errors.New("unsupported audio format")
)

// speakerRate is the fixed output rate; every track is resampled to it.
const speakerRate = beep.SampleRate(44100)

// decode picks the beep decoder by file extension. The data stays in memory
// so the returned streamer can seek.
func decode(name string, data []byte) (beep.StreamSeekCloser, beep.Format, error) {
	r := nopCloser{bytes.NewReader(data)}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
		err      error
	)
	switch strings.ToLower(path.Ext(name)) {
	case ".flac":
		streamer, format, err = flac.Decode(r)
	case ".mp3":
		streamer, format, err = mp3.Decode(r)
	case ".wav":
		streamer, format, err = wav.Decode(r)
	case ".ogg":
		streamer, format, err = vorbis.Decode(r)
	default:
		return nil, beep.Format{}, fmt.Errorf("decode %s: %w", name, ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("decode %s: %w", name, err)
	}
	return streamer, format, nil
}

func toMillis(rate beep.SampleRate, samples int) int64 {
	return rate.D(samples).Milliseconds()
}

func toSamples(rate beep.SampleRate, ms int64) int {
	return rate.N(time.Duration(ms) * time.Millisecond)
}

// clamp keeps a seek target inside the stream.
func clamp(n, length int) int {
	if n < 0 {
		return 0
	}
	if n > length {
		return length
	}
	return n
}

// nopCloser wraps a bytes.Reader to implement io.ReadCloser.
type nopCloser struct {
	*bytes.Reader
}

func (nopCloser) Close() error { return nil }
