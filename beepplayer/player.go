// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

//go:build (linux && cgo) || windows || darwin

package beepplayer

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/spezifisch/tunebox/catalog"
	"github.com/spezifisch/tunebox/playback"
)

// AudioAvailable indicates whether audio playback is supported in this build.
const AudioAvailable = true

var (
	speakerOnce sync.Once
	speakerErr  error
)

func initSpeaker() error {
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(speakerRate, speakerRate.N(time.Second/10))
	})
	return speakerErr
}

type Opener struct{}

func NewOpener() *Opener {
	return &Opener{}
}

// Open decodes the whole track and queues it on the speaker, paused at 0.
func (o *Opener) Open(track catalog.Track) (playback.Decoder, error) {
	data, err := track.Asset.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", track.Asset.Name(), err)
	}
	streamer, format, err := decode(track.Asset.Name(), data)
	if err != nil {
		return nil, err
	}
	if err := initSpeaker(); err != nil {
		streamer.Close()
		return nil, fmt.Errorf("speaker init: %w", err)
	}

	p := &Player{
		name:     track.Asset.Name(),
		streamer: streamer,
		format:   format,
	}
	p.mu.Lock()
	p.playLocked(true)
	p.mu.Unlock()
	return p, nil
}

// Player is one decoded track attached to the speaker mixer.
type Player struct {
	mu sync.Mutex

	name     string
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	onDone   func()
	finished bool
	released bool
}

// playLocked attaches a fresh streamer chain to the mixer.
func (p *Player) playLocked(paused bool) {
	var s beep.Streamer = p.streamer
	if p.format.SampleRate != speakerRate {
		s = beep.Resample(4, p.format.SampleRate, speakerRate, p.streamer)
	}
	ctrl := &beep.Ctrl{Streamer: s, Paused: paused}
	p.ctrl = ctrl
	p.finished = false

	speaker.Play(beep.Seq(ctrl, beep.Callback(func() {
		// runs inside the speaker lock
		go p.complete(ctrl)
	})))
}

func (p *Player) complete(ctrl *beep.Ctrl) {
	p.mu.Lock()
	if p.released || p.ctrl != ctrl {
		p.mu.Unlock()
		return
	}
	p.finished = true
	cb := p.onDone
	p.mu.Unlock()

	if cb != nil {
		cb()
	}
}

func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.released {
		return fmt.Errorf("start %s: %w", p.name, playback.ErrInvalidState)
	}
	if p.finished {
		speaker.Lock()
		if p.streamer.Position() >= p.streamer.Len() {
			if err := p.streamer.Seek(0); err != nil {
				speaker.Unlock()
				return fmt.Errorf("rewind %s: %w", p.name, err)
			}
		}
		speaker.Unlock()
		p.playLocked(false)
		return nil
	}

	speaker.Lock()
	p.ctrl.Paused = false
	speaker.Unlock()
	return nil
}

func (p *Player) Pause() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.released {
		return fmt.Errorf("pause %s: %w", p.name, playback.ErrInvalidState)
	}
	speaker.Lock()
	p.ctrl.Paused = true
	speaker.Unlock()
	return nil
}

func (p *Player) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.released || p.finished {
		return false
	}
	speaker.Lock()
	defer speaker.Unlock()
	return !p.ctrl.Paused
}

func (p *Player) Seek(positionMs int64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.released {
		return fmt.Errorf("seek %s: %w", p.name, playback.ErrInvalidState)
	}
	speaker.Lock()
	defer speaker.Unlock()

	n := clamp(toSamples(p.format.SampleRate, positionMs), p.streamer.Len())
	return p.streamer.Seek(n)
}

func (p *Player) Position() (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.released {
		return 0, playback.ErrInvalidState
	}
	speaker.Lock()
	pos := p.streamer.Position()
	speaker.Unlock()
	return toMillis(p.format.SampleRate, pos), nil
}

func (p *Player) Duration() (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.released {
		return 0, playback.ErrInvalidState
	}
	return toMillis(p.format.SampleRate, p.streamer.Len()), nil
}

func (p *Player) OnCompletion(cb func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onDone = cb
}

// Release detaches the track from the mixer. The completion this triggers
// is swallowed.
func (p *Player) Release() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.released {
		return nil
	}
	p.released = true

	speaker.Lock()
	p.ctrl.Streamer = nil
	speaker.Unlock()
	return p.streamer.Close()
}
