// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

// Package mpvplayer plays tracks through libmpv, one instance per track.
package mpvplayer

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/spezifisch/tunebox/catalog"
	"github.com/spezifisch/tunebox/logger"
	"github.com/spezifisch/tunebox/playback"
	"github.com/supersonic-app/go-mpv"
)

var (
	openTimeout    = 10 * time.Second
	releaseTimeout = 2 * time.Second

	ErrNotLoaded = errors.New("mpv did not load the file")
)

type Opener struct {
	logger logger.LoggerInterface

	mu        sync.Mutex
	tmpDir    string
	extracted map[string]string
}

func NewOpener(logger logger.LoggerInterface) *Opener {
	return &Opener{
		logger:    logger,
		extracted: make(map[string]string),
	}
}

// Open creates a paused mpv instance and blocks until the file is loaded.
func (o *Opener) Open(track catalog.Track) (playback.Decoder, error) {
	path, err := o.localPath(track.Asset)
	if err != nil {
		return nil, err
	}

	instance := mpv.Create()
	for _, opt := range [][2]string{
		{"audio-display", "no"},
		{"video", "no"},
		{"pause", "yes"},
	} {
		if err := instance.SetOptionString(opt[0], opt[1]); err != nil {
			instance.TerminateDestroy()
			return nil, fmt.Errorf("mpv option %s: %w", opt[0], err)
		}
	}
	if err := instance.Initialize(); err != nil {
		instance.TerminateDestroy()
		return nil, fmt.Errorf("mpv init: %w", err)
	}

	p := &Player{
		instance: instance,
		logger:   o.logger,
		name:     track.Asset.Name(),
		path:     path,
		done:     make(chan struct{}),
	}
	opened := make(chan error, 1)
	go p.eventLoop(opened)

	if err := instance.Command([]string{"loadfile", path}); err != nil {
		p.destroy()
		return nil, fmt.Errorf("loadfile %s: %w", p.name, err)
	}

	select {
	case err = <-opened:
	case <-time.After(openTimeout):
		err = fmt.Errorf("timed out after %s", openTimeout)
	}
	if err != nil {
		p.destroy()
		return nil, fmt.Errorf("open %s: %w", p.name, err)
	}
	return p, nil
}

// Close removes files extracted from embedded assets.
func (o *Opener) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.tmpDir == "" {
		return nil
	}
	err := os.RemoveAll(o.tmpDir)
	o.tmpDir = ""
	o.extracted = make(map[string]string)
	return err
}

type Player struct {
	instance *mpv.Mpv
	logger   logger.LoggerInterface
	name     string
	path     string

	// closed by the event loop on shutdown
	done chan struct{}

	mu       sync.Mutex
	onDone   func()
	finished bool
	released bool
}

func (p *Player) invalid(op string) error {
	return fmt.Errorf("%s %s: %w", op, p.name, playback.ErrInvalidState)
}

func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.released {
		return p.invalid("start")
	}
	if err := p.instance.SetProperty("pause", mpv.FORMAT_FLAG, false); err != nil {
		return fmt.Errorf("unpause %s: %w", p.name, err)
	}
	if p.finished {
		// mpv goes idle at the end of a file
		if err := p.instance.Command([]string{"loadfile", p.path}); err != nil {
			return fmt.Errorf("reload %s: %w", p.name, err)
		}
		p.finished = false
	}
	return nil
}

func (p *Player) Pause() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.released {
		return p.invalid("pause")
	}
	return p.instance.SetProperty("pause", mpv.FORMAT_FLAG, true)
}

func (p *Player) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.released || p.finished {
		return false
	}
	paused, err := p.getPropertyBool("pause")
	if err != nil {
		p.logger.PrintError("mpv pause", err)
		return false
	}
	return !paused
}

func (p *Player) Seek(positionMs int64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.released {
		return p.invalid("seek")
	}
	if positionMs < 0 {
		positionMs = 0
	}
	return p.instance.Command([]string{"seek", secondsArg(positionMs), "absolute"})
}

func (p *Player) Position() (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.released {
		return 0, p.invalid("position")
	}
	return p.getPropertyMillis("time-pos")
}

func (p *Player) Duration() (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.released {
		return 0, p.invalid("duration")
	}
	return p.getPropertyMillis("duration")
}

func (p *Player) OnCompletion(cb func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onDone = cb
}

// Release quits mpv and waits for the event loop before destroying the
// handle. The end-of-file event caused by quitting is swallowed.
func (p *Player) Release() error {
	p.mu.Lock()
	if p.released {
		p.mu.Unlock()
		return nil
	}
	p.released = true
	p.mu.Unlock()

	return p.destroy()
}

func (p *Player) destroy() error {
	if err := p.instance.Command([]string{"quit"}); err != nil {
		p.logger.PrintError("mpv quit", err)
	}

	select {
	case <-p.done:
		p.instance.TerminateDestroy()
		return nil
	case <-time.After(releaseTimeout):
		// the handle is leaked; destroying it under a running WaitEvent crashes
		return fmt.Errorf("release %s: event loop did not stop within %s", p.name, releaseTimeout)
	}
}
