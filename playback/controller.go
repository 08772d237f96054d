// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

// Package playback coordinates one decoder instance over an index-addressed
// track list and reports state changes to event consumers.
package playback

import (
	"errors"
	"sync"
	"time"

	"github.com/spezifisch/tunebox/catalog"
	"github.com/spezifisch/tunebox/logger"
)

const DefaultPollInterval = 200 * time.Millisecond

type State int

const (
	StateEmpty State = iota
	StatePaused
	StatePlaying
)

func (s State) String() string {
	switch s {
	case StatePaused:
		return "paused"
	case StatePlaying:
		return "playing"
	}
	return "empty"
}

type Option func(*Controller)

// WithPollInterval sets how often progress is sampled while playing.
// Non-positive values keep the default.
func WithPollInterval(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.interval = d
		}
	}
}

type Controller struct {
	mu sync.Mutex
	// held while delivering; events leave outbox in the order they were
	// queued under mu
	deliverMu sync.Mutex
	outbox    []UiEvent

	opener    Opener
	logger    logger.LoggerInterface
	consumers []EventConsumer
	interval  time.Duration

	tracks []catalog.Track
	index  int
	slot   decoderSlot
	poll   *poller
	closed bool

	// generation is bumped every time the slot changes, so completion
	// callbacks from replaced decoders are ignored
	generation uint64
}

func NewController(opener Opener, logger logger.LoggerInterface, opts ...Option) *Controller {
	c := &Controller{
		opener:   opener,
		logger:   logger,
		interval: DefaultPollInterval,
		slot:     decoderSlot{logger: logger},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) RegisterEventConsumer(consumer EventConsumer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.consumers = append(c.consumers, consumer)
}

// events collects notifications while the lock is held; they are delivered
// once it is released.
type events []UiEvent

func (e *events) add(typ UiEventType, data interface{}) {
	*e = append(*e, UiEvent{Type: typ, Data: data})
}

// queueLocked appends evs to the outbox. Must hold c.mu.
func (c *Controller) queueLocked(evs events) {
	c.outbox = append(c.outbox, evs...)
}

// deliver drains the outbox to every consumer. When it returns, everything
// queued before the call has been handed to the consumers.
func (c *Controller) deliver() {
	c.deliverMu.Lock()
	defer c.deliverMu.Unlock()

	for {
		c.mu.Lock()
		batch := c.outbox
		c.outbox = nil
		consumers := append([]EventConsumer(nil), c.consumers...)
		c.mu.Unlock()

		if len(batch) == 0 {
			return
		}
		for _, ev := range batch {
			for _, consumer := range consumers {
				consumer.SendEvent(ev)
			}
		}
	}
}

// run executes a command under the lock unless the controller is closed.
func (c *Controller) run(cmd func(evs *events)) {
	var evs events
	c.mu.Lock()
	if !c.closed {
		cmd(&evs)
		c.queueLocked(evs)
	}
	c.mu.Unlock()
	c.deliver()
}

// SetCatalog replaces the track list and loads the first track paused.
func (c *Controller) SetCatalog(tracks []catalog.Track) {
	c.run(func(evs *events) {
		c.tracks = append([]catalog.Track(nil), tracks...)
		c.index = 0
		if len(c.tracks) == 0 {
			c.stopPollLocked()
			c.generation++
			c.slot.release()
			return
		}
		if c.loadLocked(0, evs) {
			evs.add(EventTrackChanged, TrackChange{Index: 0, Track: c.tracks[0]})
		}
	})
}

// PlayTrack loads and starts track index. Out of range indices are ignored.
func (c *Controller) PlayTrack(index int) {
	c.run(func(evs *events) {
		c.playTrackLocked(index, evs)
	})
}

func (c *Controller) playTrackLocked(index int, evs *events) {
	if index < 0 || index >= len(c.tracks) {
		return
	}
	if !c.loadLocked(index, evs) {
		return
	}
	if err := c.slot.live().Start(); err != nil {
		c.failLocked(err, evs)
		return
	}
	c.restartPollLocked()
	evs.add(EventTrackChanged, TrackChange{Index: index, Track: c.tracks[index]})
	evs.add(EventStatus, true)
}

// loadLocked swaps in a fresh, paused decoder for index.
func (c *Controller) loadLocked(index int, evs *events) bool {
	track := c.tracks[index]
	c.index = index
	c.stopPollLocked()
	c.generation++
	gen := c.generation

	d, err := c.slot.replace(func() (Decoder, error) {
		return c.opener.Open(track)
	})
	if err != nil {
		c.logger.PrintError("open "+track.Asset.Name(), err)
		evs.add(EventFailed, Failure{Index: index, Track: track, Err: err})
		return false
	}
	d.OnCompletion(func() {
		c.handleCompletion(gen)
	})
	return true
}

// failLocked drops a decoder that could not start.
func (c *Controller) failLocked(err error, evs *events) {
	track := c.tracks[c.index]
	c.logger.PrintError("start "+track.Asset.Name(), err)
	c.stopPollLocked()
	c.generation++
	c.slot.release()
	evs.add(EventFailed, Failure{Index: c.index, Track: track, Err: err})
}

func (c *Controller) handleCompletion(gen uint64) {
	c.run(func(evs *events) {
		if gen != c.generation {
			return
		}
		c.nextLocked(evs)
	})
}

func (c *Controller) Resume() {
	c.run(func(evs *events) {
		d := c.slot.live()
		if d == nil || d.IsPlaying() {
			return
		}

		err := d.Start()
		if errors.Is(err, ErrInvalidState) {
			c.logger.PrintError("resume", err)
			if !c.loadLocked(c.index, evs) {
				return
			}
			evs.add(EventTrackChanged, TrackChange{Index: c.index, Track: c.tracks[c.index]})
			err = c.slot.live().Start()
		}
		if err != nil {
			c.failLocked(err, evs)
			return
		}

		c.restartPollLocked()
		evs.add(EventStatus, true)
	})
}

func (c *Controller) Pause() {
	c.run(func(evs *events) {
		d := c.slot.live()
		if d == nil || !d.IsPlaying() {
			return
		}
		if err := d.Pause(); err != nil {
			c.logger.PrintError("pause", err)
			return
		}
		c.stopPollLocked()
		evs.add(EventStatus, false)
	})
}

func (c *Controller) TogglePlayPause() {
	c.run(func(evs *events) {
		d := c.slot.live()
		if d == nil {
			return
		}

		var err error
		if d.IsPlaying() {
			err = d.Pause()
		} else {
			err = d.Start()
		}
		if err != nil {
			c.logger.PrintError("toggle", err)
		}

		playing := d.IsPlaying()
		if playing {
			c.restartPollLocked()
		} else {
			c.stopPollLocked()
		}
		evs.add(EventStatus, playing)
	})
}

func (c *Controller) Next() {
	c.run(c.nextLocked)
}

func (c *Controller) nextLocked(evs *events) {
	n := len(c.tracks)
	if n == 0 {
		return
	}
	c.playTrackLocked((c.index+1)%n, evs)
}

func (c *Controller) Previous() {
	c.run(func(evs *events) {
		n := len(c.tracks)
		if n == 0 {
			return
		}
		c.playTrackLocked((c.index-1+n)%n, evs)
	})
}

// Seek forwards to the live decoder; without one it does nothing.
func (c *Controller) Seek(positionMs int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	d := c.slot.live()
	if d == nil {
		return nil
	}
	return d.Seek(positionMs)
}

func (c *Controller) CurrentPosition() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	d := c.slot.live()
	if d == nil {
		return 0
	}
	pos, err := d.Position()
	if err != nil {
		return 0
	}
	return pos
}

func (c *Controller) Duration() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	d := c.slot.live()
	if d == nil {
		return 0
	}
	dur, err := d.Duration()
	if err != nil {
		return 0
	}
	return dur
}

func (c *Controller) IsPlaying() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	d := c.slot.live()
	return d != nil && d.IsPlaying()
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	d := c.slot.live()
	switch {
	case d == nil:
		return StateEmpty
	case d.IsPlaying():
		return StatePlaying
	}
	return StatePaused
}

func (c *Controller) CurrentIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index
}

func (c *Controller) CurrentTrack() (catalog.Track, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.index < 0 || c.index >= len(c.tracks) {
		return catalog.Track{}, false
	}
	return c.tracks[c.index], true
}

func (c *Controller) Tracks() []catalog.Track {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]catalog.Track(nil), c.tracks...)
}

// Close releases the decoder and stops the poller. Every later command is a
// no-op.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	c.stopPollLocked()
	c.generation++
	c.slot.release()
}
