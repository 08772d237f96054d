// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package playback

import "github.com/spezifisch/tunebox/catalog"

type UiEventType int

const (
	// play state changed, data: bool (true when outputting)
	EventStatus UiEventType = iota
	// current track changed, data: TrackChange
	EventTrackChanged
	// periodic progress while outputting, data: StatusData
	EventProgress
	// a track could not be opened or started, data: Failure
	EventFailed
)

func (t UiEventType) String() string {
	switch t {
	case EventStatus:
		return "status"
	case EventTrackChanged:
		return "track-changed"
	case EventProgress:
		return "progress"
	case EventFailed:
		return "failed"
	}
	return "unknown"
}

type UiEvent struct {
	Type UiEventType
	Data interface{}
}

type EventConsumer interface {
	// create event that goes from the controller to a frontend; implementations
	// must hand it off to their own goroutine and return quickly, without
	// calling back into the Controller
	SendEvent(event UiEvent)
}

type TrackChange struct {
	Index int
	Track catalog.Track
}

// StatusData is a progress report in milliseconds.
type StatusData struct {
	Position int64
	Duration int64
}

type Failure struct {
	Index int
	Track catalog.Track
	Err   error
}
