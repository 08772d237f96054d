// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"image"
	"sync"

	"github.com/spezifisch/tunebox/playback"
)

type artResult struct {
	key string
	img image.Image
}

type eventLoop struct {
	playbackEvents chan playback.UiEvent
	artResults     chan artResult

	quit     chan struct{}
	quitOnce sync.Once
}

func (ui *Ui) initEventLoops() {
	ui.eventLoop = &eventLoop{
		playbackEvents: make(chan playback.UiEvent, 64),
		artResults:     make(chan artResult, 16),
		quit:           make(chan struct{}),
	}
}

func (ui *Ui) runEventLoops() {
	go ui.guiEventLoop()
}

// artFetched is the album art cache callback; it runs on the cache goroutine.
func (el *eventLoop) artFetched(key string, img image.Image) {
	select {
	case el.artResults <- artResult{key: key, img: img}:
	case <-el.quit:
	}
}

func (el *eventLoop) stop() {
	el.quitOnce.Do(func() { close(el.quit) })
}

// handle ui updates; widgets are only touched inside QueueUpdateDraw
func (ui *Ui) guiEventLoop() {
	for {
		select {
		case <-ui.eventLoop.quit:
			return

		case msg := <-ui.logger.Prints:
			// handle log page output
			ui.logPage.Print(msg)

		case res := <-ui.eventLoop.artResults:
			ui.app.QueueUpdateDraw(func() {
				ui.nowPlaying.ArtFetched(res.key, res.img)
			})

		case ev := <-ui.eventLoop.playbackEvents:
			ui.handlePlaybackEvent(ev)
		}
	}
}

func (ui *Ui) handlePlaybackEvent(ev playback.UiEvent) {
	switch ev.Type {
	case playback.EventStatus:
		playing, ok := ev.Data.(bool)
		if !ok {
			return
		}
		ui.app.QueueUpdateDraw(func() {
			if playing {
				ui.state = statePlaying
			} else {
				ui.state = statePaused
			}
			ui.startStopStatus.SetText(formatStartStop(ui.state, ui.currentTrack))
			ui.nowPlaying.SetPlaying(playing)
		})

	case playback.EventTrackChanged:
		change, ok := ev.Data.(playback.TrackChange)
		if !ok {
			return
		}
		ui.logger.Printf("track %d: %s", change.Index+1, change.Track)
		ui.app.QueueUpdateDraw(func() {
			track := change.Track
			ui.currentTrack = &track
			if ui.state != statePlaying {
				ui.state = statePaused
			}
			ui.startStopStatus.SetText(formatStartStop(ui.state, ui.currentTrack))
			ui.playerStatus.SetText(formatPlayerStatus(0, 0))
			ui.tracksPage.SetCurrent(change.Index)
			ui.nowPlaying.SetTrack(track)
		})

	case playback.EventProgress:
		data, ok := ev.Data.(playback.StatusData)
		if !ok {
			return
		}
		ui.app.QueueUpdateDraw(func() {
			ui.playerStatus.SetText(formatPlayerStatus(data.Position, data.Duration))
			ui.nowPlaying.SetProgress(data.Position, data.Duration)
		})

	case playback.EventFailed:
		failure, ok := ev.Data.(playback.Failure)
		if !ok {
			return
		}
		ui.logger.PrintError("playback "+failure.Track.Asset.Name(), failure.Err)
		ui.app.QueueUpdateDraw(func() {
			track := failure.Track
			ui.currentTrack = &track
			ui.state = stateFailed
			ui.startStopStatus.SetText(formatStartStop(ui.state, ui.currentTrack))
			ui.tracksPage.SetCurrent(failure.Index)
			ui.nowPlaying.SetPlaying(false)
		})

	default:
		ui.logger.Printf("guiEventLoop: unhandled playback event %v", ev.Type)
	}
}

var _ playback.EventConsumer = (*Ui)(nil)
