// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"fmt"

	"github.com/rivo/tview"
	"github.com/spezifisch/tunebox/catalog"
)

func makeModal(p tview.Primitive, width, height int) tview.Primitive {
	return tview.NewGrid().
		SetColumns(0, width, 0).
		SetRows(0, height, 0).
		AddItem(p, 1, 1, 1, 1, 0, 0, true)
}

func formatPlayerStatus(positionMs int64, durationMs int64) string {
	positionMin, positionSec := msToMinAndSec(positionMs)
	durationMin, durationSec := msToMinAndSec(durationMs)
	return fmt.Sprintf("[::b][%02d:%02d/%02d:%02d]", positionMin, positionSec, durationMin, durationSec)
}

func formatTrackForStatusBar(track *catalog.Track) (text string) {
	if track == nil {
		return
	}
	if track.Title != "" {
		text += "[::-] [white]" + tview.Escape(track.Title)
	}
	if track.Artist != "" {
		text += " [gray]by [white]" + tview.Escape(track.Artist)
	}
	return
}

type playState int

const (
	stateIdle playState = iota
	statePlaying
	statePaused
	stateFailed
)

// formatStartStop renders the left part of the top bar.
func formatStartStop(state playState, track *catalog.Track) string {
	switch state {
	case statePlaying:
		return "[green::b]Playing[::-]" + formatTrackForStatusBar(track)
	case statePaused:
		return "[yellow::b]Paused[::-]" + formatTrackForStatusBar(track)
	case stateFailed:
		return "[red::b]Failed[::-]" + formatTrackForStatusBar(track)
	}
	return fmt.Sprintf("[::b]%s[::-] %s", Name, Version)
}
