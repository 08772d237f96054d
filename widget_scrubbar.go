// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const (
	scrubLabelWidth = 5 // mm:ss
	scrubKeyStepMs  = 5000
)

// ScrubBar shows playback progress and lets the user seek with the mouse or
// the arrow keys. While a drag is in progress, progress updates from the
// player are ignored so the knob stays under the cursor.
type ScrubBar struct {
	*tview.Box

	position int64
	duration int64
	dragging bool

	onSeek func(positionMs int64)

	filledStyle tcell.Style
	emptyStyle  tcell.Style
	labelColor  tcell.Color
}

func NewScrubBar() *ScrubBar {
	return &ScrubBar{
		Box:         tview.NewBox(),
		filledStyle: tcell.StyleDefault.Foreground(tcell.ColorGreen),
		emptyStyle:  tcell.StyleDefault.Foreground(tcell.ColorGray),
		labelColor:  tcell.ColorWhite,
	}
}

func (s *ScrubBar) SetSeekFunc(fn func(positionMs int64)) *ScrubBar {
	s.onSeek = fn
	return s
}

// SetProgress is a no-op while the user is dragging.
func (s *ScrubBar) SetProgress(positionMs, durationMs int64) {
	if s.dragging {
		return
	}
	s.duration = durationMs
	s.position = clampMs(positionMs, durationMs)
}

func (s *ScrubBar) Progress() (positionMs, durationMs int64) {
	return s.position, s.duration
}

func (s *ScrubBar) Dragging() bool {
	return s.dragging
}

// bar returns the screen columns of the track part, leaving room for the
// time labels when the widget is wide enough.
func (s *ScrubBar) bar() (x, y, width int, labels bool) {
	x, y, width, _ = s.GetInnerRect()
	if width > 2*(scrubLabelWidth+1)+1 {
		return x + scrubLabelWidth + 1, y, width - 2*(scrubLabelWidth+1), true
	}
	return x, y, width, false
}

func (s *ScrubBar) Draw(screen tcell.Screen) {
	s.Box.DrawForSubclass(screen, s)
	_, _, _, height := s.GetInnerRect()
	barX, y, width, labels := s.bar()
	if width <= 0 || height <= 0 {
		return
	}

	if labels {
		posMin, posSec := msToMinAndSec(s.position)
		durMin, durSec := msToMinAndSec(s.duration)
		tview.Print(screen, fmt.Sprintf("%02d:%02d", posMin, posSec), barX-scrubLabelWidth-1, y, scrubLabelWidth, tview.AlignLeft, s.labelColor)
		tview.Print(screen, fmt.Sprintf("%02d:%02d", durMin, durSec), barX+width+1, y, scrubLabelWidth, tview.AlignRight, s.labelColor)
	}

	filled := filledCells(s.position, s.duration, width)
	for i := 0; i < width; i++ {
		switch {
		case i == filled && s.duration > 0:
			screen.SetContent(barX+i, y, '●', nil, s.filledStyle)
		case i < filled:
			screen.SetContent(barX+i, y, '━', nil, s.filledStyle)
		default:
			screen.SetContent(barX+i, y, '─', nil, s.emptyStyle)
		}
	}
}

func (s *ScrubBar) seekTo(positionMs int64) {
	s.position = clampMs(positionMs, s.duration)
	if s.onSeek != nil {
		s.onSeek(s.position)
	}
}

func (s *ScrubBar) seekToColumn(screenX int) {
	barX, _, width, _ := s.bar()
	s.seekTo(positionAt(screenX-barX, width, s.duration))
}

func (s *ScrubBar) MouseHandler() func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (consumed bool, capture tview.Primitive) {
	return s.WrapMouseHandler(func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (consumed bool, capture tview.Primitive) {
		x, y := event.Position()
		switch action {
		case tview.MouseLeftDown:
			if !s.InRect(x, y) || s.duration <= 0 {
				return false, nil
			}
			setFocus(s)
			s.dragging = true
			s.seekToColumn(x)
			return true, s
		case tview.MouseMove:
			if !s.dragging {
				return false, nil
			}
			s.seekToColumn(x)
			return true, s
		case tview.MouseLeftUp:
			if !s.dragging {
				return false, nil
			}
			s.seekToColumn(x)
			s.dragging = false
			return true, nil
		}
		return false, nil
	})
}

func (s *ScrubBar) InputHandler() func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
	return s.WrapInputHandler(func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
		if s.duration <= 0 {
			return
		}
		switch event.Key() {
		case tcell.KeyLeft:
			s.seekTo(s.position - scrubKeyStepMs)
		case tcell.KeyRight:
			s.seekTo(s.position + scrubKeyStepMs)
		}
	})
}

// filledCells is how many of width cells lie before the current position.
func filledCells(positionMs, durationMs int64, width int) int {
	if durationMs <= 0 || width <= 0 {
		return 0
	}
	n := int(clampMs(positionMs, durationMs) * int64(width) / durationMs)
	if n > width {
		n = width
	}
	return n
}

// positionAt maps a column inside a bar of width cells to a position; the
// last column is the end of the track.
func positionAt(column, width int, durationMs int64) int64 {
	if width <= 1 || durationMs <= 0 {
		return 0
	}
	if column < 0 {
		column = 0
	}
	if column >= width {
		column = width - 1
	}
	return int64(column) * durationMs / int64(width-1)
}
