// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/spezifisch/tunebox/catalog"
)

// columns: playing marker, number, title, artist, album, year
const tracksDataColumns = 6
const playingIcon = "▶"

// data for rendering the track table
type tracksData struct {
	tview.TableContentReadOnly

	tracks []catalog.Track
	// index of the current track, -1 for none
	current int
	// invoked when a row is clicked
	play func(index int)
}

var _ tview.TableContent = (*tracksData)(nil)

type TracksPage struct {
	Root *tview.Flex

	trackList  *tview.Table
	tracksData tracksData

	// external refs
	ui *Ui
}

func (ui *Ui) createTracksPage(tracks []catalog.Track) *TracksPage {
	tracksPage := TracksPage{
		ui: ui,
	}

	tracksPage.tracksData = tracksData{
		tracks:  tracks,
		current: -1,
		play:    ui.controller.PlayTrack,
	}

	// main table
	tracksPage.trackList = tview.NewTable().
		SetSelectable(true, false). // rows selectable
		SetSelectedStyle(tcell.StyleDefault.Background(tcell.ColorLightGray).Foreground(tcell.ColorBlack))
	tracksPage.trackList.Box.
		SetTitle(" tracks ").
		SetTitleAlign(tview.AlignLeft).
		SetBorder(true)
	tracksPage.trackList.SetContent(&tracksPage.tracksData)
	tracksPage.trackList.SetSelectedFunc(func(row, column int) {
		tracksPage.tracksData.play(row)
	})

	tracksPage.Root = tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(tracksPage.trackList, 0, 3, true).
		AddItem(ui.nowPlaying.Root, 0, 2, false)

	return &tracksPage
}

// SetCurrent moves the playing marker and the selection to index.
func (t *TracksPage) SetCurrent(index int) {
	t.tracksData.current = index
	if index >= 0 && index < len(t.tracksData.tracks) {
		t.trackList.Select(index, 0)
	}
}

// toggleFocus moves focus between the track list and the scrub bar.
func (t *TracksPage) toggleFocus() {
	if t.ui.nowPlaying.scrub.HasFocus() {
		t.ui.app.SetFocus(t.trackList)
	} else {
		t.ui.app.SetFocus(t.ui.nowPlaying.scrub)
	}
}

// tracksData methods, used by tview to lazily render the table
func (d *tracksData) GetCell(row, column int) *tview.TableCell {
	if row >= len(d.tracks) || column >= tracksDataColumns || row < 0 || column < 0 {
		return nil
	}
	track := d.tracks[row]
	clicked := func() bool {
		if d.play != nil {
			d.play(row)
		}
		return false
	}

	switch column {
	case 0: // playing
		text := " "
		if row == d.current {
			text = playingIcon
		}
		return &tview.TableCell{
			Text:        text,
			Color:       tcell.ColorGreen,
			MaxWidth:    1,
			Transparent: true,
			Clicked:     clicked,
		}
	case 1: // number
		return &tview.TableCell{
			Text:        fmt.Sprintf("%2d", row+1),
			Align:       tview.AlignRight,
			Color:       tcell.ColorGray,
			MaxWidth:    3,
			Transparent: true,
			Clicked:     clicked,
		}
	case 2: // title
		return &tview.TableCell{
			Text:        tview.Escape(track.Title),
			Expansion:   2,
			Transparent: true,
			Clicked:     clicked,
		}
	case 3: // artist
		return &tview.TableCell{
			Text:        tview.Escape(track.Artist),
			Expansion:   1,
			Transparent: true,
			Clicked:     clicked,
		}
	case 4: // album
		return &tview.TableCell{
			Text:        tview.Escape(track.Album),
			Expansion:   1,
			Transparent: true,
			Clicked:     clicked,
		}
	case 5: // year
		return &tview.TableCell{
			Text:        tview.Escape(track.Year),
			Align:       tview.AlignRight,
			MaxWidth:    12,
			Transparent: true,
			Clicked:     clicked,
		}
	}

	return nil
}

// Return the total number of rows in the table.
func (d *tracksData) GetRowCount() int {
	return len(d.tracks)
}

// Return the total number of columns in the table.
func (d *tracksData) GetColumnCount() int {
	return tracksDataColumns
}
