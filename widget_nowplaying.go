// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"image"
	"text/template"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/spezifisch/tunebox/catalog"
)

const (
	labelPlay  = "▶ play"
	labelPause = "⏸ pause"
)

// NowPlayingWidget shows the current track with its album art, transport
// buttons and the scrub bar.
type NowPlayingWidget struct {
	Root *tview.Flex

	info  *tview.TextView
	art   *tview.Image
	scrub *ScrubBar

	previousButton  *tview.Button
	playPauseButton *tview.Button
	nextButton      *tview.Button

	// asset name of the art that should be on screen
	artKey string
	// image currently handed to the art view
	shown image.Image

	infoTemplate *template.Template

	// external refs
	ui *Ui
}

func (ui *Ui) createNowPlayingWidget(showArt bool) *NowPlayingWidget {
	infoTemplate, err := template.New("track info").
		Funcs(template.FuncMap{"esc": tview.Escape}).
		Parse(trackInfoTemplateString)
	if err != nil {
		ui.logger.PrintError("createNowPlayingWidget", err)
	}

	w := &NowPlayingWidget{
		ui:           ui,
		infoTemplate: infoTemplate,
	}

	w.info = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(false)
	w.info.SetBorder(true).SetTitle(" now playing ").SetTitleAlign(tview.AlignLeft)

	buttonStyle := tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	newButton := func(label string, selected func()) *tview.Button {
		return tview.NewButton(label).
			SetStyle(buttonStyle).
			SetActivatedStyle(buttonStyle).
			SetSelectedFunc(selected)
	}
	w.previousButton = newButton("⏮ prev", ui.controller.Previous)
	w.playPauseButton = newButton(labelPlay, ui.controller.TogglePlayPause)
	w.nextButton = newButton("next ⏭", ui.controller.Next)

	transport := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(nil, 0, 1, false).
		AddItem(w.previousButton, 8, 0, false).
		AddItem(nil, 1, 0, false).
		AddItem(w.playPauseButton, 9, 0, false).
		AddItem(nil, 1, 0, false).
		AddItem(w.nextButton, 8, 0, false).
		AddItem(nil, 0, 1, false)

	w.scrub = NewScrubBar().SetSeekFunc(func(positionMs int64) {
		if err := ui.controller.Seek(positionMs); err != nil {
			ui.logger.PrintError("scrub seek", err)
		}
	})

	w.Root = tview.NewFlex().SetDirection(tview.FlexRow)
	if showArt {
		w.art = tview.NewImage()
		w.setArt(ui.placeholder)
		w.Root.AddItem(w.art, 0, 1, false)
	}
	w.Root.
		AddItem(w.info, 6, 0, false).
		AddItem(transport, 1, 0, false).
		AddItem(w.scrub, 1, 0, false)

	return w
}

// SetTrack shows a new current track. Art comes from the cache; a miss
// shows the placeholder until the fetch completes.
func (w *NowPlayingWidget) SetTrack(track catalog.Track) {
	w.info.Clear()
	if w.infoTemplate != nil {
		_ = w.infoTemplate.Execute(w.info, track)
	}
	w.scrub.SetProgress(0, 0)

	if w.art == nil {
		return
	}
	w.artKey = track.Asset.Name()
	img := w.ui.placeholder
	if w.ui.artCache != nil {
		img = w.ui.artCache.Get(w.artKey)
	}
	w.setArt(img)
}

// ArtFetched swaps in fetched art if it belongs to the current track.
func (w *NowPlayingWidget) ArtFetched(key string, img image.Image) {
	if w.art == nil || key != w.artKey {
		return
	}
	w.setArt(img)
}

func (w *NowPlayingWidget) setArt(img image.Image) {
	if img == nil {
		img = w.ui.placeholder
	}
	w.shown = img
	w.art.SetImage(img)
}

// Art returns the image on screen, nil when the art view is disabled.
func (w *NowPlayingWidget) Art() image.Image {
	return w.shown
}

func (w *NowPlayingWidget) SetPlaying(playing bool) {
	if playing {
		w.playPauseButton.SetLabel(labelPause)
	} else {
		w.playPauseButton.SetLabel(labelPlay)
	}
}

func (w *NowPlayingWidget) SetProgress(positionMs, durationMs int64) {
	w.scrub.SetProgress(positionMs, durationMs)
}

var trackInfoTemplateString = `[blue::b]Title:[-:-:-:-] [green::i]{{esc .Title}}[-:-:-:-]
[blue::b]Artist:[-:-:-:-] [::i]{{esc .Artist}}[-:-:-:-]
[blue::b]Album:[-:-:-:-] [::i]{{esc .GetAlbum}}[-:-:-:-]
[blue::b]Year:[-:-:-:-] [::i]{{esc .GetYear}}[-:-:-:-]`
