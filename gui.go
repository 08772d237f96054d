// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"image"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/spezifisch/tunebox/catalog"
	"github.com/spezifisch/tunebox/logger"
	"github.com/spezifisch/tunebox/playback"
	tviewcommand "github.com/spezifisch/tview-command"
)

// struct contains all the updatable elements of the Ui
type Ui struct {
	app   *tview.Application
	pages *tview.Pages

	// top bar
	startStopStatus *tview.TextView
	playerStatus    *tview.TextView

	// bottom bar
	menuWidget *MenuWidget

	// tracks page
	tracksPage *TracksPage
	nowPlaying *NowPlayingWidget

	// log page
	logPage *LogPage

	// modals
	helpModal  tview.Primitive
	helpWidget *HelpWidget

	eventLoop *eventLoop

	// key name -> action from the keybinding file
	keyBindings map[string]string

	placeholder image.Image
	artCache    *Cache[image.Image]

	// owned by the tview goroutine
	state        playState
	currentTrack *catalog.Track

	tracks     []catalog.Track
	controller *playback.Controller
	logger     *logger.Logger
}

// UiOptions carries the presentation settings.
type UiOptions struct {
	AlbumArt     bool
	ArtCacheSize int

	// Commands is the parsed keybinding file, nil for the built-in keys only
	Commands *tviewcommand.Config
}

const (
	// page identifiers (use these instead of hardcoding page names for showing/hiding)
	PageTracks = "tracks"
	PageLog    = "log"

	PageHelpBox = "helpBox"
)

func InitGui(tracks []catalog.Track,
	controller *playback.Controller,
	logger *logger.Logger,
	opts UiOptions) (ui *Ui) {
	ui = &Ui{
		eventLoop: nil, // initialized by initEventLoops()

		keyBindings: newKeyBindings(opts.Commands, logger),
		placeholder: placeholderArt(),
		tracks:      tracks,
		controller:  controller,
		logger:      logger,
	}

	ui.initEventLoops()

	if opts.AlbumArt {
		lru := NewLRU(opts.ArtCacheSize)
		ui.artCache = NewCache(
			ui.placeholder,
			newArtFetcher(tracks, ui.placeholder, logger),
			ui.eventLoop.artFetched,
			lru.Touch,
			logger,
		)
	}

	ui.app = tview.NewApplication()
	ui.pages = tview.NewPages()

	// status text at the top
	ui.startStopStatus = tview.NewTextView().SetText(formatStartStop(stateIdle, nil)).
		SetTextAlign(tview.AlignLeft).
		SetDynamicColors(true).
		SetScrollable(false)

	ui.playerStatus = tview.NewTextView().SetText(formatPlayerStatus(0, 0)).
		SetTextAlign(tview.AlignRight).
		SetDynamicColors(true).
		SetScrollable(false)

	ui.menuWidget = ui.createMenuWidget()
	ui.helpWidget = ui.createHelpWidget()

	// help box modal
	ui.helpModal = makeModal(ui.helpWidget.Root, 60, 20)
	ui.helpWidget.Root.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		// only close on ESC while actually visible
		if ui.helpWidget.visible && (event.Key() == tcell.KeyEscape) {
			ui.CloseHelp()
		}
		return event
	})

	// top bar: status text
	topBarFlex := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(ui.startStopStatus, 0, 1, false).
		AddItem(ui.playerStatus, 15, 0, false)

	ui.nowPlaying = ui.createNowPlayingWidget(opts.AlbumArt)

	// tracks page
	ui.tracksPage = ui.createTracksPage(tracks)

	// log page
	ui.logPage = ui.createLogPage()

	ui.pages.AddPage(PageTracks, ui.tracksPage.Root, true, true).
		AddPage(PageHelpBox, ui.helpModal, true, false).
		AddPage(PageLog, ui.logPage.Root, true, false)

	rootFlex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(topBarFlex, 1, 0, false).
		AddItem(ui.pages, 0, 1, true).
		AddItem(ui.menuWidget.Root, 1, 0, false)

	// add main input handler
	rootFlex.SetInputCapture(ui.handlePageInput)

	ui.app.SetRoot(rootFlex, true).
		SetFocus(rootFlex).
		EnableMouse(true)

	return ui
}

func (ui *Ui) Run() error {
	// receive events from the controller
	ui.controller.RegisterEventConsumer(ui)

	// run gui event handler
	ui.runEventLoops()

	// load the first track without playing it
	ui.controller.SetCatalog(ui.tracks)

	// gui main loop (blocking)
	return ui.app.Run()
}

func (ui *Ui) ShowHelp() {
	activePage := ui.menuWidget.GetActivePage()
	ui.helpWidget.RenderHelp(activePage)

	ui.pages.ShowPage(PageHelpBox)
	ui.pages.SendToFront(PageHelpBox)
	ui.app.SetFocus(ui.helpModal)
	ui.helpWidget.visible = true
}

func (ui *Ui) CloseHelp() {
	ui.helpWidget.visible = false
	ui.pages.HidePage(PageHelpBox)
	ui.ShowPage(ui.menuWidget.GetActivePage())
}
