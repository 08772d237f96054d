// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"github.com/gdamore/tcell/v2"
)

const seekStepMs = 10000

func (ui *Ui) handlePageInput(event *tcell.EventKey) *tcell.EventKey {
	// the help modal handles its own keys
	if ui.helpWidget.visible {
		return event
	}

	if event.Key() == tcell.KeyTab && ui.menuWidget.GetActivePage() == PageTracks {
		ui.tracksPage.toggleFocus()
		return nil
	}

	if ui.runBinding(event) {
		return nil
	}

	switch event.Rune() {
	case '1':
		ui.ShowPage(PageTracks)

	case '2':
		ui.ShowPage(PageLog)

	case '?':
		ui.ShowHelp()

	case 'Q':
		ui.Quit()

	case 'p', ' ':
		// toggle playing/pause
		ui.controller.TogglePlayPause()

	case '>':
		ui.controller.Next()

	case '<':
		ui.controller.Previous()

	case ',':
		ui.seekRelative(-seekStepMs)

	case '.':
		ui.seekRelative(seekStepMs)

	default:
		return event
	}

	return nil
}

func (ui *Ui) seekRelative(deltaMs int64) {
	duration := ui.controller.Duration()
	target := clampMs(ui.controller.CurrentPosition()+deltaMs, duration)
	if err := ui.controller.Seek(target); err != nil {
		ui.logger.PrintError("handlePageInput: Seek", err)
	}
}

func (ui *Ui) ShowPage(name string) {
	ui.pages.SwitchToPage(name)
	ui.menuWidget.SetActivePage(name)
	_, prim := ui.pages.GetFrontPage()
	ui.app.SetFocus(prim)
}

func (ui *Ui) Quit() {
	ui.eventLoop.stop()
	ui.controller.Close()
	if ui.artCache != nil {
		ui.artCache.Close()
	}
	ui.app.Stop()
}
