// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/spezifisch/tunebox/logger"
	tviewcommand "github.com/spezifisch/tview-command"
)

// bindings from this context apply on every page
const globalContext = "Global"

// command names usable in a keybinding file
const (
	actionTogglePlayPause = "togglePlayPause"
	actionNextTrack       = "nextTrack"
	actionPreviousTrack   = "previousTrack"
	actionSeekForward     = "seekForward"
	actionSeekBackward    = "seekBackward"
	actionQuit            = "quit"
	actionHelp            = "help"
)

var keyActions = map[string]func(ui *Ui){
	actionTogglePlayPause: func(ui *Ui) { ui.controller.TogglePlayPause() },
	actionNextTrack:       func(ui *Ui) { ui.controller.Next() },
	actionPreviousTrack:   func(ui *Ui) { ui.controller.Previous() },
	actionSeekForward:     func(ui *Ui) { ui.seekRelative(seekStepMs) },
	actionSeekBackward:    func(ui *Ui) { ui.seekRelative(-seekStepMs) },
	actionQuit:            func(ui *Ui) { ui.Quit() },
	actionHelp:            func(ui *Ui) { ui.ShowHelp() },
}

// newKeyBindings maps key names of the Global context to their actions.
// Unknown commands are logged and skipped.
func newKeyBindings(cfg *tviewcommand.Config, logger logger.LoggerInterface) map[string]string {
	bindings := make(map[string]string)
	if cfg == nil {
		return bindings
	}
	global, ok := (*cfg)[globalContext]
	if !ok {
		return bindings
	}
	for key, command := range global.Bindings {
		command = strings.TrimSpace(command)
		if _, ok := keyActions[command]; !ok {
			logger.Printf("keybinding %s: unknown command %q", key, command)
			continue
		}
		bindings[key] = command
	}
	return bindings
}

// keyName renders a key event the way keybinding files name keys: the rune
// itself, SPC, ESC, enter, TAB or CTRL-<letter>.
func keyName(event *tcell.EventKey) string {
	switch key := event.Key(); {
	case key == tcell.KeyRune:
		if event.Rune() == ' ' {
			return "SPC"
		}
		return string(event.Rune())
	case key == tcell.KeyEscape:
		return "ESC"
	case key == tcell.KeyEnter:
		return "enter"
	case key == tcell.KeyTab:
		return "TAB"
	case key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ:
		return fmt.Sprintf("CTRL-%c", 'A'+rune(key-tcell.KeyCtrlA))
	}
	return ""
}

// runBinding runs the configured action for event, reporting whether one
// was bound.
func (ui *Ui) runBinding(event *tcell.EventKey) bool {
	name := keyName(event)
	if name == "" {
		return false
	}
	command, ok := ui.keyBindings[name]
	if !ok {
		return false
	}
	keyActions[command](ui)
	return true
}
