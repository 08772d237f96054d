// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/spezifisch/tunebox/config"
	"github.com/spezifisch/tunebox/logger"
	tviewcommand "github.com/spezifisch/tview-command"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCommands = `
[Global.bindings]
n = "nextTrack"
b = "previousTrack"
SPC = "togglePlayPause"
x = "launchRockets"
`

func writeCommands(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "commands.toml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func loadCommands(t *testing.T, contents string) *tviewcommand.Config {
	t.Helper()
	cfg, err := tviewcommand.LoadConfig(writeCommands(t, contents))
	require.NoError(t, err)
	return cfg
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestNewKeyBindings(t *testing.T) {
	bindings := newKeyBindings(loadCommands(t, testCommands), logger.Init())
	assert.Equal(t, map[string]string{
		"n":   actionNextTrack,
		"b":   actionPreviousTrack,
		"SPC": actionTogglePlayPause,
	}, bindings)
}

func TestNewKeyBindingsWithoutConfig(t *testing.T) {
	assert.Empty(t, newKeyBindings(nil, logger.Init()))
	assert.Empty(t, newKeyBindings(loadCommands(t, "[Tracks.bindings]\nn = \"nextTrack\"\n"), logger.Init()))
}

func TestReboundKeyDrivesController(t *testing.T) {
	ui := newTestUi(t, loadCommands(t, testCommands))
	require.Equal(t, 0, ui.controller.CurrentIndex())

	assert.Nil(t, ui.handlePageInput(runeKey('n')))
	assert.Equal(t, 1, ui.controller.CurrentIndex())
	assert.True(t, ui.controller.IsPlaying())

	assert.Nil(t, ui.handlePageInput(runeKey('b')))
	assert.Equal(t, 0, ui.controller.CurrentIndex())

	assert.Nil(t, ui.handlePageInput(runeKey(' ')))
	assert.False(t, ui.controller.IsPlaying())
}

func TestBuiltinKeysRemainDefault(t *testing.T) {
	ui := newTestUi(t, loadCommands(t, testCommands))

	assert.Nil(t, ui.handlePageInput(runeKey('>')))
	assert.Equal(t, 1, ui.controller.CurrentIndex())

	assert.Nil(t, ui.handlePageInput(runeKey('<')))
	assert.Equal(t, 0, ui.controller.CurrentIndex())

	// unbound keys fall through to the focused widget
	ev := runeKey('z')
	assert.Same(t, ev, ui.handlePageInput(ev))
}

func TestKeyName(t *testing.T) {
	assert.Equal(t, "n", keyName(runeKey('n')))
	assert.Equal(t, "SPC", keyName(runeKey(' ')))
	assert.Equal(t, "ESC", keyName(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
	assert.Equal(t, "enter", keyName(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)))
	assert.Equal(t, "CTRL-N", keyName(tcell.NewEventKey(tcell.KeyCtrlN, 0, tcell.ModCtrl)))
	assert.Equal(t, "", keyName(tcell.NewEventKey(tcell.KeyF1, 0, tcell.ModNone)))
}

func TestInitCommandHandler(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	cfg, err := initCommandHandler(logger.Init())
	require.NoError(t, err)
	assert.Nil(t, cfg)

	viper.Set(config.KeysConfig, writeCommands(t, testCommands))
	cfg, err = initCommandHandler(logger.Init())
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "nextTrack", (*cfg)["Global"].Bindings["n"])

	viper.Set(config.KeysConfig, filepath.Join(t.TempDir(), "missing.toml"))
	_, err = initCommandHandler(logger.Init())
	assert.Error(t, err)
}
