// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package config

import (
	"os"
	"path/filepath"
	"time"
)

// Field is one configuration key with its factory default.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Default holds every known field by key.
var Default = make(map[string]Field)

func init() {
	for _, f := range []Field{
		{PlayerBackend, BackendBeep, "Audio backend: beep or mpv"},
		{PlayerPollInterval, 200 * time.Millisecond, "How often playback progress is sampled"},
		{CatalogDir, "", "Play the audio files of this directory instead of the bundled tracks"},
		{UIAlbumArt, true, "Show the album art panel"},
		{UIArtCacheSize, 16, "Number of decoded album art images kept in memory"},
		{MprisEnabled, false, "Register as an MPRIS2 player on the session bus"},
		{LogsWrite, false, "Write log lines to a file"},
		{LogsDir, defaultLogsDir(), "Directory for log files"},
		{LogsLevel, "info", "Minimum level of lines written to the log file"},
		{LogsJSON, false, "Write the log file as JSON"},
		{KeysConfig, "", "Keybinding file for tview-command"},
	} {
		Default[f.Key] = f
	}
}

func defaultLogsDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "tunebox", "logs")
}
