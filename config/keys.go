// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package config

// Playback
const (
	PlayerBackend      = "player.backend"
	PlayerPollInterval = "player.poll-interval"
)

const (
	CatalogDir = "catalog.dir"
)

// Presentation
const (
	UIAlbumArt     = "ui.album-art"
	UIArtCacheSize = "ui.art-cache-size"
)

const (
	MprisEnabled = "mpris.enabled"
)

// Logging; lines always go to the log page, these control the file copy
const (
	LogsWrite = "logs.write"
	LogsDir   = "logs.dir"
	LogsLevel = "logs.level"
	LogsJSON  = "logs.json"
)

const (
	KeysConfig = "keys.config"
)

const (
	BackendBeep = "beep"
	BackendMpv  = "mpv"
)
