// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T, contents string) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	path := ""
	if contents != "" {
		path = filepath.Join(t.TempDir(), "tunebox.toml")
		require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	}
	require.NoError(t, Setup(path))
}

func TestDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	setup(t, "")

	assert.Equal(t, BackendBeep, Backend())
	assert.Equal(t, 200*time.Millisecond, PollInterval())
	assert.True(t, viper.GetBool(UIAlbumArt))
	assert.Equal(t, 16, viper.GetInt(UIArtCacheSize))
	assert.False(t, viper.GetBool(MprisEnabled))
	assert.Equal(t, "info", viper.GetString(LogsLevel))
	assert.NotEmpty(t, viper.GetString(LogsDir))
	assert.NoError(t, Validate())
}

func TestFileOverridesDefaults(t *testing.T) {
	setup(t, `
[player]
backend = "MPV"
poll-interval = "50ms"

[catalog]
dir = "/srv/music"

[ui]
album-art = false
`)

	assert.Equal(t, BackendMpv, Backend())
	assert.Equal(t, 50*time.Millisecond, PollInterval())
	assert.Equal(t, "/srv/music", viper.GetString(CatalogDir))
	assert.False(t, viper.GetBool(UIAlbumArt))
	assert.Equal(t, 16, viper.GetInt(UIArtCacheSize))
	assert.NoError(t, Validate())
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("TUNEBOX_PLAYER_POLL_INTERVAL", "1s")
	t.Setenv("TUNEBOX_MPRIS_ENABLED", "true")
	setup(t, "[player]\npoll-interval = \"50ms\"\n")

	assert.Equal(t, time.Second, PollInterval())
	assert.True(t, viper.GetBool(MprisEnabled))
}

func TestExplicitFileMustExist(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	err := Setup(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestBrokenFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	path := filepath.Join(t.TempDir(), "tunebox.toml")
	require.NoError(t, os.WriteFile(path, []byte("[player\nbackend="), 0o644))
	assert.Error(t, Setup(path))
}

func TestValidate(t *testing.T) {
	cases := map[string]string{
		"backend":       "[player]\nbackend = \"vlc\"\n",
		"poll interval": "[player]\npoll-interval = \"0s\"\n",
		"cache size":    "[ui]\nart-cache-size = 0\n",
		"log level":     "[logs]\nlevel = \"chatty\"\n",
	}
	for name, contents := range cases {
		t.Run(name, func(t *testing.T) {
			setup(t, contents)
			err := Validate()
			assert.True(t, errors.Is(err, ErrInvalid), "got %v", err)
		})
	}
}

func TestEnvKeyReplacer(t *testing.T) {
	assert.Equal(t, "player_poll_interval", EnvKeyReplacer.Replace("player.poll-interval"))
}

func TestKeysSorted(t *testing.T) {
	keys := Keys()
	assert.Len(t, keys, len(Default))
	assert.IsIncreasing(t, keys)
}
