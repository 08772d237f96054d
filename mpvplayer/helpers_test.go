// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package mpvplayer

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/spezifisch/tunebox/catalog"
	"github.com/spezifisch/tunebox/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecondsArg(t *testing.T) {
	assert.Equal(t, "0.000", secondsArg(0))
	assert.Equal(t, "1.500", secondsArg(1500))
	assert.Equal(t, "61.007", secondsArg(61007))
}

func TestLocalPathExtractsEmbedded(t *testing.T) {
	fsys := fstest.MapFS{"song1.flac": {Data: []byte("fLaC-data")}}
	o := NewOpener(logger.Init())

	path, err := o.localPath(catalog.NewAsset(fsys, "song1.flac"))
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "fLaC-data", string(data))

	again, err := o.localPath(catalog.NewAsset(fsys, "song1.flac"))
	require.NoError(t, err)
	assert.Equal(t, path, again)

	require.NoError(t, o.Close())
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestLocalPathKeepsDiskFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.mp3"), []byte("x"), 0o644))
	tracks, err := catalog.LoadDir(dir, logger.Init())
	require.NoError(t, err)

	o := NewOpener(logger.Init())
	path, err := o.localPath(tracks[0].Asset)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "a.mp3"), path)
	assert.Empty(t, o.tmpDir)
}

func TestLocalPathMissingAsset(t *testing.T) {
	o := NewOpener(logger.Init())
	defer o.Close()

	_, err := o.localPath(catalog.NewAsset(fstest.MapFS{}, "gone.flac"))
	assert.Error(t, err)
}
