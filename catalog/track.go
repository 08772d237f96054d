// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

// Package catalog builds the ordered, fixed list of tracks the player works on.
package catalog

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	UnknownTitle  = "Unknown Title"
	UnknownArtist = "Unknown Artist"
	UnknownAlbum  = "Unknown Album"
	UnknownYear   = "Unknown Year"
)

// Asset is an opaque handle to one audio file inside a filesystem.
type Asset struct {
	fsys fs.FS
	name string
	dir  string
}

func NewAsset(fsys fs.FS, name string) Asset {
	return Asset{fsys: fsys, name: name}
}

// newDirAsset is an asset that also knows where it lives on disk.
func newDirAsset(dir, name string) Asset {
	return Asset{fsys: os.DirFS(dir), name: name, dir: dir}
}

func (a Asset) Name() string {
	return a.name
}

func (a Asset) IsValid() bool {
	return a.fsys != nil && a.name != ""
}

func (a Asset) Open() (fs.File, error) {
	if !a.IsValid() {
		return nil, fmt.Errorf("open asset %q: %w", a.name, fs.ErrInvalid)
	}
	return a.fsys.Open(a.name)
}

func (a Asset) ReadAll() ([]byte, error) {
	f, err := a.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// Path returns the on-disk location for assets loaded from a directory.
func (a Asset) Path() (string, bool) {
	if a.dir == "" {
		return "", false
	}
	return filepath.Join(a.dir, filepath.FromSlash(a.name)), true
}

// Track is one catalog entry. It is built once by the loader and passed
// around by value.
type Track struct {
	Title  string
	Artist string
	Album  string
	Year   string
	Asset  Asset
}

func (t Track) GetTitle() string {
	return t.Title
}

func (t Track) GetArtist() string {
	return t.Artist
}

func (t Track) GetAlbum() string {
	return t.Album
}

func (t Track) GetYear() string {
	return t.Year
}

func (t Track) String() string {
	return fmt.Sprintf("Track{title='%s', artist='%s', album='%s', year='%s'}", t.Title, t.Artist, t.Album, t.Year)
}
