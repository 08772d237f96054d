// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/dhowden/tag"
	"github.com/samber/lo"
	"github.com/spezifisch/tunebox/logger"
)

var (
	ErrNoPicture = errors.New("no embedded picture")
	ErrNoTracks  = errors.New("no audio tracks found")
)

// audioExtensions are the file types the decoders know how to play.
var audioExtensions = map[string]struct{}{
	".flac": {},
	".mp3":  {},
	".ogg":  {},
	".wav":  {},
}

func isAudio(name string) bool {
	_, ok := audioExtensions[strings.ToLower(path.Ext(name))]
	return ok
}

// Load builds one track per name, in order. Tag read failures are logged and
// replaced by placeholder values; they never fail the load.
func Load(fsys fs.FS, names []string, logger logger.LoggerInterface) []Track {
	tracks := make([]Track, 0, len(names))
	for _, name := range names {
		tracks = append(tracks, readTrack(NewAsset(fsys, name), logger))
	}
	return tracks
}

// LoadDir loads every audio file in dir, sorted by name.
func LoadDir(dir string, logger logger.LoggerInterface) ([]Track, error) {
	names, err := Discover(os.DirFS(dir))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", dir, err)
	}

	tracks := make([]Track, 0, len(names))
	for _, name := range names {
		tracks = append(tracks, readTrack(newDirAsset(dir, name), logger))
	}
	return tracks, nil
}

// Discover lists the audio files at the top level of fsys.
func Discover(fsys fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !isAudio(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	if len(names) == 0 {
		return nil, ErrNoTracks
	}
	sort.Strings(names)
	return names, nil
}

func readTrack(asset Asset, logger logger.LoggerInterface) Track {
	track := Track{
		Title:  UnknownTitle,
		Artist: UnknownArtist,
		Album:  UnknownAlbum,
		Year:   UnknownYear,
		Asset:  asset,
	}

	m, err := readTags(asset)
	if err != nil {
		logger.Printf("catalog: no tags for %s: %v", asset.Name(), err)
		return track
	}

	track.Title = lo.CoalesceOrEmpty(strings.TrimSpace(m.Title()), UnknownTitle)
	track.Artist = lo.CoalesceOrEmpty(strings.TrimSpace(m.Artist()), UnknownArtist)
	track.Album = lo.CoalesceOrEmpty(strings.TrimSpace(m.Album()), UnknownAlbum)
	if year := m.Year(); year > 0 {
		track.Year = strconv.Itoa(year)
	}
	return track
}

func readTags(asset Asset) (tag.Metadata, error) {
	data, err := asset.ReadAll()
	if err != nil {
		return nil, err
	}
	return tag.ReadFrom(bytes.NewReader(data))
}

// Picture returns the raw bytes of the asset's embedded picture.
func Picture(asset Asset) ([]byte, error) {
	m, err := readTags(asset)
	if err != nil {
		return nil, fmt.Errorf("picture %s: %w", asset.Name(), err)
	}
	pic := m.Picture()
	if pic == nil || len(pic.Data) == 0 {
		return nil, ErrNoPicture
	}
	return pic.Data, nil
}
