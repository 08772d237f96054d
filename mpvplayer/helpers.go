// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package mpvplayer

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spezifisch/tunebox/catalog"
	"github.com/supersonic-app/go-mpv"
)

func (p *Player) getPropertyMillis(name string) (int64, error) {
	value, err := p.instance.GetProperty(name, mpv.FORMAT_DOUBLE)
	if err != nil {
		return 0, err
	} else if value == nil {
		return 0, errors.New("nil value")
	}
	return int64(math.Round(value.(float64) * 1000)), nil
}

func (p *Player) getPropertyBool(name string) (bool, error) {
	value, err := p.instance.GetProperty(name, mpv.FORMAT_FLAG)
	if err != nil {
		return false, err
	} else if value == nil {
		return false, errors.New("nil value")
	}
	return value.(bool), err
}

func secondsArg(ms int64) string {
	return strconv.FormatFloat(float64(ms)/1000, 'f', 3, 64)
}

// localPath returns a file mpv can open. Embedded assets are written to a
// temp dir once and reused.
func (o *Opener) localPath(asset catalog.Asset) (string, error) {
	if path, ok := asset.Path(); ok {
		return path, nil
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if path, ok := o.extracted[asset.Name()]; ok {
		return path, nil
	}
	if o.tmpDir == "" {
		dir, err := os.MkdirTemp("", "tunebox-")
		if err != nil {
			return "", fmt.Errorf("extract %s: %w", asset.Name(), err)
		}
		o.tmpDir = dir
	}

	data, err := asset.ReadAll()
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", asset.Name(), err)
	}
	path := filepath.Join(o.tmpDir, filepath.Base(asset.Name()))
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("extract %s: %w", asset.Name(), err)
	}
	o.extracted[asset.Name()] = path
	return path, nil
}
