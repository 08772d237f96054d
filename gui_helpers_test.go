// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"testing"

	"github.com/spezifisch/tunebox/catalog"
	"github.com/stretchr/testify/assert"
)

func TestMsToMinAndSec(t *testing.T) {
	cases := []struct {
		ms       int64
		min, sec int
	}{
		{0, 0, 0},
		{999, 0, 0},
		{6000, 0, 6},
		{61_500, 1, 1},
		{3_600_000, 60, 0},
		{-5, 0, 0},
	}
	for _, tc := range cases {
		min, sec := msToMinAndSec(tc.ms)
		assert.Equal(t, tc.min, min, "minutes of %d", tc.ms)
		assert.Equal(t, tc.sec, sec, "seconds of %d", tc.ms)
	}
}

func TestClampMs(t *testing.T) {
	assert.Equal(t, int64(0), clampMs(-100, 6000))
	assert.Equal(t, int64(3000), clampMs(3000, 6000))
	assert.Equal(t, int64(6000), clampMs(9000, 6000))
	// unknown duration only clamps below
	assert.Equal(t, int64(9000), clampMs(9000, 0))
}

func TestFormatPlayerStatus(t *testing.T) {
	assert.Equal(t, "[::b][00:00/00:00]", formatPlayerStatus(0, 0))
	assert.Equal(t, "[::b][00:03/00:06]", formatPlayerStatus(3400, 6000))
	assert.Equal(t, "[::b][01:05/12:00]", formatPlayerStatus(65_000, 720_000))
}

func TestFormatStartStop(t *testing.T) {
	track := &catalog.Track{Title: "Copper Wire", Artist: "Juno Reyes"}

	assert.Equal(t, "[green::b]Playing[::-][::-] [white]Copper Wire [gray]by [white]Juno Reyes", formatStartStop(statePlaying, track))
	assert.Contains(t, formatStartStop(statePaused, track), "Paused")
	assert.Contains(t, formatStartStop(stateFailed, track), "Failed")
	assert.Equal(t, "[::b]"+Name+"[::-] "+Version, formatStartStop(stateIdle, nil))
}

func TestFormatTrackEscapes(t *testing.T) {
	track := &catalog.Track{Title: "[red]x"}
	assert.Equal(t, "[::-] [white][red[]x", formatTrackForStatusBar(track))
	assert.Equal(t, "", formatTrackForStatusBar(nil))
}
