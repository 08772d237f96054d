// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

func msToMinAndSec(ms int64) (int, int) {
	if ms < 0 {
		ms = 0
	}
	seconds := int(ms / 1000)
	return seconds / 60, seconds % 60
}

func clampMs(ms, durationMs int64) int64 {
	if ms < 0 {
		return 0
	}
	if durationMs > 0 && ms > durationMs {
		return durationMs
	}
	return ms
}
