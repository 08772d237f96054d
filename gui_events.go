// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import "github.com/spezifisch/tunebox/playback"

// SendEvent hands controller events to the gui event loop.
func (ui *Ui) SendEvent(event playback.UiEvent) {
	select {
	case ui.eventLoop.playbackEvents <- event:
	case <-ui.eventLoop.quit:
	}
}
