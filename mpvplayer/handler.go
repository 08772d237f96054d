// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package mpvplayer

import (
	"github.com/supersonic-app/go-mpv"
)

// eventLoop reports the outcome of the initial load on opened, then turns
// end-of-file into completion callbacks until mpv shuts down.
func (p *Player) eventLoop(opened chan<- error) {
	defer close(p.done)

	for {
		evt := p.instance.WaitEvent(1)
		if evt == nil {
			continue
		}

		switch evt.Event_Id {
		case mpv.EVENT_SHUTDOWN:
			return
		case mpv.EVENT_FILE_LOADED:
			if opened != nil {
				opened <- nil
				opened = nil
			}
		case mpv.EVENT_END_FILE:
			if opened != nil {
				// the file never loaded
				err := evt.Error
				if err == nil {
					err = ErrNotLoaded
				}
				opened <- err
				opened = nil
				continue
			}
			p.finishedPlaying()
		}
	}
}

func (p *Player) finishedPlaying() {
	p.mu.Lock()
	if p.released || p.finished {
		p.mu.Unlock()
		return
	}
	p.finished = true
	cb := p.onDone
	p.mu.Unlock()

	if cb != nil {
		// the callback releases this player, which waits for this loop
		go cb()
	}
}
