// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package playback

import "time"

// poller samples progress while a track is outputting. A poller is current
// only while c.poll points at it; a replaced poller exits on its next wakeup
// without emitting.
type poller struct {
	stop chan struct{}
}

func (c *Controller) restartPollLocked() {
	c.stopPollLocked()
	p := &poller{stop: make(chan struct{})}
	c.poll = p
	go c.runPoller(p, c.interval)
}

func (c *Controller) stopPollLocked() {
	if c.poll == nil {
		return
	}
	close(c.poll.stop)
	c.poll = nil
}

func (c *Controller) runPoller(p *poller, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if !c.sampleProgress(p) {
		return
	}
	for {
		select {
		case <-p.stop:
			return
		case <-ticker.C:
			if !c.sampleProgress(p) {
				return
			}
		}
	}
}

// sampleProgress emits one progress event if p is still current and the
// decoder is outputting. It returns false once p has been replaced.
func (c *Controller) sampleProgress(p *poller) bool {
	var evs events

	c.mu.Lock()
	if c.poll != p {
		c.mu.Unlock()
		return false
	}
	if d := c.slot.live(); d != nil && d.IsPlaying() {
		var data StatusData
		if pos, err := d.Position(); err == nil {
			data.Position = pos
		}
		if dur, err := d.Duration(); err == nil {
			data.Duration = dur
		}
		evs.add(EventProgress, data)
	}
	c.queueLocked(evs)
	c.mu.Unlock()

	c.deliver()
	return true
}
