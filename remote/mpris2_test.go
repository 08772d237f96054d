// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package remote

import (
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/spezifisch/tunebox/catalog"
	"github.com/spezifisch/tunebox/logger"
	"github.com/spezifisch/tunebox/playback"
	"github.com/stretchr/testify/assert"
)

type fakePlayer struct {
	calls    []string
	position int64
	duration int64
	index    int
	seeks    []int64
}

func (f *fakePlayer) Resume()          { f.calls = append(f.calls, "resume") }
func (f *fakePlayer) Pause()           { f.calls = append(f.calls, "pause") }
func (f *fakePlayer) TogglePlayPause() { f.calls = append(f.calls, "toggle") }
func (f *fakePlayer) Next()            { f.calls = append(f.calls, "next") }
func (f *fakePlayer) Previous()        { f.calls = append(f.calls, "previous") }

func (f *fakePlayer) Seek(positionMs int64) error {
	f.seeks = append(f.seeks, positionMs)
	return nil
}

func (f *fakePlayer) CurrentPosition() int64 { return f.position }
func (f *fakePlayer) Duration() int64        { return f.duration }
func (f *fakePlayer) IsPlaying() bool        { return false }
func (f *fakePlayer) CurrentIndex() int      { return f.index }

func (f *fakePlayer) CurrentTrack() (catalog.Track, bool) {
	return catalog.Track{Title: "Copper Wire", Artist: "Juno Reyes", Album: "Signal Path"}, true
}

func TestTransportMethods(t *testing.T) {
	p := &fakePlayer{}
	m := newMprisPlayer(p, logger.Init())

	assert.Nil(t, m.Play())
	assert.Nil(t, m.Pause())
	assert.Nil(t, m.PlayPause())
	assert.Nil(t, m.Stop())
	assert.Nil(t, m.Next())
	assert.Nil(t, m.Previous())

	assert.Equal(t, []string{"resume", "pause", "toggle", "pause", "next", "previous"}, p.calls)
}

func TestSeekRelative(t *testing.T) {
	p := &fakePlayer{position: 2000, duration: 6000}
	m := newMprisPlayer(p, logger.Init())

	assert.Nil(t, m.Seek(1500*1000))
	assert.Nil(t, m.Seek(-5000*1000))
	assert.Equal(t, []int64{3500, 0}, p.seeks)

	assert.Nil(t, m.Seek(10000*1000))
	assert.Equal(t, []string{"next"}, p.calls)
}

func TestSetPosition(t *testing.T) {
	p := &fakePlayer{index: 2, duration: 6000}
	m := newMprisPlayer(p, logger.Init())

	assert.Nil(t, m.SetPosition("/org/mpris/MediaPlayer2/Track/2", 4000*1000))
	assert.Nil(t, m.SetPosition("/org/mpris/MediaPlayer2/Track/1", 1000*1000))
	assert.Nil(t, m.SetPosition("/org/mpris/MediaPlayer2/Track/2", 7000*1000))
	assert.Nil(t, m.SetPosition("/org/mpris/MediaPlayer2/Track/2", -1))

	assert.Equal(t, []int64{4000}, p.seeks)
}

func TestSeekTarget(t *testing.T) {
	target, next := seekTarget(1000, 500_000, 6000)
	assert.Equal(t, int64(1500), target)
	assert.False(t, next)

	target, next = seekTarget(1000, -2_000_000, 6000)
	assert.Equal(t, int64(0), target)
	assert.False(t, next)

	_, next = seekTarget(5000, 2_000_000, 6000)
	assert.True(t, next)

	// unknown duration never skips
	target, next = seekTarget(5000, 2_000_000, 0)
	assert.Equal(t, int64(7000), target)
	assert.False(t, next)
}

func TestMetadata(t *testing.T) {
	track := catalog.Track{Title: "Last Light", Artist: "Mira Vale", Album: catalog.UnknownAlbum}
	md := metadataFor(4, track, 6000)

	assert.Equal(t, dbus.ObjectPath("/org/mpris/MediaPlayer2/Track/4"), md["mpris:trackid"].Value())
	assert.Equal(t, int64(6_000_000), md["mpris:length"].Value())
	assert.Equal(t, "Last Light", md["xesam:title"].Value())
	assert.Equal(t, []string{"Mira Vale"}, md["xesam:artist"].Value())
	assert.Equal(t, catalog.UnknownAlbum, md["xesam:album"].Value())
}

func TestPlaybackStatus(t *testing.T) {
	assert.Equal(t, "Playing", playbackStatus(true))
	assert.Equal(t, "Paused", playbackStatus(false))
}

func TestEventsWithoutBus(t *testing.T) {
	m := newMprisPlayer(&fakePlayer{duration: 6000}, logger.Init())

	// no bus attached: property updates are dropped without panicking
	m.handleEvent(playback.UiEvent{Type: playback.EventTrackChanged, Data: playback.TrackChange{Index: 1}})
	assert.Equal(t, int64(6000), m.lengthMs)
	m.handleEvent(playback.UiEvent{Type: playback.EventProgress, Data: playback.StatusData{Position: 10, Duration: 5000}})
	assert.Equal(t, int64(5000), m.lengthMs)
	m.handleEvent(playback.UiEvent{Type: playback.EventStatus, Data: true})
	m.handleEvent(playback.UiEvent{Type: playback.EventFailed})

	m.Close()
	m.Close()
	// after close sends return immediately
	m.SendEvent(playback.UiEvent{Type: playback.EventStatus, Data: false})
}
