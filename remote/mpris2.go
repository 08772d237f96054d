// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package remote

import (
	"errors"
	"fmt"
	"sync"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"
	"github.com/godbus/dbus/v5/prop"
	"github.com/spezifisch/tunebox/logger"
	"github.com/spezifisch/tunebox/playback"
)

const (
	mprisPath   = "/org/mpris/MediaPlayer2"
	mprisRoot   = "org.mpris.MediaPlayer2"
	mprisPlayer = "org.mpris.MediaPlayer2.Player"
	busName     = "org.mpris.MediaPlayer2.tunebox"
	trackPrefix = "/org/mpris/MediaPlayer2/Track/"

	statusPlaying = "Playing"
	statusPaused  = "Paused"
	statusStopped = "Stopped"
)

// MprisPlayer exposes the controller on the session bus. It is also a
// playback event consumer and mirrors state into the exported properties.
type MprisPlayer struct {
	dbus   *dbus.Conn
	props  *prop.Properties
	player ControlledPlayer
	logger logger.LoggerInterface

	events    chan playback.UiEvent
	done      chan struct{}
	closeOnce sync.Once

	// owned by the event goroutine
	lengthMs int64
}

func newMprisPlayer(player ControlledPlayer, logger logger.LoggerInterface) *MprisPlayer {
	return &MprisPlayer{
		player: player,
		logger: logger,
		events: make(chan playback.UiEvent, 32),
		done:   make(chan struct{}),
	}
}

func RegisterMprisPlayer(player ControlledPlayer, logger_ logger.LoggerInterface) (mpp *MprisPlayer, err error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("mpris: session bus: %w", err)
	}

	mpp = newMprisPlayer(player, logger_)
	mpp.dbus = conn
	fail := func(step string, err error) (*MprisPlayer, error) {
		conn.Close()
		return nil, fmt.Errorf("mpris: %s: %w", step, err)
	}

	if err = conn.Export(mpp, mprisPath, mprisPlayer); err != nil {
		return fail("export", err)
	}

	var playerProps = map[string]*prop.Prop{
		"CanControl":     {Value: true, Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"CanGoNext":      {Value: true, Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"CanGoPrevious":  {Value: true, Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"CanPause":       {Value: true, Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"CanPlay":        {Value: true, Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"CanSeek":        {Value: true, Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"Metadata":       {Value: emptyMetadata(), Writable: false, Emit: prop.EmitTrue, Callback: nil},
		"PlaybackStatus": {Value: statusStopped, Writable: false, Emit: prop.EmitTrue, Callback: nil},
		"Position":       {Value: int64(0), Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"Rate":           {Value: 1.0, Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"MinimumRate":    {Value: 1.0, Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"MaximumRate":    {Value: 1.0, Writable: false, Emit: prop.EmitFalse, Callback: nil},
	}

	var mediaPlayer = map[string]*prop.Prop{
		"CanQuit":             {Value: false, Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"CanRaise":            {Value: false, Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"HasTrackList":        {Value: false, Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"Identity":            {Value: "tunebox", Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"SupportedUriSchemes": {Value: []string{}, Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"SupportedMimeTypes":  {Value: []string{}, Writable: false, Emit: prop.EmitFalse, Callback: nil},
	}

	props, err := prop.Export(
		conn,
		mprisPath,
		map[string]map[string]*prop.Prop{
			mprisRoot:   mediaPlayer,
			mprisPlayer: playerProps,
		},
	)
	if err != nil {
		return fail("export properties", err)
	}
	mpp.props = props

	n := &introspect.Node{
		Name: mprisPath,
		Interfaces: []introspect.Interface{
			introspect.IntrospectData,
			prop.IntrospectData,
			{
				Name:       mprisPlayer,
				Methods:    introspect.Methods(mpp),
				Properties: props.Introspection(mprisPlayer),
			},
		},
	}
	err = conn.Export(introspect.NewIntrospectable(n), mprisPath, "org.freedesktop.DBus.Introspectable")
	if err != nil {
		return fail("export introspection", err)
	}

	reply, err := conn.RequestName(busName, dbus.NameFlagDoNotQueue)
	if err != nil {
		return fail("request name", err)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		return fail("request name", errors.New("name already owned"))
	}

	go mpp.eventLoop()
	return mpp, nil
}

func (m *MprisPlayer) Close() {
	m.closeOnce.Do(func() {
		close(m.done)
		if m.dbus == nil {
			return
		}
		if err := m.dbus.Close(); err != nil {
			m.logger.PrintError("mpp Close", err)
		}
	})
}

// SendEvent hands the event to the mpris goroutine.
func (m *MprisPlayer) SendEvent(event playback.UiEvent) {
	select {
	case m.events <- event:
	case <-m.done:
	}
}

func (m *MprisPlayer) eventLoop() {
	for {
		select {
		case <-m.done:
			return
		case ev := <-m.events:
			m.handleEvent(ev)
		}
	}
}

func (m *MprisPlayer) handleEvent(ev playback.UiEvent) {
	switch ev.Type {
	case playback.EventStatus:
		playing, _ := ev.Data.(bool)
		m.setProp("PlaybackStatus", playbackStatus(playing))

	case playback.EventTrackChanged:
		change, ok := ev.Data.(playback.TrackChange)
		if !ok {
			return
		}
		m.lengthMs = m.player.Duration()
		m.setProp("Metadata", metadataFor(change.Index, change.Track, m.lengthMs))
		m.setProp("Position", int64(0))

	case playback.EventProgress:
		data, ok := ev.Data.(playback.StatusData)
		if !ok {
			return
		}
		m.setProp("Position", data.Position*1000)
		if data.Duration != m.lengthMs {
			// duration may only be known once output started
			m.lengthMs = data.Duration
			if track, ok := m.player.CurrentTrack(); ok {
				m.setProp("Metadata", metadataFor(m.player.CurrentIndex(), track, m.lengthMs))
			}
		}

	case playback.EventFailed:
		m.setProp("PlaybackStatus", statusStopped)
	}
}

func (m *MprisPlayer) setProp(name string, value interface{}) {
	if m.props == nil {
		return
	}
	m.props.SetMust(mprisPlayer, name, value)
}

func (m *MprisPlayer) emitSeeked(positionMs int64) {
	if m.dbus == nil {
		return
	}
	if err := m.dbus.Emit(mprisPath, mprisPlayer+".Seeked", positionMs*1000); err != nil {
		m.logger.PrintError("mpris: Emit Seeked", err)
	}
}

// Mandatory functions
func (m *MprisPlayer) Next() *dbus.Error {
	m.player.Next()
	return nil
}

func (m *MprisPlayer) Previous() *dbus.Error {
	m.player.Previous()
	return nil
}

// set paused
func (m *MprisPlayer) Pause() *dbus.Error {
	m.player.Pause()
	return nil
}

// set playing
func (m *MprisPlayer) Play() *dbus.Error {
	m.player.Resume()
	return nil
}

func (m *MprisPlayer) PlayPause() *dbus.Error {
	m.player.TogglePlayPause()
	return nil
}

// Stop pauses; there is no stopped state to return to.
func (m *MprisPlayer) Stop() *dbus.Error {
	m.player.Pause()
	return nil
}

// Seek moves by offset microseconds. Seeking past the end skips to the next
// track.
func (m *MprisPlayer) Seek(offset int64) *dbus.Error {
	target, next := seekTarget(m.player.CurrentPosition(), offset, m.player.Duration())
	if next {
		m.player.Next()
		return nil
	}
	if err := m.player.Seek(target); err != nil {
		m.logger.PrintError("mpp Seek", err)
		return dbus.MakeFailedError(err)
	}
	m.emitSeeked(target)
	return nil
}

// SetPosition is ignored unless trackID names the current track and the
// position lies inside it.
func (m *MprisPlayer) SetPosition(trackID dbus.ObjectPath, position int64) *dbus.Error {
	if trackID != trackObjectPath(m.player.CurrentIndex()) {
		return nil
	}
	positionMs := position / 1000
	if positionMs < 0 || positionMs > m.player.Duration() {
		return nil
	}
	if err := m.player.Seek(positionMs); err != nil {
		m.logger.PrintError("mpp SetPosition", err)
		return dbus.MakeFailedError(err)
	}
	m.emitSeeked(positionMs)
	return nil
}

func (m *MprisPlayer) OpenUri(uri string) *dbus.Error {
	m.logger.Printf("mpris: OpenUri %s not supported", uri)
	return nil
}

func playbackStatus(playing bool) string {
	if playing {
		return statusPlaying
	}
	return statusPaused
}

func trackObjectPath(index int) dbus.ObjectPath {
	return dbus.ObjectPath(fmt.Sprintf("%s%d", trackPrefix, index))
}

// seekTarget resolves a relative seek in microseconds against the current
// position and duration in milliseconds.
func seekTarget(positionMs, offsetUs, durationMs int64) (target int64, next bool) {
	target = positionMs + offsetUs/1000
	if target < 0 {
		return 0, false
	}
	if durationMs > 0 && target > durationMs {
		return 0, true
	}
	return target, false
}

func emptyMetadata() map[string]dbus.Variant {
	return map[string]dbus.Variant{
		"mpris:trackid": dbus.MakeVariant(dbus.ObjectPath("/org/mpris/MediaPlayer2/TrackList/NoTrack")),
	}
}

func metadataFor(index int, track TrackInterface, lengthMs int64) map[string]dbus.Variant {
	return map[string]dbus.Variant{
		"mpris:trackid": dbus.MakeVariant(trackObjectPath(index)),
		"mpris:length":  dbus.MakeVariant(lengthMs * 1000), // microseconds
		"xesam:title":   dbus.MakeVariant(track.GetTitle()),
		"xesam:artist":  dbus.MakeVariant([]string{track.GetArtist()}),
		"xesam:album":   dbus.MakeVariant(track.GetAlbum()),
	}
}
