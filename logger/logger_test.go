// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package logger

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintsReachChannel(t *testing.T) {
	l := Init()

	l.Print("hello")
	l.Printf("track %d", 3)
	l.PrintError("Seek", errors.New("boom"))

	assert.Equal(t, "hello", <-l.Prints)
	assert.Equal(t, "track 3", <-l.Prints)
	assert.Equal(t, "Error(Seek) -> boom", <-l.Prints)
}

func TestPrintDoesNotBlockWhenFull(t *testing.T) {
	l := Init()

	done := make(chan struct{})
	go func() {
		for i := 0; i < cap(l.Prints)*2; i++ {
			l.Printf("line %d", i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Printf blocked on a full channel")
	}
	assert.Len(t, l.Prints, cap(l.Prints))
}

func TestZeroLoggerIsUsable(t *testing.T) {
	l := &Logger{}
	assert.NotPanics(t, func() { l.Print("nobody listens") })
}

func TestSetOutputMirrorsLines(t *testing.T) {
	l := Init()
	var buf bytes.Buffer
	l.SetOutput(&buf, "debug", false)

	l.Print("mirrored")
	l.PrintError("Open", errors.New("missing"))

	out := buf.String()
	assert.Contains(t, out, "mirrored")
	assert.Contains(t, out, "level=error")
	assert.Contains(t, out, "Error(Open) -> missing")
}

func TestSetOutputRespectsLevel(t *testing.T) {
	l := Init()
	var buf bytes.Buffer
	l.SetOutput(&buf, "error", true)

	l.Print("quiet")
	assert.Empty(t, buf.String())

	l.PrintError("x", errors.New("loud"))
	assert.Contains(t, buf.String(), `"level":"error"`)
}

func TestOpenFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	l := Init()

	f, err := l.OpenFile(dir, "info", false)
	require.NoError(t, err)
	l.Print("to disk")
	require.NoError(t, f.Close())

	data, err := os.ReadFile(f.Name())
	require.NoError(t, err)
	assert.Contains(t, string(data), "to disk")

	_, err = l.OpenFile("", "info", false)
	assert.Error(t, err)
}
