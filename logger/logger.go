// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Logger hands log lines to the log page through Prints and, once a file is
// attached, mirrors them through logrus.
type Logger struct {
	Prints chan string

	mu   sync.RWMutex
	file *logrus.Logger
}

var _ LoggerInterface = (*Logger)(nil)

func Init() *Logger {
	return &Logger{Prints: make(chan string, 100)}
}

func (l *Logger) Print(s string) {
	l.emit(logrus.InfoLevel, s)
}

func (l *Logger) Printf(s string, as ...interface{}) {
	l.emit(logrus.InfoLevel, fmt.Sprintf(s, as...))
}

func (l *Logger) PrintError(source string, err error) {
	l.emit(logrus.ErrorLevel, fmt.Sprintf("Error(%s) -> %s", source, err))
}

// emit never blocks: with nobody draining Prints (headless runs, a full
// buffer) the line only reaches the file log.
func (l *Logger) emit(level logrus.Level, line string) {
	l.mu.RLock()
	if l.file != nil {
		l.file.Log(level, line)
	}
	l.mu.RUnlock()

	if l.Prints == nil {
		return
	}
	select {
	case l.Prints <- line:
	default:
	}
}

// SetOutput mirrors all further lines to w at the given logrus level.
// Unknown levels fall back to info.
func (l *Logger) SetOutput(w io.Writer, level string, json bool) {
	file := logrus.New()
	file.SetOutput(w)
	if json {
		file.SetFormatter(&logrus.JSONFormatter{})
	} else {
		file.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	file.SetLevel(parsed)

	l.mu.Lock()
	l.file = file
	l.mu.Unlock()
}

// OpenFile attaches <dir>/<date>.log, creating dir as needed. The returned
// file should be closed on exit.
func (l *Logger) OpenFile(dir, level string, json bool) (*os.File, error) {
	if dir == "" {
		return nil, fmt.Errorf("log directory path is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	path := filepath.Join(dir, time.Now().Format("2006-01-02")+".log")
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	l.SetOutput(f, level, json)
	return f, nil
}
