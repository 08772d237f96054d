// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"time"

	"github.com/rivo/tview"
)

const logPageLines = 100

type LogPage struct {
	Root *tview.Flex

	logList *tview.List

	// external refs
	ui *Ui
}

func (ui *Ui) createLogPage() *LogPage {
	logPage := LogPage{
		ui: ui,
	}

	logPage.logList = tview.NewList().ShowSecondaryText(false)
	logPage.logList.Box.
		SetTitle(" log ").
		SetTitleAlign(tview.AlignLeft).
		SetBorder(true)

	logPage.Root = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(logPage.logList, 0, 1, true)

	return &logPage
}

func (l *LogPage) Print(line string) {
	stamped := time.Now().Local().Format("(15:04:05) ") + line
	l.ui.app.QueueUpdateDraw(func() {
		l.add(stamped)
	})
}

// add prepends a line, dropping the oldest beyond logPageLines.
func (l *LogPage) add(line string) {
	l.logList.InsertItem(0, tview.Escape(line), "", 0, nil)
	for l.logList.GetItemCount() > logPageLines {
		l.logList.RemoveItem(-1)
	}
}
