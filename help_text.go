// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

const helpPlayback = `
p/SPACE play/pause
>       next track
<       previous track
,/.     seek -10/+10 seconds
1/2     tracks/log page
?       this help
Q       quit
`

const helpPageTracks = `
ENTER   play selected track
click   play clicked track
TAB     focus the scrub bar
  LEFT/RIGHT  seek -5/+5 seconds
drag the scrub bar to seek
ESC     close help
`
