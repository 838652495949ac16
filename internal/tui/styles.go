package tui

import (
	"mindflow/internal/tui/theme"
)

// statusBarHeight is the top border plus one line of text
const statusBarHeight = 2

var (
	StatusBarStyle = theme.StatusBar
	HelpStyle      = theme.HelpHint
	StatusErrStyle = theme.Error
	StatusOkStyle  = theme.Ok
)
