// Package styles provides shared lipgloss styles for UI components.
//
// Colors come from the active Theme, set once by Init after the config is
// loaded. The static table and the prompt package read them from here.
package styles

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Colors of the active theme
var (
	Primary color.Color = lipgloss.Color("62")
	Accent  color.Color = lipgloss.Color("212")
	Muted   color.Color = lipgloss.Color("240")
	Normal  color.Color = lipgloss.Color("252")
	Error   color.Color = lipgloss.Color("196")
)

// Common styles
var (
	Bold = lipgloss.NewStyle().Bold(true)

	// HeaderStyle is used for table headers
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(Primary)

	// AccentStyle highlights selected items
	AccentStyle = lipgloss.NewStyle().Foreground(Accent).Bold(true)

	MutedStyle  = lipgloss.NewStyle().Foreground(Muted)
	NormalStyle = lipgloss.NewStyle().Foreground(Normal)
	ErrorStyle  = lipgloss.NewStyle().Foreground(Error)
)
