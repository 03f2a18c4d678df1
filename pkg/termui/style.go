package termui

import "charm.land/lipgloss/v2"

// eolMarkStyle marks output that did not end in a newline.
var eolMarkStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
