package ui

import "fmt"

// ANSI256 color codes.
const (
	colorID    = 74  // blue, entity IDs
	colorTopic = 250 // light gray, event topics
	colorMuted = 245 // medium gray, secondary text
)

var noColor bool

// RenderID returns s styled as an entity ID (blue).
func RenderID(s string) string {
	if noColor {
		return s
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", colorID, s)
}

// RenderMuted returns s in the muted (gray) color.
func RenderMuted(s string) string {
	if noColor {
		return s
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", colorMuted, s)
}

// RenderTopic returns s styled as an event topic (light gray).
func RenderTopic(s string) string {
	if noColor {
		return s
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", colorTopic, s)
}

// ForceNoColor disables color output globally.
func ForceNoColor() {
	noColor = true
}
