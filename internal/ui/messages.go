package ui

import (
	"time"

	"filegrip/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// tickMsg is sent on a timer for animations
type tickMsg time.Time

// closedMsg finishes the closing transition
type closedMsg struct{}

// clearStatusMsg clears the status bar if it still shows the message set at
type clearStatusMsg struct {
	setAt time.Time
}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
