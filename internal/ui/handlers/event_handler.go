package handlers

import (
	"fmt"
	"path"

	tea "github.com/charmbracelet/bubbletea"

	"filegrip/internal/eventbus"
	"filegrip/internal/ui/state"
)

// EventHandler turns domain events into status bar updates
type EventHandler struct {
	state *state.AppState
}

// NewEventHandler creates a new event handler
func NewEventHandler(appState *state.AppState) *EventHandler {
	return &EventHandler{state: appState}
}

var pastTense = map[string]string{
	"create": "Created",
	"upload": "Uploaded",
	"delete": "Deleted",
	"rename": "Renamed",
}

// HandleEvent processes domain events and returns any necessary commands
func (h *EventHandler) HandleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.DirectoryLoadedEvent:
		if e.Err != nil {
			h.state.SetStatus(fmt.Sprintf("Could not open %s: %v", e.Path, e.Err), true)
		}

	case eventbus.OperationFailedEvent:
		h.state.SetStatus(fmt.Sprintf("Failed to %s %s: %v", e.Op, path.Base(e.Path), e.Err), true)

	case eventbus.OperationCompletedEvent:
		verb, ok := pastTense[e.Op]
		if !ok {
			verb = "Finished " + e.Op
		}
		h.state.SetStatus(fmt.Sprintf("%s %s", verb, path.Base(e.Path)), false)

	case eventbus.ConfigSavedEvent:
		h.state.SetStatus("Preferences saved", false)
	}

	return nil
}
