package types

import (
	tea "github.com/charmbracelet/bubbletea"

	"filegrip/internal/domain"
)

// Mode represents an input mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
	ModeNewFolder
	ModeRename
	ModeUpload
	ModeDeleteConfirm
	ModeSort
)

func (m Mode) String() string {
	switch m {
	case ModeSearch:
		return "search"
	case ModeNewFolder:
		return "new folder"
	case ModeRename:
		return "rename"
	case ModeUpload:
		return "upload"
	case ModeDeleteConfirm:
		return "delete-confirm"
	case ModeSort:
		return "sort"
	}
	return "normal"
}

// Action represents a command the model should execute
type Action interface {
	Type() string
}

// Context provides read-only access to model state needed for input handling
type Context interface {
	CurrentIndex() int
	TotalItems() int
	HasSelection() bool
	SelectedCount() int
	CurrentEntry() (domain.FileEntry, bool)
	SidebarFocused() bool
	SearchQuery() string
	CurrentSort() string
	ConfirmEnabled() bool
}

// ModeHandler handles input for a specific mode
type ModeHandler interface {
	// HandleKey processes a key message and returns actions and whether to consume the event
	HandleKey(msg tea.KeyMsg, ctx Context) ([]Action, bool)

	// Enter is called when entering this mode
	Enter(ctx Context) []Action

	// Exit is called when leaving this mode
	Exit(ctx Context) []Action

	// Name returns the mode name for display
	Name() string
}
