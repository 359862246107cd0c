package sorting

import "filegrip/internal/logic"

// State holds sorting state
type State struct {
	Config logic.SortConfig
}

// SortConfigChangedEvent is published after every change to the sort configuration
type SortConfigChangedEvent struct {
	Old logic.SortConfig
	New logic.SortConfig
}
