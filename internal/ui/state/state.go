package state

import "time"

// AppState contains the UI-only state of the picker. Listing, selection
// and sort state live in the browser controller.
type AppState struct {
	Width  int
	Height int

	// Status bar
	StatusMessage string
	StatusIsError bool
	StatusSetAt   time.Time

	// Sidebar
	SidebarFocused bool
	SidebarIndex   int

	// Pending remote operations, keyed by operation name
	Pending map[string]int

	// Popups
	ShowHelp         bool
	HelpScrollOffset int
	InPagerMode      bool
	SortOptionIndex  int // current selected sort option in sort mode
	InputText        string
}

// NewAppState creates a new application state
func NewAppState() *AppState {
	return &AppState{
		Pending: make(map[string]int),
	}
}

// SetStatus shows msg in the status bar
func (s *AppState) SetStatus(msg string, isError bool) {
	s.StatusMessage = msg
	s.StatusIsError = isError
	s.StatusSetAt = time.Now()
}

// ClearStatus empties the status bar
func (s *AppState) ClearStatus() {
	s.StatusMessage = ""
	s.StatusIsError = false
}

// Begin marks an operation as running
func (s *AppState) Begin(op string) {
	s.Pending[op]++
}

// Done marks one run of op as finished
func (s *AppState) Done(op string) {
	if s.Pending[op] <= 1 {
		delete(s.Pending, op)
		return
	}
	s.Pending[op]--
}

// Busy reports whether any operation is running
func (s *AppState) Busy() bool {
	return len(s.Pending) > 0
}

// PendingCount returns how many runs of op are in flight
func (s *AppState) PendingCount(op string) int {
	return s.Pending[op]
}
