// Package modal tracks the lifecycle of the picker dialog.
package modal

import (
	"errors"
	"fmt"
	"sync"
)

// ErrInvalidTransition is returned when a lifecycle call does not fit the current state
var ErrInvalidTransition = errors.New("invalid modal transition")

// State is a stage of the dialog lifecycle
type State int

const (
	Closed State = iota
	Opening
	Open
	Closing
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Opening:
		return "opening"
	case Open:
		return "open"
	case Closing:
		return "closing"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Result tells how the dialog was dismissed
type Result int

const (
	NoResult Result = iota
	Confirmed
	Cancelled
)

func (r Result) String() string {
	switch r {
	case Confirmed:
		return "confirmed"
	case Cancelled:
		return "cancelled"
	}
	return "none"
}

// Modal is the Closed → Opening → Open → Closing → Closed cycle
type Modal struct {
	mu             sync.Mutex
	state          State
	result         Result
	confirmEnabled bool
	onChange       []func(from, to State)
}

// New returns a closed modal
func New() *Modal {
	return &Modal{}
}

// OnChange registers fn to run after every transition
func (m *Modal) OnChange(fn func(from, to State)) {
	m.mu.Lock()
	m.onChange = append(m.onChange, fn)
	m.mu.Unlock()
}

// State returns the current state
func (m *Modal) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Result returns how the last cycle ended
func (m *Modal) Result() Result {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.result
}

// IsVisible reports whether anything is on screen
func (m *Modal) IsVisible() bool {
	return m.State() != Closed
}

// ConfirmEnabled reports whether the confirm action is available
func (m *Modal) ConfirmEnabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.confirmEnabled
}

// SetConfirmEnabled mirrors whether the selection is non-empty
func (m *Modal) SetConfirmEnabled(enabled bool) {
	m.mu.Lock()
	m.confirmEnabled = enabled
	m.mu.Unlock()
}

// Open starts showing the dialog
func (m *Modal) Open() error {
	return m.transition(Closed, Opening, func() { m.result = NoResult })
}

// Opened marks the dialog as ready for input
func (m *Modal) Opened() error {
	return m.transition(Opening, Open, nil)
}

// Close starts dismissing the dialog with r. Confirming needs ConfirmEnabled.
func (m *Modal) Close(r Result) error {
	m.mu.Lock()
	if r == Confirmed && !m.confirmEnabled {
		m.mu.Unlock()
		return fmt.Errorf("%w: confirm is disabled", ErrInvalidTransition)
	}
	if r == NoResult {
		m.mu.Unlock()
		return fmt.Errorf("%w: close needs a result", ErrInvalidTransition)
	}
	m.mu.Unlock()
	return m.transition(Open, Closing, func() { m.result = r })
}

// Closed finishes dismissing the dialog
func (m *Modal) Closed() error {
	return m.transition(Closing, Closed, nil)
}

// Confirm closes with Confirmed when enabled
func (m *Modal) Confirm() error {
	return m.Close(Confirmed)
}

// Cancel closes with Cancelled
func (m *Modal) Cancel() error {
	return m.Close(Cancelled)
}

func (m *Modal) transition(from, to State, apply func()) error {
	m.mu.Lock()
	if m.state != from {
		cur := m.state
		m.mu.Unlock()
		return fmt.Errorf("%w: %s to %s while %s", ErrInvalidTransition, from, to, cur)
	}
	m.state = to
	if apply != nil {
		apply()
	}
	listeners := append([]func(from, to State){}, m.onChange...)
	m.mu.Unlock()

	for _, fn := range listeners {
		fn(from, to)
	}
	return nil
}
