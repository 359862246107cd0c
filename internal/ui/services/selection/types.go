package selection

import (
	"filegrip/internal/domain"
	"filegrip/internal/logic"
)

// State holds selection state
type State struct {
	Selected []domain.FileEntry // insertion order
	MaxCount int                // always >= 1
	Allowed  logic.TypeSet      // empty means every type
}

// Observer is notified with a private copy of the selection after every change
type Observer interface {
	SelectionChanged(selected []domain.FileEntry)
}

// ObserverFunc adapts a plain function to Observer
type ObserverFunc func(selected []domain.FileEntry)

func (f ObserverFunc) SelectionChanged(selected []domain.FileEntry) { f(selected) }
