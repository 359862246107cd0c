package sorting

import (
	"fmt"

	"golang.org/x/text/language"

	"filegrip/internal/domain"
	"filegrip/internal/logic"
	"filegrip/internal/ui/services/events"
)

// Service owns the sort configuration of the current view
type Service struct {
	state  *State
	sorter *logic.Sorter
	bus    events.Publisher[SortConfigChangedEvent]
}

// NewService creates a sorting service. A nil bus drops change events.
func NewService(cfg logic.SortConfig, tag language.Tag, bus events.Publisher[SortConfigChangedEvent]) *Service {
	if bus == nil {
		bus = events.NullPublisher[SortConfigChangedEvent]{}
	}
	return &Service{
		state:  &State{Config: cfg},
		sorter: logic.NewSorter(tag),
		bus:    bus,
	}
}

// Config returns the current configuration
func (s *Service) Config() logic.SortConfig {
	return s.state.Config
}

// SetKey sets the sort key
func (s *Service) SetKey(key logic.SortKey) {
	next := s.state.Config
	next.Key = key
	s.set(next)
}

// ToggleDirection flips ascending/descending
func (s *Service) ToggleDirection() {
	next := s.state.Config
	next.Direction = next.Direction.Toggle()
	s.set(next)
}

// ToggleFoldersFirst flips the folders-first partition
func (s *Service) ToggleFoldersFirst() {
	next := s.state.Config
	next.FoldersFirst = !next.FoldersFirst
	s.set(next)
}

// NextKey cycles to the next sort key
func (s *Service) NextKey() {
	currentIndex := 0
	for i, k := range logic.SortKeys {
		if k == s.state.Config.Key {
			currentIndex = i
			break
		}
	}
	s.SetKey(logic.SortKeys[(currentIndex+1)%len(logic.SortKeys)])
}

// Apply returns entries ordered by the current configuration
func (s *Service) Apply(entries []domain.FileEntry) []domain.FileEntry {
	return s.sorter.Sort(entries, s.state.Config)
}

// Describe returns a short label such as "name ↑ folders first"
func (s *Service) Describe() string {
	arrow := "↑"
	if s.state.Config.Direction == logic.Descending {
		arrow = "↓"
	}
	label := fmt.Sprintf("%s %s", s.state.Config.Key, arrow)
	if s.state.Config.FoldersFirst {
		label += " folders first"
	}
	return label
}

func (s *Service) set(next logic.SortConfig) {
	if next == s.state.Config {
		return
	}
	old := s.state.Config
	s.state.Config = next
	s.bus.Publish(SortConfigChangedEvent{Old: old, New: next})
}
