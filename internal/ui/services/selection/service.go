package selection

import (
	"slices"
	"sync"

	"filegrip/internal/domain"
	"filegrip/internal/logic"
	"filegrip/internal/ui/services/events"
)

// Service keeps the files picked by the user under a count limit and a type allowlist.
// Rejected toggles are ignored without notifying anyone.
type Service struct {
	mu      sync.Mutex
	state   *State
	changed *events.Topic[[]domain.FileEntry]
}

// NewService creates a selection limited to maxCount entries of the allowed types.
// maxCount below 1 is treated as 1.
func NewService(maxCount int, allowed []domain.FileType) *Service {
	return &Service{
		state: &State{
			MaxCount: max(maxCount, 1),
			Allowed:  logic.NewTypeSet(allowed),
		},
		changed: events.NewTopic[[]domain.FileEntry](),
	}
}

// Subscribe registers an observer and returns a function that removes it
func (s *Service) Subscribe(o Observer) func() {
	return s.changed.Subscribe(o.SelectionChanged)
}

// Selectable reports whether entry could ever be toggled under the current allowlist
func (s *Service) Selectable(entry domain.FileEntry) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectableLocked(entry)
}

func (s *Service) selectableLocked(entry domain.FileEntry) bool {
	return !entry.IsDirectory && s.state.Allowed.Allows(entry.Type)
}

// Toggle adds or removes entry and reports whether the selection changed.
// When the selection is full a single-file picker swaps the entry in,
// a multi-file picker ignores the toggle.
func (s *Service) Toggle(entry domain.FileEntry) bool {
	s.mu.Lock()

	if !s.selectableLocked(entry) {
		s.mu.Unlock()
		return false
	}

	if i := s.indexLocked(entry.ID); i >= 0 {
		s.state.Selected = slices.Delete(s.state.Selected, i, i+1)
	} else if len(s.state.Selected) < s.state.MaxCount {
		s.state.Selected = append(s.state.Selected, entry)
	} else if s.state.MaxCount == 1 {
		s.state.Selected = []domain.FileEntry{entry}
	} else {
		s.mu.Unlock()
		return false
	}

	snapshot := slices.Clone(s.state.Selected)
	s.mu.Unlock()

	s.notify(snapshot)
	return true
}

// Clear empties the selection. Observers are notified even if it was already empty.
func (s *Service) Clear() {
	s.mu.Lock()
	s.state.Selected = nil
	s.mu.Unlock()

	s.notify(nil)
}

// Current returns a copy of the selection
func (s *Service) Current() []domain.FileEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.state.Selected)
}

// Contains reports whether the entry with id is selected
func (s *Service) Contains(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexLocked(id) >= 0
}

// Len returns the number of selected entries
func (s *Service) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.state.Selected)
}

// Full reports whether another distinct entry would exceed the limit
func (s *Service) Full() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.state.Selected) >= s.state.MaxCount
}

// MaxCount returns the current limit
func (s *Service) MaxCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.MaxCount
}

// SetMaxCount changes the limit for future toggles. Existing entries are kept.
func (s *Service) SetMaxCount(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.MaxCount = max(n, 1)
}

// SetAllowedTypes changes the allowlist for future toggles. Existing entries are kept.
func (s *Service) SetAllowedTypes(types []domain.FileType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Allowed = logic.NewTypeSet(types)
}

// Overflow reports whether the selection holds more entries than the limit,
// which only happens after SetMaxCount lowered it
func (s *Service) Overflow() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.state.Selected) > s.state.MaxCount
}

// TrimToLimit drops the most recently added entries beyond the limit
func (s *Service) TrimToLimit() bool {
	s.mu.Lock()
	if len(s.state.Selected) <= s.state.MaxCount {
		s.mu.Unlock()
		return false
	}
	s.state.Selected = slices.Clone(s.state.Selected[:s.state.MaxCount])
	snapshot := slices.Clone(s.state.Selected)
	s.mu.Unlock()

	s.notify(snapshot)
	return true
}

// Reconcile syncs the selection with a freshly loaded listing of the same directory.
// Entries no longer listed are dropped and the rest pick up the fresh record.
func (s *Service) Reconcile(listing []domain.FileEntry) bool {
	fresh := make(map[string]domain.FileEntry, len(listing))
	for _, e := range listing {
		fresh[e.ID] = e
	}

	s.mu.Lock()
	changed := false
	kept := s.state.Selected[:0:0]
	for _, sel := range s.state.Selected {
		e, ok := fresh[sel.ID]
		if !ok {
			changed = true
			continue
		}
		if !sameEntry(e, sel) {
			changed = true
		}
		kept = append(kept, e)
	}
	if !changed {
		s.mu.Unlock()
		return false
	}
	s.state.Selected = kept
	snapshot := slices.Clone(kept)
	s.mu.Unlock()

	s.notify(snapshot)
	return true
}

func sameEntry(a, b domain.FileEntry) bool {
	return a.ID == b.ID &&
		a.Name == b.Name &&
		a.Path == b.Path &&
		a.Size == b.Size &&
		a.ModifiedAt.Equal(b.ModifiedAt) &&
		a.Type == b.Type &&
		a.URL == b.URL &&
		a.ThumbnailURL == b.ThumbnailURL
}

func (s *Service) indexLocked(id string) int {
	return slices.IndexFunc(s.state.Selected, func(e domain.FileEntry) bool {
		return e.ID == id
	})
}

func (s *Service) notify(snapshot []domain.FileEntry) {
	s.changed.PublishEach(func() []domain.FileEntry {
		return slices.Clone(snapshot)
	})
}
