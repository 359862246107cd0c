package logic

import (
	"slices"
	"sync"

	"filegrip/internal/domain"
)

// MemoryListingStore is an in-memory implementation of ListingStore
type MemoryListingStore struct {
	mu       sync.RWMutex
	contents domain.DirectoryContents
	byID     map[string]int
}

// NewMemoryListingStore creates an empty listing store
func NewMemoryListingStore() *MemoryListingStore {
	return &MemoryListingStore{
		byID: make(map[string]int),
	}
}

// Replace swaps in a new listing. The store keeps its own copy of the files.
func (s *MemoryListingStore) Replace(contents domain.DirectoryContents) {
	s.mu.Lock()
	defer s.mu.Unlock()

	contents.Files = slices.Clone(contents.Files)
	s.contents = contents
	s.byID = make(map[string]int, len(contents.Files))
	for i, f := range contents.Files {
		s.byID[f.ID] = i
	}
}

// Snapshot returns a copy of the stored listing
func (s *MemoryListingStore) Snapshot() domain.DirectoryContents {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := s.contents
	out.Files = slices.Clone(s.contents.Files)
	return out
}

func (s *MemoryListingStore) Get(id string) (domain.FileEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.byID[id]
	if !ok {
		return domain.FileEntry{}, false
	}
	return s.contents.Files[i], true
}

func (s *MemoryListingStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.contents.Files)
}
