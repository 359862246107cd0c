package logic

import (
	"strings"

	"filegrip/internal/domain"
)

// Filter keeps entries matching every word of query, ignoring case. A plain
// word must appear in the name; "type:image" or "type:folder" matches the
// entry type. An empty query keeps everything.
func Filter(entries []domain.FileEntry, query string) []domain.FileEntry {
	terms := strings.Fields(strings.ToLower(query))
	out := make([]domain.FileEntry, 0, len(entries))
	for _, e := range entries {
		if MatchesFilter(e, terms) {
			out = append(out, e)
		}
	}
	return out
}

// MatchesFilter checks one entry against lower-cased query terms
func MatchesFilter(e domain.FileEntry, terms []string) bool {
	name := strings.ToLower(e.Name)
	for _, term := range terms {
		if typ, ok := strings.CutPrefix(term, "type:"); ok {
			if !MatchesTypeFilter(e, typ) {
				return false
			}
			continue
		}
		if !strings.Contains(name, term) {
			return false
		}
	}
	return true
}

// MatchesTypeFilter checks the type part of a "type:" term
func MatchesTypeFilter(e domain.FileEntry, filter string) bool {
	switch filter {
	case "":
		return true
	case "folder", "dir", "directory":
		return e.IsDirectory
	case "file":
		return !e.IsDirectory
	default:
		return !e.IsDirectory && strings.HasPrefix(string(e.Type), filter)
	}
}

// FilterAllowed drops files whose type is outside the allowlist.
// Directories and untyped entries are always kept so the user can still navigate.
func FilterAllowed(entries []domain.FileEntry, allowed []domain.FileType) []domain.FileEntry {
	if len(allowed) == 0 {
		return append([]domain.FileEntry(nil), entries...)
	}
	set := NewTypeSet(allowed)
	out := make([]domain.FileEntry, 0, len(entries))
	for _, e := range entries {
		if e.IsDirectory || e.Type == "" || set.Has(e.Type) {
			out = append(out, e)
		}
	}
	return out
}

// TypeSet is an allowlist of file types. The zero value allows everything.
type TypeSet map[domain.FileType]struct{}

// NewTypeSet builds a set; nil or empty input yields an unrestricted set
func NewTypeSet(types []domain.FileType) TypeSet {
	if len(types) == 0 {
		return nil
	}
	s := make(TypeSet, len(types))
	for _, t := range types {
		s[t] = struct{}{}
	}
	return s
}

// Has reports whether t is in the set
func (s TypeSet) Has(t domain.FileType) bool {
	_, ok := s[t]
	return ok
}

// Allows reports whether t passes the allowlist
func (s TypeSet) Allows(t domain.FileType) bool {
	return len(s) == 0 || s.Has(t)
}
