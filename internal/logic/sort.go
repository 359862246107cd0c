package logic

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"filegrip/internal/domain"
)

// Sorter orders listings using locale-aware name comparison
type Sorter struct {
	tag language.Tag
}

// NewSorter creates a sorter that collates names for the given language
func NewSorter(tag language.Tag) *Sorter {
	return &Sorter{tag: tag}
}

// Sort orders entries with the root collation
func Sort(entries []domain.FileEntry, cfg SortConfig) []domain.FileEntry {
	return NewSorter(language.Und).Sort(entries, cfg)
}

// Sort returns a new slice holding exactly the given entries in cfg order.
// The input slice is left untouched. With FoldersFirst the directories and
// files are sorted separately and the directories come first.
func (s *Sorter) Sort(entries []domain.FileEntry, cfg SortConfig) []domain.FileEntry {
	out := make([]domain.FileEntry, 0, len(entries))
	if len(entries) == 0 {
		return out
	}

	// collate.Collator keeps internal buffers, one per call
	c := comparator{col: collate.New(s.tag), cfg: cfg}

	if !cfg.FoldersFirst {
		out = append(out, entries...)
		slices.SortStableFunc(out, c.compare)
		return out
	}

	var files []domain.FileEntry
	for _, e := range entries {
		if e.IsDirectory {
			out = append(out, e)
		} else {
			files = append(files, e)
		}
	}
	dirs := len(out)
	slices.SortStableFunc(out[:dirs], c.compare)
	slices.SortStableFunc(files, c.compare)
	return append(out, files...)
}

type comparator struct {
	col *collate.Collator
	cfg SortConfig
}

// compare applies the key comparator and its name tie-break, then the direction
func (c comparator) compare(a, b domain.FileEntry) int {
	var r int

	switch c.cfg.Key {
	case SortByType:
		switch {
		case a.IsDirectory && b.IsDirectory:
			r = c.names(a, b)
		case !a.IsDirectory && !b.IsDirectory:
			r = c.col.CompareString(string(a.Type), string(b.Type))
			if r == 0 {
				r = c.names(a, b)
			}
		case a.IsDirectory:
			// only reachable without folders-first
			r = -1
		default:
			r = 1
		}

	case SortByDate:
		r = a.ModifiedAt.Compare(b.ModifiedAt)
		if r == 0 {
			r = c.names(a, b)
		}

	case SortBySize:
		r = cmp.Compare(a.Size, b.Size)
		if r == 0 {
			r = c.names(a, b)
		}

	default:
		r = c.names(a, b)
	}

	if c.cfg.Direction == Descending {
		return -r
	}
	return r
}

// names collates two names, falling back to byte order when the collator sees them as equal
func (c comparator) names(a, b domain.FileEntry) int {
	if r := c.col.CompareString(a.Name, b.Name); r != 0 {
		return r
	}
	return strings.Compare(a.Name, b.Name)
}
