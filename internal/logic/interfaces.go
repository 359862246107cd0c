package logic

import (
	"errors"
	"fmt"
	"strings"

	"filegrip/internal/domain"
)

// ErrUnknownSortKey is returned when a sort key name is not one of name/type/date/size
var ErrUnknownSortKey = errors.New("unknown sort key")

// SortKey selects the comparator used to order a listing
type SortKey int

const (
	SortByName SortKey = iota
	SortByType
	SortByDate
	SortBySize
)

// SortKeys lists every key in the order the sort picker shows them
var SortKeys = []SortKey{SortByName, SortByType, SortByDate, SortBySize}

func (k SortKey) String() string {
	switch k {
	case SortByName:
		return "name"
	case SortByType:
		return "type"
	case SortByDate:
		return "date"
	case SortBySize:
		return "size"
	default:
		return fmt.Sprintf("SortKey(%d)", int(k))
	}
}

// ParseSortKey converts a config or flag value into a SortKey
func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "name", "":
		return SortByName, nil
	case "type":
		return SortByType, nil
	case "date", "modified":
		return SortByDate, nil
	case "size":
		return SortBySize, nil
	}
	return SortByName, fmt.Errorf("%w: %q", ErrUnknownSortKey, s)
}

// Direction is the sort direction
type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// Toggle returns the opposite direction
func (d Direction) Toggle() Direction {
	if d == Descending {
		return Ascending
	}
	return Descending
}

// SortConfig describes how a listing should be ordered
type SortConfig struct {
	Key          SortKey
	Direction    Direction
	FoldersFirst bool
}

// DefaultSortConfig returns name, ascending, folders first
func DefaultSortConfig() SortConfig {
	return SortConfig{Key: SortByName, Direction: Ascending, FoldersFirst: true}
}

// ListingStore holds the raw listing of the directory currently on screen
type ListingStore interface {
	Replace(contents domain.DirectoryContents)
	Snapshot() domain.DirectoryContents
	Get(id string) (domain.FileEntry, bool)
	Len() int
}
