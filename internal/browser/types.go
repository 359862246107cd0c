package browser

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"filegrip/internal/domain"
	"filegrip/internal/logic"
)

// ViewMode selects how the listing is drawn
type ViewMode int

const (
	ViewList ViewMode = iota
	ViewGrid
)

func (v ViewMode) String() string {
	if v == ViewGrid {
		return "grid"
	}
	return "list"
}

// ParseViewMode accepts "list" or "grid"; empty means list
func ParseViewMode(s string) (ViewMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "list":
		return ViewList, nil
	case "grid":
		return ViewGrid, nil
	}
	return ViewList, fmt.Errorf("unknown view mode %q", s)
}

// Options configures a Controller
type Options struct {
	InitialPath       string
	MaxFiles          int
	AllowedTypes      []domain.FileType
	Sort              logic.SortConfig
	Locale            language.Tag
	ViewMode          ViewMode
	UploadConcurrency int
}

// DefaultOptions returns single-file picking at the root, any type
func DefaultOptions() Options {
	return Options{
		InitialPath:       "/",
		MaxFiles:          1,
		Sort:              logic.DefaultSortConfig(),
		Locale:            language.Und,
		UploadConcurrency: 3,
	}
}
