package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"filegrip/internal/ui/input/types"
)

// SortOptions available for sorting
var SortOptions = []struct {
	Key         string
	Name        string
	Description string
}{
	{"name", "Name", "Sort by file name"},
	{"type", "Type", "Sort by file type"},
	{"date", "Date", "Sort by modification date"},
	{"size", "Size", "Sort by file size"},
}

type SortSelectMode struct {
	sortIndex     int
	originalIndex int // Remember the original sort when entering
}

func NewSortSelectMode() *SortSelectMode {
	return &SortSelectMode{}
}

func (m *SortSelectMode) Name() string {
	return "sort"
}

func (m *SortSelectMode) Enter(ctx types.Context) []types.Action {
	current := ctx.CurrentSort()
	m.sortIndex = 0
	m.originalIndex = 0
	for i, option := range SortOptions {
		if option.Key == current {
			m.sortIndex = i
			m.originalIndex = i
			break
		}
	}

	return []types.Action{types.UpdateSortIndexAction{Index: m.sortIndex}}
}

func (m *SortSelectMode) Exit(ctx types.Context) []types.Action {
	return nil
}

// HandleKey moves through the options and applies each one immediately
func (m *SortSelectMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true

	case "esc", "q":
		// Cancel and restore original sort
		return []types.Action{
			types.SortByAction{Criteria: SortOptions[m.originalIndex].Key},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true

	case "enter":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeNormal}}, true

	case "up", "k":
		m.sortIndex--
		if m.sortIndex < 0 {
			m.sortIndex = len(SortOptions) - 1
		}
		return m.apply(), true

	case "down", "j":
		m.sortIndex++
		if m.sortIndex >= len(SortOptions) {
			m.sortIndex = 0
		}
		return m.apply(), true

	case "o":
		return []types.Action{types.ToggleSortDirectionAction{}}, true

	case "f":
		return []types.Action{types.ToggleFoldersFirstAction{}}, true
	}

	return nil, true
}

func (m *SortSelectMode) apply() []types.Action {
	return []types.Action{
		types.UpdateSortIndexAction{Index: m.sortIndex},
		types.SortByAction{Criteria: SortOptions[m.sortIndex].Key},
	}
}

// GetCurrentIndex returns the current sort option index
func (m *SortSelectMode) GetCurrentIndex() int {
	return m.sortIndex
}
