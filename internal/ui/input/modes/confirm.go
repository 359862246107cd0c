package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"filegrip/internal/domain"
	"filegrip/internal/ui/input/types"
)

// ConfirmMode asks before deleting the entry under the cursor
type ConfirmMode struct {
	target    domain.FileEntry
	hasTarget bool
}

func NewConfirmMode() *ConfirmMode {
	return &ConfirmMode{}
}

func (m *ConfirmMode) Name() string {
	return "delete-confirm"
}

func (m *ConfirmMode) Enter(ctx types.Context) []types.Action {
	m.target, m.hasTarget = ctx.CurrentEntry()
	return nil
}

func (m *ConfirmMode) Exit(ctx types.Context) []types.Action {
	m.hasTarget = false
	return nil
}

// Target returns the entry awaiting confirmation
func (m *ConfirmMode) Target() (domain.FileEntry, bool) {
	return m.target, m.hasTarget
}

func (m *ConfirmMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "esc", "n", "N":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeNormal}}, true
	case "y", "Y":
		if !m.hasTarget {
			return []types.Action{types.ChangeModeAction{Mode: types.ModeNormal}}, true
		}
		return []types.Action{
			types.DeleteAction{Entry: m.target},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	}

	// Swallow everything else while the question is open
	return nil, true
}
