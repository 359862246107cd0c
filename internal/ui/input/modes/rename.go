package modes

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"filegrip/internal/domain"
	"filegrip/internal/ui/input/types"
)

type RenameMode struct {
	textInput *textinput.Model
	target    domain.FileEntry
	hasTarget bool
}

func NewRenameMode(ti *textinput.Model) *RenameMode {
	return &RenameMode{
		textInput: ti,
	}
}

func (m *RenameMode) Name() string {
	return "rename"
}

func (m *RenameMode) Enter(ctx types.Context) []types.Action {
	m.target, m.hasTarget = ctx.CurrentEntry()
	if m.textInput != nil {
		m.textInput.Prompt = ""
		// Pre-fill with the current name
		if m.hasTarget {
			m.textInput.SetValue(m.target.Name)
			m.textInput.CursorEnd()
		}
	}
	return nil
}

func (m *RenameMode) Exit(ctx types.Context) []types.Action {
	if m.textInput != nil {
		m.textInput.Blur()
		m.textInput.Reset()
	}
	m.target = domain.FileEntry{}
	m.hasTarget = false
	return nil
}

func (m *RenameMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true

	case "esc":
		return []types.Action{
			types.CancelTextAction{Mode: types.ModeRename},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true

	case "enter":
		newName := ""
		if m.textInput != nil {
			newName = strings.TrimSpace(m.textInput.Value())
		}

		// Only rename if the name changed and is not empty
		if m.hasTarget && newName != "" && newName != m.target.Name {
			return []types.Action{
				types.RenameAction{Entry: m.target, NewName: newName},
				types.ChangeModeAction{Mode: types.ModeNormal},
			}, true
		}

		return []types.Action{
			types.CancelTextAction{Mode: types.ModeRename},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true

	default:
		return nil, false
	}
}
