package modes

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"filegrip/internal/ui/input/types"
)

type NewFolderMode struct {
	TextInputMode
}

func NewNewFolderMode(ti *textinput.Model) *NewFolderMode {
	return &NewFolderMode{
		TextInputMode: NewTextInputMode(types.ModeNewFolder, "new folder", "New folder: ", ti),
	}
}

func (m *NewFolderMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	if msg.String() != "enter" {
		return m.TextInputMode.HandleKey(msg, ctx)
	}

	name := strings.TrimSpace(m.textInput.Value())
	if name == "" {
		return []types.Action{
			types.CancelTextAction{Mode: m.mode},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	}
	return []types.Action{
		types.CreateFolderAction{Name: name},
		types.ChangeModeAction{Mode: types.ModeNormal},
	}, true
}

// UploadMode collects local file paths, separated by commas
type UploadMode struct {
	TextInputMode
}

func NewUploadMode(ti *textinput.Model) *UploadMode {
	return &UploadMode{
		TextInputMode: NewTextInputMode(types.ModeUpload, "upload", "Upload files: ", ti),
	}
}

func (m *UploadMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	if msg.String() != "enter" {
		return m.TextInputMode.HandleKey(msg, ctx)
	}

	paths := SplitPaths(m.textInput.Value())
	if len(paths) == 0 {
		return []types.Action{
			types.CancelTextAction{Mode: m.mode},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	}
	return []types.Action{
		types.UploadAction{Paths: paths},
		types.ChangeModeAction{Mode: types.ModeNormal},
	}, true
}

// SplitPaths splits a comma separated list, dropping blanks
func SplitPaths(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
