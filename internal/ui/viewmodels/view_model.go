package viewmodels

import (
	"github.com/charmbracelet/bubbles/textinput"

	"filegrip/internal/browser"
	"filegrip/internal/domain"
	"filegrip/internal/ui/input/types"
	"filegrip/internal/ui/modal"
	"filegrip/internal/ui/services/navigation"
	"filegrip/internal/ui/state"
	"filegrip/internal/ui/views"
)

// ViewModel transforms application state into view-ready data
type ViewModel struct {
	state            *state.AppState
	browser          *browser.Controller
	navigator        *navigation.Service
	modal            *modal.Modal
	deleteTarget     *domain.FileEntry
	previewTarget    *domain.FileEntry
	inputTransformer *InputTransformer
}

// NewViewModel creates a new view model
func NewViewModel(appState *state.AppState, b *browser.Controller, nav *navigation.Service, m *modal.Modal) *ViewModel {
	return &ViewModel{
		state:            appState,
		browser:          b,
		navigator:        nav,
		modal:            m,
		inputTransformer: NewInputTransformer(textinput.New()),
	}
}

// SetDeleteTarget sets the entry awaiting delete confirmation, nil for none
func (vm *ViewModel) SetDeleteTarget(target *domain.FileEntry) {
	vm.deleteTarget = target
}

// SetPreviewTarget sets the file shown in the preview popup, nil for none
func (vm *ViewModel) SetPreviewTarget(target *domain.FileEntry) {
	vm.previewTarget = target
}

// SetInputMode sets the current input mode
func (vm *ViewModel) SetInputMode(mode types.Mode) {
	vm.inputTransformer.SetMode(mode)
}

// UpdateTextInput updates the text input model
func (vm *ViewModel) UpdateTextInput(textInput textinput.Model) {
	vm.inputTransformer.textInput = textInput
}

// BuildViewState creates a ViewState for rendering
func (vm *ViewModel) BuildViewState() views.ViewState {
	sel := vm.browser.Selection()
	current := sel.Current()
	selected := make(map[string]bool, len(current))
	for _, f := range current {
		selected[f.ID] = true
	}

	var loadErr string
	if err := vm.browser.LastError(); err != nil {
		loadErr = err.Error()
	}

	return views.ViewState{
		Width:            vm.state.Width,
		Height:           vm.state.Height,
		Visible:          vm.modal.IsVisible(),
		Opening:          vm.modal.State() == modal.Opening,
		Path:             vm.browser.Path(),
		Entries:          vm.browser.Visible(),
		Selected:         selected,
		Selectable:       sel.Selectable,
		Cursor:           vm.navigator.GetCursor(),
		ViewportTop:      vm.navigator.GetViewportOffset(),
		ViewportRows:     vm.navigator.GetViewportHeight(),
		Columns:          vm.navigator.Columns(),
		GridView:         vm.browser.ViewMode() == browser.ViewGrid,
		SelectedCount:    len(current),
		MaxCount:         sel.MaxCount(),
		ConfirmEnabled:   vm.modal.ConfirmEnabled(),
		Disk:             vm.browser.DiskSpace(),
		Loading:          vm.browser.Loading(),
		Pending:          vm.state.Pending,
		LoadError:        loadErr,
		SearchQuery:      vm.browser.Query(),
		SortDescription:  vm.browser.Sorting().Describe(),
		SidebarFocused:   vm.state.SidebarFocused,
		SidebarIndex:     vm.state.SidebarIndex,
		StatusMessage:    vm.state.StatusMessage,
		StatusIsError:    vm.state.StatusIsError,
		InputMode:        vm.inputTransformer.GetInputModeString(),
		InputPrompt:      vm.inputTransformer.GetPrompt(),
		TextInput:        vm.inputTransformer.GetInputText(),
		DeleteTarget:     vm.deleteTarget,
		PreviewTarget:    vm.previewTarget,
		SortOptionIndex:  vm.state.SortOptionIndex,
		ShowHelp:         vm.state.ShowHelp,
		HelpScrollOffset: vm.state.HelpScrollOffset,
	}
}
