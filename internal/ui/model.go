package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"filegrip/internal/browser"
	"filegrip/internal/domain"
	"filegrip/internal/eventbus"
	"filegrip/internal/logging"
	"filegrip/internal/logic"
	"filegrip/internal/ui/commands"
	"filegrip/internal/ui/handlers"
	"filegrip/internal/ui/input"
	"filegrip/internal/ui/input/modes"
	inputtypes "filegrip/internal/ui/input/types"
	"filegrip/internal/ui/modal"
	"filegrip/internal/ui/services/navigation"
	"filegrip/internal/ui/services/selection"
	"filegrip/internal/ui/state"
	"filegrip/internal/ui/viewmodels"
	"filegrip/internal/ui/views"
)

const statusTimeout = 3 * time.Second

// Model is the picker dialog
type Model struct {
	ctx     context.Context
	bus     eventbus.EventBus
	browser *browser.Controller
	modal   *modal.Modal
	state   *state.AppState

	navigator    *navigation.Service
	renderer     *views.Renderer
	eventHandler *handlers.EventHandler
	viewModel    *viewmodels.ViewModel
	cmdExecutor  *commands.Executor
	inputHandler *input.Handler
	helpOps      *HelpOps

	result []domain.FileEntry

	preview   *domain.FileEntry
	onPreview func(domain.FileEntry)

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates the dialog for b. Nothing is fetched until Init.
func NewModel(ctx context.Context, bus eventbus.EventBus, b *browser.Controller, theme views.Theme) *Model {
	if ctx == nil {
		ctx = context.Background()
	}
	appState := state.NewAppState()

	m := &Model{
		ctx:          ctx,
		bus:          bus,
		browser:      b,
		modal:        modal.New(),
		state:        appState,
		navigator:    navigation.NewService(nil, nil),
		renderer:     views.NewRenderer(theme),
		eventHandler: handlers.NewEventHandler(appState),
		cmdExecutor:  commands.NewExecutor(ctx, appState, b),
		inputHandler: input.New(),
		helpOps:      NewHelpOps(),
	}
	m.navigator.SetCountFunction(func() int { return len(m.browser.Visible()) })
	m.viewModel = viewmodels.NewViewModel(appState, b, m.navigator, m.modal)

	// Confirm follows the selection
	b.Selection().Subscribe(selection.ObserverFunc(func(sel []domain.FileEntry) {
		m.modal.SetConfirmEnabled(len(sel) > 0)
	}))
	m.modal.SetConfirmEnabled(b.Selection().Len() > 0)

	m.modal.OnChange(func(from, to modal.State) {
		logging.Debug("modal transition", zap.Stringer("from", from), zap.Stringer("to", to))
	})

	if idx := views.ShortcutIndex(b.Path()); idx >= 0 {
		appState.SidebarIndex = idx
	}
	return m
}

// OnPreview registers fn to run whenever a file is previewed
func (m *Model) OnPreview(fn func(domain.FileEntry)) {
	m.onPreview = fn
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.helpOps.SetProgram(p)
}

// Modal returns the dialog lifecycle
func (m *Model) Modal() *modal.Modal {
	return m.modal
}

// Selection returns the confirmed files; empty unless the dialog was confirmed
func (m *Model) Selection() []domain.FileEntry {
	return m.result
}

// Cancelled reports whether the dialog was dismissed without confirming
func (m *Model) Cancelled() bool {
	return m.modal.Result() == modal.Cancelled
}

// Init opens the dialog and fetches the first listing
func (m *Model) Init() tea.Cmd {
	if err := m.modal.Open(); err != nil {
		logging.Warn("failed to open picker", zap.Error(err))
		return nil
	}
	return tea.Batch(m.cmdExecutor.ExecuteLoad(m.browser.Path()), tick())
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	default:
		// Handle non-keyboard messages
		if cmd := m.inputHandler.Update(msg); cmd != nil {
			return m, cmd
		}
		return m.handleNonKeyboardMsg(msg)
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modal.State() {
	case modal.Open:
	case modal.Opening:
		// Only an abort gets through before the first listing arrives
		if msg.String() == "ctrl+c" {
			return m, m.cancel(true)
		}
		return m, nil
	default:
		return m, nil
	}

	if m.preview != nil {
		switch msg.String() {
		case "esc", "p", "q", "enter":
			m.preview = nil
		case "ctrl+c":
			return m, m.cancel(true)
		}
		return m, nil
	}

	if m.state.ShowHelp {
		switch msg.String() {
		case "esc", "?", "q":
			m.state.ShowHelp = false
			m.state.HelpScrollOffset = 0
		case "up", "k":
			if m.state.HelpScrollOffset > 0 {
				m.state.HelpScrollOffset--
			}
		case "down", "j":
			if m.state.HelpScrollOffset < strings.Count(m.renderer.HelpContent(), "\n") {
				m.state.HelpScrollOffset++
			}
		case "ctrl+c":
			return m, m.cancel(true)
		}
		return m, nil
	}

	ctx := input.NewModelContext(m.state, m.browser, m.navigator, m.modal)
	actions, cmd := m.inputHandler.HandleKey(msg, ctx)

	cmds := []tea.Cmd{}
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	for _, action := range actions {
		if actionCmd := m.processAction(action); actionCmd != nil {
			cmds = append(cmds, actionCmd)
		}
	}
	m.updateLayout()

	return m, tea.Batch(cmds...)
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	logging.Debug("processAction", zap.String("action", action.Type()))
	switch a := action.(type) {
	case inputtypes.NavigateAction:
		if m.state.SidebarFocused {
			m.moveSidebar(a.Direction)
			return nil
		}
		m.navigator.Navigate(navigation.Direction(a.Direction))

	case inputtypes.FocusSidebarAction:
		m.state.SidebarFocused = !m.state.SidebarFocused
		if m.state.SidebarFocused {
			if idx := views.ShortcutIndex(m.browser.Path()); idx >= 0 {
				m.state.SidebarIndex = idx
			}
		}

	case inputtypes.OpenAction:
		if m.state.SidebarFocused {
			m.state.SidebarFocused = false
			return m.cmdExecutor.ExecuteLoad(views.Shortcuts[m.state.SidebarIndex].Path)
		}
		entry, ok := m.currentEntry()
		if !ok {
			return nil
		}
		if entry.IsDirectory {
			return m.cmdExecutor.ExecuteOpen(entry)
		}
		return m.toggle(entry)

	case inputtypes.GoUpAction:
		return m.cmdExecutor.ExecuteUp()

	case inputtypes.ToggleSelectAction:
		entry, ok := m.currentEntry()
		if !ok {
			return nil
		}
		return m.toggle(entry)

	case inputtypes.PreviewAction:
		entry, ok := m.currentEntry()
		if !ok || entry.IsDirectory {
			return nil
		}
		if !entry.Previewable() {
			m.state.SetStatus(fmt.Sprintf("No preview available for %s", entry.Name), true)
			return m.clearStatusAfter()
		}
		m.preview = &entry
		logging.Debug("preview", zap.String("path", entry.Path), zap.String("url", entry.PreviewURL()))
		if m.onPreview != nil {
			m.onPreview(entry)
		}

	case inputtypes.ClearSelectionAction:
		m.browser.Selection().Clear()
		m.state.SetStatus("Selection cleared", false)
		return m.clearStatusAfter()

	case inputtypes.UpdateTextAction:
		m.state.InputText = a.Text
		if m.inputHandler.CurrentMode() == inputtypes.ModeSearch {
			m.setQuery(a.Text)
		}

	case inputtypes.SubmitTextAction:
		m.state.InputText = ""
		if a.Mode == inputtypes.ModeSearch {
			m.setQuery(strings.TrimSpace(a.Text))
		}

	case inputtypes.CancelTextAction:
		m.state.InputText = ""
		if a.Mode == inputtypes.ModeSearch {
			m.setQuery("")
		}

	case inputtypes.ClearSearchAction:
		m.setQuery("")

	case inputtypes.RefreshAction:
		return m.cmdExecutor.ExecuteReload()

	case inputtypes.CreateFolderAction:
		return m.cmdExecutor.ExecuteCreateFolder(a.Name)

	case inputtypes.UploadAction:
		return m.cmdExecutor.ExecuteUpload(a.Paths)

	case inputtypes.RenameAction:
		return m.cmdExecutor.ExecuteRename(a.Entry, a.NewName)

	case inputtypes.DeleteAction:
		return m.cmdExecutor.ExecuteDelete(a.Entry)

	case inputtypes.ConfirmAction:
		return m.confirm()

	case inputtypes.QuitAction:
		return m.cancel(a.Force)

	case inputtypes.ToggleHelpAction:
		if m.program != nil {
			return m.fetchHelpPager(m.renderer.HelpContent())
		}
		m.state.ShowHelp = !m.state.ShowHelp
		m.state.HelpScrollOffset = 0

	case inputtypes.ToggleViewAction:
		m.browser.ToggleViewMode()
		m.updateLayout()
		m.navigator.Clamp()

	case inputtypes.SortByAction:
		key, err := logic.ParseSortKey(a.Criteria)
		if err != nil {
			logging.Warn("unknown sort key", zap.String("key", a.Criteria))
			return nil
		}
		m.browser.Sorting().SetKey(key)

	case inputtypes.UpdateSortIndexAction:
		m.state.SortOptionIndex = a.Index

	case inputtypes.ToggleSortDirectionAction:
		m.browser.Sorting().ToggleDirection()

	case inputtypes.ToggleFoldersFirstAction:
		m.browser.Sorting().ToggleFoldersFirst()
	}

	return nil
}

// handleNonKeyboardMsg handles non-keyboard messages
func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case EventMsg:
		setAt := m.state.StatusSetAt
		cmd := m.eventHandler.HandleEvent(msg.Event)
		if !m.state.StatusSetAt.Equal(setAt) {
			return m, tea.Batch(cmd, m.clearStatusAfter())
		}
		return m, cmd

	case commands.LoadedMsg:
		if m.modal.State() == modal.Opening {
			if err := m.modal.Opened(); err != nil {
				logging.Warn("failed to finish opening", zap.Error(err))
			}
		}
		if msg.Moved {
			m.navigator.Reset()
		} else {
			m.navigator.Clamp()
		}
		if !m.state.SidebarFocused {
			if idx := views.ShortcutIndex(msg.Path); idx >= 0 {
				m.state.SidebarIndex = idx
			}
		}
		return m, nil

	case commands.OperationDoneMsg:
		m.state.Done(msg.Op)
		m.navigator.Clamp()
		if msg.Err != nil {
			logging.Debug("operation finished with error", zap.String("op", msg.Op), zap.Error(msg.Err))
		}
		return m, nil

	case closedMsg:
		if err := m.modal.Closed(); err != nil {
			logging.Warn("failed to close picker", zap.Error(err))
		}
		if m.modal.Result() == modal.Confirmed {
			m.publish(eventbus.SelectionConfirmedEvent{Files: m.result})
		} else {
			m.publish(eventbus.PickerCancelledEvent{})
		}
		return m, tea.Quit

	case tickMsg:
		// Don't continue tick loop if we're in pager mode or closed
		if m.state.InPagerMode || !m.modal.IsVisible() {
			return m, nil
		}
		return m, tick()

	case helpPagerMsg:
		if msg.err != nil {
			// Pager failed, fall back to the popup
			logging.Warn("help pager failed", zap.Error(msg.err))
			m.state.ShowHelp = true
			m.state.HelpScrollOffset = 0
		}
		return m, nil

	case pauseRenderingMsg:
		m.state.InPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.state.InPagerMode = false
		return m, tick()

	case clearStatusMsg:
		if m.state.StatusSetAt.Equal(msg.setAt) {
			m.state.ClearStatus()
		}
		return m, nil
	}
	return m, nil
}

// View renders the UI
func (m *Model) View() string {
	if m.state.InPagerMode {
		return ""
	}
	if m.state.Width == 0 {
		return "Loading..."
	}

	mode := m.inputHandler.CurrentMode()
	m.viewModel.SetInputMode(mode)
	if ti := m.inputHandler.TextInput(); ti != nil {
		m.viewModel.UpdateTextInput(*ti)
	}

	var target *domain.FileEntry
	if cm, ok := m.inputHandler.ModeHandler(inputtypes.ModeDeleteConfirm).(*modes.ConfirmMode); ok && mode == inputtypes.ModeDeleteConfirm {
		if entry, ok := cm.Target(); ok {
			target = &entry
		}
	}
	m.viewModel.SetDeleteTarget(target)
	m.viewModel.SetPreviewTarget(m.preview)

	return m.renderer.Render(m.viewModel.BuildViewState())
}

// confirm closes the dialog with the current selection
func (m *Model) confirm() tea.Cmd {
	if err := m.modal.Confirm(); err != nil {
		m.state.SetStatus("Select at least one file first", true)
		return m.clearStatusAfter()
	}
	m.result = m.browser.Selection().Current()
	logging.Info("selection confirmed", zap.Int("count", len(m.result)))
	return closeCmd()
}

// cancel closes the dialog without a selection
func (m *Model) cancel(force bool) tea.Cmd {
	if m.modal.State() == modal.Opening {
		if err := m.modal.Opened(); err != nil {
			logging.Warn("failed to finish opening", zap.Error(err))
		}
	}
	if err := m.modal.Cancel(); err != nil {
		logging.Debug("cancel ignored", zap.Error(err))
		if force {
			return tea.Quit
		}
		return nil
	}
	m.result = nil
	logging.Info("picker cancelled")
	return closeCmd()
}

func (m *Model) toggle(entry domain.FileEntry) tea.Cmd {
	sel := m.browser.Selection()
	if !sel.Selectable(entry) {
		if entry.IsDirectory {
			return nil
		}
		m.state.SetStatus(fmt.Sprintf("%s files cannot be selected here", entry.Type), true)
		return m.clearStatusAfter()
	}
	if !sel.Toggle(entry) {
		m.state.SetStatus(fmt.Sprintf("You can select at most %d files", sel.MaxCount()), true)
		return m.clearStatusAfter()
	}
	return nil
}

func (m *Model) currentEntry() (domain.FileEntry, bool) {
	return input.NewModelContext(m.state, m.browser, m.navigator, m.modal).CurrentEntry()
}

func (m *Model) setQuery(q string) {
	if q == m.browser.Query() {
		return
	}
	m.browser.SetQuery(q)
	m.navigator.Reset()
}

func (m *Model) moveSidebar(direction string) {
	last := len(views.Shortcuts) - 1
	switch direction {
	case "up":
		if m.state.SidebarIndex > 0 {
			m.state.SidebarIndex--
		}
	case "down":
		if m.state.SidebarIndex < last {
			m.state.SidebarIndex++
		}
	case "home", "pageup":
		m.state.SidebarIndex = 0
	case "end", "pagedown":
		m.state.SidebarIndex = last
	}
}

// updateLayout sizes the listing for the window and view mode
func (m *Model) updateLayout() {
	if m.state.Height == 0 {
		return
	}
	mode := m.inputHandler.CurrentMode()
	promptOpen := mode != inputtypes.ModeNormal && mode != inputtypes.ModeDeleteConfirm
	m.navigator.SetViewportHeight(views.ListRows(m.state.Height, promptOpen))

	cols := 1
	if m.browser.ViewMode() == browser.ViewGrid {
		cols = views.GridColumns(m.state.Width)
	}
	m.navigator.SetColumns(cols)
}

// fetchHelpPager returns a command that shows help using ov pager
func (m *Model) fetchHelpPager(helpContent string) tea.Cmd {
	return func() tea.Msg {
		m.program.Send(pauseRenderingMsg{})
		err := m.helpOps.ShowHelpInPager(helpContent)
		m.program.Send(resumeRenderingMsg{})
		return helpPagerMsg{err: err}
	}
}

func (m *Model) clearStatusAfter() tea.Cmd {
	setAt := m.state.StatusSetAt
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{setAt: setAt}
	})
}

func (m *Model) publish(e eventbus.DomainEvent) {
	if m.bus != nil {
		m.bus.Publish(e)
	}
}

func closeCmd() tea.Cmd {
	return func() tea.Msg { return closedMsg{} }
}

func tick() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
