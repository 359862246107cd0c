package types

import "filegrip/internal/domain"

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "pageup", "pagedown", "home", "end", "left", "right"
}

func (a NavigateAction) Type() string { return "navigate" }

// OpenAction enters the folder under the cursor or toggles the file under it
type OpenAction struct{}

func (a OpenAction) Type() string { return "open" }

type GoUpAction struct{}

func (a GoUpAction) Type() string { return "go_up" }

type FocusSidebarAction struct{}

func (a FocusSidebarAction) Type() string { return "focus_sidebar" }

// Selection actions
type ToggleSelectAction struct{}

func (a ToggleSelectAction) Type() string { return "toggle_select" }

type ClearSelectionAction struct{}

func (a ClearSelectionAction) Type() string { return "clear_selection" }

// PreviewAction shows the link of the file under the cursor
type PreviewAction struct{}

func (a PreviewAction) Type() string { return "preview" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
	Data string // Optional data for the mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
	Mode Mode // Which mode submitted the text
}

func (a SubmitTextAction) Type() string { return "submit_text" }

type CancelTextAction struct {
	Mode Mode
}

func (a CancelTextAction) Type() string { return "cancel_text" }

type ClearSearchAction struct{}

func (a ClearSearchAction) Type() string { return "clear_search" }

// File operations
type RefreshAction struct{}

func (a RefreshAction) Type() string { return "refresh" }

type CreateFolderAction struct {
	Name string
}

func (a CreateFolderAction) Type() string { return "create_folder" }

type UploadAction struct {
	Paths []string
}

func (a UploadAction) Type() string { return "upload" }

type RenameAction struct {
	Entry   domain.FileEntry
	NewName string
}

func (a RenameAction) Type() string { return "rename" }

type DeleteAction struct {
	Entry domain.FileEntry
}

func (a DeleteAction) Type() string { return "delete" }

// Dialog actions
type ConfirmAction struct{}

func (a ConfirmAction) Type() string { return "confirm" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q' and esc
}

func (a QuitAction) Type() string { return "quit" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type ToggleViewAction struct{}

func (a ToggleViewAction) Type() string { return "toggle_view" }

// Sort actions
type SortByAction struct {
	Criteria string
}

func (a SortByAction) Type() string { return "sort_by" }

type UpdateSortIndexAction struct {
	Index int
}

func (a UpdateSortIndexAction) Type() string { return "update_sort_index" }

type ToggleSortDirectionAction struct{}

func (a ToggleSortDirectionAction) Type() string { return "toggle_sort_direction" }

type ToggleFoldersFirstAction struct{}

func (a ToggleFoldersFirstAction) Type() string { return "toggle_folders_first" }
