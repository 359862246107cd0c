package commands

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"filegrip/internal/browser"
	"filegrip/internal/domain"
	"filegrip/internal/ui/state"
)

// Executor handles command execution
type Executor struct {
	ctx *CommandContext
}

// NewExecutor creates a new command executor
func NewExecutor(ctx context.Context, state *state.AppState, b *browser.Controller) *Executor {
	return &Executor{
		ctx: &CommandContext{
			Ctx:     ctx,
			State:   state,
			Browser: b,
		},
	}
}

// ExecuteLoad lists dir
func (e *Executor) ExecuteLoad(dir string) tea.Cmd {
	return NewLoadCommand(e.ctx, dir).Execute()
}

// ExecuteReload lists the current directory again
func (e *Executor) ExecuteReload() tea.Cmd {
	return NewLoadCommand(e.ctx, e.ctx.Browser.Path()).Execute()
}

// ExecuteOpen enters entry when it is a folder
func (e *Executor) ExecuteOpen(entry domain.FileEntry) tea.Cmd {
	return NewOpenCommand(e.ctx, entry).Execute()
}

// ExecuteUp goes to the parent folder
func (e *Executor) ExecuteUp() tea.Cmd {
	return NewUpCommand(e.ctx).Execute()
}

// ExecuteCreateFolder creates a folder
func (e *Executor) ExecuteCreateFolder(name string) tea.Cmd {
	return NewCreateFolderCommand(e.ctx, name).Execute()
}

// ExecuteUpload uploads local files
func (e *Executor) ExecuteUpload(paths []string) tea.Cmd {
	return NewUploadCommand(e.ctx, paths).Execute()
}

// ExecuteRename renames an entry
func (e *Executor) ExecuteRename(entry domain.FileEntry, newName string) tea.Cmd {
	return NewRenameCommand(e.ctx, entry, newName).Execute()
}

// ExecuteDelete deletes an entry
func (e *Executor) ExecuteDelete(entry domain.FileEntry) tea.Cmd {
	return NewDeleteCommand(e.ctx, entry).Execute()
}
