package commands

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"filegrip/internal/browser"
	"filegrip/internal/domain"
	"filegrip/internal/ui/state"
)

// Command represents an executable action
type Command interface {
	Execute() tea.Cmd
}

// CommandContext provides context for command execution
type CommandContext struct {
	Ctx     context.Context
	State   *state.AppState
	Browser *browser.Controller
}

// LoadedMsg is sent when a listing request finished
type LoadedMsg struct {
	Path  string
	Moved bool // the current directory changed
	Err   error
}

// OperationDoneMsg is sent when a create/upload/rename/delete request finished
type OperationDoneMsg struct {
	Op  string
	Err error
}

// LoadCommand lists a directory
type LoadCommand struct {
	ctx *CommandContext
	dir string
}

// NewLoadCommand creates a new load command
func NewLoadCommand(ctx *CommandContext, dir string) *LoadCommand {
	return &LoadCommand{ctx: ctx, dir: dir}
}

// Execute starts the listing in the background
func (c *LoadCommand) Execute() tea.Cmd {
	b := c.ctx.Browser
	ctx := c.ctx.Ctx
	dir := c.dir
	return func() tea.Msg {
		before := b.Path()
		err := b.Load(ctx, dir)
		return loaded(b, before, err)
	}
}

// loaded reports a finished listing. A load overtaken by a newer one
// produces no message; the newer one reports instead.
func loaded(b *browser.Controller, before string, err error) tea.Msg {
	if errors.Is(err, browser.ErrStaleLoad) {
		return nil
	}
	return LoadedMsg{Path: b.Path(), Moved: before != b.Path(), Err: err}
}

// OpenCommand enters a folder
type OpenCommand struct {
	ctx   *CommandContext
	entry domain.FileEntry
}

// NewOpenCommand creates a new open command
func NewOpenCommand(ctx *CommandContext, entry domain.FileEntry) *OpenCommand {
	return &OpenCommand{ctx: ctx, entry: entry}
}

// Execute returns nil for files
func (c *OpenCommand) Execute() tea.Cmd {
	if !c.entry.IsDirectory {
		return nil
	}
	b := c.ctx.Browser
	ctx := c.ctx.Ctx
	entry := c.entry
	return func() tea.Msg {
		before := b.Path()
		_, err := b.Open(ctx, entry)
		return loaded(b, before, err)
	}
}

// UpCommand goes to the parent folder
type UpCommand struct {
	ctx *CommandContext
}

// NewUpCommand creates a new up command
func NewUpCommand(ctx *CommandContext) *UpCommand {
	return &UpCommand{ctx: ctx}
}

// Execute returns nil at the root
func (c *UpCommand) Execute() tea.Cmd {
	b := c.ctx.Browser
	if b.Path() == "/" {
		return nil
	}
	ctx := c.ctx.Ctx
	return func() tea.Msg {
		before := b.Path()
		_, err := b.Up(ctx)
		return loaded(b, before, err)
	}
}

// mutation runs one remote change and reports it as an OperationDoneMsg
type mutation struct {
	ctx *CommandContext
	op  string
	run func(ctx context.Context, b *browser.Controller) error
}

func (c *mutation) Execute() tea.Cmd {
	c.ctx.State.Begin(c.op)
	b := c.ctx.Browser
	ctx := c.ctx.Ctx
	op, run := c.op, c.run
	return func() tea.Msg {
		return OperationDoneMsg{Op: op, Err: run(ctx, b)}
	}
}

// NewCreateFolderCommand creates a folder in the current directory
func NewCreateFolderCommand(ctx *CommandContext, name string) Command {
	return &mutation{ctx: ctx, op: "create", run: func(c context.Context, b *browser.Controller) error {
		return b.CreateFolder(c, name)
	}}
}

// NewUploadCommand uploads local files into the current directory
func NewUploadCommand(ctx *CommandContext, paths []string) Command {
	return &mutation{ctx: ctx, op: "upload", run: func(c context.Context, b *browser.Controller) error {
		return b.UploadFiles(c, paths)
	}}
}

// NewRenameCommand renames an entry
func NewRenameCommand(ctx *CommandContext, entry domain.FileEntry, newName string) Command {
	return &mutation{ctx: ctx, op: "rename", run: func(c context.Context, b *browser.Controller) error {
		return b.Rename(c, entry, newName)
	}}
}

// NewDeleteCommand deletes an entry
func NewDeleteCommand(ctx *CommandContext, entry domain.FileEntry) Command {
	return &mutation{ctx: ctx, op: "delete", run: func(c context.Context, b *browser.Controller) error {
		return b.Delete(c, entry)
	}}
}
