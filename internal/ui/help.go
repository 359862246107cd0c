package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"
)

// helpPagerMsg contains the result of a help pager command
type helpPagerMsg struct {
	err error
}

// HelpOps shows the key reference in an external pager
type HelpOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewHelpOps creates a new help operations instance
func NewHelpOps() *HelpOps {
	return &HelpOps{}
}

// SetProgram sets the program reference for terminal management
func (h *HelpOps) SetProgram(p *tea.Program) {
	h.program = p
}

// ShowHelpInPager shows help content using ov pager
func (h *HelpOps) ShowHelpInPager(helpContent string) error {
	if h.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := h.program.ReleaseTerminal(); err != nil {
		return err
	}

	// Ensure terminal is restored even if ov fails
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = h.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(helpContent))
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
