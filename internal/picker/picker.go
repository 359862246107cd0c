// Package picker runs the file picker dialog and reports how it ended.
package picker

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"filegrip/internal/api"
	"filegrip/internal/browser"
	"filegrip/internal/domain"
	"filegrip/internal/eventbus"
	"filegrip/internal/logging"
	"filegrip/internal/logic"
	"filegrip/internal/ui"
	"filegrip/internal/ui/modal"
	"filegrip/internal/ui/views"
)

// ErrCancelled is returned by Run when the dialog was dismissed without a selection
var ErrCancelled = errors.New("picker cancelled")

// Options configures a picking session
type Options struct {
	InitialPath       string
	MaxFiles          int // values below 1 mean 1
	AllowedTypes      []domain.FileType
	Theme             string
	Sort              logic.SortConfig
	ViewMode          browser.ViewMode
	Locale            language.Tag
	UploadConcurrency int

	// Exactly one of these runs when the dialog closes
	OnFinish func(files []domain.FileEntry)
	OnCancel func()
	// OnOpen runs once the first listing is shown
	OnOpen func()
	// OnPreview runs when the user previews a file, with the file shown
	OnPreview func(domain.FileEntry)

	// Bus receives the picker's domain events. Nil uses a private bus.
	Bus eventbus.EventBus
	// Inline keeps the dialog in the normal screen instead of the alt screen
	Inline bool
	// ProgramOptions are appended to the bubbletea program options
	ProgramOptions []tea.ProgramOption
}

// DefaultOptions returns single-file picking at the root
func DefaultOptions() Options {
	return Options{
		InitialPath:       "/",
		MaxFiles:          1,
		Theme:             views.DefaultTheme,
		Sort:              logic.DefaultSortConfig(),
		Locale:            language.Und,
		UploadConcurrency: 3,
	}
}

// Picker is a file picker bound to a data source
type Picker struct {
	ds    api.DataSource
	opts  Options
	theme views.Theme
}

// New validates opts and creates a picker
func New(ds api.DataSource, opts Options) (*Picker, error) {
	if ds == nil {
		return nil, errors.New("picker: data source is required")
	}
	theme, err := views.ThemeByName(opts.Theme)
	if err != nil {
		return nil, fmt.Errorf("picker: %w", err)
	}
	if opts.MaxFiles < 1 {
		opts.MaxFiles = 1
	}
	if opts.InitialPath == "" {
		opts.InitialPath = "/"
	}
	return &Picker{ds: ds, opts: opts, theme: theme}, nil
}

// Run shows the dialog until it is confirmed or cancelled. It returns the
// confirmed files, or an error wrapping ErrCancelled.
func (p *Picker) Run(ctx context.Context) ([]domain.FileEntry, error) {
	bus := p.opts.Bus
	if bus == nil {
		bus = eventbus.New()
		defer bus.Close()
	}

	b := browser.New(p.ds, bus, browser.Options{
		InitialPath:       p.opts.InitialPath,
		MaxFiles:          p.opts.MaxFiles,
		AllowedTypes:      p.opts.AllowedTypes,
		Sort:              p.opts.Sort,
		Locale:            p.opts.Locale,
		ViewMode:          p.opts.ViewMode,
		UploadConcurrency: p.opts.UploadConcurrency,
	})

	model := ui.NewModel(ctx, bus, b, p.theme)
	model.OnPreview(p.opts.OnPreview)
	if p.opts.OnOpen != nil {
		model.Modal().OnChange(func(_, to modal.State) {
			if to == modal.Open {
				p.opts.OnOpen()
			}
		})
	}

	progOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if !p.opts.Inline {
		progOpts = append(progOpts, tea.WithAltScreen())
	}
	progOpts = append(progOpts, p.opts.ProgramOptions...)
	prog := tea.NewProgram(model, progOpts...)
	model.SetProgram(prog)

	// Forward the events the status bar reports on
	var unsubscribe []func()
	for _, t := range []eventbus.EventType{
		eventbus.EventDirectoryLoaded,
		eventbus.EventOperationFailed,
		eventbus.EventOperationCompleted,
		eventbus.EventConfigSaved,
	} {
		unsubscribe = append(unsubscribe, bus.Subscribe(t, func(e eventbus.DomainEvent) {
			prog.Send(ui.EventMsg{Event: e})
		}))
	}
	defer func() {
		for _, fn := range unsubscribe {
			fn()
		}
	}()

	logging.Info("picker started",
		zap.String("path", p.opts.InitialPath),
		zap.Int("max_files", p.opts.MaxFiles),
		zap.String("theme", p.theme.Name),
	)

	_, runErr := prog.Run()
	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		return nil, fmt.Errorf("picker: %w", runErr)
	}

	if !model.Cancelled() && model.Modal().Result() == modal.Confirmed {
		files := model.Selection()
		if p.opts.OnFinish != nil {
			p.opts.OnFinish(files)
		}
		return files, nil
	}

	if p.opts.OnCancel != nil {
		p.opts.OnCancel()
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCancelled, err)
	}
	return nil, ErrCancelled
}
