// Package browser keeps the state of the directory shown in the picker and
// runs file operations against a DataSource.
package browser

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"filegrip/internal/api"
	"filegrip/internal/domain"
	"filegrip/internal/eventbus"
	"filegrip/internal/logging"
	"filegrip/internal/logic"
	"filegrip/internal/ui/services/events"
	"filegrip/internal/ui/services/selection"
	"filegrip/internal/ui/services/sorting"
)

// ErrStaleLoad is returned by Load when a later Load started before it finished.
// The stale result is discarded.
var ErrStaleLoad = errors.New("superseded by a newer load")

// Controller is the directory view behind the picker
type Controller struct {
	ds  api.DataSource
	bus eventbus.EventBus

	selection *selection.Service
	sorting   *sorting.Service
	store     logic.ListingStore
	allowed   []domain.FileType

	uploadLimit int

	loadGen atomic.Uint64
	prefSeq atomic.Uint64

	mu       sync.RWMutex
	path     string
	disk     domain.DiskSpace
	query    string
	viewMode ViewMode
	loading  bool
	lastErr  error
}

// New creates a controller. Nothing is fetched until Load is called.
func New(ds api.DataSource, bus eventbus.EventBus, opts Options) *Controller {
	if opts.UploadConcurrency < 1 {
		opts.UploadConcurrency = 1
	}
	c := &Controller{
		ds:          ds,
		bus:         bus,
		selection:   selection.NewService(opts.MaxFiles, opts.AllowedTypes),
		store:       logic.NewMemoryListingStore(),
		allowed:     opts.AllowedTypes,
		uploadLimit: opts.UploadConcurrency,
		path:        api.NormalizePath(opts.InitialPath),
		viewMode:    opts.ViewMode,
	}

	sortChanges := events.NewTopic[sorting.SortConfigChangedEvent]()
	sortChanges.Subscribe(func(sorting.SortConfigChangedEvent) { c.publishPreferences() })
	c.sorting = sorting.NewService(opts.Sort, opts.Locale, sortChanges)
	return c
}

// Selection returns the selection manager
func (c *Controller) Selection() *selection.Service { return c.selection }

// Sorting returns the sort configuration holder
func (c *Controller) Sorting() *sorting.Service { return c.sorting }

// Path returns the directory currently shown
func (c *Controller) Path() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.path
}

// ParentPath returns the parent of the current directory
func (c *Controller) ParentPath() string {
	if p := c.store.Snapshot().ParentPath; p != "" {
		return api.NormalizePath(p)
	}
	return api.ParentPath(c.Path())
}

// DiskSpace returns the last fetched storage usage
func (c *Controller) DiskSpace() domain.DiskSpace {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.disk
}

// Loading reports whether a Load is in flight
func (c *Controller) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// LastError returns the error of the last listing fetch, if any
func (c *Controller) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastErr
}

// Query returns the search query
func (c *Controller) Query() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.query
}

// SetQuery sets the search query used by Visible
func (c *Controller) SetQuery(q string) {
	c.mu.Lock()
	c.query = q
	c.mu.Unlock()
}

// ViewMode returns the current view mode
func (c *Controller) ViewMode() ViewMode {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.viewMode
}

// SetViewMode switches between list and grid
func (c *Controller) SetViewMode(v ViewMode) {
	c.mu.Lock()
	changed := c.viewMode != v
	c.viewMode = v
	c.mu.Unlock()
	if changed {
		c.publishPreferences()
	}
}

// ToggleViewMode flips between list and grid
func (c *Controller) ToggleViewMode() {
	if c.ViewMode() == ViewList {
		c.SetViewMode(ViewGrid)
	} else {
		c.SetViewMode(ViewList)
	}
}

// Entries returns the unfiltered listing in server order
func (c *Controller) Entries() []domain.FileEntry {
	return c.store.Snapshot().Files
}

// Entry looks up an entry of the current listing
func (c *Controller) Entry(id string) (domain.FileEntry, bool) {
	return c.store.Get(id)
}

// Visible returns the listing filtered by the search query and sorted
func (c *Controller) Visible() []domain.FileEntry {
	return c.sorting.Apply(logic.Filter(c.store.Snapshot().Files, c.Query()))
}

// Load fetches dir and the disk usage. A failed listing leaves the view
// empty and is returned; a failed disk query only logs.
func (c *Controller) Load(ctx context.Context, dir string) error {
	dir = api.NormalizePath(dir)
	gen := c.loadGen.Add(1)
	c.mu.Lock()
	c.loading = true
	c.mu.Unlock()

	var (
		contents domain.DirectoryContents
		disk     domain.DiskSpace
		listErr  error
		g        errgroup.Group
	)
	g.Go(func() error {
		contents, listErr = c.ds.ListDirectory(ctx, dir)
		return nil
	})
	g.Go(func() error {
		var err error
		disk, err = c.ds.DiskSpace(ctx)
		if err != nil {
			logging.Warn("disk space unavailable", zap.Error(err))
			disk = domain.DiskSpace{}
		}
		return nil
	})
	_ = g.Wait()

	if listErr != nil {
		logging.Error("failed to list directory", zap.String("path", dir), zap.Error(listErr))
		contents = domain.DirectoryContents{Path: dir, ParentPath: api.ParentPath(dir)}
	}
	if contents.Path == "" {
		contents.Path = dir
	}
	contents.Path = api.NormalizePath(contents.Path)
	contents.Files = logic.FilterAllowed(withTypes(contents.Files), c.allowed)

	c.mu.Lock()
	if gen != c.loadGen.Load() {
		c.mu.Unlock()
		logging.Debug("dropping stale listing", zap.String("path", dir))
		return ErrStaleLoad
	}
	c.store.Replace(contents)
	moved := c.path != contents.Path
	c.path = contents.Path
	c.disk = disk
	c.loading = false
	c.lastErr = listErr
	if moved {
		c.query = ""
	}
	c.mu.Unlock()

	if moved {
		if c.selection.Len() > 0 {
			c.selection.Clear()
		}
	} else {
		c.selection.Reconcile(contents.Files)
		c.selection.TrimToLimit()
	}

	c.publish(eventbus.DirectoryLoadedEvent{
		Path:      contents.Path,
		Count:     len(contents.Files),
		DiskSpace: disk,
		Err:       listErr,
	})
	return listErr
}

// withTypes fills in the type of files a DataSource left untyped so the
// allowlist treats them the same when listing and when selecting
func withTypes(files []domain.FileEntry) []domain.FileEntry {
	out := make([]domain.FileEntry, len(files))
	for i, f := range files {
		if !f.IsDirectory && f.Type == "" {
			f.Type = domain.TypeFromName(f.Name)
		}
		out[i] = f
	}
	return out
}

// Reload fetches the current directory again
func (c *Controller) Reload(ctx context.Context) error {
	return c.Load(ctx, c.Path())
}

// Open enters entry when it is a directory. It reports whether it navigated.
func (c *Controller) Open(ctx context.Context, entry domain.FileEntry) (bool, error) {
	if !entry.IsDirectory {
		return false, nil
	}
	return true, c.Load(ctx, api.EntryPath(c.Path(), entry))
}

// Up goes to the parent directory; at the root it does nothing
func (c *Controller) Up(ctx context.Context) (bool, error) {
	if c.Path() == "/" {
		return false, nil
	}
	return true, c.Load(ctx, c.ParentPath())
}

// CreateFolder creates name in the current directory. Blank names are ignored.
func (c *Controller) CreateFolder(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	if err := validateName(name); err != nil {
		return err
	}
	dir := c.Path()
	_, err := c.ds.CreateDirectory(ctx, dir, name)
	return c.finish(ctx, "create", api.JoinPath(dir, name), err)
}

// Upload sends one local file into the current directory
func (c *Controller) Upload(ctx context.Context, localPath string) error {
	dir := c.Path()
	err := c.uploadOne(ctx, dir, localPath)
	return c.finish(ctx, "upload", api.JoinPath(dir, filepath.Base(localPath)), err)
}

// UploadFiles sends several local files with bounded concurrency and
// reloads once at the end. Every failure is reported.
func (c *Controller) UploadFiles(ctx context.Context, localPaths []string) error {
	if len(localPaths) == 0 {
		return nil
	}
	dir := c.Path()

	var (
		g    errgroup.Group
		mu   sync.Mutex
		errs []error
	)
	g.SetLimit(c.uploadLimit)
	for _, p := range localPaths {
		g.Go(func() error {
			if err := c.uploadOne(ctx, dir, p); err != nil {
				target := api.JoinPath(dir, filepath.Base(p))
				logging.Warn("upload failed", zap.String("file", p), zap.Error(err))
				c.publish(eventbus.OperationFailedEvent{Op: "upload", Path: target, Err: err})
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
				return nil
			}
			c.publish(eventbus.OperationCompletedEvent{Op: "upload", Path: api.JoinPath(dir, filepath.Base(p))})
			return nil
		})
	}
	_ = g.Wait()

	if err := c.Reload(ctx); err != nil {
		logging.Warn("reload after upload failed", zap.Error(err))
	}
	return errors.Join(errs...)
}

func (c *Controller) uploadOne(ctx context.Context, dir, localPath string) error {
	f, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", localPath, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", localPath, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", localPath)
	}

	_, err = c.ds.Upload(ctx, dir, filepath.Base(localPath), f)
	return err
}

// Delete removes entry from the server
func (c *Controller) Delete(ctx context.Context, entry domain.FileEntry) error {
	entry.Path = api.EntryPath(c.Path(), entry)
	err := c.ds.Delete(ctx, entry)
	return c.finish(ctx, "delete", entry.Path, err)
}

// Rename gives entry a new name. Blank or unchanged names are ignored.
func (c *Controller) Rename(ctx context.Context, entry domain.FileEntry, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" || newName == entry.Name {
		return nil
	}
	if err := validateName(newName); err != nil {
		return err
	}
	entry.Path = api.EntryPath(c.Path(), entry)
	_, err := c.ds.Rename(ctx, entry, newName)
	return c.finish(ctx, "rename", entry.Path, err)
}

// finish reports the outcome of a mutation and reloads the listing either way
func (c *Controller) finish(ctx context.Context, op, target string, err error) error {
	if err != nil {
		logging.Warn("operation failed", zap.String("op", op), zap.String("path", target), zap.Error(err))
		c.publish(eventbus.OperationFailedEvent{Op: op, Path: target, Err: err})
	} else {
		logging.Info("operation completed", zap.String("op", op), zap.String("path", target))
		c.publish(eventbus.OperationCompletedEvent{Op: op, Path: target})
	}

	if loadErr := c.Reload(ctx); loadErr != nil && !errors.Is(loadErr, ErrStaleLoad) {
		logging.Warn("reload failed", zap.String("op", op), zap.Error(loadErr))
	}
	if err != nil {
		return fmt.Errorf("%s %s: %w", op, target, err)
	}
	return nil
}

func (c *Controller) publishPreferences() {
	cfg := c.sorting.Config()
	c.publish(eventbus.ConfigChangedEvent{
		Seq:          c.prefSeq.Add(1),
		SortKey:      cfg.Key.String(),
		Descending:   cfg.Direction == logic.Descending,
		FoldersFirst: cfg.FoldersFirst,
		ViewMode:     c.ViewMode().String(),
	})
}

func (c *Controller) publish(e eventbus.DomainEvent) {
	if c.bus != nil {
		c.bus.Publish(e)
	}
}

// validateName rejects names that would escape the current directory
func validateName(name string) error {
	if name == "." || name == ".." || strings.ContainsAny(name, "/\\") {
		return fmt.Errorf("invalid name %q", name)
	}
	return nil
}
