package browser

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filegrip/internal/api"
	"filegrip/internal/domain"
	"filegrip/internal/eventbus"
	"filegrip/internal/logic"
)

// fakeSource is an in-memory DataSource keyed by directory path
type fakeSource struct {
	mu       sync.Mutex
	dirs     map[string][]domain.FileEntry
	disk     domain.DiskSpace
	listErr  error
	diskErr  error
	opErr    error
	uploads  map[string]string
	deleted  []string
	renamed  map[string]string
	listHits int

	// gates hold ListDirectory for a path until closed
	gates   map[string]chan struct{}
	entered chan string
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		dirs: map[string][]domain.FileEntry{
			"/": {
				{ID: "d1", Name: "docs", IsDirectory: true, Type: domain.TypeFolder},
				{ID: "f1", Name: "b.txt", Size: 10, Type: domain.TypeDocument},
				{ID: "f2", Name: "a.png", Size: 20, Type: domain.TypeImage},
				{ID: "f3", Name: "song.mp3", Size: 30, Type: domain.TypeAudio},
			},
			"/docs": {
				{ID: "f4", Name: "report.pdf", Size: 5, Type: domain.TypeDocument},
			},
		},
		disk:    domain.DiskSpace{TotalSpace: 100, UsedSpace: 40, FreeSpace: 60},
		uploads: map[string]string{},
		renamed: map[string]string{},
	}
}

func (f *fakeSource) ListDirectory(_ context.Context, dir string) (domain.DirectoryContents, error) {
	f.mu.Lock()
	gate, entered := f.gates[dir], f.entered
	f.mu.Unlock()
	if entered != nil {
		entered <- dir
	}
	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.listHits++
	if f.listErr != nil {
		return domain.DirectoryContents{}, f.listErr
	}
	files := append([]domain.FileEntry(nil), f.dirs[dir]...)
	for i := range files {
		files[i].Path = api.JoinPath(dir, files[i].Name)
	}
	return domain.DirectoryContents{Path: dir, ParentPath: api.ParentPath(dir), Files: files}, nil
}

func (f *fakeSource) CreateDirectory(_ context.Context, parent, name string) (domain.FileEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.opErr != nil {
		return domain.FileEntry{}, f.opErr
	}
	e := domain.FileEntry{ID: "new-" + name, Name: name, IsDirectory: true, Type: domain.TypeFolder}
	f.dirs[parent] = append(f.dirs[parent], e)
	return e, nil
}

func (f *fakeSource) Upload(_ context.Context, dir, name string, content io.Reader) (domain.FileEntry, error) {
	data, err := io.ReadAll(content)
	if err != nil {
		return domain.FileEntry{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.opErr != nil {
		return domain.FileEntry{}, f.opErr
	}
	f.uploads[api.JoinPath(dir, name)] = string(data)
	e := domain.FileEntry{ID: "up-" + name, Name: name, Size: int64(len(data)), Type: domain.TypeFromName(name)}
	f.dirs[dir] = append(f.dirs[dir], e)
	return e, nil
}

func (f *fakeSource) Delete(_ context.Context, entry domain.FileEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.opErr != nil {
		return f.opErr
	}
	f.deleted = append(f.deleted, entry.Path)
	dir := api.ParentPath(entry.Path)
	kept := f.dirs[dir][:0]
	for _, e := range f.dirs[dir] {
		if e.ID != entry.ID {
			kept = append(kept, e)
		}
	}
	f.dirs[dir] = kept
	return nil
}

func (f *fakeSource) Rename(_ context.Context, entry domain.FileEntry, newName string) (domain.FileEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.opErr != nil {
		return domain.FileEntry{}, f.opErr
	}
	f.renamed[entry.Path] = newName
	dir := api.ParentPath(entry.Path)
	for i, e := range f.dirs[dir] {
		if e.ID == entry.ID {
			f.dirs[dir][i].Name = newName
			return f.dirs[dir][i], nil
		}
	}
	return domain.FileEntry{}, errors.New("not found")
}

func (f *fakeSource) DiskSpace(context.Context) (domain.DiskSpace, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.diskErr != nil {
		return domain.DiskSpace{}, f.diskErr
	}
	return f.disk, nil
}

func names(entries []domain.FileEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func newController(t *testing.T, src *fakeSource, mutate func(*Options)) (*Controller, eventbus.EventBus) {
	t.Helper()
	bus := eventbus.New()
	t.Cleanup(bus.Close)
	opts := DefaultOptions()
	if mutate != nil {
		mutate(&opts)
	}
	return New(src, bus, opts), bus
}

func TestLoadSortsFoldersFirst(t *testing.T) {
	src := newFakeSource()
	c, _ := newController(t, src, nil)

	require.NoError(t, c.Load(context.Background(), "/"))

	assert.Equal(t, []string{"docs", "a.png", "b.txt", "song.mp3"}, names(c.Visible()))
	assert.Equal(t, src.disk, c.DiskSpace())
	assert.False(t, c.Loading())
}

func TestLoadAppliesAllowedTypes(t *testing.T) {
	src := newFakeSource()
	c, _ := newController(t, src, func(o *Options) {
		o.AllowedTypes = []domain.FileType{domain.TypeImage}
	})

	require.NoError(t, c.Load(context.Background(), "/"))

	assert.Equal(t, []string{"docs", "a.png"}, names(c.Visible()))
}

func TestUntypedFilesFollowTheAllowlist(t *testing.T) {
	src := newFakeSource()
	src.dirs["/"] = append(src.dirs["/"],
		domain.FileEntry{ID: "u1", Name: "notes.pdf"},
		domain.FileEntry{ID: "u2", Name: "blob"},
	)
	c, _ := newController(t, src, func(o *Options) {
		o.AllowedTypes = []domain.FileType{domain.TypeDocument}
		o.MaxFiles = 3
	})

	require.NoError(t, c.Load(context.Background(), "/"))
	assert.Equal(t, []string{"docs", "b.txt", "notes.pdf"}, names(c.Visible()))

	for _, e := range c.Visible() {
		if !e.IsDirectory {
			assert.True(t, c.Selection().Selectable(e), "%s is listed so it must be selectable", e.Name)
		}
	}
	entry, ok := c.Entry("u1")
	require.True(t, ok)
	assert.Equal(t, domain.TypeDocument, entry.Type)
	assert.True(t, c.Selection().Toggle(entry))
}

func TestSupersededLoadIsDropped(t *testing.T) {
	src := newFakeSource()
	gate := make(chan struct{})
	src.gates = map[string]chan struct{}{"/docs": gate}
	src.entered = make(chan string, 8)
	c, bus := newController(t, src, nil)

	loaded := make(chan string, 4)
	bus.Subscribe(eventbus.EventDirectoryLoaded, func(e eventbus.DomainEvent) {
		loaded <- e.(eventbus.DirectoryLoadedEvent).Path
	})

	slow := make(chan error, 1)
	go func() { slow <- c.Load(context.Background(), "/docs") }()
	select {
	case dir := <-src.entered:
		require.Equal(t, "/docs", dir)
	case <-time.After(time.Second):
		t.Fatal("first load never reached the source")
	}

	require.NoError(t, c.Load(context.Background(), "/"))
	close(gate)

	select {
	case err := <-slow:
		assert.ErrorIs(t, err, ErrStaleLoad)
	case <-time.After(time.Second):
		t.Fatal("first load never returned")
	}
	assert.Equal(t, "/", c.Path())
	assert.Equal(t, []string{"docs", "a.png", "b.txt", "song.mp3"}, names(c.Visible()))

	select {
	case p := <-loaded:
		assert.Equal(t, "/", p)
	case <-time.After(time.Second):
		t.Fatal("no DirectoryLoadedEvent")
	}
	select {
	case p := <-loaded:
		t.Fatalf("stale load published %s", p)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestLoadFailureShowsEmptyListing(t *testing.T) {
	src := newFakeSource()
	c, bus := newController(t, src, nil)
	require.NoError(t, c.Load(context.Background(), "/"))

	loaded := make(chan eventbus.DirectoryLoadedEvent, 4)
	bus.Subscribe(eventbus.EventDirectoryLoaded, func(e eventbus.DomainEvent) {
		if ev := e.(eventbus.DirectoryLoadedEvent); ev.Path == "/docs" {
			loaded <- ev
		}
	})

	src.listErr = errors.New("boom")
	err := c.Load(context.Background(), "/docs")
	require.Error(t, err)

	assert.Empty(t, c.Visible())
	assert.Equal(t, "/docs", c.Path())
	assert.Equal(t, "/", c.ParentPath())
	assert.Equal(t, err, c.LastError())

	select {
	case e := <-loaded:
		assert.Equal(t, "/docs", e.Path)
		assert.Error(t, e.Err)
	case <-time.After(time.Second):
		t.Fatal("no DirectoryLoadedEvent")
	}
}

func TestDiskSpaceFailureIsNotFatal(t *testing.T) {
	src := newFakeSource()
	src.diskErr = errors.New("no stats")
	c, _ := newController(t, src, nil)

	require.NoError(t, c.Load(context.Background(), "/"))
	assert.Equal(t, domain.DiskSpace{}, c.DiskSpace())
	assert.Len(t, c.Visible(), 4)
}

func TestNavigationResetsSelectionAndQuery(t *testing.T) {
	src := newFakeSource()
	c, _ := newController(t, src, func(o *Options) { o.MaxFiles = 3 })
	ctx := context.Background()
	require.NoError(t, c.Load(ctx, "/"))

	b, _ := c.Entry("f1")
	require.True(t, c.Selection().Toggle(b))
	c.SetQuery("txt")

	docs, _ := c.Entry("d1")
	moved, err := c.Open(ctx, docs)
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, "/docs", c.Path())
	assert.Zero(t, c.Selection().Len())
	assert.Empty(t, c.Query())
	assert.Equal(t, []string{"report.pdf"}, names(c.Visible()))

	moved, err = c.Up(ctx)
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, "/", c.Path())

	moved, err = c.Up(ctx)
	require.NoError(t, err)
	assert.False(t, moved)
}

func TestOpenFileDoesNothing(t *testing.T) {
	src := newFakeSource()
	c, _ := newController(t, src, nil)
	require.NoError(t, c.Load(context.Background(), "/"))
	hits := src.listHits

	f, _ := c.Entry("f1")
	moved, err := c.Open(context.Background(), f)
	require.NoError(t, err)
	assert.False(t, moved)
	assert.Equal(t, hits, src.listHits)
}

func TestSearchFiltersVisible(t *testing.T) {
	src := newFakeSource()
	c, _ := newController(t, src, nil)
	require.NoError(t, c.Load(context.Background(), "/"))

	c.SetQuery("PNG")
	assert.Equal(t, []string{"a.png"}, names(c.Visible()))
	assert.Len(t, c.Entries(), 4)
}

func TestReloadReconcilesSelection(t *testing.T) {
	src := newFakeSource()
	c, _ := newController(t, src, func(o *Options) { o.MaxFiles = 3 })
	ctx := context.Background()
	require.NoError(t, c.Load(ctx, "/"))

	b, _ := c.Entry("f1")
	a, _ := c.Entry("f2")
	c.Selection().Toggle(b)
	c.Selection().Toggle(a)

	require.NoError(t, c.Delete(ctx, b))

	assert.Equal(t, []string{"/b.txt"}, src.deleted)
	assert.Equal(t, []string{"a.png"}, names(c.Selection().Current()))
	_, ok := c.Entry("f1")
	assert.False(t, ok)
}

func TestRenameRefreshesSelectedRecord(t *testing.T) {
	src := newFakeSource()
	c, _ := newController(t, src, func(o *Options) { o.MaxFiles = 2 })
	ctx := context.Background()
	require.NoError(t, c.Load(ctx, "/"))

	a, _ := c.Entry("f2")
	c.Selection().Toggle(a)

	require.NoError(t, c.Rename(ctx, a, "cover.png"))

	assert.Equal(t, "cover.png", src.renamed["/a.png"])
	require.Equal(t, 1, c.Selection().Len())
	assert.Equal(t, "cover.png", c.Selection().Current()[0].Name)
}

func TestRenameNoOps(t *testing.T) {
	src := newFakeSource()
	c, _ := newController(t, src, nil)
	ctx := context.Background()
	require.NoError(t, c.Load(ctx, "/"))
	hits := src.listHits

	a, _ := c.Entry("f2")
	require.NoError(t, c.Rename(ctx, a, "   "))
	require.NoError(t, c.Rename(ctx, a, "a.png"))

	assert.Empty(t, src.renamed)
	assert.Equal(t, hits, src.listHits)
	assert.Error(t, c.Rename(ctx, a, "../escape"))
}

func TestCreateFolder(t *testing.T) {
	src := newFakeSource()
	c, _ := newController(t, src, nil)
	ctx := context.Background()
	require.NoError(t, c.Load(ctx, "/"))

	require.NoError(t, c.CreateFolder(ctx, "  photos "))
	assert.Equal(t, []string{"docs", "photos", "a.png", "b.txt", "song.mp3"}, names(c.Visible()))

	require.NoError(t, c.CreateFolder(ctx, ""))
}

func TestFailedOperationPublishesAndReloads(t *testing.T) {
	src := newFakeSource()
	c, bus := newController(t, src, nil)
	ctx := context.Background()
	require.NoError(t, c.Load(ctx, "/"))

	failed := make(chan eventbus.OperationFailedEvent, 1)
	bus.Subscribe(eventbus.EventOperationFailed, func(e eventbus.DomainEvent) {
		failed <- e.(eventbus.OperationFailedEvent)
	})

	src.opErr = errors.New("read only")
	hits := src.listHits
	err := c.CreateFolder(ctx, "x")
	require.Error(t, err)
	assert.ErrorIs(t, err, src.opErr)
	assert.Equal(t, hits+1, src.listHits)

	select {
	case e := <-failed:
		assert.Equal(t, "create", e.Op)
		assert.Equal(t, "/x", e.Path)
	case <-time.After(time.Second):
		t.Fatal("no OperationFailedEvent")
	}
}

func TestUploadFiles(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for _, n := range []string{"one.txt", "two.txt", "three.txt"} {
		p := filepath.Join(dir, n)
		require.NoError(t, os.WriteFile(p, []byte(n), 0o644))
		paths = append(paths, p)
	}
	paths = append(paths, filepath.Join(dir, "missing.txt"))

	src := newFakeSource()
	c, _ := newController(t, src, func(o *Options) { o.UploadConcurrency = 2 })
	ctx := context.Background()
	require.NoError(t, c.Load(ctx, "/docs"))

	err := c.UploadFiles(ctx, paths)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	assert.Equal(t, map[string]string{
		"/docs/one.txt":   "one.txt",
		"/docs/two.txt":   "two.txt",
		"/docs/three.txt": "three.txt",
	}, src.uploads)
	assert.Len(t, c.Visible(), 4)
}

func TestUploadSingle(t *testing.T) {
	p := filepath.Join(t.TempDir(), "pic.png")
	require.NoError(t, os.WriteFile(p, []byte("png"), 0o644))

	src := newFakeSource()
	c, _ := newController(t, src, nil)
	ctx := context.Background()
	require.NoError(t, c.Load(ctx, "/"))

	require.NoError(t, c.Upload(ctx, p))
	assert.Equal(t, "png", src.uploads["/pic.png"])
	assert.Error(t, c.Upload(ctx, t.TempDir()))
}

func TestPreferenceChangesArePublished(t *testing.T) {
	src := newFakeSource()
	c, bus := newController(t, src, nil)

	changed := make(chan eventbus.ConfigChangedEvent, 4)
	bus.Subscribe(eventbus.EventConfigChanged, func(e eventbus.DomainEvent) {
		changed <- e.(eventbus.ConfigChangedEvent)
	})

	c.Sorting().SetKey(logic.SortBySize)
	select {
	case e := <-changed:
		assert.Equal(t, "size", e.SortKey)
		assert.Equal(t, "list", e.ViewMode)
	case <-time.After(time.Second):
		t.Fatal("no ConfigChangedEvent for sort")
	}

	c.ToggleViewMode()
	select {
	case e := <-changed:
		assert.Equal(t, "grid", e.ViewMode)
		assert.Equal(t, uint64(2), e.Seq, "later changes carry a higher sequence")
	case <-time.After(time.Second):
		t.Fatal("no ConfigChangedEvent for view mode")
	}
}

func TestParseViewMode(t *testing.T) {
	v, err := ParseViewMode("GRID")
	require.NoError(t, err)
	assert.Equal(t, ViewGrid, v)

	v, err = ParseViewMode("")
	require.NoError(t, err)
	assert.Equal(t, ViewList, v)

	_, err = ParseViewMode("tiles")
	assert.Error(t, err)
}
