package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"filegrip/internal/domain"
)

// MemorySource is a DataSource kept entirely in memory. It backs the demo
// mode and the UI tests.
type MemorySource struct {
	mu    sync.Mutex
	dirs  map[string][]domain.FileEntry
	total int64
	err   error
	now   func() time.Time
}

// NewMemorySource creates an empty tree with a root directory
func NewMemorySource(total int64) *MemorySource {
	return &MemorySource{
		dirs:  map[string][]domain.FileEntry{"/": nil},
		total: total,
		now:   time.Now,
	}
}

// SetError makes every later call fail with err until it is reset with nil
func (m *MemorySource) SetError(err error) {
	m.mu.Lock()
	m.err = err
	m.mu.Unlock()
}

// AddFile stores a file with the given content size, creating parent directories
func (m *MemorySource) AddFile(p string, size int64) domain.FileEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	p = NormalizePath(p)
	dir := m.ensureDirLocked(ParentPath(p))
	name := p[strings.LastIndex(p, "/")+1:]
	e := m.newEntryLocked(dir, name, false, size)
	m.dirs[dir] = append(m.dirs[dir], e)
	return e
}

// AddDir creates a directory and its parents
func (m *MemorySource) AddDir(p string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensureDirLocked(NormalizePath(p))
}

func (m *MemorySource) ensureDirLocked(p string) string {
	if _, ok := m.dirs[p]; ok || p == "/" {
		return p
	}
	parent := m.ensureDirLocked(ParentPath(p))
	name := p[strings.LastIndex(p, "/")+1:]
	m.dirs[parent] = append(m.dirs[parent], m.newEntryLocked(parent, name, true, 0))
	m.dirs[p] = nil
	return p
}

func (m *MemorySource) newEntryLocked(dir, name string, isDir bool, size int64) domain.FileEntry {
	e := domain.FileEntry{
		ID:          uuid.NewString(),
		Name:        name,
		Path:        JoinPath(dir, name),
		Size:        size,
		ModifiedAt:  m.now(),
		IsDirectory: isDir,
	}
	if !isDir {
		e.URL = fileURL(e.Path)
	}
	return normalizeEntry(e, dir)
}

// fileURL is the download link a MemorySource hands out for a file
func fileURL(p string) string {
	return "/files" + p
}

func (m *MemorySource) ListDirectory(ctx context.Context, dir string) (domain.DirectoryContents, error) {
	if err := m.check(ctx); err != nil {
		return domain.DirectoryContents{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	dir = NormalizePath(dir)
	files, ok := m.dirs[dir]
	if !ok {
		return domain.DirectoryContents{}, &APIError{Op: "list", Status: http.StatusNotFound, Message: "directory not found"}
	}
	return domain.DirectoryContents{
		Path:       dir,
		ParentPath: ParentPath(dir),
		Files:      append([]domain.FileEntry(nil), files...),
	}, nil
}

func (m *MemorySource) CreateDirectory(ctx context.Context, parent, name string) (domain.FileEntry, error) {
	if err := m.check(ctx); err != nil {
		return domain.FileEntry{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	parent = NormalizePath(parent)
	if _, ok := m.dirs[parent]; !ok {
		return domain.FileEntry{}, &APIError{Op: "create", Status: http.StatusNotFound, Message: "parent not found"}
	}
	if m.existsLocked(parent, name) {
		return domain.FileEntry{}, &APIError{Op: "create", Status: http.StatusConflict, Message: "already exists"}
	}
	e := m.newEntryLocked(parent, name, true, 0)
	m.dirs[parent] = append(m.dirs[parent], e)
	m.dirs[e.Path] = nil
	return e, nil
}

func (m *MemorySource) Upload(ctx context.Context, dir, name string, content io.Reader) (domain.FileEntry, error) {
	if err := m.check(ctx); err != nil {
		return domain.FileEntry{}, err
	}
	n, err := io.Copy(io.Discard, content)
	if err != nil {
		return domain.FileEntry{}, fmt.Errorf("read upload: %w", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	dir = NormalizePath(dir)
	if _, ok := m.dirs[dir]; !ok {
		return domain.FileEntry{}, &APIError{Op: "upload", Status: http.StatusNotFound, Message: "directory not found"}
	}
	e := m.newEntryLocked(dir, name, false, n)
	m.removeLocked(dir, func(f domain.FileEntry) bool { return f.Name == name && !f.IsDirectory })
	m.dirs[dir] = append(m.dirs[dir], e)
	return e, nil
}

func (m *MemorySource) Delete(ctx context.Context, entry domain.FileEntry) error {
	if err := m.check(ctx); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p := NormalizePath(entry.Path)
	if !m.removeLocked(ParentPath(p), func(f domain.FileEntry) bool { return f.ID == entry.ID || f.Path == p }) {
		return &APIError{Op: "delete", Status: http.StatusNotFound, Message: "file not found"}
	}
	for d := range m.dirs {
		if d == p || strings.HasPrefix(d, p+"/") {
			delete(m.dirs, d)
		}
	}
	return nil
}

func (m *MemorySource) Rename(ctx context.Context, entry domain.FileEntry, newName string) (domain.FileEntry, error) {
	if err := m.check(ctx); err != nil {
		return domain.FileEntry{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	oldPath := NormalizePath(entry.Path)
	dir := ParentPath(oldPath)
	if m.existsLocked(dir, newName) {
		return domain.FileEntry{}, &APIError{Op: "rename", Status: http.StatusConflict, Message: "already exists"}
	}
	for i, f := range m.dirs[dir] {
		if f.ID != entry.ID && f.Path != oldPath {
			continue
		}
		f.Name = newName
		f.Path = JoinPath(dir, newName)
		f.ModifiedAt = m.now()
		if !f.IsDirectory {
			f.Type = domain.TypeFromName(newName)
			f.URL = fileURL(f.Path)
		}
		m.dirs[dir][i] = f
		if f.IsDirectory {
			m.moveTreeLocked(oldPath, f.Path)
		}
		return f, nil
	}
	return domain.FileEntry{}, &APIError{Op: "rename", Status: http.StatusNotFound, Message: "file not found"}
}

func (m *MemorySource) DiskSpace(ctx context.Context) (domain.DiskSpace, error) {
	if err := m.check(ctx); err != nil {
		return domain.DiskSpace{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var used int64
	for _, files := range m.dirs {
		for _, f := range files {
			used += f.Size
		}
	}
	free := m.total - used
	if free < 0 {
		free = 0
	}
	return domain.DiskSpace{TotalSpace: m.total, UsedSpace: used, FreeSpace: free, UploadsDirSize: used}, nil
}

func (m *MemorySource) check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}

func (m *MemorySource) existsLocked(dir, name string) bool {
	for _, f := range m.dirs[dir] {
		if f.Name == name {
			return true
		}
	}
	return false
}

func (m *MemorySource) removeLocked(dir string, match func(domain.FileEntry) bool) bool {
	files := m.dirs[dir]
	kept := make([]domain.FileEntry, 0, len(files))
	for _, f := range files {
		if !match(f) {
			kept = append(kept, f)
		}
	}
	m.dirs[dir] = kept
	return len(kept) != len(files)
}

func (m *MemorySource) moveTreeLocked(from, to string) {
	moved := map[string][]domain.FileEntry{}
	for d, files := range m.dirs {
		if d != from && !strings.HasPrefix(d, from+"/") {
			continue
		}
		nd := to + strings.TrimPrefix(d, from)
		for i := range files {
			files[i].Path = JoinPath(nd, files[i].Name)
			if !files[i].IsDirectory {
				files[i].URL = fileURL(files[i].Path)
			}
		}
		moved[nd] = files
		delete(m.dirs, d)
	}
	for d, files := range moved {
		m.dirs[d] = files
	}
}

// NewDemoSource returns a small tree covering every sidebar shortcut
func NewDemoSource() *MemorySource {
	m := NewMemorySource(512 << 20)
	for _, d := range []string{"/images", "/documents", "/videos", "/audio", "/trash", "/images/holiday"} {
		m.AddDir(d)
	}
	m.AddFile("/readme.txt", 1200)
	m.AddFile("/logo.svg", 5300)
	m.AddFile("/images/cat.jpg", 245_000)
	m.AddFile("/images/dog.png", 512_300)
	m.AddFile("/images/holiday/beach.jpg", 1_830_000)
	m.AddFile("/images/holiday/sunset.webp", 920_000)
	m.AddFile("/documents/invoice.pdf", 88_000)
	m.AddFile("/documents/report.docx", 140_500)
	m.AddFile("/documents/budget.xlsx", 61_000)
	m.AddFile("/videos/intro.mp4", 48_200_000)
	m.AddFile("/audio/theme.mp3", 4_100_000)
	m.AddFile("/trash/old.zip", 2_000_000)
	return m
}
