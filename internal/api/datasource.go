// Package api talks to the file server behind the picker.
package api

import (
	"context"
	"io"
	"path"
	"strings"

	"filegrip/internal/domain"
)

// DataSource is everything the picker needs from a file server
type DataSource interface {
	ListDirectory(ctx context.Context, dir string) (domain.DirectoryContents, error)
	CreateDirectory(ctx context.Context, parent, name string) (domain.FileEntry, error)
	Upload(ctx context.Context, dir, name string, content io.Reader) (domain.FileEntry, error)
	Delete(ctx context.Context, entry domain.FileEntry) error
	Rename(ctx context.Context, entry domain.FileEntry, newName string) (domain.FileEntry, error)
	DiskSpace(ctx context.Context) (domain.DiskSpace, error)
}

// NormalizePath returns a clean absolute slash path, "/" for empty input
func NormalizePath(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	if p == "" {
		return "/"
	}
	return path.Clean("/" + p)
}

// JoinPath appends name to dir, so JoinPath("/", "a") is "/a"
func JoinPath(dir, name string) string {
	dir = NormalizePath(dir)
	if dir == "/" {
		return "/" + name
	}
	return dir + "/" + name
}

// ParentPath returns the directory containing p; the root is its own parent
func ParentPath(p string) string {
	return path.Dir(NormalizePath(p))
}

// EntryPath returns the full path of an entry listed in dir.
// The server sometimes reports the path itself; that value wins.
func EntryPath(dir string, entry domain.FileEntry) string {
	if entry.Path != "" {
		return NormalizePath(entry.Path)
	}
	return JoinPath(dir, entry.Name)
}
