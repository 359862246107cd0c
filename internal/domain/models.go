package domain

import (
	"path"
	"strings"
	"time"
)

// FileType is the category tag the file API attaches to a file
type FileType string

const (
	TypeImage    FileType = "image"
	TypeVideo    FileType = "video"
	TypeAudio    FileType = "audio"
	TypeDocument FileType = "document"
	TypeArchive  FileType = "archive"
	TypeCode     FileType = "code"
	TypeFolder   FileType = "folder"
	TypeOther    FileType = "other"
)

// KnownTypes lists the categories in display order
var KnownTypes = []FileType{
	TypeImage,
	TypeVideo,
	TypeAudio,
	TypeDocument,
	TypeArchive,
	TypeCode,
	TypeOther,
}

// ParseFileType normalizes a user supplied type tag
func ParseFileType(s string) FileType {
	return FileType(strings.ToLower(strings.TrimSpace(s)))
}

var extensionTypes = map[string]FileType{
	"jpg": TypeImage, "jpeg": TypeImage, "png": TypeImage, "gif": TypeImage,
	"svg": TypeImage, "webp": TypeImage, "bmp": TypeImage,

	"pdf": TypeDocument, "doc": TypeDocument, "docx": TypeDocument, "xls": TypeDocument,
	"xlsx": TypeDocument, "ppt": TypeDocument, "pptx": TypeDocument, "txt": TypeDocument,
	"rtf": TypeDocument, "odt": TypeDocument,

	"mp4": TypeVideo, "avi": TypeVideo, "mov": TypeVideo, "wmv": TypeVideo,
	"mkv": TypeVideo, "webm": TypeVideo,

	"mp3": TypeAudio, "wav": TypeAudio, "ogg": TypeAudio, "flac": TypeAudio, "aac": TypeAudio,

	"zip": TypeArchive, "rar": TypeArchive, "tar": TypeArchive, "gz": TypeArchive, "7z": TypeArchive,

	"js": TypeCode, "ts": TypeCode, "html": TypeCode, "css": TypeCode, "php": TypeCode,
	"py": TypeCode, "java": TypeCode, "c": TypeCode, "cpp": TypeCode, "cs": TypeCode,
	"json": TypeCode,
}

// TypeFromName guesses the category of a file from its extension
func TypeFromName(name string) FileType {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
	if t, ok := extensionTypes[ext]; ok {
		return t
	}
	return TypeOther
}

// FileEntry represents one file or directory as reported by the file API
type FileEntry struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Path         string    `json:"path,omitempty"`
	Size         int64     `json:"size"` // directories usually report 0
	ModifiedAt   time.Time `json:"modifiedAt"`
	IsDirectory  bool      `json:"isDirectory"`
	Type         FileType  `json:"type,omitempty"`
	MimeType     string    `json:"mimeType,omitempty"`
	URL          string    `json:"url,omitempty"`
	ThumbnailURL string    `json:"thumbnailUrl,omitempty"`
}

// Previewable reports whether the entry is a file with a link to open
func (f FileEntry) Previewable() bool {
	return !f.IsDirectory && (f.URL != "" || f.ThumbnailURL != "")
}

// PreviewURL is the link a preview opens, the file itself before its thumbnail
func (f FileEntry) PreviewURL() string {
	if f.URL != "" {
		return f.URL
	}
	return f.ThumbnailURL
}

// DirectoryContents is a single listing snapshot
type DirectoryContents struct {
	Path       string      `json:"path"`
	ParentPath string      `json:"parentPath"`
	Files      []FileEntry `json:"files"`
}

// DiskSpace describes storage usage on the server
type DiskSpace struct {
	FreeSpace      int64 `json:"freeSpace"`
	TotalSpace     int64 `json:"totalSpace"`
	UsedSpace      int64 `json:"usedSpace"`
	UploadsDirSize int64 `json:"uploadsDirSize"`
}

// UsagePercent returns used space as a percentage in [0, 100]
func (d DiskSpace) UsagePercent() float64 {
	if d.TotalSpace <= 0 {
		return 0
	}
	p := float64(d.UsedSpace) / float64(d.TotalSpace) * 100
	if p > 100 {
		return 100
	}
	if p < 0 {
		return 0
	}
	return p
}
