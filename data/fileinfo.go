package data

import (
	"path"
	"time"
)

// FileType identifies the type of object behind a virtual path.
type FileType int

const (
	FileTypeFile      FileType = iota // Regular file
	FileTypeDirectory                 // Directory, native or synthesized from archive names
	FileTypeSymlink                   // Symbolic link inside a directory mount
)

func (ft FileType) String() string {
	switch ft {
	case FileTypeDirectory:
		return "directory"
	case FileTypeSymlink:
		return "symlink"
	default:
		return "file"
	}
}

// FileInfo describes a resolved virtual path.
type FileInfo struct {
	// Normalized virtual path
	Path string `json:"path"`

	Type FileType `json:"type"`

	// Size in bytes; the uncompressed size for archive entries, 0 for directories
	Size int64 `json:"size"`

	// RealDir is the directory or archive the path was resolved from
	RealDir string `json:"real_dir"`

	// MountID identifies the mount that answered
	MountID string `json:"mount_id"`

	ModifyTime  time.Time   `json:"modify_time"`
	ContentType ContentType `json:"content_type,omitempty"`
}

// Name returns the base name of the file or directory.
func (fi *FileInfo) Name() string {
	return path.Base(fi.Path)
}

// Ext returns the file extension including the dot.
func (fi *FileInfo) Ext() string {
	return path.Ext(fi.Path)
}

// IsDir returns true if this object is a directory.
func (fi *FileInfo) IsDir() bool {
	return fi.Type == FileTypeDirectory
}
