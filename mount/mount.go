package mount

import (
	"time"

	"github.com/google/uuid"
	"github.com/mwantia/virtfs/data"
)

// Type discriminates the mount variants.
type Type int

const (
	TypeDir Type = iota
	TypeZip
)

func (t Type) String() string {
	switch t {
	case TypeDir:
		return "dir"
	case TypeZip:
		return "zip"
	default:
		return "unknown"
	}
}

// Entry is a single mount in the search path. Every name passed to an Entry is a
// normalized virtual path relative to the mount root; the empty name is the root.
// The set of implementations is closed: *DirMount and *ZipMount.
type Entry interface {
	// ID returns the unique identifier assigned when the mount was created.
	ID() string

	// Type returns the mount variant.
	Type() Type

	// Root returns the canonical root: a separator-terminated directory
	// or the archive path.
	Root() string

	// Exists reports whether name is a file or directory within this mount.
	Exists(name string) bool

	// IsDirectory reports whether name is a directory within this mount.
	IsDirectory(name string) bool

	// IsSymbolicLink reports whether name is a symbolic link within this mount.
	IsSymbolicLink(name string) bool

	// Enumerate adds the immediate children of dir to out.
	// Names already present in out are skipped.
	Enumerate(dir string, out *data.NameList) error

	// Stat describes name. Returns ErrNotExist if name is not within this mount.
	Stat(name string) (*data.FileInfo, error)

	// OpenRead opens name for reading. Returns ErrNotExist if it is missing.
	OpenRead(name string) (Streamer, error)

	// OpenWrite creates or truncates name for writing.
	OpenWrite(name string) (Streamer, error)

	// OpenAppend creates name or opens it for appending.
	OpenAppend(name string) (Streamer, error)

	// Mkdir creates name and any missing parents.
	Mkdir(name string) error

	// Remove deletes the file or empty directory name.
	Remove(name string) error

	// RealDir returns the directory or archive name was found in.
	RealDir(name string) (string, bool)

	// Close releases resources held by the mount.
	Close() error
}

func newMountID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Info describes a mount in the search path.
type Info struct {
	ID        string    `json:"id"`
	Root      string    `json:"root"`
	Type      Type      `json:"type"`
	Append    bool      `json:"append"`
	MountedAt time.Time `json:"mounted_at"`
}
