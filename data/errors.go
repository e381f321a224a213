package data

import (
	"errors"
	"sync"
)

// Standard VFS errors that mounts and the facade use.
var (
	// Path resolution errors
	ErrInvalidPath    = errors.New("vfs: invalid path detected")
	ErrNotMounted     = errors.New("vfs: path not mounted")
	ErrAlreadyMounted = errors.New("vfs: path already mounted")
	ErrMountType      = errors.New("vfs: wrong mount type for path")
	ErrNoWriteDir     = errors.New("vfs: write directory not set")

	// Archive errors
	ErrArchiveCorrupt = errors.New("vfs: archive corrupt")
	ErrChecksum       = errors.New("vfs: archive entry checksum mismatch")

	// Mount lifecycle errors
	ErrInitFailed = errors.New("vfs: initialization failed")

	// File operation errors
	ErrNotExist     = errors.New("vfs: file does not exist")
	ErrIsDirectory  = errors.New("vfs: is a directory")
	ErrNotDirectory = errors.New("vfs: not a directory")
	ErrPermission   = errors.New("vfs: permission denied")
	ErrReadOnly     = errors.New("vfs: read-only filesystem")
	ErrUnsupported  = errors.New("vfs: operation unsupported by mount")

	// I/O errors
	ErrClosed  = errors.New("vfs: file already closed")
	ErrInvalid = errors.New("vfs: invalid argument")
)

type Errors struct {
	mu     sync.RWMutex
	errors []error
}

func (e *Errors) Add(err error) {
	if err == nil {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.errors = append(e.errors, err)
}

func (e *Errors) Errors() error {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if len(e.errors) == 0 {
		return nil
	}

	return errors.Join(e.errors...)
}
