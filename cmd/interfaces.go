package cmd

import (
	"context"
	"io"

	"github.com/mwantia/virtfs/data"
	"github.com/mwantia/virtfs/mount"
)

// API is the read-only part of the virtual filesystem that commands may use.
type API interface {
	// Mounts returns the search path in resolution order.
	Mounts() []mount.Info

	// Exists reports whether path resolves in any mount.
	Exists(path string) (bool, error)

	// IsDirectory reports whether path is a directory in any mount.
	IsDirectory(path string) (bool, error)

	// Stat describes path as seen through the first mount that contains it.
	Stat(path string) (*data.FileInfo, error)

	// EnumerateFiles returns the de-duplicated immediate children of path.
	EnumerateFiles(path string) ([]string, error)

	// GetFilesRecursive returns every file below path relative to it.
	GetFilesRecursive(path string) ([]string, error)

	// LoadFile returns the whole content of path.
	LoadFile(path string) ([]byte, error)
}

// Command represents an executable command within the virtual filesystem.
type Command interface {
	// Name returns the command identifier
	Name() string

	// Description returns human-readable help text
	Description() string

	// Usage returns a usage string for help (e.g. "ls -l [path]")
	Usage() string

	// Execute runs the command with parsed arguments
	// The writer parameter is where command output should be written
	// Returns exit code (0 = success) and error message
	Execute(ctx context.Context, api API, args *CommandArgs, writer io.Writer) (int, error)

	// GetFlags returns the flag set for this command (this is optional)
	GetFlags() *CommandFlagSet
}
