package errors

import (
	"fmt"

	"github.com/mwantia/virtfs/data"
)

func Unsupported(op, root string) error {
	return newError(data.ErrUnsupported, "%s on '%s'", op, root)
}

func ArchiveCorrupt(archive string, cause error) error {
	return wrapCause(data.ErrArchiveCorrupt, cause, "'%s'", archive)
}

func Checksum(archive, name string) error {
	return newError(data.ErrChecksum, "'%s' in '%s'", name, archive)
}

func IOFailure(op, path string, cause error) error {
	return fmt.Errorf("vfs: %s '%s': %w", op, path, cause)
}

func InvalidSize(name string, size int64) error {
	return newError(data.ErrArchiveCorrupt, "entry '%s' has invalid size %d", name, size)
}
