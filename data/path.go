package data

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Separator is the separator used by every virtual path and by archive entry names.
const Separator = "/"

// Normalize converts a caller-supplied virtual path into its canonical form.
// Backslashes become slashes, repeated separators collapse, "." segments are
// dropped and leading/trailing separators are removed. The empty string is the root.
// Normalize never resolves ".." segments; use Validate to reject them.
func Normalize(path string) string {
	path = strings.ReplaceAll(path, "\\", Separator)

	segments := strings.Split(path, Separator)
	kept := segments[:0]
	for _, segment := range segments {
		if segment == "" || segment == "." {
			continue
		}
		kept = append(kept, segment)
	}

	return strings.Join(kept, Separator)
}

// Validate reports ErrInvalidPath for paths that contain a parent traversal
// segment or a NUL byte. It accepts both separator styles.
func Validate(path string) error {
	if strings.ContainsRune(path, 0) {
		return fmt.Errorf("%w: '%s' contains NUL", ErrInvalidPath, path)
	}

	for _, segment := range strings.FieldsFunc(path, isSeparator) {
		if segment == ".." {
			return fmt.Errorf("%w: '%s' contains parent traversal", ErrInvalidPath, path)
		}
	}

	return nil
}

// Clean validates and normalizes path in one step.
func Clean(path string) (string, error) {
	if err := Validate(path); err != nil {
		return "", err
	}

	return Normalize(path), nil
}

// NormalizeDir converts a host directory path into a mount root: separators use
// os.PathSeparator, repeats and "." segments are dropped, and the result always
// ends with a separator.
func NormalizeDir(path string) string {
	return EnsureTrailingSeparator(normalizeHost(path), string(os.PathSeparator))
}

// NormalizeArchive converts a host archive path into its canonical form,
// without a trailing separator.
func NormalizeArchive(path string) string {
	return strings.TrimRight(normalizeHost(path), string(os.PathSeparator))
}

// EnsureTrailingSeparator appends sep to root unless it already ends with it.
func EnsureTrailingSeparator(root, sep string) string {
	if strings.HasSuffix(root, sep) {
		return root
	}

	return root + sep
}

// ToHostPath converts a normalized virtual path into host separator form.
func ToHostPath(path string) string {
	if os.PathSeparator == '/' {
		return path
	}

	return strings.ReplaceAll(path, Separator, string(os.PathSeparator))
}

// Join concatenates a virtual directory and a child name.
func Join(dir, name string) string {
	if dir == "" {
		return name
	}
	if name == "" {
		return dir
	}

	return dir + Separator + name
}

// IsArchivePath reports whether path names a ZIP archive.
func IsArchivePath(path string) bool {
	return strings.HasSuffix(strings.ToLower(strings.TrimRight(path, "/\\")), ".zip")
}

func normalizeHost(path string) string {
	sep := string(os.PathSeparator)

	path = strings.ReplaceAll(path, "\\", sep)
	path = strings.ReplaceAll(path, "/", sep)

	// Callers validate first, so Clean never sees ".." here
	return filepath.Clean(path)
}

func isSeparator(r rune) bool {
	return r == '/' || r == '\\'
}
