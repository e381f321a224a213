package errors

import "github.com/mwantia/virtfs/data"

func InvalidPath(path string) error {
	return newError(data.ErrInvalidPath, "invalid path '%s' detected", path)
}

func PathNotMounted(path string) error {
	return newError(data.ErrNotMounted, "path '%s' not mounted", path)
}

func PathAlreadyMounted(path string) error {
	return newError(data.ErrAlreadyMounted, "path '%s' already mounted", path)
}

func WrongMountType(path, want string) error {
	return newError(data.ErrMountType, "path '%s' cannot be mounted as %s", path, want)
}

func NotExist(path string) error {
	return newError(data.ErrNotExist, "'%s'", path)
}

func NotDirectory(path string) error {
	return newError(data.ErrNotDirectory, "'%s'", path)
}

func IsDirectory(path string) error {
	return newError(data.ErrIsDirectory, "'%s'", path)
}

func Permission(op, path string) error {
	return newError(data.ErrPermission, "%s '%s'", op, path)
}

func NoWriteDir(op string) error {
	return newError(data.ErrNoWriteDir, "%s", op)
}
