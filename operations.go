package virtfs

import (
	"github.com/mwantia/virtfs/data"
	"github.com/mwantia/virtfs/data/errors"
)

// Exists reports whether path resolves to a file or directory in any mount.
func (vfs *VirtFs) Exists(path string) (bool, error) {
	name, err := vfs.clean("Exists", path)
	if err != nil {
		return false, err
	}

	for _, mp := range vfs.mounts {
		if mp.entry.Exists(name) {
			return true, nil
		}
	}

	return false, nil
}

// IsDirectory reports whether any mount has a directory at path.
func (vfs *VirtFs) IsDirectory(path string) (bool, error) {
	name, err := vfs.clean("IsDirectory", path)
	if err != nil {
		return false, err
	}

	return vfs.isDirectory(name), nil
}

// IsSymbolicLink reports whether path is a symbolic link in the first mount
// that contains it.
func (vfs *VirtFs) IsSymbolicLink(path string) (bool, error) {
	name, err := vfs.clean("IsSymbolicLink", path)
	if err != nil {
		return false, err
	}

	for _, mp := range vfs.mounts {
		if mp.entry.IsSymbolicLink(name) {
			return true, nil
		}
		if mp.entry.Exists(name) {
			return false, nil
		}
	}

	return false, nil
}

// GetRealDir returns the directory or archive path of the mount that resolves
// path. The empty string is returned when no mount contains it.
func (vfs *VirtFs) GetRealDir(path string) (string, error) {
	name, err := vfs.clean("GetRealDir", path)
	if err != nil {
		return "", err
	}

	for _, mp := range vfs.mounts {
		if dir, ok := mp.entry.RealDir(name); ok {
			return dir, nil
		}
	}

	return "", nil
}

// Stat describes path as seen through the first mount that contains it.
func (vfs *VirtFs) Stat(path string) (*data.FileInfo, error) {
	name, err := vfs.clean("Stat", path)
	if err != nil {
		return nil, err
	}

	for _, mp := range vfs.mounts {
		if !mp.entry.Exists(name) {
			continue
		}

		info, err := mp.entry.Stat(name)
		if err != nil {
			vfs.log.Debug("Stat: skipping mount %s - %v", mp.entry.Root(), err)
			continue
		}

		return info, nil
	}

	return nil, errors.NotExist(name)
}

// EnumerateFiles returns the immediate children of path across all mounts.
// Names appear once, in the order they were first found.
func (vfs *VirtFs) EnumerateFiles(path string) ([]string, error) {
	name, err := vfs.clean("EnumerateFiles", path)
	if err != nil {
		return nil, err
	}

	return vfs.enumerate(name).Names(), nil
}

// GetFiles returns the names of the files directly inside path across all mounts.
func (vfs *VirtFs) GetFiles(path string) ([]string, error) {
	name, err := vfs.clean("GetFiles", path)
	if err != nil {
		return nil, err
	}

	return vfs.filter(name, false, false), nil
}

// GetDirs returns the names of the directories directly inside path across all mounts.
func (vfs *VirtFs) GetDirs(path string) ([]string, error) {
	name, err := vfs.clean("GetDirs", path)
	if err != nil {
		return nil, err
	}

	return vfs.filter(name, true, false), nil
}

// GetFilesWithDir works like GetFiles but prefixes every name with path.
func (vfs *VirtFs) GetFilesWithDir(path string) ([]string, error) {
	name, err := vfs.clean("GetFilesWithDir", path)
	if err != nil {
		return nil, err
	}

	return vfs.filter(name, false, true), nil
}

// GetFilesRecursive returns every file below path as a path relative to it.
// Directories are visited in the order their names were first found.
func (vfs *VirtFs) GetFilesRecursive(path string) ([]string, error) {
	name, err := vfs.clean("GetFilesRecursive", path)
	if err != nil {
		return nil, err
	}

	files := make([]string, 0)
	vfs.walk(name, "", &files)

	return files, nil
}

func (vfs *VirtFs) walk(dir, rel string, files *[]string) {
	for _, child := range vfs.enumerate(dir).Names() {
		full := data.Join(dir, child)
		if vfs.isDirectory(full) {
			vfs.walk(full, data.Join(rel, child), files)
			continue
		}

		*files = append(*files, data.Join(rel, child))
	}
}

func (vfs *VirtFs) enumerate(dir string) *data.NameList {
	out := data.NewNameList()
	for _, mp := range vfs.mounts {
		if err := mp.entry.Enumerate(dir, out); err != nil {
			vfs.log.Debug("Enumerate: skipping mount %s - %v", mp.entry.Root(), err)
		}
	}

	return out
}

func (vfs *VirtFs) filter(dir string, dirs, withDir bool) []string {
	result := make([]string, 0)
	for _, child := range vfs.enumerate(dir).Names() {
		full := data.Join(dir, child)
		if vfs.isDirectory(full) != dirs {
			continue
		}

		if withDir {
			result = append(result, full)
		} else {
			result = append(result, child)
		}
	}

	return result
}

func (vfs *VirtFs) isDirectory(name string) bool {
	for _, mp := range vfs.mounts {
		if mp.entry.IsDirectory(name) {
			return true
		}
	}

	return false
}

// clean validates and normalizes a caller-supplied virtual path.
func (vfs *VirtFs) clean(op, path string) (string, error) {
	name, err := data.Clean(path)
	if err != nil {
		vfs.log.Warn("%s: rejected path '%s' - %v", op, path, err)
		return "", err
	}

	return name, nil
}
