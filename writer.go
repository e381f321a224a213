package virtfs

import (
	"io"

	"github.com/mwantia/virtfs/data"
	"github.com/mwantia/virtfs/data/errors"
	"github.com/mwantia/virtfs/mount"
)

// OpenRead opens path from the first mount that can provide it.
// Archive entries are inflated completely before OpenRead returns.
func (vfs *VirtFs) OpenRead(path string) (*File, error) {
	name, err := vfs.clean("OpenRead", path)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for _, mp := range vfs.mounts {
		if !mp.entry.Exists(name) {
			continue
		}

		stream, err := mp.entry.OpenRead(name)
		if err != nil {
			vfs.log.Debug("OpenRead: skipping mount %s - %v", mp.entry.Root(), err)
			lastErr = err
			continue
		}

		return newFile(name, stream), nil
	}

	if lastErr != nil {
		return nil, lastErr
	}
	return nil, errors.NotExist(name)
}

// LoadFile returns the whole content of path.
func (vfs *VirtFs) LoadFile(path string) ([]byte, error) {
	f, err := vfs.OpenRead(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return io.ReadAll(f)
}

// OpenWrite creates or truncates path in the write directory.
func (vfs *VirtFs) OpenWrite(path string) (*File, error) {
	return vfs.openWritable("OpenWrite", path, (*mount.DirMount).OpenWrite)
}

// OpenAppend opens path in the write directory for appending, creating it if needed.
func (vfs *VirtFs) OpenAppend(path string) (*File, error) {
	return vfs.openWritable("OpenAppend", path, (*mount.DirMount).OpenAppend)
}

// SetWriteDir designates the native directory that receives all writes.
// The directory must exist. An empty path disables writing.
func (vfs *VirtFs) SetWriteDir(path string) error {
	if path == "" {
		vfs.writeDir = nil
		vfs.log.Info("SetWriteDir: writing disabled")
		return nil
	}

	if err := data.Validate(path); err != nil {
		vfs.log.Warn("SetWriteDir: rejected path '%s' - %v", path, err)
		return err
	}

	dm, err := mount.NewDirMount(path, vfs.settings, vfs.log.Named("write"))
	if err != nil {
		vfs.log.Warn("SetWriteDir: failed to use %s - %v", path, err)
		return err
	}

	vfs.writeDir = dm
	vfs.log.Info("SetWriteDir: writing to %s", dm.Root())
	return nil
}

// WriteDir returns the write directory as passed to SetWriteDir, or the empty
// string when none is set.
func (vfs *VirtFs) WriteDir() string {
	if vfs.writeDir == nil {
		return ""
	}

	return vfs.writeDir.UserDir()
}

// Mkdir creates path and any missing parents in the write directory.
func (vfs *VirtFs) Mkdir(path string) error {
	name, err := vfs.clean("Mkdir", path)
	if err != nil {
		return err
	}
	if vfs.writeDir == nil {
		return errors.NoWriteDir("Mkdir")
	}

	if err := vfs.writeDir.Mkdir(name); err != nil {
		vfs.log.Warn("Mkdir: failed to create %s - %v", name, err)
		return err
	}

	return nil
}

// Remove deletes the file or empty directory path from the write directory.
func (vfs *VirtFs) Remove(path string) error {
	name, err := vfs.clean("Remove", path)
	if err != nil {
		return err
	}
	if vfs.writeDir == nil {
		return errors.NoWriteDir("Remove")
	}

	if err := vfs.writeDir.Remove(name); err != nil {
		vfs.log.Warn("Remove: failed to remove %s - %v", name, err)
		return err
	}

	return nil
}

func (vfs *VirtFs) openWritable(op, path string, open func(*mount.DirMount, string) (mount.Streamer, error)) (*File, error) {
	name, err := vfs.clean(op, path)
	if err != nil {
		return nil, err
	}
	if vfs.writeDir == nil {
		return nil, errors.NoWriteDir(op)
	}
	if name == "" {
		return nil, errors.InvalidPath(path)
	}

	stream, err := open(vfs.writeDir, name)
	if err != nil {
		vfs.log.Warn("%s: failed to open %s - %v", op, name, err)
		return nil, err
	}

	return newFile(name, stream), nil
}
