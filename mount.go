package virtfs

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/mwantia/virtfs/archive"
	"github.com/mwantia/virtfs/data"
	"github.com/mwantia/virtfs/data/errors"
	"github.com/mwantia/virtfs/mount"
)

// MountInfo describes one entry of the search path.
type MountInfo = mount.Info

// Mounts returns the search path in resolution order.
func (vfs *VirtFs) Mounts() []MountInfo {
	infos := make([]MountInfo, 0, len(vfs.mounts))
	for _, mp := range vfs.mounts {
		infos = append(infos, MountInfo{
			ID:        mp.entry.ID(),
			Root:      mp.entry.Root(),
			Type:      mp.entry.Type(),
			Append:    mp.appended,
			MountedAt: mp.mountedAt,
		})
	}

	return infos
}

// MountDir adds the native directory at path to the search path. With append
// the directory is searched after every existing mount, otherwise before.
func (vfs *VirtFs) MountDir(path string, append bool) error {
	return vfs.mountDir(path, append, false)
}

// MountDirSilent behaves like MountDir without logging.
func (vfs *VirtFs) MountDirSilent(path string, append bool) error {
	return vfs.mountDir(path, append, true)
}

// UnmountDir removes the directory mount whose root matches path exactly.
func (vfs *VirtFs) UnmountDir(path string) error {
	return vfs.unmount("UnmountDir", path, mount.TypeDir, false)
}

// UnmountDirSilent behaves like UnmountDir without logging.
func (vfs *VirtFs) UnmountDirSilent(path string) error {
	return vfs.unmount("UnmountDir", path, mount.TypeDir, true)
}

// MountZip adds the ZIP archive at path to the search path.
// The archive must carry a .zip suffix.
func (vfs *VirtFs) MountZip(path string, append bool) error {
	if err := vfs.checkMountPath("MountZip", path, false); err != nil {
		return err
	}
	if !data.IsArchivePath(path) {
		vfs.log.Warn("MountZip: '%s' is not a zip archive", path)
		return errors.WrongMountType(path, mount.TypeZip.String())
	}

	root := data.NormalizeArchive(path)
	if vfs.find(root, mount.TypeZip) >= 0 {
		vfs.log.Warn("MountZip: archive %s is already mounted", root)
		return errors.PathAlreadyMounted(path)
	}

	idx, err := vfs.readIndex(root)
	if err != nil {
		vfs.log.Warn("MountZip: failed to read archive %s - %v", root, err)
		return err
	}

	zm := mount.NewZipMount(root, idx, vfs.log.Named("zip"))
	vfs.insert(zm, append)

	vfs.log.Info("MountZip: mounted %s with %d entries (id %s, append %v)", root, idx.Len(), zm.ID(), append)
	return nil
}

// UnmountZip removes the archive mount whose path matches exactly.
func (vfs *VirtFs) UnmountZip(path string) error {
	return vfs.unmount("UnmountZip", path, mount.TypeZip, false)
}

func (vfs *VirtFs) mountDir(path string, append, silent bool) error {
	if err := vfs.checkMountPath("MountDir", path, silent); err != nil {
		return err
	}
	if data.IsArchivePath(path) {
		if !silent {
			vfs.log.Warn("MountDir: '%s' is a zip archive, use MountZip", path)
		}
		return errors.WrongMountType(path, mount.TypeDir.String())
	}

	root := data.NormalizeDir(path)
	if vfs.find(root, mount.TypeDir) >= 0 {
		if !silent {
			vfs.log.Warn("MountDir: directory %s is already mounted", root)
		}
		return errors.PathAlreadyMounted(path)
	}

	dm, err := mount.NewDirMount(path, vfs.settings, vfs.log.Named("dir"))
	if err != nil {
		if !silent {
			vfs.log.Warn("MountDir: failed to mount %s - %v", path, err)
		}
		return err
	}

	vfs.insert(dm, append)

	if !silent {
		vfs.log.Info("MountDir: mounted %s (id %s, append %v)", root, dm.ID(), append)
	}
	return nil
}

func (vfs *VirtFs) unmount(op, path string, typ mount.Type, silent bool) error {
	if err := vfs.checkMountPath(op, path, silent); err != nil {
		return err
	}

	root := data.NormalizeArchive(path)
	if typ == mount.TypeDir {
		root = data.NormalizeDir(path)
	}

	i := vfs.find(root, typ)
	if i < 0 {
		if !silent {
			vfs.log.Warn("%s: %s is not mounted", op, root)
		}
		return errors.PathNotMounted(path)
	}

	entry := vfs.mounts[i].entry
	vfs.mounts = slices.Delete(vfs.mounts, i, i+1)

	if err := entry.Close(); err != nil && !silent {
		vfs.log.Error("%s: failed to close %s - %v", op, root, err)
	}

	if !silent {
		vfs.log.Info("%s: unmounted %s (id %s)", op, root, entry.ID())
	}
	return nil
}

func (vfs *VirtFs) checkMountPath(op, path string, silent bool) error {
	err := data.Validate(path)
	if err == nil && data.Normalize(path) == "" {
		err = errors.InvalidPath(path)
	}

	if err != nil && !silent {
		vfs.log.Warn("%s: rejected path '%s' - %v", op, path, err)
	}
	return err
}

// find returns the stack position of the mount with the given root, or -1.
func (vfs *VirtFs) find(root string, typ mount.Type) int {
	return slices.IndexFunc(vfs.mounts, func(mp *mountPoint) bool {
		return mp.entry.Type() == typ && mp.entry.Root() == root
	})
}

func (vfs *VirtFs) insert(entry mount.Entry, last bool) {
	mp := &mountPoint{
		entry:     entry,
		appended:  last,
		mountedAt: time.Now(),
	}

	if last {
		vfs.mounts = append(vfs.mounts, mp)
		return
	}

	vfs.mounts = slices.Insert(vfs.mounts, 0, mp)
}

// readIndex parses the archive headers, using the catalog when one is configured.
func (vfs *VirtFs) readIndex(path string) (*archive.Index, error) {
	if vfs.catalog == nil {
		return archive.ReadIndex(path)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.IOFailure("abs", path, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return archive.ReadIndex(abs)
	}

	ctx := context.Background()

	idx, found, err := vfs.catalog.Load(ctx, abs, info)
	if err != nil {
		vfs.log.Warn("MountZip: catalog lookup for %s failed - %v", abs, err)
	}
	if found {
		vfs.log.Debug("MountZip: loaded index of %s from catalog", abs)
		return idx, nil
	}

	idx, err = archive.ReadIndex(abs)
	if err != nil {
		if err := vfs.catalog.Forget(ctx, abs); err != nil {
			vfs.log.Warn("MountZip: failed to forget index of %s - %v", abs, err)
		}
		return nil, err
	}

	if err := vfs.catalog.Store(ctx, idx, info); err != nil {
		vfs.log.Warn("MountZip: failed to store index of %s - %v", abs, err)
	}

	return idx, nil
}
