package mount

import (
	stderrors "errors"
	"io/fs"
	"os"

	"github.com/mwantia/virtfs/data"
	"github.com/mwantia/virtfs/data/errors"
	"github.com/mwantia/virtfs/log"
)

// DirMount serves files from a native directory.
type DirMount struct {
	id       string
	root     string
	userDir  string
	settings *Settings
	log      *log.Logger
}

// NewDirMount creates a mount for the directory userDir.
// The directory must exist; userDir is kept verbatim for RealDir.
func NewDirMount(userDir string, settings *Settings, log *log.Logger) (*DirMount, error) {
	root := data.NormalizeDir(userDir)

	info, err := os.Stat(root)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.NotExist(userDir)
		}
		return nil, errors.IOFailure("stat", userDir, err)
	}
	if !info.IsDir() {
		return nil, errors.NotDirectory(userDir)
	}

	if settings == nil {
		settings = DefaultSettings()
	}

	return &DirMount{
		id:       newMountID(),
		root:     root,
		userDir:  userDir,
		settings: settings,
		log:      log,
	}, nil
}

func (dm *DirMount) ID() string {
	return dm.id
}

func (dm *DirMount) Type() Type {
	return TypeDir
}

func (dm *DirMount) Root() string {
	return dm.root
}

// UserDir returns the directory exactly as it was passed to NewDirMount.
func (dm *DirMount) UserDir() string {
	return dm.userDir
}

func (dm *DirMount) Exists(name string) bool {
	_, err := os.Stat(dm.hostPath(name))
	return err == nil
}

func (dm *DirMount) IsDirectory(name string) bool {
	info, err := os.Stat(dm.hostPath(name))
	return err == nil && info.IsDir()
}

func (dm *DirMount) IsSymbolicLink(name string) bool {
	info, err := os.Lstat(dm.hostPath(name))
	return err == nil && info.Mode()&fs.ModeSymlink != 0
}

func (dm *DirMount) Enumerate(dir string, out *data.NameList) error {
	entries, err := os.ReadDir(dm.hostPath(dir))
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return errors.IOFailure("readdir", dir, err)
	}

	for _, entry := range entries {
		if !dm.settings.PermitLinks && entry.Type()&fs.ModeSymlink != 0 {
			dm.log.Debug("Enumerate: skipping symbolic link %s in %s", entry.Name(), dm.root)
			continue
		}

		out.Add(entry.Name())
	}

	return nil
}

func (dm *DirMount) Stat(name string) (*data.FileInfo, error) {
	info, err := os.Stat(dm.hostPath(name))
	if err != nil {
		return nil, dm.convertError("stat", name, err)
	}

	fi := &data.FileInfo{
		Path:       name,
		Type:       data.FileTypeFile,
		Size:       info.Size(),
		RealDir:    dm.userDir,
		MountID:    dm.id,
		ModifyTime: info.ModTime(),
	}

	switch {
	case info.IsDir():
		fi.Type = data.FileTypeDirectory
		fi.Size = 0
	case dm.IsSymbolicLink(name):
		fi.Type = data.FileTypeSymlink
		fi.ContentType = data.GetMIMEType(name)
	default:
		fi.ContentType = data.GetMIMEType(name)
	}

	return fi, nil
}

func (dm *DirMount) OpenRead(name string) (Streamer, error) {
	if dm.IsDirectory(name) {
		return nil, errors.IsDirectory(name)
	}

	return dm.open(name, data.AccessModeRead)
}

func (dm *DirMount) OpenWrite(name string) (Streamer, error) {
	return dm.open(name, data.AccessModeWrite)
}

func (dm *DirMount) OpenAppend(name string) (Streamer, error) {
	return dm.open(name, data.AccessModeAppend)
}

func (dm *DirMount) Mkdir(name string) error {
	if err := os.MkdirAll(dm.hostPath(name), 0755); err != nil {
		return dm.convertError("mkdir", name, err)
	}

	return nil
}

func (dm *DirMount) Remove(name string) error {
	if name == "" {
		return errors.InvalidPath(name)
	}

	if err := os.Remove(dm.hostPath(name)); err != nil {
		return dm.convertError("remove", name, err)
	}

	return nil
}

func (dm *DirMount) RealDir(name string) (string, bool) {
	if !dm.Exists(name) {
		return "", false
	}

	return dm.userDir, true
}

func (dm *DirMount) Close() error {
	return nil
}

func (dm *DirMount) open(name string, mode data.AccessMode) (Streamer, error) {
	f, err := os.OpenFile(dm.hostPath(name), mode.Flags(), 0644)
	if err != nil {
		return nil, dm.convertError("open", name, err)
	}

	return NewFileStream(f, mode), nil
}

// hostPath joins the mount root with the relative virtual name.
func (dm *DirMount) hostPath(name string) string {
	return dm.root + data.ToHostPath(name)
}

func (dm *DirMount) convertError(op, name string, err error) error {
	if stderrors.Is(err, fs.ErrNotExist) {
		return errors.NotExist(name)
	}
	if stderrors.Is(err, fs.ErrPermission) {
		return errors.Permission(op, name)
	}

	return errors.IOFailure(op, dm.hostPath(name), err)
}
