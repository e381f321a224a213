package mount

import (
	"github.com/mwantia/virtfs/archive"
	"github.com/mwantia/virtfs/data"
	"github.com/mwantia/virtfs/data/errors"
	"github.com/mwantia/virtfs/log"
)

// ZipMount serves files from a ZIP archive. All lookups use the in-memory
// index; the archive is only opened again to read an entry payload.
type ZipMount struct {
	id      string
	archive string
	index   *archive.Index
	log     *log.Logger
}

// NewZipMount creates a mount for the archive at path described by index.
func NewZipMount(path string, index *archive.Index, log *log.Logger) *ZipMount {
	return &ZipMount{
		id:      newMountID(),
		archive: path,
		index:   index,
		log:     log,
	}
}

func (zm *ZipMount) ID() string {
	return zm.id
}

func (zm *ZipMount) Type() Type {
	return TypeZip
}

func (zm *ZipMount) Root() string {
	return zm.archive
}

func (zm *ZipMount) Exists(name string) bool {
	return zm.index.Exists(name)
}

func (zm *ZipMount) IsDirectory(name string) bool {
	return zm.index.IsDir(name)
}

func (zm *ZipMount) IsSymbolicLink(name string) bool {
	return false
}

func (zm *ZipMount) Enumerate(dir string, out *data.NameList) error {
	zm.index.Children(dir, out)
	return nil
}

func (zm *ZipMount) Stat(name string) (*data.FileInfo, error) {
	if zm.index.IsDir(name) {
		return &data.FileInfo{
			Path:    name,
			Type:    data.FileTypeDirectory,
			RealDir: zm.archive,
			MountID: zm.id,
		}, nil
	}

	h, exists := zm.index.Lookup(name)
	if !exists {
		return nil, errors.NotExist(name)
	}

	return &data.FileInfo{
		Path:        name,
		Type:        data.FileTypeFile,
		Size:        h.UncompressedSize,
		RealDir:     zm.archive,
		MountID:     zm.id,
		ModifyTime:  h.ModifyTime,
		ContentType: data.GetMIMEType(name),
	}, nil
}

// OpenRead inflates the whole entry into memory and returns a stream over it.
func (zm *ZipMount) OpenRead(name string) (Streamer, error) {
	h, exists := zm.index.Lookup(name)
	if !exists {
		if zm.index.IsDir(name) {
			return nil, errors.IsDirectory(name)
		}
		return nil, errors.NotExist(name)
	}

	buf, err := zm.index.ReadFile(h)
	if err != nil {
		zm.log.Error("OpenRead: failed to read %s from %s - %v", name, zm.archive, err)
		return nil, err
	}

	zm.log.Debug("OpenRead: inflated %s from %s (%d bytes)", name, zm.archive, len(buf))
	return NewMemoryStream(buf), nil
}

func (zm *ZipMount) OpenWrite(name string) (Streamer, error) {
	return nil, zm.unsupported("OpenWrite", name)
}

func (zm *ZipMount) OpenAppend(name string) (Streamer, error) {
	return nil, zm.unsupported("OpenAppend", name)
}

func (zm *ZipMount) Mkdir(name string) error {
	return zm.unsupported("Mkdir", name)
}

func (zm *ZipMount) Remove(name string) error {
	return zm.unsupported("Remove", name)
}

func (zm *ZipMount) RealDir(name string) (string, bool) {
	if !zm.index.Exists(name) {
		return "", false
	}

	return zm.archive, true
}

func (zm *ZipMount) Close() error {
	return nil
}

func (zm *ZipMount) unsupported(op, name string) error {
	zm.log.Error("%s: archive %s is read-only, rejected %s", op, zm.archive, name)
	return errors.Unsupported(op, zm.archive)
}
