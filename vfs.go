package virtfs

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mwantia/virtfs/catalog"
	"github.com/mwantia/virtfs/cmd"
	"github.com/mwantia/virtfs/data"
	"github.com/mwantia/virtfs/log"
	"github.com/mwantia/virtfs/mount"
)

// VirtFs resolves virtual paths against an ordered stack of directory and ZIP
// archive mounts. The front of the stack is searched first.
//
// A VirtFs has a single logical owner and performs no internal locking.
type VirtFs struct {
	log      *log.Logger
	settings *mount.Settings
	catalog  *catalog.Catalog

	baseDir  string
	mounts   []*mountPoint
	writeDir *mount.DirMount
	cmds     map[string]cmd.Command
}

type mountPoint struct {
	entry     mount.Entry
	appended  bool
	mountedAt time.Time
}

// Init creates a filesystem with an empty mount stack. baseName is the path of
// the running program and determines BaseDir; the working directory is used when
// it is empty. Failures are returned wrapped in ErrInitFailed.
func Init(baseName string, opts ...Option) (*VirtFs, error) {
	options := newDefaultOptions()
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, fmt.Errorf("%w: %w", data.ErrInitFailed, err)
		}
	}

	logger := options.logger()

	baseDir, err := resolveBaseDir(baseName)
	if err != nil {
		logger.Fatal("Init: failed to resolve base directory of '%s' - %v", baseName, err)
		return nil, fmt.Errorf("%w: %w", data.ErrInitFailed, err)
	}

	vfs := &VirtFs{
		log: logger,
		settings: &mount.Settings{
			PermitLinks: options.PermitLinks,
		},
		baseDir: baseDir,
		cmds:    make(map[string]cmd.Command),
	}

	if options.Catalog != "" {
		c, err := catalog.Open(options.Catalog)
		if err != nil {
			logger.Fatal("Init: failed to open catalog '%s' - %v", options.Catalog, err)
			return nil, fmt.Errorf("%w: %w", data.ErrInitFailed, err)
		}

		vfs.catalog = c
	}

	if err := vfs.initBuiltinCommands(); err != nil {
		return nil, fmt.Errorf("%w: %w", data.ErrInitFailed, err)
	}

	logger.Debug("Init: base directory is %s", baseDir)
	return vfs, nil
}

// Deinit closes every mount and the catalog. The filesystem is empty afterwards
// and may be reused. All close errors are joined.
func (vfs *VirtFs) Deinit() error {
	var errs data.Errors

	for i := len(vfs.mounts) - 1; i >= 0; i-- {
		mp := vfs.mounts[i]
		if err := mp.entry.Close(); err != nil {
			vfs.log.Error("Deinit: failed to close mount %s - %v", mp.entry.Root(), err)
			errs.Add(err)
		}
	}
	vfs.mounts = nil

	if vfs.writeDir != nil {
		errs.Add(vfs.writeDir.Close())
		vfs.writeDir = nil
	}

	if vfs.catalog != nil {
		if err := vfs.catalog.Close(); err != nil {
			vfs.log.Error("Deinit: failed to close catalog - %v", err)
			errs.Add(err)
		}
		vfs.catalog = nil
	}

	vfs.log.Debug("Deinit: released all mounts")
	return errs.Errors()
}

// BaseDir returns the directory of the program passed to Init, ending with a separator.
func (vfs *VirtFs) BaseDir() string {
	return vfs.baseDir
}

// UserDir returns the home directory of the current user, ending with a separator.
func (vfs *VirtFs) UserDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return data.EnsureTrailingSeparator(home, string(os.PathSeparator)), nil
}

// PermitLinks changes whether directory mounts report symbolic links.
// The policy applies to every mount from the next call on.
func (vfs *VirtFs) PermitLinks(permit bool) {
	vfs.settings.PermitLinks = permit
	vfs.log.Debug("PermitLinks: symbolic links permitted: %v", permit)
}

func resolveBaseDir(baseName string) (string, error) {
	var dir string
	if baseName == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		dir = wd
	} else {
		abs, err := filepath.Abs(baseName)
		if err != nil {
			return "", err
		}
		dir = filepath.Dir(abs)
	}

	return data.EnsureTrailingSeparator(dir, string(os.PathSeparator)), nil
}
