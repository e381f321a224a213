package virtfs

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/mwantia/virtfs/data"
	"github.com/mwantia/virtfs/log"
	"github.com/mwantia/virtfs/mount"
	"gopkg.in/yaml.v3"
)

// Config is the YAML representation of a filesystem setup.
//
//	log_level: debug
//	permit_links: false
//	write_dir: ./save
//	mounts:
//	  - path: ./data
//	  - path: ./data/patch.zip
//	    type: zip
type Config struct {
	LogLevel    string        `yaml:"log_level"`
	LogFile     string        `yaml:"log_file"`
	LogJSON     bool          `yaml:"log_json"`
	PermitLinks bool          `yaml:"permit_links"`
	Catalog     string        `yaml:"catalog"`
	WriteDir    string        `yaml:"write_dir"`
	Mounts      []MountConfig `yaml:"mounts"`
}

// MountConfig describes one mount. Type is "dir" or "zip"; when empty it is
// derived from the path suffix.
type MountConfig struct {
	Path   string `yaml:"path"`
	Type   string `yaml:"type"`
	Append bool   `yaml:"append"`
}

// LoadConfig reads a configuration file.
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadConfig(f)
}

// ReadConfig decodes a configuration. Unknown fields are rejected.
func ReadConfig(r io.Reader) (*Config, error) {
	config := new(Config)

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	if err := dec.Decode(config); err != nil && !stderrors.Is(err, io.EOF) {
		return nil, fmt.Errorf("vfs: decoding configuration: %w", err)
	}

	return config, nil
}

// Options converts the filesystem wide settings into Init options.
func (c *Config) Options() ([]Option, error) {
	level, err := log.Parse(c.LogLevel)
	if err != nil {
		return nil, err
	}

	opts := []Option{
		WithLogLevel(level),
		WithPermitLinks(c.PermitLinks),
	}
	if c.LogFile != "" {
		opts = append(opts, WithLogFile(c.LogFile))
	}
	if c.LogJSON {
		opts = append(opts, WithLogJSON())
	}
	if c.Catalog != "" {
		opts = append(opts, WithCatalog(c.Catalog))
	}

	return opts, nil
}

// ApplyConfig mounts every configured entry in order and sets the write
// directory. It stops at the first failure; earlier mounts stay in place.
func (vfs *VirtFs) ApplyConfig(c *Config) error {
	for _, m := range c.Mounts {
		typ := m.Type
		if typ == "" {
			typ = mount.TypeDir.String()
			if data.IsArchivePath(m.Path) {
				typ = mount.TypeZip.String()
			}
		}

		var err error
		switch typ {
		case mount.TypeDir.String():
			err = vfs.MountDir(m.Path, m.Append)
		case mount.TypeZip.String():
			err = vfs.MountZip(m.Path, m.Append)
		default:
			err = fmt.Errorf("%w: unknown mount type '%s'", data.ErrMountType, m.Type)
		}

		if err != nil {
			return fmt.Errorf("mount '%s': %w", m.Path, err)
		}
	}

	if c.WriteDir != "" {
		if err := vfs.SetWriteDir(c.WriteDir); err != nil {
			return fmt.Errorf("write_dir: %w", err)
		}
	}

	return nil
}
