package virtfs

import (
	"io"

	"github.com/mwantia/virtfs/data"
	"github.com/mwantia/virtfs/log"
)

type Options struct {
	LogLevel      log.LogLevel
	LogFile       string
	LogWriter     io.Writer
	NoTerminalLog bool
	LogJSON       bool
	PermitLinks   bool
	Catalog       string
}

type Option func(*Options) error

func newDefaultOptions() *Options {
	return &Options{
		LogLevel: log.Info,
	}
}

func WithLogLevel(logLevel log.LogLevel) Option {
	return func(opts *Options) error {
		opts.LogLevel = logLevel
		return nil
	}
}

func WithoutTerminalLog() Option {
	return func(opts *Options) error {
		opts.NoTerminalLog = true
		return nil
	}
}

func WithLogFile(logFile string) Option {
	return func(opts *Options) error {
		opts.LogFile = logFile
		return nil
	}
}

// WithLogJSON writes every diagnostic as a single JSON object per line.
func WithLogJSON() Option {
	return func(opts *Options) error {
		opts.LogJSON = true
		return nil
	}
}

// WithLogWriter sends all diagnostics to w instead of the terminal and log file.
func WithLogWriter(w io.Writer) Option {
	return func(opts *Options) error {
		if w == nil {
			return data.ErrInvalid
		}

		opts.LogWriter = w
		return nil
	}
}

// WithPermitLinks sets the initial symbolic link policy of directory mounts.
func WithPermitLinks(permit bool) Option {
	return func(opts *Options) error {
		opts.PermitLinks = permit
		return nil
	}
}

// WithCatalog persists parsed archive indexes in the SQLite database at dbPath,
// so remounting an unchanged archive skips header parsing.
func WithCatalog(dbPath string) Option {
	return func(opts *Options) error {
		if dbPath == "" {
			return data.ErrInvalid
		}

		opts.Catalog = dbPath
		return nil
	}
}

func (opts *Options) logger() *log.Logger {
	var l *log.Logger
	if opts.LogWriter != nil {
		l = log.NewWriterLogger("virtfs", opts.LogLevel, opts.LogWriter)
	} else {
		l = log.NewLogger("virtfs", opts.LogLevel, opts.LogFile, opts.NoTerminalLog)
	}

	l.JSON = opts.LogJSON
	return l
}
