package options

import (
	"github.com/bgrewell/cnf-kit/pkg/consts"
	"github.com/go-logr/logr"
)

// Options controls how SYSTEM.CNF files are decoded, encoded and located on disc images.
type Options struct {
	StripVersionInfo bool
	LineEnding       string
	MaxFileSize      int64
	MaxDirectorySize int64
	Logger           logr.Logger
}

// Option represents a function that modifies the Options
type Option func(*Options)

// Default returns the options used when the caller supplies none.
func Default() Options {
	return Options{
		StripVersionInfo: false,
		LineEnding:       consts.CNF_LINE_ENDING_CRLF,
		MaxFileSize:      consts.CNF_MAX_FILE_SIZE,
		MaxDirectorySize: consts.ISO9660_MAX_DIRECTORY_SIZE,
		Logger:           logr.Discard(),
	}
}

// Apply builds an Options value from the defaults and the given option functions.
func Apply(opts ...Option) Options {
	o := Default()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithStripVersionInfo sets whether the ISO9660 ";1" version suffix is removed from the boot path when decoding and
// restored when encoding.
func WithStripVersionInfo(enabled bool) Option {
	return func(o *Options) {
		o.StripVersionInfo = enabled
	}
}

// WithLineEnding sets the line terminator used when encoding. Decoding accepts both CRLF and LF regardless.
func WithLineEnding(ending string) Option {
	return func(o *Options) {
		if ending != "" {
			o.LineEnding = ending
		}
	}
}

// WithMaxFileSize caps the number of bytes read for a SYSTEM.CNF found on a disc image.
func WithMaxFileSize(size int64) Option {
	return func(o *Options) {
		if size > 0 {
			o.MaxFileSize = size
		}
	}
}

// WithMaxDirectorySize caps the size of the root directory extent read from a disc image.
func WithMaxDirectorySize(size int64) Option {
	return func(o *Options) {
		if size > 0 {
			o.MaxDirectorySize = size
		}
	}
}

// WithLogger sets the Logger
func WithLogger(logger logr.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}
