package builder

import (
	"io"

	"github.com/charmbracelet/log"
)

// Option configures a build.
type Option func(*config)

type config struct {
	logger     *log.Logger
	fileExists func(string) bool
}

// WithLogger sets the logger that receives build warnings.
func WithLogger(l *log.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithFileExists replaces the check used for node background images.
// It is mainly useful for tests and for servers that must not touch the
// local filesystem.
func WithFileExists(fn func(path string) bool) Option {
	return func(c *config) {
		c.fileExists = fn
	}
}

func newConfig(opts []Option) *config {
	c := &config{logger: log.NewWithOptions(io.Discard, log.Options{})}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
