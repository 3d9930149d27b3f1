// Package config loads and validates the dirsync configuration.
//
// Configuration is merged from three layers, later layers winning: embedded
// defaults, an optional user config file (TOML or YAML), and command-line
// overrides.
package config

import (
	"time"

	"github.com/arthur-debert/dirsync/pkg/errors"
	"github.com/arthur-debert/dirsync/pkg/logging"
	"github.com/arthur-debert/dirsync/pkg/paths"
	"github.com/arthur-debert/dirsync/pkg/types"
)

// Config holds the validated application configuration.
type Config struct {
	SrcDir      string `koanf:"src_dir"`
	DestDir     string `koanf:"dest_dir"`
	LogfilePath string `koanf:"logfile_path"`
	IntervalMs  int    `koanf:"interval_ms"`
}

// Interval returns the sync period as a duration.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.IntervalMs) * time.Millisecond
}

// ResolvedLogfilePath returns the configured logfile path, falling back to
// the XDG default when unset.
func (c *Config) ResolvedLogfilePath() string {
	if c.LogfilePath != "" {
		return c.LogfilePath
	}
	return logging.DefaultLogfilePath()
}

// Validate checks the configuration against the given filesystem.
// It fails when the interval is below 1ms, a repository location is missing,
// the logfile lies inside either repository tree, or the destination
// directory already contains files.
func (c *Config) Validate(fsys types.FS) error {
	if c.IntervalMs < 1 {
		return errors.Newf(errors.ErrConfigInvalid, "interval_ms must be >= 1, got %d", c.IntervalMs)
	}
	if c.SrcDir == "" {
		return errors.New(errors.ErrConfigInvalid, "src_dir is required")
	}
	if c.DestDir == "" {
		return errors.New(errors.ErrConfigInvalid, "dest_dir is required")
	}

	logfile := c.ResolvedLogfilePath()
	for _, repo := range []string{c.SrcDir, c.DestDir} {
		inside, err := paths.Contains(repo, logfile)
		if err != nil {
			return errors.Wrap(err, errors.ErrConfigInvalid, "cannot resolve logfile path")
		}
		if inside {
			return errors.Newf(errors.ErrLogfileInRepo,
				"logfile %q lies inside repository %q", logfile, repo)
		}
	}

	if info, err := fsys.Stat(c.SrcDir); err != nil || !info.IsDir() {
		return errors.Newf(errors.ErrInvalidLocation, "source %q is not an existing directory", c.SrcDir)
	}

	// The destination may not exist yet; if it does it must be empty, since
	// the mirror assumes exclusive ownership of its content.
	if info, err := fsys.Stat(c.DestDir); err == nil {
		if !info.IsDir() {
			return errors.Newf(errors.ErrInvalidLocation, "destination %q is not a directory", c.DestDir)
		}
		entries, err := fsys.ReadDir(c.DestDir)
		if err != nil {
			return errors.Wrapf(err, errors.ErrDirRead, "cannot list destination %q", c.DestDir)
		}
		if len(entries) > 0 {
			return errors.Newf(errors.ErrDestNotEmpty, "destination %q is not empty", c.DestDir)
		}
	}

	return nil
}
