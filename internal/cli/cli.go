// Package cli implements the opckit command-line interface.
package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/opckit/opckit/pkg/buildinfo"
	"github.com/opckit/opckit/pkg/cache"
	"github.com/opckit/opckit/pkg/errors"
	"github.com/opckit/opckit/pkg/opc"
	"github.com/opckit/opckit/pkg/zippkg"
)

// appName is the application name used for directories and display.
const appName = "opckit"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config
}

// New creates a new CLI instance with a default logger and the config file
// loaded (or defaults when no config file exists).
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
		Config: LoadConfigOrDefault(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "opckit",
		Short:        "opckit inspects and rewrites OPC package containers",
		Long:         `opckit is a CLI tool for working with Open Packaging Convention containers (pptx, docx, xlsx, and friends): listing their parts and relationships, extracting payloads, rendering the relationship graph, and repacking modified packages.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.extractCommand())
	root.AddCommand(c.repackCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.catalogCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newCache creates the cache backend selected by config, or the null cache
// when noCache is set. An unreachable redis falls back to null with a
// warning rather than failing the command.
func (c *CLI) newCache(ctx context.Context, noCache bool) cache.Cache {
	if noCache || c.Config.Cache.Backend == cacheBackendOff {
		return cache.NewNullCache()
	}
	if c.Config.Cache.Backend == cacheBackendRedis {
		rc, err := cache.NewRedisCache(ctx, c.Config.Cache.RedisURL)
		if err != nil {
			c.Logger.Warn("redis cache unavailable, continuing without cache", "err", err)
			return cache.NewNullCache()
		}
		return rc
	}
	dir := c.Config.Cache.Dir
	if dir == "" {
		var err error
		dir, err = cacheDir()
		if err != nil {
			return cache.NewNullCache()
		}
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Warn("file cache unavailable, continuing without cache", "err", err)
		return cache.NewNullCache()
	}
	return fc
}

// loadPackage opens the OPC container at path and returns the package graph
// together with the container digest used for cache and catalog keys.
func loadPackage(path string) (*opc.Package, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", errors.Wrap(errors.ErrCodeFileNotFound, err, "no such file: %s", path)
		}
		return nil, "", errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	r, err := zippkg.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, "", errors.FromOPC(err, "open %s", path)
	}
	pkg, err := opc.Open(r, nil)
	if err != nil {
		return nil, "", errors.FromOPC(err, "unmarshal %s", path)
	}
	return pkg, cache.Hash(data), nil
}

// cacheDir returns the cache directory using XDG standard (~/.cache/opckit/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// fmtBytes renders a byte count with a binary unit suffix.
func fmtBytes(n int) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := unit, 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
