// Package cli implements the driverjars command-line interface.
//
// This package provides commands for downloading JDBC driver archives,
// locating installed jars, inspecting what the hosting site publishes,
// and managing the metadata cache. The CLI is built using cobra and
// supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - fetch: Download and unpack driver archives for one engine or all
//   - jars: Locate installed driver jars in the installation directory
//   - engines: List the supported database engines and driver versions
//   - info: Show hosted archive metadata for an engine
//   - cache: Manage the archive metadata cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/driverjars/pkg/artifact"
	"github.com/matzehuels/driverjars/pkg/buildinfo"
	"github.com/matzehuels/driverjars/pkg/config"
	"github.com/matzehuels/driverjars/pkg/hosting"
	"github.com/matzehuels/driverjars/pkg/httputil"
)

const (
	// appName is the application name used for directories and display.
	appName = "driverjars"

	// defaultCacheTTL is how long hosted archive metadata stays fresh.
	defaultCacheTTL = 24 * time.Hour
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "driverjars manages JDBC driver artifacts",
		Long:         `driverjars downloads versioned JDBC driver archives from the hosting site, unpacks them into a local installation directory, and locates installed jars for class-path assembly.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.fetchCommand())
	root.AddCommand(c.jarsCommand())
	root.AddCommand(c.enginesCommand())
	root.AddCommand(c.infoCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newHost creates a hosting client from the loaded config.
// noCache disables metadata caching entirely.
func (c *CLI) newHost(cfg config.Config, noCache bool) (*hosting.Client, error) {
	if noCache {
		return hosting.NewClientWithCache(cfg.BaseURL, nil), nil
	}

	ttl := defaultCacheTTL
	if cfg.CacheTTLHours > 0 {
		ttl = time.Duration(cfg.CacheTTLHours) * time.Hour
	}

	dir, err := cacheDir()
	if err != nil {
		return hosting.NewClientWithCache(cfg.BaseURL, nil), nil
	}
	cache, err := httputil.NewCache(dir, ttl)
	if err != nil {
		return nil, err
	}
	return hosting.NewClientWithCache(cfg.BaseURL, cache), nil
}

// newManager assembles an artifact manager for fetch-style commands.
func (c *CLI) newManager(cfg config.Config, confirm artifact.ConfirmFunc, noCache bool) (*artifact.Manager, error) {
	host, err := c.newHost(cfg, noCache)
	if err != nil {
		return nil, err
	}
	return artifact.NewManager(artifact.Options{
		Host:    host,
		Confirm: confirm,
		Logger:  c.Logger,
	}), nil
}

// resolveInstallDir picks the installation directory with precedence:
// explicit flag, DATABASECONNECTOR_JAR_FOLDER, config file. Returns ""
// when nothing is configured.
func resolveInstallDir(flagDir string, cfg config.Config) string {
	if flagDir != "" {
		return flagDir
	}
	if env := artifact.DefaultInstallDir(); env != "" {
		return env
	}
	return cfg.JarFolder
}

// cacheDir returns the cache directory using XDG standard (~/.cache/driverjars/).
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
