// Package artifact downloads, unpacks, and locates JDBC driver artifacts.
//
// The Manager resolves a dbms selector to driver archives, fetches each
// archive from the hosting site into an installation directory, unpacks it
// in place, and deletes the archive, leaving only the extracted jars.
// LocateJar finds installed jars by name pattern for class-path assembly.
//
// Fetching is synchronous and blocking; a context cancels in-flight
// downloads. Multi-engine batches have partial-success semantics: a
// failure aborts the remaining engines but never rolls back jars already
// extracted by earlier iterations.
package artifact

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/driverjars/pkg/descriptor"
	"github.com/matzehuels/driverjars/pkg/errors"
	"github.com/matzehuels/driverjars/pkg/hosting"
)

// EnvJarFolder is the environment variable that supplies the default
// installation directory when no explicit path is given.
const EnvJarFolder = "DATABASECONNECTOR_JAR_FOLDER"

// ConfirmFunc decides whether existing driver artifacts may be deleted
// before a fresh download. The prompt describes what would be removed.
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

// ConfirmAlways approves every deletion without asking.
func ConfirmAlways(context.Context, string) (bool, error) { return true, nil }

// ConfirmNever declines every deletion, keeping existing artifacts.
func ConfirmNever(context.Context, string) (bool, error) { return false, nil }

// Options configures a Manager.
type Options struct {
	// Host is the archive host client. Nil uses a client against
	// hosting.DefaultBaseURL without metadata caching.
	Host *hosting.Client

	// Confirm is consulted before deleting pre-existing artifacts
	// (the Redshift pre-clean). Nil defaults to ConfirmNever.
	Confirm ConfirmFunc

	// Logger receives progress output. Nil uses log.Default().
	Logger *log.Logger
}

// Manager fetches driver archives into an installation directory.
type Manager struct {
	host    *hosting.Client
	confirm ConfirmFunc
	logger  *log.Logger
}

// NewManager creates a Manager from opts. Zero-value Options are valid.
func NewManager(opts Options) *Manager {
	m := &Manager{
		host:    opts.Host,
		confirm: opts.Confirm,
		logger:  opts.Logger,
	}
	if m.host == nil {
		m.host = hosting.NewClientWithCache("", nil)
	}
	if m.confirm == nil {
		m.confirm = ConfirmNever
	}
	if m.logger == nil {
		m.logger = log.Default()
	}
	return m
}

// Fetch downloads and unpacks the driver archives selected by selector
// into targetDir and returns targetDir for chaining.
//
// The selector is a single engine key, an alias, or descriptor.SelectorAll.
// targetDir must be non-empty; a missing directory is created recursively,
// and a target that exists as a regular file fails with ErrCodeInvalidTarget
// without modifying the file.
//
// Per engine the sequence is: optional Redshift pre-clean (existing
// matching jars are deleted only if the confirm policy approves; a decline
// skips the engine), download the versioned archive, unpack it in place,
// delete the archive. Download or unpack failures surface as
// ErrCodeDownloadFailed naming the engine and directory; extracted files
// from earlier engines in the batch are left untouched.
func (m *Manager) Fetch(ctx context.Context, selector, targetDir string) (string, error) {
	if targetDir == "" {
		return "", errors.New(errors.ErrCodeInvalidInput,
			"no installation directory given (set the %s environment variable or pass a path)", EnvJarFolder)
	}

	engines, err := descriptor.Expand(selector)
	if err != nil {
		return "", err
	}

	if err := ensureDir(targetDir); err != nil {
		return "", err
	}

	for _, d := range engines {
		if !d.RequiresDriver() {
			m.logger.Debugf("%s is embedded, no driver to download", d.Key)
			continue
		}

		if d.Key == "redshift" {
			proceed, err := m.precleanRedshift(ctx, d, targetDir)
			if err != nil {
				return "", err
			}
			if !proceed {
				m.logger.Warnf("keeping existing redshift drivers, skipping download")
				continue
			}
		}

		if err := m.fetchOne(ctx, d, targetDir); err != nil {
			return "", err
		}
	}
	return targetDir, nil
}

// fetchOne downloads and unpacks a single engine's archive.
func (m *Manager) fetchOne(ctx context.Context, d descriptor.Descriptor, targetDir string) error {
	archivePath := filepath.Join(targetDir, d.ArchiveName)

	m.logger.Infof("downloading %s driver %s", d.Key, d.Version)
	m.logger.Debugf("fetching %s", m.host.ArchiveURL(d.ArchiveName))

	if err := m.host.DownloadArchive(ctx, d.ArchiveName, archivePath); err != nil {
		return errors.Wrap(errors.ErrCodeDownloadFailed, err,
			"downloading %s driver into %s", d.Key, targetDir)
	}

	if err := extractZip(archivePath, targetDir); err != nil {
		os.Remove(archivePath)
		return errors.Wrap(errors.ErrCodeDownloadFailed, err,
			"unpacking %s driver into %s", d.Key, targetDir)
	}

	if err := os.Remove(archivePath); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "removing archive %s", archivePath)
	}

	m.logger.Debugf("extracted %s into %s", d.ArchiveName, targetDir)
	return nil
}

// precleanRedshift removes pre-existing Redshift jars before a fresh
// download; stale Redshift jars conflict with the new driver at class-load
// time. Returns false when existing jars are kept and the engine should be
// skipped.
func (m *Manager) precleanRedshift(ctx context.Context, d descriptor.Descriptor, targetDir string) (bool, error) {
	existing, err := findJars(d.JarPattern, targetDir)
	if err != nil {
		return false, err
	}
	if len(existing) == 0 {
		return true, nil
	}

	prompt := fmt.Sprintf("Found %d existing redshift driver file(s) in %s. Delete them before downloading?",
		len(existing), targetDir)
	ok, err := m.confirm(ctx, prompt)
	if err != nil {
		return false, errors.Wrap(errors.ErrCodeInternal, err, "confirming redshift pre-clean")
	}
	if !ok {
		return false, nil
	}

	for _, path := range existing {
		if err := os.Remove(path); err != nil {
			return false, errors.Wrap(errors.ErrCodeInternal, err, "removing %s", path)
		}
		m.logger.Debugf("removed stale driver %s", path)
	}
	return true, nil
}

// LocateJar scans targetDir (non-recursive) for jar files whose names
// contain pattern, case-insensitively, and returns their absolute paths in
// directory enumeration order.
//
// targetDir must exist and be a directory; violations fail with
// ErrCodeInvalidTarget. Zero matches fail with ErrCodeNoMatchingDriver
// naming the pattern and directory.
func LocateJar(pattern, targetDir string) ([]string, error) {
	if err := ensureDirExists(targetDir); err != nil {
		return nil, err
	}
	matches, err := findJars(pattern, targetDir)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, errors.New(errors.ErrCodeNoMatchingDriver,
			"no driver file matching %q found in %s", pattern, targetDir)
	}
	return matches, nil
}

// JarsForEngine locates the installed jars for the named engine.
// Embedded engines need no external driver: they bypass the directory
// check entirely and return an empty list.
func JarsForEngine(engine, targetDir string) ([]string, error) {
	d, err := descriptor.Resolve(engine)
	if err != nil {
		return nil, err
	}
	if !d.RequiresDriver() {
		return nil, nil
	}
	return LocateJar(d.JarPattern, targetDir)
}

// DefaultInstallDir returns the installation directory from the
// environment, or "" when unset.
func DefaultInstallDir() string {
	return os.Getenv(EnvJarFolder)
}

// findJars returns absolute paths of regular files in dir whose names
// contain pattern (case-insensitive). Zero matches is not an error.
func findJars(pattern, dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "reading %s", dir)
	}

	needle := strings.ToLower(pattern)
	var matches []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.Contains(strings.ToLower(e.Name()), needle) {
			abs, err := filepath.Abs(filepath.Join(dir, e.Name()))
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "resolving %s", e.Name())
			}
			matches = append(matches, abs)
		}
	}
	return matches, nil
}

// ensureDir validates targetDir, creating it recursively when missing.
func ensureDir(targetDir string) error {
	info, err := os.Stat(targetDir)
	switch {
	case os.IsNotExist(err):
		if err := os.MkdirAll(targetDir, 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "creating %s", targetDir)
		}
		return nil
	case err != nil:
		return errors.Wrap(errors.ErrCodeInternal, err, "inspecting %s", targetDir)
	case !info.IsDir():
		return errors.New(errors.ErrCodeInvalidTarget,
			"%s exists and is not a directory", targetDir)
	}
	return nil
}

// ensureDirExists validates that targetDir exists and is a directory,
// without creating anything.
func ensureDirExists(targetDir string) error {
	info, err := os.Stat(targetDir)
	switch {
	case os.IsNotExist(err):
		return errors.New(errors.ErrCodeInvalidTarget, "%s does not exist", targetDir)
	case err != nil:
		return errors.Wrap(errors.ErrCodeInternal, err, "inspecting %s", targetDir)
	case !info.IsDir():
		return errors.New(errors.ErrCodeInvalidTarget,
			"%s exists and is not a directory", targetDir)
	}
	return nil
}
