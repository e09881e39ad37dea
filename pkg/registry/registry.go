// Package registry memoizes loaded JDBC driver handles.
//
// A Registry is an explicit object owned by the calling context rather
// than ambient global state. Entries are keyed by (driver class name,
// class path); two requests with the same class and path return the same
// handle, and the underlying instantiation happens at most once per key
// even under concurrent callers.
//
// Class loading itself lives behind the [Loader] interface: the registry
// only knows how to extend a class path, check that a class resolves, and
// instantiate it. The concrete loader is supplied by whatever JVM bridge
// the embedding application uses.
package registry

import (
	"os"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/matzehuels/driverjars/pkg/errors"
)

// Handle is an opaque reference to an instantiated driver object.
// Handles live for the process lifetime; there is no explicit teardown.
type Handle any

// Loader is the class-loading collaborator the registry drives.
//
// Implementations are expected to mutate process-wide state: paths added
// to the class path cannot be removed again within the process.
type Loader interface {
	// AddClassPath appends the given jar paths to the active class path.
	AddClassPath(paths ...string) error

	// Resolve reports whether the named class can be found on the
	// current class path.
	Resolve(className string) bool

	// Instantiate creates a driver instance of the named class.
	Instantiate(className string) (Handle, error)
}

// noDriver is the shared handle for engines that need no driver class.
type noDriver struct{}

// NoDriver is returned by GetOrLoad for an empty class name, which is
// legal for embedded engines that carry their driver in-process.
var NoDriver Handle = noDriver{}

// Registry caches loaded driver handles keyed by class name and class path.
// The zero value is not usable; construct with [New]. Safe for concurrent use.
type Registry struct {
	loader Loader

	mu      sync.RWMutex
	drivers map[string]Handle
	group   singleflight.Group
}

// New creates a Registry that loads drivers through the given loader.
func New(loader Loader) *Registry {
	return &Registry{
		loader:  loader,
		drivers: make(map[string]Handle),
	}
}

// JoinClassPath joins jar paths into a single class path string using the
// platform list separator.
func JoinClassPath(paths []string) string {
	return strings.Join(paths, string(os.PathListSeparator))
}

// GetOrLoad returns the cached handle for (className, classPath), loading
// it first if necessary.
//
// An empty className returns [NoDriver] without touching the loader; this
// covers embedded engines. Otherwise the load sequence is: extend the
// loader's class path with classPath, verify className resolves,
// instantiate it, cache the handle.
//
// Concurrent calls for the same key share a single load. A failed load is
// not cached: a later call with the same key (e.g., after fixing the jar
// path) retries from scratch. An unresolvable class fails with
// ErrCodeClassNotFound.
func (r *Registry) GetOrLoad(className string, classPath []string) (Handle, error) {
	if className == "" {
		return NoDriver, nil
	}

	key := className + "\x00" + JoinClassPath(classPath)

	if h, ok := r.lookup(key); ok {
		return h, nil
	}

	v, err, _ := r.group.Do(key, func() (any, error) {
		// A concurrent caller may have finished the load while this one
		// was waiting on the group.
		if h, ok := r.lookup(key); ok {
			return h, nil
		}
		h, err := r.load(className, classPath)
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		r.drivers[key] = h
		r.mu.Unlock()
		return h, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(Handle), nil
}

// Len returns the number of cached driver handles.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.drivers)
}

func (r *Registry) lookup(key string) (Handle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.drivers[key]
	// A nil cached value means "not yet loaded", never a failure sentinel.
	if !ok || h == nil {
		return nil, false
	}
	return h, true
}

func (r *Registry) load(className string, classPath []string) (Handle, error) {
	if err := r.loader.AddClassPath(classPath...); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err,
			"adding %d path(s) to class path", len(classPath))
	}
	if !r.loader.Resolve(className) {
		return nil, errors.New(errors.ErrCodeClassNotFound,
			"driver class %q not found on class path %q", className, JoinClassPath(classPath))
	}
	h, err := r.loader.Instantiate(className)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeClassNotFound, err,
			"instantiating driver class %q", className)
	}
	return h, nil
}
