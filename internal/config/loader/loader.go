// Package loader reads configuration sources into nested maps.
//
// Each source (a TOML file, the process environment) produces a
// map[string]any keyed by section and setting name. Maps are layered with
// DeepMerge, later layers overriding earlier ones.
package loader

import (
	"io/fs"
	"os"
)

// Loader is implemented by every configuration source.
type Loader interface {
	// Load reads the source and returns its settings.
	// Returns nil, nil if the source doesn't exist.
	Load() (map[string]any, error)
}

// FileSystem is the subset of file system access the loaders need.
// Tests substitute an in-memory implementation.
type FileSystem interface {
	fs.FS
	ReadFile(path string) ([]byte, error)
	Stat(path string) (fs.FileInfo, error)
}

// OSFS implements FileSystem on the real OS file system.
type OSFS struct{}

// Open implements fs.FS.
func (OSFS) Open(name string) (fs.File, error) {
	return os.Open(name)
}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Stat returns file info for path.
func (OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// DefaultFS returns the OS file system.
func DefaultFS() FileSystem {
	return OSFS{}
}

// Map wraps an in-memory settings map as a Loader. It is used for the
// built-in defaults and for command-line overrides.
type Map map[string]any

// Load returns a deep copy of m.
func (m Map) Load() (map[string]any, error) {
	return Clone(m), nil
}

// LoadAll loads each source in order and merges the results. Sources that
// return nil are skipped.
func LoadAll(sources ...Loader) (map[string]any, error) {
	merged := make(map[string]any)
	for _, src := range sources {
		m, err := src.Load()
		if err != nil {
			return nil, err
		}
		merged = DeepMerge(merged, m)
	}
	return merged, nil
}
