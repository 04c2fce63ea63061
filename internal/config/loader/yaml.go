package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAMLLoader loads settings from a YAML file. It takes the same sections
// and keys as the TOML form but has no include support.
type YAMLLoader struct {
	fs       FileSystem
	path     string
	required bool
}

// NewYAMLLoaderWithFS creates a loader for path on fsys.
func NewYAMLLoaderWithFS(fsys FileSystem, path string) *YAMLLoader {
	return &YAMLLoader{fs: fsys, path: path}
}

// Required makes a missing file an error instead of an empty source.
func (l *YAMLLoader) Required() *YAMLLoader {
	l.required = true
	return l
}

// Load implements Loader.
func (l *YAMLLoader) Load() (map[string]any, error) {
	if l.path == "" {
		return nil, nil
	}

	data, err := l.fs.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !l.required {
			return nil, nil
		}
		return nil, fmt.Errorf("config file %s: %w", l.path, err)
	}

	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		perr := &ParseError{Path: l.path, Message: err.Error(), Err: err}
		var terr *yaml.TypeError
		if errors.As(err, &terr) && len(terr.Errors) > 0 {
			perr.Message = strings.Join(terr.Errors, "; ")
		}
		return nil, perr
	}
	return m, nil
}

// ForFile returns the loader matching the file extension: YAML for .yaml
// and .yml, TOML otherwise. A required loader fails on a missing file.
func ForFile(fsys FileSystem, path string, required bool) Loader {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		l := NewYAMLLoaderWithFS(fsys, path)
		if required {
			l.Required()
		}
		return l
	default:
		l := NewTOMLLoaderWithFS(fsys, path)
		if required {
			l.Required()
		}
		return l
	}
}
