package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/dshills/jot/internal/config/loader"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "JOT_"

// Setting paths.
const (
	PathLogLevel    = "logging.level"
	PathLogFile     = "logging.file"
	PathFileMode    = "editor.fileMode"
	PathBorderColor = "ui.borderColor"
	PathTitleBold   = "ui.titleBold"
)

// envMapping holds the short environment names. Other JOT_ variables are
// mapped by name, e.g. JOT_UI_BORDER_COLOR.
var envMapping = map[string]string{
	"JOT_LOG_LEVEL":    PathLogLevel,
	"JOT_LOG_FILE":     PathLogFile,
	"JOT_FILE_MODE":    PathFileMode,
	"JOT_BORDER_COLOR": PathBorderColor,
	"JOT_TITLE_BOLD":   PathTitleBold,
}

// Config holds the merged settings from all layers.
type Config struct {
	mu sync.RWMutex

	fs         loader.FileSystem
	configFile string
	explicit   bool
	environ    func() []string

	// overrides is the command-line layer.
	overrides map[string]any
	merged    map[string]any
}

// Option configures a Config instance.
type Option func(*Config)

// WithConfigFile sets the settings file. A file named this way must exist.
// Files ending in .yaml or .yml are read as YAML, anything else as TOML.
func WithConfigFile(path string) Option {
	return func(c *Config) {
		if path != "" {
			c.configFile = path
			c.explicit = true
		}
	}
}

// WithFileSystem replaces the file system used to read settings files.
func WithFileSystem(fsys loader.FileSystem) Option {
	return func(c *Config) {
		c.fs = fsys
	}
}

// WithEnviron replaces the environment source.
func WithEnviron(environ func() []string) Option {
	return func(c *Config) {
		c.environ = environ
	}
}

// New creates a configuration. Call Load before reading values.
func New(opts ...Option) *Config {
	c := &Config{
		fs:         loader.DefaultFS(),
		configFile: DefaultConfigFile(),
		environ:    os.Environ,
		overrides:  make(map[string]any),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DefaultConfigFile returns the per-user settings file, or "" when the
// user config directory cannot be determined.
func DefaultConfigFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "jot", "config.toml")
}

// ConfigFile returns the settings file Load reads.
func (c *Config) ConfigFile() string {
	return c.configFile
}

// Load reads every layer and replaces the merged view.
func (c *Config) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	file := loader.ForFile(c.fs, c.configFile, c.explicit)
	env := loader.NewEnvLoader(EnvPrefix, envMapping).
		WithRawPaths(PathFileMode).
		WithEnviron(c.environ)

	merged, err := loader.LoadAll(
		loader.Map(defaultConfig()),
		file,
		env,
		loader.Map(c.overrides),
	)
	if err != nil {
		return err
	}
	c.merged = merged
	return nil
}

// Set records a command-line override. It takes effect immediately if the
// configuration is already loaded and survives later calls to Load.
func (c *Config) Set(path string, value any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := setPath(c.overrides, path, value); err != nil {
		return err
	}
	if c.merged != nil {
		return setPath(c.merged, path, value)
	}
	return nil
}

// Get returns the value at the given path from the merged configuration.
func (c *Config) Get(path string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return getPath(c.merged, path)
}

// Merged returns a copy of the merged configuration.
func (c *Config) Merged() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return loader.Clone(c.merged)
}

// GetString returns a string value at the given path.
func (c *Config) GetString(path string) (string, error) {
	v, err := c.lookup(path)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", &TypeError{Path: path, Expected: "string", Actual: typeName(v)}
	}
	return s, nil
}

// GetInt returns an integer value at the given path.
func (c *Config) GetInt(path string) (int, error) {
	v, err := c.lookup(path)
	if err != nil {
		return 0, err
	}
	switch val := v.(type) {
	case int:
		return val, nil
	case int64:
		return int(val), nil
	case float64:
		return int(val), nil
	default:
		return 0, &TypeError{Path: path, Expected: "int", Actual: typeName(v)}
	}
}

// GetBool returns a boolean value at the given path.
func (c *Config) GetBool(path string) (bool, error) {
	v, err := c.lookup(path)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, &TypeError{Path: path, Expected: "bool", Actual: typeName(v)}
	}
	return b, nil
}

// GetFileMode returns permission bits at the given path. Strings are read
// as octal ("0644", "644", "0o644"); integers are taken as the mode value,
// so TOML may also say fileMode = 0o644.
func (c *Config) GetFileMode(path string) (fs.FileMode, error) {
	v, err := c.lookup(path)
	if err != nil {
		return 0, err
	}

	var mode uint64
	switch val := v.(type) {
	case string:
		s := strings.TrimPrefix(strings.TrimPrefix(val, "0o"), "0O")
		mode, err = strconv.ParseUint(s, 8, 32)
		if err != nil {
			return 0, &ValidationError{Path: path, Value: v, Message: "not an octal permission"}
		}
	case int64:
		if val < 0 {
			return 0, &ValidationError{Path: path, Value: v, Message: "negative permission"}
		}
		mode = uint64(val)
	case int:
		if val < 0 {
			return 0, &ValidationError{Path: path, Value: v, Message: "negative permission"}
		}
		mode = uint64(val)
	default:
		return 0, &TypeError{Path: path, Expected: "file mode", Actual: typeName(v)}
	}

	if mode > uint64(fs.ModePerm) {
		return 0, &ValidationError{Path: path, Value: v, Message: "permission bits out of range"}
	}
	return fs.FileMode(mode), nil
}

func (c *Config) lookup(path string) (any, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.merged == nil {
		return nil, ErrNotLoaded
	}
	v, ok := getPath(c.merged, path)
	if !ok {
		return nil, ErrSettingNotFound
	}
	return v, nil
}

// Settings is the typed view of the configuration used at startup.
type Settings struct {
	LogLevel    string
	LogFile     string
	FileMode    fs.FileMode
	BorderColor string
	TitleBold   bool
}

// Settings reads every known setting. The first invalid value is returned
// as an error.
func (c *Config) Settings() (Settings, error) {
	var (
		s   Settings
		err error
	)
	if s.LogLevel, err = c.GetString(PathLogLevel); err != nil {
		return Settings{}, err
	}
	if s.LogFile, err = c.GetString(PathLogFile); err != nil {
		return Settings{}, err
	}
	s.LogFile = os.ExpandEnv(s.LogFile)
	if s.FileMode, err = c.GetFileMode(PathFileMode); err != nil {
		return Settings{}, err
	}
	if s.BorderColor, err = c.GetString(PathBorderColor); err != nil {
		return Settings{}, err
	}
	if s.TitleBold, err = c.GetBool(PathTitleBold); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// defaultConfig returns the default configuration values.
func defaultConfig() map[string]any {
	return map[string]any{
		"logging": map[string]any{
			"level": "info",
			"file":  filepath.Join(os.TempDir(), "jot.log"),
		},
		"editor": map[string]any{
			"fileMode": "0644",
		},
		"ui": map[string]any{
			"borderColor": "",
			"titleBold":   true,
		},
	}
}

// getPath retrieves a value from a nested map using a dot-separated path.
func getPath(m map[string]any, path string) (any, bool) {
	parts := splitPath(path)
	if len(parts) == 0 {
		return nil, false
	}

	var cur any = m
	for _, part := range parts {
		cm, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		if cur, ok = cm[part]; !ok {
			return nil, false
		}
	}
	return cur, true
}

// setPath sets a value in a nested map using a dot-separated path.
func setPath(m map[string]any, path string, value any) error {
	parts := splitPath(path)
	if len(parts) == 0 {
		return ErrInvalidPath
	}

	cur := m
	for _, part := range parts[:len(parts)-1] {
		next, ok := cur[part]
		if !ok {
			next = make(map[string]any)
			cur[part] = next
		}
		nm, ok := next.(map[string]any)
		if !ok {
			return ErrInvalidPath
		}
		cur = nm
	}
	cur[parts[len(parts)-1]] = value
	return nil
}

// splitPath splits a dot-separated path, dropping empty segments.
func splitPath(path string) []string {
	return strings.FieldsFunc(path, func(r rune) bool { return r == '.' })
}

// typeName returns the type name for error messages.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "nil"
	case string:
		return "string"
	case int, int64:
		return "int"
	case float64:
		return "float64"
	case bool:
		return "bool"
	case []any:
		return "array"
	case map[string]any:
		return "map"
	default:
		return "unknown"
	}
}
