package loader

import (
	"os"
	"strconv"
	"strings"
)

// EnvLoader loads settings from environment variables.
//
// Variables listed in the mapping go to their mapped path. Any other
// variable carrying the prefix is converted by name: JOT_EDITOR_FILE_MODE
// becomes editor.fileMode.
type EnvLoader struct {
	prefix  string
	mapping map[string]string
	raw     map[string]bool
	environ func() []string
}

// NewEnvLoader creates a loader for variables starting with prefix. The
// prefix should include the trailing underscore (e.g. "JOT_").
func NewEnvLoader(prefix string, mapping map[string]string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: mapping,
		environ: os.Environ,
	}
}

// WithEnviron replaces the environment source, for tests.
func (l *EnvLoader) WithEnviron(environ func() []string) *EnvLoader {
	l.environ = environ
	return l
}

// WithRawPaths keeps the values for the given paths as strings instead of
// running them through ParseValue. Octal modes such as "400" need this.
func (l *EnvLoader) WithRawPaths(paths ...string) *EnvLoader {
	if l.raw == nil {
		l.raw = make(map[string]bool, len(paths))
	}
	for _, p := range paths {
		l.raw[p] = true
	}
	return l
}

// Load implements Loader. Empty values are kept rather than treated as
// unset.
func (l *EnvLoader) Load() (map[string]any, error) {
	m := make(map[string]any)

	for _, kv := range l.environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}

		path, mapped := l.mapping[name]
		if !mapped {
			path = l.envToPath(name)
		}
		if path == "" {
			continue
		}
		if l.raw[path] {
			setByPath(m, path, value)
			continue
		}
		setByPath(m, path, ParseValue(value))
	}

	if len(m) == 0 {
		return nil, nil
	}
	return m, nil
}

// envToPath converts JOT_UI_BORDER_COLOR to ui.borderColor. A name with no
// section part yields "".
func (l *EnvLoader) envToPath(env string) string {
	parts := strings.Split(strings.TrimPrefix(env, l.prefix), "_")
	if len(parts) < 2 || parts[0] == "" {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(strings.ToLower(parts[0]))
	sb.WriteByte('.')
	sb.WriteString(strings.ToLower(parts[1]))
	for _, p := range parts[2:] {
		if p == "" {
			continue
		}
		sb.WriteString(strings.ToUpper(p[:1]))
		sb.WriteString(strings.ToLower(p[1:]))
	}
	return sb.String()
}

// ParseValue converts an environment string into a bool, int, float or
// string. Digit strings with a leading zero stay strings so octal modes
// like "0644" survive.
func ParseValue(s string) any {
	if s == "" {
		return s
	}

	switch strings.ToLower(s) {
	case "true", "yes", "on", "1":
		return true
	case "false", "no", "off", "0":
		return false
	}

	if len(s) > 1 && s[0] == '0' && strings.Trim(s, "0123456789") == "" {
		return s
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if strings.Contains(s, ".") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return s
}

// setByPath sets a value in a nested map using a dot-separated path.
func setByPath(m map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	cur := m
	for _, part := range parts[:len(parts)-1] {
		next, ok := cur[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			cur[part] = next
		}
		cur = next
	}
	cur[parts[len(parts)-1]] = value
}
