package loader

import (
	"os"
	"strconv"
	"strings"
)

// EnvPrefix is the prefix of recognised environment variables.
const EnvPrefix = "CEFNAV_"

// EnvLoader loads configuration from environment variables.
type EnvLoader struct {
	prefix  string            // Environment variable prefix (e.g., "CEFNAV_")
	mapping map[string]string // Env var -> config path
	lists   map[string]bool   // Config paths holding comma separated lists
	environ func() []string
}

// NewEnvLoader creates a new environment variable loader.
// The prefix should include the trailing underscore (e.g., "CEFNAV_").
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: defaultEnvMapping(prefix),
		lists:   map[string]bool{"keymap.files": true},
		environ: os.Environ,
	}
}

// defaultEnvMapping returns the variables whose path does not follow from
// their name.
func defaultEnvMapping(prefix string) map[string]string {
	return map[string]string{
		prefix + "PLATFORM":          "platform",
		prefix + "LOG_LEVEL":         "log.level",
		prefix + "ATOMIC_SELECTOR":   "content.atomicSelector",
		prefix + "BOUNDARY_SELECTOR": "content.inlineBoundarySelector",
		prefix + "WIDTH":             "layout.width",
		prefix + "MEASURER":          "layout.measurer",
		prefix + "KEYMAPS":           "keymap.files",
	}
}

// AddMapping adds a custom environment variable mapping.
func (l *EnvLoader) AddMapping(envVar, configPath string) {
	l.mapping[envVar] = configPath
}

// Load reads environment variables and returns a configuration map.
// Mapped variables use their mapped path; other prefixed variables are
// converted by name, CEFNAV_LAYOUT_WIDTH becoming layout.width.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)
	for _, env := range l.environ() {
		name, value, ok := strings.Cut(env, "=")
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
		if l.lists[path] {
			SetByPath(config, path, splitList(value))
			continue
		}
		SetByPath(config, path, parseValue(value))
	}
	return config, nil
}

// envToPath converts CEFNAV_CONTENT_ATOMIC_SELECTOR to
// content.atomicSelector.
func (l *EnvLoader) envToPath(env string) string {
	parts := strings.Split(strings.TrimPrefix(env, l.prefix), "_")
	if len(parts) == 0 || parts[0] == "" {
		return ""
	}
	section := strings.ToLower(parts[0])
	if len(parts) == 1 {
		return section
	}
	name := strings.ToLower(parts[1])
	for _, part := range parts[2:] {
		if part != "" {
			name += strings.ToUpper(part[:1]) + strings.ToLower(part[1:])
		}
	}
	return section + "." + name
}

// parseValue attempts to parse the string value into an appropriate type.
func parseValue(s string) any {
	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
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

func splitList(s string) []any {
	var out []any
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
