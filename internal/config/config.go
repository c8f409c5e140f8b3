// Package config loads rit configuration from files, git config and flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/rit-tui/rit/internal/git"
	log "github.com/rit-tui/rit/internal/log"
	"github.com/rit-tui/rit/internal/theme"
)

const appName = "rit"

// AppConfig defines the global rit configuration options.
type AppConfig struct {
	Theme         string `yaml:"theme"` // see theme.AvailableThemes; empty means detect
	DebugLog      string `yaml:"debug_log"`
	ShowIcons     bool   `yaml:"show_icons"`   // Nerd Font icons in the file list
	AutoRefresh   bool   `yaml:"auto_refresh"` // refresh when the index or HEAD changes on disk
	GitExecutable string `yaml:"git_executable"`
}

// LoadOptions selects the sources merged by Load.
type LoadOptions struct {
	ConfigFile string   // explicit file, must live in the rit config directory
	RepoPath   string   // repository for --local git config; skipped when empty
	Overrides  []string // rit.key=value pairs from the command line
	Theme      string   // --theme flag, wins over every other source

	// SkipThemeDetection leaves an empty theme empty, for commands that
	// never draw.
	SkipThemeDetection bool
}

// detectTheme is swapped in tests.
var detectTheme = theme.DetectBackground

// DefaultConfig returns the default configuration values.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		ShowIcons:     true,
		AutoRefresh:   true,
		GitExecutable: git.DefaultExecutable,
	}
}

// knownKeys maps a key with separators removed to its canonical name. Git
// lowercases variable names and rejects underscores, so rit.show-icons and
// rit.showIcons both have to land on show_icons.
var knownKeys = map[string]string{
	"theme":         "theme",
	"debuglog":      "debug_log",
	"showicons":     "show_icons",
	"autorefresh":   "auto_refresh",
	"gitexecutable": "git_executable",
}

// canonicalKey returns the canonical name of key, or key lowercased when it
// is unknown.
func canonicalKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	squashed := strings.NewReplacer("_", "", "-", "").Replace(key)
	if canonical, ok := knownKeys[squashed]; ok {
		return canonical
	}
	return key
}

func normalizeKeys(data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for k, v := range data {
		out[canonicalKey(k)] = v
	}
	return out
}

func coerceBool(value any, defaultVal bool) bool {
	if value == nil {
		return defaultVal
	}

	switch v := value.(type) {
	case bool:
		return v
	case int:
		return v != 0
	case int64:
		return v != 0
	case string:
		text := strings.ToLower(strings.TrimSpace(v))
		switch text {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	case []any:
		// multi-valued git config: last one wins
		if len(v) > 0 {
			return coerceBool(v[len(v)-1], defaultVal)
		}
	}
	return defaultVal
}

func coerceString(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		v = strings.TrimSpace(v)
		return v, v != ""
	case []any:
		if len(v) > 0 {
			return coerceString(v[len(v)-1])
		}
	}
	return "", false
}

// parseConfig decodes canonical keys over the defaults. Values that cannot be
// coerced keep their default.
func parseConfig(data map[string]any) *AppConfig {
	cfg := DefaultConfig()

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		TagName:          "yaml",
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.DecodeHookFuncValue(lenientHook),
	})
	if err != nil {
		log.Printf("config: %v", err)
		return cfg
	}
	if err := decoder.Decode(normalizeKeys(data)); err != nil {
		log.Printf("config: ignoring invalid values: %v", err)
	}

	cfg.Theme = NormalizeThemeName(cfg.Theme)
	if cfg.GitExecutable == "" {
		cfg.GitExecutable = git.DefaultExecutable
	}
	return cfg
}

// lenientHook coerces raw values before decoding. The target still holds
// its default, which is kept when the value is unusable.
func lenientHook(from, to reflect.Value) (any, error) {
	switch to.Kind() {
	case reflect.Bool:
		return coerceBool(from.Interface(), to.Bool()), nil
	case reflect.String:
		if v, ok := coerceString(from.Interface()); ok {
			return v, nil
		}
		if from.Kind() == reflect.String || from.Kind() == reflect.Slice {
			return to.String(), nil
		}
	}
	return from.Interface(), nil
}

func getConfigDir() string {
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return xdgConfigHome
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config")
}

// ConfigDir returns the directory rit reads its configuration file from.
func ConfigDir() string {
	return filepath.Clean(filepath.Join(getConfigDir(), appName))
}

// readConfigFile returns the raw key/value pairs of the first configuration
// file found, or an empty map when there is none.
func readConfigFile(configPath string) (map[string]any, error) {
	configBase := ConfigDir()

	var paths []string
	if configPath != "" {
		expanded, err := expandPath(configPath)
		if err != nil {
			return nil, err
		}
		absPath, err := filepath.Abs(expanded)
		if err != nil {
			return nil, err
		}
		if !isPathWithin(configBase, absPath) {
			return nil, fmt.Errorf("config path must reside inside %s", configBase)
		}
		paths = []string{absPath}
	} else {
		paths = []string{
			filepath.Join(configBase, "config.yaml"),
			filepath.Join(configBase, "config.yml"),
			filepath.Join(configBase, "config.toml"),
		}
	}

	for _, path := range paths {
		// #nosec G304 -- path is constrained to the config directory after validation
		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}

		values := map[string]any{}
		if strings.EqualFold(filepath.Ext(path), ".toml") {
			err = toml.Unmarshal(data, &values)
		} else {
			err = yaml.Unmarshal(data, &values)
		}
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		if values == nil {
			values = map[string]any{}
		}
		return values, nil
	}
	return map[string]any{}, nil
}

// LoadConfig reads the application configuration file only.
func LoadConfig(configPath string) (*AppConfig, error) {
	values, err := readConfigFile(configPath)
	if err != nil {
		return DefaultConfig(), err
	}
	return parseConfig(values), nil
}

// Load merges defaults, the configuration file, global then local git config
// and command line overrides, later sources winning per key. An empty theme
// is resolved from the terminal background.
func Load(opts LoadOptions) (*AppConfig, error) {
	merged, err := readConfigFile(opts.ConfigFile)
	if err != nil {
		return DefaultConfig(), err
	}
	merged = normalizeKeys(merged)

	gitExe := git.DefaultExecutable
	if exe, ok := coerceString(merged["git_executable"]); ok {
		gitExe = exe
	}

	global, err := loadGitConfig(gitExe, true, "")
	if err != nil {
		return DefaultConfig(), fmt.Errorf("read global git config: %w", err)
	}
	mergeInto(merged, global)

	if opts.RepoPath != "" {
		// outside a repository --local fails; the session reports that itself
		local, err := loadGitConfig(gitExe, false, opts.RepoPath)
		if err != nil {
			log.Printf("config: skipping local git config: %v", err)
		} else {
			mergeInto(merged, local)
		}
	}

	if len(opts.Overrides) > 0 {
		cli, err := parseCLIConfigOverrides(opts.Overrides)
		if err != nil {
			return DefaultConfig(), err
		}
		mergeInto(merged, cli)
	}

	cfg := parseConfig(merged)
	if opts.Theme != "" {
		normalized := NormalizeThemeName(opts.Theme)
		if normalized == "" {
			return DefaultConfig(), fmt.Errorf("unknown theme %q, available: %s", opts.Theme, strings.Join(theme.AvailableThemes(), ", "))
		}
		cfg.Theme = normalized
	}
	if !opts.SkipThemeDetection {
		cfg.ResolveTheme()
	}
	return cfg, nil
}

// ResolveTheme fills an empty theme from the terminal background, falling
// back to the default dark theme.
func (c *AppConfig) ResolveTheme() {
	if c.Theme != "" {
		return
	}
	detected, err := detectTheme(500 * time.Millisecond)
	if err != nil {
		c.Theme = theme.DefaultDark()
		return
	}
	c.Theme = detected
}

func mergeInto(dst, src map[string]any) {
	for k, v := range normalizeKeys(src) {
		dst[k] = v
	}
}

func expandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[1:])
	}
	return os.ExpandEnv(path), nil
}

// ExpandPath expands a leading ~ and environment variables.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func isPathWithin(base, target string) bool {
	base = filepath.Clean(base)
	target = filepath.Clean(target)

	rel, err := filepath.Rel(base, target)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return false
	}
	return true
}

// NormalizeThemeName returns the canonical theme name if it is supported.
func NormalizeThemeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, known := range theme.AvailableThemes() {
		if name == known {
			return name
		}
	}
	return ""
}
