package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	apperrors "prism/internal/errors"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

const (
	KeyTheme                  = "theme"
	KeyAppearanceBase         = "appearance.base"
	KeyAppearanceHighContrast = "appearance.high-contrast"
	KeyPollInterval           = "appearance.poll-interval"
	KeyDebug                  = "debug"
	KeyMarkdownEnabled        = "markdown.enabled"
)

const (
	// DefaultPollInterval matches appearance.DefaultPollInterval.
	DefaultPollInterval = 2 * time.Second
	envPrefix           = "PRISM"
	configDirName       = ".prism"
	configFileName      = "config.yaml"
)

type initSettings struct {
	workingDir        string
	projectConfigPath string
	userConfigPath    string
}

// Option configures Initialize behaviour. Useful for tests to override paths.
type Option func(*initSettings)

// WithWorkingDir overrides the directory used for project config discovery.
func WithWorkingDir(dir string) Option {
	return func(cfg *initSettings) {
		cfg.workingDir = dir
	}
}

// WithProjectConfig explicitly sets the project config path instead of discovery.
func WithProjectConfig(path string) Option {
	return func(cfg *initSettings) {
		cfg.projectConfigPath = path
	}
}

// WithUserConfig overrides the default user config path.
func WithUserConfig(path string) Option {
	return func(cfg *initSettings) {
		cfg.userConfigPath = path
	}
}

var (
	configOnce sync.Once
	configMu   sync.RWMutex
	configInst *viper.Viper
	initErr    error

	// resolved holds the paths chosen by Initialize so Reload and Watch use the same files.
	resolved  initSettings
	overrides = map[string]any{}
)

// Initialize loads configuration using the precedence:
// defaults < user config < project config < environment variables < overrides.
func Initialize(opts ...Option) error {
	configOnce.Do(func() {
		settings := initSettings{}
		for _, opt := range opts {
			opt(&settings)
		}
		initErr = configure(&settings)
	})
	return initErr
}

// ApplyOverrides injects values typically coming from CLI flags.
// Overrides survive Reload.
func ApplyOverrides(values map[string]any) error {
	if len(values) == 0 {
		return nil
	}
	if err := Initialize(); err != nil {
		return err
	}
	configMu.Lock()
	defer configMu.Unlock()
	if configInst == nil {
		return errNotInitialized()
	}
	for k, v := range values {
		overrides[k] = v
		configInst.Set(k, v)
	}
	return nil
}

// GetString fetches a string configuration value, initializing on demand.
func GetString(key string) string {
	var out string
	withViper(func(v *viper.Viper) { out = v.GetString(key) })
	return out
}

// GetBool fetches a bool configuration value, initializing on demand.
func GetBool(key string) bool {
	var out bool
	withViper(func(v *viper.Viper) { out = v.GetBool(key) })
	return out
}

// GetDuration fetches a duration configuration value, initializing on demand.
func GetDuration(key string) time.Duration {
	var out time.Duration
	withViper(func(v *viper.Viper) { out = v.GetDuration(key) })
	return out
}

// Set updates a configuration key at runtime, initializing on demand.
// Unlike ApplyOverrides, the value is dropped by the next Reload.
func Set(key string, value any) error {
	if err := Initialize(); err != nil {
		return err
	}
	configMu.Lock()
	defer configMu.Unlock()
	if configInst == nil {
		return errNotInitialized()
	}
	configInst.Set(key, value)
	return nil
}

// Reload re-reads the config files chosen by Initialize and re-applies overrides.
func Reload() error {
	if err := Initialize(); err != nil {
		return err
	}
	configMu.RLock()
	settings := resolved
	configMu.RUnlock()
	return configure(&settings)
}

// Paths returns the user and project config files in effect. Either may be
// empty or point at a file that does not exist yet.
func Paths() (user, project string) {
	configMu.RLock()
	defer configMu.RUnlock()
	return resolved.userConfigPath, resolved.projectConfigPath
}

// Watch reloads configuration whenever the user or project config file is
// written, created, renamed or removed, then calls onChange. It blocks until
// ctx is done.
func Watch(ctx context.Context, onChange func()) error {
	if err := Initialize(); err != nil {
		return err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return apperrors.New(apperrors.CodeConfigurationError, "create config watcher", err)
	}
	defer func() { _ = watcher.Close() }()

	targets := map[string]struct{}{}
	dirs := map[string]struct{}{}
	user, project := Paths()
	for _, path := range []string{user, project} {
		if strings.TrimSpace(path) == "" {
			continue
		}
		clean := filepath.Clean(path)
		targets[clean] = struct{}{}
		dirs[filepath.Dir(clean)] = struct{}{}
	}
	watching := 0
	for dir := range dirs {
		// Directories that do not exist yet cannot be watched; the file can't change either.
		if err := watcher.Add(dir); err == nil {
			watching++
		}
	}
	if watching == 0 {
		<-ctx.Done()
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if _, tracked := targets[filepath.Clean(event.Name)]; !tracked {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
				continue
			}
			if err := Reload(); err != nil {
				continue
			}
			if onChange != nil {
				onChange()
			}
		case _, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
		}
	}
}

func configure(settings *initSettings) error {
	workingDir := strings.TrimSpace(settings.workingDir)
	if workingDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("determine working directory: %w", err)
		}
		workingDir = wd
	}

	userConfigPath := strings.TrimSpace(settings.userConfigPath)
	if userConfigPath == "" {
		path, err := defaultUserConfigPath()
		if err != nil {
			return err
		}
		userConfigPath = path
	}

	projectConfigPath := strings.TrimSpace(settings.projectConfigPath)
	if projectConfigPath == "" {
		path, err := findProjectConfig(workingDir)
		if err != nil {
			return err
		}
		projectConfigPath = path
	}

	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := mergeConfigFile(v, userConfigPath); err != nil {
		return apperrors.New(apperrors.CodeConfigurationError, "load user config", err)
	}
	if err := mergeConfigFile(v, projectConfigPath); err != nil {
		return apperrors.New(apperrors.CodeConfigurationError, "load project config", err)
	}

	configMu.Lock()
	defer configMu.Unlock()
	for k, val := range overrides {
		v.Set(k, val)
	}
	configInst = v
	resolved = initSettings{
		workingDir:        workingDir,
		userConfigPath:    userConfigPath,
		projectConfigPath: projectConfigPath,
	}
	return nil
}

func mergeConfigFile(v *viper.Viper, path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("config path %s is a directory", path)
	}
	//nolint:gosec // G304: Config loader intentionally reads user and project config files
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := v.MergeConfig(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determine user home: %w", err)
	}
	return filepath.Join(home, configDirName, configFileName), nil
}

func findProjectConfig(startDir string) (string, error) {
	if strings.TrimSpace(startDir) == "" {
		return "", nil
	}
	dir := startDir
	for {
		candidate := filepath.Join(dir, configDirName, configFileName)
		info, err := os.Stat(candidate)
		if err == nil {
			if info.IsDir() {
				return "", fmt.Errorf("config path %s is a directory", candidate)
			}
			return candidate, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("stat %s: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyTheme, "system")
	v.SetDefault(KeyAppearanceBase, "")
	v.SetDefault(KeyAppearanceHighContrast, "")
	v.SetDefault(KeyPollInterval, DefaultPollInterval)
	v.SetDefault(KeyDebug, false)
	v.SetDefault(KeyMarkdownEnabled, true)
}

// withViper runs read under the config read lock; viper is not safe for
// concurrent use.
func withViper(read func(v *viper.Viper)) {
	if err := Initialize(); err != nil {
		return
	}
	configMu.RLock()
	defer configMu.RUnlock()
	if configInst == nil {
		return
	}
	read(configInst)
}

func errNotInitialized() error {
	return apperrors.New(apperrors.CodeConfigurationError, "configuration not initialized", nil)
}

// reset clears package state for tests.
func reset() {
	configMu.Lock()
	defer configMu.Unlock()
	configInst = nil
	initErr = nil
	configOnce = sync.Once{}
	resolved = initSettings{}
	overrides = map[string]any{}
}

// ResetForTesting clears package state for tests in other packages and
// initializes from an empty temp directory. The returned func resets again.
func ResetForTesting(t interface{ TempDir() string }) func() {
	reset()
	tmp := t.TempDir()
	_ = Initialize(WithWorkingDir(tmp), WithUserConfig(filepath.Join(tmp, "user.yaml")))
	return reset
}
