// Package platform resolves where lanes reads its config and writes its logs.
package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Environment variables that override resolved locations.
const (
	EnvConfig = "LANES_CONFIG"
	EnvLogDir = "LANES_LOG_DIR"
)

// DefaultAppName names the per-user config and log directories.
const DefaultAppName = "lanes"

// ErrNoHome is returned when neither a home nor a base dir is known.
var ErrNoHome = errors.New("no home or base directory")

// Paths holds the resolved file locations for one app name.
type Paths struct {
	ConfigPath string
	LogDir     string
}

// Options selects the app directory name.
type Options struct {
	AppName string
	DevMode bool
}

// Base describes the host a Paths value is resolved for.
type Base struct {
	GOOS      string
	Home      string
	ConfigDir string
	CacheDir  string
	Getenv    func(string) string
}

// DefaultPaths resolves paths for the default app name on this host.
func DefaultPaths() (Paths, error) {
	return DefaultPathsWithOptions(Options{})
}

// DefaultPathsWithOptions resolves paths for opts on this host.
func DefaultPathsWithOptions(opts Options) (Paths, error) {
	home, _ := os.UserHomeDir()
	configDir, _ := os.UserConfigDir()
	cacheDir, _ := os.UserCacheDir()
	return Resolve(Base{
		GOOS:      runtime.GOOS,
		Home:      home,
		ConfigDir: configDir,
		CacheDir:  cacheDir,
		Getenv:    os.Getenv,
	}, opts)
}

// Resolve computes paths for base. LANES_CONFIG and LANES_LOG_DIR win over
// every platform rule; dev mode appends "-dev" to the app directory.
func Resolve(base Base, opts Options) (Paths, error) {
	getenv := base.Getenv
	if getenv == nil {
		getenv = func(string) string { return "" }
	}
	env := func(key string) string {
		return strings.TrimSpace(getenv(key))
	}

	app := strings.TrimSpace(opts.AppName)
	if app == "" {
		app = DefaultAppName
	}
	if opts.DevMode {
		app += "-dev"
	}

	configPath := env(EnvConfig)
	if configPath == "" {
		dir, err := configRoot(base, env)
		if err != nil {
			return Paths{}, fmt.Errorf("resolve config dir: %w", err)
		}
		configPath = filepath.Join(dir, app, "config.toml")
	}

	logDir := env(EnvLogDir)
	if logDir == "" {
		dir, err := logRoot(base, env, app)
		if err != nil {
			return Paths{}, fmt.Errorf("resolve log dir: %w", err)
		}
		logDir = dir
	}
	return Paths{ConfigPath: configPath, LogDir: logDir}, nil
}

// configRoot returns the directory that holds per-app config directories.
func configRoot(base Base, env func(string) string) (string, error) {
	switch base.GOOS {
	case "linux":
		if v := env("XDG_CONFIG_HOME"); v != "" {
			return v, nil
		}
		if base.Home != "" {
			return filepath.Join(base.Home, ".config"), nil
		}
	case "windows":
		if v := env("APPDATA"); v != "" {
			return v, nil
		}
	}
	if base.ConfigDir == "" {
		return "", ErrNoHome
	}
	return base.ConfigDir, nil
}

// logRoot returns the log directory for app. Logs are state, not config, so
// linux uses XDG_STATE_HOME and macOS uses ~/Library/Logs.
func logRoot(base Base, env func(string) string, app string) (string, error) {
	switch base.GOOS {
	case "linux":
		if v := env("XDG_STATE_HOME"); v != "" {
			return filepath.Join(v, app, "log"), nil
		}
		if base.Home != "" {
			return filepath.Join(base.Home, ".local", "state", app, "log"), nil
		}
	case "windows":
		if v := env("LOCALAPPDATA"); v != "" {
			return filepath.Join(v, app, "log"), nil
		}
	case "darwin":
		if base.Home != "" {
			return filepath.Join(base.Home, "Library", "Logs", app), nil
		}
	}
	if base.CacheDir == "" {
		return "", ErrNoHome
	}
	return filepath.Join(base.CacheDir, app, "log"), nil
}
