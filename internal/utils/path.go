package utils

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
)

// AppName names the per-user config directory.
const AppName = "wordcheck"

// ConfigDir returns the platform config directory for the app.
func ConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("Could not determine home directory: %v", err)
		homeDir = os.TempDir()
	}
	return configDirFor(runtime.GOOS, homeDir, os.Getenv)
}

func configDirFor(goos, homeDir string, getenv func(string) string) string {
	switch goos {
	case "darwin":
		return filepath.Join(homeDir, ".config", AppName)
	case "linux":
		if configHome := getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, AppName)
		}
		return filepath.Join(homeDir, ".config", AppName)
	case "windows":
		if appData := getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, AppName)
		}
		return filepath.Join(homeDir, "AppData", "Roaming", AppName)
	default:
		return filepath.Join(homeDir, "."+AppName)
	}
}

// ConfigPath returns a writable location for filename, preferring ConfigDir
// and falling back to the temp dir when the config dir is read-only.
func ConfigPath(filename string) string {
	candidates := []string{ConfigDir(), filepath.Join(os.TempDir(), AppName)}
	for _, dir := range candidates {
		status := CheckDirStatus(dir)
		if status.Exists && status.Writable {
			return filepath.Join(dir, filename)
		}
		log.Debugf("Config directory candidate not usable: %s", dir)
	}
	path := filepath.Join(os.TempDir(), filename)
	log.Warnf("Using temporary config file: %s", path)
	return path
}
