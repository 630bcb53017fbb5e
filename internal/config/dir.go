// Package config resolves and loads sampy's user-level settings.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Dir returns the sampy configuration directory.
//
// Resolution:
//   - $SAMPY_CONFIG_HOME if set (explicit override)
//   - $XDG_CONFIG_HOME/sampy if set (respects XDG on any platform)
//   - %AppData%/sampy on Windows
//   - ~/.config/sampy on macOS and Linux
func Dir() string {
	if dir := os.Getenv("SAMPY_CONFIG_HOME"); dir != "" {
		return dir
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "sampy")
	}

	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "sampy")
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "sampy")
}

// File returns the path of the settings file inside Dir, or "" when no
// configuration directory can be resolved.
func File() string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}
