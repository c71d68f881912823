// Package xdg resolves XDG Base Directory paths for matrixctl.
//
// It falls back to the traditional locations when the XDG environment
// variables are unset and creates directories with private permissions.
package xdg

import (
	"os"
	"path/filepath"
)

// App is the directory name used under each XDG base.
const App = "matrixctl"

// ConfigDir returns the XDG config directory for matrixctl.
// The directory is created with private permissions (0700) if missing.
// It falls back to ~/.config/matrixctl when XDG_CONFIG_HOME is unset.
func ConfigDir() (string, error) {
	return ensure("XDG_CONFIG_HOME", ".config")
}

// StateDir returns the XDG state directory for matrixctl.
// It holds the encrypted file keyring used where no OS keychain exists.
func StateDir() (string, error) {
	return ensure("XDG_STATE_HOME", filepath.Join(".local", "state"))
}

func ensure(env, fallback string) (string, error) {
	base := os.Getenv(env)
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, fallback)
	}
	dir := filepath.Join(base, App)
	if err := os.MkdirAll(dir, 0o700); err != nil { // private dir
		return "", err
	}
	return dir, nil
}
