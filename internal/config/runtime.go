package config

import (
	"os"
	"path/filepath"
)

func GetRuntimePath() string {
	return resolveRuntimePath(os.Getenv("DUET_RUNTIME_PATH"))
}

// resolveRuntimePath anchors a relative runtime path under the user's home
// directory, so every command reads and writes the same ~/.duet no matter
// where it was started from.
func resolveRuntimePath(path string) string {
	if path == "" {
		path = ".duet"
	}

	if !filepath.IsAbs(path) {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path)
	}
	return path
}
