package filesystem

import (
	"os"
	"path/filepath"
	"strings"
)

// NormalizePath trims surrounding whitespace, converts forward slashes to the
// host separator and lexically cleans the result. An empty path becomes ".".
func NormalizePath(raw string) string {
	p := strings.TrimSpace(raw)
	return filepath.Clean(filepath.FromSlash(p))
}

// ExpandHome replaces a leading "~" with the current user's home directory.
// The path is returned unchanged when the home directory is unknown.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, `~\`) {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
