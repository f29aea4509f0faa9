package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// AppName names the per-user configuration directory.
const AppName = "PodcastTimer"

// ConfigDir returns the directory holding settings and logs. An explicit
// override wins; otherwise the user config dir is used, falling back to the
// directory of the executable.
func ConfigDir(override string) (string, error) {
	if override != "" {
		return filepath.Clean(override), nil
	}
	if base, err := os.UserConfigDir(); err == nil && base != "" {
		return filepath.Join(base, AppName), nil
	}
	executable, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(filepath.Dir(executable), AppName), nil
}
