package file

import (
	"os"
	"path/filepath"
)

// HomeEnv overrides the application directory.
const HomeEnv = "PRRELINK_HOME"

// HomeDir returns the application directory: $PRRELINK_HOME when set,
// otherwise ~/.prrelink.
func HomeDir() (string, error) {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".prrelink"), nil
}
