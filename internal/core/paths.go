// Package core holds the well-known locations pathcomplete reads and writes.
package core

import (
	"os"
	"path/filepath"
)

const (
	dataDirName    = ".pathcomplete"
	logFileName    = "pathcomplete.log"
	configFileName = ".pathcomplete.yaml"
)

// HomeDir returns the user's home directory, or the current directory when
// it cannot be determined.
func HomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

// DataDir returns the directory for pathcomplete's own files.
func DataDir() string {
	return filepath.Join(HomeDir(), dataDirName)
}

func LogFile() string {
	return filepath.Join(DataDir(), logFileName)
}

func ConfigFile() string {
	return filepath.Join(HomeDir(), configFileName)
}
