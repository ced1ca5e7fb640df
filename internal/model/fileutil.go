package model

import (
	"os"
	"path/filepath"
	"strings"
)

// ConfigFile describes one configuration file inside a module directory.
type ConfigFile struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// ListConfigFiles returns the Terraform configuration files of a module
// directory, in directory order (ReadDir sorts by name). Used by the
// interactive and web detail views; the printed tree never touches it.
func ListConfigFiles(dir string) ([]ConfigFile, error) {
	// Expand tilde so pasted paths work in the web API
	if strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			dir = filepath.Join(home, dir[2:])
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []ConfigFile
	for _, entry := range entries {
		if entry.IsDir() || !IsConfigFile(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, ConfigFile{Name: entry.Name(), Size: info.Size()})
	}
	return files, nil
}

// IsConfigFile reports whether name is a Terraform/OpenTofu source file.
func IsConfigFile(name string) bool {
	for _, suffix := range []string{".tf", ".tf.json", ".tofu", ".tofu.json"} {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}
