// Package configfiles provides embedded configuration files for Shiori.
// These files are used as templates for initializing user configuration.
package configfiles

import (
	"embed"
	"os"
	"path"
	"path/filepath"
	"sort"
)

// Embedded configuration files
//
//go:embed shiori.example.yaml
//go:embed all:trips
var configFS embed.FS

// GetConfigExample returns the example configuration file content
func GetConfigExample() ([]byte, error) {
	return configFS.ReadFile("shiori.example.yaml")
}

// GetTripExample returns the named example trip file content
func GetTripExample(name string) ([]byte, error) {
	return configFS.ReadFile(path.Join("trips", name))
}

// ListTripExamples returns the sorted names of the embedded trip files
func ListTripExamples() []string {
	entries, err := configFS.ReadDir("trips")
	if err != nil {
		return nil
	}
	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".yaml" {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names
}

// WriteConfigExample writes the example configuration to target, creating
// parent directories. An existing file is never overwritten.
func WriteConfigExample(target string) error {
	if _, err := os.Stat(target); err == nil {
		return os.ErrExist
	}
	data, err := GetConfigExample()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}
	return os.WriteFile(target, data, 0644)
}

// InitTripExamples copies the embedded trip files into targetDir, skipping
// files that already exist. It returns how many files were created.
func InitTripExamples(targetDir string) (int, error) {
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return 0, err
	}

	created := 0
	for _, name := range ListTripExamples() {
		targetPath := filepath.Join(targetDir, name)

		// Skip if file already exists
		if _, err := os.Stat(targetPath); err == nil {
			continue
		}

		data, err := GetTripExample(name)
		if err != nil {
			return created, err
		}
		if err := os.WriteFile(targetPath, data, 0644); err != nil {
			return created, err
		}
		created++
	}

	return created, nil
}
