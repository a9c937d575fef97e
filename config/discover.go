package config

import (
	"os"
	"path/filepath"
)

// discoveryNames are checked in order within each directory.
var discoveryNames = []string{
	".svgoptrc",
	".svgoptrc.json",
	".svgoptrc.yaml",
	".svgoptrc.yml",
	"svgopt.config.json",
	"svgopt.config.yaml",
}

// Discover finds the nearest configuration file, checking dir and each
// parent up to the filesystem root. It returns "" when none exists.
func Discover(dir string) string {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}
	for {
		for _, name := range discoveryNames {
			p := filepath.Join(dir, name)
			if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
				return p
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
