package utils

import (
	"os"
	"path/filepath"
	"strings"
)

// GetPathInfo resolves relPath to an absolute, cleaned path and its directory.
func GetPathInfo(relPath string) (fullPath string, parentDir string, err error) {
	fullPath, err = filepath.Abs(relPath)
	if err != nil {
		return "", "", err
	}
	parentDir = filepath.Dir(fullPath)
	return fullPath, parentDir, nil
}

// DisplayPath shortens an absolute path to one relative to the working
// directory when the file lives below it.
func DisplayPath(fullPath string) string {
	wd, err := os.Getwd()
	if err != nil {
		return fullPath
	}
	rel, err := filepath.Rel(wd, fullPath)
	if err != nil || strings.HasPrefix(rel, "..") {
		return fullPath
	}
	return rel
}
