// Package filesys provides the small set of file system operations the
// engine and compactor need: creating the store directory, checking whether
// a path exists, and removing superseded fragment files.
package filesys

import (
	"errors"
	"os"
)

var (
	ErrIsNotDir = errors.New("path isn't a directory")
)

// CreateDir creates a directory at the specified path with the given permissions.
//
// If the directory already exists:
//   - If 'force' is true, it proceeds without error.
//   - If 'force' is false, it returns an error.
//
// It also returns an error if the existing path is a file (not a directory).
func CreateDir(dirPath string, permission os.FileMode, force bool) error {
	// Get file information for the given path.
	stat, err := os.Stat(dirPath)
	// If 'force' is false and the path exists
	// return the error (indicating the directory already exists).
	if !force && !os.IsNotExist(err) {
		if err == nil {
			return os.ErrExist
		}
		return err
	}

	// If the path exists and it's not a directory, return an error.
	if stat != nil && !stat.IsDir() {
		return ErrIsNotDir
	}

	// Create all necessary parent directories if they don't exist, with the specified permissions.
	if err := os.MkdirAll(dirPath, permission); err != nil {
		return err
	}

	// Apply the requested permissions, which MkdirAll filters through the umask.
	return os.Chmod(dirPath, permission)
}

// DeleteFile deletes the file at the specified `filePath`.
// It returns an error if the file cannot be removed.
func DeleteFile(filePath string) error {
	return os.Remove(filePath)
}

// Exists checks if a file or directory at the given `file` path exists.
// It returns true if the file/directory exists, false if it does not,
// and an error if there's any other issue checking its status.
func Exists(file string) (bool, error) {
	_, err := os.Stat(file)
	if err == nil {
		return true, nil // Path exists.
	}
	// If the error indicates that the file does not exist, return false.
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}
