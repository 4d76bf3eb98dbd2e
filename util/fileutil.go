package util

import (
	"os"
	"path"
	"strings"
)

// FileExists returns true if the file at path exists. The file may
// be a directory.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsDirectory returns true if path exists and is a directory.
func IsDirectory(path string) bool {
	stat, err := os.Stat(path)
	return err == nil && stat.IsDir()
}

// IsFile returns true if path exists and is a regular file.
func IsFile(path string) bool {
	stat, err := os.Stat(path)
	return err == nil && stat.Mode().IsRegular()
}

// ExpandTilde expands a leading ~ in filePath to the current user's
// home directory. Paths without the tilde come back unchanged.
func ExpandTilde(filePath string) (string, error) {
	if filePath != "~" && !strings.HasPrefix(filePath, "~/") {
		return filePath, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	if filePath == "~" {
		return home, nil
	}
	return path.Join(home, filePath[2:]), nil
}

// LooksSafeToDelete returns true if path looks safe to delete. To be
// safe, the path must be at least minLength characters long and must
// contain at least minSeparators path separators. This helps protect
// against deleting short paths like /usr or /home when a variable
// that should have held a deeper path turns out to be mis-set.
func LooksSafeToDelete(path string, minLength, minSeparators int) bool {
	separators := strings.Count(path, string(os.PathSeparator))
	return len(path) >= minLength && separators >= minSeparators
}
