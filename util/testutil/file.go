package testutil

import (
	"os"
	"path"
	"path/filepath"
	"runtime"
)

// ProjectRoot returns the absolute path to the repository root, so
// tests can locate fixtures no matter which package runs them.
func ProjectRoot() string {
	_, thisFile, _, _ := runtime.Caller(0)
	absPath, _ := filepath.Abs(path.Join(thisFile, "..", "..", ".."))
	return absPath
}

func PathToTestData() string {
	return path.Join(ProjectRoot(), "testdata")
}

func PathToEnvFile(filename string) string {
	return path.Join(PathToTestData(), "envfiles", filename)
}

func ReadEnvFile(filename string) ([]byte, error) {
	return os.ReadFile(PathToEnvFile(filename))
}
