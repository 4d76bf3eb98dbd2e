package envfile

import (
	"os"
	"strings"
)

// Load parses the env file at path and exports its resolved values
// into the process environment. Variables already present in the
// environment keep their current values.
func Load(path string) error {
	return loadFile(path, false)
}

// Overload is Load, except values from the file replace existing
// environment variables.
func Overload(path string) error {
	return loadFile(path, true)
}

func loadFile(path string, overload bool) error {
	doc, err := ParseFile(path)
	if err != nil {
		return err
	}
	values := doc.Resolve(EnvironMap(os.Environ()))
	for _, key := range doc.Keys() {
		if !overload {
			if _, present := os.LookupEnv(key); present {
				continue
			}
		}
		if err = os.Setenv(key, values[key]); err != nil {
			return err
		}
	}
	return nil
}

// Apply merges the document's resolved values into an environment in
// the "KEY=value" form used by os.Environ and exec.Cmd.Env. The input
// slice is not modified. When overload is false, variables already
// present in environ win; otherwise the file wins.
func (doc *Document) Apply(environ []string, overload bool) []string {
	merged := make([]string, len(environ))
	copy(merged, environ)
	index := make(map[string]int, len(environ))
	for i, entry := range merged {
		if j := strings.IndexByte(entry, '='); j > 0 {
			index[entry[:j]] = i
		}
	}
	values := doc.Resolve(EnvironMap(environ))
	for _, key := range doc.Keys() {
		entry := key + "=" + values[key]
		if i, present := index[key]; present {
			if overload {
				merged[i] = entry
			}
			continue
		}
		index[key] = len(merged)
		merged = append(merged, entry)
	}
	return merged
}

// EnvironMap converts "KEY=value" pairs from os.Environ into a map.
// Later duplicates win.
func EnvironMap(environ []string) map[string]string {
	m := make(map[string]string, len(environ))
	for _, entry := range environ {
		if i := strings.IndexByte(entry, '='); i > 0 {
			m[entry[:i]] = entry[i+1:]
		}
	}
	return m
}
