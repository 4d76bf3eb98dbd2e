package schema

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roastproject/roast-env/constants"
	"github.com/roastproject/roast-env/envfile"
	"github.com/roastproject/roast-env/util"
	"github.com/roastproject/roast-env/util/logger"
)

// Problem is one lint finding in an env file.
type Problem struct {
	Severity string
	Line     int
	Key      string
	Message  string
}

func (p Problem) String() string {
	if p.Key == "" {
		return fmt.Sprintf("line %d: [%s] %s", p.Line, p.Severity, p.Message)
	}
	return fmt.Sprintf("line %d: [%s] %s: %s", p.Line, p.Severity, p.Key, p.Message)
}

// HasErrors returns true if any problem in the list is an error.
func HasErrors(problems []Problem) bool {
	for _, p := range problems {
		if p.Severity == constants.SeverityError {
			return true
		}
	}
	return false
}

// Check lints a parsed env file against the roast schema. It flags
// unknown and duplicate variables, values of the wrong shape, and
// references to variables the file does not define. Findings come
// back in line order.
func Check(doc *envfile.Document) []Problem {
	var problems []Problem
	firstDefined := make(map[string]int)
	for _, pair := range doc.Pairs() {
		if _, ok := firstDefined[pair.Key]; !ok {
			firstDefined[pair.Key] = pair.Num
		}
	}
	seen := make(map[string]int)
	for _, pair := range doc.Pairs() {
		problems = append(problems, checkPair(pair, seen, firstDefined)...)
	}
	return problems
}

func checkPair(line *envfile.Line, seen, firstDefined map[string]int) []Problem {
	var problems []Problem
	warn := func(format string, a ...interface{}) {
		problems = append(problems, Problem{
			Severity: constants.SeverityWarning,
			Line:     line.Num,
			Key:      line.Key,
			Message:  fmt.Sprintf(format, a...),
		})
	}

	if first, ok := seen[line.Key]; ok {
		warn("already set at line %d; the last assignment wins", first)
	} else {
		seen[line.Key] = line.Num
	}

	switch {
	case line.Key == constants.EnvEnvFile || line.Key == constants.EnvRunID:
		warn("reserved for the roast tools; remove it")
	case !IsRecognized(line.Key):
		warn("unknown variable; roast does not read it")
	}

	names, malformed := line.References()
	if malformed {
		warn("malformed ${...} reference")
	}
	for _, name := range names {
		firstDef, defined := firstDefined[name]
		if !defined {
			warn("references %s, which this file does not define; the value must come from the process environment", name)
		} else if firstDef > line.Num {
			warn("references %s before line %d defines it; the reference resolves from the process environment", name, firstDef)
		}
	}

	if def, ok := Lookup(line.Key); ok && line.Value != "" && len(names) == 0 {
		problems = append(problems, checkValue(line, def)...)
	}
	return problems
}

// checkValue applies the type rule for a recognized key to a literal
// (reference-free) value. Empty values mean unset and are never
// checked.
func checkValue(line *envfile.Line, def KeyDef) []Problem {
	var problems []Problem
	fail := func(format string, a ...interface{}) {
		problems = append(problems, Problem{
			Severity: constants.SeverityError,
			Line:     line.Num,
			Key:      line.Key,
			Message:  fmt.Sprintf(format, a...),
		})
	}

	switch def.Type {
	case TypeInt:
		n, err := strconv.Atoi(line.Value)
		if err != nil || n < 0 {
			fail("must be a non-negative integer, not %q", line.Value)
		}
	case TypePort:
		n, err := strconv.Atoi(line.Value)
		if err != nil || n < 1 || n > 65535 {
			fail("must be a port number between 1 and 65535, not %q", line.Value)
		}
	case TypeSSLMode:
		if !util.StringListContains(constants.SSLModes, line.Value) {
			fail("must be one of %s", strings.Join(constants.SSLModes, ", "))
		}
	case TypeLogFilter:
		if _, err := logger.ParseFilter(line.Value); err != nil {
			fail("%v", err)
		}
	case TypeURL:
		if !strings.HasPrefix(line.Value, "postgres://") &&
			!strings.HasPrefix(line.Value, "postgresql://") {
			fail("must be a postgres:// or postgresql:// URL")
		}
	}
	return problems
}
