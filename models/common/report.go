package common

import (
	"fmt"
	"strings"

	"github.com/roastproject/roast-env/constants"
)

// Issue is one validation finding, tied to the variable it concerns.
type Issue struct {
	Severity string
	Key      string
	Message  string
}

func (i Issue) String() string {
	return fmt.Sprintf("[%s] %s: %s", i.Severity, i.Key, i.Message)
}

// Report accumulates validation findings so callers can show every
// problem at once instead of one per run.
type Report struct {
	Issues []Issue
}

// AddError records an error-level finding for key.
func (r *Report) AddError(key, format string, a ...interface{}) {
	r.add(constants.SeverityError, key, format, a...)
}

// AddWarning records a warning-level finding for key.
func (r *Report) AddWarning(key, format string, a ...interface{}) {
	r.add(constants.SeverityWarning, key, format, a...)
}

func (r *Report) add(severity, key, format string, a ...interface{}) {
	r.Issues = append(r.Issues, Issue{
		Severity: severity,
		Key:      key,
		Message:  fmt.Sprintf(format, a...),
	})
}

// HasErrors returns true if the report holds at least one error.
func (r *Report) HasErrors() bool {
	for _, issue := range r.Issues {
		if issue.Severity == constants.SeverityError {
			return true
		}
	}
	return false
}

// HasWarnings returns true if the report holds at least one warning.
func (r *Report) HasWarnings() bool {
	for _, issue := range r.Issues {
		if issue.Severity == constants.SeverityWarning {
			return true
		}
	}
	return false
}

// OK returns true when the report is empty.
func (r *Report) OK() bool {
	return len(r.Issues) == 0
}

func (r *Report) String() string {
	if r.OK() {
		return "ok"
	}
	lines := make([]string, len(r.Issues))
	for i, issue := range r.Issues {
		lines[i] = issue.String()
	}
	return strings.Join(lines, "\n")
}
