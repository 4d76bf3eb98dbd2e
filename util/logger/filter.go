package logger

import (
	"fmt"
	"strings"

	"github.com/op/go-logging"
)

// Filter is a parsed RUST_LOG-style log filter: a default level plus
// per-target overrides, e.g. "warn,roast::db=debug".
type Filter struct {
	Default logging.Level
	Targets map[string]logging.Level
}

// ParseFilter parses a RUST_LOG-style filter string. Directives are
// comma separated. Each one is a bare level ("info"), a bare target
// ("roast::db", which enables debug output for that target), or
// target=level. The last directive for the same target wins. An
// empty string yields the default filter, info.
func ParseFilter(spec string) (*Filter, error) {
	filter := &Filter{
		Default: logging.INFO,
		Targets: make(map[string]logging.Level),
	}
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return filter, nil
	}
	for _, directive := range strings.Split(spec, ",") {
		directive = strings.TrimSpace(directive)
		if directive == "" {
			continue
		}
		if target, levelName, found := strings.Cut(directive, "="); found {
			target = strings.TrimSpace(target)
			if target == "" {
				return nil, fmt.Errorf("log filter %q: directive %q has no target", spec, directive)
			}
			level, err := ParseLevel(strings.TrimSpace(levelName))
			if err != nil {
				return nil, fmt.Errorf("log filter %q: %v", spec, err)
			}
			filter.Targets[target] = level
			continue
		}
		if level, err := ParseLevel(directive); err == nil {
			filter.Default = level
			continue
		}
		// A bare target turns on full debug output for that target.
		filter.Targets[directive] = logging.DEBUG
	}
	return filter, nil
}

// ParseLevel maps a RUST_LOG level name to a go-logging level. trace
// maps to DEBUG and off to CRITICAL, the closest levels go-logging
// offers.
func ParseLevel(name string) (logging.Level, error) {
	switch strings.ToLower(name) {
	case "error":
		return logging.ERROR, nil
	case "warn", "warning":
		return logging.WARNING, nil
	case "info":
		return logging.INFO, nil
	case "debug", "trace":
		return logging.DEBUG, nil
	case "critical", "off":
		return logging.CRITICAL, nil
	}
	return 0, fmt.Errorf("unknown log level %q", name)
}

// Apply installs the filter's levels on go-logging's default backend.
func (f *Filter) Apply() {
	logging.SetLevel(f.Default, "")
	for target, level := range f.Targets {
		logging.SetLevel(level, target)
	}
}

// Level returns the effective level for a target.
func (f *Filter) Level(target string) logging.Level {
	if level, ok := f.Targets[target]; ok {
		return level
	}
	return f.Default
}
