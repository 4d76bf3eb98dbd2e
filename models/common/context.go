package common

import (
	"github.com/op/go-logging"
	"github.com/roastproject/roast-env/util/logger"
)

// Context bundles what every roast tool needs at startup: the
// effective settings and a logger whose levels follow RUST_LOG.
type Context struct {
	Settings *Settings
	Logger   *logging.Logger
}

// NewContext wires a logger for the named tool around the settings.
// A RUST_LOG value that does not parse falls back to the default
// filter here; Validate reports it to the user.
func NewContext(processName string, settings *Settings) *Context {
	return &Context{
		Settings: settings,
		Logger:   getLogger(processName, settings),
	}
}

func getLogger(processName string, settings *Settings) *logging.Logger {
	filter, err := logger.ParseFilter(settings.Logging.Filter)
	if err != nil {
		filter = nil
	}
	return logger.InitLogger(processName, filter)
}
