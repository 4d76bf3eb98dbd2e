package logger

import (
	stdlog "log"
	"os"

	"github.com/op/go-logging"
)

/*
InitLogger creates and returns a logger for the named tool, writing
human-readable messages to stderr. The filter, usually parsed from
RUST_LOG, controls the default and per-target levels; nil means the
default filter, info.
*/
func InitLogger(processName string, filter *Filter) *logging.Logger {
	log := logging.MustGetLogger(processName)
	format := logging.MustStringFormatter("[%{level}] %{message}")
	logging.SetFormatter(format)
	logBackend := logging.NewLogBackend(os.Stderr, "", stdlog.LstdFlags|stdlog.LUTC)
	logging.SetBackend(logBackend)
	if filter == nil {
		filter = &Filter{Default: logging.INFO}
	}
	filter.Apply()
	return log
}
