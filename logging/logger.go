package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Log is replaced by BootstrapLogger; tests may swap it for logrus.New().
var Log = logrus.New()

func BootstrapLogger(level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}

	Log = &logrus.Logger{
		Out:   os.Stderr,
		Hooks: make(logrus.LevelHooks),
		Formatter: &logrus.TextFormatter{
			DisableColors:    false,
			DisableQuote:     false,
			DisableTimestamp: false,
			FullTimestamp:    true,
			TimestampFormat:  "",
		},
		ReportCaller: false,
		Level:        lvl,
		ExitFunc:     os.Exit,
	}

	Log.SetReportCaller(true)

	if err != nil {
		Log.Warnf("unknown log level %q, using info", level)
	}
}

// SetOutput sends log lines to path instead of stderr. An empty path keeps
// the current output. The returned closer must be closed on shutdown.
func SetOutput(path string) (io.Closer, error) {
	if path == "" {
		return io.NopCloser(nil), nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}

	Log.SetOutput(f)
	Log.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	return f, nil
}
