package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	charmLog "github.com/charmbracelet/log"
	"github.com/evanschultz/todo/internal/config"
	"github.com/evanschultz/todo/internal/platform"
)

// defaultDevLogDir is the dev log directory, relative to the data dir, used when the
// config leaves it blank.
const defaultDevLogDir = "log"

// logSetup selects the sinks for one command run.
type logSetup struct {
	appName string
	// console is false for the interactive editor: stderr belongs to the alt screen.
	console bool
	devMode bool
	dataDir string
	cfg     config.LoggingConfig
	now     func() time.Time
}

// cmdLogger writes command events to stderr and, in dev mode, to a dated logfmt file.
// The file sink records every level since it is the only record of an editor session.
type cmdLogger struct {
	sinks   []*charmLog.Logger
	console bool
	file    *os.File
}

// newCmdLogger opens the sinks described by setup.
func newCmdLogger(stderr io.Writer, setup logSetup) (*cmdLogger, error) {
	level, err := charmLog.ParseLevel(strings.ToLower(strings.TrimSpace(setup.cfg.Level)))
	if err != nil {
		return nil, fmt.Errorf("parse logging level %q: %w", setup.cfg.Level, err)
	}
	now := setup.now
	if now == nil {
		now = time.Now
	}

	l := &cmdLogger{console: setup.console && stderr != nil}
	if l.console {
		l.sinks = append(l.sinks, charmLog.NewWithOptions(stderr, charmLog.Options{
			Level:           level,
			Prefix:          setup.appName,
			ReportTimestamp: true,
			TimeFormat:      time.Kitchen,
			Formatter:       charmLog.TextFormatter,
		}))
	}
	if !setup.devMode || !setup.cfg.DevFile.Enabled {
		return l, nil
	}

	path := devLogPath(setup.dataDir, setup.cfg.DevFile.Dir, setup.appName, now())
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create dev log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open dev log file: %w", err)
	}
	l.file = f
	l.sinks = append(l.sinks, charmLog.NewWithOptions(f, charmLog.Options{
		Level:           charmLog.DebugLevel,
		Prefix:          setup.appName,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Formatter:       charmLog.LogfmtFormatter,
	}))
	return l, nil
}

// Path returns the dev log file, empty when there is none.
func (l *cmdLogger) Path() string {
	if l == nil || l.file == nil {
		return ""
	}
	return l.file.Name()
}

// Close closes the dev log file.
func (l *cmdLogger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

func (l *cmdLogger) log(level charmLog.Level, msg string, keyvals []any) {
	if l == nil {
		return
	}
	for _, sink := range l.sinks {
		sink.Log(level, msg, keyvals...)
	}
}

// Debug logs a debug event.
func (l *cmdLogger) Debug(msg string, keyvals ...any) { l.log(charmLog.DebugLevel, msg, keyvals) }

// Info logs an informational event.
func (l *cmdLogger) Info(msg string, keyvals ...any) { l.log(charmLog.InfoLevel, msg, keyvals) }

// Warn logs a warning.
func (l *cmdLogger) Warn(msg string, keyvals ...any) { l.log(charmLog.WarnLevel, msg, keyvals) }

// Error logs an error.
func (l *cmdLogger) Error(msg string, keyvals ...any) { l.log(charmLog.ErrorLevel, msg, keyvals) }

// devLogPath resolves <dir>/<app>-YYYYMMDD.log. A relative or blank dir sits under the
// data dir, next to the lists it describes.
func devLogPath(dataDir, dir, appName string, now time.Time) string {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		dir = defaultDevLogDir
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(dataDir, dir)
	}
	return filepath.Join(dir, logFileStem(appName)+"-"+now.Format("20060102")+".log")
}

// logFileStem keeps letters, digits, dots and underscores and maps everything else to '-'.
func logFileStem(appName string) string {
	stem := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' || r == '_' {
			return r
		}
		return '-'
	}, strings.TrimSpace(appName))
	stem = strings.Trim(stem, "-.")
	if stem == "" {
		return platform.DefaultAppName
	}
	return stem
}
