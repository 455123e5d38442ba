// Package logger configures the application log file. The terminal is owned
// by the TUI, so log output goes to a rotating file under the config
// directory rather than stderr.
package logger

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the shared logger instance. It discards nothing but writes at
// InfoLevel until Init is called.
var Logger = log.New(os.Stderr)

// Config holds logger configuration.
type Config struct {
	Debug     bool
	ConfigDir string
}

// Init points the shared logger at a rotating file under cfg.ConfigDir/logs.
func Init(cfg Config) error {
	logDir := filepath.Join(cfg.ConfigDir, "logs")
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return err
	}

	fileWriter := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, "csmreport.log"),
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	level := log.InfoLevel
	if cfg.Debug {
		level = log.DebugLevel
	}

	Logger = log.NewWithOptions(fileWriter, log.Options{
		ReportTimestamp: true,
		Level:           level,
	})
	return nil
}
