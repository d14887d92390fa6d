package cmd

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// setupLogging configures the standard logrus logger. With a log file set,
// output goes through a rotating lumberjack writer without colors.
func setupLogging(level string, cfg LogConfig) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", level)
	}
	logrus.SetLevel(lvl)

	formatter := &logrus.TextFormatter{DisableColors: true}
	if cfg.File != "" {
		logrus.SetOutput(&lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
		})
		formatter.FullTimestamp = true
	} else {
		logrus.SetOutput(os.Stderr)
		formatter.DisableColors = !isatty.IsTerminal(os.Stderr.Fd())
	}
	logrus.SetFormatter(formatter)
}
