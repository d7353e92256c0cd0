package logger

import (
	"io"
	"os"

	"koala-user-service/internal/config/env"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

func NewLogger(config *env.Config) *logrus.Logger {
	log := logrus.New()

	log.SetLevel(logrus.Level(config.Log.Level))
	log.SetFormatter(&logrus.TextFormatter{
		ForceColors:     true,
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
	})

	// Mirror logs into a rotated file when a path is configured
	if path := config.Log.File.Path; path != "" {
		log.SetOutput(io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   path,
			MaxSize:    config.Log.File.MaxSize,
			MaxBackups: config.Log.File.MaxBackups,
			MaxAge:     config.Log.File.MaxAge,
			Compress:   true,
		}))
	}

	return log
}
