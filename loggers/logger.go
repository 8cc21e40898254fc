package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is usable before Init; Init just applies env configuration.
var Logger = logrus.New()

func Init() {
	Logger.SetOutput(os.Stdout)
	Logger.SetLevel(levelFromEnv())
}

func levelFromEnv() logrus.Level {
	lvl, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}
