package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

var logg *logrus.Logger

func init() {
	logg = logrus.New()
	logg.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logg.SetLevel(logrus.InfoLevel)
	logg.SetOutput(os.Stdout)
}

// Logger returns the shared application logger.
func Logger() *logrus.Logger {
	return logg
}

// Setup adjusts the logger for the given environment: JSON output in
// production, debug level elsewhere.
func Setup(env string) {
	if env == "production" {
		logg.SetFormatter(&logrus.JSONFormatter{})
		logg.SetLevel(logrus.InfoLevel)
		return
	}
	logg.SetLevel(logrus.DebugLevel)
}
