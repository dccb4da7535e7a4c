package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

type Options struct {
	// Verbose switches to debug level.
	Verbose bool
	// DisableColor if true will disable outputting colors.
	DisableColor bool
	// Output defaults to stderr so command output on stdout stays clean.
	Output io.Writer
}

func Init(options Options) {
	if options.Verbose {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}

	if options.Output == nil {
		options.Output = os.Stderr
	}
	logrus.SetOutput(options.Output)

	logrus.SetFormatter(&logrus.TextFormatter{
		DisableColors:    options.DisableColor,
		DisableTimestamp: !options.Verbose,
		FullTimestamp:    true,
		TimestampFormat:  "15:04:05.000",
	})
}
