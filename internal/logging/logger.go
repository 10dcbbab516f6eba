package logging

import (
	"io"
	"os"
	"strings"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/2beens/fittrack/pkg"
)

// Rotation of the log file. Zero values fall back to lumberjack defaults.
type Rotation struct {
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

type LoggerSetupParams struct {
	// Service is attached to every entry and used as the Sentry server name.
	Service       string
	Environment   string
	LogLevel      string
	LogFormatJSON bool
	LogFileName   string
	LogToStdout   bool
	Rotation      Rotation
	SentryEnabled bool
	SentryDSN     string
}

func Setup(params LoggerSetupParams) {
	logrus.SetLevel(GetLevel(params.LogLevel))
	if params.LogFormatJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
	logrus.AddHook(newServiceHook(params.Service, params.Environment))

	if params.SentryEnabled {
		setupSentry(params)
	}

	switch {
	case params.LogFileName == "":
		logrus.Println("writing logs only to STDOUT")
	case params.LogToStdout:
		logrus.Printf("writing logs to [%s] and STDOUT", params.LogFileName)
	}
	logrus.SetOutput(newOutput(params))
}

func setupSentry(params LoggerSetupParams) {
	if err := sentry.Init(sentry.ClientOptions{
		Environment:      params.Environment,
		Dsn:              params.SentryDSN,
		TracesSampleRate: 1.0,
		ServerName:       params.Service,
	}); err != nil {
		logrus.Errorf("sentry.Init: %s", err)
		return
	}

	logrus.AddHook(NewSentryHook([]logrus.Level{
		logrus.PanicLevel,
		logrus.FatalLevel,
		logrus.ErrorLevel,
	}))
	logrus.Infoln("Sentry set up successfully")
}

func newOutput(params LoggerSetupParams) io.Writer {
	if params.LogFileName == "" {
		return os.Stdout
	}

	file := newRotatingFile(params.LogFileName, params.Rotation)
	if params.LogToStdout {
		return pkg.NewCombinedWriter(os.Stdout, file)
	}
	return file
}

func newRotatingFile(fileName string, rotation Rotation) *lumberjack.Logger {
	if !strings.HasSuffix(fileName, ".log") {
		fileName += ".log"
	}
	return &lumberjack.Logger{
		Filename:   fileName,
		MaxSize:    rotation.MaxSizeMB,
		MaxBackups: rotation.MaxBackups,
		MaxAge:     rotation.MaxAgeDays,
		Compress:   true,
	}
}

// GetLevel parses a level name, falling back to info.
func GetLevel(level string) logrus.Level {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return logrus.InfoLevel
	}
	return parsed
}

// serviceHook tags entries with the process and environment they come from.
// Fields already set on the entry win.
type serviceHook struct {
	service     string
	environment string
}

func newServiceHook(service, environment string) *serviceHook {
	return &serviceHook{service: service, environment: environment}
}

func (h *serviceHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *serviceHook) Fire(entry *logrus.Entry) error {
	if h.service != "" {
		if _, ok := entry.Data["service"]; !ok {
			entry.Data["service"] = h.service
		}
	}
	if h.environment != "" {
		if _, ok := entry.Data["env"]; !ok {
			entry.Data["env"] = h.environment
		}
	}
	return nil
}
