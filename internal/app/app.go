package app

import (
	"io"
	"os"
	"os/signal"
	"syscall"

	runtime "github.com/banzaicloud/logrus-runtime-formatter"
	"github.com/opencrowbar/crowbar-inventory/internal/model"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// App holds attributes for the crowbar-inventory application
type App struct {
	// Viper loads configuration parameters.
	v *viper.Viper
	// Config is the application configuration.
	Config *Configuration
	// TermCh is the channel to terminate the app based on a signal
	TermCh chan os.Signal
	// Logger is the app logger
	Logger *logrus.Logger
}

// New returns returns a new instance of the crowbar-inventory app
//
// A non empty logLevel overrides the level set in the configuration.
func New(cfgFile, logLevel string) (*App, error) {
	app := &App{
		v:      viper.New(),
		Config: &Configuration{},
		TermCh: make(chan os.Signal, 1),
		Logger: NewLogger(os.Stderr),
	}

	if logLevel != "" {
		app.v.Set("log_level", logLevel)
	}

	if err := app.LoadConfiguration(cfgFile); err != nil {
		return nil, err
	}

	setLogLevel(app.Logger, app.Config.LogLevel)

	// register for SIGINT, SIGTERM
	signal.Notify(app.TermCh, syscall.SIGINT, syscall.SIGTERM)

	return app, nil
}

// NewLogger returns a logger writing JSON formatted entries to out.
//
// stdout carries the inventory returned to Ansible, logs are expected to go to stderr.
func NewLogger(out io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.Out = out
	logger.Level = logrus.InfoLevel

	logger.SetFormatter(
		&runtime.Formatter{ChildFormatter: &logrus.JSONFormatter{}},
	)

	return logger
}

func setLogLevel(logger *logrus.Logger, level string) {
	switch level {
	case model.LogLevelDebug:
		logger.Level = logrus.DebugLevel
	case model.LogLevelTrace:
		logger.Level = logrus.TraceLevel
	default:
		logger.Level = logrus.InfoLevel
	}
}
