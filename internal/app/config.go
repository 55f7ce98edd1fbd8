package app

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/jeremywohl/flatten"
	"github.com/mitchellh/mapstructure"
	"github.com/opencrowbar/crowbar-inventory/internal/model"
	"github.com/pkg/errors"
)

const (
	DefaultAddress  = "http://127.0.0.1:3000"
	DefaultUsername = "crowbar"
	DefaultPassword = "crowbar"

	redacted = "<redacted>"
)

var (
	ErrConfig = errors.New("configuration error")
)

// Configuration holds application configuration read from a YAML or set by env variables.
//
// nolint:govet // prefer readability over field alignment optimization for this case.
type Configuration struct {
	// LogLevel is the app verbose logging level.
	// one of - info, debug, trace
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`

	// Crowbar defines the OpenCrowbar API endpoint and credentials.
	Crowbar CrowbarOptions `mapstructure:"crowbar" yaml:"crowbar"`

	// Metrics defines where request metrics are written, if at all.
	Metrics MetricsOptions `mapstructure:"metrics" yaml:"metrics"`
}

// CrowbarOptions defines configuration for the OpenCrowbar status API client.
// https://github.com/opencrowbar/core/blob/master/doc/devguide/api.md
type CrowbarOptions struct {
	// Address is the scheme, host and port of the OpenCrowbar admin node,
	// the inventory path is appended to it as is.
	Address  string `mapstructure:"address" yaml:"address"`
	Username string `mapstructure:"username" yaml:"username"`
	Password string `mapstructure:"password" yaml:"password"`
}

// MetricsOptions defines the prometheus metrics output.
type MetricsOptions struct {
	// Textfile is the path of a node-exporter textfile collector file,
	// metrics are not written when this is empty.
	Textfile string `mapstructure:"textfile" yaml:"textfile"`
}

// Redacted returns a copy of the configuration with credentials masked.
func (c Configuration) Redacted() Configuration {
	if c.Crowbar.Password != "" {
		c.Crowbar.Password = redacted
	}

	return c
}

// LoadConfiguration loads application configuration
//
// Reads in the cfgFile when available and overrides from environment variables.
func (a *App) LoadConfiguration(cfgFile string) error {
	a.v.SetConfigType("yaml")
	a.v.SetEnvPrefix(model.EnvPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()

	a.v.SetDefault("log_level", model.LogLevelInfo)
	a.v.SetDefault("crowbar.address", DefaultAddress)
	a.v.SetDefault("crowbar.username", DefaultUsername)
	a.v.SetDefault("crowbar.password", DefaultPassword)
	a.v.SetDefault("metrics.textfile", "")

	cfgFile, err := configFile(cfgFile)
	if err != nil {
		return errors.Wrap(ErrConfig, err.Error())
	}

	if cfgFile != "" {
		fh, err := os.Open(cfgFile)
		if err != nil {
			return errors.Wrap(ErrConfig, err.Error())
		}
		defer fh.Close()

		if err = a.v.ReadConfig(fh); err != nil {
			return errors.Wrap(ErrConfig, "ReadConfig error: "+err.Error())
		}
	}

	if err := a.envBindVars(); err != nil {
		return errors.Wrap(ErrConfig, "env var bind error: "+err.Error())
	}

	if err := a.v.Unmarshal(a.Config); err != nil {
		return errors.Wrap(ErrConfig, "Unmarshal error: "+err.Error())
	}

	if err := a.Config.validate(); err != nil {
		return errors.Wrap(ErrConfig, err.Error())
	}

	return nil
}

// configFile returns the configuration file to read.
//
// An explicit cfgFile must exist, the default $HOME/.crowbar-inventory.yml is
// only read when present.
func configFile(cfgFile string) (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}

	homedir, err := os.UserHomeDir()
	if err != nil {
		// no home, run with defaults and env overrides
		return "", nil
	}

	defaultFile := filepath.Join(homedir, "."+model.AppName+".yml")
	if _, err := os.Stat(defaultFile); err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}

		return "", err
	}

	return defaultFile, nil
}

// envBindVars binds environment variables to the struct
// without a configuration file being unmarshalled,
// this is a workaround for a viper bug,
//
// This can be replaced by the solution in https://github.com/spf13/viper/pull/1429
// once that PR is merged.
func (a *App) envBindVars() error {
	envKeysMap := map[string]interface{}{}
	if err := mapstructure.Decode(a.Config, &envKeysMap); err != nil {
		return err
	}

	// Flatten nested conf map
	flat, err := flatten.Flatten(envKeysMap, "", flatten.DotStyle)
	if err != nil {
		return errors.Wrap(err, "Unable to flatten config")
	}

	for k := range flat {
		if err := a.v.BindEnv(k); err != nil {
			return errors.Wrap(ErrConfig, "env var bind error: "+err.Error())
		}
	}

	return nil
}

func (c *Configuration) validate() error {
	var merr *multierror.Error

	endpoint, err := url.Parse(c.Crowbar.Address)
	switch {
	case err != nil:
		merr = multierror.Append(merr, errors.Wrap(err, "crowbar.address"))
	case endpoint.Host == "" || (endpoint.Scheme != "http" && endpoint.Scheme != "https"):
		merr = multierror.Append(merr, errors.New("crowbar.address expected an http(s) URL, got: "+c.Crowbar.Address))
	}

	if c.Crowbar.Username == "" {
		merr = multierror.Append(merr, errors.New("crowbar.username not defined"))
	}

	if !validLogLevel(c.LogLevel) {
		merr = multierror.Append(merr, errors.New("log_level expected one of "+strings.Join(model.LogLevels(), ", ")+", got: "+c.LogLevel))
	}

	return merr.ErrorOrNil()
}

func validLogLevel(level string) bool {
	for _, l := range model.LogLevels() {
		if l == level {
			return true
		}
	}

	return false
}
