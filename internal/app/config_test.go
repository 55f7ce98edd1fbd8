package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()

	cfgFile := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(cfgFile, []byte(contents), 0600); err != nil {
		t.Fatal(err)
	}

	return cfgFile
}

func TestNew(t *testing.T) {
	tests := []struct {
		testName      string
		cfgFile       string
		env           map[string]string
		logLevel      string
		expected      *Configuration
		expectedError error
	}{
		{
			"defaults",
			"",
			nil,
			"",
			&Configuration{
				LogLevel: "info",
				Crowbar: CrowbarOptions{
					Address:  "http://127.0.0.1:3000",
					Username: "crowbar",
					Password: "crowbar",
				},
			},
			nil,
		},
		{
			"env overrides defaults",
			"",
			map[string]string{
				"CROWBAR_INVENTORY_CROWBAR_ADDRESS":  "https://crowbar.example.org:3000",
				"CROWBAR_INVENTORY_CROWBAR_USERNAME": "admin",
				"CROWBAR_INVENTORY_CROWBAR_PASSWORD": "hunter2",
				"CROWBAR_INVENTORY_METRICS_TEXTFILE": "/var/lib/node_exporter/crowbar.prom",
			},
			"",
			&Configuration{
				LogLevel: "info",
				Crowbar: CrowbarOptions{
					Address:  "https://crowbar.example.org:3000",
					Username: "admin",
					Password: "hunter2",
				},
				Metrics: MetricsOptions{Textfile: "/var/lib/node_exporter/crowbar.prom"},
			},
			nil,
		},
		{
			"config file overrides defaults",
			writeConfig(t, "log_level: debug\ncrowbar:\n  address: http://10.0.0.1:3000\n  password: secret\n"),
			nil,
			"",
			&Configuration{
				LogLevel: "debug",
				Crowbar: CrowbarOptions{
					Address:  "http://10.0.0.1:3000",
					Username: "crowbar",
					Password: "secret",
				},
			},
			nil,
		},
		{
			"env overrides config file",
			writeConfig(t, "crowbar:\n  username: fromfile\n"),
			map[string]string{"CROWBAR_INVENTORY_CROWBAR_USERNAME": "fromenv"},
			"",
			&Configuration{
				LogLevel: "info",
				Crowbar: CrowbarOptions{
					Address:  "http://127.0.0.1:3000",
					Username: "fromenv",
					Password: "crowbar",
				},
			},
			nil,
		},
		{
			"log level flag overrides configuration",
			writeConfig(t, "log_level: debug\n"),
			nil,
			"trace",
			&Configuration{
				LogLevel: "trace",
				Crowbar: CrowbarOptions{
					Address:  "http://127.0.0.1:3000",
					Username: "crowbar",
					Password: "crowbar",
				},
			},
			nil,
		},
		{
			"address without scheme",
			"",
			map[string]string{"CROWBAR_INVENTORY_CROWBAR_ADDRESS": "127.0.0.1:3000"},
			"",
			nil,
			ErrConfig,
		},
		{
			"address with unsupported scheme",
			"",
			map[string]string{"CROWBAR_INVENTORY_CROWBAR_ADDRESS": "ftp://127.0.0.1"},
			"",
			nil,
			ErrConfig,
		},
		{
			"invalid log level",
			"",
			nil,
			"verbose",
			nil,
			ErrConfig,
		},
		{
			"config file does not exist",
			"/does/not/exist.yml",
			nil,
			"",
			nil,
			ErrConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.testName, func(t *testing.T) {
			// keep a config file in the users home from being read
			t.Setenv("HOME", t.TempDir())

			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			got, err := New(tt.cfgFile, tt.logLevel)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				return
			}

			require.Nil(t, err)
			assert.Equal(t, tt.expected, got.Config)
			assert.Equal(t, tt.expected.LogLevel, got.Logger.Level.String())
		})
	}
}

func TestNewReadsDefaultConfigFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	err := os.WriteFile(filepath.Join(home, ".crowbar-inventory.yml"), []byte("crowbar:\n  username: operator\n"), 0600)
	require.Nil(t, err)

	got, err := New("", "")
	require.Nil(t, err)
	assert.Equal(t, "operator", got.Config.Crowbar.Username)
}

func TestConfigurationRedacted(t *testing.T) {
	cfg := Configuration{Crowbar: CrowbarOptions{Username: "crowbar", Password: "crowbar"}}

	assert.Equal(t, "<redacted>", cfg.Redacted().Crowbar.Password)
	assert.Equal(t, "crowbar", cfg.Crowbar.Password, "original configuration is left unchanged")
	assert.Equal(t, "", Configuration{}.Redacted().Crowbar.Password)
}
