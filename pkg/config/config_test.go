package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "kvs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	cases := []struct {
		name   string
		file   string
		env    map[string]string
		expect Config
	}{
		{
			name:   "defaults",
			expect: Config{LogLevel: "info", LogFormat: "logfmt"},
		},
		{
			name: "file",
			file: "log_level: debug\nlog_format: json\nmetrics_file: /tmp/kvs.prom\n",
			expect: Config{
				LogLevel:    "debug",
				LogFormat:   "json",
				MetricsFile: "/tmp/kvs.prom",
			},
		},
		{
			name:   "partial file gets defaults",
			file:   "log_level: warn\n",
			expect: Config{LogLevel: "warn", LogFormat: "logfmt"},
		},
		{
			name: "env overrides file",
			file: "log_level: debug\nlog_format: json\n",
			env: map[string]string{
				EnvLogLevel:    "error",
				EnvMetricsFile: "/var/lib/kvs.prom",
			},
			expect: Config{
				LogLevel:    "error",
				LogFormat:   "json",
				MetricsFile: "/var/lib/kvs.prom",
			},
		},
		{
			name:   "env without file",
			env:    map[string]string{EnvLogFormat: "json"},
			expect: Config{LogLevel: "info", LogFormat: "json"},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			for _, k := range []string{EnvLogLevel, EnvLogFormat, EnvMetricsFile} {
				t.Setenv(k, "")
			}
			for k, v := range c.env {
				t.Setenv(k, v)
			}

			var path string
			if c.file != "" {
				path = writeConfig(t, c.file)
			}

			cfg, err := LoadConfig(path)
			require.NoError(t, err)
			require.Equal(t, c.expect, *cfg)
		})
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvLogFormat, "")

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, "log_level: [unterminated\n"))
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to parse config file")
	})

	t.Run("all invalid fields reported", func(t *testing.T) {
		cfg, err := LoadConfig(writeConfig(t, "log_level: loud\nlog_format: xml\n"))
		require.NoError(t, err, "loading does not validate")

		err = cfg.Validate()
		require.Error(t, err)

		var merr *multierror.Error
		require.ErrorAs(t, err, &merr)
		require.Len(t, merr.Errors, 2)
		require.Contains(t, err.Error(), `invalid log_level "loud"`)
		require.Contains(t, err.Error(), `invalid log_format "xml"`)
	})
}
