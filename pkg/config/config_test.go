package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"openf1telemetry/pkg/openf1"
)

// unsetEnv removes the known keys for the duration of the test.
func unsetEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{KeyBaseURL, KeyLogLevel, KeyHTTPTimeout, KeyWebserverAddress} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	unsetEnv(t)
	t.Setenv(KeyBaseURL, "https://api.openf1.org/v1")
	t.Setenv(KeyLogLevel, "DEBUG")
	t.Setenv(KeyHTTPTimeout, "15s")
	t.Setenv(KeyWebserverAddress, "127.0.0.1:5000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://api.openf1.org/v1/", cfg.BaseURL)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "127.0.0.1:5000", cfg.WebserverAddress)
}

func TestLoad_Defaults(t *testing.T) {
	unsetEnv(t)
	t.Setenv(KeyBaseURL, "https://api.openf1.org/v1/")
	t.Setenv(KeyLogLevel, "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, time.Duration(0), cfg.HTTPTimeout)
	assert.Equal(t, ":8080", cfg.WebserverAddress)
}

func TestLoad_MissingBaseURLFailsFast(t *testing.T) {
	unsetEnv(t)

	cfg, err := Load()
	assert.Nil(t, cfg)

	var cfgErr *openf1.ConfigError
	require.True(t, errors.As(err, &cfgErr), "got %v", err)
	assert.Equal(t, KeyBaseURL, cfgErr.Key)
	assert.Equal(t, openf1.KindConfiguration, openf1.Kind(err))
}

func TestLoad_InvalidValues(t *testing.T) {
	testCases := []struct {
		name string
		key  string
		env  map[string]string
	}{
		{
			name: "base url without scheme",
			key:  KeyBaseURL,
			env:  map[string]string{KeyBaseURL: "api.openf1.org/v1"},
		},
		{
			name: "base url with unsupported scheme",
			key:  KeyBaseURL,
			env:  map[string]string{KeyBaseURL: "ftp://api.openf1.org/v1"},
		},
		{
			name: "unknown log level",
			key:  KeyLogLevel,
			env:  map[string]string{KeyBaseURL: "https://api.openf1.org/v1", KeyLogLevel: "loud"},
		},
		{
			name: "negative timeout",
			key:  KeyHTTPTimeout,
			env:  map[string]string{KeyBaseURL: "https://api.openf1.org/v1", KeyHTTPTimeout: "-1s"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			unsetEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			assert.Nil(t, cfg)

			var cfgErr *openf1.ConfigError
			require.True(t, errors.As(err, &cfgErr), "got %v", err)
			assert.Equal(t, tc.key, cfgErr.Key)
		})
	}
}

func TestLoad_EnvFile(t *testing.T) {
	unsetEnv(t)

	path := filepath.Join(t.TempDir(), "openf1.env")
	content := "BASE_API_URL=http://localhost:9000/v1/\nLOG_LEVEL=warn\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000/v1/", cfg.BaseURL)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoad_EnvironmentWinsOverEnvFile(t *testing.T) {
	unsetEnv(t)
	t.Setenv(KeyBaseURL, "https://api.openf1.org/v1/")

	path := filepath.Join(t.TempDir(), "openf1.env")
	require.NoError(t, os.WriteFile(path, []byte("BASE_API_URL=http://localhost:9000/v1/\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://api.openf1.org/v1/", cfg.BaseURL)
}

func TestLoad_MissingExplicitEnvFile(t *testing.T) {
	unsetEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.env"))
	var cfgErr *openf1.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "env file", cfgErr.Key)
}

func TestConfig_NewClientAndLogger(t *testing.T) {
	cfg := &Config{BaseURL: "https://api.openf1.org/v1", LogLevel: "warn", WebserverAddress: ":8080"}
	require.NoError(t, cfg.Validate())

	var buf bytes.Buffer
	logger := cfg.Logger(&buf)
	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	c, err := cfg.NewClient(logger)
	require.NoError(t, err)
	assert.Equal(t, "https://api.openf1.org/v1/", c.BaseURL())
}
