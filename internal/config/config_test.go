package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp runs the test inside an empty temporary directory so that no
// config.yaml or .env from the repository is picked up.
func chdirTemp(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	originalDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmpDir))
	t.Cleanup(func() {
		os.Chdir(originalDir)
	})
	return tmpDir
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"API_URL", "VITE_API_URL", "HTTP_TIMEOUT", "LOG_LEVEL", "RESOLVER_CACHE_SIZE"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)
	clearEnv(t)

	cfg, err := Load("", "test-version")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:3000", cfg.APIURL)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 1024, cfg.ResolverCacheSize)
	assert.Equal(t, "test-version", cfg.Version)
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	dir := chdirTemp(t)
	clearEnv(t)

	yamlContent := `
api_url: "http://catalog.internal:8080"
http_timeout: 5s
log_level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yamlContent), 0644))
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load("", "v")
	require.NoError(t, err)

	assert.Equal(t, "http://catalog.internal:8080", cfg.APIURL)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoad_ViteAPIURLFallback(t *testing.T) {
	chdirTemp(t)
	clearEnv(t)
	t.Setenv("VITE_API_URL", "https://catalog.example.com")

	cfg, err := Load("", "v")
	require.NoError(t, err)
	assert.Equal(t, "https://catalog.example.com", cfg.APIURL)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := chdirTemp(t)
	clearEnv(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("RESOLVER_CACHE_SIZE=0\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("RESOLVER_CACHE_SIZE") })

	cfg, err := Load("", "v")
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.ResolverCacheSize)
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	chdirTemp(t)
	clearEnv(t)

	_, err := Load("does-not-exist.yaml", "v")
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad scheme", map[string]string{"API_URL": "ftp://catalog"}},
		{"bad level", map[string]string{"LOG_LEVEL": "verbose"}},
		{"negative cache", map[string]string{"RESOLVER_CACHE_SIZE": "-1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdirTemp(t)
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load("", "v")
			assert.Error(t, err)
		})
	}
}
