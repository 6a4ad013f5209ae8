package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kit "ticketdesk/internal/platform/testkit"
)

func TestPrefixNests(t *testing.T) {
	pg := New().Prefix("SERVICE_").Prefix("PGSQL_")
	assert.Equal(t, "SERVICE_PGSQL_DBURL", pg.key("DBURL"))
}

func TestMustString(t *testing.T) {
	t.Setenv("CFGTEST_PGSQL_DBURL", "  postgres://app@localhost/tickets ")
	pg := New().Prefix("CFGTEST_PGSQL_")
	assert.Equal(t, "postgres://app@localhost/tickets", pg.MustString("DBURL"))
	kit.MustPanic(t, func() { pg.MustString("MISSING") })
}

func TestMayFallbacks(t *testing.T) {
	c := New().Prefix("CFGTEST_API_")
	t.Setenv("CFGTEST_API_SWAGGER", "true")
	t.Setenv("CFGTEST_API_PROFILER", "maybe")
	t.Setenv("CFGTEST_API_SLOW_MS", " 750 ")
	t.Setenv("CFGTEST_API_MAX_CONNS", "many")
	t.Setenv("CFGTEST_API_TIMEOUT", "15s")
	t.Setenv("CFGTEST_API_READY_TIMEOUT", "soon")
	t.Setenv("CFGTEST_API_DOCS_TITLE_SUFFIX", " (staging) ")

	assert.True(t, c.MayBool("SWAGGER", false))
	assert.False(t, c.MayBool("PROFILER", false), "invalid bool falls back")
	assert.True(t, c.MayBool("MIGRATE", true), "unset falls back")

	assert.Equal(t, 750, c.MayInt("SLOW_MS", 500))
	assert.Equal(t, 4, c.MayInt("MAX_CONNS", 4))

	assert.Equal(t, 15*time.Second, c.MayDuration("TIMEOUT", 30*time.Second))
	assert.Equal(t, 2*time.Second, c.MayDuration("READY_TIMEOUT", 2*time.Second))

	assert.Equal(t, "(staging)", c.MayString("DOCS_TITLE_SUFFIX", ""))
	assert.Equal(t, "x", c.MayString("NOPE", "x"))
}

func TestMayCSV(t *testing.T) {
	c := New().Prefix("CFGTEST_CORS_")
	def := []string{"http://localhost:5173"}
	assert.Equal(t, def, c.MayCSV("ORIGINS", def))

	t.Setenv("CFGTEST_CORS_ORIGINS", " https://a.example , ,https://b.example ")
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, c.MayCSV("ORIGINS", def))

	t.Setenv("CFGTEST_CORS_ORIGINS", " , ")
	assert.Equal(t, def, c.MayCSV("ORIGINS", def))
}

func TestMayPort(t *testing.T) {
	c := New().Prefix("CFGTEST_HTTP_")
	assert.Equal(t, ":4000", c.MayPort("PORT", "4000"))

	t.Setenv("CFGTEST_HTTP_PORT", ":8080")
	assert.Equal(t, ":8080", c.MayPort("PORT", "4000"))

	t.Setenv("CFGTEST_HTTP_PORT", "abc")
	kit.MustPanic(t, func() { c.MayPort("PORT", "4000") })
	t.Setenv("CFGTEST_HTTP_PORT", "70000")
	kit.MustPanic(t, func() { c.MayPort("PORT", "4000") })
}

func TestConfigFileUnderEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ticketdesk.yaml")
	body := "core_api_port: 5050\ncore_api_cors_origins:\n  - https://desk.example\n  - https://admin.example\ncore_api_swagger: true\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	t.Setenv(FileEnv, path)
	t.Setenv("CORE_API_SWAGGER", "false")
	api := New().Prefix("CORE_API_")

	assert.Equal(t, ":5050", api.MayPort("PORT", "4000"))
	assert.Equal(t, []string{"https://desk.example", "https://admin.example"}, api.MayCSV("CORS_ORIGINS", nil))
	assert.False(t, api.MayBool("SWAGGER", true), "env wins over the file")
}

func TestConfigFileMissing(t *testing.T) {
	t.Setenv(FileEnv, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("CFGTEST_FALLBACK_PORT", "6060")
	assert.Equal(t, ":6060", New().Prefix("CFGTEST_FALLBACK_").MayPort("PORT", "4000"))

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestZeroConfReadsEnv(t *testing.T) {
	t.Setenv("CFGTEST_ZERO_KEY", " v ")
	var c Conf
	assert.Equal(t, "v", c.Prefix("CFGTEST_ZERO_").MayString("KEY", ""))
}
