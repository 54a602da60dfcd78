package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/samplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, domain.RoleProjectManager, cfg.Role)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, 5, cfg.Variance.AheadTolerance)
	assert.Equal(t, 20, cfg.Variance.CriticalGap)
	assert.Contains(t, cfg.DBPath, "samplan.db")
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SAMPLAN_DB", "/tmp/x.db")
	t.Setenv("SAMPLAN_ACTOR", "ana")
	t.Setenv("SAMPLAN_ROLE", "consultant")
	t.Setenv("SAMPLAN_LOG_USE_CASES", "true")
	t.Setenv("SAMPLAN_CORS_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("SAMPLAN_VARIANCE_CRITICAL_GAP", "30")
	t.Setenv("SAMPLAN_VARIANCE_CRITICAL_DELAYED", "0")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x.db", cfg.DBPath)
	assert.Equal(t, domain.Session{Actor: "ana", Role: domain.RoleConsultant}, cfg.Session())
	assert.True(t, cfg.LogUseCases)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.Equal(t, 30, cfg.Variance.CriticalGap)
	assert.Equal(t, 0, cfg.Variance.CriticalDelayed)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	t.Setenv("SAMPLAN_VARIANCE_BEHIND_GAP", "not-a-number")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Variance.BehindGap, "unparseable values are ignored")

	t.Setenv("SAMPLAN_ROLE", "janitor")
	_, err = LoadConfig()
	assert.ErrorContains(t, err, "SAMPLAN_ROLE")
}

func TestLoadConfig_InconsistentVariancePolicy(t *testing.T) {
	t.Setenv("SAMPLAN_VARIANCE_BEHIND_GAP", "25")
	_, err := LoadConfig()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	content := "SAMPLAN_HTTP_ADDR=:9090\nSAMPLAN_TEMPLATE_FILE=/etc/sam.json\nSAMPLAN_ACTOR=from-file\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	// The process environment wins over the file.
	t.Setenv("SAMPLAN_ACTOR", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "/etc/sam.json", cfg.TemplateFile)
	assert.Equal(t, "from-env", cfg.Actor)

	_, present := os.LookupEnv("SAMPLAN_HTTP_ADDR")
	assert.False(t, present, "file values must not leak into the process environment")
}

func TestLoad_MissingFileIsSkipped(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
}
