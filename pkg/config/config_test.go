package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/velora-health/patient-assistant/pkg/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.False(t, cfg.Database.Enabled)
	assert.Equal(t, "https://overpass-api.de/api/interpreter", cfg.Overpass.Endpoint)
	assert.Equal(t, 30, cfg.Overpass.TimeoutSeconds)
	assert.False(t, cfg.OTEL.Enabled)

	// Assistant defaults cover the three built-in conditions
	assert.Len(t, cfg.Assistant.Classifiers, 3)
	assert.Contains(t, cfg.Assistant.SpecialtyKeywords, "heart")
	assert.Equal(t, 30.0, cfg.Assistant.Thresholds.Green.High)
	assert.Equal(t, 70.0, cfg.Assistant.Thresholds.Yellow.High)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DIRECTORY_DB_ENABLED", "true")
	t.Setenv("OVERPASS_TIMEOUT_SECONDS", "60")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.True(t, cfg.Database.Enabled)
	assert.Equal(t, 60, cfg.Overpass.TimeoutSeconds)
}

func TestLoadInvalidIntFallsBackToDefault(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-port")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoadAssistantMissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.LoadAssistant(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Len(t, cfg.Classifiers, 3)
	assert.Equal(t, config.DefaultRiskThresholds(), cfg.Thresholds)
	assert.Empty(t, cfg.EmergencyContacts)
}

func TestLoadAssistantFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assistant.yaml")
	content := `
risk_thresholds:
  green: {low: 0, high: 20}
  yellow: {low: 21, high: 60}
  red: {low: 61, high: 100}
classifiers:
  diabetes:
    kind: remote
    url: http://inference.internal/predict/diabetes
emergency_contacts:
  - name: Primary caregiver
    phone: "+15551234567"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := config.LoadAssistant(path)
	require.NoError(t, err)

	assert.Equal(t, 20.0, cfg.Thresholds.Green.High)
	assert.Equal(t, "remote", cfg.Classifiers["diabetes"].Kind)
	// Sections the file omits keep their defaults
	assert.Contains(t, cfg.SpecialtyKeywords, "kidney")
	require.Len(t, cfg.EmergencyContacts, 1)
	assert.Equal(t, "+15551234567", cfg.EmergencyContacts[0].Phone)
}

func TestLoadAssistantRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assistant.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{{{not yaml"), 0o644))

	_, err := config.LoadAssistant(path)
	assert.Error(t, err)
}

func TestDatabaseDSN(t *testing.T) {
	dbCfg := config.DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "secret",
		Database: "patient_assistant",
		SSLMode:  "disable",
	}

	dsn := dbCfg.DatabaseDSN()
	assert.Contains(t, dsn, "host=localhost")
	assert.Contains(t, dsn, "dbname=patient_assistant")
	assert.Contains(t, dsn, "sslmode=disable")
}

func TestRedisAddr(t *testing.T) {
	redisCfg := config.RedisConfig{Host: "cache.internal", Port: 6380}
	assert.Equal(t, "cache.internal:6380", redisCfg.RedisAddr())
}
