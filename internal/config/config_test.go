package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validYAML = `
app:
  name: gridiron-edge
  environment: development
  log_level: info
paths:
  datalake: /tmp/lake
betting:
  bankroll: 2500
  kelly_fraction: 0.33
  min_edge_pct: 0.02
  min_kelly_stake: 5
model:
  hfa_points: 2.0
  sigma_diff: 13.0
  sigma_total: 10.0
  league_total_mean: 45.0
ratings:
  method: elo
  l2_lambda: 4.0
  enforce_sum_zero: true
  elo_k: 20.0
  elo_iters: 2
  scale_pts: 13.0
  mov_enabled: true
  mov_scale_pts: 7.0
  mov_cap: 2.0
  target_std: 5.0
`

func TestLoadParsesTypedSections(t *testing.T) {
	path := writeConfig(t, validYAML)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "gridiron-edge", cfg.App.Name)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, 2500.0, cfg.Betting.Bankroll)
	assert.Equal(t, "elo", cfg.Ratings.Method)
	assert.Equal(t, 5.0, cfg.Ratings.TargetStd)
	assert.NoError(t, Validate(cfg))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadExpandsEnvPlaceholders(t *testing.T) {
	t.Setenv("TEST_ODDS_KEY", "from-env")
	path := writeConfig(t, validYAML+`
odds_api:
  enabled: true
  api_key: ${TEST_ODDS_KEY}
  region: us
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.OddsAPI.APIKey)
}

func TestLoadWithDefaultsFillsOptionalFields(t *testing.T) {
	cfg, err := LoadWithDefaults(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "ridge", cfg.Ratings.Method)
	assert.Equal(t, 0.33, cfg.Betting.KellyFraction)
	assert.Equal(t, 45.0, cfg.Model.LeagueTotalMean)
	assert.Equal(t, 10000, cfg.Simulation.N)
	assert.NoError(t, Validate(cfg))
}

func TestValidateRejectsBadMethod(t *testing.T) {
	cfg, err := LoadWithDefaults("")
	require.NoError(t, err)
	cfg.Ratings.Method = "poisson"
	assert.Error(t, Validate(cfg))
}

func TestValidateRejectsNonPositiveSigma(t *testing.T) {
	cfg, err := LoadWithDefaults("")
	require.NoError(t, err)
	cfg.Model.SigmaDiff = 0
	assert.Error(t, Validate(cfg))
}

func TestValidateCrossFieldRules(t *testing.T) {
	cfg, err := LoadWithDefaults("")
	require.NoError(t, err)

	cfg.OddsAPI.Enabled = true
	cfg.OddsAPI.APIKey = ""
	assert.Error(t, Validate(cfg))
	cfg.OddsAPI.APIKey = "key"
	assert.NoError(t, Validate(cfg))

	cfg.Schedule.Enabled = true
	cfg.Schedule.Cron = "not a cron"
	assert.Error(t, Validate(cfg))
	cfg.Schedule.Cron = "0 12 * * 4"
	assert.NoError(t, Validate(cfg))
}

func TestValidateKellyFractionRange(t *testing.T) {
	cfg, err := LoadWithDefaults("")
	require.NoError(t, err)
	cfg.Betting.KellyFraction = 1.5
	assert.Error(t, Validate(cfg))
}
