package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "GRIDIRON_EDGE"

// Load reads and parses the configuration from file and environment
// variables. Environment variable placeholders in the YAML (${VAR}) are
// expanded before parsing.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	v := newViper()
	if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	return cfg, nil
}

// LoadWithDefaults loads configuration, filling documented defaults for
// optional fields and tolerating a missing config file.
func LoadWithDefaults(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	v := newViper()
	setDefaults(v)

	if data, err := os.ReadFile(configPath); err == nil {
		expanded := os.ExpandEnv(string(data))
		if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "gridiron-edge")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("paths.datalake", "data")

	v.SetDefault("betting.bankroll", 1000.0)
	v.SetDefault("betting.kelly_fraction", 0.33)
	v.SetDefault("betting.min_edge_pct", 0.0)
	v.SetDefault("betting.min_kelly_stake", 0.0)

	v.SetDefault("model.hfa_points", 2.0)
	v.SetDefault("model.sigma_diff", 13.0)
	v.SetDefault("model.sigma_total", 10.0)
	v.SetDefault("model.league_total_mean", 45.0)

	v.SetDefault("ratings.method", "ridge")
	v.SetDefault("ratings.l2_lambda", 4.0)
	v.SetDefault("ratings.enforce_sum_zero", true)
	v.SetDefault("ratings.elo_k", 20.0)
	v.SetDefault("ratings.elo_iters", 2)
	v.SetDefault("ratings.scale_pts", 13.0)
	v.SetDefault("ratings.mov_enabled", true)
	v.SetDefault("ratings.mov_scale_pts", 7.0)
	v.SetDefault("ratings.mov_cap", 2.0)
	v.SetDefault("ratings.target_std", 0.0)

	v.SetDefault("simulation.enabled", false)
	v.SetDefault("simulation.n", 10000)
	v.SetDefault("simulation.seed", 0)

	v.SetDefault("odds_api.enabled", false)
	v.SetDefault("odds_api.region", "us")
	v.SetDefault("odds_api.cache_ttl_seconds", 900)
	v.SetDefault("odds_api.scores_days_from", 14)

	v.SetDefault("notify.enabled", false)
	v.SetDefault("notify.event", "gridiron_picks")
	v.SetDefault("notify.top_n", 3)

	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.port", 9090)
	v.SetDefault("metrics.path", "/metrics")

	v.SetDefault("schedule.enabled", false)
	v.SetDefault("schedule.cron", "0 12 * * 4")
}
