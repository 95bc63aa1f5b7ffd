// Package config provides configuration management for the Gridiron Edge
// pipeline. All options are validated once at load time; call sites never
// re-check them.
package config

import "time"

// Config represents the complete application configuration.
type Config struct {
	App        AppConfig        `mapstructure:"app" validate:"required"`
	Paths      PathsConfig      `mapstructure:"paths" validate:"required"`
	Betting    BettingConfig    `mapstructure:"betting" validate:"required"`
	Model      ModelConfig      `mapstructure:"model" validate:"required"`
	Ratings    RatingsConfig    `mapstructure:"ratings" validate:"required"`
	Simulation SimulationConfig `mapstructure:"simulation"`
	OddsAPI    OddsAPIConfig    `mapstructure:"odds_api"`
	Notify     NotifyConfig     `mapstructure:"notify"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
	Schedule   ScheduleConfig   `mapstructure:"schedule"`
}

// AppConfig represents application-level configuration.
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// PathsConfig locates the partitioned data lake on disk.
type PathsConfig struct {
	Datalake string `mapstructure:"datalake" validate:"required"`
}

// BettingConfig holds the bankroll and ticket selection thresholds.
type BettingConfig struct {
	Bankroll      float64 `mapstructure:"bankroll" validate:"required,gt=0"`
	KellyFraction float64 `mapstructure:"kelly_fraction" validate:"required,gt=0,lte=1"`
	MinEdgePct    float64 `mapstructure:"min_edge_pct" validate:"gte=0"`
	MinKellyStake float64 `mapstructure:"min_kelly_stake" validate:"gte=0"`
}

// ModelConfig parameterizes the Normal outcome model.
type ModelConfig struct {
	HFAPoints       float64 `mapstructure:"hfa_points"`
	SigmaDiff       float64 `mapstructure:"sigma_diff" validate:"required,gt=0"`
	SigmaTotal      float64 `mapstructure:"sigma_total" validate:"required,gt=0"`
	LeagueTotalMean float64 `mapstructure:"league_total_mean" validate:"required,gt=0"`
}

// RatingsConfig selects and parameterizes the rating fitter.
type RatingsConfig struct {
	Method         string  `mapstructure:"method" validate:"required,oneof=ridge elo"`
	L2Lambda       float64 `mapstructure:"l2_lambda" validate:"required,gt=0"`
	EnforceSumZero bool    `mapstructure:"enforce_sum_zero"`
	EloK           float64 `mapstructure:"elo_k" validate:"required,gt=0"`
	EloIters       int     `mapstructure:"elo_iters" validate:"required,gte=1"`
	ScalePts       float64 `mapstructure:"scale_pts" validate:"required,gt=0"`
	MOVEnabled     bool    `mapstructure:"mov_enabled"`
	MOVScalePts    float64 `mapstructure:"mov_scale_pts" validate:"required,gt=0"`
	MOVCap         float64 `mapstructure:"mov_cap" validate:"required,gte=1"`
	TargetStd      float64 `mapstructure:"target_std" validate:"gte=0"`
}

// SimulationConfig controls Monte Carlo probability estimation.
type SimulationConfig struct {
	Enabled bool  `mapstructure:"enabled"`
	N       int   `mapstructure:"n" validate:"omitempty,gt=0"`
	Seed    int64 `mapstructure:"seed"`
}

// OddsAPIConfig configures the odds/scores fetcher.
type OddsAPIConfig struct {
	Enabled         bool   `mapstructure:"enabled"`
	APIKey          string `mapstructure:"api_key"`
	Region          string `mapstructure:"region"`
	CacheTTLSeconds int    `mapstructure:"cache_ttl_seconds" validate:"omitempty,gt=0"`
	ScoresDaysFrom  int    `mapstructure:"scores_days_from" validate:"omitempty,gt=0"`
}

// CacheTTL returns the response cache TTL as a duration.
func (c OddsAPIConfig) CacheTTL() time.Duration {
	if c.CacheTTLSeconds <= 0 {
		return 15 * time.Minute
	}
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// NotifyConfig configures push delivery of top picks.
type NotifyConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	IFTTTKey string `mapstructure:"ifttt_key"`
	Event    string `mapstructure:"event"`
	TopN     int    `mapstructure:"top_n" validate:"omitempty,gt=0"`
}

// MetricsConfig represents metrics and monitoring configuration.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Path    string `mapstructure:"path"`
}

// ScheduleConfig runs the pipeline under cron instead of one-shot.
type ScheduleConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Cron    string `mapstructure:"cron"`
}

// IsDevelopment checks if the application is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode.
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}
