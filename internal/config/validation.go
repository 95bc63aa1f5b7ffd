package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/robfig/cron/v3"
)

// CustomValidator wraps the validator with domain validation rules.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a validator with the custom rules registered.
func NewValidator() *CustomValidator {
	v := validator.New()

	// Registration only fails for a blank tag, which these are not.
	_ = v.RegisterValidation("environment", validateEnvironment)
	_ = v.RegisterValidation("loglevel", validateLogLevel)

	return &CustomValidator{validator: v}
}

// Validate validates the entire configuration.
func Validate(cfg *Config) error {
	return NewValidator().Validate(cfg)
}

// Validate runs struct validation plus the cross-field rules that tags
// cannot express.
func (cv *CustomValidator) Validate(cfg *Config) error {
	if err := cv.validator.Struct(cfg); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			return formatValidationErrors(validationErrors)
		}
		return fmt.Errorf("validation failed: %w", err)
	}

	if cfg.OddsAPI.Enabled && cfg.OddsAPI.APIKey == "" {
		return fmt.Errorf("config invalid: odds_api.api_key is required when odds_api.enabled is true")
	}
	if cfg.Notify.Enabled && cfg.Notify.IFTTTKey == "" {
		return fmt.Errorf("config invalid: notify.ifttt_key is required when notify.enabled is true")
	}
	if cfg.Schedule.Enabled {
		if _, err := cron.ParseStandard(cfg.Schedule.Cron); err != nil {
			return fmt.Errorf("config invalid: schedule.cron %q: %w", cfg.Schedule.Cron, err)
		}
	}
	return nil
}

func validateEnvironment(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "development", "staging", "production":
		return true
	}
	return false
}

func validateLogLevel(fl validator.FieldLevel) bool {
	switch strings.ToLower(fl.Field().String()) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic":
		return true
	}
	return false
}

func formatValidationErrors(errs validator.ValidationErrors) error {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q (value: %v)", e.Namespace(), e.Tag(), e.Value()))
	}
	return fmt.Errorf("config invalid: %s", strings.Join(msgs, "; "))
}
