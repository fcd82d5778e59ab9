package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
	"github.com/robfig/cron/v3"
)

const weightSumTolerance = 1e-6

// CustomValidator wraps the validator with custom validation rules
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new validator with custom validation functions
func NewValidator() *CustomValidator {
	v := validator.New()

	// Register custom validation functions
	_ = v.RegisterValidation("environment", validateEnvironment)
	_ = v.RegisterValidation("loglevel", validateLogLevel)
	_ = v.RegisterValidation("cron", validateCronSpec)

	return &CustomValidator{validator: v}
}

// Validate validates the entire configuration
func Validate(cfg *Config) error {
	cv := NewValidator()
	return cv.Validate(cfg)
}

// ValidateProfile validates a weight and threshold profile
func ValidateProfile(p *Profile) error {
	cv := NewValidator()
	return cv.ValidateProfile(p)
}

// Validate validates the configuration using registered validation rules
func (cv *CustomValidator) Validate(cfg *Config) error {
	if err := cv.validator.Struct(cfg); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return formatValidationErrors("configuration", validationErrors)
		}
		return fmt.Errorf("validation failed: %w", err)
	}

	if cfg.Engine.BatchWorkers > 1 && cfg.Engine.RateBurst < 1 {
		return fmt.Errorf("rate_burst must be at least 1 when batch_workers > 1")
	}

	return nil
}

// ValidateProfile validates a profile using struct tags and cross-field rules
func (cv *CustomValidator) ValidateProfile(p *Profile) error {
	if err := cv.validator.Struct(p); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return formatValidationErrors("profile", validationErrors)
		}
		return fmt.Errorf("profile validation failed: %w", err)
	}

	return validateProfileCrossField(p)
}

// validateEnvironment validates the environment field
func validateEnvironment(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "development", "staging", "production":
		return true
	default:
		return false
	}
}

// validateLogLevel validates the log level field
func validateLogLevel(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

// validateCronSpec validates a cron expression or descriptor such as "@every 30s"
func validateCronSpec(fl validator.FieldLevel) bool {
	_, err := cron.ParseStandard(fl.Field().String())
	return err == nil
}

// validateProfileCrossField performs cross-field validations on a profile
func validateProfileCrossField(p *Profile) error {
	if sum := p.Weights.Vector().Sum(); math.Abs(sum-1.0) > weightSumTolerance {
		return fmt.Errorf("factor weights must sum to 1.0, got %.6f", sum)
	}

	if math.Abs(p.Surface.CareerWeight+p.Surface.RecentWeight-1.0) > weightSumTolerance {
		return fmt.Errorf("surface career_weight and recent_weight must sum to 1.0")
	}

	if math.Abs(p.HeadToHead.OverallWeight+p.HeadToHead.SurfaceWeight-1.0) > weightSumTolerance {
		return fmt.Errorf("head_to_head overall_weight and surface_weight must sum to 1.0")
	}

	confidence := p.Probability.CoverageWeight + p.Probability.AgreementWeight + p.Probability.MarginWeight
	if math.Abs(confidence-1.0) > weightSumTolerance {
		return fmt.Errorf("confidence weights must sum to 1.0, got %.6f", confidence)
	}

	for i := 1; i < len(p.Ratings.UnrankedBands); i++ {
		prev, cur := p.Ratings.UnrankedBands[i-1], p.Ratings.UnrankedBands[i]
		if cur.MaxPrice <= prev.MaxPrice || cur.Rank < prev.Rank {
			return fmt.Errorf("ratings.unranked_bands must be ordered by ascending price and rank (index %d)", i)
		}
	}

	for i := 1; i < len(p.Context.HomeBands); i++ {
		prev, cur := p.Context.HomeBands[i-1], p.Context.HomeBands[i]
		if cur.MaxRank <= prev.MaxRank || cur.Level > prev.Level {
			return fmt.Errorf("context.home_bands must be ordered by ascending rank and descending level (index %d)", i)
		}
	}

	for i := 1; i < len(p.Staking.Disagreement); i++ {
		prev, cur := p.Staking.Disagreement[i-1], p.Staking.Disagreement[i]
		if cur.MaxRatio <= prev.MaxRatio || cur.Multiplier > prev.Multiplier {
			return fmt.Errorf("staking.disagreement must be ordered by ascending ratio and descending multiplier (index %d)", i)
		}
	}

	for i := 1; i < len(p.Staking.DataQuality.Tiers); i++ {
		prev, cur := p.Staking.DataQuality.Tiers[i-1], p.Staking.DataQuality.Tiers[i]
		if cur.AboveUnits <= prev.AboveUnits || cur.MinMatches < prev.MinMatches {
			return fmt.Errorf("staking.data_quality.tiers must be ordered by ascending units and matches (index %d)", i)
		}
	}

	for i := 1; i < len(p.Staking.Tiers); i++ {
		if p.Staking.Tiers[i].Below <= p.Staking.Tiers[i-1].Below {
			return fmt.Errorf("staking.tiers must be ordered by ascending ceiling (index %d)", i)
		}
	}

	bands := []GateBand{p.Classifier.Favorite, p.Classifier.Middle, p.Classifier.Underdog}
	for i := 1; i < len(bands); i++ {
		if bands[i].MinPrice < bands[i-1].MaxPrice {
			return fmt.Errorf("classifier gate bands must not overlap (index %d)", i)
		}
	}

	if p.Classifier.MinPrice < p.Staking.MinPrice {
		return fmt.Errorf("classifier.min_price cannot be below staking.min_price")
	}

	if p.Staking.Granularity > p.Staking.MinUnits {
		return fmt.Errorf("staking.granularity cannot exceed staking.min_units")
	}

	return nil
}

// formatValidationErrors formats validation errors into a readable string
func formatValidationErrors(subject string, validationErrors validator.ValidationErrors) error {
	var errMsg string
	for _, fieldError := range validationErrors {
		field := fieldError.Namespace()
		tag := fieldError.Tag()
		value := fieldError.Value()

		switch tag {
		case "required":
			errMsg += fmt.Sprintf("- Field '%s' is required\n", field)
		case "min", "max":
			errMsg += fmt.Sprintf("- Field '%s' validation failed: %s constraint violated\n", field, tag)
		case "gt", "gte", "lt", "lte":
			errMsg += fmt.Sprintf("- Field '%s' validation failed: numeric constraint %s=%s violated, got '%v'\n", field, tag, fieldError.Param(), value)
		case "gtfield", "gtefield", "ltefield":
			errMsg += fmt.Sprintf("- Field '%s' must be ordered against '%s', got '%v'\n", field, fieldError.Param(), value)
		case "environment":
			errMsg += fmt.Sprintf("- Field '%s' must be one of: development, staging, production\n", field)
		case "loglevel":
			errMsg += fmt.Sprintf("- Field '%s' must be one of: debug, info, warn, error\n", field)
		case "cron":
			errMsg += fmt.Sprintf("- Field '%s' must be a valid cron expression, got '%v'\n", field, value)
		default:
			errMsg += fmt.Sprintf("- Field '%s' failed validation: %s\n", field, tag)
		}
	}
	return fmt.Errorf("%s validation failed:\n%s", subject, errMsg)
}
