package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	inputValidator *validator.Validate
	validatorOnce  sync.Once
)

// InputValidator returns the shared validator with the domain validators registered
func InputValidator() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
		_ = v.RegisterValidation("surface", validateSurface)
		_ = v.RegisterValidation("tier", validateTier)
		inputValidator = v
	})
	return inputValidator
}

func validateSurface(fl validator.FieldLevel) bool {
	return Surface(fl.Field().String()).IsValid()
}

func validateTier(fl validator.FieldLevel) bool {
	return Tier(fl.Field().String()).IsValid()
}

// Validate checks the shape and ranges of an evaluation input. The first
// problem found is returned as an *InputError naming the field.
func (in *MatchInput) Validate() error {
	if err := InputValidator().Struct(in); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			return fieldErrorToInputError(validationErrors[0])
		}
		return fmt.Errorf("input validation failed: %w", err)
	}

	for _, side := range []Side{SideA, SideB} {
		if err := in.validateHistory(side); err != nil {
			return err
		}
	}

	return nil
}

// validateHistory checks the rules struct tags cannot express
func (in *MatchInput) validateHistory(side Side) error {
	player := in.Player(side)
	prefix := "player_a"
	if side == SideB {
		prefix = "player_b"
	}

	for i := range player.Recent {
		rec := &player.Recent[i]
		field := fmt.Sprintf("%s.recent_matches[%d]", prefix, i)

		if rec.Date.After(in.Match.Date) {
			return NewInputError(field+".date", rec.Date, "match is dated after the match being evaluated")
		}
		if len(rec.Sets) > rec.BestOf {
			return NewInputError(field+".sets", len(rec.Sets), fmt.Sprintf("more sets than best-of-%d allows", rec.BestOf))
		}
		for j, set := range rec.Sets {
			if set.Player == 0 && set.Opponent == 0 {
				return NewInputError(fmt.Sprintf("%s.sets[%d]", field, j), set, "set has no games")
			}
		}
		if i > 0 && rec.Date.After(player.Recent[i-1].Date) {
			return NewInputError(field+".date", rec.Date, "history must be ordered newest first")
		}
	}

	for i, ts := range player.Activity {
		if ts.After(in.Match.Date) {
			return NewInputError(fmt.Sprintf("%s.activity[%d]", prefix, i), ts, "activity is dated after the match being evaluated")
		}
	}

	return nil
}

// fieldErrorToInputError converts a validator field error into an InputError
func fieldErrorToInputError(fe validator.FieldError) *InputError {
	field := fe.Namespace()
	if idx := strings.Index(field, "."); idx >= 0 {
		field = field[idx+1:]
	}

	var reason string
	switch fe.Tag() {
	case "required":
		reason = "is required"
	case "gt", "gte", "lt", "lte", "min", "max":
		reason = fmt.Sprintf("must satisfy %s=%s", fe.Tag(), fe.Param())
	case "ltefield":
		reason = fmt.Sprintf("must not exceed %s", fe.Param())
	case "oneof":
		reason = fmt.Sprintf("must be one of: %s", fe.Param())
	case "surface":
		reason = "must be one of: hard, clay, grass, carpet"
	case "tier":
		reason = "must be one of: grand_slam, masters, atp500, atp250, challenger, itf"
	default:
		reason = fmt.Sprintf("failed validation: %s", fe.Tag())
	}

	return NewInputError(field, fe.Value(), reason)
}
