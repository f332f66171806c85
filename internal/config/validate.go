package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/verte-zerg/drill/internal/model"
)

var validate = validator.New()

var fieldMessages = map[string]string{
	"DeckPath": "a deck file is required",
	"Delim":    "--delim must be exactly one character",
	"Mode":     "--mode must be one of: cards, verbs2cards",
	"LogLevel": "--log-level must be one of: debug, info, warn, error",
}

// Validate checks a merged quiz configuration.
func Validate(cfg model.Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate config: %w", err)
	}
	first := verrs[0]
	if msg, ok := fieldMessages[first.Field()]; ok {
		return errors.New(msg)
	}
	return fmt.Errorf("invalid %s: failed %q", first.Field(), first.Tag())
}
