package service

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"jandervidros/internal/apperror"
	"jandervidros/internal/model"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// requireText trims s and fails when nothing is left.
func requireText(field, s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", apperror.Invalid(field, "is required")
	}
	return s, nil
}

func requireDate(field, s string) (string, error) {
	s, err := requireText(field, s)
	if err != nil {
		return "", err
	}
	if _, err := time.Parse(dateLayout, s); err != nil {
		return "", apperror.Invalid(field, "must be a date in YYYY-MM-DD format")
	}
	return s, nil
}

func requireClock(field, s string) (string, error) {
	s, err := requireText(field, s)
	if err != nil {
		return "", err
	}
	if _, err := time.Parse(timeLayout, s); err != nil || len(s) != len(timeLayout) {
		return "", apperror.Invalid(field, "must be a time in HH:MM format")
	}
	return s, nil
}

func nonNegativeInt(field string, v int) error {
	if v < 0 {
		return apperror.Invalid(field, "must not be negative")
	}
	return nil
}

// money rounds an optional price to cents, defaulting to zero.
func money(field string, v *decimal.Decimal) (decimal.Decimal, error) {
	if v == nil {
		return decimal.Zero, nil
	}
	if v.IsNegative() {
		return decimal.Zero, apperror.Invalid(field, "must not be negative")
	}
	rounded := v.Round(model.MoneyPlaces)
	if err := atMost(field, rounded, model.MaxPrice); err != nil {
		return decimal.Zero, err
	}
	return rounded, nil
}

func atMost(field string, v, limit decimal.Decimal) error {
	if v.GreaterThan(limit) {
		return apperror.Invalid(field, "must be at most "+limit.String())
	}
	return nil
}

func optionalText(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
