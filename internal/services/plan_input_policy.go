package services

import (
	"errors"
	"strings"
)

const (
	MinPlanDurationDays = 1
	MaxPlanDurationDays = 30
	MinMealsPerDay      = 1
	MaxMealsPerDay      = 6
	maxPlanNameLength   = 120
)

var (
	ErrInvalidPlanDuration = errors.New("durationDays must be between 1 and 30")
	ErrInvalidMealsPerDay  = errors.New("mealsPerDay must be between 1 and 6")
	ErrInvalidPlanName     = errors.New("name must not be empty")
)

// PlanRequestInput is the validated form behind generate and accept.
type PlanRequestInput struct {
	DurationDays int
	MealsPerDay  int
	Name         string
}

// FieldErrors maps a field name to its validation message, so callers can
// surface per-field messages and block the call on any failure.
type FieldErrors map[string]string

func (fieldErrors FieldErrors) Any() bool {
	return len(fieldErrors) > 0
}

// ValidatePlanRequest checks every field and reports all failures at once.
// The name is trimmed in place on success.
func ValidatePlanRequest(input *PlanRequestInput) FieldErrors {
	fieldErrors := make(FieldErrors)

	if input.DurationDays < MinPlanDurationDays || input.DurationDays > MaxPlanDurationDays {
		fieldErrors["durationDays"] = ErrInvalidPlanDuration.Error()
	}
	if input.MealsPerDay < MinMealsPerDay || input.MealsPerDay > MaxMealsPerDay {
		fieldErrors["mealsPerDay"] = ErrInvalidMealsPerDay.Error()
	}

	trimmedName := strings.TrimSpace(input.Name)
	if trimmedName == "" || len(trimmedName) > maxPlanNameLength {
		fieldErrors["name"] = ErrInvalidPlanName.Error()
	} else {
		input.Name = trimmedName
	}

	return fieldErrors
}

// ValidatePlanName is the accept-time subset: accept receives a name and a
// tree but no duration/meals form fields.
func ValidatePlanName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || len(trimmed) > maxPlanNameLength {
		return "", ErrInvalidPlanName
	}
	return trimmed, nil
}
