package services

import (
	"errors"
	"math"
	"net/mail"
	"regexp"
	"strings"

	"github.com/crumbworks/pantryplan/internal/models"
)

var (
	ErrInvalidUsername     = errors.New("invalid username")
	ErrInvalidEmail        = errors.New("invalid email")
	ErrWeakPassword        = errors.New("weak password")
	ErrInvalidFitnessGoal  = errors.New("invalid fitness goal")
	ErrInvalidGender       = errors.New("invalid gender")
	ErrInvalidFitnessLevel = errors.New("invalid fitness level")
	ErrInvalidWeight       = errors.New("invalid weight")
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]{3,40}$`)

const minPasswordLength = 8

func NormalizeAuthEmail(raw string) string {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return ""
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return ""
	}
	return email
}

func ValidateUsername(raw string) (string, error) {
	username := strings.TrimSpace(raw)
	if !usernamePattern.MatchString(username) {
		return "", ErrInvalidUsername
	}
	return username, nil
}

func ValidatePasswordStrength(password string) error {
	if len(password) < minPasswordLength {
		return ErrWeakPassword
	}
	var hasLetter, hasDigit bool
	for _, char := range password {
		switch {
		case char >= '0' && char <= '9':
			hasDigit = true
		case (char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z'):
			hasLetter = true
		}
	}
	if !hasLetter || !hasDigit {
		return ErrWeakPassword
	}
	return nil
}

// ValidateEnumFields checks the three profile enums against their fixed
// value sets. Values arrive uppercase from well-behaved clients; anything
// else is a 400, not a normalization.
func ValidateEnumFields(fitnessGoal string, gender string, fitnessLevel string) error {
	if !containsString(models.ValidFitnessGoals(), fitnessGoal) {
		return ErrInvalidFitnessGoal
	}
	if !containsString(models.ValidGenders(), gender) {
		return ErrInvalidGender
	}
	if !containsString(models.ValidFitnessLevels(), fitnessLevel) {
		return ErrInvalidFitnessLevel
	}
	return nil
}

func ValidateWeight(weight float64) error {
	if weight < 0 || weight > 500 || math.IsNaN(weight) || math.IsInf(weight, 0) {
		return ErrInvalidWeight
	}
	return nil
}

// NormalizeCuisines trims entries, drops empties and case-insensitive
// duplicates, and preserves order.
func NormalizeCuisines(raw []string) []string {
	cuisines := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, entry := range raw {
		cuisine := strings.TrimSpace(entry)
		if cuisine == "" {
			continue
		}
		key := strings.ToLower(cuisine)
		if _, duplicate := seen[key]; duplicate {
			continue
		}
		seen[key] = struct{}{}
		cuisines = append(cuisines, cuisine)
	}
	return cuisines
}

func containsString(values []string, candidate string) bool {
	for _, value := range values {
		if value == candidate {
			return true
		}
	}
	return false
}
