package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/crumbworks/pantryplan/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("email already exists")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

type UserRepository interface {
	FindByID(userID uint) (models.User, error)
	FindByNormalizedEmail(email string) (models.User, error)
	ExistsByNormalizedEmail(email string) (bool, error)
	ExistsByUsername(username string) (bool, error)
	Create(user *models.User) error
	UpdateByID(userID uint, updates map[string]any) error
	UpdatePassword(userID uint, passwordHash string, mustChangePassword bool) error
	DeleteAccountAndRelatedData(userID uint) error
}

type AuthService struct {
	users UserRepository
}

func NewAuthService(users UserRepository) *AuthService {
	return &AuthService{users: users}
}

// RegistrationInput is the validated /api/user payload.
type RegistrationInput struct {
	Username         string
	Email            string
	Password         string
	Weight           float64
	FitnessGoal      string
	Gender           string
	FitnessLevel     string
	FavoriteCuisines []string
}

func (service *AuthService) Register(input RegistrationInput) (models.User, error) {
	username, err := ValidateUsername(input.Username)
	if err != nil {
		return models.User{}, err
	}
	email := NormalizeAuthEmail(input.Email)
	if email == "" {
		return models.User{}, ErrInvalidEmail
	}
	if err := ValidatePasswordStrength(input.Password); err != nil {
		return models.User{}, err
	}
	if err := ValidateEnumFields(input.FitnessGoal, input.Gender, input.FitnessLevel); err != nil {
		return models.User{}, err
	}
	if err := ValidateWeight(input.Weight); err != nil {
		return models.User{}, err
	}

	emailTaken, err := service.users.ExistsByNormalizedEmail(email)
	if err != nil {
		return models.User{}, fmt.Errorf("check email: %w", err)
	}
	if emailTaken {
		return models.User{}, ErrEmailTaken
	}
	usernameTaken, err := service.users.ExistsByUsername(username)
	if err != nil {
		return models.User{}, fmt.Errorf("check username: %w", err)
	}
	if usernameTaken {
		return models.User{}, ErrUsernameTaken
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Username:         username,
		Email:            email,
		PasswordHash:     string(passwordHash),
		Weight:           input.Weight,
		FitnessGoal:      input.FitnessGoal,
		Gender:           input.Gender,
		FitnessLevel:     input.FitnessLevel,
		FavoriteCuisines: NormalizeCuisines(input.FavoriteCuisines),
	}
	if err := service.users.Create(&user); err != nil {
		// The normalized unique indexes are the last line of defense
		// against concurrent registration of the same identity; a lost
		// race can be on either index, so re-check which one fired.
		if taken, lookupErr := service.users.ExistsByUsername(username); lookupErr == nil && taken {
			return models.User{}, ErrUsernameTaken
		}
		return models.User{}, ErrEmailTaken
	}
	return user, nil
}

func (service *AuthService) Authenticate(email string, password string) (models.User, error) {
	normalized := NormalizeAuthEmail(email)
	if normalized == "" || password == "" {
		return models.User{}, ErrInvalidCredentials
	}

	user, err := service.users.FindByNormalizedEmail(normalized)
	if err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// DeleteAccount removes the user together with its pantry, plans and
// favorites in one transaction.
func (service *AuthService) DeleteAccount(userID uint) error {
	if _, err := service.users.FindByID(userID); err != nil {
		return fmt.Errorf("%w: %v", ErrUserNotFound, err)
	}
	if err := service.users.DeleteAccountAndRelatedData(userID); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	return nil
}

func (service *AuthService) FindUser(userID uint) (models.User, error) {
	user, err := service.users.FindByID(userID)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrUserNotFound, err)
	}
	return user, nil
}

// ProfileUpdateInput patches profile fields; nil pointers leave the field
// unchanged. Enum and weight values are validated with the same policy as
// registration.
type ProfileUpdateInput struct {
	Weight           *float64
	FitnessGoal      *string
	Gender           *string
	FitnessLevel     *string
	FavoriteCuisines *[]string
}

func (service *AuthService) UpdateProfile(userID uint, input ProfileUpdateInput) (models.User, error) {
	user, err := service.FindUser(userID)
	if err != nil {
		return models.User{}, err
	}

	goal := user.FitnessGoal
	gender := user.Gender
	level := user.FitnessLevel
	if input.FitnessGoal != nil {
		goal = *input.FitnessGoal
	}
	if input.Gender != nil {
		gender = *input.Gender
	}
	if input.FitnessLevel != nil {
		level = *input.FitnessLevel
	}
	if err := ValidateEnumFields(goal, gender, level); err != nil {
		return models.User{}, err
	}

	updates := make(map[string]any)
	if input.Weight != nil {
		if err := ValidateWeight(*input.Weight); err != nil {
			return models.User{}, err
		}
		updates["weight"] = *input.Weight
	}
	if input.FitnessGoal != nil {
		updates["fitness_goal"] = goal
	}
	if input.Gender != nil {
		updates["gender"] = gender
	}
	if input.FitnessLevel != nil {
		updates["fitness_level"] = level
	}
	if input.FavoriteCuisines != nil {
		user.FavoriteCuisines = NormalizeCuisines(*input.FavoriteCuisines)
		encoded, err := encodeCuisines(user.FavoriteCuisines)
		if err != nil {
			return models.User{}, err
		}
		updates["favorite_cuisines"] = encoded
	}

	if len(updates) > 0 {
		if err := service.users.UpdateByID(userID, updates); err != nil {
			return models.User{}, fmt.Errorf("update profile: %w", err)
		}
	}
	return service.FindUser(userID)
}

// encodeCuisines serializes for a column-level update, which bypasses the
// model's JSON serializer.
func encodeCuisines(cuisines []string) (string, error) {
	raw, err := json.Marshal(cuisines)
	if err != nil {
		return "", fmt.Errorf("encode cuisines: %w", err)
	}
	return string(raw), nil
}
