// Package cli holds the admin maintenance commands that run against the
// database directly, without going through the HTTP API.
package cli

import (
	"errors"
	"fmt"
	"net/mail"
	"os"
	"strings"

	"github.com/crumbworks/pantryplan/internal/db"
	"github.com/crumbworks/pantryplan/internal/models"
	"github.com/crumbworks/pantryplan/internal/security"
	"github.com/crumbworks/pantryplan/internal/services"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RunResetPasswordCommand issues a temporary password for the given account
// and forces a change on next login.
func RunResetPasswordCommand(dbPath string, email string) error {
	database, user, err := loadUserByEmail(dbPath, email)
	if err != nil {
		return err
	}

	temporaryPassword, err := generateTemporaryPassword(12)
	if err != nil {
		return fmt.Errorf("generate temporary password: %w", err)
	}

	if err := storePassword(database, user, temporaryPassword, true); err != nil {
		return err
	}

	fmt.Println("Password reset successful.")
	fmt.Printf("Temporary password: %s\n", temporaryPassword)
	fmt.Println("User must change password on next login.")
	return nil
}

// RunSetPasswordCommand prompts for a new password twice with echo disabled
// and stores it directly. Meant for operators recovering an account at the
// terminal.
func RunSetPasswordCommand(dbPath string, email string) error {
	database, user, err := loadUserByEmail(dbPath, email)
	if err != nil {
		return err
	}

	fmt.Printf("New password for %s: ", user.Email)
	password, err := readPasswordNoEcho(os.Stdin)
	fmt.Println()
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}

	fmt.Print("Repeat password: ")
	confirmation, err := readPasswordNoEcho(os.Stdin)
	fmt.Println()
	if err != nil {
		return fmt.Errorf("read password confirmation: %w", err)
	}

	if string(password) != string(confirmation) {
		return errors.New("passwords do not match")
	}
	if err := services.ValidatePasswordStrength(string(password)); err != nil {
		return fmt.Errorf("rejected password: %w", err)
	}

	if err := storePassword(database, user, string(password), false); err != nil {
		return err
	}

	fmt.Println("Password updated.")
	return nil
}

func loadUserByEmail(dbPath string, email string) (*gorm.DB, *models.User, error) {
	normalizedEmail := strings.ToLower(strings.TrimSpace(email))
	if normalizedEmail == "" {
		return nil, nil, errors.New("email is required")
	}
	if _, err := mail.ParseAddress(normalizedEmail); err != nil {
		return nil, nil, fmt.Errorf("invalid email address: %w", err)
	}

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("database init failed: %w", err)
	}

	var user models.User
	if err := database.Where("lower(trim(email)) = ?", normalizedEmail).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("user %s not found", normalizedEmail)
		}
		return nil, nil, fmt.Errorf("load user: %w", err)
	}
	return database, &user, nil
}

func storePassword(database *gorm.DB, user *models.User, password string, mustChange bool) error {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	users := db.NewUserRepository(database)
	if err := users.UpdatePassword(user.ID, string(passwordHash), mustChange); err != nil {
		return fmt.Errorf("update user password: %w", err)
	}
	return nil
}

func generateTemporaryPassword(length int) (string, error) {
	if length < 8 {
		length = 8
	}

	const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"
	return security.RandomString(length, alphabet)
}
