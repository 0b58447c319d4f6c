package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/crumbworks/pantryplan/internal/models"
	"gorm.io/gorm"
)

func openUniqueIndexTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), name)
	database, err := OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return database
}

func newUniqueIndexTestUser(username string, email string) models.User {
	return models.User{
		Username:     username,
		Email:        email,
		PasswordHash: "test-hash",
		FitnessGoal:  models.GoalMaintaining,
		Gender:       models.GenderFemale,
		FitnessLevel: models.LevelModerate,
		CreatedAt:    time.Now().UTC(),
	}
}

func TestOpenSQLiteCreatesCaseInsensitiveUserEmailUniqueIndex(t *testing.T) {
	database := openUniqueIndexTestDB(t, "pantryplan-email-index.db")

	first := newUniqueIndexTestUser("cook-one", "QA-Test@PantryPlan.Local")
	if err := database.Create(&first).Error; err != nil {
		t.Fatalf("create first user: %v", err)
	}

	second := newUniqueIndexTestUser("cook-two", "qa-test@pantryplan.local")
	if err := database.Create(&second).Error; err == nil {
		t.Fatal("expected duplicate normalized email insert to fail")
	}
}

func TestOpenSQLiteCreatesCaseInsensitiveUsernameUniqueIndex(t *testing.T) {
	database := openUniqueIndexTestDB(t, "pantryplan-username-index.db")

	first := newUniqueIndexTestUser("HomeChef", "chef-one@example.com")
	if err := database.Create(&first).Error; err != nil {
		t.Fatalf("create first user: %v", err)
	}

	second := newUniqueIndexTestUser("homechef", "chef-two@example.com")
	if err := database.Create(&second).Error; err == nil {
		t.Fatal("expected duplicate normalized username insert to fail")
	}
}

func TestFavoriteUserPlanPairIsUnique(t *testing.T) {
	database := openUniqueIndexTestDB(t, "pantryplan-favorite-index.db")

	user := newUniqueIndexTestUser("favoriter", "favoriter@example.com")
	if err := database.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	plan := models.MealPlan{UserID: user.ID, Name: "Week 1", Status: models.PlanStatusActive}
	if err := database.Create(&plan).Error; err != nil {
		t.Fatalf("create plan: %v", err)
	}

	if err := database.Create(&models.Favorite{UserID: user.ID, PlanID: plan.ID}).Error; err != nil {
		t.Fatalf("create favorite: %v", err)
	}
	if err := database.Create(&models.Favorite{UserID: user.ID, PlanID: plan.ID}).Error; err == nil {
		t.Fatal("expected duplicate (user, plan) favorite insert to fail")
	}
}
