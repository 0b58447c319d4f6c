package services

import (
	"errors"
	"testing"

	"github.com/crumbworks/pantryplan/internal/models"
	"golang.org/x/crypto/bcrypt"
)

type stubUserRepo struct {
	users   map[uint]models.User
	byEmail map[string]models.User
	nextID  uint
	updates map[string]any
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		users:   make(map[uint]models.User),
		byEmail: make(map[string]models.User),
		nextID:  1,
	}
}

func (stub *stubUserRepo) FindByID(userID uint) (models.User, error) {
	user, ok := stub.users[userID]
	if !ok {
		return models.User{}, errors.New("record not found")
	}
	return user, nil
}

func (stub *stubUserRepo) FindByNormalizedEmail(email string) (models.User, error) {
	user, ok := stub.byEmail[email]
	if !ok {
		return models.User{}, errors.New("record not found")
	}
	return user, nil
}

func (stub *stubUserRepo) ExistsByNormalizedEmail(email string) (bool, error) {
	_, ok := stub.byEmail[email]
	return ok, nil
}

func (stub *stubUserRepo) ExistsByUsername(username string) (bool, error) {
	for _, user := range stub.users {
		if user.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (stub *stubUserRepo) Create(user *models.User) error {
	user.ID = stub.nextID
	stub.nextID++
	stub.users[user.ID] = *user
	stub.byEmail[user.Email] = *user
	return nil
}

func (stub *stubUserRepo) UpdateByID(userID uint, updates map[string]any) error {
	stub.updates = updates
	user := stub.users[userID]
	if weight, ok := updates["weight"].(float64); ok {
		user.Weight = weight
	}
	if goal, ok := updates["fitness_goal"].(string); ok {
		user.FitnessGoal = goal
	}
	if gender, ok := updates["gender"].(string); ok {
		user.Gender = gender
	}
	if level, ok := updates["fitness_level"].(string); ok {
		user.FitnessLevel = level
	}
	stub.users[userID] = user
	return nil
}

func (stub *stubUserRepo) UpdatePassword(userID uint, passwordHash string, mustChangePassword bool) error {
	user := stub.users[userID]
	user.PasswordHash = passwordHash
	user.MustChangePassword = mustChangePassword
	stub.users[userID] = user
	return nil
}

func (stub *stubUserRepo) DeleteAccountAndRelatedData(userID uint) error {
	user, ok := stub.users[userID]
	if !ok {
		return errors.New("record not found")
	}
	delete(stub.byEmail, user.Email)
	delete(stub.users, userID)
	return nil
}

// racingUserRepo lets a conflicting row slip in between the pre-checks and
// the insert, the way a concurrent registration would.
type racingUserRepo struct {
	*stubUserRepo
	conflicting models.User
}

func (repo *racingUserRepo) Create(user *models.User) error {
	_ = repo.stubUserRepo.Create(&repo.conflicting)
	return errors.New("UNIQUE constraint failed")
}

func validRegistration() RegistrationInput {
	return RegistrationInput{
		Username:         "mika",
		Email:            "Mika@Example.com",
		Password:         "s3cretpass",
		Weight:           72,
		FitnessGoal:      models.GoalCutting,
		Gender:           models.GenderFemale,
		FitnessLevel:     models.LevelLight,
		FavoriteCuisines: []string{" Thai ", "thai", "Italian"},
	}
}

func TestRegisterHashesPasswordAndNormalizes(t *testing.T) {
	t.Parallel()

	repo := newStubUserRepo()
	service := NewAuthService(repo)

	user, err := service.Register(validRegistration())
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Email != "mika@example.com" {
		t.Fatalf("email = %q, want lowercased", user.Email)
	}
	if user.PasswordHash == "s3cretpass" || user.PasswordHash == "" {
		t.Fatal("password must be stored as a bcrypt hash")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cretpass")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
	if len(user.FavoriteCuisines) != 2 {
		t.Fatalf("cuisines = %v, want trimmed and deduplicated", user.FavoriteCuisines)
	}
}

func TestRegisterRejectsInvalidEnumValues(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		mutate  func(*RegistrationInput)
		wantErr error
	}{
		{"unknown goal", func(in *RegistrationInput) { in.FitnessGoal = "SHREDDING" }, ErrInvalidFitnessGoal},
		{"lowercase goal", func(in *RegistrationInput) { in.FitnessGoal = "bulking" }, ErrInvalidFitnessGoal},
		{"unknown gender", func(in *RegistrationInput) { in.Gender = "OTHER" }, ErrInvalidGender},
		{"unknown level", func(in *RegistrationInput) { in.FitnessLevel = "EXTREME" }, ErrInvalidFitnessLevel},
	}
	for _, testCase := range cases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			input := validRegistration()
			testCase.mutate(&input)
			if _, err := NewAuthService(newStubUserRepo()).Register(input); !errors.Is(err, testCase.wantErr) {
				t.Fatalf("got %v, want %v", err, testCase.wantErr)
			}
		})
	}
}

func TestRegisterRejectsDuplicateIdentity(t *testing.T) {
	t.Parallel()

	repo := newStubUserRepo()
	service := NewAuthService(repo)
	if _, err := service.Register(validRegistration()); err != nil {
		t.Fatalf("seed registration failed: %v", err)
	}

	input := validRegistration()
	input.Username = "mika2"
	if _, err := service.Register(input); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("duplicate email: got %v", err)
	}

	input = validRegistration()
	input.Email = "other@example.com"
	if _, err := service.Register(input); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("duplicate username: got %v", err)
	}
}

func TestRegisterRejectsWeakPasswords(t *testing.T) {
	t.Parallel()

	service := NewAuthService(newStubUserRepo())

	for _, password := range []string{"short1", "onlyletters", "12345678"} {
		input := validRegistration()
		input.Password = password
		if _, err := service.Register(input); !errors.Is(err, ErrWeakPassword) {
			t.Fatalf("password %q: got %v, want ErrWeakPassword", password, err)
		}
	}
}

func TestAuthenticateMatchesNormalizedEmail(t *testing.T) {
	t.Parallel()

	repo := newStubUserRepo()
	service := NewAuthService(repo)
	if _, err := service.Register(validRegistration()); err != nil {
		t.Fatalf("seed registration failed: %v", err)
	}

	user, err := service.Authenticate("  MIKA@example.COM ", "s3cretpass")
	if err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}
	if user.Username != "mika" {
		t.Fatalf("username = %q, want mika", user.Username)
	}

	if _, err := service.Authenticate("mika@example.com", "wrongpass1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: got %v", err)
	}
	if _, err := service.Authenticate("nobody@example.com", "s3cretpass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email: got %v", err)
	}
}

func TestUpdateProfileValidatesMergedEnums(t *testing.T) {
	t.Parallel()

	repo := newStubUserRepo()
	service := NewAuthService(repo)
	seeded, err := service.Register(validRegistration())
	if err != nil {
		t.Fatalf("seed registration failed: %v", err)
	}

	badGoal := "SHREDDING"
	if _, err := service.UpdateProfile(seeded.ID, ProfileUpdateInput{FitnessGoal: &badGoal}); !errors.Is(err, ErrInvalidFitnessGoal) {
		t.Fatalf("expected ErrInvalidFitnessGoal, got %v", err)
	}

	goal := models.GoalBulking
	weight := 75.5
	updated, err := service.UpdateProfile(seeded.ID, ProfileUpdateInput{FitnessGoal: &goal, Weight: &weight})
	if err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}
	if updated.FitnessGoal != models.GoalBulking || updated.Weight != 75.5 {
		t.Fatalf("updated = %#v, want merged goal and weight", updated)
	}
	if updated.Gender != models.GenderFemale {
		t.Fatalf("gender = %q, untouched fields must survive", updated.Gender)
	}
}

func TestRegisterReportsWhichConstraintLostTheRace(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name        string
		conflicting models.User
		want        error
	}{
		{"username race", models.User{Username: "mika", Email: "other@example.com"}, ErrUsernameTaken},
		{"email race", models.User{Username: "someone", Email: "mika@example.com"}, ErrEmailTaken},
	}

	for _, testCase := range cases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			repo := &racingUserRepo{stubUserRepo: newStubUserRepo(), conflicting: testCase.conflicting}
			service := NewAuthService(repo)

			_, err := service.Register(validRegistration())
			if !errors.Is(err, testCase.want) {
				t.Fatalf("Register() error = %v, want %v", err, testCase.want)
			}
		})
	}
}

func TestDeleteAccountRemovesTheUser(t *testing.T) {
	t.Parallel()

	repo := newStubUserRepo()
	service := NewAuthService(repo)

	user, err := service.Register(validRegistration())
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if err := service.DeleteAccount(user.ID); err != nil {
		t.Fatalf("DeleteAccount() error = %v", err)
	}
	if _, err := service.FindUser(user.ID); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("FindUser() after delete error = %v, want %v", err, ErrUserNotFound)
	}
	if _, err := service.Authenticate("mika@example.com", "s3cretpass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("Authenticate() after delete error = %v, want %v", err, ErrInvalidCredentials)
	}
}

func TestDeleteAccountRejectsUnknownUsers(t *testing.T) {
	t.Parallel()

	service := NewAuthService(newStubUserRepo())

	if err := service.DeleteAccount(42); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("DeleteAccount() error = %v, want %v", err, ErrUserNotFound)
	}
}
