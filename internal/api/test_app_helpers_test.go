package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/crumbworks/pantryplan/internal/db"
	"github.com/crumbworks/pantryplan/internal/generator"
	"github.com/crumbworks/pantryplan/internal/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "pantryplan-test.db")
	database, err := db.OpenSQLite(databasePath)
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

	handler := NewHandler(database, generator.NewLocal(), "test-secret-key", time.Hour, false, nil)

	app := fiber.New()
	RegisterRoutes(app, handler)
	return app, database
}

func jsonRequest(t *testing.T, method string, path string, payload any, token string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			t.Fatalf("encode request payload: %v", err)
		}
	}
	request := httptest.NewRequest(method, path, &body)
	request.Header.Set("Content-Type", "application/json")
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	return request
}

func decodeResponse(t *testing.T, response *http.Response, target any) {
	t.Helper()

	defer response.Body.Close()
	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
}

func readAPIError(t *testing.T, response *http.Response) string {
	t.Helper()

	payload := struct {
		Error string `json:"error"`
	}{}
	decodeResponse(t, response, &payload)
	return payload.Error
}

func registerPayload(email string) map[string]any {
	return map[string]any{
		"username":         "user-" + email[:4],
		"email":            email,
		"password":         "StrongPass1",
		"weight":           70.0,
		"fitnessGoal":      models.GoalMaintaining,
		"gender":           models.GenderFemale,
		"fitnessLevel":     models.LevelModerate,
		"favoriteCuisines": []string{"italian"},
	}
}

// signupAndLogin registers a fresh user and returns its id plus a bearer
// token for authenticated requests.
func signupAndLogin(t *testing.T, app *fiber.App, email string) (uint, string) {
	t.Helper()

	payload := registerPayload(email)
	payload["username"] = fmt.Sprintf("user-%d-%s", time.Now().UnixNano(), email[:3])
	response, err := app.Test(jsonRequest(t, http.MethodPost, "/api/user", payload, ""), -1)
	if err != nil {
		t.Fatalf("register request failed: %v", err)
	}
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("register returned status %d", response.StatusCode)
	}
	registered := models.User{}
	decodeResponse(t, response, &registered)

	response, err = app.Test(jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    email,
		"password": "StrongPass1",
	}, ""), -1)
	if err != nil {
		t.Fatalf("login request failed: %v", err)
	}
	if response.StatusCode != http.StatusOK {
		t.Fatalf("login returned status %d", response.StatusCode)
	}
	session := struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}{}
	decodeResponse(t, response, &session)
	if session.Token == "" {
		t.Fatal("login response is missing the token")
	}
	return registered.ID, session.Token
}

func addPantryRow(t *testing.T, app *fiber.App, userID uint, token string, name string, quantity float64, unit string) models.Ingredient {
	t.Helper()

	path := fmt.Sprintf("/api/user/%d/ingredients", userID)
	response, err := app.Test(jsonRequest(t, http.MethodPost, path, map[string]any{
		"name":     name,
		"quantity": quantity,
		"unit":     unit,
	}, token), -1)
	if err != nil {
		t.Fatalf("create ingredient request failed: %v", err)
	}
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("create ingredient returned status %d", response.StatusCode)
	}
	saved := models.Ingredient{}
	decodeResponse(t, response, &saved)
	return saved
}
