package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	api.Post("/user", handler.Register)

	auth := api.Group("/auth")
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)

	// Routes scoped to the path user id; the id must match the token user.
	user := api.Group("/user/:id", handler.AuthRequired, handler.UserScoped)
	user.Delete("/", handler.DeleteAccount)
	user.Get("/profile", handler.GetProfile)
	user.Patch("/profile", handler.UpdateProfile)
	user.Get("/ingredients", handler.ListIngredients)
	user.Post("/ingredients", handler.CreateIngredient)
	user.Post("/ingredients/bulk", handler.BulkAddIngredients)
	user.Get("/ingredients/low-stock", handler.LowStockIngredients)
	user.Delete("/ingredients/:ingredientId", handler.DeleteIngredient)
	user.Get("/meal-plans", handler.ListPlans)
	user.Get("/favorites", handler.ListFavorites)

	// Ownership of non-scoped resources is checked against the token user.
	ingredients := api.Group("/ingredients", handler.AuthRequired)
	ingredients.Patch("/:id", handler.UpdateIngredient)

	plans := api.Group("/meal-plans", handler.AuthRequired)
	plans.Post("/generate", handler.GeneratePlan)
	plans.Post("/accept", handler.AcceptPlan)
	plans.Patch("/:id", handler.UpdatePlan)
	plans.Delete("/:id", handler.DeletePlan)
	plans.Post("/:id/favorite", handler.FavoritePlan)
	plans.Delete("/:id/favorite", handler.UnfavoritePlan)

	receipts := api.Group("/receipts", handler.AuthRequired)
	receipts.Post("/parse", handler.ParseReceipt)
}
