package api

import (
	"github.com/crumbworks/pantryplan/internal/models"
	"github.com/crumbworks/pantryplan/internal/planner"
	"github.com/crumbworks/pantryplan/internal/services"
	"github.com/gofiber/fiber/v2"
)

type generatePlanInput struct {
	DurationDays int    `json:"durationDays"`
	MealsPerDay  int    `json:"mealsPerDay"`
	Name         string `json:"name"`
}

type acceptPlanInput struct {
	Name string       `json:"name"`
	Plan planner.Tree `json:"plan"`
}

type planPatchInput struct {
	Name   *string `json:"name"`
	Status *string `json:"status"`
}

type planListEntry struct {
	Plan    models.MealPlan `json:"plan"`
	Summary planner.Summary `json:"summary"`
}

func (handler *Handler) GeneratePlan(c *fiber.Ctx) error {
	user, _ := currentUser(c)

	input := generatePlanInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	pantry, err := handler.pantryService.ListPantry(user.ID)
	if err != nil {
		return serviceError(c, err)
	}
	pantryNames := make([]string, 0, len(pantry))
	for _, row := range pantry {
		pantryNames = append(pantryNames, row.Name)
	}

	tree, fieldErrors, err := handler.planService.GeneratePreview(c.Context(), user.ID, services.PlanRequestInput{
		DurationDays: input.DurationDays,
		MealsPerDay:  input.MealsPerDay,
		Name:         input.Name,
	}, pantryNames)
	if err != nil {
		return serviceError(c, err)
	}
	if fieldErrors.Any() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "validation failed",
			"fields": fieldErrors,
		})
	}

	return c.JSON(fiber.Map{"plan": tree})
}

func (handler *Handler) AcceptPlan(c *fiber.Ctx) error {
	user, _ := currentUser(c)

	input := acceptPlanInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	result, err := handler.planService.AcceptPlan(user.ID, input.Name, input.Plan)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

func (handler *Handler) ListPlans(c *fiber.Ctx) error {
	user, _ := currentUser(c)

	plans, err := handler.planService.ListPlans(user.ID, c.Query("status"))
	if err != nil {
		return serviceError(c, err)
	}

	entries := make([]planListEntry, 0, len(plans))
	for _, plan := range plans {
		entry := planListEntry{Plan: plan}
		if tree, decodeErr := planner.Decode(plan.PlanJSON); decodeErr == nil {
			entry.Summary = planner.Summarize(tree)
		}
		entries = append(entries, entry)
	}
	return c.JSON(entries)
}

func (handler *Handler) UpdatePlan(c *fiber.Ctx) error {
	user, _ := currentUser(c)

	planID, err := parseUintParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid plan id")
	}

	input := planPatchInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if input.Name == nil && input.Status == nil {
		return apiError(c, fiber.StatusBadRequest, "nothing to update")
	}

	updated, err := handler.planService.UpdatePlan(user.ID, planID, input.Name, input.Status)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(updated)
}

func (handler *Handler) DeletePlan(c *fiber.Ctx) error {
	user, _ := currentUser(c)

	planID, err := parseUintParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid plan id")
	}
	if err := handler.planService.DeletePlan(user.ID, planID); err != nil {
		return serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
