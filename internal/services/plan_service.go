package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/crumbworks/pantryplan/internal/models"
	"github.com/crumbworks/pantryplan/internal/planner"
	"go.uber.org/zap"
)

var (
	ErrPlanNotFound         = errors.New("meal plan not found")
	ErrEmptyPlanTree        = errors.New("plan has no meals")
	ErrInvalidPlanStatus    = errors.New("invalid plan status")
	ErrPlanStatusTransition = errors.New("a done plan cannot be reactivated")
	ErrGenerationFailed     = errors.New("plan generation failed")
)

type PlanGenerator interface {
	Generate(ctx context.Context, request planner.GenerationRequest) (planner.Tree, error)
}

type MealPlanRepository interface {
	ListByUserAndStatus(userID uint, status string) ([]models.MealPlan, error)
	FindByIDForUser(planID uint, userID uint) (models.MealPlan, error)
	UpdateByID(planID uint, updates map[string]any) error
	Delete(plan *models.MealPlan) error
	CreateWithReconciliation(plan *models.MealPlan, compute func(pantry []models.Ingredient) []models.PantryAdjustment) error
}

type PlanUserRepository interface {
	FindByID(userID uint) (models.User, error)
}

type PlanService struct {
	generator PlanGenerator
	plans     MealPlanRepository
	users     PlanUserRepository
	logger    *zap.Logger
}

func NewPlanService(generator PlanGenerator, plans MealPlanRepository, users PlanUserRepository, logger *zap.Logger) *PlanService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlanService{
		generator: generator,
		plans:     plans,
		users:     users,
		logger:    logger,
	}
}

// GeneratePreview validates the form and asks the generator for a plan tree.
// The returned tree is a stateless preview: nothing is persisted and the
// tree has no identity until accepted.
func (service *PlanService) GeneratePreview(ctx context.Context, userID uint, input PlanRequestInput, pantryNames []string) (planner.Tree, FieldErrors, error) {
	if fieldErrors := ValidatePlanRequest(&input); fieldErrors.Any() {
		return planner.Tree{}, fieldErrors, nil
	}

	user, err := service.users.FindByID(userID)
	if err != nil {
		return planner.Tree{}, nil, fmt.Errorf("load user: %w", err)
	}

	request := planner.GenerationRequest{
		DurationDays:         input.DurationDays,
		MealsPerDay:          input.MealsPerDay,
		TargetCaloriesPerDay: DailyCalorieTarget(user),
		CuisineStyle:         firstCuisine(user.FavoriteCuisines),
		PantryNames:          pantryNames,
	}

	tree, err := service.generator.Generate(ctx, request)
	if err != nil {
		service.logger.Warn("plan generation failed",
			zap.Uint("user_id", userID),
			zap.Int("duration_days", input.DurationDays),
			zap.Error(err))
		return planner.Tree{}, nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	return tree, nil, nil
}

// AcceptResult carries the persisted plan plus everything the client needs
// to show about the pantry reconciliation.
type AcceptResult struct {
	SavedPlan models.MealPlan `json:"savedPlan"`
	Unmatched []planner.Use   `json:"unmatched"`
	Warnings  []string        `json:"warnings"`
}

// AcceptPlan persists the previewed tree as an ACTIVE plan and decrements
// pantry quantities in the same transaction. See ComputeReconciliation for
// the matching and clamping policy.
func (service *PlanService) AcceptPlan(userID uint, name string, tree planner.Tree) (AcceptResult, error) {
	trimmedName, err := ValidatePlanName(name)
	if err != nil {
		return AcceptResult{}, err
	}
	if tree.IsEmpty() {
		return AcceptResult{}, ErrEmptyPlanTree
	}

	encoded, err := tree.Encode()
	if err != nil {
		return AcceptResult{}, fmt.Errorf("encode plan tree: %w", err)
	}

	plan := models.MealPlan{
		UserID:   userID,
		Name:     trimmedName,
		Status:   models.PlanStatusActive,
		PlanJSON: encoded,
	}

	var reconciliation ReconcileResult
	uses := tree.Uses()
	err = service.plans.CreateWithReconciliation(&plan, func(pantry []models.Ingredient) []models.PantryAdjustment {
		reconciliation = ComputeReconciliation(pantry, uses)
		return reconciliation.Adjustments
	})
	if err != nil {
		return AcceptResult{}, fmt.Errorf("accept plan: %w", err)
	}

	service.logger.Info("meal plan accepted",
		zap.Uint("user_id", userID),
		zap.Uint("plan_id", plan.ID),
		zap.Int("adjusted_rows", len(reconciliation.Adjustments)),
		zap.Int("unmatched_uses", len(reconciliation.Unmatched)))

	return AcceptResult{
		SavedPlan: plan,
		Unmatched: reconciliation.Unmatched,
		Warnings:  tree.CheckShape(),
	}, nil
}

func (service *PlanService) ListPlans(userID uint, status string) ([]models.MealPlan, error) {
	if status != "" && status != models.PlanStatusActive && status != models.PlanStatusDone {
		return nil, ErrInvalidPlanStatus
	}
	return service.plans.ListByUserAndStatus(userID, status)
}

func (service *PlanService) FindPlan(userID uint, planID uint) (models.MealPlan, error) {
	plan, err := service.plans.FindByIDForUser(planID, userID)
	if err != nil {
		return models.MealPlan{}, fmt.Errorf("%w: %v", ErrPlanNotFound, err)
	}
	return plan, nil
}

// UpdatePlan renames and/or transitions status. The only status transition
// is ACTIVE to DONE; marking done preserves the row and its history.
func (service *PlanService) UpdatePlan(userID uint, planID uint, name *string, status *string) (models.MealPlan, error) {
	plan, err := service.FindPlan(userID, planID)
	if err != nil {
		return models.MealPlan{}, err
	}

	updates := make(map[string]any)
	if name != nil {
		trimmedName, err := ValidatePlanName(*name)
		if err != nil {
			return models.MealPlan{}, err
		}
		updates["name"] = trimmedName
	}
	if status != nil {
		switch *status {
		case models.PlanStatusDone:
			updates["status"] = models.PlanStatusDone
		case models.PlanStatusActive:
			if plan.Status == models.PlanStatusDone {
				return models.MealPlan{}, ErrPlanStatusTransition
			}
		default:
			return models.MealPlan{}, ErrInvalidPlanStatus
		}
	}

	if len(updates) > 0 {
		if err := service.plans.UpdateByID(planID, updates); err != nil {
			return models.MealPlan{}, fmt.Errorf("update plan: %w", err)
		}
	}
	return service.FindPlan(userID, planID)
}

func (service *PlanService) MarkPlanDone(userID uint, planID uint) (models.MealPlan, error) {
	done := models.PlanStatusDone
	return service.UpdatePlan(userID, planID, nil, &done)
}

func (service *PlanService) DeletePlan(userID uint, planID uint) error {
	plan, err := service.FindPlan(userID, planID)
	if err != nil {
		return err
	}
	return service.plans.Delete(&plan)
}

func firstCuisine(cuisines []string) string {
	if len(cuisines) == 0 {
		return ""
	}
	return cuisines[0]
}
