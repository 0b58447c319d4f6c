// Package generator produces meal plan trees for preview. The OpenRouter
// client is the primary implementation; Local is the offline fallback and
// Cached wraps either with a redis layer.
package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/crumbworks/pantryplan/internal/config"
	"github.com/crumbworks/pantryplan/internal/planner"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

var (
	ErrUpstreamStatus = errors.New("model provider returned an error")
	ErrMalformedReply = errors.New("model reply is not a valid plan")
	ErrNoReplyChoices = errors.New("model reply has no choices")
)

type OpenRouter struct {
	client *resty.Client
	model  string
	logger *zap.Logger
}

func NewOpenRouter(cfg config.GeneratorConfig, logger *zap.Logger) *OpenRouter {
	if logger == nil {
		logger = zap.NewNop()
	}
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetHeader("Authorization", "Bearer "+cfg.APIKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(cfg.Timeout)
	return &OpenRouter{client: client, model: cfg.Model, logger: logger}
}

func (openRouter *OpenRouter) Generate(ctx context.Context, request planner.GenerationRequest) (planner.Tree, error) {
	payload := map[string]any{
		"model": openRouter.model,
		"messages": []map[string]any{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": buildPrompt(request)},
		},
		"response_format": map[string]string{"type": "json_object"},
	}

	response, err := openRouter.client.R().
		SetContext(ctx).
		SetBody(payload).
		Post("/chat/completions")
	if err != nil {
		return planner.Tree{}, fmt.Errorf("call model provider: %w", err)
	}
	if response.StatusCode() != http.StatusOK {
		openRouter.logger.Warn("model provider rejected the request",
			zap.Int("status", response.StatusCode()),
			zap.String("model", openRouter.model))
		return planner.Tree{}, fmt.Errorf("%w: status %d", ErrUpstreamStatus, response.StatusCode())
	}

	var reply struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(response.Body(), &reply); err != nil {
		return planner.Tree{}, fmt.Errorf("%w: %v", ErrMalformedReply, err)
	}
	if len(reply.Choices) == 0 {
		return planner.Tree{}, ErrNoReplyChoices
	}

	tree, err := decodeModelReply(reply.Choices[0].Message.Content)
	if err != nil {
		return planner.Tree{}, err
	}
	return tree, nil
}

const systemPrompt = "You are a meal planning assistant. Reply with a single JSON object " +
	"shaped as {\"meta\":{\"durationDays\":int,\"mealsPerDay\":int,\"targetCaloriesPerDay\":int," +
	"\"cuisineStyle\":string},\"days\":[{\"meals\":[{\"name\":string,\"calories\":int," +
	"\"uses\":[{\"name\":string,\"quantity\":number,\"unit\":string}]," +
	"\"instructions\":[string]}]}]}. Use units g, kg, mL, L or unit. No prose, no markdown."

func buildPrompt(request planner.GenerationRequest) string {
	var prompt strings.Builder
	fmt.Fprintf(&prompt, "Create a %d day meal plan with %d meals per day.", request.DurationDays, request.MealsPerDay)
	if request.TargetCaloriesPerDay > 0 {
		fmt.Fprintf(&prompt, " Target roughly %d kcal per day.", request.TargetCaloriesPerDay)
	}
	if request.CuisineStyle != "" {
		fmt.Fprintf(&prompt, " Favor %s cuisine.", request.CuisineStyle)
	}
	if len(request.PantryNames) > 0 {
		fmt.Fprintf(&prompt, " Prefer ingredients already on hand: %s.", strings.Join(request.PantryNames, ", "))
	}
	return prompt.String()
}

// decodeModelReply tolerates a markdown code fence around the JSON, which
// some models emit even when asked not to.
func decodeModelReply(content string) (planner.Tree, error) {
	trimmed := strings.TrimSpace(content)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)

	tree, err := planner.Decode([]byte(trimmed))
	if err != nil {
		return planner.Tree{}, fmt.Errorf("%w: %v", ErrMalformedReply, err)
	}
	if tree.IsEmpty() {
		return planner.Tree{}, fmt.Errorf("%w: empty plan", ErrMalformedReply)
	}
	return tree, nil
}
