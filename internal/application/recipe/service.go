// Package recipe provides the application layer for recipe generation
// and saved favorites.
package recipe

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/culinamind/backend/internal/domain/recipe"
	"github.com/culinamind/backend/internal/infrastructure/config"
	"github.com/culinamind/backend/internal/ports/inbound"
	"github.com/culinamind/backend/internal/ports/outbound"
	apperrors "github.com/culinamind/backend/pkg/errors"
	"go.uber.org/zap"
)

const chefSystemPrompt = "You are a Michelin-star AI chef that writes very detailed cooking recipes for home users."

// Service implements the recipe use cases.
type Service struct {
	ai        outbound.AIService
	favorites outbound.FavoriteRepository
	aiCfg     config.AIConfig
	logger    *zap.Logger
}

// NewService creates the recipe application service.
func NewService(
	ai outbound.AIService,
	favorites outbound.FavoriteRepository,
	aiCfg config.AIConfig,
	logger *zap.Logger,
) inbound.RecipeService {
	return &Service{
		ai:        ai,
		favorites: favorites,
		aiCfg:     aiCfg,
		logger:    logger.Named("recipe-service"),
	}
}

// GenerateRecipes produces recipe suggestions from the user's inputs and
// attaches a generated image to each.
func (s *Service) GenerateRecipes(ctx context.Context, userID uint, req recipe.GenerationRequest) ([]recipe.GeneratedRecipe, error) {
	// "Surprise me" lets the model pick the cuisine but never repeat an
	// excluded one.
	exemption := ""
	if strings.EqualFold(strings.TrimSpace(req.Cuisine), "surprise me") {
		exemption = req.Exemption
	}

	response, err := s.ai.Complete(ctx, outbound.CompletionRequest{
		Model:       s.aiCfg.RecipeModel,
		System:      chefSystemPrompt,
		Prompt:      buildPrompt(req, exemption),
		Temperature: s.aiCfg.ChatTemperature,
	})
	if err != nil {
		return nil, apperrors.New(apperrors.CodeAIUnavailable, "Recipe generation failed", "").WithCause(err)
	}

	recipes, err := parseRecipes(response)
	if err != nil {
		s.logger.Error("recipe response parse failed", zap.Error(err))
		return nil, apperrors.New(apperrors.CodeAIUnavailable, "Recipe generation returned malformed output", "")
	}

	s.attachImages(ctx, recipes)
	s.logger.Info("recipes generated",
		zap.Uint("user_id", userID), zap.Int("count", len(recipes)))
	return recipes, nil
}

// SaveFavorite stores a recipe for a user.
func (s *Service) SaveFavorite(ctx context.Context, fav *recipe.Favorite) error {
	if fav.Title == "" {
		return apperrors.NewValidationError("title is required")
	}
	return s.favorites.Create(ctx, fav)
}

// GetFavorites lists a user's saved recipes.
func (s *Service) GetFavorites(ctx context.Context, userID uint) ([]*recipe.Favorite, error) {
	return s.favorites.FindByUserID(ctx, userID)
}

// DeleteFavorite removes a saved recipe owned by the user.
func (s *Service) DeleteFavorite(ctx context.Context, userID, recipeID uint) error {
	return s.favorites.Delete(ctx, recipeID, userID)
}

func buildPrompt(req recipe.GenerationRequest, exemption string) string {
	var b strings.Builder
	b.WriteString("Generate 4 unique and well-structured recipe suggestions using the following user input:\n")
	fmt.Fprintf(&b, "Ingredients: %s\n", strings.Join(req.Ingredients, ", "))
	fmt.Fprintf(&b, "Cuisine: %s\n", req.Cuisine)
	if len(req.DietaryRestrictions) > 0 {
		fmt.Fprintf(&b, "Dietary Restrictions: %s\n", strings.Join(req.DietaryRestrictions, ", "))
	}
	fmt.Fprintf(&b, "Time Limit: %s\n", req.TimeLimit)
	fmt.Fprintf(&b, "Serving Size: %s\n", req.ServingSize)
	if req.StrictIngredients {
		b.WriteString("Only use the listed ingredients plus pantry staples.\n")
	}
	if exemption != "" {
		fmt.Fprintf(&b, "Do not suggest %s cuisine.\n", exemption)
	}

	b.WriteString(`
Respond with ONLY a JSON array of 4 recipe objects. Each object must have:
"title", "ingredients" (list of strings with quantities), "instructions" (list of steps),
"estimated_cooking_time", "nutritional_info", and "time_breakdown" (object with keys
"1" through "5" for each stage and "T" for the total).`)
	return b.String()
}

// parseRecipes decodes the model response, which must be a bare JSON
// array. Entries without a title are dropped.
func parseRecipes(response string) ([]recipe.GeneratedRecipe, error) {
	var parsed []recipe.GeneratedRecipe
	if err := json.Unmarshal([]byte(strings.TrimSpace(response)), &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode recipe response: %w", err)
	}

	recipes := parsed[:0]
	for _, r := range parsed {
		if r.Valid() {
			recipes = append(recipes, r)
		}
	}
	return recipes, nil
}

// attachImages generates a plated-dish image per recipe. Image failures
// leave the URL empty rather than failing the whole generation.
func (s *Service) attachImages(ctx context.Context, recipes []recipe.GeneratedRecipe) {
	for i := range recipes {
		prompt := fmt.Sprintf("A high-quality image of %s plated beautifully, food photography style", recipes[i].Title)
		url, err := s.ai.GenerateImage(ctx, prompt)
		if err != nil {
			s.logger.Warn("image generation failed",
				zap.String("title", recipes[i].Title), zap.Error(err))
			continue
		}
		recipes[i].ImageURL = url
	}
}
