package rag

import (
	stdctx "context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	ctxdomain "github.com/culinamind/backend/internal/domain/context"
	"github.com/culinamind/backend/internal/domain/recipe"
	"github.com/culinamind/backend/internal/ports/outbound"
	"go.uber.org/zap"
)

// Models sometimes wrap the JSON array in prose; extract the widest
// bracketed span.
var jsonArrayRe = regexp.MustCompile(`(?s)\[.*\]`)

// GenerateContextualRecipes produces distinct recipe suggestions tuned
// to the user's profile and the current request. A parse or completion
// failure returns an empty slice, never an error, so callers can fall
// back gracefully.
func (s *Service) GenerateContextualRecipes(ctx stdctx.Context, userID, sessionID string, req recipe.GenerationRequest) []recipe.GeneratedRecipe {
	profile := s.store.LoadProfile(ctx, userID)

	enhanced, _ := s.engineer.BuildPrompt(ctx, userID, sessionID, "recipe generation", map[string]any{
		"ingredients":          req.Ingredients,
		"cuisine":              req.Cuisine,
		"dietary_restrictions": req.DietaryRestrictions,
		"time_limit":           req.TimeLimit,
		"serving_size":         req.ServingSize,
	})
	system := enhanced + "\n\nRECIPE GENERATION CONTEXT:\n" + buildRecipeContext(req, profile)

	response, err := s.ai.Complete(ctx, outbound.CompletionRequest{
		Model:       s.aiCfg.RecipeModel,
		System:      system,
		Prompt:      buildRecipePrompt(req),
		Temperature: s.aiCfg.RecipeTemp,
		MaxTokens:   s.aiCfg.RecipeMaxTokens,
	})
	if err != nil {
		s.logger.Error("recipe completion failed", zap.Error(err))
		return nil
	}

	recipes := parseRecipes(response)
	if len(recipes) == 0 {
		s.logger.Warn("no recipes parsed from model response",
			zap.Int("response_len", len(response)))
		return nil
	}

	s.store.AppendMessage(ctx, sessionID, userID, ctxdomain.Message{
		UserMessage: "Generated recipes with ingredients: " + strings.Join(req.Ingredients, ", "),
		AIResponse:  fmt.Sprintf("Generated %d personalized recipes", len(recipes)),
		ContextType: "recipe_generation",
	})
	return recipes
}

func buildRecipeContext(req recipe.GenerationRequest, profile *ctxdomain.UserProfile) string {
	var parts []string

	if len(req.Ingredients) > 0 {
		parts = append(parts, "Available Ingredients: "+strings.Join(req.Ingredients, ", "))
	}
	if req.Cuisine != "" {
		parts = append(parts, "Cuisine Style: "+req.Cuisine)
	}
	if len(req.DietaryRestrictions) > 0 {
		parts = append(parts, "Dietary Restrictions: "+strings.Join(req.DietaryRestrictions, ", "))
	}
	if req.TimeLimit != "" {
		parts = append(parts, "Time Limit: "+req.TimeLimit)
	}
	if req.ServingSize != "" {
		parts = append(parts, "Serving Size: "+req.ServingSize)
	}
	if req.StrictIngredients {
		parts = append(parts, "Ingredient Usage: strict mode")
	} else {
		parts = append(parts, "Ingredient Usage: flexible mode")
	}
	if req.Exemption != "" {
		parts = append(parts, "Exclude Cuisine: "+req.Exemption)
	}

	if profile != nil {
		parts = append(parts, "User Skill Level: "+profile.SkillLevel)
		if len(profile.CookingEquipment) > 0 {
			parts = append(parts, "Available Equipment: "+strings.Join(capped(profile.CookingEquipment, 5), ", "))
		}
		if len(profile.IngredientPreferences) > 0 {
			parts = append(parts, "Preferred Ingredients: "+strings.Join(capped(profile.IngredientPreferences, 5), ", "))
		}
		if len(profile.IngredientDislikes) > 0 {
			parts = append(parts, "Ingredients to Avoid: "+strings.Join(capped(profile.IngredientDislikes, 3), ", "))
		}
		if len(profile.HealthGoals) > 0 {
			parts = append(parts, "Health Goals: "+strings.Join(profile.HealthGoals, ", "))
		}
	}
	return strings.Join(parts, "\n")
}

func buildRecipePrompt(req recipe.GenerationRequest) string {
	var b strings.Builder
	b.WriteString("Generate 4 COMPLETELY DISTINCT and diverse recipe suggestions based on the context above.\n\n")

	if req.StrictIngredients {
		b.WriteString("STRICT MODE: Only use the ingredients provided above. Do not add any other main ingredients. Pantry staples (salt, pepper, oil, water) are allowed.\n\n")
	} else {
		b.WriteString("FLEXIBLE MODE: You MUST include the listed ingredients PLUS additional complementary ingredients. Each recipe should add 2-4 additional main ingredients that pair well with the provided ones.\n\n")
	}

	b.WriteString(`Each recipe must be a JSON object with these exact fields:
- "title": recipe name
- "ingredients": list of ingredient strings with quantities
- "instructions": list of numbered step strings
- "estimated_cooking_time": total time as a string
- "nutritional_info": short nutritional summary string
- "time_breakdown": object with numbered keys "1" through "5" for each stage and "T" for the total

DIVERSITY REQUIREMENT: The 4 recipes must differ substantially from each other in cooking method, flavor profile, and presentation. Do not produce variations of the same dish.

Respond with ONLY a JSON array of the 4 recipe objects, no other text.`)
	return b.String()
}

// parseRecipes extracts recipe objects from a model response. Entries
// without a title are dropped.
func parseRecipes(response string) []recipe.GeneratedRecipe {
	raw := jsonArrayRe.FindString(response)
	if raw == "" {
		return nil
	}

	var parsed []recipe.GeneratedRecipe
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil
	}

	recipes := parsed[:0]
	for _, r := range parsed {
		if r.Valid() {
			recipes = append(recipes, r)
		}
	}
	return recipes
}
