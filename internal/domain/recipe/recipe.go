// Package recipe contains the generated-recipe and favorite domain models.
package recipe

// GeneratedRecipe is one AI-generated recipe suggestion, as returned to
// clients from the generation endpoint.
type GeneratedRecipe struct {
	Title         string            `json:"title"`
	Ingredients   []string          `json:"ingredients"`
	Instructions  []string          `json:"instructions"`
	EstimatedTime string            `json:"estimated_cooking_time"`
	Nutritional   string            `json:"nutritional_info"`
	TimeBreakdown map[string]string `json:"time_breakdown"`
	ImageURL      string            `json:"image_url,omitempty"`
}

// Valid reports whether the recipe carries the minimum required fields.
// Malformed entries from the model are dropped rather than surfaced.
func (r GeneratedRecipe) Valid() bool {
	return r.Title != ""
}

// Favorite is a recipe a user has saved. Ingredients, instructions and
// the time breakdown are stored JSON-encoded in the database.
type Favorite struct {
	ID            uint              `json:"id"`
	UserID        uint              `json:"-"`
	Title         string            `json:"title"`
	Ingredients   []string          `json:"ingredients"`
	Instructions  []string          `json:"instructions"`
	ImageURL      string            `json:"image_url"`
	Time          string            `json:"time"`
	Nutritional   string            `json:"nutritional_value"`
	TimeBreakdown map[string]string `json:"time_breakdown"`
}

// GenerationRequest carries the user inputs for recipe generation.
type GenerationRequest struct {
	Ingredients         []string `json:"ingredients" validate:"required,min=1"`
	Cuisine             string   `json:"cuisine" validate:"required"`
	DietaryRestrictions []string `json:"dietary_restrictions"`
	TimeLimit           string   `json:"time_limit" validate:"required"`
	ServingSize         string   `json:"serving_size" validate:"required"`
	Exemption           string   `json:"exemption,omitempty"`
	StrictIngredients   bool     `json:"strict_ingredients"`
}
