package handlers

import (
	"net/http"
	"strconv"

	"github.com/culinamind/backend/internal/domain/recipe"
	"github.com/culinamind/backend/internal/infrastructure/http/middleware"
	"github.com/culinamind/backend/internal/infrastructure/monitoring"
	"github.com/culinamind/backend/internal/infrastructure/security"
	"github.com/culinamind/backend/internal/ports/inbound"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// RecipeHandler serves recipe generation and favorites.
type RecipeHandler struct {
	recipes  inbound.RecipeService
	validate *security.RequestValidator
	metrics  *monitoring.MetricsCollector
	logger   *zap.Logger
}

// NewRecipeHandler creates the recipe handler.
func NewRecipeHandler(recipes inbound.RecipeService, validate *security.RequestValidator, metrics *monitoring.MetricsCollector, logger *zap.Logger) *RecipeHandler {
	return &RecipeHandler{recipes: recipes, validate: validate, metrics: metrics, logger: logger.Named("recipe-handler")}
}

// Generate handles POST /generate_recipes.
func (h *RecipeHandler) Generate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respond(w, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	var req recipe.GenerationRequest
	if err := decodeJSON(r, &req); err != nil {
		respond(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respond(w, http.StatusBadRequest, "Missing required fields", nil)
		return
	}

	recipes, err := h.recipes.GenerateRecipes(r.Context(), userID, req)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	h.metrics.RecipesGenerated()
	respond(w, http.StatusOK, "Recipes generated successfully", recipes)
}

// SaveFavorite handles POST /favorite.
func (h *RecipeHandler) SaveFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respond(w, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	var fav recipe.Favorite
	if err := decodeJSON(r, &fav); err != nil {
		respond(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if fav.Title == "" {
		respond(w, http.StatusBadRequest, "Missing required fields", nil)
		return
	}
	fav.UserID = userID

	if err := h.recipes.SaveFavorite(r.Context(), &fav); err != nil {
		respondError(w, h.logger, err)
		return
	}
	h.metrics.FavoriteSaved()
	respond(w, http.StatusCreated, "Recipe saved to favorites", map[string]any{"recipe_id": fav.ID})
}

// GetFavorites handles GET /favorites.
func (h *RecipeHandler) GetFavorites(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respond(w, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	favorites, err := h.recipes.GetFavorites(r.Context(), userID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "Favorite recipes retrieved successfully", favorites)
}

// DeleteFavorite handles DELETE /favorite/{id}.
func (h *RecipeHandler) DeleteFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respond(w, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	recipeID, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		respond(w, http.StatusBadRequest, "Invalid recipe id", nil)
		return
	}

	if err := h.recipes.DeleteFavorite(r.Context(), userID, uint(recipeID)); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "Favorite recipe deleted successfully", nil)
}
