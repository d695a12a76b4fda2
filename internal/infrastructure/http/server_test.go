package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	ctxdomain "github.com/culinamind/backend/internal/domain/context"
	"github.com/culinamind/backend/internal/domain/recipe"
	"github.com/culinamind/backend/internal/domain/user"
	"github.com/culinamind/backend/internal/infrastructure/ai/anthropic"
	"github.com/culinamind/backend/internal/infrastructure/config"
	"github.com/culinamind/backend/internal/infrastructure/http/handlers"
	"github.com/culinamind/backend/internal/infrastructure/http/middleware"
	"github.com/culinamind/backend/internal/infrastructure/monitoring"
	"github.com/culinamind/backend/internal/infrastructure/security"
	"github.com/culinamind/backend/internal/ports/inbound"
	"github.com/culinamind/backend/internal/validation"
	apperrors "github.com/culinamind/backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAuth struct {
	user *user.User
	err  error
}

func (f *fakeAuth) Signup(context.Context, inbound.SignupCommand) (*user.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func (f *fakeAuth) Login(context.Context, string, string) (*inbound.AuthResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &inbound.AuthResult{AccessToken: "issued-token", User: f.user}, nil
}

func (f *fakeAuth) LoginWithGoogle(context.Context, string) (*inbound.AuthResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &inbound.AuthResult{AccessToken: "issued-token", User: f.user}, nil
}

func (f *fakeAuth) GetProfile(context.Context, uint) (*user.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func (f *fakeAuth) UpdateProfile(_ context.Context, _ uint, firstName, lastName string) (*user.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u := *f.user
	u.FirstName = firstName
	u.LastName = lastName
	return &u, nil
}

func (f *fakeAuth) RequestPasswordReset(context.Context, string) error { return f.err }

func (f *fakeAuth) VerifyOTP(context.Context, string, string) error { return f.err }

func (f *fakeAuth) ConfirmPasswordReset(context.Context, string, string, string) error {
	return f.err
}

type fakeRecipes struct {
	generated []recipe.GeneratedRecipe
	favorites []*recipe.Favorite
	err       error
	deletedID uint
}

func (f *fakeRecipes) GenerateRecipes(context.Context, uint, recipe.GenerationRequest) ([]recipe.GeneratedRecipe, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.generated, nil
}

func (f *fakeRecipes) SaveFavorite(_ context.Context, fav *recipe.Favorite) error {
	if f.err != nil {
		return f.err
	}
	fav.ID = 42
	return nil
}

func (f *fakeRecipes) GetFavorites(context.Context, uint) ([]*recipe.Favorite, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.favorites, nil
}

func (f *fakeRecipes) DeleteFavorite(_ context.Context, _ uint, recipeID uint) error {
	if f.err != nil {
		return f.err
	}
	f.deletedID = recipeID
	return nil
}

type fakeChat struct {
	result  *inbound.ChatResult
	hits    []inbound.KnowledgeHit
	recipes []recipe.GeneratedRecipe
	summary string
	tips    []string
	profile *ctxdomain.UserProfile
	stats   map[string]any
	cleaned int
	err     error
}

func (f *fakeChat) Chat(context.Context, inbound.ChatCommand) (*inbound.ChatResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeChat) StartConversation(context.Context, string) (*inbound.ChatResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeChat) ModifyRecipe(context.Context, string, string, string, string) (*inbound.ChatResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeChat) RecipeSuggestions(context.Context, string, string, string) (*inbound.ChatResult, []inbound.KnowledgeHit, error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	return f.result, f.hits, nil
}

func (f *fakeChat) GenerateRecipes(_ context.Context, _, sessionID string, _ recipe.GenerationRequest) ([]recipe.GeneratedRecipe, string, string, error) {
	if f.err != nil {
		return nil, "", "", f.err
	}
	if sessionID == "" {
		sessionID = "minted-session"
	}
	return f.recipes, f.summary, sessionID, nil
}

func (f *fakeChat) UpdatePreferences(context.Context, string, map[string]any) error { return f.err }

func (f *fakeChat) GetContextProfile(context.Context, string) (*ctxdomain.UserProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.profile, nil
}

func (f *fakeChat) UpdateSession(context.Context, string, string, map[string]any) error {
	return f.err
}

func (f *fakeChat) Cleanup(context.Context) int { return f.cleaned }

func (f *fakeChat) Recommendations(context.Context, string, string) ([]inbound.KnowledgeHit, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.hits, nil
}

func (f *fakeChat) CookingTips(context.Context, string, string, string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.tips, nil
}

func (f *fakeChat) SearchKnowledge(context.Context, string, string, inbound.SearchFilters) ([]inbound.KnowledgeHit, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.hits, nil
}

func (f *fakeChat) KnowledgeStats(context.Context) map[string]any { return f.stats }

func newTestServer(t *testing.T, auth inbound.AuthService, recipes inbound.RecipeService, chat inbound.ChatService) (http.Handler, string) {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{
			Host:           "127.0.0.1",
			Port:           0,
			EnableCORS:     true,
			AllowedOrigins: []string{"*"},
		},
		Auth: config.AuthConfig{
			JWTSecret:     "test-secret",
			JWTExpiration: time.Hour,
		},
	}
	log := zap.NewNop()

	tokens := security.NewTokenService(cfg.Auth)
	token, err := tokens.Generate(7, "grace@example.com")
	require.NoError(t, err)

	metrics := monitoring.NewMetricsCollector(log)
	validate := security.NewRequestValidator(log)
	entryValidator := validation.NewValidator(anthropic.NewClient(config.AIConfig{}, metrics, log), log)

	srv := NewServer(
		cfg, log,
		middleware.New(cfg, log),
		middleware.NewAuthenticator(tokens, log),
		metrics,
		handlers.NewAuthHandler(auth, validate, metrics, log),
		handlers.NewRecipeHandler(recipes, validate, metrics, log),
		handlers.NewChatHandler(chat, metrics, log),
		handlers.NewValidationHandler(entryValidator, log),
	)
	return srv.Handler(), token
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	decoded := map[string]any{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec, decoded
}

func testUser() *user.User {
	return &user.User{ID: 7, FirstName: "Grace", LastName: "Hopper", Email: "grace@example.com"}
}

func TestHealthEndpoint(t *testing.T) {
	h, _ := newTestServer(t, &fakeAuth{}, &fakeRecipes{}, &fakeChat{})

	rec, body := doJSON(t, h, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", body["status"])
}

func TestSignupReturnsCreatedEnvelope(t *testing.T) {
	h, _ := newTestServer(t, &fakeAuth{user: testUser()}, &fakeRecipes{}, &fakeChat{})

	rec, body := doJSON(t, h, http.MethodPost, "/api/v1/auth/signup", "", map[string]any{
		"first_name": "Grace",
		"last_name":  "Hopper",
		"email":      "grace@example.com",
		"password":   "correct-horse",
	})
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, float64(http.StatusCreated), body["status"])
	assert.Equal(t, "User created successfully", body["message"])

	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(7), data["user_id"])
}

func TestSignupIncrementsRegistrationCounter(t *testing.T) {
	h, _ := newTestServer(t, &fakeAuth{user: testUser()}, &fakeRecipes{}, &fakeChat{})

	rec, _ := doJSON(t, h, http.MethodPost, "/api/v1/auth/signup", "", map[string]any{
		"first_name": "Grace",
		"last_name":  "Hopper",
		"email":      "grace@example.com",
		"password":   "correct-horse",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	scrape := httptest.NewRecorder()
	h.ServeHTTP(scrape, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, scrape.Body.String(), "users_registered_total 1")
}

func TestSignupRejectsMissingFields(t *testing.T) {
	h, _ := newTestServer(t, &fakeAuth{user: testUser()}, &fakeRecipes{}, &fakeChat{})

	rec, body := doJSON(t, h, http.MethodPost, "/api/v1/auth/signup", "", map[string]any{
		"first_name": "Grace",
		"email":      "grace@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing required fields", body["message"])
}

func TestSignupDuplicateEmailConflict(t *testing.T) {
	auth := &fakeAuth{err: apperrors.New(apperrors.CodeEmailAlreadyExists, "Email already registered", "")}
	h, _ := newTestServer(t, auth, &fakeRecipes{}, &fakeChat{})

	rec, body := doJSON(t, h, http.MethodPost, "/api/v1/auth/signup", "", map[string]any{
		"first_name": "Grace",
		"last_name":  "Hopper",
		"email":      "grace@example.com",
		"password":   "correct-horse",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Email already registered", body["message"])
}

func TestLoginReturnsTokenAndUser(t *testing.T) {
	h, _ := newTestServer(t, &fakeAuth{user: testUser()}, &fakeRecipes{}, &fakeChat{})

	rec, body := doJSON(t, h, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"email":    "grace@example.com",
		"password": "correct-horse",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Login successful", body["message"])

	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "issued-token", data["access_token"])

	u, ok := data["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "grace@example.com", u["email"])
}

func TestLoginInvalidCredentials(t *testing.T) {
	auth := &fakeAuth{err: apperrors.New(apperrors.CodeInvalidCredentials, "Invalid credentials", "")}
	h, _ := newTestServer(t, auth, &fakeRecipes{}, &fakeChat{})

	rec, body := doJSON(t, h, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"email":    "grace@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid credentials", body["message"])
}

func TestProfileRequiresToken(t *testing.T) {
	h, _ := newTestServer(t, &fakeAuth{user: testUser()}, &fakeRecipes{}, &fakeChat{})

	rec, body := doJSON(t, h, http.MethodGet, "/api/v1/auth/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Authorization header required", body["message"])

	rec, body = doJSON(t, h, http.MethodGet, "/api/v1/auth/profile", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid or expired token", body["message"])
}

func TestProfileRoundTrip(t *testing.T) {
	h, token := newTestServer(t, &fakeAuth{user: testUser()}, &fakeRecipes{}, &fakeChat{})

	rec, body := doJSON(t, h, http.MethodGet, "/api/v1/auth/profile", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Profile retrieved successfully", body["message"])

	rec, body = doJSON(t, h, http.MethodPut, "/api/v1/auth/profile", token, map[string]any{
		"first_name": "Ada",
		"last_name":  "Lovelace",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Profile updated successfully", body["message"])

	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Ada", data["first_name"])
}

func TestUpdateProfileRequiresBothNames(t *testing.T) {
	h, token := newTestServer(t, &fakeAuth{user: testUser()}, &fakeRecipes{}, &fakeChat{})

	rec, body := doJSON(t, h, http.MethodPut, "/api/v1/auth/profile", token, map[string]any{
		"first_name": "Ada",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Both first name and last name are required", body["message"])
}

func TestPasswordResetEndpoints(t *testing.T) {
	h, _ := newTestServer(t, &fakeAuth{user: testUser()}, &fakeRecipes{}, &fakeChat{})

	rec, body := doJSON(t, h, http.MethodPost, "/api/v1/auth/reset-password", "", map[string]any{"email": "grace@example.com"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OTP sent to your email", body["message"])

	rec, body = doJSON(t, h, http.MethodPost, "/api/v1/auth/verify-otp", "", map[string]any{"email": "grace@example.com", "otp": "123456"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OTP verified", body["message"])

	rec, body = doJSON(t, h, http.MethodPost, "/api/v1/auth/reset-password/confirm", "", map[string]any{
		"email":        "grace@example.com",
		"otp":          "123456",
		"new_password": "fresh-horse",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Password reset successful", body["message"])
}

func TestGenerateRecipesEndpoint(t *testing.T) {
	recipes := &fakeRecipes{generated: []recipe.GeneratedRecipe{{Title: "Lemon Chicken"}}}
	h, token := newTestServer(t, &fakeAuth{}, recipes, &fakeChat{})

	rec, body := doJSON(t, h, http.MethodPost, "/api/v1/recipes/generate_recipes", token, map[string]any{
		"ingredients":  []string{"chicken", "lemon"},
		"cuisine":      "Mediterranean",
		"time_limit":   "45 minutes",
		"serving_size": "2",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Recipes generated successfully", body["message"])

	data, ok := body["data"].([]any)
	require.True(t, ok)
	require.Len(t, data, 1)
}

func TestGenerateRecipesRejectsMissingFields(t *testing.T) {
	h, token := newTestServer(t, &fakeAuth{}, &fakeRecipes{}, &fakeChat{})

	rec, body := doJSON(t, h, http.MethodPost, "/api/v1/recipes/generate_recipes", token, map[string]any{
		"ingredients": []string{"chicken"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing required fields", body["message"])
}

func TestFavoriteEndpoints(t *testing.T) {
	recipes := &fakeRecipes{favorites: []*recipe.Favorite{{ID: 42, Title: "Lemon Chicken"}}}
	h, token := newTestServer(t, &fakeAuth{}, recipes, &fakeChat{})

	rec, body := doJSON(t, h, http.MethodPost, "/api/v1/recipes/favorite", token, map[string]any{
		"title":       "Lemon Chicken",
		"ingredients": []string{"chicken", "lemon"},
	})
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Recipe saved to favorites", body["message"])
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(42), data["recipe_id"])

	rec, body = doJSON(t, h, http.MethodGet, "/api/v1/recipes/favorites", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Favorite recipes retrieved successfully", body["message"])

	rec, body = doJSON(t, h, http.MethodDelete, "/api/v1/recipes/favorite/42", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Favorite recipe deleted successfully", body["message"])
	assert.Equal(t, uint(42), recipes.deletedID)
}

func TestDeleteFavoriteNotFound(t *testing.T) {
	recipes := &fakeRecipes{err: apperrors.New(apperrors.CodeRecipeNotFound, "Recipe not found", "")}
	h, token := newTestServer(t, &fakeAuth{}, recipes, &fakeChat{})

	rec, body := doJSON(t, h, http.MethodDelete, "/api/v1/recipes/favorite/99", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Recipe not found", body["message"])
}

func TestChatEndpoint(t *testing.T) {
	chat := &fakeChat{result: &inbound.ChatResult{Response: "Try searing first.", ContextType: "cooking_question", SessionID: "s1"}}
	h, token := newTestServer(t, &fakeAuth{}, &fakeRecipes{}, chat)

	rec, body := doJSON(t, h, http.MethodPost, "/api/v1/ai/chat", token, map[string]any{
		"message": "How do I sear a steak?",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Try searing first.", body["response"])
	assert.Equal(t, "How do I sear a steak?", body["user_message"])
	assert.Equal(t, "cooking_question", body["context_type"])
	assert.Equal(t, "s1", body["session_id"])
}

func TestChatFailureCarriesApology(t *testing.T) {
	chat := &fakeChat{err: apperrors.NewInternalError("model call failed")}
	h, token := newTestServer(t, &fakeAuth{}, &fakeRecipes{}, chat)

	rec, body := doJSON(t, h, http.MethodPost, "/api/v1/ai/chat", token, map[string]any{
		"message": "hello",
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "I apologize, but I'm having trouble processing your request right now. Please try again in a moment.", body["response"])
}

func TestChatRequiresMessage(t *testing.T) {
	h, token := newTestServer(t, &fakeAuth{}, &fakeRecipes{}, &fakeChat{})

	rec, body := doJSON(t, h, http.MethodPost, "/api/v1/ai/chat", token, map[string]any{"message": "   "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Message is required", body["error"])
}

func TestChatGenerateRecipesValidationPassesThrough(t *testing.T) {
	chat := &fakeChat{err: apperrors.NewBadRequestError("Please provide at least 4 ingredients")}
	h, token := newTestServer(t, &fakeAuth{}, &fakeRecipes{}, chat)

	rec, body := doJSON(t, h, http.MethodPost, "/api/v1/ai/generate-recipes", token, map[string]any{
		"ingredients": []string{"salt"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Please provide at least 4 ingredients", body["error"])
}

func TestChatGenerateRecipesSuccess(t *testing.T) {
	chat := &fakeChat{
		recipes: []recipe.GeneratedRecipe{{Title: "Fried Rice"}},
		summary: "I've generated 1 personalized recipes for you",
	}
	h, token := newTestServer(t, &fakeAuth{}, &fakeRecipes{}, chat)

	rec, body := doJSON(t, h, http.MethodPost, "/api/v1/ai/generate-recipes", token, map[string]any{
		"session_id":  "s1",
		"ingredients": []string{"rice", "egg", "soy sauce", "scallion"},
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, chat.summary, body["response"])
	assert.Equal(t, "s1", body["session_id"])
	assert.Equal(t, "7", body["user_id"])
}

func TestChatGenerateRecipesEchoesEffectiveSessionID(t *testing.T) {
	chat := &fakeChat{recipes: []recipe.GeneratedRecipe{{Title: "Fried Rice"}}, summary: "done"}
	h, token := newTestServer(t, &fakeAuth{}, &fakeRecipes{}, chat)

	rec, body := doJSON(t, h, http.MethodPost, "/api/v1/ai/generate-recipes", token, map[string]any{
		"ingredients": []string{"rice", "egg", "soy sauce", "scallion"},
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "minted-session", body["session_id"])
}

func TestSearchKnowledgeEndpoint(t *testing.T) {
	chat := &fakeChat{hits: []inbound.KnowledgeHit{{ID: "kb_001", Title: "Knife Skills", Score: 0.9}}}
	h, token := newTestServer(t, &fakeAuth{}, &fakeRecipes{}, chat)

	rec, body := doJSON(t, h, http.MethodGet, "/api/v1/ai/search?query=knife+skills", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), body["total_results"])
	assert.Equal(t, "knife skills", body["query"])

	rec, body = doJSON(t, h, http.MethodGet, "/api/v1/ai/search", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Search query is required", body["error"])
}

func TestAIHealthUnauthenticated(t *testing.T) {
	chat := &fakeChat{stats: map[string]any{"total_items": 20, "vector_search_available": true}}
	h, _ := newTestServer(t, &fakeAuth{}, &fakeRecipes{}, chat)

	rec, body := doJSON(t, h, http.MethodGet, "/api/v1/ai/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "operational", body["vector_search"])
}

func TestCleanupEndpoint(t *testing.T) {
	chat := &fakeChat{cleaned: 3}
	h, token := newTestServer(t, &fakeAuth{}, &fakeRecipes{}, chat)

	rec, body := doJSON(t, h, http.MethodPost, "/api/v1/ai/cleanup", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Cleaned up 3 old context files", body["message"])
	assert.Equal(t, float64(3), body["cleaned_count"])
}

func TestValidateEntryKnownTerm(t *testing.T) {
	h, token := newTestServer(t, &fakeAuth{}, &fakeRecipes{}, &fakeChat{})

	rec, body := doJSON(t, h, http.MethodPost, "/api/v1/validation/validate-entry", token, map[string]any{
		"input":    "vegan",
		"category": "dietary",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])

	result, ok := body["validation"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, result["isValid"])
}

func TestValidateEntryRejectsBadCategory(t *testing.T) {
	h, token := newTestServer(t, &fakeAuth{}, &fakeRecipes{}, &fakeChat{})

	rec, body := doJSON(t, h, http.MethodPost, "/api/v1/validation/validate-entry", token, map[string]any{
		"input":    "vegan",
		"category": "astrology",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid category. Must be one of: dietary, cuisine, equipment, health", body["error"])
}

func TestValidateEntriesCapsBatchSize(t *testing.T) {
	h, token := newTestServer(t, &fakeAuth{}, &fakeRecipes{}, &fakeChat{})

	entries := make([]map[string]any, 11)
	for i := range entries {
		entries[i] = map[string]any{"input": "vegan", "category": "dietary"}
	}
	rec, body := doJSON(t, h, http.MethodPost, "/api/v1/validation/validate-entries", token, map[string]any{
		"entries": entries,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Maximum 10 entries allowed per request", body["error"])
}

func TestSecurityHeadersApplied(t *testing.T) {
	h, _ := newTestServer(t, &fakeAuth{}, &fakeRecipes{}, &fakeChat{})

	rec, _ := doJSON(t, h, http.MethodGet, "/health", "", nil)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
