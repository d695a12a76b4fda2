package chat

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/culinamind/backend/internal/contextstore"
	ctxdomain "github.com/culinamind/backend/internal/domain/context"
	"github.com/culinamind/backend/internal/domain/recipe"
	"github.com/culinamind/backend/internal/infrastructure/config"
	"github.com/culinamind/backend/internal/infrastructure/persistence/memory"
	"github.com/culinamind/backend/internal/infrastructure/vectorstore"
	"github.com/culinamind/backend/internal/ports/inbound"
	"github.com/culinamind/backend/internal/ports/outbound"
	"github.com/culinamind/backend/internal/prompt"
	"github.com/culinamind/backend/internal/rag"
	apperrors "github.com/culinamind/backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAI struct {
	completion  string
	lastRequest outbound.CompletionRequest
}

func (f *fakeAI) Complete(_ context.Context, req outbound.CompletionRequest) (string, error) {
	f.lastRequest = req
	return f.completion, nil
}

func (f *fakeAI) Embed(_ context.Context, text string) ([]float32, error) {
	return []float32{float32(len(text)), 1, 0, 0}, nil
}

func (f *fakeAI) GenerateImage(_ context.Context, _ string) (string, error) {
	return "https://images.example/test.png", nil
}

func newTestService(t *testing.T, ai *fakeAI) (*Service, *contextstore.Store) {
	t.Helper()

	cache := memory.NewCacheRepository()
	t.Cleanup(cache.Close)

	ctxCfg := config.ContextConfig{
		StoragePath:     t.TempDir(),
		CacheTTL:        time.Minute,
		MaxAge:          24 * time.Hour,
		MaxMessages:     50,
		MaxTokens:       3000,
		MaxConversation: 10,
		RelevanceFloor:  0.3,
	}
	store, err := contextstore.NewStore(ctxCfg, cache, zap.NewNop())
	require.NoError(t, err)

	index, err := vectorstore.NewStore(t.TempDir()+"/index.db", 4, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = index.Close() })

	aiCfg := config.AIConfig{
		ChatModel:       "gpt-3.5-turbo",
		RecipeModel:     "gpt-4",
		ChatMaxTokens:   500,
		RecipeMaxTokens: 2000,
		ChatTemperature: 0.7,
		RecipeTemp:      0.8,
	}
	boosts := config.KnowledgeConfig{
		SkillMatchBoost: 1.2,
		AdvancedBoost:   1.1,
		DietaryBoost:    1.1,
		CuisineBoost:    1.15,
		IngredientBoost: 1.1,
	}

	engineer := prompt.NewEngineer(store, zap.NewNop())
	optimizer := prompt.NewOptimizer(ctxCfg, store, zap.NewNop())
	ragSvc := rag.NewService(ai, index, store, engineer, optimizer, aiCfg, boosts, zap.NewNop())

	svc := NewService(ragSvc, store, ctxCfg, zap.NewNop()).(*Service)
	return svc, store
}

func TestChatCreatesSessionWhenMissing(t *testing.T) {
	ai := &fakeAI{completion: "Happy to help with that."}
	svc, store := newTestService(t, ai)

	result, err := svc.Chat(context.Background(), inbound.ChatCommand{
		UserID:  "u1",
		Message: "How do I caramelize onions?",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.SessionID)
	assert.Equal(t, "Happy to help with that.", result.Response)

	session := store.LoadSession(context.Background(), result.SessionID)
	require.NotNil(t, session)
	assert.Equal(t, "u1", session.UserID)
}

func TestChatRequiresMessage(t *testing.T) {
	svc, _ := newTestService(t, &fakeAI{completion: "ok"})

	_, err := svc.Chat(context.Background(), inbound.ChatCommand{UserID: "u1", Message: "   "})
	assert.Error(t, err)
}

func TestStartConversationReturnsGreeting(t *testing.T) {
	ai := &fakeAI{completion: "Welcome back! What are we cooking today?"}
	svc, store := newTestService(t, ai)

	result, err := svc.StartConversation(context.Background(), "u1")
	require.NoError(t, err)
	assert.NotEmpty(t, result.SessionID)
	assert.Equal(t, "Welcome back! What are we cooking today?", result.Response)
	assert.NotNil(t, store.LoadSession(context.Background(), result.SessionID))
}

func TestModifyRecipeValidation(t *testing.T) {
	svc, _ := newTestService(t, &fakeAI{completion: "ok"})

	_, err := svc.ModifyRecipe(context.Background(), "u1", "", "", "make it spicier")
	assert.Error(t, err)
	_, err = svc.ModifyRecipe(context.Background(), "u1", "", "Tomato soup: ...", "")
	assert.Error(t, err)
}

func TestModifyRecipePassesRecipeContext(t *testing.T) {
	ai := &fakeAI{completion: "Here is the spicier version."}
	svc, _ := newTestService(t, ai)

	result, err := svc.ModifyRecipe(context.Background(), "u1", "", "Tomato soup: simmer tomatoes.", "make it spicier")
	require.NoError(t, err)
	assert.Equal(t, "Here is the spicier version.", result.Response)
	assert.Contains(t, ai.lastRequest.Prompt, "Modify this recipe: make it spicier")
}

func TestGenerateRecipesRequiresInput(t *testing.T) {
	svc, _ := newTestService(t, &fakeAI{completion: "[]"})

	_, _, _, err := svc.GenerateRecipes(context.Background(), "u1", "", recipe.GenerationRequest{
		Cuisine: "Italian",
	})
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Please provide ingredients or at least 2 filter options", appErr.Message)
}

func TestGenerateRecipesRequiresFourIngredients(t *testing.T) {
	svc, _ := newTestService(t, &fakeAI{completion: "[]"})

	_, _, _, err := svc.GenerateRecipes(context.Background(), "u1", "", recipe.GenerationRequest{
		Ingredients: []string{"chicken", "rice"},
	})
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Please provide at least 4 ingredients", appErr.Message)
}

func TestGenerateRecipesSummary(t *testing.T) {
	ai := &fakeAI{completion: `[
		{"title": "Chicken Stir Fry", "ingredients": ["chicken"], "instructions": ["Cook."]},
		{"title": "Fried Rice", "ingredients": ["rice"], "instructions": ["Fry."]}
	]`}
	svc, _ := newTestService(t, ai)

	recipes, summary, sessionID, err := svc.GenerateRecipes(context.Background(), "u1", "", recipe.GenerationRequest{
		Ingredients: []string{"chicken", "rice", "soy sauce", "ginger", "scallions"},
		Cuisine:     "Chinese",
	})
	require.NoError(t, err)
	require.Len(t, recipes, 2)
	assert.Equal(t,
		"I've generated 2 personalized recipes for you using your ingredients: chicken, rice, soy sauce and 2 more in the Chinese style",
		summary)
	assert.NotEmpty(t, sessionID)
}

func TestGenerateRecipesReturnsMintedSessionID(t *testing.T) {
	ai := &fakeAI{completion: `[{"title": "Fried Rice", "ingredients": ["rice"], "instructions": ["Fry."]}]`}
	svc, store := newTestService(t, ai)
	ctx := context.Background()

	_, _, sessionID, err := svc.GenerateRecipes(ctx, "u1", "", recipe.GenerationRequest{
		Ingredients: []string{"rice", "egg", "soy sauce", "scallions"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, sessionID)

	// The recorded exchange is reachable under the returned id.
	conv := store.LoadConversation(ctx, sessionID)
	require.NotNil(t, conv)
	assert.Equal(t, "u1", conv.UserID)
	require.NotEmpty(t, conv.Messages)
	assert.Equal(t, "recipe_generation", conv.Messages[0].ContextType)

	// A client-supplied id is kept as is.
	_, _, sameID, err := svc.GenerateRecipes(ctx, "u1", "s-fixed", recipe.GenerationRequest{
		Ingredients: []string{"rice", "egg", "soy sauce", "scallions"},
	})
	require.NoError(t, err)
	assert.Equal(t, "s-fixed", sameID)
}

func TestGenerateRecipesFourFiltersNoIngredients(t *testing.T) {
	ai := &fakeAI{completion: `[{"title": "Quick Salad", "ingredients": ["greens"], "instructions": ["Toss."]}]`}
	svc, _ := newTestService(t, ai)

	recipes, summary, _, err := svc.GenerateRecipes(context.Background(), "u1", "", recipe.GenerationRequest{
		Cuisine:   "Mediterranean",
		TimeLimit: "15 minutes",
	})
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.True(t, strings.HasPrefix(summary, "I've generated 1 personalized recipes"))
}

func TestUpdateAndGetPreferences(t *testing.T) {
	svc, _ := newTestService(t, &fakeAI{completion: "ok"})
	ctx := context.Background()

	err := svc.UpdatePreferences(ctx, "u1", map[string]any{
		"skill_level":          "advanced",
		"cuisine_preferences":  []any{"thai", "italian"},
		"dietary_restrictions": []any{"vegetarian"},
	})
	require.NoError(t, err)

	profile, err := svc.GetContextProfile(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, ctxdomain.SkillAdvanced, profile.SkillLevel)
	assert.Contains(t, profile.CuisinePreferences, "thai")
}

func TestUpdatePreferencesRejectsEmpty(t *testing.T) {
	svc, _ := newTestService(t, &fakeAI{completion: "ok"})
	assert.Error(t, svc.UpdatePreferences(context.Background(), "u1", nil))
}

func TestUpdateSessionAppliesKnownKeys(t *testing.T) {
	svc, store := newTestService(t, &fakeAI{completion: "ok"})
	ctx := context.Background()

	err := svc.UpdateSession(ctx, "sess-1", "u1", map[string]any{
		"current_ingredients":  []any{"eggs", "flour"},
		"current_cuisine":      "french",
		"current_serving_size": float64(4),
		"cooking_mode":         "guided",
		"unknown_key":          "ignored",
	})
	require.NoError(t, err)

	session := store.LoadSession(ctx, "sess-1")
	require.NotNil(t, session)
	assert.Equal(t, []string{"eggs", "flour"}, session.CurrentIngredients)
	assert.Equal(t, "french", session.CurrentCuisine)
	assert.Equal(t, 4, session.CurrentServingSize)
	assert.Equal(t, "guided", session.CookingMode)
}

func TestUpdateSessionRequiresID(t *testing.T) {
	svc, _ := newTestService(t, &fakeAI{completion: "ok"})
	assert.Error(t, svc.UpdateSession(context.Background(), "", "u1", nil))
}

func TestSearchKnowledgeRequiresQuery(t *testing.T) {
	svc, _ := newTestService(t, &fakeAI{completion: "ok"})
	_, err := svc.SearchKnowledge(context.Background(), "u1", "  ", inbound.SearchFilters{})
	assert.Error(t, err)
}

func TestSearchKnowledgeReturnsHits(t *testing.T) {
	svc, _ := newTestService(t, &fakeAI{completion: "ok"})

	hits, err := svc.SearchKnowledge(context.Background(), "u1", "knife skills", inbound.SearchFilters{Limit: 5})
	require.NoError(t, err)
	require.NotEmpty(t, hits)
	assert.NotEmpty(t, hits[0].Title)
	assert.Greater(t, hits[0].Score, 0.0)
}

func TestCookingTipsCapsAtThree(t *testing.T) {
	svc, _ := newTestService(t, &fakeAI{completion: "ok"})

	tips, err := svc.CookingTips(context.Background(), "u1", "", "")
	require.NoError(t, err)
	assert.LessOrEqual(t, len(tips), 3)
	assert.NotEmpty(t, tips)
}

func TestKnowledgeStats(t *testing.T) {
	svc, _ := newTestService(t, &fakeAI{completion: "ok"})

	stats := svc.KnowledgeStats(context.Background())
	total, ok := stats["total_items"].(int)
	require.True(t, ok)
	assert.Greater(t, total, 0)
}

func TestCleanupReturnsSweptCount(t *testing.T) {
	svc, store := newTestService(t, &fakeAI{completion: "ok"})
	ctx := context.Background()

	store.SaveSession(ctx, ctxdomain.NewSessionContext("old-session", "u1"))
	count := svc.Cleanup(ctx)
	assert.GreaterOrEqual(t, count, 0)
}
