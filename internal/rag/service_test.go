package rag

import (
	stdctx "context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/culinamind/backend/internal/contextstore"
	ctxdomain "github.com/culinamind/backend/internal/domain/context"
	"github.com/culinamind/backend/internal/domain/knowledge"
	"github.com/culinamind/backend/internal/domain/recipe"
	"github.com/culinamind/backend/internal/infrastructure/config"
	"github.com/culinamind/backend/internal/infrastructure/persistence/memory"
	"github.com/culinamind/backend/internal/infrastructure/vectorstore"
	"github.com/culinamind/backend/internal/ports/outbound"
	"github.com/culinamind/backend/internal/prompt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeAI scripts completion and embedding behavior per test.
type fakeAI struct {
	completion    string
	completeErr   error
	embedErr      error
	lastRequest   outbound.CompletionRequest
	embeddedTexts []string
}

func (f *fakeAI) Complete(_ stdctx.Context, req outbound.CompletionRequest) (string, error) {
	f.lastRequest = req
	if f.completeErr != nil {
		return "", f.completeErr
	}
	return f.completion, nil
}

func (f *fakeAI) Embed(_ stdctx.Context, text string) ([]float32, error) {
	if f.embedErr != nil {
		return nil, f.embedErr
	}
	f.embeddedTexts = append(f.embeddedTexts, text)
	// A degenerate but deterministic embedding keyed on text length.
	return []float32{float32(len(text)), 1, 0, 0}, nil
}

func (f *fakeAI) GenerateImage(_ stdctx.Context, _ string) (string, error) {
	return "https://images.example/test.png", nil
}

func testBoostConfig() config.KnowledgeConfig {
	return config.KnowledgeConfig{
		SkillMatchBoost: 1.2,
		AdvancedBoost:   1.1,
		DietaryBoost:    1.1,
		CuisineBoost:    1.15,
		IngredientBoost: 1.1,
	}
}

func newTestService(t *testing.T, ai *fakeAI) (*Service, *contextstore.Store) {
	t.Helper()

	cache := memory.NewCacheRepository()
	t.Cleanup(cache.Close)

	ctxCfg := config.ContextConfig{
		StoragePath:     t.TempDir(),
		CacheTTL:        time.Minute,
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

	engineer := prompt.NewEngineer(store, zap.NewNop())
	optimizer := prompt.NewOptimizer(ctxCfg, store, zap.NewNop())
	return NewService(ai, index, store, engineer, optimizer, aiCfg, testBoostConfig(), zap.NewNop()), store
}

func TestAdjustScoreForProfileBoosts(t *testing.T) {
	item := knowledge.Item{
		ID:         "k1",
		Difficulty: ctxdomain.SkillBeginner,
		Cuisine:    "italian",
		Keywords:   []string{"tomatoes", "basil"},
		Dietary:    knowledge.DietaryInfo{"vegetarian": true},
	}

	profile := ctxdomain.NewUserProfile("u1")
	profile.SkillLevel = ctxdomain.SkillBeginner
	profile.DietaryRestrictions = []string{"vegetarian"}
	profile.CuisinePreferences = []string{"italian"}
	profile.IngredientPreferences = []string{"Tomatoes"}

	boost := testBoostConfig()
	got := AdjustScoreForProfile(1.0, item, profile, boost)
	want := 1.0 * 1.2 * 1.1 * 1.15 * 1.1
	assert.InDelta(t, want, got, 1e-9)

	assert.Equal(t, 2.0, AdjustScoreForProfile(2.0, item, nil, boost))
}

func TestAdjustScoreForProfileNoMatches(t *testing.T) {
	item := knowledge.Item{Difficulty: ctxdomain.SkillAdvanced, Cuisine: "french"}
	profile := ctxdomain.NewUserProfile("u1")
	profile.SkillLevel = ctxdomain.SkillBeginner

	assert.Equal(t, 1.0, AdjustScoreForProfile(1.0, item, profile, testBoostConfig()))
}

func TestKeywordSearchScoresAndSorts(t *testing.T) {
	svc, _ := newTestService(t, &fakeAI{})

	results := svc.KeywordSearch("how do I sharpen a knife", 5, nil)
	require.NotEmpty(t, results)
	assert.Equal(t, "prep_001", results[0].Item.ID)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}
}

func TestKeywordSearchCapsAtTopK(t *testing.T) {
	svc, _ := newTestService(t, &fakeAI{})

	results := svc.KeywordSearch("cooking", 3, nil)
	assert.LessOrEqual(t, len(results), 3)
}

func TestSemanticSearchFallsBackOnEmbedError(t *testing.T) {
	svc, _ := newTestService(t, &fakeAI{embedErr: errors.New("quota exceeded")})

	results := svc.SemanticSearch(stdctx.Background(), "knife skills", 5, nil)
	require.NotEmpty(t, results)
	assert.Equal(t, "prep_001", results[0].Item.ID)
}

func TestGenerateContextualResponseRecordsExchange(t *testing.T) {
	ai := &fakeAI{completion: "Sear it hot and fast."}
	svc, store := newTestService(t, ai)
	ctx := stdctx.Background()

	response, _ := svc.GenerateContextualResponse(ctx, "u1", "s1", "How do I cook a steak?", nil)
	assert.Equal(t, "Sear it hot and fast.", response)
	assert.Contains(t, ai.lastRequest.System, "IMPORTANT: You are a conversational AI assistant.")
	assert.Equal(t, "gpt-3.5-turbo", ai.lastRequest.Model)
	assert.Equal(t, 500, ai.lastRequest.MaxTokens)

	conv := store.LoadConversation(ctx, "s1")
	require.NotNil(t, conv)
	require.Len(t, conv.Messages, 1)
	assert.Equal(t, "How do I cook a steak?", conv.Messages[0].UserMessage)
}

func TestGenerateContextualResponseKnowledgeDiversity(t *testing.T) {
	ai := &fakeAI{completion: "ok", embedErr: errors.New("offline")}
	svc, _ := newTestService(t, ai)
	ctx := stdctx.Background()

	// Flood one category so raw retrieval alone would fill the prompt
	// with near-duplicates.
	items := make([]knowledge.Item, 6)
	for i := range items {
		items[i] = knowledge.Item{
			ID:       fmt.Sprintf("sear_%03d", i),
			Title:    fmt.Sprintf("Searing Study %d", i),
			Content:  "searing steak in a ripping hot pan",
			Category: "searing",
			Keywords: []string{"searing", "steak"},
		}
	}
	svc.addItems(items)

	_, _ = svc.GenerateContextualResponse(ctx, "u1", "s1", "searing steak", nil)
	require.Contains(t, ai.lastRequest.System, "RELEVANT KNOWLEDGE:")
	assert.LessOrEqual(t, strings.Count(ai.lastRequest.System, "** ("), 5)
	assert.LessOrEqual(t, strings.Count(ai.lastRequest.System, "(searing,"), 2)
}

func TestGenerateContextualResponseApologizesOnFailure(t *testing.T) {
	ai := &fakeAI{completeErr: errors.New("upstream down")}
	svc, store := newTestService(t, ai)
	ctx := stdctx.Background()

	response, _ := svc.GenerateContextualResponse(ctx, "u1", "s1", "hello", nil)
	assert.Equal(t, apologyResponse, response)

	conv := store.LoadConversation(ctx, "s1")
	if conv != nil {
		assert.Empty(t, conv.Messages)
	}
}

func TestSearchKnowledgeFilters(t *testing.T) {
	svc, _ := newTestService(t, &fakeAI{embedErr: errors.New("offline")})
	ctx := stdctx.Background()

	results := svc.SearchKnowledge(ctx, "u1", "baking bread", "baking", "", 10)
	for _, r := range results {
		assert.Equal(t, "baking", r.Item.Category)
	}

	capPlusOne := svc.SearchKnowledge(ctx, "u1", "cooking", "", "", 50)
	assert.LessOrEqual(t, len(capPlusOne), 20)
}

func TestCookingTipsReturnsUpToThree(t *testing.T) {
	svc, _ := newTestService(t, &fakeAI{embedErr: errors.New("offline")})

	tips := svc.CookingTips(stdctx.Background(), "u1", "technique", "beginner")
	assert.LessOrEqual(t, len(tips), 3)
	for _, tip := range tips {
		assert.NotEmpty(t, tip)
	}
}

func TestStatsReflectsCorpus(t *testing.T) {
	svc, _ := newTestService(t, &fakeAI{})

	stats := svc.Stats(stdctx.Background())
	assert.Equal(t, len(svc.Items()), stats["total_items"])
	categories, ok := stats["categories"].(map[string]int)
	require.True(t, ok)
	assert.Greater(t, categories["baking"], 0)
}

func TestAddItemsReplacesExisting(t *testing.T) {
	ai := &fakeAI{}
	svc, _ := newTestService(t, ai)
	before := len(svc.Items())

	svc.AddItems(stdctx.Background(), []knowledge.Item{
		{ID: "baking_001", Title: "Updated", Content: "new content", Category: "baking", Difficulty: "beginner", Cuisine: "universal"},
		{ID: "dynamic_001", Title: "Fresh", Content: "fetched content", Category: "cuisine", Difficulty: "beginner", Cuisine: "thai"},
	})

	items := svc.Items()
	assert.Len(t, items, before+1)
	for _, item := range items {
		if item.ID == "baking_001" {
			assert.Equal(t, "Updated", item.Title)
		}
	}
}

func TestParseRecipesExtractsValidEntries(t *testing.T) {
	response := `Here are your recipes:
[
  {"title": "Garlic Butter Pasta", "ingredients": ["pasta", "garlic"], "instructions": ["boil", "toss"], "estimated_cooking_time": "20 minutes", "nutritional_info": "550 kcal", "time_breakdown": {"1": "5 min", "T": "20 min"}},
  {"note": "not a recipe"},
  {"title": "Tomato Soup", "ingredients": ["tomatoes"], "instructions": ["simmer"], "estimated_cooking_time": "30 minutes", "nutritional_info": "200 kcal", "time_breakdown": {"T": "30 min"}}
]
Enjoy!`

	recipes := parseRecipes(response)
	require.Len(t, recipes, 2)
	assert.Equal(t, "Garlic Butter Pasta", recipes[0].Title)
	assert.Equal(t, "20 min", recipes[0].TimeBreakdown["T"])
	assert.Equal(t, "Tomato Soup", recipes[1].Title)
}

func TestParseRecipesRejectsGarbage(t *testing.T) {
	assert.Empty(t, parseRecipes("I could not generate recipes this time."))
	assert.Empty(t, parseRecipes("[not json at all"))
}

func TestGenerateContextualRecipesStrictMode(t *testing.T) {
	ai := &fakeAI{completion: `[{"title": "Pan Seared Chicken", "ingredients": ["chicken"], "instructions": ["sear"], "estimated_cooking_time": "25 minutes", "nutritional_info": "400 kcal", "time_breakdown": {"T": "25 min"}}]`}
	svc, store := newTestService(t, ai)
	ctx := stdctx.Background()

	recipes := svc.GenerateContextualRecipes(ctx, "u1", "s9", recipe.GenerationRequest{
		Ingredients:       []string{"chicken", "lemon", "garlic", "thyme"},
		Cuisine:           "french",
		TimeLimit:         "30 minutes",
		ServingSize:       "2",
		StrictIngredients: true,
	})
	require.Len(t, recipes, 1)
	assert.Equal(t, "gpt-4", ai.lastRequest.Model)
	assert.Equal(t, 2000, ai.lastRequest.MaxTokens)
	assert.Contains(t, ai.lastRequest.System, "Ingredient Usage: strict mode")
	assert.Contains(t, ai.lastRequest.Prompt, "STRICT MODE")

	conv := store.LoadConversation(ctx, "s9")
	require.NotNil(t, conv)
	require.Len(t, conv.Messages, 1)
	assert.Equal(t, "recipe_generation", conv.Messages[0].ContextType)
}

func TestGenerateContextualRecipesFlexibleMode(t *testing.T) {
	ai := &fakeAI{completion: `[]`}
	svc, _ := newTestService(t, ai)

	recipes := svc.GenerateContextualRecipes(stdctx.Background(), "u1", "s10", recipe.GenerationRequest{
		Ingredients: []string{"rice", "eggs", "scallions", "soy sauce"},
		Cuisine:     "chinese",
		TimeLimit:   "20 minutes",
		ServingSize: "2",
	})
	assert.Empty(t, recipes)
	assert.Contains(t, ai.lastRequest.System, "Ingredient Usage: flexible mode")
	assert.Contains(t, ai.lastRequest.Prompt, "FLEXIBLE MODE")
}

func TestRecommendationsUsesCuisinePreferences(t *testing.T) {
	svc, store := newTestService(t, &fakeAI{embedErr: errors.New("offline")})
	ctx := stdctx.Background()

	profile := ctxdomain.NewUserProfile("u2")
	profile.CuisinePreferences = []string{"italian"}
	require.True(t, store.SaveProfile(ctx, profile))

	items := svc.Recommendations(ctx, "u2", "")
	assert.NotEmpty(t, items)
	assert.LessOrEqual(t, len(items), 10)
}
