package prompt

import (
	stdctx "context"
	"strings"
	"testing"
	"time"

	"github.com/culinamind/backend/internal/contextstore"
	ctxdomain "github.com/culinamind/backend/internal/domain/context"
	"github.com/culinamind/backend/internal/domain/knowledge"
	"github.com/culinamind/backend/internal/infrastructure/config"
	"github.com/culinamind/backend/internal/infrastructure/persistence/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testContextConfig(t *testing.T) config.ContextConfig {
	t.Helper()
	return config.ContextConfig{
		StoragePath:     t.TempDir(),
		CacheTTL:        time.Minute,
		MaxMessages:     50,
		MaxTokens:       3000,
		MaxConversation: 10,
		RelevanceFloor:  0.3,
	}
}

func newTestOptimizer(t *testing.T) (*Optimizer, *contextstore.Store) {
	t.Helper()
	cache := memory.NewCacheRepository()
	t.Cleanup(cache.Close)
	cfg := testContextConfig(t)
	store, err := contextstore.NewStore(cfg, cache, zap.NewNop())
	require.NoError(t, err)
	return NewOptimizer(cfg, store, zap.NewNop()), store
}

func TestFilterRelevantDropsUnrelatedMessages(t *testing.T) {
	opt, _ := newTestOptimizer(t)

	messages := []ctxdomain.Message{
		{UserMessage: "how do I sear a steak", AIResponse: "use a hot cast iron pan for steak"},
		{UserMessage: "what wine pairs with fish", AIResponse: "a crisp white works well"},
		{UserMessage: "my steak turned out tough", AIResponse: "rest the steak and slice against the grain"},
	}

	relevant := opt.FilterRelevant(messages, "steak searing tips")
	require.Len(t, relevant, 2)
	for _, msg := range relevant {
		assert.Contains(t, msg.UserMessage+msg.AIResponse, "steak")
	}
}

func TestFilterRelevantCapsAtMaxConversation(t *testing.T) {
	opt, _ := newTestOptimizer(t)

	var messages []ctxdomain.Message
	for i := 0; i < 20; i++ {
		messages = append(messages, ctxdomain.Message{
			UserMessage: "pasta sauce question",
			AIResponse:  "pasta sauce answer",
		})
	}
	relevant := opt.FilterRelevant(messages, "pasta sauce")
	assert.Len(t, relevant, 10)
}

func TestTruncateToBudgetWithinLimitUnchanged(t *testing.T) {
	opt, _ := newTestOptimizer(t)
	context := "Skill Level: beginner"
	assert.Equal(t, context, opt.TruncateToBudget(context, "base prompt", "query"))
}

func TestTruncateToBudgetRespectsLimit(t *testing.T) {
	opt, _ := newTestOptimizer(t)

	long := strings.Repeat("word ", 10000)
	out := opt.TruncateToBudget(long, "base", "query")
	require.NotEmpty(t, out)
	assert.True(t, EstimateTokens(out) <= float64(opt.maxTokens))
	assert.True(t, strings.HasSuffix(out, "..."))
}

func TestTruncateToBudgetPrefersSentenceBoundary(t *testing.T) {
	opt, _ := newTestOptimizer(t)
	opt.maxTokens = 200

	var b strings.Builder
	for i := 0; i < 60; i++ {
		b.WriteString("This is a complete sentence about cooking rice. ")
	}
	out := opt.TruncateToBudget(b.String(), "base", "query")
	require.NotEmpty(t, out)
	assert.True(t, strings.HasSuffix(out, "."), "expected sentence-boundary truncation, got %q", out[len(out)-10:])
}

func TestEssentialProfileContextFiltersByQuery(t *testing.T) {
	profile := ctxdomain.NewUserProfile("u")
	profile.SkillLevel = ctxdomain.SkillIntermediate
	profile.DietaryRestrictions = []string{"vegan"}
	profile.CookingEquipment = []string{"wok", "oven"}
	profile.IngredientDislikes = []string{"cilantro"}

	// Skill level always appears; dietary only when mentioned.
	out := EssentialProfileContext(profile, "what should I bake today")
	assert.Contains(t, out, "Skill Level: intermediate")
	assert.Contains(t, out, "Available Equipment")
	assert.NotContains(t, out, "Dietary Restrictions")

	out = EssentialProfileContext(profile, "vegan substitute for cream")
	assert.Contains(t, out, "Dietary Restrictions: vegan")
	assert.Contains(t, out, "Ingredients to Avoid: cilantro")
}

func TestOptimizeKnowledgeDiversity(t *testing.T) {
	opt, _ := newTestOptimizer(t)

	items := []ScoredItem{
		{0.9, knowledge.Item{ID: "a1", Category: "baking"}},
		{0.8, knowledge.Item{ID: "a2", Category: "baking"}},
		{0.7, knowledge.Item{ID: "a3", Category: "baking"}},
		{0.6, knowledge.Item{ID: "b1", Category: "techniques"}},
		{0.5, knowledge.Item{ID: "b2", Category: "techniques"}},
		{0.4, knowledge.Item{ID: "c1", Category: "food_safety"}},
	}

	out := opt.OptimizeKnowledge(items)
	require.NotEmpty(t, out)
	assert.LessOrEqual(t, len(out), 5)

	perCategory := map[string]int{}
	for _, item := range out {
		perCategory[item.Category]++
	}
	for category, n := range perCategory {
		assert.LessOrEqual(t, n, 2, "category %s over-represented", category)
	}
}

func TestOptimizeKnowledgeFallsBackToTopThree(t *testing.T) {
	opt, _ := newTestOptimizer(t)

	items := []ScoredItem{
		{0.2, knowledge.Item{ID: "a"}},
		{0.1, knowledge.Item{ID: "b"}},
		{0.05, knowledge.Item{ID: "c"}},
		{0.01, knowledge.Item{ID: "d"}},
	}
	out := opt.OptimizeKnowledge(items)
	require.Len(t, out, 3)
	assert.Equal(t, "a", out[0].ID)
}

func TestOptimizeContextEndToEnd(t *testing.T) {
	opt, store := newTestOptimizer(t)
	ctx := stdctx.Background()

	profile := ctxdomain.NewUserProfile("u1")
	profile.SkillLevel = ctxdomain.SkillAdvanced
	require.True(t, store.SaveProfile(ctx, profile))

	session := ctxdomain.NewSessionContext("s1", "u1")
	session.CurrentCuisine = "thai"
	require.True(t, store.SaveSession(ctx, session))

	out := opt.OptimizeContext(ctx, "u1", "s1", "thai curry recipe", "You are a cooking assistant.")
	assert.Contains(t, out, "CONTEXT INFORMATION:")
	assert.Contains(t, out, "Skill Level: advanced")
	assert.Contains(t, out, "Current Cuisine: thai")
	assert.Contains(t, out, "CURRENT QUERY: thai curry recipe")
}
