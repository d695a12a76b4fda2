package prompt

import (
	stdctx "context"
	"testing"

	"github.com/culinamind/backend/internal/contextstore"
	ctxdomain "github.com/culinamind/backend/internal/domain/context"
	"github.com/culinamind/backend/internal/infrastructure/persistence/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestEngineer(t *testing.T) (*Engineer, *contextstore.Store) {
	t.Helper()
	cache := memory.NewCacheRepository()
	t.Cleanup(cache.Close)
	store, err := contextstore.NewStore(testContextConfig(t), cache, zap.NewNop())
	require.NoError(t, err)
	return NewEngineer(store, zap.NewNop()), store
}

func TestBuildPromptIncludesContextSections(t *testing.T) {
	eng, store := newTestEngineer(t)
	ctx := stdctx.Background()

	profile := ctxdomain.NewUserProfile("u1")
	profile.DietaryRestrictions = []string{"vegetarian"}
	require.True(t, store.SaveProfile(ctx, profile))

	require.True(t, store.AppendMessage(ctx, "s1", "u1", ctxdomain.Message{
		UserMessage: "what's a good pasta dish",
		AIResponse:  "try a simple aglio e olio",
		ContextType: "recipe_generation",
	}))

	out, promptType := eng.BuildPrompt(ctx, "u1", "s1", "How do I make pancakes?", nil)
	assert.Equal(t, TypeRecipeGeneration, promptType)
	assert.Contains(t, out, "USER PROFILE:")
	assert.Contains(t, out, "Dietary Restrictions: vegetarian")
	assert.Contains(t, out, "RECENT CONVERSATION:")
	assert.Contains(t, out, "CURRENT QUERY: How do I make pancakes?")
}

func TestBuildPromptTypeSpecificContext(t *testing.T) {
	eng, _ := newTestEngineer(t)

	out, promptType := eng.BuildPrompt(stdctx.Background(), "u2", "s2", "quick dinner recipe please", map[string]any{
		"ingredients": []string{"chicken", "rice"},
		"cuisine":     "thai",
	})
	assert.Equal(t, TypeRecipeGeneration, promptType)
	assert.Contains(t, out, "ADDITIONAL CONTEXT:")
	assert.Contains(t, out, "Available Ingredients: chicken, rice")
	assert.Contains(t, out, "Preferred Cuisine: thai")
}

func TestConversationStarterPersonalization(t *testing.T) {
	eng, store := newTestEngineer(t)
	ctx := stdctx.Background()

	// First-time user gets the default beginner greeting.
	out := eng.ConversationStarter(ctx, "new-user", "s0")
	assert.Contains(t, out, "Hello! I'm CulinaMind")
	assert.Contains(t, out, "cooking basics")
	assert.Contains(t, out, "What would you like to cook today?")

	session := ctxdomain.NewSessionContext("s3", "u3")
	session.CurrentIngredients = []string{"eggs", "flour", "milk", "sugar"}
	require.True(t, store.SaveSession(ctx, session))

	out = eng.ConversationStarter(ctx, "u3", "s3")
	// Only the first three ingredients are previewed.
	assert.Contains(t, out, "eggs, flour, milk")
	assert.NotContains(t, out, "sugar")
}
