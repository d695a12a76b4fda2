package validation

import (
	"context"
	"testing"

	"github.com/culinamind/backend/internal/infrastructure/ai/anthropic"
	"github.com/culinamind/backend/internal/infrastructure/config"
	"github.com/culinamind/backend/internal/infrastructure/monitoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newLocalValidator builds a validator without Anthropic credentials so
// only the built-in vocabulary path runs.
func newLocalValidator(t *testing.T) *Validator {
	t.Helper()
	ai := anthropic.NewClient(config.AIConfig{}, monitoring.NewMetricsCollector(zap.NewNop()), zap.NewNop())
	return NewValidator(ai, zap.NewNop())
}

func TestValidateKnownTerm(t *testing.T) {
	v := newLocalValidator(t)

	result := v.Validate(context.Background(), "Vegan", CategoryDietary)
	assert.True(t, result.IsValid)
	assert.True(t, result.CategoryMatch)
	assert.InDelta(t, 0.98, result.Confidence, 0.001)
	assert.Contains(t, result.Reason, "Plant-based diet")
	require.NotEmpty(t, result.Sources)
}

func TestValidateWrongCategory(t *testing.T) {
	v := newLocalValidator(t)

	// "wok" is equipment, not a cuisine.
	result := v.Validate(context.Background(), "wok", CategoryCuisine)
	assert.False(t, result.IsValid)
	assert.False(t, result.CategoryMatch)
	assert.InDelta(t, 0.3, result.Confidence, 0.001)
	require.NotEmpty(t, result.Suggestions)
	assert.Contains(t, result.Suggestions[0], "wok")
}

func TestValidateEmptyInput(t *testing.T) {
	v := newLocalValidator(t)

	result := v.Validate(context.Background(), "   ", CategoryDietary)
	assert.False(t, result.IsValid)
	assert.Zero(t, result.Confidence)
	assert.Equal(t, "Empty query provided", result.Reason)
}

func TestValidateUnknownTermFallsBack(t *testing.T) {
	v := newLocalValidator(t)

	result := v.Validate(context.Background(), "zxqwerty", CategoryDietary)
	// Without model credentials the generic reference path accepts with
	// medium confidence and offers category suggestions.
	assert.True(t, result.IsValid)
	assert.InDelta(t, 0.6, result.Confidence, 0.001)
	assert.NotEmpty(t, result.Suggestions)
	assert.LessOrEqual(t, len(result.Suggestions), 5)
}

func TestSuggestTermsPrefersOverlap(t *testing.T) {
	suggestions := suggestTerms("pressure cooker", CategoryEquipment)
	require.NotEmpty(t, suggestions)
	assert.Contains(t, suggestions, "slow cooker")
}

func TestValidCategory(t *testing.T) {
	for _, c := range KnownCategories {
		assert.True(t, ValidCategory(c))
	}
	assert.False(t, ValidCategory("mood"))
}
