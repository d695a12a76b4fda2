package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		query string
		want  Type
	}{
		{"How do I make pancakes?", TypeRecipeGeneration},
		{"Give me a quick dinner recipe", TypeRecipeGeneration},
		{"What can I substitute for eggs?", TypeIngredientSubstitution},
		{"I'm allergic to peanuts, what are my options?", TypeIngredientSubstitution},
		{"My sauce keeps splitting, what if I lower the heat?", TypeCookingAssistance},
		{"Why is my bread dense?", TypeCookingAssistance},
		{"Explain the Maillard reaction", TypeTechniqueExplanation},
		{"Tell me about Italian food culture", TypeGeneralQuery},
		{"", TypeGeneralQuery},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.query))
		})
	}
}

func TestClassifyRecipeWinsOverSubstitution(t *testing.T) {
	// "recipe" and "substitute" both appear; recipe keywords are
	// checked first so the query routes to recipe generation.
	got := Classify("Can you give me a recipe where I substitute butter?")
	assert.Equal(t, TypeRecipeGeneration, got)
}

func TestTemplateFallsBackToGeneral(t *testing.T) {
	assert.Equal(t, Template(TypeGeneralQuery), Template(Type("bogus")))
	assert.Contains(t, Template(TypeRecipeGeneration), "CulinaMind")
}
