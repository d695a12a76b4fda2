package prompt

import "strings"

var (
	recipeKeywords = []string{
		"recipe", "cook", "make", "prepare", "ingredients", "dish", "meal",
		"breakfast", "lunch", "dinner", "snack", "appetizer", "dessert",
	}
	cookingKeywords = []string{
		"how to", "technique", "method", "troubleshoot", "problem", "help",
		"why", "what if", "fix", "correct", "adjust",
	}
	substitutionKeywords = []string{
		"substitute", "replace", "alternative", "instead of", "don't have",
		"allergic", "intolerant", "can't eat",
	}
	techniqueKeywords = []string{
		"explain", "what is", "define", "technique", "method", "science",
		"why does", "how does", "process",
	}
)

// Classify picks a prompt type from the query text. Categories are
// checked in a fixed priority order and the first match wins, so every
// query maps to exactly one type.
func Classify(query string) Type {
	q := strings.ToLower(query)
	switch {
	case containsAny(q, recipeKeywords):
		return TypeRecipeGeneration
	case containsAny(q, cookingKeywords):
		return TypeCookingAssistance
	case containsAny(q, substitutionKeywords):
		return TypeIngredientSubstitution
	case containsAny(q, techniqueKeywords):
		return TypeTechniqueExplanation
	default:
		return TypeGeneralQuery
	}
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
