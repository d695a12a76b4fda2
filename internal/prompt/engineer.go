// Package prompt assembles personalized system prompts: it classifies
// queries, layers in stored user/session/conversation context and trims
// the result to a token budget.
package prompt

import (
	stdctx "context"
	"fmt"
	"strings"

	ctxdomain "github.com/culinamind/backend/internal/domain/context"
	"github.com/culinamind/backend/internal/ports/outbound"
	"go.uber.org/zap"
)

// Engineer builds context-enriched prompts from stored state.
type Engineer struct {
	store  outbound.ContextStore
	logger *zap.Logger
}

// NewEngineer creates a prompt engineer backed by a context store.
func NewEngineer(store outbound.ContextStore, logger *zap.Logger) *Engineer {
	return &Engineer{store: store, logger: logger}
}

// BuildPrompt classifies the query, loads the user's context and returns
// the assembled system prompt together with the chosen type. extra holds
// request-scoped details merged in as type-specific context.
func (e *Engineer) BuildPrompt(ctx stdctx.Context, userID, sessionID, query string, extra map[string]any) (string, Type) {
	promptType := Classify(query)
	base := Template(promptType)

	enhanced := e.buildContextualPrompt(ctx, userID, sessionID, base, query)
	enhanced = addTypeSpecificContext(enhanced, promptType, extra)
	return enhanced, promptType
}

// buildContextualPrompt layers profile, session and conversation
// sections between the base template and the query.
func (e *Engineer) buildContextualPrompt(ctx stdctx.Context, userID, sessionID, base, query string) string {
	var sections []string

	if profile := e.store.LoadProfile(ctx, userID); profile != nil {
		if pc := ProfileContext(profile); pc != "" {
			sections = append(sections, "USER PROFILE:\n"+pc)
		}
	}
	if session := e.store.LoadSession(ctx, sessionID); session != nil {
		if sc := SessionSummary(session); sc != "" {
			sections = append(sections, "CURRENT SESSION:\n"+sc)
		}
	}
	if conv := e.store.LoadConversation(ctx, sessionID); conv != nil && len(conv.Messages) > 0 {
		sections = append(sections, "RECENT CONVERSATION:\n"+conversationHistory(conv))
	}

	if len(sections) == 0 {
		return fmt.Sprintf("%s\n\nCURRENT QUERY: %s", base, query)
	}
	return fmt.Sprintf(`%s

CONTEXT INFORMATION:
%s

CURRENT QUERY: %s

Please use the context information above to provide a personalized and relevant response. Consider the user's preferences, current session details, and conversation history when crafting your response.`,
		base, strings.Join(sections, "\n\n"), query)
}

// ConversationStarter returns a greeting personalized from the user's
// profile and session state.
func (e *Engineer) ConversationStarter(ctx stdctx.Context, userID, sessionID string) string {
	parts := []string{"Hello! I'm CulinaMind, your AI culinary assistant."}

	if profile := e.store.LoadProfile(ctx, userID); profile != nil {
		if greeting := skillGreeting(profile.SkillLevel); greeting != "" {
			parts = append(parts, greeting)
		}
	}
	if session := e.store.LoadSession(ctx, sessionID); session != nil && len(session.CurrentIngredients) > 0 {
		preview := session.CurrentIngredients
		if len(preview) > 3 {
			preview = preview[:3]
		}
		parts = append(parts, fmt.Sprintf("I see you have %s available. Would you like me to suggest some recipes?", strings.Join(preview, ", ")))
	}

	parts = append(parts, "What would you like to cook today?")
	return strings.Join(parts, " ")
}

func skillGreeting(level string) string {
	switch level {
	case ctxdomain.SkillBeginner:
		return "I'm here to help you learn cooking basics and build confidence in the kitchen."
	case ctxdomain.SkillIntermediate:
		return "I'm excited to help you expand your cooking skills and try new techniques."
	case ctxdomain.SkillAdvanced:
		return "I'm ready to help you master advanced techniques and explore complex culinary concepts."
	default:
		return ""
	}
}

// ProfileContext renders the non-empty profile fields as labeled lines.
func ProfileContext(p *ctxdomain.UserProfile) string {
	var parts []string
	if p.SkillLevel != "" {
		parts = append(parts, "Skill Level: "+p.SkillLevel)
	}
	if len(p.DietaryRestrictions) > 0 {
		parts = append(parts, "Dietary Restrictions: "+strings.Join(p.DietaryRestrictions, ", "))
	}
	if len(p.CuisinePreferences) > 0 {
		parts = append(parts, "Preferred Cuisines: "+strings.Join(p.CuisinePreferences, ", "))
	}
	if len(p.CookingEquipment) > 0 {
		parts = append(parts, "Available Equipment: "+strings.Join(p.CookingEquipment, ", "))
	}
	if len(p.IngredientPreferences) > 0 {
		parts = append(parts, "Preferred Ingredients: "+strings.Join(p.IngredientPreferences, ", "))
	}
	if len(p.IngredientDislikes) > 0 {
		parts = append(parts, "Ingredients to Avoid: "+strings.Join(p.IngredientDislikes, ", "))
	}
	if len(p.HealthGoals) > 0 {
		parts = append(parts, "Health Goals: "+strings.Join(p.HealthGoals, ", "))
	}
	return strings.Join(parts, "\n")
}

// SessionSummary renders the non-empty session fields as labeled lines.
func SessionSummary(s *ctxdomain.SessionContext) string {
	var parts []string
	if len(s.CurrentIngredients) > 0 {
		parts = append(parts, "Current Ingredients: "+strings.Join(s.CurrentIngredients, ", "))
	}
	if s.CurrentCuisine != "" {
		parts = append(parts, "Current Cuisine: "+s.CurrentCuisine)
	}
	if len(s.CurrentDietaryRestrictions) > 0 {
		parts = append(parts, "Current Dietary Restrictions: "+strings.Join(s.CurrentDietaryRestrictions, ", "))
	}
	if s.CurrentTimeConstraint != "" {
		parts = append(parts, "Time Constraint: "+s.CurrentTimeConstraint)
	}
	if s.CurrentServingSize > 0 {
		parts = append(parts, fmt.Sprintf("Serving Size: %d", s.CurrentServingSize))
	}
	if s.CookingMode != "" {
		parts = append(parts, "Cooking Mode: "+s.CookingMode)
	}
	return strings.Join(parts, "\n")
}

func conversationHistory(conv *ctxdomain.ConversationContext) string {
	recent := conv.Recent(10)
	divider := strings.Repeat("=", 50)

	parts := []string{"CONVERSATION HISTORY:", divider}
	for i, msg := range recent {
		parts = append(parts,
			fmt.Sprintf("Exchange %d:", i+1),
			"User: "+msg.UserMessage,
			"AI: "+msg.AIResponse,
			"")
	}
	parts = append(parts, divider,
		"IMPORTANT: Use the conversation history above to understand the context and avoid repeating questions. Build upon previous exchanges to provide more helpful responses.")
	return strings.Join(parts, "\n")
}

func addTypeSpecificContext(base string, t Type, extra map[string]any) string {
	if len(extra) == 0 {
		return base
	}

	var lines []string
	add := func(label, key string) {
		if v := stringValue(extra[key]); v != "" {
			lines = append(lines, label+": "+v)
		}
	}
	addList := func(label, key string) {
		if v, ok := toStrings(extra[key]); ok && len(v) > 0 {
			lines = append(lines, label+": "+strings.Join(v, ", "))
		}
	}

	switch t {
	case TypeRecipeGeneration:
		addList("Available Ingredients", "ingredients")
		add("Preferred Cuisine", "cuisine")
		addList("Dietary Restrictions", "dietary_restrictions")
		add("Time Constraint", "time_limit")
		add("Serving Size", "serving_size")
		add("User Skill Level", "skill_level")
	case TypeCookingAssistance:
		add("Current Recipe", "current_recipe")
		add("Cooking Stage", "cooking_stage")
		addList("Available Equipment", "equipment_available")
		add("Problem", "problem_description")
	case TypeIngredientSubstitution:
		add("Original Ingredient", "original_ingredient")
		add("Reason for Substitution", "substitution_reason")
		add("Recipe Context", "recipe_context")
	case TypeTechniqueExplanation:
		add("Technique", "technique_name")
		add("User Skill Level", "skill_level")
		add("Specific Question", "specific_question")
	}

	if len(lines) == 0 {
		return base
	}
	return base + "\n\nADDITIONAL CONTEXT:\n" + strings.Join(lines, "\n\n")
}

func stringValue(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case int:
		return fmt.Sprintf("%d", s)
	case float64:
		return fmt.Sprintf("%g", s)
	default:
		return ""
	}
}

func toStrings(v any) ([]string, bool) {
	switch list := v.(type) {
	case []string:
		return list, true
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}
