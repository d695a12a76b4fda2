package prompt

import (
	stdctx "context"
	"fmt"
	"sort"
	"strings"
	"unicode"

	ctxdomain "github.com/culinamind/backend/internal/domain/context"
	"github.com/culinamind/backend/internal/domain/knowledge"
	"github.com/culinamind/backend/internal/infrastructure/config"
	"github.com/culinamind/backend/internal/ports/outbound"
	"go.uber.org/zap"
)

// tokensPerWord is the rough estimate used in place of a real tokenizer.
const tokensPerWord = 0.75

// promptBuffer is the token headroom reserved beyond base prompt and query.
const promptBuffer = 100

// Optimizer selects and trims context so the assembled prompt stays
// within the model's token budget while keeping the most relevant parts.
type Optimizer struct {
	store           outbound.ContextStore
	maxTokens       int
	maxConversation int
	relevanceFloor  float64
	logger          *zap.Logger
}

// NewOptimizer creates an optimizer from the context configuration.
func NewOptimizer(cfg config.ContextConfig, store outbound.ContextStore, logger *zap.Logger) *Optimizer {
	return &Optimizer{
		store:           store,
		maxTokens:       cfg.MaxTokens,
		maxConversation: cfg.MaxConversation,
		relevanceFloor:  cfg.RelevanceFloor,
		logger:          logger,
	}
}

// OptimizeContext builds a budget-aware prompt: essential profile facts,
// the full session state and only the conversation turns relevant to the
// query, truncated to fit.
func (o *Optimizer) OptimizeContext(ctx stdctx.Context, userID, sessionID, query, basePrompt string) string {
	var sections []string

	if profile := o.store.LoadProfile(ctx, userID); profile != nil {
		if essential := EssentialProfileContext(profile, query); essential != "" {
			sections = append(sections, "USER PROFILE:\n"+essential)
		}
	}
	if session := o.store.LoadSession(ctx, sessionID); session != nil {
		if sc := SessionSummary(session); sc != "" {
			sections = append(sections, "CURRENT SESSION:\n"+sc)
		}
	}
	if conv := o.store.LoadConversation(ctx, sessionID); conv != nil {
		relevant := o.FilterRelevant(conv.Messages, query)
		if len(relevant) > 0 {
			sections = append(sections, "RELEVANT CONVERSATION:\n"+renderExchanges(relevant))
		}
	}

	full := strings.Join(sections, "\n\n")
	trimmed := o.TruncateToBudget(full, basePrompt, query)

	if trimmed == "" {
		return fmt.Sprintf("%s\n\nCURRENT QUERY: %s", basePrompt, query)
	}
	return fmt.Sprintf(`%s

CONTEXT INFORMATION:
%s

CURRENT QUERY: %s

Please use the context information above to provide a personalized and relevant response.`, basePrompt, trimmed, query)
}

// EssentialProfileContext keeps skill level unconditionally and the rest
// of the profile only when the query makes it relevant.
func EssentialProfileContext(p *ctxdomain.UserProfile, query string) string {
	q := strings.ToLower(query)
	var parts []string

	if p.SkillLevel != "" {
		parts = append(parts, "Skill Level: "+p.SkillLevel)
	}
	if anyTermIn(q, p.DietaryRestrictions) {
		parts = append(parts, "Dietary Restrictions: "+strings.Join(p.DietaryRestrictions, ", "))
	}
	if anyTermIn(q, p.CuisinePreferences) {
		parts = append(parts, "Preferred Cuisines: "+strings.Join(p.CuisinePreferences, ", "))
	}
	if len(p.CookingEquipment) > 0 && containsAny(q, []string{"cook", "bake", "fry", "grill", "equipment", "tool"}) {
		parts = append(parts, "Available Equipment: "+strings.Join(capped(p.CookingEquipment, 5), ", "))
	}
	if len(p.IngredientPreferences) > 0 && containsAny(q, []string{"ingredient", "recipe", "cook", "make"}) {
		parts = append(parts, "Preferred Ingredients: "+strings.Join(capped(p.IngredientPreferences, 5), ", "))
	}
	if len(p.IngredientDislikes) > 0 && containsAny(q, []string{"substitute", "replace", "instead", "avoid"}) {
		parts = append(parts, "Ingredients to Avoid: "+strings.Join(capped(p.IngredientDislikes, 3), ", "))
	}
	return strings.Join(parts, "\n")
}

// FilterRelevant scores each exchange by the share of query words it
// contains, drops those at or below the relevance floor and returns up
// to the configured number of messages, most relevant first.
func (o *Optimizer) FilterRelevant(messages []ctxdomain.Message, query string) []ctxdomain.Message {
	if len(messages) == 0 {
		return nil
	}
	queryWords := wordSet(query)

	type scored struct {
		score float64
		msg   ctxdomain.Message
	}
	var hits []scored
	for _, msg := range messages {
		msgWords := wordSet(msg.UserMessage + " " + msg.AIResponse)
		common := 0
		for w := range queryWords {
			if msgWords[w] {
				common++
			}
		}
		denom := len(queryWords)
		if denom == 0 {
			denom = 1
		}
		score := float64(common) / float64(denom)
		if score > o.relevanceFloor {
			hits = append(hits, scored{score, msg})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score > hits[j].score })
	if len(hits) > o.maxConversation {
		hits = hits[:o.maxConversation]
	}
	out := make([]ctxdomain.Message, len(hits))
	for i, h := range hits {
		out[i] = h.msg
	}
	return out
}

// TruncateToBudget trims context to the tokens left after the base
// prompt, query and a fixed buffer. Truncation prefers a sentence
// boundary when one falls late enough, otherwise cuts mid-text with an
// ellipsis. Returns "" when nothing fits.
func (o *Optimizer) TruncateToBudget(context, basePrompt, query string) string {
	available := float64(o.maxTokens) - EstimateTokens(basePrompt) - EstimateTokens(query) - promptBuffer
	if available <= 0 {
		return ""
	}
	if EstimateTokens(context) <= available {
		return context
	}

	targetWords := int(available / tokensPerWord)
	words := strings.Fields(context)
	if len(words) <= targetWords {
		return context
	}
	truncated := strings.Join(words[:targetWords], " ")

	lastEnd := -1
	for _, mark := range []string{".", "!", "?"} {
		if idx := strings.LastIndex(truncated, mark); idx > lastEnd {
			lastEnd = idx
		}
	}
	if float64(lastEnd) > float64(targetWords)*0.7 {
		return truncated[:lastEnd+1]
	}
	return truncated + "..."
}

// EstimateTokens approximates the token count of a text.
func EstimateTokens(s string) float64 {
	return float64(len(strings.Fields(s))) * tokensPerWord
}

// ScoredItem pairs a knowledge item with its retrieval score.
type ScoredItem struct {
	Score float64
	Item  knowledge.Item
}

// OptimizeKnowledge filters retrieved items by the relevance floor
// (falling back to the top three when nothing clears it) and enforces
// category diversity, at most two items per category and five overall.
func (o *Optimizer) OptimizeKnowledge(items []ScoredItem) []knowledge.Item {
	if len(items) == 0 {
		return nil
	}

	var relevant []knowledge.Item
	for _, it := range items {
		if it.Score > o.relevanceFloor {
			relevant = append(relevant, it.Item)
		}
	}
	if len(relevant) == 0 {
		for _, it := range capped(items, 3) {
			relevant = append(relevant, it.Item)
		}
	}

	diverse := ensureDiversity(relevant)
	return capped(diverse, 5)
}

func ensureDiversity(items []knowledge.Item) []knowledge.Item {
	if len(items) <= 3 {
		return items
	}

	const maxPerCategory = 2
	counts := make(map[string]int)
	var diverse []knowledge.Item
	for _, item := range items {
		category := item.Category
		if category == "" {
			category = "general"
		}
		if counts[category] < maxPerCategory {
			counts[category]++
			diverse = append(diverse, item)
		}
	}
	return diverse
}

func renderExchanges(messages []ctxdomain.Message) string {
	var parts []string
	for _, msg := range messages {
		parts = append(parts, "User: "+msg.UserMessage, "AI: "+msg.AIResponse)
	}
	return strings.Join(parts, "\n")
}

func wordSet(s string) map[string]bool {
	words := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

func anyTermIn(q string, terms []string) bool {
	for _, t := range terms {
		if t != "" && strings.Contains(q, strings.ToLower(t)) {
			return true
		}
	}
	return false
}

func capped[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}
