// Package rag implements retrieval-augmented chat: knowledge retrieval
// over the embedded culinary corpus with profile-aware re-ranking,
// fused with the prompt engineering and context layers.
package rag

import (
	stdctx "context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode"

	ctxdomain "github.com/culinamind/backend/internal/domain/context"
	"github.com/culinamind/backend/internal/domain/knowledge"
	"github.com/culinamind/backend/internal/infrastructure/config"
	"github.com/culinamind/backend/internal/ports/outbound"
	"github.com/culinamind/backend/internal/prompt"
	"go.uber.org/zap"
)

// apologyResponse is returned whenever any stage of a chat turn fails.
const apologyResponse = "I'm having trouble processing your request right now. Please try again in a moment."

// conversationalInstruction is appended to every chat system prompt.
const conversationalInstruction = `

IMPORTANT: You are a conversational AI assistant. Use the conversation history provided above to understand the context and avoid repeating questions.

CONVERSATIONAL APPROACH:
- ALWAYS review the conversation history before responding
- Build upon previous exchanges instead of starting over
- If the user has already provided information, acknowledge it and move forward
- Only ask clarifying questions about NEW information you need
- Avoid asking questions that have already been answered in the conversation
- Reference previous parts of the conversation when relevant
- Be curious and show genuine interest in helping them achieve their cooking goals

Remember: A good conversation builds upon what has already been discussed, not by repeating the same questions.`

// Service answers chat queries with retrieved knowledge and manages the
// knowledge corpus.
type Service struct {
	ai        outbound.AIService
	index     outbound.VectorIndex
	store     outbound.ContextStore
	engineer  *prompt.Engineer
	optimizer *prompt.Optimizer

	aiCfg config.AIConfig
	boost config.KnowledgeConfig

	mu     sync.RWMutex
	items  []knowledge.Item
	byID   map[string]knowledge.Item
	logger *zap.Logger
}

// NewService creates a RAG service seeded with the built-in corpus.
func NewService(
	ai outbound.AIService,
	index outbound.VectorIndex,
	store outbound.ContextStore,
	engineer *prompt.Engineer,
	optimizer *prompt.Optimizer,
	aiCfg config.AIConfig,
	boost config.KnowledgeConfig,
	logger *zap.Logger,
) *Service {
	s := &Service{
		ai:        ai,
		index:     index,
		store:     store,
		engineer:  engineer,
		optimizer: optimizer,
		aiCfg:     aiCfg,
		boost:     boost,
		byID:      make(map[string]knowledge.Item),
		logger:    logger,
	}
	s.addItems(knowledge.Corpus())
	return s
}

// EnsureIndexed embeds and indexes corpus items missing from the vector
// index. Embedding failures leave the keyword fallback in charge.
func (s *Service) EnsureIndexed(ctx stdctx.Context) {
	count, err := s.index.Count(ctx)
	if err == nil && count >= len(s.Items()) {
		s.logger.Info("vector index up to date", zap.Int("items", count))
		return
	}

	indexed := 0
	for _, item := range s.Items() {
		embedding, err := s.ai.Embed(ctx, item.EmbeddingText())
		if err != nil {
			s.logger.Warn("embedding failed, vector search degraded to keyword fallback",
				zap.String("item_id", item.ID), zap.Error(err))
			return
		}
		if err := s.index.Upsert(ctx, item.ID, embedding); err != nil {
			s.logger.Error("index upsert failed", zap.String("item_id", item.ID), zap.Error(err))
			return
		}
		indexed++
	}
	s.logger.Info("knowledge corpus indexed", zap.Int("items", indexed))
}

// AddItems merges new knowledge items into the corpus and indexes them.
// Existing IDs are replaced.
func (s *Service) AddItems(ctx stdctx.Context, items []knowledge.Item) int {
	added := s.addItems(items)
	for _, item := range items {
		embedding, err := s.ai.Embed(ctx, item.EmbeddingText())
		if err != nil {
			s.logger.Warn("embedding failed for new item", zap.String("item_id", item.ID), zap.Error(err))
			continue
		}
		if err := s.index.Upsert(ctx, item.ID, embedding); err != nil {
			s.logger.Error("index upsert failed for new item", zap.String("item_id", item.ID), zap.Error(err))
		}
	}
	return added
}

func (s *Service) addItems(items []knowledge.Item) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	added := 0
	for _, item := range items {
		if _, exists := s.byID[item.ID]; !exists {
			s.items = append(s.items, item)
			added++
		} else {
			for i := range s.items {
				if s.items[i].ID == item.ID {
					s.items[i] = item
					break
				}
			}
		}
		s.byID[item.ID] = item
	}
	return added
}

// Items returns a snapshot of the corpus.
func (s *Service) Items() []knowledge.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]knowledge.Item, len(s.items))
	copy(out, s.items)
	return out
}

// GenerateContextualResponse runs one chat turn: retrieve knowledge,
// assemble the context-enhanced prompt, call the model and record the
// exchange. Retrieved knowledge passes through the optimizer so the
// prompt stays diverse and inside the token budget. Any failure yields
// the fixed apology message.
func (s *Service) GenerateContextualResponse(ctx stdctx.Context, userID, sessionID, query string, extra map[string]any) (string, prompt.Type) {
	profile := s.store.LoadProfile(ctx, userID)

	relevant := s.SemanticSearch(ctx, query, 5, profile)

	enhanced, promptType := s.engineer.BuildPrompt(ctx, userID, sessionID, query, extra)
	if diverse := s.optimizer.OptimizeKnowledge(relevant); len(diverse) > 0 {
		if block := s.optimizer.TruncateToBudget(buildKnowledgeContext(diverse), enhanced, query); block != "" {
			enhanced += "\n\nRELEVANT KNOWLEDGE:\n" + block
		}
	}
	enhanced += conversationalInstruction

	response, err := s.ai.Complete(ctx, outbound.CompletionRequest{
		Model:       s.aiCfg.ChatModel,
		System:      enhanced,
		Prompt:      query,
		Temperature: s.aiCfg.ChatTemperature,
		MaxTokens:   s.aiCfg.ChatMaxTokens,
	})
	if err != nil {
		s.logger.Error("chat completion failed", zap.Error(err))
		return apologyResponse, promptType
	}
	response = strings.TrimSpace(response)

	s.store.AppendMessage(ctx, sessionID, userID, ctxdomain.Message{
		UserMessage: query,
		AIResponse:  response,
		ContextType: string(promptType),
	})
	return response, promptType
}

// ConversationStarter returns a personalized greeting.
func (s *Service) ConversationStarter(ctx stdctx.Context, userID, sessionID string) string {
	return s.engineer.ConversationStarter(ctx, userID, sessionID)
}

// SemanticSearch retrieves the top knowledge items for a query with
// profile-aware re-ranking. Vector search errors degrade to the keyword
// fallback, never to an empty answer.
func (s *Service) SemanticSearch(ctx stdctx.Context, query string, topK int, profile *ctxdomain.UserProfile) []prompt.ScoredItem {
	if topK <= 0 {
		topK = 5
	}

	embedding, err := s.ai.Embed(ctx, query)
	if err != nil {
		s.logger.Warn("query embedding failed, using keyword search", zap.Error(err))
		return s.KeywordSearch(query, topK, profile)
	}

	// Over-fetch so re-ranking has room to promote profile matches.
	neighbors, err := s.index.Search(ctx, embedding, topK*2)
	if err != nil || len(neighbors) == 0 {
		if err != nil {
			s.logger.Warn("vector search failed, using keyword search", zap.Error(err))
		}
		return s.KeywordSearch(query, topK, profile)
	}

	s.mu.RLock()
	results := make([]prompt.ScoredItem, 0, len(neighbors))
	for _, n := range neighbors {
		item, ok := s.byID[n.ID]
		if !ok {
			continue
		}
		results = append(results, prompt.ScoredItem{
			Score: AdjustScoreForProfile(n.Similarity, item, profile, s.boost),
			Item:  item,
		})
	}
	s.mu.RUnlock()

	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if len(results) > topK {
		results = results[:topK]
	}
	return results
}

// KeywordSearch is the vector-free fallback: keyword intersections count
// double, plain text word hits count single, then profile boosts apply.
func (s *Service) KeywordSearch(query string, topK int, profile *ctxdomain.UserProfile) []prompt.ScoredItem {
	queryWords := wordSet(query)

	var scored []prompt.ScoredItem
	for _, item := range s.Items() {
		itemKeywords := make(map[string]bool, len(item.Keywords))
		for _, kw := range item.Keywords {
			itemKeywords[kw] = true
		}
		itemText := strings.ToLower(item.Title + " " + item.Content)

		keywordMatches := 0
		textMatches := 0
		for w := range queryWords {
			if itemKeywords[w] {
				keywordMatches++
			}
			if strings.Contains(itemText, w) {
				textMatches++
			}
		}
		base := float64(keywordMatches*2 + textMatches)
		if base > 0 {
			scored = append(scored, prompt.ScoredItem{
				Score: AdjustScoreForProfile(base, item, profile, s.boost),
				Item:  item,
			})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	if len(scored) > topK {
		scored = scored[:topK]
	}
	return scored
}

// AdjustScoreForProfile applies multiplicative boosts for profile
// matches. A nil profile leaves the score untouched.
func AdjustScoreForProfile(score float64, item knowledge.Item, profile *ctxdomain.UserProfile, boost config.KnowledgeConfig) float64 {
	if profile == nil {
		return score
	}
	adjusted := score

	if profile.SkillLevel == ctxdomain.SkillBeginner && item.Difficulty == ctxdomain.SkillBeginner {
		adjusted *= boost.SkillMatchBoost
	} else if profile.SkillLevel == ctxdomain.SkillAdvanced && item.Difficulty == ctxdomain.SkillAdvanced {
		adjusted *= boost.AdvancedBoost
	}

	for _, restriction := range profile.DietaryRestrictions {
		if item.Dietary[strings.ToLower(restriction)] {
			adjusted *= boost.DietaryBoost
		}
	}

	for _, cuisine := range profile.CuisinePreferences {
		if cuisine == item.Cuisine {
			adjusted *= boost.CuisineBoost
			break
		}
	}

	if len(profile.IngredientPreferences) > 0 {
		prefs := make(map[string]bool, len(profile.IngredientPreferences))
		for _, ing := range profile.IngredientPreferences {
			prefs[strings.ToLower(ing)] = true
		}
		for _, kw := range item.Keywords {
			if prefs[kw] {
				adjusted *= boost.IngredientBoost
				break
			}
		}
	}
	return adjusted
}

// Recommendations returns knowledge items matched to the user's profile.
// Without an explicit query, cuisine preferences steer a generic one.
func (s *Service) Recommendations(ctx stdctx.Context, userID, query string) []knowledge.Item {
	profile := s.store.LoadProfile(ctx, userID)
	if profile == nil {
		return nil
	}

	searchQuery := query
	if searchQuery == "" {
		searchQuery = "cooking tips and techniques"
	}
	if len(profile.CuisinePreferences) > 0 {
		searchQuery += " " + strings.Join(profile.CuisinePreferences, ", ")
	}

	results := s.SemanticSearch(ctx, searchQuery, 10, profile)
	items := make([]knowledge.Item, len(results))
	for i, r := range results {
		items[i] = r.Item
	}
	return items
}

// CookingTips returns up to three tip texts for a category/difficulty,
// personalized through the caller's profile.
func (s *Service) CookingTips(ctx stdctx.Context, userID, category, difficulty string) []string {
	profile := s.store.LoadProfile(ctx, userID)

	query := "cooking tips"
	switch {
	case category != "" && difficulty != "":
		query = category + " " + difficulty
	case category != "":
		query = category
	}

	results := s.SemanticSearch(ctx, query, 3, profile)
	tips := make([]string, len(results))
	for i, r := range results {
		tips[i] = r.Item.Content
	}
	return tips
}

// SearchKnowledge performs a personalized search with optional post-hoc
// category and difficulty filters.
func (s *Service) SearchKnowledge(ctx stdctx.Context, userID, query, category, difficulty string, limit int) []prompt.ScoredItem {
	if limit <= 0 {
		limit = 10
	}
	if limit > 20 {
		limit = 20
	}

	profile := s.store.LoadProfile(ctx, userID)
	results := s.SemanticSearch(ctx, query, limit, profile)

	if category == "" && difficulty == "" {
		return results
	}
	filtered := results[:0]
	for _, r := range results {
		if category != "" && r.Item.Category != category {
			continue
		}
		if difficulty != "" && r.Item.Difficulty != difficulty {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}

// Stats summarizes the corpus and the index health.
func (s *Service) Stats(ctx stdctx.Context) map[string]any {
	items := s.Items()
	stats := knowledge.CorpusStats(items)

	vectorAvailable := false
	if count, err := s.index.Count(ctx); err == nil && count > 0 {
		vectorAvailable = true
	}

	return map[string]any{
		"total_items":             stats.TotalItems,
		"categories":              stats.Categories,
		"difficulties":            stats.Difficulties,
		"cuisines":                stats.Cuisines,
		"vector_search_available": vectorAvailable,
	}
}

func buildKnowledgeContext(items []knowledge.Item) string {
	var parts []string
	for _, item := range items {
		part := fmt.Sprintf("**%s** (%s, %s level)\n%s", item.Title, item.Category, item.Difficulty, item.Content)
		if item.CookingTime != "" {
			part += "\nCooking Time: " + item.CookingTime
		}
		if len(item.Equipment) > 0 {
			part += "\nEquipment: " + strings.Join(item.Equipment, ", ")
		}
		if tags := item.Dietary.Tags(); len(tags) > 0 {
			part += "\nDietary: " + strings.Join(tags, ", ")
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, "\n\n")
}

func capped(values []string, max int) []string {
	if len(values) <= max {
		return values
	}
	return values[:max]
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
