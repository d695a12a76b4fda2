// Package chat provides the application layer for the AI cooking
// assistant: conversation, context management, and knowledge retrieval.
package chat

import (
	"context"
	"fmt"
	"strings"

	ctxdomain "github.com/culinamind/backend/internal/domain/context"
	"github.com/culinamind/backend/internal/domain/recipe"
	"github.com/culinamind/backend/internal/infrastructure/config"
	"github.com/culinamind/backend/internal/ports/inbound"
	"github.com/culinamind/backend/internal/ports/outbound"
	"github.com/culinamind/backend/internal/prompt"
	"github.com/culinamind/backend/internal/rag"
	apperrors "github.com/culinamind/backend/pkg/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements the chat use cases on top of the RAG engine and
// the context store.
type Service struct {
	rag    *rag.Service
	store  outbound.ContextStore
	ctxCfg config.ContextConfig
	logger *zap.Logger
}

// NewService creates the chat application service.
func NewService(ragService *rag.Service, store outbound.ContextStore, ctxCfg config.ContextConfig, logger *zap.Logger) inbound.ChatService {
	return &Service{
		rag:    ragService,
		store:  store,
		ctxCfg: ctxCfg,
		logger: logger.Named("chat-service"),
	}
}

// Chat answers one user message. A missing session id starts a new
// session.
func (s *Service) Chat(ctx context.Context, cmd inbound.ChatCommand) (*inbound.ChatResult, error) {
	if strings.TrimSpace(cmd.Message) == "" {
		return nil, apperrors.NewValidationError("message is required")
	}
	sessionID := cmd.SessionID
	if sessionID == "" {
		sessionID = uuid.New().String()
	}
	s.ensureSession(ctx, sessionID, cmd.UserID)

	response, promptType := s.rag.GenerateContextualResponse(ctx, cmd.UserID, sessionID, cmd.Message, cmd.Context)
	return &inbound.ChatResult{
		Response:    response,
		ContextType: string(promptType),
		SessionID:   sessionID,
	}, nil
}

// StartConversation opens a fresh session and returns a personalized
// greeting.
func (s *Service) StartConversation(ctx context.Context, userID string) (*inbound.ChatResult, error) {
	sessionID := uuid.New().String()
	s.store.SaveSession(ctx, ctxdomain.NewSessionContext(sessionID, userID))

	greeting := s.rag.ConversationStarter(ctx, userID, sessionID)
	return &inbound.ChatResult{
		Response:    greeting,
		ContextType: string(prompt.TypeGeneralQuery),
		SessionID:   sessionID,
	}, nil
}

// ModifyRecipe asks for changes to a recipe the user is working with.
func (s *Service) ModifyRecipe(ctx context.Context, userID, sessionID, recipeText, request string) (*inbound.ChatResult, error) {
	if recipeText == "" || request == "" {
		return nil, apperrors.NewValidationError("recipe and request are required")
	}
	if sessionID == "" {
		sessionID = uuid.New().String()
	}
	s.ensureSession(ctx, sessionID, userID)

	message := "Modify this recipe: " + request
	response, promptType := s.rag.GenerateContextualResponse(ctx, userID, sessionID, message, map[string]any{
		"current_recipe": recipeText,
	})
	return &inbound.ChatResult{
		Response:    response,
		ContextType: string(promptType),
		SessionID:   sessionID,
	}, nil
}

// RecipeSuggestions answers an open-ended "what should I cook" query and
// returns matching knowledge alongside.
func (s *Service) RecipeSuggestions(ctx context.Context, userID, sessionID, query string) (*inbound.ChatResult, []inbound.KnowledgeHit, error) {
	if query == "" {
		query = "What should I cook today?"
	}
	if sessionID == "" {
		sessionID = uuid.New().String()
	}
	s.ensureSession(ctx, sessionID, userID)

	response, promptType := s.rag.GenerateContextualResponse(ctx, userID, sessionID, query, nil)
	hits, err := s.Recommendations(ctx, userID, query)
	if err != nil {
		return nil, nil, err
	}

	result := &inbound.ChatResult{
		Response:    response,
		ContextType: string(promptType),
		SessionID:   sessionID,
	}
	return result, hits, nil
}

// GenerateRecipes runs the context-aware generation path and returns the
// recipes, a user-facing summary line and the effective session id.
// Clients that sent no session id get a fresh one back so follow-up
// turns reach the recorded context.
func (s *Service) GenerateRecipes(ctx context.Context, userID, sessionID string, req recipe.GenerationRequest) ([]recipe.GeneratedRecipe, string, string, error) {
	filters := 0
	if req.Cuisine != "" {
		filters++
	}
	if len(req.DietaryRestrictions) > 0 {
		filters++
	}
	if req.TimeLimit != "" {
		filters++
	}
	if req.ServingSize != "" {
		filters++
	}
	if len(req.Ingredients) == 0 && filters < 2 {
		return nil, "", "", apperrors.NewBadRequestError("Please provide ingredients or at least 2 filter options")
	}
	if len(req.Ingredients) > 0 && len(req.Ingredients) < 4 {
		return nil, "", "", apperrors.NewBadRequestError("Please provide at least 4 ingredients")
	}

	if sessionID == "" {
		sessionID = uuid.New().String()
	}
	s.ensureSession(ctx, sessionID, userID)

	recipes := s.rag.GenerateContextualRecipes(ctx, userID, sessionID, req)
	if len(recipes) == 0 {
		return nil, "", "", apperrors.New(apperrors.CodeAIUnavailable, "Recipe generation failed", "")
	}
	return recipes, buildSummary(len(recipes), req), sessionID, nil
}

// UpdatePreferences merges preference changes into the user's profile.
func (s *Service) UpdatePreferences(ctx context.Context, userID string, prefs map[string]any) error {
	if len(prefs) == 0 {
		return apperrors.NewValidationError("preferences are required")
	}
	if !s.store.UpdateProfilePreferences(ctx, userID, prefs) {
		return apperrors.NewInternalError("failed to update preferences")
	}
	return nil
}

// GetContextProfile returns the user's preference profile, synthesizing
// defaults for a first-time user.
func (s *Service) GetContextProfile(ctx context.Context, userID string) (*ctxdomain.UserProfile, error) {
	profile := s.store.LoadProfile(ctx, userID)
	if profile == nil {
		return nil, apperrors.NewInternalError("failed to load profile")
	}
	return profile, nil
}

// UpdateSession applies a partial update to session state.
func (s *Service) UpdateSession(ctx context.Context, sessionID, userID string, updates map[string]any) error {
	if sessionID == "" {
		return apperrors.NewValidationError("session_id is required")
	}

	session := s.store.LoadSession(ctx, sessionID)
	if session == nil {
		session = ctxdomain.NewSessionContext(sessionID, userID)
	}
	applySessionUpdates(session, updates)

	if !s.store.SaveSession(ctx, session) {
		return apperrors.NewInternalError("failed to save session")
	}
	return nil
}

// Cleanup sweeps expired sessions and conversations, returning the
// number of files removed.
func (s *Service) Cleanup(ctx context.Context) int {
	return s.store.Sweep(ctx, s.ctxCfg.MaxAge)
}

// Recommendations returns knowledge matched to the user's profile.
func (s *Service) Recommendations(ctx context.Context, userID, query string) ([]inbound.KnowledgeHit, error) {
	items := s.rag.Recommendations(ctx, userID, query)
	hits := make([]inbound.KnowledgeHit, len(items))
	for i, item := range items {
		hits[i] = inbound.KnowledgeHit{
			ID:         item.ID,
			Title:      item.Title,
			Content:    item.Content,
			Category:   item.Category,
			Difficulty: item.Difficulty,
			Cuisine:    item.Cuisine,
			Keywords:   item.Keywords,
		}
	}
	return hits, nil
}

// CookingTips returns up to three personalized tips.
func (s *Service) CookingTips(ctx context.Context, userID, category, difficulty string) ([]string, error) {
	return s.rag.CookingTips(ctx, userID, category, difficulty), nil
}

// SearchKnowledge searches the knowledge base with optional filters.
func (s *Service) SearchKnowledge(ctx context.Context, userID, query string, filters inbound.SearchFilters) ([]inbound.KnowledgeHit, error) {
	if strings.TrimSpace(query) == "" {
		return nil, apperrors.NewValidationError("query is required")
	}

	results := s.rag.SearchKnowledge(ctx, userID, query, filters.Category, filters.Difficulty, filters.Limit)
	hits := make([]inbound.KnowledgeHit, len(results))
	for i, r := range results {
		hits[i] = inbound.KnowledgeHit{
			ID:         r.Item.ID,
			Title:      r.Item.Title,
			Content:    r.Item.Content,
			Category:   r.Item.Category,
			Difficulty: r.Item.Difficulty,
			Cuisine:    r.Item.Cuisine,
			Keywords:   r.Item.Keywords,
			Score:      r.Score,
		}
	}
	return hits, nil
}

// KnowledgeStats summarizes the corpus composition.
func (s *Service) KnowledgeStats(ctx context.Context) map[string]any {
	return s.rag.Stats(ctx)
}

// ensureSession creates session state on first contact so later context
// assembly has something to read.
func (s *Service) ensureSession(ctx context.Context, sessionID, userID string) {
	if s.store.LoadSession(ctx, sessionID) == nil {
		s.store.SaveSession(ctx, ctxdomain.NewSessionContext(sessionID, userID))
	}
}

func buildSummary(count int, req recipe.GenerationRequest) string {
	preview := req.Ingredients
	extra := 0
	if len(preview) > 3 {
		extra = len(preview) - 3
		preview = preview[:3]
	}

	summary := fmt.Sprintf("I've generated %d personalized recipes for you using your ingredients: %s",
		count, strings.Join(preview, ", "))
	if extra > 0 {
		summary += fmt.Sprintf(" and %d more", extra)
	}
	if req.Cuisine != "" {
		summary += fmt.Sprintf(" in the %s style", req.Cuisine)
	}
	return summary
}

func applySessionUpdates(session *ctxdomain.SessionContext, updates map[string]any) {
	for key, value := range updates {
		switch key {
		case "current_ingredients":
			session.CurrentIngredients = toStrings(value)
		case "current_cuisine":
			if v, ok := value.(string); ok {
				session.CurrentCuisine = v
			}
		case "current_dietary_restrictions":
			session.CurrentDietaryRestrictions = toStrings(value)
		case "current_time_constraint":
			if v, ok := value.(string); ok {
				session.CurrentTimeConstraint = v
			}
		case "current_serving_size":
			switch v := value.(type) {
			case float64:
				session.CurrentServingSize = int(v)
			case int:
				session.CurrentServingSize = v
			}
		case "cooking_mode":
			if v, ok := value.(string); ok {
				session.CookingMode = v
			}
		}
	}
}

func toStrings(value any) []string {
	switch v := value.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
