package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/culinamind/backend/internal/domain/recipe"
	"github.com/culinamind/backend/internal/infrastructure/http/middleware"
	"github.com/culinamind/backend/internal/infrastructure/monitoring"
	"github.com/culinamind/backend/internal/ports/inbound"
	apperrors "github.com/culinamind/backend/pkg/errors"
	"go.uber.org/zap"
)

const chatApology = "I apologize, but I'm having trouble processing your request right now. Please try again in a moment."

// ChatHandler serves the AI assistant endpoints.
type ChatHandler struct {
	chat    inbound.ChatService
	metrics *monitoring.MetricsCollector
	logger  *zap.Logger
}

// NewChatHandler creates the chat handler.
func NewChatHandler(chat inbound.ChatService, metrics *monitoring.MetricsCollector, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{chat: chat, metrics: metrics, logger: logger.Named("chat-handler")}
}

func userKey(r *http.Request) (string, bool) {
	return middleware.UserKeyFromContext(r.Context())
}

// failure writes the chatbot-style error body. Chat-shaped endpoints
// also carry the apology so clients can render it directly.
func failure(w http.ResponseWriter, err error, withApology bool) {
	status := http.StatusInternalServerError
	message := "Failed to process message"
	if e, ok := err.(*apperrors.AppError); ok {
		status = e.StatusCode()
		message = e.Message
	}

	body := map[string]any{"success": false, "error": message}
	if withApology {
		body["response"] = chatApology
	}
	writeJSON(w, status, body)
}

// Chat handles POST /chat.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	uid, ok := userKey(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "error": "Authentication required"})
		return
	}

	var req struct {
		Message   string         `json:"message"`
		SessionID string         `json:"session_id"`
		Context   map[string]any `json:"context"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid request body"})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Message is required"})
		return
	}

	result, err := h.chat.Chat(r.Context(), inbound.ChatCommand{
		UserID:    uid,
		SessionID: req.SessionID,
		Message:   req.Message,
		Context:   req.Context,
	})
	if err != nil {
		failure(w, err, true)
		return
	}

	h.metrics.ChatMessage(result.ContextType)
	writeJSON(w, http.StatusOK, map[string]any{
		"success":          true,
		"response":         result.Response,
		"user_message":     req.Message,
		"session_id":       result.SessionID,
		"context_type":     result.ContextType,
		"context_enhanced": true,
	})
}

// StartConversation handles POST /start-conversation.
func (h *ChatHandler) StartConversation(w http.ResponseWriter, r *http.Request) {
	uid, ok := userKey(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "error": "Authentication required"})
		return
	}

	result, err := h.chat.StartConversation(r.Context(), uid)
	if err != nil {
		failure(w, err, false)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":             true,
		"greeting":            result.Response,
		"session_id":          result.SessionID,
		"context_initialized": true,
	})
}

// UpdatePreferences handles POST /update-preferences.
func (h *ChatHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	uid, ok := userKey(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "error": "Authentication required"})
		return
	}

	var req struct {
		Preferences map[string]any `json:"preferences"`
	}
	if err := decodeJSON(r, &req); err != nil || len(req.Preferences) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Preferences are required"})
		return
	}

	if err := h.chat.UpdatePreferences(r.Context(), uid, req.Preferences); err != nil {
		failure(w, err, false)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"message":     "Preferences updated successfully",
		"preferences": req.Preferences,
	})
}

// GetProfile handles GET /get-profile.
func (h *ChatHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	uid, ok := userKey(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "error": "Authentication required"})
		return
	}

	profile, err := h.chat.GetContextProfile(r.Context(), uid)
	if err != nil {
		failure(w, err, false)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"profile": profile,
	})
}

// Recommendations handles GET /recommendations.
func (h *ChatHandler) Recommendations(w http.ResponseWriter, r *http.Request) {
	uid, ok := userKey(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "error": "Authentication required"})
		return
	}

	hits, err := h.chat.Recommendations(r.Context(), uid, r.URL.Query().Get("query"))
	if err != nil {
		failure(w, err, false)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":         true,
		"recommendations": hits,
		"count":           len(hits),
	})
}

// UpdateSession handles POST /update-session.
func (h *ChatHandler) UpdateSession(w http.ResponseWriter, r *http.Request) {
	uid, ok := userKey(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "error": "Authentication required"})
		return
	}

	var req struct {
		SessionID   string         `json:"session_id"`
		SessionData map[string]any `json:"session_data"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid request body"})
		return
	}
	if req.SessionID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Session ID is required"})
		return
	}

	if err := h.chat.UpdateSession(r.Context(), req.SessionID, uid, req.SessionData); err != nil {
		failure(w, err, false)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"message":    "Session updated successfully",
		"session_id": req.SessionID,
	})
}

// CookingTips handles GET /tips.
func (h *ChatHandler) CookingTips(w http.ResponseWriter, r *http.Request) {
	uid, ok := userKey(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "error": "Authentication required"})
		return
	}

	category := r.URL.Query().Get("category")
	difficulty := r.URL.Query().Get("difficulty")
	tips, err := h.chat.CookingTips(r.Context(), uid, category, difficulty)
	if err != nil {
		failure(w, err, false)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"tips":         tips,
		"filters":      map[string]any{"category": category, "difficulty": difficulty},
		"personalized": true,
	})
}

// ModifyRecipe handles POST /modify-recipe.
func (h *ChatHandler) ModifyRecipe(w http.ResponseWriter, r *http.Request) {
	uid, ok := userKey(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "error": "Authentication required"})
		return
	}

	var req struct {
		Recipe    string `json:"recipe"`
		Request   string `json:"request"`
		SessionID string `json:"session_id"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid request body"})
		return
	}
	if strings.TrimSpace(req.Recipe) == "" || strings.TrimSpace(req.Request) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Recipe and modification request are required"})
		return
	}

	result, err := h.chat.ModifyRecipe(r.Context(), uid, req.SessionID, req.Recipe, req.Request)
	if err != nil {
		failure(w, err, false)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":              true,
		"suggestions":          result.Response,
		"original_recipe":      req.Recipe,
		"modification_request": req.Request,
		"session_id":           result.SessionID,
	})
}

// SearchKnowledge handles GET /search.
func (h *ChatHandler) SearchKnowledge(w http.ResponseWriter, r *http.Request) {
	uid, ok := userKey(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "error": "Authentication required"})
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("query"))
	if query == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Search query is required"})
		return
	}

	filters := inbound.SearchFilters{
		Category:   r.URL.Query().Get("category"),
		Difficulty: r.URL.Query().Get("difficulty"),
	}
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		filters.Limit = limit
	}

	hits, err := h.chat.SearchKnowledge(r.Context(), uid, query, filters)
	if err != nil {
		failure(w, err, false)
		return
	}
	h.metrics.KnowledgeSearch()
	writeJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"results":       hits,
		"query":         query,
		"total_results": len(hits),
		"filters":       map[string]any{"category": filters.Category, "difficulty": filters.Difficulty},
		"personalized":  true,
	})
}

// Categories handles GET /categories.
func (h *ChatHandler) Categories(w http.ResponseWriter, r *http.Request) {
	stats := h.chat.KnowledgeStats(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"categories":   stats["categories"],
		"difficulties": stats["difficulties"],
		"cuisines":     stats["cuisines"],
		"total_items":  stats["total_items"],
	})
}

// Health handles GET /health. Unauthenticated so load balancers can
// probe it.
func (h *ChatHandler) Health(w http.ResponseWriter, r *http.Request) {
	stats := h.chat.KnowledgeStats(r.Context())

	vectorSearch := "unavailable"
	if available, _ := stats["vector_search_available"].(bool); available {
		vectorSearch = "operational"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":            true,
		"status":             "healthy",
		"rag_service":        "operational",
		"vector_search":      vectorSearch,
		"context_management": "operational",
		"knowledge_base": map[string]any{
			"total_items":      stats["total_items"],
			"context_enhanced": true,
		},
	})
}

// Cleanup handles POST /cleanup.
func (h *ChatHandler) Cleanup(w http.ResponseWriter, r *http.Request) {
	count := h.chat.Cleanup(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"message":       "Cleaned up " + strconv.Itoa(count) + " old context files",
		"cleaned_count": count,
	})
}

// GenerateRecipes handles POST /generate-recipes.
func (h *ChatHandler) GenerateRecipes(w http.ResponseWriter, r *http.Request) {
	uid, ok := userKey(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "error": "Authentication required"})
		return
	}

	var req struct {
		SessionID string `json:"session_id"`
		recipe.GenerationRequest
	}
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid request body"})
		return
	}

	recipes, summary, sessionID, err := h.chat.GenerateRecipes(r.Context(), uid, req.SessionID, req.GenerationRequest)
	if err != nil {
		if e, ok := err.(*apperrors.AppError); ok && e.StatusCode() < 500 {
			writeJSON(w, e.StatusCode(), map[string]any{"error": e.Message})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success":  false,
			"error":    "Failed to generate recipes",
			"response": "I apologize, but I'm having trouble generating recipes right now. Please try again in a moment.",
		})
		return
	}

	h.metrics.RecipesGenerated()
	writeJSON(w, http.StatusOK, map[string]any{
		"success":          true,
		"response":         summary,
		"recipes":          recipes,
		"session_id":       sessionID,
		"context_enhanced": true,
		"user_id":          uid,
	})
}

// RecipeSuggestions handles POST /recipe-suggestions.
func (h *ChatHandler) RecipeSuggestions(w http.ResponseWriter, r *http.Request) {
	uid, ok := userKey(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "error": "Authentication required"})
		return
	}

	var req struct {
		SessionID string `json:"session_id"`
		Query     string `json:"query"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid request body"})
		return
	}

	result, hits, err := h.chat.RecipeSuggestions(r.Context(), uid, req.SessionID, req.Query)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success":  false,
			"error":    "Failed to get recipe suggestions",
			"response": "I apologize, but I'm having trouble suggesting recipes right now. Please try again in a moment.",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":          true,
		"response":         result.Response,
		"recommendations":  hits,
		"session_id":       result.SessionID,
		"context_enhanced": true,
	})
}
