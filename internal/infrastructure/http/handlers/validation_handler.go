package handlers

import (
	"net/http"
	"strings"

	"github.com/culinamind/backend/internal/infrastructure/http/middleware"
	"github.com/culinamind/backend/internal/ports/outbound"
	"github.com/culinamind/backend/internal/validation"
	"go.uber.org/zap"
)

const maxValidationEntries = 10

// ValidationHandler serves the preference-entry validation endpoints.
type ValidationHandler struct {
	validator *validation.Validator
	logger    *zap.Logger
}

// NewValidationHandler creates the validation handler.
func NewValidationHandler(validator *validation.Validator, logger *zap.Logger) *ValidationHandler {
	return &ValidationHandler{validator: validator, logger: logger.Named("validation-handler")}
}

type validationEntry struct {
	Input    string `json:"input"`
	Category string `json:"category"`
}

// ValidateEntry handles POST /validate-entry.
func (h *ValidationHandler) ValidateEntry(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.UserIDFromContext(r.Context()); !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "error": "Authentication required"})
		return
	}

	var req validationEntry
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "Invalid request body"})
		return
	}
	req.Input = strings.TrimSpace(req.Input)
	req.Category = strings.TrimSpace(req.Category)

	if req.Input == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "Input text is required"})
		return
	}
	if req.Category == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "Category is required"})
		return
	}
	if !validation.ValidCategory(req.Category) {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "Invalid category. Must be one of: dietary, cuisine, equipment, health",
		})
		return
	}

	result := h.validator.Validate(r.Context(), req.Input, req.Category)
	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"validation": result,
	})
}

// ValidateEntries handles POST /validate-entries. Entries with missing
// or invalid fields get an inline invalid verdict instead of failing
// the batch.
func (h *ValidationHandler) ValidateEntries(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.UserIDFromContext(r.Context()); !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "error": "Authentication required"})
		return
	}

	var req struct {
		Entries []validationEntry `json:"entries"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "Invalid request body"})
		return
	}
	if len(req.Entries) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "Entries array is required"})
		return
	}
	if len(req.Entries) > maxValidationEntries {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "Maximum 10 entries allowed per request"})
		return
	}

	type entryResult struct {
		Input      string                   `json:"input"`
		Category   string                   `json:"category"`
		Validation outbound.EntryValidation `json:"validation"`
	}
	results := make([]entryResult, 0, len(req.Entries))
	for _, entry := range req.Entries {
		input := strings.TrimSpace(entry.Input)
		category := strings.TrimSpace(entry.Category)

		switch {
		case input == "" || category == "":
			results = append(results, entryResult{
				Input:    input,
				Category: category,
				Validation: outbound.EntryValidation{
					Reason:      "Missing input or category",
					Sources:     []outbound.ValidationSource{},
					Suggestions: []string{},
				},
			})
		case !validation.ValidCategory(category):
			results = append(results, entryResult{
				Input:    input,
				Category: category,
				Validation: outbound.EntryValidation{
					Reason:      "Invalid category",
					Sources:     []outbound.ValidationSource{},
					Suggestions: []string{},
				},
			})
		default:
			results = append(results, entryResult{
				Input:      input,
				Category:   category,
				Validation: h.validator.Validate(r.Context(), input, category),
			})
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"results": results,
	})
}
