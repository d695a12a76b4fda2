// Package knowledge holds the static culinary knowledge corpus used as
// retrieval context for AI responses.
package knowledge

import "sort"

// DietaryInfo tags an item with the dietary patterns it is compatible with.
type DietaryInfo map[string]bool

// Tags returns the dietary patterns the item satisfies, sorted.
func (d DietaryInfo) Tags() []string {
	var tags []string
	for name, ok := range d {
		if ok {
			tags = append(tags, name)
		}
	}
	sort.Strings(tags)
	return tags
}

// Item is a hand-authored culinary fact. Items are immutable at runtime;
// the full set plus its embeddings forms the retrieval corpus.
type Item struct {
	ID         string      `json:"id"`
	Title      string      `json:"title"`
	Content    string      `json:"content"`
	Category   string      `json:"category"`
	Difficulty string      `json:"difficulty"`
	Cuisine    string      `json:"cuisine"`
	Keywords   []string    `json:"keywords"`
	CookingTime string     `json:"cooking_time,omitempty"`
	Equipment  []string    `json:"equipment,omitempty"`
	Dietary    DietaryInfo `json:"dietary_info,omitempty"`
}

// EmbeddingText returns the text embedded for this item: title, content,
// keywords, and categorical metadata concatenated.
func (i Item) EmbeddingText() string {
	text := i.Title + " " + i.Content
	for _, kw := range i.Keywords {
		text += " " + kw
	}
	return text + " " + i.Category + " " + i.Difficulty + " " + i.Cuisine
}

// Stats summarizes the corpus composition.
type Stats struct {
	TotalItems   int            `json:"total_items"`
	Categories   map[string]int `json:"categories"`
	Difficulties map[string]int `json:"difficulties"`
	Cuisines     map[string]int `json:"cuisines"`
}

// CorpusStats computes category, difficulty, and cuisine counts over a
// set of items.
func CorpusStats(items []Item) Stats {
	s := Stats{
		TotalItems:   len(items),
		Categories:   make(map[string]int),
		Difficulties: make(map[string]int),
		Cuisines:     make(map[string]int),
	}
	for _, item := range items {
		s.Categories[item.Category]++
		s.Difficulties[item.Difficulty]++
		s.Cuisines[item.Cuisine]++
	}
	return s
}

// FilterByCategory returns items in a category, optionally restricted to
// one difficulty.
func FilterByCategory(items []Item, category, difficulty string) []Item {
	var out []Item
	for _, item := range items {
		if item.Category != category {
			continue
		}
		if difficulty != "" && item.Difficulty != difficulty {
			continue
		}
		out = append(out, item)
	}
	return out
}
