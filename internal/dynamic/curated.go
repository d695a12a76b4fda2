package dynamic

import (
	"context"
	"strings"
	"time"

	"github.com/culinamind/backend/internal/domain/knowledge"
)

// trendingTopics is a curated list refreshed with each release; ordering
// reflects trend rank.
var trendingTopics = []string{
	"air fryer recipes",
	"plant-based cooking",
	"sourdough bread",
	"meal prep ideas",
	"instant pot recipes",
	"keto-friendly dishes",
	"Mediterranean diet",
	"Asian fusion cooking",
}

// seasonalProduce maps month number to in-season ingredients.
var seasonalProduce = map[time.Month][]string{
	time.January:   {"citrus fruits", "winter squash", "root vegetables"},
	time.February:  {"citrus fruits", "winter greens", "parsnips"},
	time.March:     {"asparagus", "spring peas", "rhubarb"},
	time.April:     {"asparagus", "spring onions", "fresh herbs"},
	time.May:       {"strawberries", "spring greens", "radishes"},
	time.June:      {"berries", "zucchini", "tomatoes"},
	time.July:      {"berries", "corn", "bell peppers"},
	time.August:    {"tomatoes", "corn", "summer squash"},
	time.September: {"apples", "pumpkins", "winter squash"},
	time.October:   {"apples", "pumpkins", "mushrooms"},
	time.November:  {"winter squash", "root vegetables", "citrus"},
	time.December:  {"citrus fruits", "winter squash", "root vegetables"},
}

// TrendingSource yields the curated trending cooking topics.
type TrendingSource struct{}

// NewTrendingSource creates a trending topics source.
func NewTrendingSource() *TrendingSource {
	return &TrendingSource{}
}

// Fetch returns the current trending topics as knowledge items.
func (s *TrendingSource) Fetch(_ context.Context) ([]knowledge.Item, error) {
	items := make([]knowledge.Item, len(trendingTopics))
	for i, topic := range trendingTopics {
		title := titleCase(topic)
		items[i] = knowledge.Item{
			ID:         "trending_" + strings.ReplaceAll(strings.ToLower(topic), " ", "_"),
			Title:      "Trending: " + title,
			Content:    title + " is currently trending in culinary circles. Great for exploring new cooking styles.",
			Category:   CategoryTrendingTopics,
			Difficulty: "beginner",
			Cuisine:    "international",
			Keywords:   append([]string{"trending", "popular"}, strings.Fields(strings.ToLower(topic))...),
		}
	}
	return items, nil
}

// SeasonalSource yields produce that is in season for the current month.
type SeasonalSource struct {
	now func() time.Time
}

// NewSeasonalSource creates a seasonal produce source.
func NewSeasonalSource() *SeasonalSource {
	return &SeasonalSource{now: time.Now}
}

// Fetch returns this month's seasonal ingredients as knowledge items.
func (s *SeasonalSource) Fetch(_ context.Context) ([]knowledge.Item, error) {
	month := s.now().Month()
	ingredients := seasonalProduce[month]

	items := make([]knowledge.Item, len(ingredients))
	for i, ingredient := range ingredients {
		title := titleCase(ingredient)
		items[i] = knowledge.Item{
			ID:         "seasonal_" + strings.ReplaceAll(ingredient, " ", "_"),
			Title:      "Seasonal: " + title,
			Content:    title + " is in season this month. Perfect for fresh, local cooking.",
			Category:   CategorySeasonal,
			Difficulty: "beginner",
			Cuisine:    "universal",
			Keywords:   []string{"seasonal", "fresh", "local", ingredient},
		}
	}
	return items, nil
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
