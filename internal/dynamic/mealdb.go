package dynamic

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/culinamind/backend/internal/domain/knowledge"
	apperrors "github.com/culinamind/backend/pkg/errors"
	"go.uber.org/zap"
)

const defaultMealDBBaseURL = "https://www.themealdb.com/api/json/v1/1"

// defaultMealQueries are searched on each refresh to keep a rotating set
// of external recipes in the corpus.
var defaultMealQueries = []string{"chicken", "pasta", "curry", "soup"}

// MealDBClient fetches recipes from TheMealDB public API.
type MealDBClient struct {
	baseURL    string
	queries    []string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewMealDBClient creates a TheMealDB client with the default query set.
func NewMealDBClient(logger *zap.Logger) *MealDBClient {
	return &MealDBClient{
		baseURL:    defaultMealDBBaseURL,
		queries:    defaultMealQueries,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

type mealDBResponse struct {
	Meals []mealDBMeal `json:"meals"`
}

type mealDBMeal struct {
	ID           string `json:"idMeal"`
	Name         string `json:"strMeal"`
	Category     string `json:"strCategory"`
	Area         string `json:"strArea"`
	Instructions string `json:"strInstructions"`
	Tags         string `json:"strTags"`
	SourceURL    string `json:"strSource"`
}

// Fetch searches the configured queries and maps the results to
// knowledge items. Failed queries are skipped so one outage does not
// lose the rest of the batch.
func (c *MealDBClient) Fetch(ctx context.Context) ([]knowledge.Item, error) {
	var items []knowledge.Item
	seen := make(map[string]bool)

	for _, query := range c.queries {
		meals, err := c.Search(ctx, query)
		if err != nil {
			c.logger.Warn("mealdb query failed",
				zap.String("query", query), zap.Error(err))
			continue
		}
		for _, item := range meals {
			if !seen[item.ID] {
				seen[item.ID] = true
				items = append(items, item)
			}
		}
	}

	c.logger.Info("fetched external recipes", zap.Int("items", len(items)))
	return items, nil
}

// Search queries TheMealDB by meal name.
func (c *MealDBClient) Search(ctx context.Context, query string) ([]knowledge.Item, error) {
	endpoint := fmt.Sprintf("%s/search.php?s=%s", c.baseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperrors.NewExternalServiceError("themealdb", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewExternalServiceError("themealdb", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewExternalServiceError("themealdb",
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewExternalServiceError("themealdb", err)
	}

	var parsed mealDBResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, apperrors.NewExternalServiceError("themealdb", err)
	}

	items := make([]knowledge.Item, 0, len(parsed.Meals))
	for _, meal := range parsed.Meals {
		if meal.ID == "" || meal.Name == "" {
			continue
		}
		items = append(items, mealToItem(meal))
	}
	return items, nil
}

func mealToItem(meal mealDBMeal) knowledge.Item {
	cuisine := strings.ToLower(meal.Area)
	if cuisine == "" {
		cuisine = "international"
	}

	keywords := []string{"recipe"}
	if meal.Category != "" {
		keywords = append(keywords, strings.ToLower(meal.Category))
	}
	for _, tag := range strings.Split(meal.Tags, ",") {
		if tag = strings.TrimSpace(strings.ToLower(tag)); tag != "" {
			keywords = append(keywords, tag)
		}
	}

	return knowledge.Item{
		ID:         "mealdb_" + meal.ID,
		Title:      meal.Name,
		Content:    meal.Instructions,
		Category:   CategoryExternalRecipes,
		Difficulty: difficultyFromInstructions(meal.Instructions),
		Cuisine:    cuisine,
		Keywords:   keywords,
	}
}

// difficultyFromInstructions is a rough proxy: longer instructions mean
// a more involved recipe.
func difficultyFromInstructions(instructions string) string {
	words := len(strings.Fields(instructions))
	switch {
	case words <= 150:
		return "beginner"
	case words <= 350:
		return "intermediate"
	default:
		return "advanced"
	}
}
