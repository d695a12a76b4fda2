// Package dynamic manages externally sourced culinary content: trending
// topics, seasonal produce, and recipes fetched from public APIs. The
// content is persisted in its own SQLite database and merged into the
// retrieval corpus on every refresh.
package dynamic

import (
	"time"

	"github.com/culinamind/backend/internal/domain/knowledge"
	gormmodels "github.com/culinamind/backend/internal/infrastructure/persistence/gorm"
)

// Content categories for dynamic items.
const (
	CategoryExternalRecipes = "external_recipes"
	CategoryTrendingTopics  = "trending_topics"
	CategorySeasonal        = "seasonal_ingredients"
)

// ContentRecord is the GORM model for one dynamic knowledge item.
type ContentRecord struct {
	ID           string                 `gorm:"type:varchar(255);primaryKey"`
	Title        string                 `gorm:"type:varchar(255);not null"`
	Content      string                 `gorm:"type:text"`
	Category     string                 `gorm:"type:varchar(50);index"`
	Difficulty   string                 `gorm:"type:varchar(20);index"`
	Cuisine      string                 `gorm:"type:varchar(50);index"`
	Keywords     gormmodels.StringSlice `gorm:"type:json"`
	Source       string                 `gorm:"type:varchar(50)"`
	ExternalURL  string                 `gorm:"type:text"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastAccessed time.Time
	AccessCount  int `gorm:"default:0"`
}

// TableName overrides the default table name
func (ContentRecord) TableName() string {
	return "dynamic_content"
}

// RecordFromItem builds a storable record from a knowledge item.
func RecordFromItem(item knowledge.Item, source string) ContentRecord {
	return ContentRecord{
		ID:         item.ID,
		Title:      item.Title,
		Content:    item.Content,
		Category:   item.Category,
		Difficulty: item.Difficulty,
		Cuisine:    item.Cuisine,
		Keywords:   gormmodels.StringSlice(item.Keywords),
		Source:     source,
	}
}

// Item converts the record back into a knowledge item.
func (r ContentRecord) Item() knowledge.Item {
	return knowledge.Item{
		ID:         r.ID,
		Title:      r.Title,
		Content:    r.Content,
		Category:   r.Category,
		Difficulty: r.Difficulty,
		Cuisine:    r.Cuisine,
		Keywords:   []string(r.Keywords),
	}
}
