package dynamic

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/culinamind/backend/internal/domain/knowledge"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// Store persists dynamic content in a dedicated SQLite database, kept
// separate from the primary application database.
type Store struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewStore opens (or creates) the dynamic content database.
func NewStore(path string, logger *zap.Logger) (*Store, error) {
	if path == "" {
		path = ":memory:"
	} else {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create dynamic content directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open dynamic content database: %w", err)
	}
	if err := db.AutoMigrate(&ContentRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate dynamic content database: %w", err)
	}

	return &Store{db: db, logger: logger}, nil
}

// UpsertItems stores or replaces fetched items.
func (s *Store) UpsertItems(ctx context.Context, source string, items []knowledge.Item) error {
	if len(items) == 0 {
		return nil
	}

	records := make([]ContentRecord, len(items))
	for i, item := range items {
		records[i] = RecordFromItem(item, source)
		records[i].UpdatedAt = time.Now()
	}

	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"title", "content", "category", "difficulty", "cuisine",
			"keywords", "source", "external_url", "updated_at",
		}),
	}).Create(&records)
	if result.Error != nil {
		return fmt.Errorf("failed to store dynamic content: %w", result.Error)
	}

	s.logger.Info("dynamic content stored",
		zap.String("source", source), zap.Int("items", len(items)))
	return nil
}

// ByCategory returns stored items in a category, most recently updated
// first.
func (s *Store) ByCategory(ctx context.Context, category string, limit int) ([]knowledge.Item, error) {
	var records []ContentRecord

	q := s.db.WithContext(ctx).
		Where("category = ?", category).
		Order("updated_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to query dynamic content: %w", err)
	}

	s.touch(ctx, records)
	return recordsToItems(records), nil
}

// Search performs a keyword LIKE search over cached content, most
// accessed first.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]knowledge.Item, error) {
	var records []ContentRecord

	pattern := "%" + query + "%"
	q := s.db.WithContext(ctx).
		Where("title LIKE ? OR content LIKE ? OR keywords LIKE ?", pattern, pattern, pattern).
		Order("last_accessed DESC").
		Order("access_count DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to search dynamic content: %w", err)
	}

	s.touch(ctx, records)
	return recordsToItems(records), nil
}

// All returns every stored item, used to rehydrate the retrieval corpus
// on startup.
func (s *Store) All(ctx context.Context) ([]knowledge.Item, error) {
	var records []ContentRecord
	if err := s.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to load dynamic content: %w", err)
	}
	return recordsToItems(records), nil
}

// Summary reports item counts per category.
func (s *Store) Summary(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Category string
		Count    int64
	}
	var rows []row

	err := s.db.WithContext(ctx).
		Model(&ContentRecord{}).
		Select("category, COUNT(*) as count").
		Group("category").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to summarize dynamic content: %w", err)
	}

	summary := make(map[string]int64, len(rows)+1)
	var total int64
	for _, r := range rows {
		summary[r.Category] = r.Count
		total += r.Count
	}
	summary["total"] = total
	return summary, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Store) touch(ctx context.Context, records []ContentRecord) {
	if len(records) == 0 {
		return
	}
	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.ID
	}
	err := s.db.WithContext(ctx).
		Model(&ContentRecord{}).
		Where("id IN ?", ids).
		Updates(map[string]any{
			"last_accessed": time.Now(),
			"access_count":  gorm.Expr("access_count + 1"),
		}).Error
	if err != nil {
		s.logger.Warn("failed to update access stats", zap.Error(err))
	}
}

func recordsToItems(records []ContentRecord) []knowledge.Item {
	items := make([]knowledge.Item, len(records))
	for i, r := range records {
		items[i] = r.Item()
	}
	return items
}
