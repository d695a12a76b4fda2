package gorm

import (
	"context"
	"errors"

	"github.com/culinamind/backend/internal/domain/recipe"
	"github.com/culinamind/backend/internal/ports/outbound"
	apperrors "github.com/culinamind/backend/pkg/errors"
	"gorm.io/gorm"
)

// FavoriteRepository implements the favorite recipe repository using GORM
type FavoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository creates a new favorite recipe repository
func NewFavoriteRepository(db *gorm.DB) outbound.FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Create saves a favorite recipe for a user
func (r *FavoriteRepository) Create(ctx context.Context, fav *recipe.Favorite) error {
	model := FavoriteToModel(fav)

	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		return apperrors.NewDatabaseError("create favorite", result.Error)
	}

	fav.ID = model.ID
	return nil
}

// FindByUserID returns all favorites owned by a user, newest first
func (r *FavoriteRepository) FindByUserID(ctx context.Context, userID uint) ([]*recipe.Favorite, error) {
	var models []FavoriteRecipeModel

	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models)
	if result.Error != nil {
		return nil, apperrors.NewDatabaseError("list favorites", result.Error)
	}

	favorites := make([]*recipe.Favorite, len(models))
	for i := range models {
		favorites[i] = ModelToFavorite(&models[i])
	}
	return favorites, nil
}

// FindByIDAndUserID returns a favorite only if the user owns it
func (r *FavoriteRepository) FindByIDAndUserID(ctx context.Context, id, userID uint) (*recipe.Favorite, error) {
	var model FavoriteRecipeModel

	result := r.db.WithContext(ctx).First(&model, "id = ? AND user_id = ?", id, userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.CodeRecipeNotFound, "Recipe not found", "")
		}
		return nil, apperrors.NewDatabaseError("find favorite", result.Error)
	}

	return ModelToFavorite(&model), nil
}

// Delete removes a favorite owned by the user
func (r *FavoriteRepository) Delete(ctx context.Context, id, userID uint) error {
	result := r.db.WithContext(ctx).
		Delete(&FavoriteRecipeModel{}, "id = ? AND user_id = ?", id, userID)
	if result.Error != nil {
		return apperrors.NewDatabaseError("delete favorite", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.New(apperrors.CodeRecipeNotFound, "Recipe not found", "")
	}
	return nil
}
