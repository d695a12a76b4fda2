package gorm

import (
	"github.com/culinamind/backend/internal/domain/recipe"
	"github.com/culinamind/backend/internal/domain/user"
)

// UserToModel converts a domain user to a GORM model
func UserToModel(u *user.User) *UserModel {
	return &UserModel{
		ID:           u.ID,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		GoogleID:     u.GoogleID,
		FacebookID:   u.FacebookID,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

// ModelToUser converts a GORM model to a domain user
func ModelToUser(m *UserModel) *user.User {
	return &user.User{
		ID:           m.ID,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		GoogleID:     m.GoogleID,
		FacebookID:   m.FacebookID,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// FavoriteToModel converts a domain favorite to a GORM model
func FavoriteToModel(f *recipe.Favorite) *FavoriteRecipeModel {
	return &FavoriteRecipeModel{
		ID:            f.ID,
		UserID:        f.UserID,
		Title:         f.Title,
		Ingredients:   StringSlice(f.Ingredients),
		Instructions:  StringSlice(f.Instructions),
		ImageURL:      f.ImageURL,
		Time:          f.Time,
		Nutritional:   f.Nutritional,
		TimeBreakdown: StringMap(f.TimeBreakdown),
	}
}

// ModelToFavorite converts a GORM model to a domain favorite
func ModelToFavorite(m *FavoriteRecipeModel) *recipe.Favorite {
	return &recipe.Favorite{
		ID:            m.ID,
		UserID:        m.UserID,
		Title:         m.Title,
		Ingredients:   []string(m.Ingredients),
		Instructions:  []string(m.Instructions),
		ImageURL:      m.ImageURL,
		Time:          m.Time,
		Nutritional:   m.Nutritional,
		TimeBreakdown: map[string]string(m.TimeBreakdown),
	}
}
