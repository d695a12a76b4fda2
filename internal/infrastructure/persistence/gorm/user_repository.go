package gorm

import (
	"context"
	"errors"
	"strings"

	"github.com/culinamind/backend/internal/domain/user"
	"github.com/culinamind/backend/internal/ports/outbound"
	apperrors "github.com/culinamind/backend/pkg/errors"
	"gorm.io/gorm"
)

// UserRepository implements the user repository interface using GORM
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) outbound.UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	model := UserToModel(u)

	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		if strings.Contains(result.Error.Error(), "UNIQUE constraint failed") ||
			strings.Contains(result.Error.Error(), "duplicate key") {
			return apperrors.New(apperrors.CodeEmailAlreadyExists, "Email already registered", "")
		}
		return apperrors.NewDatabaseError("create user", result.Error)
	}

	u.ID = model.ID
	return nil
}

// Update updates an existing user
func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	model := UserToModel(u)

	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return apperrors.NewDatabaseError("update user", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.New(apperrors.CodeUserNotFound, "User not found", "")
	}
	return nil
}

// FindByID finds a user by ID
func (r *UserRepository) FindByID(ctx context.Context, id uint) (*user.User, error) {
	var model UserModel

	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.CodeUserNotFound, "User not found", "")
		}
		return nil, apperrors.NewDatabaseError("find user by id", result.Error)
	}

	return ModelToUser(&model), nil
}

// FindByEmail finds a user by email
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var model UserModel

	result := r.db.WithContext(ctx).First(&model, "email = ?", strings.ToLower(email))
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.CodeUserNotFound, "User not found", "")
		}
		return nil, apperrors.NewDatabaseError("find user by email", result.Error)
	}

	return ModelToUser(&model), nil
}

// ExistsByEmail checks whether an account with the email exists
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64

	result := r.db.WithContext(ctx).
		Model(&UserModel{}).
		Where("email = ?", strings.ToLower(email)).
		Count(&count)
	if result.Error != nil {
		return false, apperrors.NewDatabaseError("check email existence", result.Error)
	}
	return count > 0, nil
}
