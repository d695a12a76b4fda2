// Package gorm provides GORM model definitions and repository
// implementations for relational persistence.
package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// UserModel represents the GORM model for users
type UserModel struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"`
	FirstName    string `gorm:"type:varchar(100);not null"`
	LastName     string `gorm:"type:varchar(100);not null"`
	Email        string `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string `gorm:"type:varchar(255)"`
	GoogleID     string `gorm:"type:varchar(255);index"`
	FacebookID   string `gorm:"type:varchar(255);index"`
	ResetOTP     string `gorm:"type:varchar(10)"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Relationships
	Favorites []FavoriteRecipeModel `gorm:"foreignKey:UserID"`
}

// TableName overrides the default table name
func (UserModel) TableName() string {
	return "users"
}

// FavoriteRecipeModel represents the GORM model for saved recipes
type FavoriteRecipeModel struct {
	ID            uint        `gorm:"primaryKey;autoIncrement"`
	UserID        uint        `gorm:"not null;index"`
	Title         string      `gorm:"type:varchar(255);not null"`
	Ingredients   StringSlice `gorm:"type:json"`
	Instructions  StringSlice `gorm:"type:json"`
	ImageURL      string      `gorm:"type:text"`
	Time          string      `gorm:"type:varchar(100)"`
	Nutritional   string      `gorm:"type:text"`
	TimeBreakdown StringMap   `gorm:"type:json"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Relationships
	User UserModel `gorm:"foreignKey:UserID"`
}

// TableName overrides the default table name
func (FavoriteRecipeModel) TableName() string {
	return "favorite_recipes"
}

// StringSlice custom type for handling string slices in JSON
type StringSlice []string

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("cannot scan %T into StringSlice", value)
	}
}

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	return json.Marshal(s)
}

// StringMap custom type for handling string maps in JSON
type StringMap map[string]string

// Scan implements the sql.Scanner interface
func (m *StringMap) Scan(value interface{}) error {
	if value == nil {
		*m = StringMap{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("cannot scan %T into StringMap", value)
	}
}

// Value implements the driver.Valuer interface
func (m StringMap) Value() (driver.Value, error) {
	if len(m) == 0 {
		return "{}", nil
	}
	return json.Marshal(m)
}
