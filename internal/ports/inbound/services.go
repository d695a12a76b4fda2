// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the interfaces that the application exposes to the outside world
package inbound

import (
	"context"

	ctxdomain "github.com/culinamind/backend/internal/domain/context"
	"github.com/culinamind/backend/internal/domain/recipe"
	"github.com/culinamind/backend/internal/domain/user"
)

// AuthService defines the account and credential use cases
type AuthService interface {
	Signup(ctx context.Context, cmd SignupCommand) (*user.User, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	LoginWithGoogle(ctx context.Context, idToken string) (*AuthResult, error)
	GetProfile(ctx context.Context, userID uint) (*user.User, error)
	UpdateProfile(ctx context.Context, userID uint, firstName, lastName string) (*user.User, error)

	RequestPasswordReset(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, code string) error
	ConfirmPasswordReset(ctx context.Context, email, code, newPassword string) error
}

// SignupCommand contains data for creating a new account
type SignupCommand struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
}

// AuthResult is a successful authentication outcome
type AuthResult struct {
	AccessToken string
	User        *user.User
}

// RecipeService defines the recipe generation and favorites use cases
type RecipeService interface {
	GenerateRecipes(ctx context.Context, userID uint, req recipe.GenerationRequest) ([]recipe.GeneratedRecipe, error)
	SaveFavorite(ctx context.Context, fav *recipe.Favorite) error
	GetFavorites(ctx context.Context, userID uint) ([]*recipe.Favorite, error)
	DeleteFavorite(ctx context.Context, userID, recipeID uint) error
}

// ChatService defines the conversational AI use cases
type ChatService interface {
	Chat(ctx context.Context, cmd ChatCommand) (*ChatResult, error)
	StartConversation(ctx context.Context, userID string) (*ChatResult, error)
	ModifyRecipe(ctx context.Context, userID, sessionID, recipeText, request string) (*ChatResult, error)
	RecipeSuggestions(ctx context.Context, userID, sessionID, query string) (*ChatResult, []KnowledgeHit, error)
	GenerateRecipes(ctx context.Context, userID, sessionID string, req recipe.GenerationRequest) ([]recipe.GeneratedRecipe, string, string, error)

	UpdatePreferences(ctx context.Context, userID string, prefs map[string]any) error
	GetContextProfile(ctx context.Context, userID string) (*ctxdomain.UserProfile, error)
	UpdateSession(ctx context.Context, sessionID, userID string, updates map[string]any) error
	Cleanup(ctx context.Context) int

	Recommendations(ctx context.Context, userID, query string) ([]KnowledgeHit, error)
	CookingTips(ctx context.Context, userID, category, difficulty string) ([]string, error)
	SearchKnowledge(ctx context.Context, userID, query string, filters SearchFilters) ([]KnowledgeHit, error)
	KnowledgeStats(ctx context.Context) map[string]any
}

// ChatCommand is a single chat turn from a user
type ChatCommand struct {
	UserID    string         `json:"user_id"`
	SessionID string         `json:"session_id"`
	Message   string         `json:"message" validate:"required"`
	Context   map[string]any `json:"context,omitempty"`
}

// ChatResult is the assistant's reply plus routing metadata
type ChatResult struct {
	Response    string `json:"response"`
	ContextType string `json:"context_type"`
	SessionID   string `json:"session_id"`
}

// KnowledgeHit is one knowledge base entry with its retrieval score
type KnowledgeHit struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Category   string   `json:"category"`
	Difficulty string   `json:"difficulty"`
	Cuisine    string   `json:"cuisine"`
	Keywords   []string `json:"keywords,omitempty"`
	Score      float64  `json:"score"`
}

// SearchFilters narrow a knowledge search
type SearchFilters struct {
	Category   string `json:"category,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
	Cuisine    string `json:"cuisine,omitempty"`
	Limit      int    `json:"limit,omitempty"`
}
