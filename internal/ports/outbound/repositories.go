// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems
package outbound

import (
	"context"
	"time"

	ctxdomain "github.com/culinamind/backend/internal/domain/context"
	"github.com/culinamind/backend/internal/domain/knowledge"
	"github.com/culinamind/backend/internal/domain/recipe"
	"github.com/culinamind/backend/internal/domain/user"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	Update(ctx context.Context, u *user.User) error
	FindByID(ctx context.Context, id uint) (*user.User, error)
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// FavoriteRepository defines the interface for favorite recipe persistence
type FavoriteRepository interface {
	Create(ctx context.Context, fav *recipe.Favorite) error
	FindByUserID(ctx context.Context, userID uint) ([]*recipe.Favorite, error)
	FindByIDAndUserID(ctx context.Context, id, userID uint) (*recipe.Favorite, error)
	Delete(ctx context.Context, id, userID uint) error
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// OTPStore holds short-lived password reset codes keyed by email.
type OTPStore interface {
	Put(ctx context.Context, email, code string, ttl time.Duration) error
	Verify(ctx context.Context, email, code string) (bool, error)
	Clear(ctx context.Context, email string) error
}

// ContextStore persists user profiles, session state and conversation
// history. Load operations never fail on missing entities: profiles are
// synthesized with defaults and sessions/conversations return nil.
type ContextStore interface {
	SaveProfile(ctx context.Context, profile *ctxdomain.UserProfile) bool
	LoadProfile(ctx context.Context, userID string) *ctxdomain.UserProfile
	UpdateProfilePreferences(ctx context.Context, userID string, prefs map[string]any) bool

	SaveSession(ctx context.Context, session *ctxdomain.SessionContext) bool
	LoadSession(ctx context.Context, sessionID string) *ctxdomain.SessionContext

	SaveConversation(ctx context.Context, conv *ctxdomain.ConversationContext) bool
	LoadConversation(ctx context.Context, sessionID string) *ctxdomain.ConversationContext
	AppendMessage(ctx context.Context, sessionID, userID string, msg ctxdomain.Message) bool

	Sweep(ctx context.Context, maxAge time.Duration) int
}

// AIService defines the interface for chat, embedding and image operations
type AIService interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
	Embed(ctx context.Context, text string) ([]float32, error)
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

// CompletionRequest is a single chat completion call.
type CompletionRequest struct {
	Model       string
	System      string
	Prompt      string
	Temperature float64
	MaxTokens   int
}

// EntryValidator checks whether a free-text preference entry is a real
// culinary term in the claimed category.
type EntryValidator interface {
	Validate(ctx context.Context, input, category string) EntryValidation
}

// EntryValidation is the outcome of a term check. The zero value means
// invalid with no confidence.
type EntryValidation struct {
	IsValid       bool               `json:"isValid"`
	Confidence    float64            `json:"confidence"`
	Reason        string             `json:"reason"`
	Sources       []ValidationSource `json:"sources"`
	Suggestions   []string           `json:"suggestions"`
	CategoryMatch bool               `json:"category_match"`
}

// ValidationSource is a reference backing a validation decision.
type ValidationSource struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// VectorIndex stores knowledge item embeddings and serves similarity search.
type VectorIndex interface {
	Upsert(ctx context.Context, id string, embedding []float32) error
	Search(ctx context.Context, embedding []float32, k int) ([]Neighbor, error)
	Count(ctx context.Context) (int, error)
	Close() error
}

// Neighbor is one similarity search hit. Similarity is 1 - cosine distance.
type Neighbor struct {
	ID         string
	Similarity float64
}

// KnowledgeSource provides additional knowledge items fetched from
// external services at refresh time.
type KnowledgeSource interface {
	Fetch(ctx context.Context) ([]knowledge.Item, error)
}

// EmailService defines the interface for sending emails
type EmailService interface {
	SendOTP(ctx context.Context, to, code string) error
}

// GoogleVerifier validates a Google ID token and returns the identity claims.
type GoogleVerifier interface {
	Verify(ctx context.Context, idToken string) (*GoogleIdentity, error)
}

// GoogleIdentity is the subset of tokeninfo claims the service uses.
type GoogleIdentity struct {
	Subject   string
	Email     string
	FirstName string
	LastName  string
}
