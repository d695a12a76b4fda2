// Package context defines the per-user and per-session state records
// that feed personalized prompt assembly.
package context

import "time"

// Skill levels recognized in user profiles.
const (
	SkillBeginner     = "beginner"
	SkillIntermediate = "intermediate"
	SkillAdvanced     = "advanced"
)

// Cooking modes for a session.
const (
	ModeStrictIngredients = "strict_ingredients"
	ModeFlexible          = "flexible"
)

// UserProfile is the durable per-user preference record used for
// personalized AI responses.
type UserProfile struct {
	UserID                 string            `json:"user_id"`
	SkillLevel             string            `json:"skill_level"`
	DietaryRestrictions    []string          `json:"dietary_restrictions"`
	CuisinePreferences     []string          `json:"cuisine_preferences"`
	CookingEquipment       []string          `json:"cooking_equipment"`
	IngredientPreferences  []string          `json:"ingredient_preferences"`
	IngredientDislikes     []string          `json:"ingredient_dislikes"`
	CookingTimePreferences map[string]string `json:"cooking_time_preferences"`
	ServingSizePreferences map[string]int    `json:"serving_size_preferences"`
	HealthGoals            []string          `json:"health_goals"`
	LastUpdated            time.Time         `json:"last_updated"`
}

// NewUserProfile creates a profile with defaults for a first-time user.
func NewUserProfile(userID string) *UserProfile {
	return &UserProfile{
		UserID:                 userID,
		SkillLevel:             SkillBeginner,
		DietaryRestrictions:    []string{},
		CuisinePreferences:     []string{},
		CookingEquipment:       []string{},
		IngredientPreferences:  []string{},
		IngredientDislikes:     []string{},
		CookingTimePreferences: map[string]string{},
		ServingSizePreferences: map[string]int{},
		HealthGoals:            []string{},
		LastUpdated:            time.Now(),
	}
}

// SessionContext is the working state of one cooking session; distinct
// from the conversation log.
type SessionContext struct {
	SessionID                  string    `json:"session_id"`
	UserID                     string    `json:"user_id"`
	CurrentIngredients         []string  `json:"current_ingredients"`
	CurrentCuisine             string    `json:"current_cuisine"`
	CurrentDietaryRestrictions []string  `json:"current_dietary_restrictions"`
	CurrentTimeConstraint      string    `json:"current_time_constraint"`
	CurrentServingSize         int       `json:"current_serving_size"`
	CookingMode                string    `json:"cooking_mode"`
	SessionStartTime           time.Time `json:"session_start_time"`
}

// NewSessionContext creates an empty session owned by a user.
func NewSessionContext(sessionID, userID string) *SessionContext {
	return &SessionContext{
		SessionID:                  sessionID,
		UserID:                     userID,
		CurrentIngredients:         []string{},
		CurrentDietaryRestrictions: []string{},
		SessionStartTime:           time.Now(),
	}
}

// Message is one user/AI exchange in a conversation log.
type Message struct {
	Timestamp   time.Time `json:"timestamp"`
	UserMessage string    `json:"user_message"`
	AIResponse  string    `json:"ai_response"`
	ContextType string    `json:"context_type"`
}

// ConversationContext is the append-only message log for a session,
// capped at the most recent entries.
type ConversationContext struct {
	SessionID    string    `json:"session_id"`
	UserID       string    `json:"user_id"`
	Messages     []Message `json:"messages"`
	LastActivity time.Time `json:"last_activity"`
}

// NewConversationContext creates an empty conversation log.
func NewConversationContext(sessionID, userID string) *ConversationContext {
	return &ConversationContext{
		SessionID:    sessionID,
		UserID:       userID,
		Messages:     []Message{},
		LastActivity: time.Now(),
	}
}

// Append adds an exchange to the log, evicting the oldest entries once
// the log exceeds maxMessages.
func (c *ConversationContext) Append(msg Message, maxMessages int) {
	c.Messages = append(c.Messages, msg)
	if maxMessages > 0 && len(c.Messages) > maxMessages {
		c.Messages = c.Messages[len(c.Messages)-maxMessages:]
	}
}

// Recent returns up to n of the most recent messages, oldest first.
func (c *ConversationContext) Recent(n int) []Message {
	if n <= 0 || len(c.Messages) <= n {
		return c.Messages
	}
	return c.Messages[len(c.Messages)-n:]
}
