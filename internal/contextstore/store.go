// Package contextstore persists user profiles, session state and
// conversation logs as one JSON file per entity, fronted by a cache.
package contextstore

import (
	stdctx "context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	ctxdomain "github.com/culinamind/backend/internal/domain/context"
	"github.com/culinamind/backend/internal/infrastructure/config"
	"github.com/culinamind/backend/internal/ports/outbound"
	"go.uber.org/zap"
)

const (
	profileDir      = "profiles"
	sessionDir      = "sessions"
	conversationDir = "conversations"
)

// Store implements outbound.ContextStore on the local filesystem.
// Persistence failures are logged and reported as false/nil rather than
// propagated; context is an enhancement, never a hard dependency of a
// chat turn.
type Store struct {
	root        string
	cache       outbound.CacheRepository
	cacheTTL    time.Duration
	maxMessages int
	logger      *zap.Logger
}

// NewStore creates the storage directories and returns a ready store.
func NewStore(cfg config.ContextConfig, cache outbound.CacheRepository, logger *zap.Logger) (*Store, error) {
	for _, dir := range []string{profileDir, sessionDir, conversationDir} {
		if err := os.MkdirAll(filepath.Join(cfg.StoragePath, dir), 0o755); err != nil {
			return nil, fmt.Errorf("create context storage: %w", err)
		}
	}
	return &Store{
		root:        cfg.StoragePath,
		cache:       cache,
		cacheTTL:    cfg.CacheTTL,
		maxMessages: cfg.MaxMessages,
		logger:      logger,
	}, nil
}

// SaveProfile persists a profile, stamping its update time.
func (s *Store) SaveProfile(ctx stdctx.Context, profile *ctxdomain.UserProfile) bool {
	profile.LastUpdated = time.Now()
	ok := s.write(ctx, s.path(profileDir, profile.UserID), "profile:"+profile.UserID, profile)
	if ok {
		s.logger.Info("saved user profile", zap.String("user_id", profile.UserID))
	}
	return ok
}

// LoadProfile returns the stored profile, or creates and persists a
// default one for first-time users. Returns nil only on I/O failure.
func (s *Store) LoadProfile(ctx stdctx.Context, userID string) *ctxdomain.UserProfile {
	var profile ctxdomain.UserProfile
	switch s.read(ctx, s.path(profileDir, userID), "profile:"+userID, &profile) {
	case readHit:
		return &profile
	case readMiss:
		fresh := ctxdomain.NewUserProfile(userID)
		s.SaveProfile(ctx, fresh)
		return fresh
	default:
		return nil
	}
}

// UpdateProfilePreferences applies a partial preference update. Unknown
// keys are ignored; untouched fields keep their values.
func (s *Store) UpdateProfilePreferences(ctx stdctx.Context, userID string, prefs map[string]any) bool {
	profile := s.LoadProfile(ctx, userID)
	if profile == nil {
		return false
	}
	for key, value := range prefs {
		applyPreference(profile, key, value)
	}
	return s.SaveProfile(ctx, profile)
}

// SaveSession persists the working state of a session.
func (s *Store) SaveSession(ctx stdctx.Context, session *ctxdomain.SessionContext) bool {
	return s.write(ctx, s.path(sessionDir, session.SessionID), "session:"+session.SessionID, session)
}

// LoadSession returns the session state or nil when absent.
func (s *Store) LoadSession(ctx stdctx.Context, sessionID string) *ctxdomain.SessionContext {
	var session ctxdomain.SessionContext
	if s.read(ctx, s.path(sessionDir, sessionID), "session:"+sessionID, &session) == readHit {
		return &session
	}
	return nil
}

// SaveConversation persists a conversation log, stamping its activity time.
func (s *Store) SaveConversation(ctx stdctx.Context, conv *ctxdomain.ConversationContext) bool {
	conv.LastActivity = time.Now()
	return s.write(ctx, s.path(conversationDir, conv.SessionID), "conversation:"+conv.SessionID, conv)
}

// LoadConversation returns the conversation log or nil when absent.
func (s *Store) LoadConversation(ctx stdctx.Context, sessionID string) *ctxdomain.ConversationContext {
	var conv ctxdomain.ConversationContext
	if s.read(ctx, s.path(conversationDir, sessionID), "conversation:"+sessionID, &conv) == readHit {
		return &conv
	}
	return nil
}

// AppendMessage adds an exchange to a session's conversation log,
// creating the log on first use and keeping only the newest entries.
// Unstamped messages are stamped with the current time.
func (s *Store) AppendMessage(ctx stdctx.Context, sessionID, userID string, msg ctxdomain.Message) bool {
	conv := s.LoadConversation(ctx, sessionID)
	if conv == nil {
		conv = ctxdomain.NewConversationContext(sessionID, userID)
	}
	if conv.UserID == "" {
		conv.UserID = userID
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}
	conv.Append(msg, s.maxMessages)
	return s.SaveConversation(ctx, conv)
}

// Sweep deletes session and conversation files whose modification time
// is older than maxAge. Profiles are durable and never swept. Returns
// the number of files removed.
func (s *Store) Sweep(ctx stdctx.Context, maxAge time.Duration) int {
	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, dir := range []string{sessionDir, conversationDir} {
		entries, err := os.ReadDir(filepath.Join(s.root, dir))
		if err != nil {
			s.logger.Error("sweep: read dir failed", zap.String("dir", dir), zap.Error(err))
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			info, err := entry.Info()
			if err != nil || !info.ModTime().Before(cutoff) {
				continue
			}
			full := filepath.Join(s.root, dir, entry.Name())
			if err := os.Remove(full); err != nil {
				s.logger.Error("sweep: remove failed", zap.String("file", full), zap.Error(err))
				continue
			}
			s.evict(ctx, cacheKeyFor(dir, entry.Name()))
			removed++
			s.logger.Info("swept stale context file", zap.String("file", entry.Name()))
		}
	}
	return removed
}

type readResult int

const (
	readHit readResult = iota
	readMiss
	readError
)

func (s *Store) path(dir, id string) string {
	return filepath.Join(s.root, dir, id+".json")
}

func (s *Store) write(ctx stdctx.Context, path, cacheKey string, v any) bool {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		s.logger.Error("context marshal failed", zap.String("key", cacheKey), zap.Error(err))
		return false
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		s.logger.Error("context write failed", zap.String("path", path), zap.Error(err))
		return false
	}
	if err := s.cache.Set(ctx, cacheKey, data, s.cacheTTL); err != nil {
		s.logger.Warn("context cache set failed", zap.String("key", cacheKey), zap.Error(err))
	}
	return true
}

func (s *Store) read(ctx stdctx.Context, path, cacheKey string, v any) readResult {
	if data, err := s.cache.Get(ctx, cacheKey); err == nil {
		if json.Unmarshal(data, v) == nil {
			return readHit
		}
		s.evict(ctx, cacheKey)
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return readMiss
	}
	if err != nil {
		s.logger.Error("context read failed", zap.String("path", path), zap.Error(err))
		return readError
	}
	if err := json.Unmarshal(data, v); err != nil {
		s.logger.Error("context decode failed", zap.String("path", path), zap.Error(err))
		return readError
	}
	if err := s.cache.Set(ctx, cacheKey, data, s.cacheTTL); err != nil {
		s.logger.Warn("context cache set failed", zap.String("key", cacheKey), zap.Error(err))
	}
	return readHit
}

func (s *Store) evict(ctx stdctx.Context, cacheKey string) {
	if err := s.cache.Delete(ctx, cacheKey); err != nil {
		s.logger.Warn("context cache delete failed", zap.String("key", cacheKey), zap.Error(err))
	}
}

func cacheKeyFor(dir, filename string) string {
	id := filename[:len(filename)-len(filepath.Ext(filename))]
	if dir == sessionDir {
		return "session:" + id
	}
	return "conversation:" + id
}

func applyPreference(p *ctxdomain.UserProfile, key string, value any) {
	switch key {
	case "skill_level":
		if s, ok := value.(string); ok {
			p.SkillLevel = s
		}
	case "dietary_restrictions":
		if v, ok := toStringSlice(value); ok {
			p.DietaryRestrictions = v
		}
	case "cuisine_preferences":
		if v, ok := toStringSlice(value); ok {
			p.CuisinePreferences = v
		}
	case "cooking_equipment":
		if v, ok := toStringSlice(value); ok {
			p.CookingEquipment = v
		}
	case "ingredient_preferences":
		if v, ok := toStringSlice(value); ok {
			p.IngredientPreferences = v
		}
	case "ingredient_dislikes":
		if v, ok := toStringSlice(value); ok {
			p.IngredientDislikes = v
		}
	case "health_goals":
		if v, ok := toStringSlice(value); ok {
			p.HealthGoals = v
		}
	case "cooking_time_preferences":
		if m, ok := value.(map[string]any); ok {
			out := make(map[string]string, len(m))
			for k, raw := range m {
				if s, ok := raw.(string); ok {
					out[k] = s
				}
			}
			p.CookingTimePreferences = out
		}
	case "serving_size_preferences":
		if m, ok := value.(map[string]any); ok {
			out := make(map[string]int, len(m))
			for k, raw := range m {
				switch n := raw.(type) {
				case float64:
					out[k] = int(n)
				case int:
					out[k] = n
				}
			}
			p.ServingSizePreferences = out
		}
	}
}

func toStringSlice(value any) ([]string, bool) {
	switch v := value.(type) {
	case []string:
		return v, true
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}

var _ outbound.ContextStore = (*Store)(nil)
