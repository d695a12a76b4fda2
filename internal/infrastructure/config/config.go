// Package config provides centralized configuration management
// using Viper for configuration loading and validation
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Auth      AuthConfig      `mapstructure:"auth"`
	AI        AIConfig        `mapstructure:"ai"`
	Email     EmailConfig     `mapstructure:"email"`
	Context   ContextConfig   `mapstructure:"context"`
	Knowledge KnowledgeConfig `mapstructure:"knowledge"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// AppConfig contains application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	Debug       bool   `mapstructure:"debug"`
	LogLevel    string `mapstructure:"log_level"`
	LogFormat   string `mapstructure:"log_format"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	EnableCORS      bool          `mapstructure:"enable_cors"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
}

// DatabaseConfig contains database configuration
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Database        string        `mapstructure:"database"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

// RedisConfig contains Redis configuration
type RedisConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Password     string        `mapstructure:"password"`
	Database     int           `mapstructure:"database"`
	MaxRetries   int           `mapstructure:"max_retries"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	PoolSize     int           `mapstructure:"pool_size"`
}

// AuthConfig contains authentication configuration
type AuthConfig struct {
	JWTSecret      string        `mapstructure:"jwt_secret"`
	JWTExpiration  time.Duration `mapstructure:"jwt_expiration"`
	BCryptCost     int           `mapstructure:"bcrypt_cost"`
	GoogleClientID string        `mapstructure:"google_client_id"`
	OTPExpiration  time.Duration `mapstructure:"otp_expiration"`
}

// AIConfig contains hosted AI service configuration
type AIConfig struct {
	OpenAIKey       string        `mapstructure:"openai_key"`
	OpenAIBaseURL   string        `mapstructure:"openai_base_url"`
	ChatModel       string        `mapstructure:"chat_model"`
	RecipeModel     string        `mapstructure:"recipe_model"`
	EmbeddingModel  string        `mapstructure:"embedding_model"`
	ImageModel      string        `mapstructure:"image_model"`
	AnthropicKey    string        `mapstructure:"anthropic_key"`
	AnthropicModel  string        `mapstructure:"anthropic_model"`
	ChatMaxTokens   int           `mapstructure:"chat_max_tokens"`
	RecipeMaxTokens int           `mapstructure:"recipe_max_tokens"`
	ChatTemperature float64       `mapstructure:"chat_temperature"`
	RecipeTemp      float64       `mapstructure:"recipe_temperature"`
	Timeout         time.Duration `mapstructure:"timeout"`
}

// EmailConfig contains email service configuration
type EmailConfig struct {
	SMTPHost     string `mapstructure:"smtp_host"`
	SMTPPort     int    `mapstructure:"smtp_port"`
	SMTPUsername string `mapstructure:"smtp_username"`
	SMTPPassword string `mapstructure:"smtp_password"`
	FromAddress  string `mapstructure:"from_address"`
}

// ContextConfig contains context-engineering configuration
type ContextConfig struct {
	StoragePath     string        `mapstructure:"storage_path"`
	MaxAge          time.Duration `mapstructure:"max_age"`
	SweepInterval   time.Duration `mapstructure:"sweep_interval"`
	CacheTTL        time.Duration `mapstructure:"cache_ttl"`
	MaxMessages     int           `mapstructure:"max_messages"`
	MaxTokens       int           `mapstructure:"max_tokens"`
	MaxConversation int           `mapstructure:"max_conversation_messages"`
	RelevanceFloor  float64       `mapstructure:"relevance_threshold"`
}

// KnowledgeConfig contains retrieval and re-ranking configuration.
// Boost multipliers are empirically chosen and kept as configuration.
type KnowledgeConfig struct {
	IndexPath          string        `mapstructure:"index_path"`
	SkillMatchBoost    float64       `mapstructure:"skill_match_boost"`
	AdvancedBoost      float64       `mapstructure:"advanced_match_boost"`
	DietaryBoost       float64       `mapstructure:"dietary_boost"`
	CuisineBoost       float64       `mapstructure:"cuisine_boost"`
	IngredientBoost    float64       `mapstructure:"ingredient_boost"`
	RefreshInterval    time.Duration `mapstructure:"refresh_interval"`
	DynamicStoragePath string        `mapstructure:"dynamic_storage_path"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enable          bool          `mapstructure:"enable"`
	RequestsPerMin  int           `mapstructure:"requests_per_min"`
	BurstSize       int           `mapstructure:"burst_size"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/culinamind")
	}

	// Enable environment variable override
	v.SetEnvPrefix("CULINAMIND")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist, we have defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "CulinaMind")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.debug", false)
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.log_format", "json")

	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "30s")
	v.SetDefault("server.enable_cors", true)

	// Database defaults
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.database", "culinamind")
	v.SetDefault("database.username", "postgres")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "1h")
	v.SetDefault("database.auto_migrate", true)

	// Redis defaults
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.database", 0)
	v.SetDefault("redis.max_retries", 3)
	v.SetDefault("redis.pool_size", 10)

	// Auth defaults
	v.SetDefault("auth.jwt_expiration", "6h")
	v.SetDefault("auth.bcrypt_cost", 10)
	v.SetDefault("auth.otp_expiration", "10m")

	// AI defaults
	v.SetDefault("ai.openai_base_url", "https://api.openai.com/v1")
	v.SetDefault("ai.chat_model", "gpt-3.5-turbo")
	v.SetDefault("ai.recipe_model", "gpt-4")
	v.SetDefault("ai.embedding_model", "text-embedding-3-small")
	v.SetDefault("ai.image_model", "dall-e-3")
	v.SetDefault("ai.anthropic_model", "claude-3-haiku-20240307")
	v.SetDefault("ai.chat_max_tokens", 500)
	v.SetDefault("ai.recipe_max_tokens", 2000)
	v.SetDefault("ai.chat_temperature", 0.7)
	v.SetDefault("ai.recipe_temperature", 0.8)
	v.SetDefault("ai.timeout", "60s")

	// Context defaults
	v.SetDefault("context.storage_path", "data/context")
	v.SetDefault("context.max_age", "24h")
	v.SetDefault("context.sweep_interval", "1h")
	v.SetDefault("context.cache_ttl", "30m")
	v.SetDefault("context.max_messages", 50)
	v.SetDefault("context.max_tokens", 3000)
	v.SetDefault("context.max_conversation_messages", 10)
	v.SetDefault("context.relevance_threshold", 0.3)

	// Knowledge defaults
	v.SetDefault("knowledge.index_path", "data/knowledge/index.db")
	v.SetDefault("knowledge.skill_match_boost", 1.2)
	v.SetDefault("knowledge.advanced_match_boost", 1.1)
	v.SetDefault("knowledge.dietary_boost", 1.1)
	v.SetDefault("knowledge.cuisine_boost", 1.15)
	v.SetDefault("knowledge.ingredient_boost", 1.1)
	v.SetDefault("knowledge.refresh_interval", "6h")
	v.SetDefault("knowledge.dynamic_storage_path", "data/knowledge/dynamic.db")

	// Rate limit defaults
	v.SetDefault("rate_limit.enable", true)
	v.SetDefault("rate_limit.requests_per_min", 60)
	v.SetDefault("rate_limit.burst_size", 10)
	v.SetDefault("rate_limit.cleanup_interval", "1m")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app.name is required")
	}

	if c.Database.Database == "" {
		return fmt.Errorf("database.database is required")
	}

	if c.Auth.JWTSecret == "" && c.App.Environment == "production" {
		return fmt.Errorf("auth.jwt_secret is required in production")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}

	if c.Context.MaxMessages <= 0 {
		return fmt.Errorf("context.max_messages must be positive")
	}

	return nil
}

// IsProduction returns true if running in production
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// IsDevelopment returns true if running in development
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// GetDSN returns the database connection string
func (c *Config) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.Username,
		c.Database.Password,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// RedisAddr returns the Redis connection address
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
