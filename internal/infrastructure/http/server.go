// Package http provides the API server: router, middleware chain, and
// lifecycle.
package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/culinamind/backend/internal/infrastructure/config"
	"github.com/culinamind/backend/internal/infrastructure/http/handlers"
	"github.com/culinamind/backend/internal/infrastructure/http/middleware"
	"github.com/culinamind/backend/internal/infrastructure/monitoring"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Server is the HTTP API server.
type Server struct {
	config *config.Config
	logger *zap.Logger
	server *http.Server
}

// NewServer wires the router and creates the server.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	mw *middleware.Middleware,
	authn *middleware.Authenticator,
	metrics *monitoring.MetricsCollector,
	authHandler *handlers.AuthHandler,
	recipeHandler *handlers.RecipeHandler,
	chatHandler *handlers.ChatHandler,
	validationHandler *handlers.ValidationHandler,
) *Server {
	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.Recovery)
	r.Use(mw.Logger)
	r.Use(metrics.HTTPMiddleware)
	r.Use(mw.SecurityHeaders)
	r.Use(mw.CORS)
	r.Use(mw.RateLimit)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy"}`))
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", authHandler.Signup)
			r.Post("/login", authHandler.Login)
			r.Post("/login/google", authHandler.GoogleLogin)
			r.Post("/reset-password", authHandler.RequestPasswordReset)
			r.Post("/verify-otp", authHandler.VerifyOTP)
			r.Post("/reset-password/confirm", authHandler.ConfirmPasswordReset)

			r.Group(func(r chi.Router) {
				r.Use(authn.RequireAuth)
				r.Get("/profile", authHandler.GetProfile)
				r.Put("/profile", authHandler.UpdateProfile)
			})
		})

		r.Route("/recipes", func(r chi.Router) {
			r.Use(authn.RequireAuth)
			r.Post("/generate_recipes", recipeHandler.Generate)
			r.Post("/favorite", recipeHandler.SaveFavorite)
			r.Get("/favorites", recipeHandler.GetFavorites)
			r.Delete("/favorite/{id}", recipeHandler.DeleteFavorite)
		})

		r.Route("/ai", func(r chi.Router) {
			r.Get("/health", chatHandler.Health)

			r.Group(func(r chi.Router) {
				r.Use(authn.RequireAuth)
				r.Post("/chat", chatHandler.Chat)
				r.Post("/start-conversation", chatHandler.StartConversation)
				r.Post("/update-preferences", chatHandler.UpdatePreferences)
				r.Get("/get-profile", chatHandler.GetProfile)
				r.Get("/recommendations", chatHandler.Recommendations)
				r.Post("/update-session", chatHandler.UpdateSession)
				r.Get("/tips", chatHandler.CookingTips)
				r.Post("/modify-recipe", chatHandler.ModifyRecipe)
				r.Get("/search", chatHandler.SearchKnowledge)
				r.Get("/categories", chatHandler.Categories)
				r.Post("/cleanup", chatHandler.Cleanup)
				r.Post("/generate-recipes", chatHandler.GenerateRecipes)
				r.Post("/recipe-suggestions", chatHandler.RecipeSuggestions)
			})
		})

		r.Route("/validation", func(r chi.Router) {
			r.Use(authn.RequireAuth)
			r.Post("/validate-entry", validationHandler.ValidateEntry)
			r.Post("/validate-entries", validationHandler.ValidateEntries)
		})
	})

	return &Server{
		config: cfg,
		logger: logger.Named("server"),
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler:      r,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  cfg.Server.IdleTimeout,
		},
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start begins serving. It blocks until the listener stops.
func (s *Server) Start() error {
	s.logger.Info("starting http server", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests within the configured timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.Server.ShutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(shutdownCtx)
}
