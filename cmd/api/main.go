package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"MenuMagic/internal/auth"
	"MenuMagic/internal/common"
	"MenuMagic/internal/databases"
	"MenuMagic/internal/env"
	"MenuMagic/internal/llm"
	"MenuMagic/internal/v0/favorites"
	"MenuMagic/internal/v0/generate"
	"MenuMagic/internal/v0/grocery"
	"MenuMagic/internal/v0/menu"
	"MenuMagic/internal/v0/profile"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}
	cfg, err := env.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// One database, migrated on startup
	db, err := databases.OpenMigrated(cfg.DatabasePath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	// Generation service
	var textGen llm.TextGenerator
	switch cfg.LLMProvider {
	case env.ProviderOpenAI:
		textGen = llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
	default:
		gemini, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Fatal(err)
		}
		textGen = gemini
	}
	if closer, ok := textGen.(llm.Closer); ok {
		defer closer.Close()
	}
	log.Printf("Generating menus with %s", cfg.LLMProvider)

	// Initialize auth components
	authRepo := auth.NewRepository(db)
	oauthConfig := auth.NewOAuthConfig(
		auth.ProviderConfig{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
		},
		auth.ProviderConfig{
			ClientID:     cfg.GitHubClientID,
			ClientSecret: cfg.GitHubClientSecret,
		},
		cfg.AuthCallbackBaseURL,
	)
	stateStore := auth.NewOAuthStateStore(authRepo)
	sessionStore := auth.NewSessionStore(authRepo, cfg.SessionDuration, cfg.SecureCookies)
	quotaEngine := auth.NewQuotaEngine(authRepo, cfg.DailyGenerationLimit)

	// Expired sessions and OAuth states are purged in the background
	sweeper := auth.NewSweeper(sessionStore, stateStore, cfg.SweepInterval)
	sweeper.Start(ctx)

	authHandler := auth.NewHandler(authRepo, oauthConfig, stateStore, sessionStore, quotaEngine, cfg.FrontendURL)
	authMiddleware := auth.NewMiddleware(sessionStore, quotaEngine)

	// Feature handlers
	menuHandler := menu.NewHandler(menu.NewRepository(db))
	generateHandler := generate.NewHandler(generate.NewGenerator(textGen, cfg.GenerationTimeout), quotaEngine)
	favoritesHandler := favorites.NewHandler(favorites.NewRepository(db))
	profileHandler := profile.NewHandler(profile.NewRepository(db))
	groceryHandler := grocery.NewHandler(grocery.NewInstacartClient(cfg.InstacartAPIKey, cfg.InstacartBaseURL))

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{auth.HeaderRateLimitLimit, auth.HeaderRateLimitRemaining, auth.HeaderRateLimitReset, auth.HeaderRetryAfter},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Global routes
	global := router.Group("/api")
	common.RegisterRoutes(global, common.NewStatusHandler(db))

	// Auth routes (public + session-protected)
	auth.RegisterRoutes(global, authHandler, authMiddleware)

	// v0 API routes
	v0Group := router.Group("/api/v0")
	{
		generate.RegisterRoutes(v0Group, generateHandler, authMiddleware, cfg.AllowGuestGeneration)
		menu.RegisterRoutes(v0Group, menuHandler, authMiddleware)
		favorites.RegisterRoutes(v0Group, favoritesHandler, authMiddleware)
		profile.RegisterRoutes(v0Group, profileHandler, authMiddleware)
		grocery.RegisterRoutes(v0Group, groceryHandler, authMiddleware)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Graceful shutdown handling
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("Shutting down...")
		cancel()
		sweeper.Stop()

		shutdownCtx, done := context.WithTimeout(context.Background(), 10*time.Second)
		defer done()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	log.Printf("Listening on :%s", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

/*
MenuMagic API. Backend for the MenuMagic weekly meal planner: AI generated menus, saved plans, favorite recipes and grocery ordering.
MenuMagic Copyright (C) 2025 MenuMagic
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU General Public License as published by
    the Free Software Foundation, either version 3 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU General Public License
    along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
