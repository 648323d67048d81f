package env

import (
	"fmt"
	"time"
)

// LLM providers
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Config is the resolved runtime configuration of the API server.
type Config struct {
	Port           string
	DatabasePath   string
	FrontendURL    string
	AllowedOrigins []string
	SweepInterval  time.Duration

	GoogleClientID      string
	GoogleClientSecret  string
	GitHubClientID      string
	GitHubClientSecret  string
	AuthCallbackBaseURL string
	SessionDuration     time.Duration
	SecureCookies       bool

	LLMProvider          string
	GeminiAPIKey         string
	GeminiModel          string
	OpenAIAPIKey         string
	OpenAIBaseURL        string
	OpenAIModel          string
	GenerationTimeout    time.Duration
	DailyGenerationLimit int
	AllowGuestGeneration bool

	InstacartAPIKey  string
	InstacartBaseURL string
}

// LoadConfig reads the environment and checks that the selected LLM provider
// has credentials. Everything else falls back to a default.
func LoadConfig() (*Config, error) {
	frontendURL := GetEnv(EnvFrontendURL, "http://localhost:3000")

	cfg := &Config{
		Port:           GetEnv(EnvPort, "8080"),
		DatabasePath:   GetEnv(EnvDatabasePath, "./internal/databases/menumagic.db"),
		FrontendURL:    frontendURL,
		AllowedOrigins: GetList(EnvAllowedOrigins, []string{frontendURL}),
		SweepInterval:  GetDuration(EnvSweepInterval, 10*time.Minute),

		GoogleClientID:      GetEnv(EnvGoogleClientID, ""),
		GoogleClientSecret:  GetEnv(EnvGoogleClientSecret, ""),
		GitHubClientID:      GetEnv(EnvGitHubClientID, ""),
		GitHubClientSecret:  GetEnv(EnvGitHubClientSecret, ""),
		AuthCallbackBaseURL: GetEnv(EnvAuthCallbackBaseURL, "http://localhost:8080"),
		SessionDuration:     GetDuration(EnvSessionDuration, 8*time.Hour),
		SecureCookies:       GetBool(EnvSecureCookies, false),

		LLMProvider:          GetEnv(EnvLLMProvider, ProviderGemini),
		GeminiAPIKey:         GetEnv(EnvGeminiAPIKey, ""),
		GeminiModel:          GetEnv(EnvGeminiModel, "gemini-2.0-flash"),
		OpenAIAPIKey:         GetEnv(EnvOpenAIAPIKey, ""),
		OpenAIBaseURL:        GetEnv(EnvOpenAIBaseURL, "https://api.openai.com/v1"),
		OpenAIModel:          GetEnv(EnvOpenAIModel, "gpt-4o"),
		GenerationTimeout:    GetDuration(EnvGenerationTimeout, 30*time.Second),
		DailyGenerationLimit: GetInt(EnvDailyGenerationLimit, 3),
		AllowGuestGeneration: GetBool(EnvAllowGuestGeneration, true),

		InstacartAPIKey:  GetEnv(EnvInstacartAPIKey, ""),
		InstacartBaseURL: GetEnv(EnvInstacartBaseURL, "https://connect.instacart.com"),
	}

	switch cfg.LLMProvider {
	case ProviderGemini:
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("%s environment variable not set", EnvGeminiAPIKey)
		}
	case ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("%s environment variable not set", EnvOpenAIAPIKey)
		}
	default:
		return nil, fmt.Errorf("unsupported %s: %q", EnvLLMProvider, cfg.LLMProvider)
	}

	if cfg.DailyGenerationLimit < 0 {
		return nil, fmt.Errorf("%s must not be negative", EnvDailyGenerationLimit)
	}
	if cfg.GenerationTimeout <= 0 {
		return nil, fmt.Errorf("%s must be positive", EnvGenerationTimeout)
	}

	return cfg, nil
}

//MenuMagic API. Backend for the MenuMagic weekly meal planner: AI generated menus, saved plans, favorite recipes and grocery ordering.
//MenuMagic Copyright (C) 2025 MenuMagic
//This program is free software: you can redistribute it and/or modify
//it under the terms of the GNU General Public License as published by
//the Free Software Foundation, either version 3 of the License, or
//(at your option) any later version.
//
//This program is distributed in the hope that it will be useful,
//but WITHOUT ANY WARRANTY; without even the implied warranty of
//MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//GNU General Public License for more details.
//
//You should have received a copy of the GNU General Public License
//along with this program.  If not, see <https://www.gnu.org/licenses/>.
