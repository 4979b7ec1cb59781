package cli

import (
	"fmt"
	"os"

	"github.com/ahouse2/LCAS/internal/adapters/driven/config/file"
	"github.com/ahouse2/LCAS/internal/adapters/driven/digest"
	"github.com/ahouse2/LCAS/internal/adapters/driven/llm/anthropic"
	"github.com/ahouse2/LCAS/internal/adapters/driven/llm/openai"
	"github.com/ahouse2/LCAS/internal/core/domain"
	"github.com/ahouse2/LCAS/internal/core/ports/driven"
	"github.com/ahouse2/LCAS/internal/core/services"
	"github.com/ahouse2/LCAS/internal/extractors"
	"github.com/ahouse2/LCAS/internal/extractors/docx"
	"github.com/ahouse2/LCAS/internal/extractors/pdf"
	"github.com/ahouse2/LCAS/internal/extractors/plaintext"
	"github.com/ahouse2/LCAS/internal/logger"
	"github.com/ahouse2/LCAS/internal/plugins/aisummary"
	"github.com/ahouse2/LCAS/internal/plugins/categorize"
	"github.com/ahouse2/LCAS/internal/plugins/extraction"
	"github.com/ahouse2/LCAS/internal/plugins/ingestion"
)

// loadCase reads the configuration the --config flag points at.
func loadCase() (*domain.CaseConfig, *file.AISettings, error) {
	loader := file.NewLoader()
	cfg, ai, err := loader.LoadWithAI(configPath)
	if err != nil {
		return nil, nil, err
	}
	return cfg, ai, nil
}

// buildOrchestrator assembles the full pipeline for one run: driven
// adapters, plugins, registry and engine. A fresh orchestrator is
// built per run because runs are single-use.
func buildOrchestrator(cfg *domain.CaseConfig, ai *file.AISettings) (*services.Orchestrator, error) {
	digester := digest.New()

	extractorRegistry := extractors.NewRegistry()
	extractorRegistry.Register(plaintext.New())
	extractorRegistry.Register(docx.New())
	extractorRegistry.Register(pdf.New())

	aiService, err := buildAIService(ai)
	if err != nil {
		return nil, err
	}

	registry := services.NewPluginRegistry()
	for _, p := range []driven.Plugin{
		ingestion.New(digester),
		extraction.New(extractorRegistry),
		categorize.New(),
		aisummary.New(aiService),
	} {
		if err := registry.Register(p); err != nil {
			return nil, err
		}
	}

	return services.NewOrchestrator(cfg, registry), nil
}

// buildAIService constructs the configured oracle provider, or nil
// when no provider is configured. The AI summary plugin tolerates a
// nil service and fails only when explicitly enabled.
func buildAIService(ai *file.AISettings) (driven.AIService, error) {
	if ai == nil || ai.Provider == "" {
		return nil, nil
	}

	apiKey := os.Getenv(ai.APIKeyEnv)
	if apiKey == "" {
		logger.Warn("AI provider %q configured but %s is not set", ai.Provider, ai.APIKeyEnv)
		return nil, nil
	}

	switch ai.Provider {
	case "anthropic":
		return anthropic.New(anthropic.Config{
			APIKey:            apiKey,
			BaseURL:           ai.BaseURL,
			Model:             ai.Model,
			RequestsPerMinute: ai.RequestsPerMinute,
		})
	case "openai":
		return openai.New(openai.Config{
			APIKey:            apiKey,
			BaseURL:           ai.BaseURL,
			Model:             ai.Model,
			RequestsPerMinute: ai.RequestsPerMinute,
		})
	default:
		return nil, fmt.Errorf("%w: unknown AI provider %q", domain.ErrInvalidConfig, ai.Provider)
	}
}
