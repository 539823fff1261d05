package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/spigell/skillmatch/internal/ai"
	"github.com/spigell/skillmatch/internal/ai/gemini"
	"github.com/spigell/skillmatch/internal/graph"
	"github.com/spigell/skillmatch/internal/logger"
	"github.com/spigell/skillmatch/internal/matching"
	"github.com/spigell/skillmatch/internal/secrets"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// setup builds the logger and config every command starts with.
func setup() (*zap.Logger, *Config) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	return logger, config
}

func buildGraph(config *Config) *graph.Graph {
	if len(config.Graph.ExtraEdges) == 0 {
		return graph.Default()
	}
	return graph.New(graph.Merge(graph.DefaultEdges(), config.Graph.ExtraEdges))
}

func buildMatcher(config *Config, g *graph.Graph) *matching.Matcher {
	return matching.New(g, matching.Options{
		FuzzyThreshold: config.Matching.FuzzyThreshold,
		ExpandDepth:    config.Matching.ExpandDepth,
	})
}

// aiCollaborators returns the extractor and embedder to rank with. With AI
// disabled both are ai.Disabled.
func aiCollaborators(ctx context.Context, config *AIConfig, log *zap.Logger) (ai.Extractor, ai.Embedder, error) {
	if config == nil || !config.Enabled {
		return ai.Disabled{}, ai.Disabled{}, nil
	}

	client, err := newGeminiClient(ctx, config.Gemini, log)
	if err != nil {
		return nil, nil, err
	}

	aiLogger := logger.WithAIFields(log, gemini.Provider, client.Model())
	extractor := gemini.NewExtractor(client, gemini.DefaultTopK, client.MaxLogLength(), aiLogger)

	return extractor, gemini.NewEmbedder(client), nil
}

func newGeminiClient(ctx context.Context, cfg *GeminiConfig, log *zap.Logger) (*gemini.Client, error) {
	if cfg == nil {
		cfg = &GeminiConfig{}
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.APIKeyFile,
		Env:  "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	client, err := gemini.NewClient(ctx, apiKey, cfg.Config, log)
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	log.Info("gemini client ready",
		zap.String("model", client.Model()),
		zap.String("embedding_model", client.EmbeddingModel()),
	)
	return client, nil
}
