// cmd/server/main.go
package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/nutrirag/nutrirag/internal/config"
	"github.com/nutrirag/nutrirag/internal/handlers"
	"github.com/nutrirag/nutrirag/internal/llm"
	"github.com/nutrirag/nutrirag/internal/nutrition"
	"github.com/nutrirag/nutrirag/internal/vectordb"
)

func main() {
	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Each external client is optional: a missing key or failed init
	// disables the feature and the health endpoint reports it, the
	// process keeps running.
	var llmClient llm.Client
	if cfg.AnthropicAPIKey != "" {
		llmClient = llm.NewAnthropicClient(llm.DefaultEndpoint, cfg.AnthropicAPIKey, cfg.AnthropicModel)
		logger.Info("Claude client initialized", "model", cfg.AnthropicModel)
	} else {
		logger.Warn("ANTHROPIC_API_KEY not set, chat disabled")
	}

	var index vectordb.Index
	if cfg.WeaviateHost != "" {
		weaviateIndex, err := vectordb.NewWeaviateIndex(vectordb.WeaviateConfig{
			Host:   cfg.WeaviateHost,
			Scheme: cfg.WeaviateScheme,
			APIKey: cfg.WeaviateAPIKey,
			Class:  cfg.WeaviateClass,
		}, logger)
		if err != nil {
			logger.Error("vector index initialization failed, retrieval disabled", "error", err)
		} else {
			index = weaviateIndex
			logger.Info("vector index initialized", "host", cfg.WeaviateHost, "class", cfg.WeaviateClass)
		}
	} else {
		logger.Warn("WEAVIATE_HOST not set, document retrieval disabled")
	}

	var usdaClient *nutrition.USDAClient
	var enricher *nutrition.Enricher
	if cfg.USDAAPIKey != "" {
		usdaClient = nutrition.NewUSDAClient(nutrition.DefaultBaseURL, cfg.USDAAPIKey)
		enricher = nutrition.NewEnricher(usdaClient, logger)
		logger.Info("USDA client initialized")
	} else {
		logger.Warn("USDA_API_KEY not set, enrichment disabled")
	}

	healthHandler := &handlers.HealthHandler{LLM: llmClient, Index: index, USDA: usdaClient}
	uploadHandler := &handlers.UploadHandler{LLM: llmClient, Index: index, Logger: logger}
	chatHandler := &handlers.ChatHandler{
		LLM:      llmClient,
		Index:    index,
		Enricher: enricher,
		TopK:     3,
		Logger:   logger,
	}
	usdaHandler := &handlers.USDAHandler{Client: usdaClient, Logger: logger}

	router := mux.NewRouter()
	router.HandleFunc("/", healthHandler.Root).Methods(http.MethodGet)
	router.HandleFunc("/api/health", healthHandler.Health).Methods(http.MethodGet)
	router.HandleFunc("/api/upload", uploadHandler.Upload).Methods(http.MethodPost)
	router.HandleFunc("/api/chat", chatHandler.Chat).Methods(http.MethodPost)
	router.HandleFunc("/api/test-usda/{food_name}", usdaHandler.TestSearch).Methods(http.MethodGet)

	handler := handlers.CORS(handlers.RequestLogging(logger)(router))

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info("Nutrition RAG API starting", "addr", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}
