package vectordb

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
	"github.com/weaviate/weaviate-go-client/v4/weaviate"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/auth"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/graphql"
	"github.com/weaviate/weaviate/entities/models"
)

// WeaviateConfig holds connection details for the hosted Weaviate index.
type WeaviateConfig struct {
	Host   string
	Scheme string
	APIKey string
	Class  string
}

// WeaviateIndex stores and retrieves chunks in a Weaviate class whose
// vectorizer module embeds text server-side.
type WeaviateIndex struct {
	client *weaviate.Client
	class  string
	logger *slog.Logger
}

// NewWeaviateIndex creates the client and makes sure the chunk class
// exists.
func NewWeaviateIndex(cfg WeaviateConfig, logger *slog.Logger) (*WeaviateIndex, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("weaviate host cannot be empty")
	}
	if cfg.Scheme == "" {
		cfg.Scheme = "https"
	}
	if cfg.Class == "" {
		cfg.Class = "NutritionChunk"
	}

	var authConfig auth.Config
	if cfg.APIKey != "" {
		authConfig = auth.ApiKey{Value: cfg.APIKey}
	}

	client, err := weaviate.NewClient(weaviate.Config{
		Host:       cfg.Host,
		Scheme:     cfg.Scheme,
		AuthConfig: authConfig,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create weaviate client: %w", err)
	}

	idx := &WeaviateIndex{
		client: client,
		class:  cfg.Class,
		logger: logger.With("component", "weaviate-index"),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := idx.ensureSchema(ctx); err != nil {
		return nil, err
	}

	return idx, nil
}

// ensureSchema creates the chunk class with a server-side text vectorizer.
func (w *WeaviateIndex) ensureSchema(ctx context.Context) error {
	class := &models.Class{
		Class:       w.class,
		Description: "Uploaded nutrition document chunks",
		Vectorizer:  "text2vec-openai",
		ModuleConfig: map[string]interface{}{
			"text2vec-openai": map[string]interface{}{
				"model": "text-embedding-3-small",
				"type":  "text",
			},
		},
		Properties: []*models.Property{
			{
				Name:        "text",
				DataType:    []string{"text"},
				Description: "Chunk text",
			},
			{
				Name:        "filename",
				DataType:    []string{"text"},
				Description: "Source document filename",
			},
			{
				Name:        "chunkId",
				DataType:    []string{"text"},
				Description: "Composite chunk identifier assigned at upload time",
			},
		},
	}

	err := w.client.Schema().ClassCreator().WithClass(class).Do(ctx)
	if err != nil {
		if !strings.Contains(err.Error(), "already exists") {
			return fmt.Errorf("failed to create %s class: %w", w.class, err)
		}
		w.logger.Info("class already exists", "class", w.class)
		return nil
	}

	w.logger.Info("created class", "class", w.class)
	return nil
}

// UpsertChunks submits the whole batch in one call. Weaviate object IDs
// must be UUIDs, so the composite record ID travels as the chunkId
// property instead.
func (w *WeaviateIndex) UpsertChunks(ctx context.Context, records []Record) error {
	if len(records) == 0 {
		return nil
	}

	objects := make([]*models.Object, 0, len(records))
	for _, rec := range records {
		objects = append(objects, &models.Object{
			Class: w.class,
			ID:    strfmt.UUID(uuid.NewString()),
			Properties: map[string]interface{}{
				"text":     rec.Text,
				"filename": rec.Filename,
				"chunkId":  rec.ID,
			},
		})
	}

	resp, err := w.client.Batch().ObjectsBatcher().WithObjects(objects...).Do(ctx)
	if err != nil {
		w.logger.Error("batch upsert failed", "error", err, "objects", len(objects))
		return &UpsertError{Err: err}
	}

	for _, obj := range resp {
		if obj.Result != nil && obj.Result.Errors != nil && len(obj.Result.Errors.Error) > 0 {
			err := fmt.Errorf("object %s: %s", obj.ID, obj.Result.Errors.Error[0].Message)
			w.logger.Error("batch upsert rejected object", "error", err)
			return &UpsertError{Err: err}
		}
	}

	w.logger.Info("upserted chunks", "count", len(objects))
	return nil
}

// Query runs a nearText similarity search using the raw message as the
// query concept and returns up to limit matches, best first.
func (w *WeaviateIndex) Query(ctx context.Context, message string, limit int) ([]Match, error) {
	fields := []graphql.Field{
		{Name: "text"},
		{Name: "filename"},
		{Name: "chunkId"},
		{Name: "_additional", Fields: []graphql.Field{
			{Name: "certainty"},
			{Name: "distance"},
		}},
	}

	nearText := w.client.GraphQL().NearTextArgBuilder().
		WithConcepts([]string{message})

	result, err := w.client.GraphQL().Get().
		WithClassName(w.class).
		WithNearText(nearText).
		WithFields(fields...).
		WithLimit(limit).
		Do(ctx)
	if err != nil {
		w.logger.Error("similarity query failed", "error", err)
		return nil, &QueryError{Err: err}
	}
	if len(result.Errors) > 0 {
		err := fmt.Errorf("graphql error: %s", result.Errors[0].Message)
		w.logger.Error("similarity query failed", "error", err)
		return nil, &QueryError{Err: err}
	}

	matches := parseMatches(result.Data, w.class)
	w.logger.Info("similarity query completed", "matches", len(matches))
	return matches, nil
}

func parseMatches(data map[string]models.JSONObject, class string) []Match {
	matches := []Match{}

	get, ok := data["Get"].(map[string]interface{})
	if !ok {
		return matches
	}
	items, ok := get[class].([]interface{})
	if !ok {
		return matches
	}

	for _, item := range items {
		itemMap, ok := item.(map[string]interface{})
		if !ok {
			continue
		}

		var m Match
		if val, ok := itemMap["text"].(string); ok {
			m.Text = val
		}
		if val, ok := itemMap["filename"].(string); ok {
			m.Filename = val
		}
		if additional, ok := itemMap["_additional"].(map[string]interface{}); ok {
			if certainty, ok := additional["certainty"].(float64); ok {
				m.Score = float32(certainty)
			} else if distance, ok := additional["distance"].(float64); ok {
				m.Score = 1 - float32(distance)
			}
		}

		matches = append(matches, m)
	}

	return matches
}

// Ready reports whether the cluster answers its readiness check.
func (w *WeaviateIndex) Ready(ctx context.Context) bool {
	ready, err := w.client.Misc().ReadyChecker().Do(ctx)
	if err != nil {
		w.logger.Warn("readiness check failed", "error", err)
		return false
	}
	return ready
}
