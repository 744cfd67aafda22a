package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/nutrirag/nutrirag/internal/llm"
	"github.com/nutrirag/nutrirag/internal/nutrition"
	"github.com/nutrirag/nutrirag/internal/prompt"
	"github.com/nutrirag/nutrirag/internal/vectordb"
)

// noMatchesResponse is returned without calling the LLM when the index
// is configured but holds nothing relevant to the question.
const noMatchesResponse = "I don't have information about that. Please upload nutrition documents first!"

// generalKnowledgeSource labels answers produced without any retrieval
// or enrichment context.
const generalKnowledgeSource = "Claude AI Nutrition Knowledge"

// enrichmentSource labels answers grounded in USDA facts.
const enrichmentSource = "USDA FoodData Central"

// ChatHandler orchestrates one chat request: context selection, prompt
// composition, the LLM call, and response shaping.
type ChatHandler struct {
	LLM      llm.Client
	Index    vectordb.Index
	Enricher *nutrition.Enricher
	TopK     int
	Logger   *slog.Logger
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Response       string   `json:"response"`
	Sources        []string `json:"sources"`
	RelevantChunks int      `json:"relevant_chunks,omitempty"`
}

func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	if h.LLM == nil {
		writeError(w, http.StatusServiceUnavailable, "Claude AI service not available. Please check API key configuration.")
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		writeError(w, http.StatusBadRequest, "Message cannot be empty")
		return
	}

	ctx := r.Context()

	// Pick the context source once per request: retrieval when an index
	// is configured, otherwise best-effort enrichment, otherwise none.
	source := prompt.SourceNone
	contextBlock := ""
	sources := []string{generalKnowledgeSource}
	chunkCount := 1

	if h.Index != nil {
		matches, err := h.Index.Query(ctx, req.Message, h.TopK)
		if err != nil {
			h.Logger.Error("retrieval failed", "error", err)
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		if len(matches) == 0 {
			writeJSON(w, http.StatusOK, chatResponse{
				Response: noMatchesResponse,
				Sources:  []string{},
			})
			return
		}

		source = prompt.SourceRetrievedChunks
		contextBlock = prompt.ChunkContext(matches)
		sources = dedupeFilenames(matches)
		chunkCount = len(matches)
	} else if h.Enricher != nil {
		if enrichment := h.Enricher.Enrich(ctx, req.Message); enrichment != "" {
			source = prompt.SourceDomainEnrichment
			contextBlock = enrichment
			sources = []string{enrichmentSource}
		}
	}

	fullPrompt := prompt.Compose(req.Message, source, contextBlock)

	answer, err := h.LLM.Complete(ctx, fullPrompt)
	if err != nil {
		h.Logger.Error("LLM call failed", "error", err)
		writeError(w, http.StatusInternalServerError,
			"Sorry, I encountered an error processing your nutrition question. Please try again. Error: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{
		Response:       answer,
		Sources:        sources,
		RelevantChunks: chunkCount,
	})
}

// dedupeFilenames returns the distinct source filenames in first-seen
// order.
func dedupeFilenames(matches []vectordb.Match) []string {
	seen := make(map[string]struct{}, len(matches))
	var filenames []string
	for _, m := range matches {
		if _, ok := seen[m.Filename]; ok {
			continue
		}
		seen[m.Filename] = struct{}{}
		filenames = append(filenames, m.Filename)
	}
	return filenames
}
