package handlers

import (
	"net/http"

	"github.com/nutrirag/nutrirag/internal/llm"
	"github.com/nutrirag/nutrirag/internal/nutrition"
	"github.com/nutrirag/nutrirag/internal/vectordb"
)

// HealthHandler reports liveness and which external clients initialized.
type HealthHandler struct {
	LLM   llm.Client
	Index vectordb.Index
	USDA  *nutrition.USDAClient
}

type rootResponse struct {
	Message string `json:"message"`
}

type healthResponse struct {
	Status          string `json:"status"`
	ClaudeAvailable bool   `json:"claude_available"`
	IndexAvailable  bool   `json:"index_available"`
	USDAAvailable   bool   `json:"usda_available"`
	Message         string `json:"message"`
}

func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, rootResponse{Message: "Nutrition RAG API is running!"})
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	res := healthResponse{
		Status:          "healthy",
		ClaudeAvailable: h.LLM != nil,
		IndexAvailable:  h.Index != nil,
		USDAAvailable:   h.USDA != nil,
	}

	if res.ClaudeAvailable {
		res.Message = "All services working!"
	} else {
		res.Message = "Claude not available - check API key"
	}

	writeJSON(w, http.StatusOK, res)
}
