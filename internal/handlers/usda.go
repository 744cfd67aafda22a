package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/nutrirag/nutrirag/internal/nutrition"
)

// USDAHandler exposes a diagnostic passthrough to the food-search API.
type USDAHandler struct {
	Client *nutrition.USDAClient
	Logger *slog.Logger
}

type usdaTestResponse struct {
	Query   string                  `json:"query"`
	Results []nutrition.FoodSummary `json:"results"`
}

func (h *USDAHandler) TestSearch(w http.ResponseWriter, r *http.Request) {
	if h.Client == nil {
		writeError(w, http.StatusServiceUnavailable, "USDA service not available. Please check API key configuration.")
		return
	}

	foodName := mux.Vars(r)["food_name"]

	result, err := h.Client.SearchFoods(r.Context(), foodName, 5)
	if err != nil {
		h.Logger.Error("USDA search failed", "query", foodName, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, usdaTestResponse{
		Query:   foodName,
		Results: result.Foods,
	})
}
