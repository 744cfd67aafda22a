package nutrition

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// enrichmentKeywords gate whether a message gets domain enrichment at all.
var enrichmentKeywords = []string{
	"calories", "protein", "nutrition", "nutrients", "vitamin", "mineral",
}

// foodVocabulary is the fixed, ordered set of known subject names. The
// first vocabulary entry contained in the message wins. Matching is by
// plain substring, not by token, so "rice" also matches inside "price";
// that behavior is load-bearing for existing callers and kept as is.
var foodVocabulary = []string{
	"chicken", "rice", "apple", "banana", "egg", "milk", "bread",
	"beef", "fish", "salmon", "potato", "broccoli", "spinach",
	"oats", "yogurt", "cheese", "almonds", "avocado",
}

// nutrientAllowList maps display labels to the lowercased USDA nutrient
// name fragment that identifies them, in render order.
var nutrientAllowList = []struct {
	Label string
	Key   string
}{
	{"Calories", "energy"},
	{"Protein", "protein"},
	{"Fat", "fat"},
	{"Carbohydrates", "carbohydrate"},
	{"Fiber", "fiber"},
	{"Sugar", "sugar"},
	{"Sodium", "sodium"},
	{"Calcium", "calcium"},
	{"Iron", "iron"},
	{"Vitamin C", "vitamin c"},
}

// Enricher augments chat prompts with structured USDA facts. Every
// lookup is best effort: any failure yields an empty enrichment string,
// never an error.
type Enricher struct {
	client *USDAClient
	logger *slog.Logger
}

// NewEnricher wires the enricher to a USDA client.
func NewEnricher(client *USDAClient, logger *slog.Logger) *Enricher {
	return &Enricher{
		client: client,
		logger: logger.With("component", "usda-enricher"),
	}
}

// Applies reports whether the message mentions any enrichment keyword,
// case-insensitively.
func (e *Enricher) Applies(message string) bool {
	lower := strings.ToLower(message)
	for _, kw := range enrichmentKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// matchFood returns the first vocabulary term contained in the message.
func matchFood(message string) (string, bool) {
	lower := strings.ToLower(message)
	for _, food := range foodVocabulary {
		if strings.Contains(lower, food) {
			return food, true
		}
	}
	return "", false
}

// Enrich returns a formatted nutrition block for the first known food
// mentioned in the message, or "" when enrichment does not apply or any
// external call fails.
func (e *Enricher) Enrich(ctx context.Context, message string) string {
	if e == nil || e.client == nil {
		return ""
	}
	if !e.Applies(message) {
		return ""
	}

	food, ok := matchFood(message)
	if !ok {
		return ""
	}

	search, err := e.client.SearchFoods(ctx, food, 1)
	if err != nil {
		e.logger.Warn("food search failed", "food", food, "error", err)
		return ""
	}
	if len(search.Foods) == 0 {
		e.logger.Info("no USDA match", "food", food)
		return ""
	}

	detail, err := e.client.FoodDetails(ctx, search.Foods[0].FDCID)
	if err != nil {
		e.logger.Warn("food details failed", "fdc_id", search.Foods[0].FDCID, "error", err)
		return ""
	}

	return FormatNutrition(detail)
}

// FormatNutrition renders a detail record as a fixed-format text block:
// a header line followed by one bullet per allow-listed nutrient found.
// The same record always formats to the same block.
func FormatNutrition(detail *FoodDetail) string {
	lines := []string{
		fmt.Sprintf("**USDA Nutrition Data for %s** (per 100g):", detail.Description),
	}

	for _, entry := range nutrientAllowList {
		for _, fn := range detail.FoodNutrients {
			if !strings.Contains(strings.ToLower(fn.Nutrient.Name), entry.Key) {
				continue
			}
			amount := strconv.FormatFloat(fn.Amount, 'f', -1, 64)
			unit := strings.ToLower(fn.Nutrient.UnitName)
			lines = append(lines, fmt.Sprintf("- %s: %s%s", entry.Label, amount, unit))
			break
		}
	}

	return strings.Join(lines, "\n")
}
