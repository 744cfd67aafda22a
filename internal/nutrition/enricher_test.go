package nutrition

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestAppliesKeywords(t *testing.T) {
	e := NewEnricher(nil, testLogger())

	assert.True(t, e.Applies("How many CALORIES in chicken?"))
	assert.True(t, e.Applies("tell me about nutrition"))
	assert.True(t, e.Applies("which vitamin do I need"))
	assert.False(t, e.Applies("what is the weather today"))
	assert.False(t, e.Applies("tell me a joke"))
}

func TestMatchFoodFirstInVocabularyOrder(t *testing.T) {
	// "chicken" precedes "rice" in the vocabulary, so it wins even when
	// both appear.
	food, ok := matchFood("calories in rice and chicken")
	require.True(t, ok)
	assert.Equal(t, "chicken", food)
}

func TestMatchFoodSubstringFalsePositive(t *testing.T) {
	// Containment matching is not tokenized: "rice" inside "price"
	// matches. Known quirk, kept on purpose.
	food, ok := matchFood("what is the price of gold in calories")
	require.True(t, ok)
	assert.Equal(t, "rice", food)
}

func TestMatchFoodNoMatch(t *testing.T) {
	_, ok := matchFood("calories in dragonfruit")
	assert.False(t, ok)
}

func newUSDAServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/foods/search"):
			json.NewEncoder(w).Encode(FoodSearchResult{
				TotalHits: 1,
				Foods:     []FoodSummary{{FDCID: 171077, Description: "Chicken, broilers or fryers, breast, meat only, cooked, roasted"}},
			})
		case strings.HasPrefix(r.URL.Path, "/food/171077"):
			json.NewEncoder(w).Encode(FoodDetail{
				FDCID:       171077,
				Description: "Chicken, broilers or fryers, breast, meat only, cooked, roasted",
				FoodNutrients: []FoodNutrient{
					{Nutrient: NutrientInfo{Name: "Energy", UnitName: "KCAL"}, Amount: 165},
					{Nutrient: NutrientInfo{Name: "Protein", UnitName: "G"}, Amount: 31},
					{Nutrient: NutrientInfo{Name: "Total lipid (fat)", UnitName: "G"}, Amount: 3.57},
					{Nutrient: NutrientInfo{Name: "Cholesterol", UnitName: "MG"}, Amount: 85},
				},
			})
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestEnrichChickenCalories(t *testing.T) {
	server := newUSDAServer(t)
	defer server.Close()

	e := NewEnricher(NewUSDAClient(server.URL, "test-key"), testLogger())

	block := e.Enrich(context.Background(), "What are the calories in chicken?")
	require.NotEmpty(t, block)

	lines := strings.Split(block, "\n")
	assert.Equal(t, "**USDA Nutrition Data for Chicken, broilers or fryers, breast, meat only, cooked, roasted** (per 100g):", lines[0])
	assert.Contains(t, block, "- Calories: 165kcal")
	assert.Contains(t, block, "- Protein: 31g")
	assert.Contains(t, block, "- Fat: 3.57g")
	// Cholesterol is not on the allow-list.
	assert.NotContains(t, block, "Cholesterol")
}

func TestEnrichNoKeywordYieldsEmpty(t *testing.T) {
	server := newUSDAServer(t)
	defer server.Close()

	e := NewEnricher(NewUSDAClient(server.URL, "test-key"), testLogger())

	assert.Empty(t, e.Enrich(context.Background(), "tell me about chicken farming"))
}

func TestEnrichFailuresDegradeToEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	e := NewEnricher(NewUSDAClient(server.URL, "test-key"), testLogger())

	assert.Empty(t, e.Enrich(context.Background(), "calories in chicken"))
}

func TestEnrichNoSearchHitsYieldsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(FoodSearchResult{TotalHits: 0, Foods: []FoodSummary{}})
	}))
	defer server.Close()

	e := NewEnricher(NewUSDAClient(server.URL, "test-key"), testLogger())

	assert.Empty(t, e.Enrich(context.Background(), "calories in chicken"))
}

func TestFormatNutritionIdempotent(t *testing.T) {
	detail := &FoodDetail{
		Description: "Rice, white, cooked",
		FoodNutrients: []FoodNutrient{
			{Nutrient: NutrientInfo{Name: "Energy", UnitName: "KCAL"}, Amount: 130},
			{Nutrient: NutrientInfo{Name: "Carbohydrate, by difference", UnitName: "G"}, Amount: 28.2},
			{Nutrient: NutrientInfo{Name: "Iron, Fe", UnitName: "MG"}, Amount: 0.2},
		},
	}

	first := FormatNutrition(detail)
	second := FormatNutrition(detail)
	assert.Equal(t, first, second)

	assert.Equal(t, "**USDA Nutrition Data for Rice, white, cooked** (per 100g):\n- Calories: 130kcal\n- Carbohydrates: 28.2g\n- Iron: 0.2mg", first)
}
