// Package nutrition looks up food-composition facts in the USDA
// FoodData Central API and formats them for prompt enrichment.
package nutrition

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// DefaultBaseURL is the public FoodData Central endpoint.
const DefaultBaseURL = "https://api.nal.usda.gov/fdc/v1"

// USDAClient is a thin client for the FoodData Central search and
// detail endpoints.
type USDAClient struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// NewUSDAClient returns a client with the fixed 10 second call timeout.
func NewUSDAClient(baseURL string, apiKey string) *USDAClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &USDAClient{
		BaseURL: baseURL,
		APIKey:  apiKey,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// FoodSummary is one search hit.
type FoodSummary struct {
	FDCID       int64  `json:"fdcId"`
	Description string `json:"description"`
	DataType    string `json:"dataType,omitempty"`
}

// FoodSearchResult is the search endpoint's response.
type FoodSearchResult struct {
	TotalHits int           `json:"totalHits"`
	Foods     []FoodSummary `json:"foods"`
}

// FoodNutrient is one nutrient measurement on a food detail record.
type FoodNutrient struct {
	Nutrient NutrientInfo `json:"nutrient"`
	Amount   float64      `json:"amount"`
}

// NutrientInfo names a nutrient and its measurement unit.
type NutrientInfo struct {
	Name     string `json:"name"`
	UnitName string `json:"unitName"`
}

// FoodDetail is the detail endpoint's response, per 100g of the food.
type FoodDetail struct {
	FDCID         int64          `json:"fdcId"`
	Description   string         `json:"description"`
	FoodNutrients []FoodNutrient `json:"foodNutrients"`
}

// SearchFoods queries the search endpoint for the given term.
func (c *USDAClient) SearchFoods(ctx context.Context, query string, pageSize int) (*FoodSearchResult, error) {
	endpoint := fmt.Sprintf("%s/foods/search?query=%s&pageSize=%d&api_key=%s",
		c.BaseURL, url.QueryEscape(query), pageSize, url.QueryEscape(c.APIKey))

	var result FoodSearchResult
	if err := c.getJSON(ctx, endpoint, &result); err != nil {
		return nil, fmt.Errorf("food search for %q failed: %w", query, err)
	}
	return &result, nil
}

// FoodDetails fetches the full nutrient record for a food identifier.
func (c *USDAClient) FoodDetails(ctx context.Context, fdcID int64) (*FoodDetail, error) {
	endpoint := fmt.Sprintf("%s/food/%s?api_key=%s",
		c.BaseURL, strconv.FormatInt(fdcID, 10), url.QueryEscape(c.APIKey))

	var detail FoodDetail
	if err := c.getJSON(ctx, endpoint, &detail); err != nil {
		return nil, fmt.Errorf("food details for %d failed: %w", fdcID, err)
	}
	return &detail, nil
}

func (c *USDAClient) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("USDA API returned status: %s", resp.Status)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
