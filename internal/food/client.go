// Package food is a thin client for the Spoonacular recipe and ingredient API.
// Responses are passed through as raw JSON.
package food

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const defaultBaseURL = "https://api.spoonacular.com"

var ErrMissingAPIKey = errors.New("missing Spoonacular API key")

// APIError is returned when Spoonacular answers with a non-2xx status.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("spoonacular request failed with status %d", e.Status)
	}
	return fmt.Sprintf("spoonacular request failed with status %d: %s", e.Status, e.Message)
}

type Client struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

type RecipeSearch struct {
	Query        string
	Number       int
	Offset       int
	Type         string
	Cuisine      string
	Diet         string
	Intolerances string
}

func (c *Client) SearchRecipes(ctx context.Context, s RecipeSearch) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("query", s.Query)
	params.Set("addRecipeNutrition", "true")
	setInt(params, "number", s.Number)
	setInt(params, "offset", s.Offset)
	setString(params, "type", s.Type)
	setString(params, "cuisine", s.Cuisine)
	setString(params, "diet", s.Diet)
	setString(params, "intolerances", s.Intolerances)
	return c.get(ctx, "/recipes/complexSearch", params)
}

func (c *Client) RecipeByID(ctx context.Context, id int) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("addRecipeNutrition", "true")
	return c.get(ctx, fmt.Sprintf("/recipes/%d/information", id), params)
}

// RandomRecipes returns number random recipes (10 when number <= 0),
// optionally filtered by comma-separated tags.
func (c *Client) RandomRecipes(ctx context.Context, number int, tags string) (json.RawMessage, error) {
	if number <= 0 {
		number = 10
	}
	params := url.Values{}
	params.Set("number", strconv.Itoa(number))
	params.Set("addRecipeNutrition", "true")
	setString(params, "tags", tags)
	return c.get(ctx, "/recipes/random", params)
}

func (c *Client) SearchIngredients(ctx context.Context, query string, number int) (json.RawMessage, error) {
	if number <= 0 {
		number = 10
	}
	params := url.Values{}
	params.Set("query", query)
	params.Set("number", strconv.Itoa(number))
	return c.get(ctx, "/food/ingredients/search", params)
}

// IngredientByID returns nutrition for 100 grams of the ingredient.
func (c *Client) IngredientByID(ctx context.Context, id int) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("amount", "100")
	params.Set("unit", "grams")
	return c.get(ctx, fmt.Sprintf("/food/ingredients/%d/information", id), params)
}

func (c *Client) get(ctx context.Context, path string, params url.Values) (json.RawMessage, error) {
	if strings.TrimSpace(c.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	baseURL := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 12 * time.Second}
	}

	params.Set("apiKey", c.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create spoonacular request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute spoonacular request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read spoonacular response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{Status: resp.StatusCode, Message: upstreamMessage(body)}
	}
	if !gjson.ValidBytes(body) {
		return nil, errors.New("decode spoonacular response: invalid JSON")
	}
	return json.RawMessage(body), nil
}

func upstreamMessage(body []byte) string {
	if !gjson.ValidBytes(body) {
		return ""
	}
	return gjson.GetBytes(body, "message").String()
}

func setString(params url.Values, key, value string) {
	if value = strings.TrimSpace(value); value != "" {
		params.Set(key, value)
	}
}

func setInt(params url.Values, key string, value int) {
	if value > 0 {
		params.Set(key, strconv.Itoa(value))
	}
}
