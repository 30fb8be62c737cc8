package food

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return &Client{APIKey: "demo", BaseURL: ts.URL + "/", HTTPClient: ts.Client()}
}

func TestClient_Requests(t *testing.T) {
	tests := []struct {
		name       string
		call       func(c *Client) error
		wantPath   string
		wantParams map[string]string
	}{
		{
			name: "SearchRecipes",
			call: func(c *Client) error {
				_, err := c.SearchRecipes(context.Background(), RecipeSearch{Query: "pasta", Number: 5, Diet: "vegan"})
				return err
			},
			wantPath:   "/recipes/complexSearch",
			wantParams: map[string]string{"query": "pasta", "number": "5", "diet": "vegan", "addRecipeNutrition": "true", "cuisine": ""},
		},
		{
			name: "RecipeByID",
			call: func(c *Client) error {
				_, err := c.RecipeByID(context.Background(), 716429)
				return err
			},
			wantPath:   "/recipes/716429/information",
			wantParams: map[string]string{"addRecipeNutrition": "true"},
		},
		{
			name: "RandomRecipesDefault",
			call: func(c *Client) error {
				_, err := c.RandomRecipes(context.Background(), 0, "")
				return err
			},
			wantPath:   "/recipes/random",
			wantParams: map[string]string{"number": "10", "tags": ""},
		},
		{
			name: "SearchIngredients",
			call: func(c *Client) error {
				_, err := c.SearchIngredients(context.Background(), "banana", 3)
				return err
			},
			wantPath:   "/food/ingredients/search",
			wantParams: map[string]string{"query": "banana", "number": "3"},
		},
		{
			name: "IngredientByID",
			call: func(c *Client) error {
				_, err := c.IngredientByID(context.Background(), 9040)
				return err
			},
			wantPath:   "/food/ingredients/9040/information",
			wantParams: map[string]string{"amount": "100", "unit": "grams"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, tt.wantPath, r.URL.Path)
				q := r.URL.Query()
				assert.Equal(t, "demo", q.Get("apiKey"))
				for k, v := range tt.wantParams {
					assert.Equal(t, v, q.Get(k), "param %s", k)
				}
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"ok":true}`))
			})
			require.NoError(t, tt.call(c))
		})
	}
}

func TestClient_PassesBodyThrough(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results":[{"id":1,"title":"Pasta"}],"totalResults":1}`))
	})

	raw, err := c.SearchRecipes(context.Background(), RecipeSearch{Query: "pasta"})
	require.NoError(t, err)
	assert.Equal(t, "Pasta", gjson.GetBytes(raw, "results.0.title").String())
	assert.Equal(t, int64(1), gjson.GetBytes(raw, "totalResults").Int())
}

func TestClient_UpstreamError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"status":"failure","code":402,"message":"Your daily points limit has been reached."}`))
	})

	_, err := c.RecipeByID(context.Background(), 1)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusPaymentRequired, apiErr.Status)
	assert.Equal(t, "Your daily points limit has been reached.", apiErr.Message)
}

func TestClient_UpstreamErrorWithoutJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	})

	_, err := c.SearchIngredients(context.Background(), "apple", 0)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Empty(t, apiErr.Message)
	assert.Contains(t, apiErr.Error(), "502")
}

func TestClient_MissingAPIKey(t *testing.T) {
	c := &Client{}
	_, err := c.RandomRecipes(context.Background(), 1, "")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestClient_InvalidJSONBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>maintenance</html>`))
	})

	_, err := c.RecipeByID(context.Background(), 7)
	require.Error(t, err)
	assert.EqualError(t, err, "decode spoonacular response: invalid JSON")
}
