package mealvision

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzePhotoParsesEstimate(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/analyze", r.URL.Path)
		var req analyzeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotEmpty(t, req.ImageB64)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
  "name": "Chicken bowl",
  "items": [
    {"name": "Grilled chicken", "portion": 150, "unit": "g", "calories": 250, "protein_g": 45, "carbs_g": 0, "fat_g": 6},
    {"name": "Rice", "portion": 180, "unit": "g", "calories": 230, "protein_g": 4.5, "carbs_g": 50, "fat_g": 0.5}
  ]
}`))
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	estimate, err := c.AnalyzePhoto(context.Background(), []byte("fake-jpeg-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "Chicken bowl", estimate.Name)
	require.Len(t, estimate.Items, 2)
	assert.Equal(t, 250, estimate.Items[0].Calories)
}

func TestAnalyzePhotoNonSuccessStatus(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	_, err := c.AnalyzePhoto(context.Background(), []byte("bytes"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
}

func TestAnalyzePhotoEmptyImage(t *testing.T) {
	t.Parallel()
	c := &Client{BaseURL: "http://localhost:1"}
	_, err := c.AnalyzePhoto(context.Background(), nil)
	require.Error(t, err)
}

func TestAnalyzePhotoEmptyEstimate(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	_, err := c.AnalyzePhoto(context.Background(), []byte("bytes"))
	require.Error(t, err)
}
