// Package mealvision is the HTTP boundary to the external photo-analysis
// service. It ships an image and gets back a structured nutrition estimate;
// the recognition itself lives entirely on the other side of the wire.
package mealvision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type Estimate struct {
	Name  string         `json:"name"`
	Items []EstimateItem `json:"items"`
}

type EstimateItem struct {
	Name     string  `json:"name"`
	Portion  float64 `json:"portion"`
	Unit     string  `json:"unit"`
	Calories int     `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

type analyzeRequest struct {
	ImageB64 string `json:"image_b64"`
}

// AnalyzePhoto submits the raw image bytes for analysis. The caller supplies
// the context deadline; absent an HTTPClient a conservative default timeout
// applies.
func (c *Client) AnalyzePhoto(ctx context.Context, image []byte) (Estimate, error) {
	base := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if base == "" {
		return Estimate{}, fmt.Errorf("mealvision base URL is required")
	}
	if len(image) == 0 {
		return Estimate{}, fmt.Errorf("image is empty")
	}
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	payload, err := json.Marshal(analyzeRequest{ImageB64: base64.StdEncoding.EncodeToString(image)})
	if err != nil {
		return Estimate{}, fmt.Errorf("encode mealvision request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+"/v1/analyze", bytes.NewReader(payload))
	if err != nil {
		return Estimate{}, fmt.Errorf("create mealvision request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return Estimate{}, fmt.Errorf("execute mealvision request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Estimate{}, fmt.Errorf("read mealvision response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Estimate{}, fmt.Errorf("mealvision request failed with status %d", resp.StatusCode)
	}

	var estimate Estimate
	if err := json.Unmarshal(body, &estimate); err != nil {
		return Estimate{}, fmt.Errorf("decode mealvision response: %w", err)
	}
	if estimate.Name == "" && len(estimate.Items) == 0 {
		return Estimate{}, fmt.Errorf("mealvision returned an empty estimate")
	}
	return estimate, nil
}
