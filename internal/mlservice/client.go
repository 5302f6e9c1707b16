// Package mlservice talks to the external time-series forecasting service.
// The model itself is a black box here: the client sends a store and a
// horizon and gets back per-day predicted values with bounds. No retry or
// timeout logic beyond the request deadline lives in this client; the
// caller owns re-issuing failed requests.
package mlservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Akmalwizdom/siprems-backend/internal/domain"
	"github.com/Akmalwizdom/siprems-backend/internal/timeutil"
)

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type predictRequest struct {
	StoreID string `json:"store_id"`
	Periods int    `json:"periods"`
}

type predictionRow struct {
	Date      string  `json:"date"`
	Predicted float64 `json:"predicted"`
	Lower     float64 `json:"lower"`
	Upper     float64 `json:"upper"`
}

type predictResponse struct {
	Status      string          `json:"status"`
	Message     string          `json:"message"`
	Predictions []predictionRow `json:"predictions"`
	ModelInfo   struct {
		Periods  int     `json:"periods"`
		Accuracy float64 `json:"accuracy"`
	} `json:"model_info"`
}

// PredictResult is the consumed forecast: ordered points plus the model's
// self-reported validation accuracy.
type PredictResult struct {
	Points   []domain.ForecastPoint
	Accuracy float64
}

// Predict requests a forecast of the given horizon for one store.
func (c *Client) Predict(ctx context.Context, storeID string, days int) (*PredictResult, error) {
	payload, err := json.Marshal(predictRequest{StoreID: storeID, Periods: days})
	if err != nil {
		return nil, fmt.Errorf("encode predict request: %w", err)
	}

	url := c.baseURL + "/ml/predict"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build predict request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ml service predict call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ml service predict returned status %d", resp.StatusCode)
	}

	var body predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode predict response: %w", err)
	}
	if body.Status != "success" {
		return nil, fmt.Errorf("ml service predict failed: %s", body.Message)
	}

	points := make([]domain.ForecastPoint, 0, len(body.Predictions))
	for _, row := range body.Predictions {
		date, err := timeutil.ParseDate(row.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid prediction date %q: %w", row.Date, err)
		}
		points = append(points, domain.ForecastPoint{
			Date:       date,
			Predicted:  row.Predicted,
			LowerBound: row.Lower,
			UpperBound: row.Upper,
		})
	}

	return &PredictResult{
		Points:   points,
		Accuracy: body.ModelInfo.Accuracy,
	}, nil
}
