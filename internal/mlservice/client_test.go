package mlservice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredictDecodesResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/ml/predict", r.URL.Path)

		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "store-1", req["store_id"])
		assert.EqualValues(t, 14, req["periods"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": "success",
			"predictions": [
				{"date": "2025-07-01", "predicted": 120000, "lower": 90000, "upper": 150000},
				{"date": "2025-07-02", "predicted": 125000, "lower": 95000, "upper": 155000}
			],
			"model_info": {"periods": 14, "accuracy": 0.91}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	result, err := client.Predict(context.Background(), "store-1", 14)
	require.NoError(t, err)

	require.Len(t, result.Points, 2)
	assert.Equal(t, "2025-07-01", result.Points[0].Date.Format("2006-01-02"))
	assert.InDelta(t, 120000, result.Points[0].Predicted, 1e-9)
	assert.InDelta(t, 90000, result.Points[0].LowerBound, 1e-9)
	assert.InDelta(t, 0.91, result.Accuracy, 1e-9)
}

func TestPredictRejectsFailureStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "error", "message": "model not trained"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	_, err := client.Predict(context.Background(), "store-1", 14)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model not trained")
}

func TestPredictRejectsNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	_, err := client.Predict(context.Background(), "store-1", 14)
	assert.Error(t, err)
}

func TestPredictRejectsMalformedDate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"status": "success",
			"predictions": [{"date": "07/01/2025", "predicted": 1}]
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	_, err := client.Predict(context.Background(), "store-1", 14)
	assert.Error(t, err)
}
