package holiday

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Akmalwizdom/siprems-backend/internal/timeutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchYearSkipsMalformedRows(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2025", r.URL.Query().Get("year"))
		_, _ = w.Write([]byte(`[
			{"holiday_date": "2025-01-01", "holiday_name": "Tahun Baru", "is_national_holiday": true},
			{"holiday_date": "not-a-date", "holiday_name": "Broken Row", "is_national_holiday": false},
			{"holiday_date": "2025-03-31", "holiday_name": "Idul Fitri", "is_national_holiday": true}
		]`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	holidays, err := client.FetchYear(context.Background(), 2025)
	require.NoError(t, err)

	require.Len(t, holidays, 2)
	assert.Equal(t, "Tahun Baru", holidays[0].Title)
	assert.True(t, holidays[0].IsNational)
	assert.Equal(t, "2025-03-31", timeutil.DateKey(holidays[1].Date))
}

func TestFetchRangeCoversEveryYear(t *testing.T) {
	var years []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		years = append(years, r.URL.Query().Get("year"))
		_, _ = w.Write([]byte(`[{"holiday_date": "` + r.URL.Query().Get("year") + `-12-25", "holiday_name": "Natal", "is_national_holiday": true}]`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	from := time.Date(2024, 11, 1, 0, 0, 0, 0, timeutil.WIB)
	to := time.Date(2025, 2, 1, 0, 0, 0, 0, timeutil.WIB)

	holidays, err := client.FetchRange(context.Background(), from, to)
	require.NoError(t, err)

	assert.Equal(t, []string{"2024", "2025"}, years)
	assert.Len(t, holidays, 2)
}

func TestFetchYearPropagatesServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.FetchYear(context.Background(), 2025)
	assert.Error(t, err)
}
