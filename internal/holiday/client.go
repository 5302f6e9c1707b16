// Package holiday fetches Indonesian public holidays from the external
// holiday API. Failures here are soft: the caller degrades to rendering
// the chart without holiday annotations.
package holiday

import (
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

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type holidayRow struct {
	Date       string `json:"holiday_date"`
	Name       string `json:"holiday_name"`
	IsNational bool   `json:"is_national_holiday"`
}

// FetchYear returns the public holidays of one calendar year.
func (c *Client) FetchYear(ctx context.Context, year int) ([]domain.Holiday, error) {
	url := fmt.Sprintf("%s?year=%d", c.baseURL, year)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build holiday request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("holiday api call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("holiday api returned status %d", resp.StatusCode)
	}

	var rows []holidayRow
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decode holiday response: %w", err)
	}

	holidays := make([]domain.Holiday, 0, len(rows))
	for _, row := range rows {
		date, err := timeutil.ParseDate(row.Date)
		if err != nil {
			// The API occasionally emits malformed rows; skip them.
			continue
		}
		holidays = append(holidays, domain.Holiday{
			Date:       date,
			Title:      row.Name,
			IsNational: row.IsNational,
		})
	}

	return holidays, nil
}

// FetchRange returns the holidays of every year touched by [from, to].
func (c *Client) FetchRange(ctx context.Context, from, to time.Time) ([]domain.Holiday, error) {
	var holidays []domain.Holiday
	for year := from.Year(); year <= to.Year(); year++ {
		yearly, err := c.FetchYear(ctx, year)
		if err != nil {
			return nil, err
		}
		holidays = append(holidays, yearly...)
	}
	return holidays, nil
}
