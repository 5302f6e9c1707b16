// internal/repository/postgres/calendar_repository.go
package postgres

import (
	"context"
	"fmt"

	"github.com/Akmalwizdom/siprems-backend/internal/domain"
	"github.com/Akmalwizdom/siprems-backend/internal/repository"
	"github.com/jmoiron/sqlx"
)

type calendarRepository struct {
	db *sqlx.DB
}

func NewCalendarRepository(db *sqlx.DB) repository.CalendarRepository {
	return &calendarRepository{db: db}
}

func (r *calendarRepository) GetActiveEvents(ctx context.Context) ([]domain.CalendarEvent, error) {
	// Rejected events must not leak into forecasts or chart annotations.
	query := `
        SELECT date, COALESCE(title, '') AS title, COALESCE(type, '') AS type
        FROM calendar_events
        WHERE user_decision IS NULL OR user_decision != 'rejected'
        ORDER BY date
    `

	var events []domain.CalendarEvent
	if err := r.db.SelectContext(ctx, &events, query); err != nil {
		return nil, fmt.Errorf("error getting calendar events: %w", err)
	}

	return events, nil
}
