// internal/forecast/assembler.go
package forecast

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/Akmalwizdom/siprems-backend/internal/domain"
	"github.com/Akmalwizdom/siprems-backend/internal/timeutil"
)

// TimelineInput bundles the snapshots the chart assembly needs. History and
// Forecast are consumed as-is; the assembler never refetches anything.
type TimelineInput struct {
	History  []domain.DailySales
	Forecast []domain.ForecastPoint
	Events   []domain.CalendarEvent
	Holidays []domain.Holiday
}

// Timeline is the presentation-ready chart bundle.
type Timeline struct {
	Points              []domain.ChartPoint
	Annotations         []domain.EventAnnotation
	AppliedGrowthFactor float64
}

type dayAnnotation struct {
	titles []string
	types  []string
	seen   map[string]bool
}

// BuildTimeline merges the trailing historical window (oldest to newest)
// with the forecast horizon into one ordered chart, and attaches the
// calendar/holiday annotations that fall inside the chart range.
//
// Every day inside the historical window gets a numeric historical value,
// zero when no sales row exists for it; forecast-only days carry a nil
// historical value and a numeric prediction.
func BuildTimeline(p Policy, in TimelineInput) Timeline {
	historyByDay := make(map[string]float64, len(in.History))
	var lastHistory string
	for _, day := range in.History {
		key := timeutil.DateKey(day.Date)
		historyByDay[key] += day.Total
		if key > lastHistory {
			lastHistory = key
		}
	}

	windowEnd, ok := resolveWindowEnd(lastHistory, in.Forecast)
	if !ok {
		return Timeline{AppliedGrowthFactor: 1.0}
	}

	annotations := mergeAnnotations(in.Events, in.Holidays)

	points := make([]domain.ChartPoint, 0, p.HistoryWindowDays+len(in.Forecast))
	for offset := p.HistoryWindowDays - 1; offset >= 0; offset-- {
		day := windowEnd.AddDate(0, 0, -offset)
		key := timeutil.DateKey(day)
		value := historyByDay[key]

		point := domain.ChartPoint{
			Date:       key,
			Historical: &value,
		}
		decorateHoliday(&point, annotations[key])
		points = append(points, point)
	}

	for _, fp := range in.Forecast {
		key := timeutil.DateKey(fp.Date)
		predicted := math.Max(0, fp.Predicted)
		lower := math.Max(0, fp.LowerBound)
		upper := math.Max(0, fp.UpperBound)

		point := domain.ChartPoint{
			Date:       key,
			Predicted:  &predicted,
			LowerBound: &lower,
			UpperBound: &upper,
		}
		decorateHoliday(&point, annotations[key])
		points = append(points, point)
	}

	return Timeline{
		Points:              points,
		Annotations:         windowedAnnotations(annotations, points),
		AppliedGrowthFactor: AppliedGrowthFactor(in.Forecast),
	}
}

// AppliedGrowthFactor summarises the forecast curve's trend as the ratio of
// its late values over its early values. With fewer than two points there
// is no trend, and any non-finite or non-positive ratio collapses to the
// neutral 1.0.
func AppliedGrowthFactor(points []domain.ForecastPoint) float64 {
	n := len(points)

	var ratio float64
	switch {
	case n >= 14:
		first := meanPredicted(points[:7])
		last := meanPredicted(points[n-7:])
		if first == 0 {
			return 1.0
		}
		ratio = last / first
	case n >= 2:
		if points[0].Predicted == 0 {
			return 1.0
		}
		ratio = points[n-1].Predicted / points[0].Predicted
	default:
		return 1.0
	}

	if math.IsNaN(ratio) || math.IsInf(ratio, 0) || ratio <= 0 {
		return 1.0
	}
	return ratio
}

func meanPredicted(points []domain.ForecastPoint) float64 {
	if len(points) == 0 {
		return 0
	}
	var sum float64
	for _, p := range points {
		sum += p.Predicted
	}
	return sum / float64(len(points))
}

// resolveWindowEnd anchors the historical window at the last historical
// date, falling back to the day before the forecast horizon when no
// history exists at all.
func resolveWindowEnd(lastHistory string, forecast []domain.ForecastPoint) (time.Time, bool) {
	if lastHistory != "" {
		day, err := timeutil.ParseDate(lastHistory)
		if err == nil {
			return day, true
		}
	}
	if len(forecast) > 0 {
		return timeutil.Midnight(forecast[0].Date).AddDate(0, 0, -1), true
	}
	return time.Time{}, false
}

// mergeAnnotations groups user calendar events and public holidays by date
// key, deduplicating titles within a date.
func mergeAnnotations(events []domain.CalendarEvent, holidays []domain.Holiday) map[string]*dayAnnotation {
	grouped := make(map[string]*dayAnnotation)

	add := func(key, title, eventType string) {
		if title == "" {
			return
		}
		ann, ok := grouped[key]
		if !ok {
			ann = &dayAnnotation{seen: make(map[string]bool)}
			grouped[key] = ann
		}
		if ann.seen[title] {
			return
		}
		ann.seen[title] = true
		ann.titles = append(ann.titles, title)
		if eventType != "" {
			ann.types = append(ann.types, eventType)
		}
	}

	for _, ev := range events {
		add(timeutil.DateKey(ev.Date), ev.Title, ev.Type)
	}
	for _, h := range holidays {
		add(timeutil.DateKey(h.Date), h.Title, "holiday")
	}

	return grouped
}

// windowedAnnotations keeps only the annotations whose date falls inside
// the chart range, sorted by date ascending with sorted titles.
func windowedAnnotations(grouped map[string]*dayAnnotation, points []domain.ChartPoint) []domain.EventAnnotation {
	if len(points) == 0 {
		return []domain.EventAnnotation{}
	}
	start, end := points[0].Date, points[len(points)-1].Date

	result := make([]domain.EventAnnotation, 0, len(grouped))
	for key, ann := range grouped {
		if key < start || key > end || len(ann.titles) == 0 {
			continue
		}

		titles := append([]string(nil), ann.titles...)
		types := append([]string(nil), ann.types...)
		sort.Strings(titles)
		sort.Strings(types)

		result = append(result, domain.EventAnnotation{
			Date:   key,
			Titles: titles,
			Types:  types,
		})
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Date < result[j].Date })
	return result
}

func decorateHoliday(point *domain.ChartPoint, ann *dayAnnotation) {
	if ann == nil || len(ann.titles) == 0 {
		return
	}
	point.IsHoliday = true

	titles := append([]string(nil), ann.titles...)
	sort.Strings(titles)
	name := strings.Join(titles, ", ")
	point.HolidayName = &name
}
