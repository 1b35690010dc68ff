package world

import (
	"math"
	"time"
)

// Metrics are the per-world derived values shown on the history and show
// dashboards. A value of -1 marks a metric whose inputs are unavailable.
type Metrics struct {
	DaysLabsToPublication int
	DaysSinceUpdate       int
	DaysSincePublication  int
	VisitsPerDay          float64
	FavoritesPerDay       float64
	VisitFavoriteRatio    float64
	Published             bool
}

// DeriveMetrics computes the dashboard metrics for a record as of now.
func DeriveMetrics(r Record, now time.Time) Metrics {
	m := Metrics{
		DaysLabsToPublication: -1,
		DaysSinceUpdate:       -1,
		DaysSincePublication:  -1,
		VisitsPerDay:          -1,
		FavoritesPerDay:       -1,
		VisitFavoriteRatio:    -1,
		Published:             r.Published(),
	}

	pub, hasPub := ParseDate(r.PublicationDate)
	if hasPub {
		if labs, ok := ParseDate(r.LabsPublicationDate); ok {
			m.DaysLabsToPublication = daysBetween(labs, pub)
		} else if created, ok := ParseDate(r.CreatedAt); ok {
			m.DaysLabsToPublication = daysBetween(created, pub)
		}
		m.DaysSincePublication = daysBetween(pub, now)
		if m.DaysSincePublication > 0 {
			m.VisitsPerDay = round2(float64(r.Visits) / float64(m.DaysSincePublication))
			m.FavoritesPerDay = round2(float64(r.Favorites) / float64(m.DaysSincePublication))
		}
	}

	if updated, ok := ParseDate(r.UpdatedAt); ok {
		m.DaysSinceUpdate = daysBetween(updated, now)
	}

	if r.Favorites > 0 {
		m.VisitFavoriteRatio = round2(float64(r.Visits) / float64(r.Favorites))
	}

	return m
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
