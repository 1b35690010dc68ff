// Package world defines the collected VRChat world model and the metric
// derivations shown by the CLI dashboards.
package world

import (
	"strings"
	"time"
)

// Record is one world as returned by the VRChat API or the browser scraper.
// Field names follow the upstream JSON payload.
type Record struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	AuthorID            string   `json:"authorId"`
	AuthorName          string   `json:"authorName"`
	Description         string   `json:"description,omitempty"`
	Tags                []string `json:"tags,omitempty"`
	Capacity            int      `json:"capacity,omitempty"`
	Visits              int      `json:"visits"`
	Favorites           int      `json:"favorites"`
	Heat                int      `json:"heat"`
	Popularity          int      `json:"popularity"`
	ImageURL            string   `json:"imageUrl,omitempty"`
	CreatedAt           string   `json:"created_at,omitempty"`
	UpdatedAt           string   `json:"updated_at,omitempty"`
	PublicationDate     string   `json:"publicationDate,omitempty"`
	LabsPublicationDate string   `json:"labsPublicationDate,omitempty"`
}

// PageURL returns the public world page for the record.
func (r Record) PageURL() string {
	if r.ID == "" {
		return ""
	}
	return "https://vrchat.com/home/world/" + r.ID
}

// Published reports whether the world has left community labs. The upstream
// API uses the literal string "none" for unpublished worlds.
func (r Record) Published() bool {
	_, ok := ParseDate(r.PublicationDate)
	return ok
}

// Snapshot is one point of metric history for a world.
type Snapshot struct {
	WorldID    string
	CapturedAt time.Time
	Visits     int
	Favorites  int
	Heat       int
	Popularity int
	UpdatedAt  string
}

// ParseDate parses an upstream date value. The API emits RFC 3339 timestamps
// and the literal "none" for unset dates.
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, "none") {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
