package store

import (
	"fmt"
	"strings"
	"time"

	"worldfeed/internal/world"
)

// Status represents the review lifecycle of a collected world.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

var allStatuses = []Status{StatusPending, StatusApproved, StatusRejected}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

// ParseStatus validates a status string from a flag or API parameter.
func ParseStatus(value string) (Status, error) {
	status := Status(strings.ToLower(strings.TrimSpace(value)))
	if _, ok := statusSet[status]; !ok {
		return "", fmt.Errorf("unknown status %q", value)
	}
	return status, nil
}

// World is one collected world row: the latest fetched metadata plus the
// review state attached by this repository.
type World struct {
	world.Record

	Status        Status
	ReviewNote    string
	ReviewedAt    time.Time
	FirstSeenAt   time.Time
	LastFetchedAt time.Time
}

// Summary describes aggregated world counts per review state.
type Summary struct {
	Total    int
	Pending  int
	Approved int
	Rejected int
}
