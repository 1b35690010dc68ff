// Package viewer implements the approved-worlds list view: a pure function
// of (export records, sort mode, tag filter) producing a deterministic entry
// sequence. The export is loaded once per view lifecycle; every render is
// recomputed from the in-memory copy without re-reading the source.
package viewer

import (
	"fmt"
	"sort"

	"worldfeed/internal/feed"
)

// FailedToLoad is the literal text shown in place of the list when the
// export cannot be read or parsed. Load failure is terminal for the view
// instance; no retry is attempted.
const FailedToLoad = "Failed to load"

// TagAll is the tag filter value that passes every record through,
// including records with absent or empty tags.
const TagAll = "all"

// SortMode selects the ordering applied to rendered entries.
type SortMode string

const (
	// SortLatest orders by publicationDate, descending lexicographic.
	// Records without a date sort as the empty string.
	SortLatest SortMode = "latest"
	// SortPopular orders by visits, descending. Absent visits count as 0.
	SortPopular SortMode = "popular"
)

// ParseSortMode validates a sort mode string from a flag or query parameter.
func ParseSortMode(value string) (SortMode, error) {
	switch SortMode(value) {
	case SortLatest:
		return SortLatest, nil
	case SortPopular:
		return SortPopular, nil
	}
	return "", fmt.Errorf("unknown sort mode %q (expected %q or %q)", value, SortLatest, SortPopular)
}

// Entry is one rendered list item.
type Entry struct {
	Name     string
	Author   string
	WorldURL string
	Visits   int
}

// Text renders the entry's display line.
func (e Entry) Text() string {
	return fmt.Sprintf("%s by %s (%d visits)", e.Name, e.Author, e.Visits)
}

// View holds one loaded export plus the two selector values. The zero
// selectors are sort=popular, tag=all.
type View struct {
	worlds     []feed.World
	tagOptions []string
	sortMode   SortMode
	tag        string
}

// New builds a view over worlds and derives the tag option list.
func New(worlds []feed.World) *View {
	return &View{
		worlds:     worlds,
		tagOptions: TagOptions(worlds),
		sortMode:   SortPopular,
		tag:        TagAll,
	}
}

// Load reads the export at path and builds a view over it. Callers render
// FailedToLoad in place of the list when an error is returned.
func Load(path string) (*View, error) {
	worlds, err := feed.Load(path)
	if err != nil {
		return nil, err
	}
	return New(worlds), nil
}

// TagOptions returns TagAll followed by each distinct tag value in order of
// first occurrence across records in file order.
func (v *View) TagOptions() []string {
	return v.tagOptions
}

// Worlds returns the in-memory export copy in file order.
func (v *View) Worlds() []feed.World {
	return v.worlds
}

// SortMode returns the current sort selector value.
func (v *View) SortMode() SortMode { return v.sortMode }

// Tag returns the current tag selector value.
func (v *View) Tag() string { return v.tag }

// SetSortMode updates the sort selector.
func (v *View) SetSortMode(mode SortMode) { v.sortMode = mode }

// SetTag updates the tag selector.
func (v *View) SetTag(tag string) { v.tag = tag }

// Render produces the entry list for the current selector values.
func (v *View) Render() []Entry {
	return Render(v.worlds, v.sortMode, v.tag)
}

// Render filters worlds by tag, sorts them by mode, and converts the
// survivors to entries. The input slice is never mutated, both sorts are
// stable, and identical inputs always yield identical output.
func Render(worlds []feed.World, mode SortMode, tag string) []Entry {
	filtered := FilterByTag(worlds, tag)
	sorted := SortWorlds(filtered, mode)

	entries := make([]Entry, 0, len(sorted))
	for _, w := range sorted {
		entries = append(entries, Entry{
			Name:     w.Name,
			Author:   w.Author,
			WorldURL: w.WorldURL,
			Visits:   w.Visits,
		})
	}
	return entries
}

// TagOptions derives the tag selector values for an export: TagAll first,
// then each distinct tag in order of first occurrence.
func TagOptions(worlds []feed.World) []string {
	options := []string{TagAll}
	seen := make(map[string]struct{})
	for _, w := range worlds {
		for _, tag := range w.Tags {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			options = append(options, tag)
		}
	}
	return options
}

// FilterByTag retains records whose tags contain tag. TagAll passes every
// record through unchanged in order and membership; under any other filter
// records with absent or empty tags are excluded.
func FilterByTag(worlds []feed.World, tag string) []feed.World {
	if tag == TagAll {
		out := make([]feed.World, len(worlds))
		copy(out, worlds)
		return out
	}
	out := make([]feed.World, 0, len(worlds))
	for _, w := range worlds {
		for _, t := range w.Tags {
			if t == tag {
				out = append(out, w)
				break
			}
		}
	}
	return out
}

// SortWorlds returns a copy of worlds in descending order for the given
// mode. The sort is stable: ties keep their relative input order.
func SortWorlds(worlds []feed.World, mode SortMode) []feed.World {
	sorted := make([]feed.World, len(worlds))
	copy(sorted, worlds)
	switch mode {
	case SortLatest:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].PublicationDate > sorted[j].PublicationDate
		})
	default:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Visits > sorted[j].Visits
		})
	}
	return sorted
}
