package filter

import (
	"log"
	"sort"
	"time"

	"github.com/Asi0Flammeus/rss-2-podcast-note/internal/models"
	"github.com/araddon/dateparse"
)

// EffectiveDate resolves an entry's date for filtering and sorting, trying in
// order: parsed published, textual published, parsed updated, textual
// updated. The first source that yields a time wins. Returns false when no
// source is present or parseable.
func EffectiveDate(e models.Entry) (time.Time, bool) {
	if e.PublishedAt != nil {
		return e.PublishedAt.UTC(), true
	}
	if e.Published != "" {
		if t, err := dateparse.ParseAny(e.Published); err == nil {
			return t.UTC(), true
		}
	}
	if e.UpdatedAt != nil {
		return e.UpdatedAt.UTC(), true
	}
	if e.Updated != "" {
		if t, err := dateparse.ParseAny(e.Updated); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// Recent keeps entries whose effective date is within weeks of now. Entries
// with no resolvable date are dropped.
func Recent(entries []models.Entry, weeks int, now time.Time) []models.Entry {
	cutoff := now.UTC().Add(-time.Duration(weeks) * 7 * 24 * time.Hour)

	var filtered []models.Entry
	for _, e := range entries {
		date, ok := EffectiveDate(e)
		if !ok {
			log.Printf("Skipping entry %q: no parseable date", e.Title)
			continue
		}
		if !date.Before(cutoff) {
			filtered = append(filtered, e)
		}
	}

	return filtered
}

// SortByDate orders entries newest first. Entries without a date sort as the
// zero time, so they end up last after a multi-feed merge.
func SortByDate(entries []models.Entry) []models.Entry {
	sorted := make([]models.Entry, len(entries))
	copy(sorted, entries)

	sort.SliceStable(sorted, func(i, j int) bool {
		di, _ := EffectiveDate(sorted[i])
		dj, _ := EffectiveDate(sorted[j])
		return di.After(dj)
	})

	return sorted
}
