package filter

import (
	"testing"
	"time"

	"github.com/Asi0Flammeus/rss-2-podcast-note/internal/models"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestEffectiveDatePriority(t *testing.T) {
	parsed := time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC)
	updated := time.Date(2024, 1, 9, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		entry models.Entry
		want  time.Time
		ok    bool
	}{
		{
			name:  "structured published wins",
			entry: models.Entry{PublishedAt: timePtr(parsed), Published: "Mon, 08 Jan 2024 00:00:00 GMT", UpdatedAt: timePtr(updated)},
			want:  parsed,
			ok:    true,
		},
		{
			name:  "textual published beats structured updated",
			entry: models.Entry{Published: "2024-01-05T00:00:00Z", UpdatedAt: timePtr(updated)},
			want:  time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
			ok:    true,
		},
		{
			name:  "structured updated as fallback",
			entry: models.Entry{UpdatedAt: timePtr(updated)},
			want:  updated,
			ok:    true,
		},
		{
			name:  "textual updated as last resort",
			entry: models.Entry{Updated: "Tue, 09 Jan 2024 12:00:00 +0000"},
			want:  updated,
			ok:    true,
		},
		{
			name:  "unparseable textual published falls through to updated",
			entry: models.Entry{Published: "not a date", UpdatedAt: timePtr(updated)},
			want:  updated,
			ok:    true,
		},
		{
			name:  "no dates at all",
			entry: models.Entry{Title: "undated"},
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := EffectiveDate(tt.entry)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("date = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRecentWindow(t *testing.T) {
	now := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	inside := models.Entry{Title: "inside", PublishedAt: timePtr(now.AddDate(0, 0, -6))}
	boundary := models.Entry{Title: "boundary", PublishedAt: timePtr(now.AddDate(0, 0, -7))}
	outside := models.Entry{Title: "outside", PublishedAt: timePtr(now.AddDate(0, 0, -8))}
	undated := models.Entry{Title: "undated"}

	filtered := Recent([]models.Entry{inside, boundary, outside, undated}, 1, now)

	if len(filtered) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(filtered))
	}
	if filtered[0].Title != "inside" || filtered[1].Title != "boundary" {
		t.Errorf("unexpected entries: %v, %v", filtered[0].Title, filtered[1].Title)
	}
}

func TestRecentExcludesAllUndated(t *testing.T) {
	now := time.Now().UTC()
	entries := []models.Entry{
		{Title: "a"},
		{Title: "b", Published: "gibberish"},
	}

	if got := Recent(entries, 4, now); len(got) != 0 {
		t.Fatalf("expected all undated entries excluded, got %d", len(got))
	}
}

func TestRecentIsIdempotent(t *testing.T) {
	now := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	entries := []models.Entry{
		{Title: "recent", PublishedAt: timePtr(now.AddDate(0, 0, -3))},
		{Title: "old", PublishedAt: timePtr(now.AddDate(0, 0, -30))},
		{Title: "undated"},
	}

	once := Recent(entries, 2, now)
	twice := Recent(once, 2, now)

	if len(once) != len(twice) {
		t.Fatalf("second filter changed the set: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		if once[i].Title != twice[i].Title {
			t.Errorf("entry %d changed: %q vs %q", i, once[i].Title, twice[i].Title)
		}
	}
}

func TestSortByDateMergedFeeds(t *testing.T) {
	a := models.Entry{Title: "A", PublishedAt: timePtr(time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC))}
	b := models.Entry{Title: "B", PublishedAt: timePtr(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC))}
	c := models.Entry{Title: "C"}

	sorted := SortByDate([]models.Entry{a, c, b})

	if sorted[0].Title != "B" || sorted[1].Title != "A" {
		t.Errorf("expected B then A, got %s then %s", sorted[0].Title, sorted[1].Title)
	}
	if sorted[2].Title != "C" {
		t.Errorf("undated entry should sort last, got %s", sorted[2].Title)
	}
}

func TestSortByDateMixedTimezones(t *testing.T) {
	est := time.FixedZone("EST", -5*3600)
	early := models.Entry{Title: "early", Published: "2024-01-05T10:00:00Z"}
	late := models.Entry{Title: "late", PublishedAt: timePtr(time.Date(2024, 1, 5, 9, 0, 0, 0, est))}

	sorted := SortByDate([]models.Entry{early, late})

	// 09:00 EST is 14:00 UTC, newer than 10:00 UTC.
	if sorted[0].Title != "late" {
		t.Errorf("timezone comparison wrong, got %s first", sorted[0].Title)
	}
}
