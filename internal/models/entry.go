package models

import "time"

type Feed struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Entry is one item from a parsed feed. The raw Published/Updated strings are
// kept alongside the parsed timestamps because many feeds carry dates the
// feed parser cannot interpret but a permissive date parser can.
type Entry struct {
	Title       string     `json:"title"`
	Link        string     `json:"link"`
	Summary     string     `json:"summary"`
	Content     string     `json:"content"`
	Published   string     `json:"published"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	Updated     string     `json:"updated"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
	Source      string     `json:"source"`
}
