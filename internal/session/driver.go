package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Asi0Flammeus/rss-2-podcast-note/internal/filter"
	"github.com/Asi0Flammeus/rss-2-podcast-note/internal/models"
	"github.com/Asi0Flammeus/rss-2-podcast-note/internal/registry"
)

// Generator produces program notes from filtered entries.
type Generator interface {
	Generate(ctx context.Context, entries []models.Entry, numTopics, techLevel int, multiSource bool) string
}

// Fetcher retrieves the entries of a single feed URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) []models.Entry
}

// Notifier optionally delivers the finished notes somewhere else, e.g. a
// Telegram chat.
type Notifier interface {
	SendNotes(title, notes string) error
}

type Driver struct {
	feeds     []models.Feed
	fetcher   Fetcher
	generator Generator
	notifier  Notifier
	outputDir string
	scanner   *bufio.Scanner
	out       io.Writer
}

func NewDriver(feeds []models.Feed, fetcher Fetcher, generator Generator, outputDir string, in io.Reader, out io.Writer) *Driver {
	return &Driver{
		feeds:     feeds,
		fetcher:   fetcher,
		generator: generator,
		outputDir: outputDir,
		scanner:   bufio.NewScanner(in),
		out:       out,
	}
}

// WithNotifier enables delivery of the finished notes after saving.
func (d *Driver) WithNotifier(n Notifier) *Driver {
	d.notifier = n
	return d
}

// Run walks one interactive session: feed selection, time window, topic
// count, technical depth, generation, and persistence. It returns an error
// only on end of input; every other problem is recovered inline.
func (d *Driver) Run(ctx context.Context) error {
	mode, err := d.promptSortMode()
	if err != nil {
		return err
	}
	feeds := registry.Sort(d.feeds, mode)

	selected, err := d.promptFeedSelection(feeds)
	if err != nil {
		return err
	}

	multiSource := len(selected) > 1

	var entries []models.Entry
	for _, feed := range selected {
		fmt.Fprintf(d.out, "\nFetching %s feed...\n", feed.Name)
		fetched := d.fetcher.Fetch(ctx, feed.URL)
		fmt.Fprintf(d.out, "Found %d entries in the feed.\n", len(fetched))

		if multiSource {
			for i := range fetched {
				fetched[i].Source = feed.Name
			}
		}
		entries = append(entries, fetched...)
	}

	if len(entries) == 0 {
		fmt.Fprintln(d.out, "No entries found in the feed. Exiting.")
		return nil
	}

	weeks, err := d.promptTimeWindow()
	if err != nil {
		return err
	}

	filtered := filter.Recent(entries, weeks, time.Now())
	fmt.Fprintf(d.out, "\nFound %d entries from the past %d week(s).\n", len(filtered), weeks)

	if len(filtered) == 0 {
		fmt.Fprintln(d.out, "No entries found for the selected time period. Exiting.")
		return nil
	}

	filtered = filter.SortByDate(filtered)

	numTopics, err := d.promptInt("\nHow many topics for the program notes? (1-5): ", 1, 5)
	if err != nil {
		return err
	}

	techLevel, err := d.promptInt("\nTechnical depth level (0-5, where 0 is non-technical and 5 is highly technical): ", 0, 5)
	if err != nil {
		return err
	}

	fmt.Fprintln(d.out, "\nGenerating podcast program notes...")
	programNotes := d.generator.Generate(ctx, filtered, numTopics, techLevel, multiSource)

	fmt.Fprintln(d.out, "\n=== Podcast Program Notes ===")
	fmt.Fprintln(d.out)
	fmt.Fprintln(d.out, programNotes)

	names := make([]string, len(selected))
	for i, feed := range selected {
		names[i] = feed.Name
	}

	path, err := d.saveNotes(names, programNotes)
	if err != nil {
		log.Printf("Error saving program notes: %v", err)
	} else {
		fmt.Fprintf(d.out, "\nProgram notes saved to %s\n", path)
	}

	if d.notifier != nil {
		title := strings.Join(names, ", ")
		if err := d.notifier.SendNotes(title, programNotes); err != nil {
			log.Printf("Error delivering program notes: %v", err)
		}
	}

	return nil
}

func (d *Driver) promptSortMode() (registry.SortMode, error) {
	fmt.Fprintln(d.out, "\n=== Sort Feeds ===")
	fmt.Fprintln(d.out, "1. As listed")
	fmt.Fprintln(d.out, "2. By name (A-Z)")
	fmt.Fprintln(d.out, "3. By name (Z-A)")

	choice, err := d.promptInt("\nSelect sort order (number): ", 1, 3)
	if err != nil {
		return registry.SortFileOrder, err
	}

	switch choice {
	case 2:
		return registry.SortNameAsc, nil
	case 3:
		return registry.SortNameDesc, nil
	default:
		return registry.SortFileOrder, nil
	}
}

func (d *Driver) promptFeedSelection(feeds []models.Feed) ([]models.Feed, error) {
	fmt.Fprintln(d.out, "\n=== Available RSS Feeds ===")
	for i, feed := range feeds {
		fmt.Fprintf(d.out, "%d. %s\n", i+1, feed.Name)
	}

	for {
		fmt.Fprint(d.out, "\nSelect feeds (numbers, comma-separated): ")
		line, err := d.readLine()
		if err != nil {
			return nil, err
		}

		indices, ok := parseIndices(line, len(feeds))
		if !ok {
			fmt.Fprintln(d.out, "Invalid selection. Please try again.")
			continue
		}

		selected := make([]models.Feed, len(indices))
		for i, idx := range indices {
			selected[i] = feeds[idx]
		}
		return selected, nil
	}
}

func (d *Driver) promptTimeWindow() (int, error) {
	fmt.Fprintln(d.out, "\n=== Select Time Period ===")
	fmt.Fprintln(d.out, "1. Past week")
	fmt.Fprintln(d.out, "2. Past 2 weeks")
	fmt.Fprintln(d.out, "3. Past 3 weeks")
	fmt.Fprintln(d.out, "4. Past 4 weeks")

	return d.promptInt("\nSelect time period (number): ", 1, 4)
}

// promptInt re-prompts until the input is a number within [min, max]. End of
// input terminates the session instead of looping.
func (d *Driver) promptInt(label string, min, max int) (int, error) {
	for {
		fmt.Fprint(d.out, label)
		line, err := d.readLine()
		if err != nil {
			return 0, err
		}

		value, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			fmt.Fprintln(d.out, "Please enter a number.")
			continue
		}
		if value < min || value > max {
			fmt.Fprintf(d.out, "Please enter a number between %d and %d.\n", min, max)
			continue
		}
		return value, nil
	}
}

func (d *Driver) readLine() (string, error) {
	if !d.scanner.Scan() {
		if err := d.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return d.scanner.Text(), nil
}

// parseIndices parses a comma-separated list of 1-based menu choices into
// unique 0-based indices, preserving selection order.
func parseIndices(line string, count int) ([]int, bool) {
	parts := strings.Split(line, ",")

	var indices []int
	seen := make(map[int]bool)
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		value, err := strconv.Atoi(part)
		if err != nil || value < 1 || value > count {
			return nil, false
		}
		idx := value - 1
		if seen[idx] {
			continue
		}
		seen[idx] = true
		indices = append(indices, idx)
	}

	if len(indices) == 0 {
		return nil, false
	}
	return indices, true
}

func (d *Driver) saveNotes(feedNames []string, notes string) (string, error) {
	if err := os.MkdirAll(d.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := OutputFilename(feedNames, time.Now())
	path := filepath.Join(d.outputDir, filename)

	if err := os.WriteFile(path, []byte(notes), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	return path, nil
}

// OutputFilename builds the notes filename from the selected feed names and
// a timestamp: up to two sanitized names, with the remainder folded into an
// "_and_N_more" suffix.
func OutputFilename(feedNames []string, t time.Time) string {
	fragment := FileFragment(feedNames)
	return fmt.Sprintf("%s_%s.md", fragment, t.Format("20060102_150405"))
}

// FileFragment sanitizes and joins feed names for use in a filename.
func FileFragment(feedNames []string) string {
	var parts []string
	for i, name := range feedNames {
		if i >= 2 {
			parts = append(parts, fmt.Sprintf("and_%d_more", len(feedNames)-2))
			break
		}
		parts = append(parts, SanitizeName(name))
	}
	return strings.Join(parts, "_")
}

// SanitizeName replaces spaces and path separators so a feed name is safe in
// a filename.
func SanitizeName(name string) string {
	return strings.NewReplacer(" ", "_", "/", "_", "\\", "_").Replace(name)
}
