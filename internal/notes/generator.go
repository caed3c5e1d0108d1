package notes

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/Asi0Flammeus/rss-2-podcast-note/internal/models"
	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

const (
	// NoEntriesMessage is returned without any API call when there is
	// nothing to summarize.
	NoEntriesMessage = "No entries found for the selected time period."

	// FailureMessage is returned when the generation call fails.
	FailureMessage = "Failed to generate program notes. Please try again."

	maxEntries    = 20
	maxSummaryLen = 500
	temperature   = 0.7

	systemPrompt = "You are an expert podcast producer who creates concise, informative program notes."
)

var tagPattern = regexp.MustCompile(`<[^>]+>`)

type Generator struct {
	client    openai.Client
	model     string
	maxTokens int
}

func NewGenerator(apiKey, model string, maxTokens int, opts ...option.RequestOption) *Generator {
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &Generator{
		client:    openai.NewClient(opts...),
		model:     model,
		maxTokens: maxTokens,
	}
}

// Generate builds program notes for the given entries. The result is always
// usable text: the generated notes, NoEntriesMessage, or FailureMessage.
func (g *Generator) Generate(ctx context.Context, entries []models.Entry, numTopics, techLevel int, multiSource bool) string {
	if len(entries) == 0 {
		return NoEntriesMessage
	}

	prompt := BuildPrompt(entries, numTopics, techLevel, multiSource)

	response, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(g.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(temperature),
		MaxTokens:   openai.Int(int64(g.maxTokens)),
	})
	if err != nil {
		log.Printf("Error generating program notes: %v", err)
		return FailureMessage
	}

	if len(response.Choices) == 0 {
		log.Printf("Error generating program notes: empty response")
		return FailureMessage
	}

	return response.Choices[0].Message.Content
}

// BuildPrompt assembles the generation prompt from at most maxEntries
// entries. When multiSource is set, each article block and the format
// instructions carry the source feed name.
func BuildPrompt(entries []models.Entry, numTopics, techLevel int, multiSource bool) string {
	if len(entries) > maxEntries {
		entries = entries[:maxEntries]
	}

	var sb strings.Builder
	sb.WriteString("Based on the articles provided, create program notes for a weekly podcast episode.\n")
	fmt.Fprintf(&sb, "The notes should cover %d main topics from these articles.\n\n", numTopics)
	fmt.Fprintf(&sb, "Technical depth level: %d/5 (where 0 is non-technical and 5 is highly technical)\n\n", techLevel)
	sb.WriteString("For each topic:\n")
	sb.WriteString("1. Create a catchy title\n")
	sb.WriteString("2. Write a brief summary (2-3 sentences)\n")
	sb.WriteString("3. Include key points for discussion (3-5 bullet points)\n")
	sb.WriteString("4. Mention relevant articles from the list\n\n")

	sb.WriteString("Here are recent articles from ")
	if multiSource {
		sb.WriteString("the selected RSS feeds:\n\n")
	} else {
		sb.WriteString("an RSS feed:\n\n")
	}

	for i, entry := range entries {
		fmt.Fprintf(&sb, "Article %d:\n", i+1)
		fmt.Fprintf(&sb, "Title: %s\n", defaultIfEmpty(entry.Title, "No title"))
		fmt.Fprintf(&sb, "Link: %s\n", defaultIfEmpty(entry.Link, "No link"))
		if multiSource {
			fmt.Fprintf(&sb, "Source: %s\n", defaultIfEmpty(entry.Source, "Unknown source"))
		}
		fmt.Fprintf(&sb, "Published: %s\n", displayDate(entry))
		fmt.Fprintf(&sb, "Summary: %s\n\n", Summarize(entry))
	}

	sb.WriteString("Format the response as:\n")
	sb.WriteString("# Weekly Podcast Program Notes\n\n")
	sb.WriteString("## Topic 1: [Catchy Title]\n")
	sb.WriteString("[Brief summary]\n\n")
	sb.WriteString("Key points:\n")
	sb.WriteString("- [Point 1]\n")
	sb.WriteString("- [Point 2]\n")
	sb.WriteString("- [Point 3]\n\n")
	if multiSource {
		sb.WriteString("Related articles: [Article url (source name)]\n\n")
	} else {
		sb.WriteString("Related articles: [Article url]\n\n")
	}
	sb.WriteString("## Topic 2: [Catchy Title]\n")
	sb.WriteString("...and so on\n")

	return sb.String()
}

// Summarize resolves an entry's display summary: the summary field, else the
// content block, with markup stripped and the text capped at maxSummaryLen.
func Summarize(entry models.Entry) string {
	summary := entry.Summary
	if summary == "" {
		summary = entry.Content
	}

	summary = StripTags(summary)
	return truncate(summary, maxSummaryLen)
}

// StripTags removes markup tags, leaving the text content.
func StripTags(s string) string {
	return tagPattern.ReplaceAllString(s, "")
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}

func displayDate(entry models.Entry) string {
	if entry.Published != "" {
		return entry.Published
	}
	return entry.Updated
}

func defaultIfEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
