package synth

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"health-digest/internal/news"
)

// promptTemplate instructs the model to pick one topic from the collected
// items and produce the labeled three-field output the parser expects.
const promptTemplate = `You are a professional health blogger.
Write one helpful health-information blog post based on the news items below.

Rules:
- Pick the single most interesting and useful topic from the news
- Make the title irresistible to click (e.g. "I did just this every day and my blood pressure..." style)
- Body between 800 and 1200 characters
- Friendly, easy-to-read tone
- Do not copy the source articles; rewrite everything in completely new sentences
- Include practical tips or advice
- Write the body as HTML using h2, h3 and p tags
- End with a three-line summary of the key points

News items:
%s

Respond in exactly this format:
TITLE: (the title)
IMAGE_PROMPT: (an English description of an image that fits the post, e.g. healthy elderly woman doing yoga in park)
CONTENT: (the HTML body)`

type Synthesizer struct {
	client    *anthropic.Client
	model     string
	maxTokens int64
	logger    *log.Logger
}

func NewSynthesizer(apiKey, model string, maxTokens int, logger *log.Logger) *Synthesizer {
	if logger == nil {
		logger = log.Default()
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	return &Synthesizer{
		client:    &client,
		model:     model,
		maxTokens: int64(maxTokens),
		logger:    logger,
	}
}

// Generate sends the collected items in a single user-role prompt and returns
// the model's raw text verbatim. A call failure propagates; the caller treats
// it as fatal for the run.
func (s *Synthesizer) Generate(ctx context.Context, items []news.Item) (string, error) {
	prompt := buildPrompt(items)

	resp, err := s.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(s.model),
		MaxTokens: s.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic message call: %w", err)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.AsText().Text)
		}
	}

	return text.String(), nil
}

func buildPrompt(items []news.Item) string {
	return fmt.Sprintf(promptTemplate, renderNewsText(items))
}

// renderNewsText flattens the items into the title/summary block the prompt
// embeds, one blank line between items. Feed summaries often carry HTML, so
// they are reduced to plain text first.
func renderNewsText(items []news.Item) string {
	var b strings.Builder
	for _, item := range items {
		fmt.Fprintf(&b, "Title: %s\nSummary: %s\n\n", item.Title, plainText(item.Summary))
	}
	return b.String()
}

// plainText strips markup from a feed summary. On a parse failure the raw
// value is passed through unchanged.
func plainText(s string) string {
	if !strings.Contains(s, "<") {
		return strings.TrimSpace(s)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
