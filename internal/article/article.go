package article

import "strings"

// Article is the synthesized blog post recovered from the model's labeled
// response. Any field the response omitted stays empty; callers decide
// whether a degraded article is still worth publishing.
type Article struct {
	Title       string
	ImagePrompt string
	Content     string
}

const (
	titlePrefix   = "TITLE:"
	imagePrefix   = "IMAGE_PROMPT:"
	contentPrefix = "CONTENT:"
)

type section int

const (
	sectionSeeking section = iota
	sectionTitle
	sectionImage
	sectionContent
)

// Parse scans the model's raw response line by line. A TITLE: or
// IMAGE_PROMPT: line sets the matching field (prefix stripped, trimmed); a
// CONTENT: line switches to content mode, with any trailing text on the
// marker line becoming the first content line. While in content mode every
// subsequent line is kept verbatim, blank lines included, joined back with
// newlines. Lines seen before any marker are ignored.
func Parse(raw string) Article {
	var (
		art     Article
		content []string
		state   = sectionSeeking
	)

	for _, line := range strings.Split(strings.TrimSpace(raw), "\n") {
		switch {
		case strings.HasPrefix(line, titlePrefix):
			art.Title = strings.TrimSpace(strings.TrimPrefix(line, titlePrefix))
			state = sectionTitle

		case strings.HasPrefix(line, imagePrefix):
			art.ImagePrompt = strings.TrimSpace(strings.TrimPrefix(line, imagePrefix))
			state = sectionImage

		case strings.HasPrefix(line, contentPrefix):
			state = sectionContent
			if first := strings.TrimSpace(strings.TrimPrefix(line, contentPrefix)); first != "" {
				content = append(content, first)
			}

		case state == sectionContent:
			content = append(content, line)
		}
	}

	art.Content = strings.Join(content, "\n")
	return art
}
