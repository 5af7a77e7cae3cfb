package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"health-digest/internal/archive"
	"health-digest/internal/article"
	"health-digest/internal/event"
	"health-digest/internal/news"
	"health-digest/internal/wordpress"
)

type Collector interface {
	Collect(ctx context.Context) []news.Item
}

type Synthesizer interface {
	Generate(ctx context.Context, items []news.Item) (string, error)
}

type ImageFetcher interface {
	Fetch(ctx context.Context, prompt string) ([]byte, bool)
}

type Backend interface {
	UploadMedia(ctx context.Context, data []byte, filename string) (wordpress.Media, bool)
	CreatePost(ctx context.Context, post wordpress.Post) (string, error)
}

type Notifier interface {
	Notify(ctx context.Context, title, postURL string)
}

type EventPublisher interface {
	PublishPostPublished(ctx context.Context, post event.PostPublished) error
}

type Archiver interface {
	SaveRun(ctx context.Context, rec *archive.PublishRecord) error
}

// ErrNoNews aborts a run before any generation work when every source came up
// empty.
var ErrNoNews = errors.New("no news collected")

// Pipeline runs one Collect → Synthesize → Parse → Image → Publish → Notify
// sequence. Image production, notification, event publication and archiving
// are best-effort; collection, generation and publishing are required.
type Pipeline struct {
	collector  Collector
	synth      Synthesizer
	images     ImageFetcher
	backend    Backend
	notifier   Notifier
	events     EventPublisher // nil when event publication is disabled
	archiver   Archiver       // nil when run archiving is disabled
	categoryID int
	logger     *log.Logger

	now      func() time.Time
	location *time.Location // media filenames are stamped in this zone
}

func New(
	collector Collector,
	synth Synthesizer,
	images ImageFetcher,
	backend Backend,
	notifier Notifier,
	events EventPublisher,
	archiver Archiver,
	categoryID int,
	logger *log.Logger,
) *Pipeline {
	if logger == nil {
		logger = log.Default()
	}

	loc, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		loc = time.FixedZone("KST", 9*60*60)
	}

	return &Pipeline{
		collector:  collector,
		synth:      synth,
		images:     images,
		backend:    backend,
		notifier:   notifier,
		events:     events,
		archiver:   archiver,
		categoryID: categoryID,
		logger:     logger,
		now:        time.Now,
		location:   loc,
	}
}

// Run executes a single publication and returns the published post URL.
func (p *Pipeline) Run(ctx context.Context) (string, error) {
	runID := uuid.NewString()

	items := p.collector.Collect(ctx)
	p.logger.Printf("[1/5] collected %d news items", len(items))
	if len(items) == 0 {
		return "", ErrNoNews
	}

	p.logger.Println("[2/5] generating article...")
	raw, err := p.synth.Generate(ctx, items)
	if err != nil {
		return "", fmt.Errorf("article generation: %w", err)
	}

	p.logger.Println("[3/5] parsing response...")
	art := article.Parse(raw)
	p.logger.Printf("title: %s", art.Title)
	p.logger.Printf("image prompt: %s", art.ImagePrompt)

	p.logger.Println("[4/5] generating and uploading image...")
	var (
		media     wordpress.Media
		haveMedia bool
	)
	if data, ok := p.images.Fetch(ctx, art.ImagePrompt); ok {
		p.logger.Printf("image size: %d bytes", len(data))
		media, haveMedia = p.backend.UploadMedia(ctx, data, p.mediaFilename())
	} else {
		p.logger.Println("no image - publishing without one")
	}

	content := art.Content
	if haveMedia && media.SourceURL != "" {
		content = fmt.Sprintf("<img src=%q alt=%q />\n\n%s", media.SourceURL, art.Title, content)
	}

	p.logger.Println("[5/5] publishing post...")
	post := wordpress.Post{
		Title:      art.Title,
		Content:    content,
		Status:     "publish",
		Categories: []int{p.categoryID},
	}
	if haveMedia {
		post.FeaturedMedia = media.ID
	}

	link, err := p.backend.CreatePost(ctx, post)
	if err != nil {
		return "", fmt.Errorf("publish: %w", err)
	}
	p.logger.Printf("published: %s", link)

	p.notifier.Notify(ctx, art.Title, link)

	if p.events != nil {
		evt := event.PostPublished{
			RunID:   runID,
			Title:   art.Title,
			URL:     link,
			MediaID: media.ID,
		}
		if err := p.events.PublishPostPublished(ctx, evt); err != nil {
			p.logger.Printf("event publish failed: %v", err)
		}
	}

	if p.archiver != nil {
		rec := &archive.PublishRecord{
			RunID:       runID,
			Title:       art.Title,
			PostURL:     link,
			ImagePrompt: art.ImagePrompt,
			MediaID:     media.ID,
			ImageURL:    media.SourceURL,
			ItemCount:   len(items),
			PublishedAt: p.now().UTC(),
		}
		if err := p.archiver.SaveRun(ctx, rec); err != nil {
			p.logger.Printf("archive save failed: %v", err)
		}
	}

	return link, nil
}

func (p *Pipeline) mediaFilename() string {
	return "health_" + p.now().In(p.location).Format("20060102150405")
}
