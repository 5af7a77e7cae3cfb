package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"health-digest/internal/news"
)

type Config struct {
	AnthropicAPIKey string
	AnthropicModel  string
	MaxTokens       int

	WPURL         string
	WPUser        string
	WPAppPassword string
	CategoryID    int

	TelegramBotToken string
	TelegramChatID   string

	FeedSources  []news.Source
	MaxPerSource int
	Timeout      time.Duration // feed fetches and WordPress calls

	ImageBaseURL string
	ImageWidth   int
	ImageHeight  int
	ImageDelay   time.Duration // courtesy pause before hitting the image service
	ImageTimeout time.Duration

	RabbitURI        string // empty disables event publication
	RabbitExchange   string
	RabbitRoutingKey string

	MongoURI    string // empty disables run archiving
	MongoDBName string
}

const (
	AnthropicAPIKeyEnv = "ANTHROPIC_API_KEY"
	AnthropicModelEnv  = "ANTHROPIC_MODEL"
	MaxTokensEnv       = "MAX_TOKENS"

	WPURLEnv         = "WP_URL"
	WPUserEnv        = "WP_USER"
	WPAppPasswordEnv = "WP_APP_PASSWORD"
	CategoryIDEnv    = "WP_CATEGORY_ID"

	TelegramBotTokenEnv = "TELEGRAM_BOT_TOKEN"
	TelegramChatIDEnv   = "TELEGRAM_CHAT_ID"

	FeedSourcesEnv  = "FEED_SOURCES"
	MaxPerSourceEnv = "MAX_PER_SOURCE"
	TimeoutEnv      = "TIMEOUT"

	ImageBaseURLEnv = "IMAGE_BASE_URL"
	ImageWidthEnv   = "IMAGE_WIDTH"
	ImageHeightEnv  = "IMAGE_HEIGHT"
	ImageDelayEnv   = "IMAGE_DELAY"
	ImageTimeoutEnv = "IMAGE_TIMEOUT"

	RabbitURIEnv        = "RABBIT_URI"
	RabbitExchangeEnv   = "RABBIT_EXCHANGE"
	RabbitRoutingKeyEnv = "RABBIT_ROUTING_KEY"

	MongoURIEnv    = "MONGO_URI"
	MongoDBNameEnv = "MONGO_DB_NAME"
)

// defaultSources are the health-news feeds the pipeline was built around.
// Override with FEED_SOURCES ("Name|URL,Name|URL,...").
var defaultSources = []news.Source{
	{Name: "Health Chosun", URL: "https://health.chosun.com/rss/rss.xml"},
	{Name: "Kormedi", URL: "https://kormedi.com/feed/"},
	{Name: "Hidoc", URL: "https://www.hidoc.co.kr/healthstory/news/rss"},
}

func FromEnv() (Config, error) {
	var cfg Config

	cfg.AnthropicAPIKey = getEnv(AnthropicAPIKeyEnv, "")
	cfg.AnthropicModel = getEnv(AnthropicModelEnv, "claude-sonnet-4-20250514")

	cfg.WPURL = strings.TrimRight(getEnv(WPURLEnv, ""), "/")
	cfg.WPUser = getEnv(WPUserEnv, "")
	cfg.WPAppPassword = getEnv(WPAppPasswordEnv, "")

	cfg.TelegramBotToken = getEnv(TelegramBotTokenEnv, "")
	cfg.TelegramChatID = getEnv(TelegramChatIDEnv, "")

	cfg.ImageBaseURL = strings.TrimRight(getEnv(ImageBaseURLEnv, "https://image.pollinations.ai"), "/")

	cfg.RabbitURI = getEnv(RabbitURIEnv, "")
	cfg.RabbitExchange = getEnv(RabbitExchangeEnv, "blog.publish")
	cfg.RabbitRoutingKey = getEnv(RabbitRoutingKeyEnv, "post.published")

	cfg.MongoURI = getEnv(MongoURIEnv, "")
	cfg.MongoDBName = getEnv(MongoDBNameEnv, "healthdigest")

	var err error
	if cfg.FeedSources, err = parseSources(getEnv(FeedSourcesEnv, "")); err != nil {
		return cfg, fmt.Errorf("invalid %v: %w", FeedSourcesEnv, err)
	}
	if cfg.MaxTokens, err = getEnvInt(MaxTokensEnv, 4096); err != nil {
		return cfg, fmt.Errorf("invalid %v: %w", MaxTokensEnv, err)
	}
	if cfg.CategoryID, err = getEnvInt(CategoryIDEnv, 124); err != nil {
		return cfg, fmt.Errorf("invalid %v: %w", CategoryIDEnv, err)
	}
	if cfg.MaxPerSource, err = getEnvInt(MaxPerSourceEnv, 5); err != nil {
		return cfg, fmt.Errorf("invalid %v: %w", MaxPerSourceEnv, err)
	}
	if cfg.ImageWidth, err = getEnvInt(ImageWidthEnv, 1200); err != nil {
		return cfg, fmt.Errorf("invalid %v: %w", ImageWidthEnv, err)
	}
	if cfg.ImageHeight, err = getEnvInt(ImageHeightEnv, 630); err != nil {
		return cfg, fmt.Errorf("invalid %v: %w", ImageHeightEnv, err)
	}
	if cfg.Timeout, err = getEnvDuration(TimeoutEnv, "10s"); err != nil {
		return cfg, fmt.Errorf("invalid %v: %w", TimeoutEnv, err)
	}
	if cfg.ImageDelay, err = getEnvDuration(ImageDelayEnv, "5s"); err != nil {
		return cfg, fmt.Errorf("invalid %v: %w", ImageDelayEnv, err)
	}
	if cfg.ImageTimeout, err = getEnvDuration(ImageTimeoutEnv, "120s"); err != nil {
		return cfg, fmt.Errorf("invalid %v: %w", ImageTimeoutEnv, err)
	}

	return cfg, nil
}

// parseSources parses "Name|URL,Name|URL". An empty value yields the default
// feed list.
func parseSources(v string) ([]news.Source, error) {
	if v == "" {
		return defaultSources, nil
	}

	var sources []news.Source
	for _, pair := range strings.Split(v, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, url, ok := strings.Cut(pair, "|")
		if !ok {
			return nil, fmt.Errorf("source %q is not in Name|URL form", pair)
		}
		sources = append(sources, news.Source{
			Name: strings.TrimSpace(name),
			URL:  strings.TrimSpace(url),
		})
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no sources in %q", v)
	}
	return sources, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, err
	}
	return i, nil
}

func getEnvDuration(key, fallback string) (time.Duration, error) {
	return time.ParseDuration(getEnv(key, fallback))
}
