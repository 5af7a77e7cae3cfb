package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"health-digest/internal/news"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "claude-sonnet-4-20250514", cfg.AnthropicModel)
	assert.Equal(t, 4096, cfg.MaxTokens)
	assert.Equal(t, 124, cfg.CategoryID)
	assert.Equal(t, 5, cfg.MaxPerSource)
	assert.Len(t, cfg.FeedSources, 3)
	assert.Equal(t, "Health Chosun", cfg.FeedSources[0].Name)

	assert.Equal(t, "https://image.pollinations.ai", cfg.ImageBaseURL)
	assert.Equal(t, 1200, cfg.ImageWidth)
	assert.Equal(t, 630, cfg.ImageHeight)
	assert.Equal(t, 5*time.Second, cfg.ImageDelay)
	assert.Equal(t, 120*time.Second, cfg.ImageTimeout)
	assert.Equal(t, 10*time.Second, cfg.Timeout)

	// optional integrations default to disabled
	assert.Empty(t, cfg.RabbitURI)
	assert.Empty(t, cfg.MongoURI)
}

func TestFromEnv_FeedSourceList(t *testing.T) {
	t.Setenv(FeedSourcesEnv, "A|https://a.example/rss, B|https://b.example/feed")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, []news.Source{
		{Name: "A", URL: "https://a.example/rss"},
		{Name: "B", URL: "https://b.example/feed"},
	}, cfg.FeedSources)
}

func TestFromEnv_MalformedFeedSource(t *testing.T) {
	t.Setenv(FeedSourcesEnv, "just-a-url-no-name")

	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), FeedSourcesEnv)
}

func TestFromEnv_InvalidDuration(t *testing.T) {
	t.Setenv(ImageDelayEnv, "soon")

	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), ImageDelayEnv)
}

func TestFromEnv_InvalidInt(t *testing.T) {
	t.Setenv(MaxPerSourceEnv, "five")

	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), MaxPerSourceEnv)
}

func TestFromEnv_TrimsTrailingSlash(t *testing.T) {
	t.Setenv(WPURLEnv, "https://blog.example.com/")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "https://blog.example.com", cfg.WPURL)
}
