package imagegen

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client fetches an AI-generated illustration from a pollinations-style
// endpoint. Failures are a sentinel absence, never an error: the pipeline
// publishes without an image rather than aborting.
type Client struct {
	baseURL string
	width   int
	height  int
	delay   time.Duration
	http    *http.Client
	logger  *log.Logger
}

func NewClient(baseURL string, width, height int, delay time.Duration, httpClient *http.Client, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.Default()
	}

	return &Client{
		baseURL: baseURL,
		width:   width,
		height:  height,
		delay:   delay,
		http:    httpClient,
		logger:  logger,
	}
}

// Fetch requests an image for the prompt and returns its raw bytes. The
// configured delay runs first as rate-limiting courtesy to the free upstream.
// Any non-200 status or transport error yields (nil, false).
func (c *Client) Fetch(ctx context.Context, prompt string) ([]byte, bool) {
	imageURL := c.requestURL(prompt)
	c.logger.Printf("image URL: %s", imageURL)

	select {
	case <-ctx.Done():
		c.logger.Printf("image fetch cancelled: %v", ctx.Err())
		return nil, false
	case <-time.After(c.delay):
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		c.logger.Printf("image request build failed: %v", err)
		return nil, false
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Printf("image fetch failed: %v", err)
		return nil, false
	}
	defer resp.Body.Close()

	c.logger.Printf("image response status: %d", resp.StatusCode)
	if resp.StatusCode != http.StatusOK {
		return nil, false
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Printf("image body read failed: %v", err)
		return nil, false
	}

	return data, true
}

func (c *Client) requestURL(prompt string) string {
	q := url.Values{}
	q.Set("width", strconv.Itoa(c.width))
	q.Set("height", strconv.Itoa(c.height))
	q.Set("nologo", "true")

	return c.baseURL + "/prompt/" + url.PathEscape(prompt) + "?" + q.Encode()
}
