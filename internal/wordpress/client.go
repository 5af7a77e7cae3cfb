package wordpress

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
)

// Media is an uploaded attachment in the backend's media store.
type Media struct {
	ID        int64  `json:"id"`
	SourceURL string `json:"source_url"`
}

// Post is the create-post request body for the wp/v2 content API.
// FeaturedMedia is omitted when zero so posts without an image stay valid.
type Post struct {
	Title         string `json:"title"`
	Content       string `json:"content"`
	Status        string `json:"status"`
	Categories    []int  `json:"categories"`
	FeaturedMedia int64  `json:"featured_media,omitempty"`
}

type Client struct {
	baseURL     string
	username    string
	appPassword string
	http        *http.Client
	logger      *log.Logger
}

func NewClient(baseURL, username, appPassword string, httpClient *http.Client, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.Default()
	}

	return &Client{
		baseURL:     baseURL,
		username:    username,
		appPassword: appPassword,
		http:        httpClient,
		logger:      logger,
	}
}

// UploadMedia posts raw JPEG bytes to the media endpoint. Anything but a 201
// is logged and reported as absence; an upload failure must not abort the
// run.
func (c *Client) UploadMedia(ctx context.Context, data []byte, filename string) (Media, bool) {
	endpoint := c.baseURL + "/wp-json/wp/v2/media"
	c.logger.Printf("uploading media to %s", endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		c.logger.Printf("media upload request build failed: %v", err)
		return Media{}, false
	}
	req.Header.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename+".jpg"))
	req.Header.Set("Content-Type", "image/jpeg")
	req.SetBasicAuth(c.username, c.appPassword)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Printf("media upload failed: %v", err)
		return Media{}, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Printf("media upload failed: %d - %s", resp.StatusCode, body)
		return Media{}, false
	}

	var media Media
	if err := json.NewDecoder(resp.Body).Decode(&media); err != nil {
		c.logger.Printf("media upload response decode failed: %v", err)
		return Media{}, false
	}

	c.logger.Printf("media uploaded: id=%d url=%s", media.ID, media.SourceURL)
	return media, true
}

// CreatePost publishes the post and returns its public link. A non-201 status
// is an error for the caller: the run ends unsuccessfully, with no retry and
// no cleanup of already-uploaded media.
func (c *Client) CreatePost(ctx context.Context, post Post) (string, error) {
	endpoint := c.baseURL + "/wp-json/wp/v2/posts"

	body, err := json.Marshal(post)
	if err != nil {
		return "", fmt.Errorf("encoding post: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.username, c.appPassword)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("post creation failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		c.logger.Printf("post creation failed: %d - %s", resp.StatusCode, respBody)
		return "", fmt.Errorf("post creation failed with status %d", resp.StatusCode)
	}

	var created struct {
		Link string `json:"link"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", fmt.Errorf("decoding post response: %w", err)
	}

	return created.Link, nil
}
