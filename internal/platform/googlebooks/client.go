package googlebooks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

var (
	// ErrNotFound is returned when the catalog has no volume for an ISBN.
	ErrNotFound = errors.New("book details not found")
	// ErrUnavailable covers every other lookup failure. The underlying cause
	// is logged, never returned.
	ErrUnavailable = errors.New("book details unavailable")
)

// Volume is the subset of volume metadata the inventory UI shows.
type Volume struct {
	Title    *string `json:"title"`
	ImageURL *string `json:"imageUrl"`
}

// volumesResponse matches GET /volumes?q=isbn:{isbn}
type volumesResponse struct {
	TotalItems int `json:"totalItems"`
	Items      []struct {
		VolumeInfo *struct {
			Title      string `json:"title"`
			ImageLinks *struct {
				Thumbnail string `json:"thumbnail"`
			} `json:"imageLinks"`
		} `json:"volumeInfo"`
	} `json:"items"`
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter
	log        *logrus.Logger
}

func NewClient(baseURL, apiKey string, timeout time.Duration, rps int, log *logrus.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		limiter: rate.NewLimiter(rate.Every(time.Second/time.Duration(rps)), 1),
		log:     log,
	}
}

// LookupByISBN fetches the first matching volume. Single attempt, no retries.
func (c *Client) LookupByISBN(ctx context.Context, isbn string) (Volume, error) {
	entry := c.log.WithField("isbn", isbn)

	if c.apiKey == "" {
		entry.Error("google books api key is not configured")
		return Volume{}, ErrUnavailable
	}

	var res volumesResponse
	if err := c.get(ctx, c.volumesURL(isbn), &res); err != nil {
		entry.WithError(err).Error("google books lookup failed")
		return Volume{}, ErrUnavailable
	}

	if len(res.Items) == 0 || res.Items[0].VolumeInfo == nil {
		return Volume{}, ErrNotFound
	}

	info := res.Items[0].VolumeInfo
	var v Volume
	if info.Title != "" {
		title := info.Title
		v.Title = &title
	}
	if info.ImageLinks != nil && info.ImageLinks.Thumbnail != "" {
		thumb := info.ImageLinks.Thumbnail
		v.ImageURL = &thumb
	}
	return v, nil
}

func (c *Client) volumesURL(isbn string) string {
	q := url.Values{}
	q.Set("q", "isbn:"+isbn)
	q.Set("key", c.apiKey)
	return c.baseURL + "/volumes?" + q.Encode()
}

func (c *Client) get(ctx context.Context, u string, target any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decode volumes response: %w", err)
	}
	return nil
}
