// Package instagram fetches recent posts of a public profile through the Apify scraper actor.
package instagram

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"boutiqueCMS/internal/config"
	"boutiqueCMS/internal/models"

	"github.com/goccy/go-json"
)

const (
	carouselType = "Carousel"

	// ImagePrefix is the storage directory holding mirrored post images.
	ImagePrefix = "instagram-cache"

	imageRoute = "/api/instagram/image/"
)

// Provider returns the latest posts, newest first as the upstream orders them.
type Provider interface {
	FetchPosts(ctx context.Context, limit int) ([]*models.FeedPost, error)
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	actorID    string
	username   string
}

func NewClient(cfg config.Instagram, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.RequestTimeout}
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.APIToken,
		actorID:    cfg.ActorID,
		username:   cfg.Username,
	}
}

type actorInput struct {
	Username     []string `json:"username"`
	ResultsLimit int      `json:"resultsLimit"`
}

type carouselItem struct {
	DisplayURL string `json:"displayUrl"`
}

type datasetItem struct {
	ID            string         `json:"id"`
	ShortCode     string         `json:"shortCode"`
	Type          string         `json:"type"`
	DisplayURL    string         `json:"displayUrl"`
	CarouselMedia []carouselItem `json:"carouselMedia"`
	Caption       string         `json:"caption"`
	Timestamp     time.Time      `json:"timestamp"`
	LikesCount    int            `json:"likesCount"`
	CommentsCount int            `json:"commentsCount"`
}

// FetchPosts runs the actor synchronously and maps its dataset items into feed posts.
func (c *Client) FetchPosts(ctx context.Context, limit int) ([]*models.FeedPost, error) {
	if c.token == "" {
		return nil, fmt.Errorf("APIFY_API_TOKEN не задан")
	}

	body, err := json.Marshal(actorInput{Username: []string{c.username}, ResultsLimit: limit})
	if err != nil {
		return nil, fmt.Errorf("ошибка кодирования запроса: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v2/acts/%s/run-sync-get-dataset-items?token=%s",
		c.baseURL, url.PathEscape(c.actorID), url.QueryEscape(c.token))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса к Apify: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("apify вернул статус %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var items []datasetItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("ошибка разбора ответа Apify: %w", err)
	}

	posts := make([]*models.FeedPost, 0, len(items))
	for _, item := range items {
		if item.ID == "" {
			continue
		}
		posts = append(posts, toPost(item))
	}

	return posts, nil
}

func toPost(item datasetItem) *models.FeedPost {
	mediaURL := item.DisplayURL
	if item.Type == carouselType && len(item.CarouselMedia) > 0 && item.CarouselMedia[0].DisplayURL != "" {
		mediaURL = item.CarouselMedia[0].DisplayURL
	}

	return &models.FeedPost{
		ExternalID:    item.ID,
		Caption:       item.Caption,
		MediaType:     item.Type,
		MediaURL:      mediaURL,
		Permalink:     "https://www.instagram.com/p/" + item.ShortCode + "/",
		ThumbnailURL:  imageRoute + ImageName(item.ID),
		LikesCount:    item.LikesCount,
		CommentsCount: item.CommentsCount,
		PostedAt:      item.Timestamp,
	}
}

// ImageName is the file name a post's media is mirrored under.
func ImageName(externalID string) string {
	return "instagram-" + externalID + ".jpg"
}

// ImagePath is the storage key of a mirrored image.
func ImagePath(filename string) string {
	return ImagePrefix + "/" + filename
}
