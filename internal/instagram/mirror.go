package instagram

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"boutiqueCMS/internal/storage"
)

const (
	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	referer          = "https://www.instagram.com/"
)

// Downloader copies post media into storage. The CDN rejects requests without browser headers.
type Downloader struct {
	httpClient *http.Client
	store      storage.Storage
}

func NewDownloader(store storage.Storage, httpClient *http.Client) *Downloader {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Downloader{httpClient: httpClient, store: store}
}

// Mirror stores mediaURL under ImagePath(filename). It reports false when the file was already there.
func (d *Downloader) Mirror(ctx context.Context, mediaURL, filename string) (bool, error) {
	key := ImagePath(filename)

	exists, err := d.store.Exists(ctx, key)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, mediaURL, http.NoBody)
	if err != nil {
		return false, fmt.Errorf("ошибка создания запроса: %w", err)
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept", "image/webp,image/apng,image/*,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Referer", referer)

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("ошибка загрузки изображения: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return false, fmt.Errorf("изображение %s: статус %d", filename, resp.StatusCode)
	}

	if _, err := d.store.Save(ctx, key, resp.Body, resp.ContentLength, "image/jpeg"); err != nil {
		return false, err
	}

	return true, nil
}
