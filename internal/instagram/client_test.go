package instagram

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"boutiqueCMS/internal/config"
	"boutiqueCMS/internal/models"
	"boutiqueCMS/internal/storage"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const datasetJSON = `[
	{"id": "111", "shortCode": "AbC", "type": "Image", "displayUrl": "https://cdn.example/111.jpg",
	 "caption": "Bouquet du jour", "timestamp": "2026-03-01T10:00:00.000Z", "likesCount": 12, "commentsCount": 3},
	{"id": "222", "shortCode": "XyZ", "type": "Carousel", "displayUrl": "https://cdn.example/cover.jpg",
	 "carouselMedia": [{"displayUrl": "https://cdn.example/first.jpg"}, {"displayUrl": "https://cdn.example/second.jpg"}],
	 "timestamp": "2026-02-28T09:00:00.000Z", "likesCount": 40, "commentsCount": 0},
	{"shortCode": "noid"}
]`

func testConfig(baseURL string) config.Instagram {
	return config.Instagram{
		APIToken:       "tok",
		BaseURL:        baseURL,
		ActorID:        "nH2AHrwxeTRJoN5hX",
		Username:       "taxi.amore",
		RequestTimeout: 5 * time.Second,
	}
}

func TestClient_FetchPosts(t *testing.T) {
	t.Run("Успешный запрос", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v2/acts/nH2AHrwxeTRJoN5hX/run-sync-get-dataset-items", r.URL.Path)
			assert.Equal(t, "tok", r.URL.Query().Get("token"))

			var in actorInput
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&in))
			assert.Equal(t, []string{"taxi.amore"}, in.Username)
			assert.Equal(t, 12, in.ResultsLimit)

			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, datasetJSON)
		}))
		defer srv.Close()

		posts, err := NewClient(testConfig(srv.URL+"/"), nil).FetchPosts(context.Background(), 12)

		require.NoError(t, err)
		require.Len(t, posts, 2)

		assert.Equal(t, "111", posts[0].ExternalID)
		assert.Equal(t, "https://www.instagram.com/p/AbC/", posts[0].Permalink)
		assert.Equal(t, "/api/instagram/image/instagram-111.jpg", posts[0].ThumbnailURL)
		assert.Equal(t, "https://cdn.example/111.jpg", posts[0].MediaURL)
		assert.Equal(t, 12, posts[0].LikesCount)
		assert.True(t, posts[0].PostedAt.Equal(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)))

		assert.Equal(t, "https://cdn.example/first.jpg", posts[1].MediaURL, "карусель берёт первое медиа")
		assert.Equal(t, "Carousel", posts[1].MediaType)
	})

	t.Run("Ошибка апстрима", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "quota exceeded", http.StatusPaymentRequired)
		}))
		defer srv.Close()

		_, err := NewClient(testConfig(srv.URL), nil).FetchPosts(context.Background(), 12)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "402")
	})

	t.Run("Битый JSON", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{"not": "an array"`)
		}))
		defer srv.Close()

		_, err := NewClient(testConfig(srv.URL), nil).FetchPosts(context.Background(), 12)

		assert.Error(t, err)
	})

	t.Run("Без токена запрос не отправляется", func(t *testing.T) {
		cfg := testConfig("http://127.0.0.1:1")
		cfg.APIToken = ""

		_, err := NewClient(cfg, nil).FetchPosts(context.Background(), 12)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "APIFY_API_TOKEN")
	})
}

type stubProvider struct {
	calls int32
	err   error
}

func (s *stubProvider) FetchPosts(ctx context.Context, limit int) ([]*models.FeedPost, error) {
	atomic.AddInt32(&s.calls, 1)
	if s.err != nil {
		return nil, s.err
	}
	return []*models.FeedPost{{ExternalID: "1"}}, nil
}

func TestBreakerProvider(t *testing.T) {
	stub := &stubProvider{err: errors.New("boom")}
	b := NewBreakerProvider(stub, 2, time.Minute)

	for i := 0; i < 2; i++ {
		_, err := b.FetchPosts(context.Background(), 1)
		require.Error(t, err)
	}
	assert.Equal(t, gobreaker.StateOpen, b.State())

	_, err := b.FetchPosts(context.Background(), 1)

	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, int32(2), atomic.LoadInt32(&stub.calls), "открытый предохранитель не вызывает провайдера")
}

func TestDownloader_Mirror(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		if r.URL.Path == "/missing.jpg" {
			http.NotFound(w, r)
			return
		}
		assert.Equal(t, referer, r.Header.Get("Referer"))
		assert.Contains(t, r.Header.Get("User-Agent"), "Mozilla/5.0")
		_, _ = io.WriteString(w, "jpeg-bytes")
	}))
	defer srv.Close()

	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	d := NewDownloader(store, srv.Client())
	ctx := context.Background()

	t.Run("Первая загрузка", func(t *testing.T) {
		stored, err := d.Mirror(ctx, srv.URL+"/a.jpg", ImageName("111"))

		require.NoError(t, err)
		assert.True(t, stored)
		info, err := store.Stat(ctx, "instagram-cache/instagram-111.jpg")
		require.NoError(t, err)
		assert.Equal(t, int64(len("jpeg-bytes")), info.Size)
	})

	t.Run("Повторная загрузка пропускается", func(t *testing.T) {
		stored, err := d.Mirror(ctx, srv.URL+"/a.jpg", ImageName("111"))

		require.NoError(t, err)
		assert.False(t, stored)
		assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
	})

	t.Run("Ошибка CDN", func(t *testing.T) {
		_, err := d.Mirror(ctx, srv.URL+"/missing.jpg", ImageName("404"))

		require.Error(t, err)
		exists, err := store.Exists(ctx, ImagePath(ImageName("404")))
		require.NoError(t, err)
		assert.False(t, exists)
	})
}
