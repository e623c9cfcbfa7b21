package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
	"time"

	"boutiqueCMS/internal/instagram"
	"boutiqueCMS/internal/metrics"
	"boutiqueCMS/internal/models"
	"boutiqueCMS/internal/repository"
	"boutiqueCMS/internal/storage"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

var errEmptyFeed = errors.New("провайдер вернул пустую ленту")

type FeedMirror interface {
	Mirror(ctx context.Context, mediaURL, filename string) (bool, error)
}

type FeedOptions struct {
	BatchSize      int
	StaleAfter     time.Duration
	RequestTimeout time.Duration
	// MirrorWorkers bounds concurrent image downloads; zero disables mirroring.
	MirrorWorkers int
}

type FeedService interface {
	GetFeed(ctx context.Context) (*models.Feed, error)
	OpenImage(ctx context.Context, filename string) (io.ReadSeekCloser, *storage.ObjectInfo, error)
	Wait(ctx context.Context) error
}

type feedService struct {
	feedRepo repository.FeedRepository
	provider instagram.Provider
	mirror   FeedMirror
	storage  storage.Storage
	opts     FeedOptions
	now      func() time.Time

	group     singleflight.Group
	mirroring sync.WaitGroup
}

func NewFeedService(feedRepo repository.FeedRepository, provider instagram.Provider, mirror FeedMirror, store storage.Storage, opts FeedOptions) FeedService {
	return newFeedService(feedRepo, provider, mirror, store, opts)
}

func newFeedService(feedRepo repository.FeedRepository, provider instagram.Provider, mirror FeedMirror, store storage.Storage, opts FeedOptions) *feedService {
	if opts.BatchSize <= 0 {
		opts.BatchSize = 12
	}
	if opts.StaleAfter <= 0 {
		opts.StaleAfter = time.Hour
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 90 * time.Second
	}

	return &feedService{
		feedRepo: feedRepo,
		provider: provider,
		mirror:   mirror,
		storage:  store,
		opts:     opts,
		now:      time.Now,
	}
}

// GetFeed serves the cache while it is fresh, otherwise refreshes it from the provider.
// When the refresh fails any cached rows are served as stale.
func (s *feedService) GetFeed(ctx context.Context) (*models.Feed, error) {
	logger := log.Ctx(ctx)

	latest, ok, err := s.feedRepo.LatestCachedAt(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("не удалось проверить свежесть кэша ленты")
	}

	if err == nil && ok && s.now().Sub(latest) < s.opts.StaleAfter {
		posts, err := s.feedRepo.ListPosts(ctx)
		if err == nil && len(posts) > 0 {
			return s.served(posts, models.SourceCache), nil
		}
		if err != nil {
			logger.Warn().Err(err).Msg("не удалось прочитать кэш ленты")
		}
	}

	// concurrent callers share one refresh that outlives any single request
	v, err, shared := s.group.Do("refresh", func() (any, error) {
		return s.refresh(context.WithoutCancel(ctx))
	})
	if err == nil {
		return s.served(v.([]*models.FeedPost), models.SourceAPI), nil
	}
	logger.Warn().Err(err).Bool("shared", shared).Msg("обновление ленты не удалось, используется кэш")

	posts, listErr := s.feedRepo.ListPosts(ctx)
	if listErr != nil || len(posts) == 0 {
		metrics.FeedRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: %v", ErrFeedUnavailable, err)
	}

	return s.served(posts, models.SourceStaleCache), nil
}

func (s *feedService) served(posts []*models.FeedPost, source models.FeedSource) *models.Feed {
	metrics.FeedRequestsTotal.WithLabelValues(string(source)).Inc()
	return &models.Feed{Posts: posts, Source: source}
}

func (s *feedService) refresh(ctx context.Context) ([]*models.FeedPost, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.RequestTimeout)
	defer cancel()

	posts, err := s.provider.FetchPosts(ctx, s.opts.BatchSize)
	if err != nil {
		metrics.FeedRefreshTotal.WithLabelValues("provider_error").Inc()
		return nil, err
	}
	if len(posts) == 0 {
		metrics.FeedRefreshTotal.WithLabelValues("empty").Inc()
		return nil, errEmptyFeed
	}

	cachedAt := s.now().UTC()
	for _, post := range posts {
		post.CachedAt = cachedAt
	}
	slices.SortStableFunc(posts, func(a, b *models.FeedPost) int {
		return b.PostedAt.Compare(a.PostedAt)
	})

	if err := s.feedRepo.UpsertPosts(ctx, posts); err != nil {
		metrics.FeedRefreshTotal.WithLabelValues("store_error").Inc()
		return nil, err
	}

	metrics.FeedRefreshTotal.WithLabelValues("success").Inc()
	log.Ctx(ctx).Info().Int("posts", len(posts)).Msg("лента Instagram обновлена")

	s.mirrorImages(posts)

	return posts, nil
}

// mirrorImages copies post media into storage in the background.
func (s *feedService) mirrorImages(posts []*models.FeedPost) {
	if s.mirror == nil || s.opts.MirrorWorkers <= 0 {
		return
	}

	s.mirroring.Add(1)
	go func() {
		defer s.mirroring.Done()

		ctx, cancel := context.WithTimeout(context.Background(), s.opts.RequestTimeout)
		defer cancel()

		var g errgroup.Group
		g.SetLimit(s.opts.MirrorWorkers)

		for _, post := range posts {
			if post.MediaURL == "" {
				continue
			}
			g.Go(func() error {
				stored, err := s.mirror.Mirror(ctx, post.MediaURL, instagram.ImageName(post.ExternalID))
				if err != nil {
					log.Warn().Err(err).Str("post", post.ExternalID).Msg("не удалось скачать изображение Instagram")
					return nil
				}
				if stored {
					metrics.FeedMirroredImagesTotal.Inc()
				}
				return nil
			})
		}

		_ = g.Wait()
	}()
}

// Wait blocks until background mirroring has finished or ctx is done.
func (s *feedService) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.mirroring.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *feedService) OpenImage(ctx context.Context, filename string) (io.ReadSeekCloser, *storage.ObjectInfo, error) {
	clean, err := storage.CleanName(filename)
	if err != nil {
		return nil, nil, err
	}
	if strings.Contains(clean, "/") {
		return nil, nil, storage.ErrInvalidName
	}

	return s.storage.Open(ctx, instagram.ImagePath(clean))
}
