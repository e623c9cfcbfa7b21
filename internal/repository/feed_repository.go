package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"boutiqueCMS/internal/models"

	"github.com/jmoiron/sqlx"
)

const (
	latestCachedAtQuery = `SELECT MAX(cached_at) FROM instagram_posts`
	listFeedPostsQuery  = `
		SELECT external_id, caption, media_type, media_url, permalink, thumbnail_url, likes_count, comments_count, posted_at, cached_at
		FROM instagram_posts
		ORDER BY posted_at DESC
	`
	upsertFeedPostQuery = `
		INSERT INTO instagram_posts (external_id, caption, media_type, media_url, permalink, thumbnail_url, likes_count, comments_count, posted_at, cached_at)
		VALUES (:external_id, :caption, :media_type, :media_url, :permalink, :thumbnail_url, :likes_count, :comments_count, :posted_at, :cached_at)
		ON CONFLICT (external_id) DO UPDATE
		SET caption = EXCLUDED.caption, media_type = EXCLUDED.media_type, media_url = EXCLUDED.media_url,
			permalink = EXCLUDED.permalink, thumbnail_url = EXCLUDED.thumbnail_url,
			likes_count = EXCLUDED.likes_count, comments_count = EXCLUDED.comments_count,
			posted_at = EXCLUDED.posted_at, cached_at = EXCLUDED.cached_at
	`
)

type FeedRepositoryImpl struct {
	db *sqlx.DB
}

func NewFeedRepository(db *sqlx.DB) *FeedRepositoryImpl {
	return &FeedRepositoryImpl{db: db}
}

// LatestCachedAt reports the newest cache-write time; ok is false when the cache is empty.
func (r *FeedRepositoryImpl) LatestCachedAt(ctx context.Context) (time.Time, bool, error) {
	var latest sql.NullTime

	if err := r.db.GetContext(ctx, &latest, latestCachedAtQuery); err != nil {
		return time.Time{}, false, fmt.Errorf("ошибка при проверке кэша ленты: %w", err)
	}

	return latest.Time, latest.Valid, nil
}

func (r *FeedRepositoryImpl) ListPosts(ctx context.Context) ([]*models.FeedPost, error) {
	posts := make([]*models.FeedPost, 0)

	if err := r.db.SelectContext(ctx, &posts, listFeedPostsQuery); err != nil {
		return nil, fmt.Errorf("ошибка при чтении кэша ленты: %w", err)
	}

	return posts, nil
}

// UpsertPosts writes all posts in one transaction; either every row lands or none does.
func (r *FeedRepositoryImpl) UpsertPosts(ctx context.Context, posts []*models.FeedPost) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, post := range posts {
		if _, err = tx.NamedExecContext(ctx, upsertFeedPostQuery, post); err != nil {
			return fmt.Errorf("ошибка при сохранении поста %s: %w", post.ExternalID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("ошибка фиксации транзакции: %w", err)
	}

	return nil
}
