package models

import "time"

type FeedSource string

const (
	SourceCache      FeedSource = "cache"
	SourceAPI        FeedSource = "api"
	SourceStaleCache FeedSource = "stale_cache"
)

type FeedPost struct {
	ExternalID    string    `json:"id" db:"external_id"`
	Caption       string    `json:"caption" db:"caption"`
	MediaType     string    `json:"mediaType" db:"media_type"`
	MediaURL      string    `json:"originalImageUrl" db:"media_url"`
	Permalink     string    `json:"url" db:"permalink"`
	ThumbnailURL  string    `json:"thumbnailUrl" db:"thumbnail_url"`
	LikesCount    int       `json:"likes" db:"likes_count"`
	CommentsCount int       `json:"comments" db:"comments_count"`
	PostedAt      time.Time `json:"timestamp" db:"posted_at"`
	CachedAt      time.Time `json:"cachedAt" db:"cached_at"`
}

type Feed struct {
	Posts  []*FeedPost `json:"posts"`
	Source FeedSource  `json:"source"`
}
