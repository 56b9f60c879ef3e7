package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix   = "user:%d"
	StatusKeyPrefix = "status:%d"
	FeedKey         = "feed:visible"
)

const (
	UserTTL   = 5 * time.Minute
	StatusTTL = 10 * time.Minute
	// FeedTTL is short because expiry is time-driven: a cached feed can hold a
	// status that crosses the 48h boundary while cached.
	FeedTTL = 30 * time.Second
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func StatusKey(statusID uint) string {
	return fmt.Sprintf(StatusKeyPrefix, statusID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateStatus(ctx context.Context, statusID uint) {
	Invalidate(ctx, StatusKey(statusID))
	Invalidate(ctx, FeedKey)
}

func InvalidateFeed(ctx context.Context) {
	Invalidate(ctx, FeedKey)
}
