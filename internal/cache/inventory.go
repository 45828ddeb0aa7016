package cache

import (
	"context"
	"fmt"
	"time"
)

// Key inventory. Every cached value has its key format and TTL listed here
// so invalidation sites stay in sync with the readers.
const (
	UserKeyPrefix      = "user:%d"
	FormKeyPrefix      = "form:%d"
	LikeCountKeyPrefix = "form:%d:likes"
)

const (
	UserTTL      = 5 * time.Minute
	FormTTL      = 10 * time.Minute
	LikeCountTTL = 1 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func FormKey(formID uint) string {
	return fmt.Sprintf(FormKeyPrefix, formID)
}

func LikeCountKey(formID uint) string {
	return fmt.Sprintf(LikeCountKeyPrefix, formID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateForm(ctx context.Context, formID uint) {
	Invalidate(ctx, FormKey(formID))
}

func InvalidateLikeCount(ctx context.Context, formID uint) {
	Invalidate(ctx, LikeCountKey(formID))
}
