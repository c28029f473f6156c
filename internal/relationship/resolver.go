package relationship

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const emailCacheTTL = 10 * time.Minute

// Resolver maps a caller-supplied target — an explicit uid or an email —
// to a canonical uid. An explicit uid always wins and is returned as-is;
// emails go through the directory with a small redis cache in front, since
// clients tend to retry sends against the same address.
type Resolver struct {
	dir Directory
	rdb *redis.Client
}

// NewResolver builds a resolver. rdb may be nil, in which case every email
// lookup hits the directory.
func NewResolver(dir Directory, rdb *redis.Client) *Resolver {
	return &Resolver{dir: dir, rdb: rdb}
}

// Resolve returns the canonical uid for the target, ErrInvalidTarget when
// neither form was supplied, or ErrUserNotFound when the email matches no
// account.
func (r *Resolver) Resolve(ctx context.Context, targetUID, targetEmail string) (string, error) {
	if uid := strings.TrimSpace(targetUID); uid != "" {
		return uid, nil
	}

	email := strings.TrimSpace(targetEmail)
	if email == "" {
		return "", ErrInvalidTarget
	}

	cacheKey := "relationship:email:" + email
	if r.rdb != nil {
		if uid, err := r.rdb.Get(ctx, cacheKey).Result(); err == nil && uid != "" {
			return uid, nil
		}
	}

	uid, err := r.dir.UIDByEmail(ctx, email)
	if err != nil {
		return "", err
	}

	if r.rdb != nil {
		if err := r.rdb.Set(ctx, cacheKey, uid, emailCacheTTL).Err(); err != nil {
			logrus.WithError(err).Warn("failed to cache email lookup")
		}
	}
	return uid, nil
}
