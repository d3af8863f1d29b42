package cache

import (
	"context"
	"errors"
	"time"

	"github.com/bytedance/sonic"
	"github.com/dappwork/marketplace/internal/modules/service"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	inboxKeyPrefix   = "marketplace:inbox:"
	versionKeyPrefix = "marketplace:inbox:ver:"
)

// Inbox caches each user's inbox entries as one JSON value next to a generation
// counter. Writers bump the counter; a rebuild is stored only if the counter has not
// moved since the rebuild started.
type Inbox struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewInbox(rdb *redis.Client, ttl time.Duration) *Inbox {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &Inbox{rdb: rdb, ttl: ttl}
}

func inboxKey(userID uuid.UUID) string   { return inboxKeyPrefix + userID.String() }
func versionKey(userID uuid.UUID) string { return versionKeyPrefix + userID.String() }

func readVersion(ctx context.Context, get func(ctx context.Context, key string) *redis.StringCmd, userID uuid.UUID) (int64, error) {
	v, err := get(ctx, versionKey(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

func (c *Inbox) Version(ctx context.Context, userID uuid.UUID) (int64, error) {
	return readVersion(ctx, c.rdb.Get, userID)
}

func (c *Inbox) Get(ctx context.Context, userID uuid.UUID) ([]service.InboxEntry, bool, error) {
	b, err := c.rdb.Get(ctx, inboxKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var entries []service.InboxEntry
	if err := sonic.Unmarshal(b, &entries); err != nil {
		return nil, false, err
	}
	return entries, true, nil
}

// Set stores entries computed at version. It returns service.ErrInboxStale, leaving the
// cache empty, when an Invalidate happened after version was read.
func (c *Inbox) Set(ctx context.Context, userID uuid.UUID, version int64, entries []service.InboxEntry) error {
	b, err := sonic.Marshal(entries)
	if err != nil {
		return err
	}

	err = c.rdb.Watch(ctx, func(tx *redis.Tx) error {
		current, err := readVersion(ctx, tx.Get, userID)
		if err != nil {
			return err
		}
		if current != version {
			return service.ErrInboxStale
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, inboxKey(userID), b, c.ttl)
			return nil
		})
		return err
	}, versionKey(userID))
	if errors.Is(err, redis.TxFailedErr) {
		return service.ErrInboxStale
	}
	return err
}

// Invalidate bumps each user's generation and drops the cached entries.
func (c *Inbox) Invalidate(ctx context.Context, userIDs ...uuid.UUID) error {
	if len(userIDs) == 0 {
		return nil
	}
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, id := range userIDs {
			pipe.Incr(ctx, versionKey(id))
			pipe.Del(ctx, inboxKey(id))
		}
		return nil
	})
	return err
}
