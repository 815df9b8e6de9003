// Package cache provides a small per-user cache for record lists on top of
// Redis. The cache is strictly an optimization: when Redis is unavailable a
// nil *RecordList behaves as a permanent miss and the API serves straight
// from the database.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/edgarsv/passvault/internal/model"
)

// RecordList caches the full record list of a single owner under one key.
// Entries are invalidated on every create and delete for that owner, so a
// list that follows a mutation always reflects it.
type RecordList struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRecordList wraps the given client. A nil client yields a nil cache,
// which every method treats as a no-op.
func NewRecordList(rdb *redis.Client, ttl time.Duration) *RecordList {
	if rdb == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &RecordList{rdb: rdb, ttl: ttl}
}

func key(ownerID string) string { return "records:" + ownerID }

// Get returns the cached list for ownerID and whether the entry was present.
func (c *RecordList) Get(ctx context.Context, ownerID string) ([]model.Record, bool) {
	if c == nil {
		return nil, false
	}
	bs, err := c.rdb.Get(ctx, key(ownerID)).Bytes()
	if err != nil {
		return nil, false
	}
	var recs []model.Record
	if err := json.Unmarshal(bs, &recs); err != nil {
		return nil, false
	}
	if recs == nil {
		recs = []model.Record{}
	}
	return recs, true
}

// Set stores the list for ownerID. Failures are ignored; the next Get simply
// misses.
func (c *RecordList) Set(ctx context.Context, ownerID string, recs []model.Record) {
	if c == nil {
		return
	}
	bs, err := json.Marshal(recs)
	if err != nil {
		return
	}
	_ = c.rdb.SetEx(ctx, key(ownerID), bs, c.ttl).Err()
}

// Invalidate drops the cached list for ownerID.
func (c *RecordList) Invalidate(ctx context.Context, ownerID string) {
	if c == nil {
		return
	}
	_ = c.rdb.Del(ctx, key(ownerID)).Err()
}
