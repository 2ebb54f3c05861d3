package badger

import (
	"context"
	"encoding/binary"
	"errors"
	"time"

	"yatube/internal/config"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

// deadlineSize is the length of the big-endian UnixNano deadline that
// prefixes every stored page. Zero means the entry never expires.
const deadlineSize = 8

// PageCacheBadger implements PageCache on an embedded badger store.
// badger keeps expiry in whole seconds, so the exact deadline travels with
// the value and is checked on read; the badger TTL is rounded up and only
// lets its garbage collection reclaim the entry.
type PageCacheBadger struct {
	db  *badger.DB
	now func() time.Time
}

// OpenInMemory opens a badger store that lives only in process memory.
func OpenInMemory() (*badger.DB, error) {
	opts := badger.DefaultOptions("").
		WithInMemory(true).
		WithLogger(nil).
		WithNumVersionsToKeep(1)
	return badger.Open(opts)
}

func NewPageCacheBadger(db *badger.DB) *PageCacheBadger {
	return &PageCacheBadger{db: db, now: time.Now}
}

func (c *PageCacheBadger) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var raw []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if len(raw) < deadlineSize {
		return nil, false, nil
	}
	deadline := int64(binary.BigEndian.Uint64(raw[:deadlineSize]))
	if deadline != 0 && c.now().UnixNano() >= deadline {
		return nil, false, nil
	}
	return raw[deadlineSize:], true, nil
}

func (c *PageCacheBadger) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	raw := make([]byte, deadlineSize+len(value))
	if ttl > 0 {
		binary.BigEndian.PutUint64(raw, uint64(c.now().Add(ttl).UnixNano()))
	}
	copy(raw[deadlineSize:], value)

	return c.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(key), raw)
		if ttl > 0 {
			e = e.WithTTL(ttl.Truncate(time.Second) + time.Second)
		}
		return txn.SetEntry(e)
	})
}

func (c *PageCacheBadger) Clear(ctx context.Context) error {
	if err := c.db.DropAll(); err != nil {
		return err
	}
	config.Logger.Info("Page cache cleared", zap.String("backend", "badger"))
	return nil
}
