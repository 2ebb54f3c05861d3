package main

import (
	"context"
	"os"
	"syscall"
	"testing"
	"time"

	badgeradapter "yatube/internal/adapters/badger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlushOnSignalClearsCache(t *testing.T) {
	db, err := badgeradapter.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	cache := badgeradapter.NewPageCacheBadger(db)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, cache.Set(ctx, "index_page:anonymous:/", []byte("<p>cached</p>"), time.Minute))

	sig := make(chan os.Signal, 1)
	done := make(chan struct{})
	go func() {
		flushOnSignal(ctx, cache, sig)
		close(done)
	}()

	sig <- syscall.SIGHUP
	assert.Eventually(t, func() bool {
		_, ok, err := cache.Get(ctx, "index_page:anonymous:/")
		return err == nil && !ok
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("flushOnSignal did not stop after cancel")
	}
}
