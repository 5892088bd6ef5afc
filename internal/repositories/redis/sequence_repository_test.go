package redis

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/SscSPs/clinic_cash_register/internal/core/domain"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounterKey(t *testing.T) {
	key := domain.SequenceKey{Series: "A", Year: 2024, EntityType: domain.EntityReceipt}
	assert.Equal(t, "ccr:seq:A:2024:RECEIPT", counterKey(key))
}

// newTestClient connects to REDIS_TEST_URL and skips the test when it is not set.
func newTestClient(t *testing.T) *goredis.Client {
	t.Helper()
	url := os.Getenv("REDIS_TEST_URL")
	if url == "" {
		t.Skip("REDIS_TEST_URL not set")
	}
	opts, err := goredis.ParseURL(url)
	require.NoError(t, err)
	client := goredis.NewClient(opts)
	require.NoError(t, client.Ping(context.Background()).Err())
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestSequenceRepository_CompareAndSwapIntegration(t *testing.T) {
	client := newTestClient(t)
	repo := NewSequenceRepository(client)
	ctx := context.Background()
	key := domain.SequenceKey{Series: "ITEST", Year: 2099, EntityType: domain.EntityInvoice}
	require.NoError(t, client.Del(ctx, counterKey(key)).Err())
	t.Cleanup(func() { client.Del(context.Background(), counterKey(key)) })

	last, err := repo.GetLastIssued(ctx, key)
	require.NoError(t, err)
	assert.Zero(t, last)

	const workers = 20
	var wg sync.WaitGroup
	var mu sync.Mutex
	issued := map[int64]bool{}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				cur, err := repo.GetLastIssued(ctx, key)
				if !assert.NoError(t, err) {
					return
				}
				ok, err := repo.CompareAndSwap(ctx, key, cur, cur+1)
				if !assert.NoError(t, err) {
					return
				}
				if ok {
					mu.Lock()
					issued[cur+1] = true
					mu.Unlock()
					return
				}
			}
		}()
	}
	wg.Wait()

	assert.Len(t, issued, workers)
	for i := int64(1); i <= workers; i++ {
		assert.True(t, issued[i], "missing %d", i)
	}
}
