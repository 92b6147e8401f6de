package clients

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/spacesedan/newsnlp/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestValkeyClient(t *testing.T) (*ValkeyClient, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	client, err := NewValkeyClient(config.ValkeyConfig{
		InitAddress: mr.Addr(),
		SummaryTTL:  time.Hour,
	})
	require.NoError(t, err)
	t.Cleanup(client.Close)

	return client, mr
}

func TestValkeySummaryCacheRoundTrip(t *testing.T) {
	client, mr := newTestValkeyClient(t)
	ctx := context.Background()

	_, ok, err := client.Get(ctx, "summary:abc")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, client.Set(ctx, "summary:abc", "A short version"))

	value, ok, err := client.Get(ctx, "summary:abc")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "A short version", value)
	assert.Equal(t, time.Hour, mr.TTL("summary:abc"))
}

func TestValkeySummaryCacheExpires(t *testing.T) {
	client, mr := newTestValkeyClient(t)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "summary:old", "stale"))
	mr.FastForward(2 * time.Hour)

	_, ok, err := client.Get(ctx, "summary:old")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestValkeyHealthCheck(t *testing.T) {
	client, _ := newTestValkeyClient(t)
	assert.NoError(t, client.HealthCheck(context.Background()))
}

func TestNewValkeyClientUnreachable(t *testing.T) {
	_, err := NewValkeyClient(config.ValkeyConfig{InitAddress: "127.0.0.1:1"})
	require.Error(t, err)
}

func TestIsConnectionError(t *testing.T) {
	assert.False(t, isConnectionError(nil))
	assert.False(t, isConnectionError(assert.AnError))
	assert.True(t, isConnectionError(errors.New("dial tcp 127.0.0.1:6379: connect: connection refused")))
	assert.True(t, isConnectionError(errors.New("read tcp: i/o timeout")))
}

func TestValkeyRecreateClientReplacesFailedClient(t *testing.T) {
	client, _ := newTestValkeyClient(t)
	ctx := context.Background()
	failed := client.client()

	assert.True(t, client.recreateClient(failed))

	current := client.client()
	assert.True(t, failed != current)
	require.NoError(t, client.Set(ctx, "summary:new", "fresh"))
	value, ok, err := client.Get(ctx, "summary:new")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "fresh", value)
}

func TestValkeyRecreateClientIgnoresStaleClient(t *testing.T) {
	client, _ := newTestValkeyClient(t)
	stale := client.client()
	require.True(t, client.recreateClient(stale))
	current := client.client()

	assert.False(t, client.recreateClient(stale))
	assert.True(t, current == client.client())
	assert.NoError(t, client.HealthCheck(context.Background()))
}

func TestValkeyRecreateClientConcurrentFailuresReplaceOnce(t *testing.T) {
	client, _ := newTestValkeyClient(t)
	failed := client.client()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		replaced int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if client.recreateClient(failed) {
				mu.Lock()
				replaced++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, replaced)
	assert.True(t, failed != client.client())
	assert.NoError(t, client.HealthCheck(context.Background()))
}
