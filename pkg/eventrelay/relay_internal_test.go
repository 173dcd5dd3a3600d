package eventrelay

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/backoffice/pkg/eventhub"
)

type sink struct {
	mu     sync.Mutex
	frames []string
}

func (s *sink) WriteFrame(frame []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames = append(s.frames, string(frame))
	return nil
}

type capturePublish struct {
	payload any
}

func (c *capturePublish) Publish(_ context.Context, _ string, message any) *redis.IntCmd {
	c.payload = message
	return redis.NewIntResult(1, nil)
}

func TestRelay_handle(t *testing.T) {
	t.Parallel()

	hub := eventhub.New()
	t.Cleanup(func() { _ = hub.Close() })

	acme, globex := &sink{}, &sink{}
	_, err := hub.Subscribe("acme", acme)
	require.NoError(t, err)
	_, err = hub.Subscribe("globex", globex)
	require.NoError(t, err)

	r := NewRelay(nil, hub, WithPrefix("crm"))

	n := r.handle(context.Background(), &redis.Message{Channel: "crm:acme", Payload: `{"type":"lead.won"}`})
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"data: {\"type\":\"lead.won\"}\n\n"}, acme.frames)
	assert.Empty(t, globex.frames)

	assert.Zero(t, r.handle(context.Background(), &redis.Message{Channel: "other:acme", Payload: "x"}))
	assert.Zero(t, r.handle(context.Background(), &redis.Message{Channel: "crm:", Payload: "x"}))
	assert.Len(t, acme.frames, 1)
}

func TestRelay_FramesMatchLocalDelivery(t *testing.T) {
	t.Parallel()

	ev := eventhub.Structured(map[string]any{"type": "invoice.paid", "amount": 1200, "note": "line1\nline2"})

	local := eventhub.New()
	t.Cleanup(func() { _ = local.Close() })
	direct := &sink{}
	_, err := local.Subscribe("acme", direct)
	require.NoError(t, err)
	local.Publish(context.Background(), "acme", ev)

	client := &capturePublish{}
	_, err = NewRedisPublisher(client, "").Publish(context.Background(), "acme", ev)
	require.NoError(t, err)

	remote := eventhub.New()
	t.Cleanup(func() { _ = remote.Close() })
	relayed := &sink{}
	_, err = remote.Subscribe("acme", relayed)
	require.NoError(t, err)

	payload, ok := client.payload.([]byte)
	require.True(t, ok)
	NewRelay(nil, remote).handle(context.Background(), &redis.Message{
		Channel: "backoffice:events:acme",
		Payload: string(payload),
	})

	assert.Equal(t, direct.frames, relayed.frames)
}

func TestRelay_Run(t *testing.T) {
	t.Parallel()

	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	t.Run("subscription failure", func(t *testing.T) {
		err := NewRelay(client, eventhub.New()).Run(context.Background())
		assert.ErrorIs(t, err, ErrSubscribe)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.NoError(t, NewRelay(client, eventhub.New()).Run(ctx))
	})
}
