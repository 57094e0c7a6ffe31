//go:build e2e

package realtime_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"table-booking/internal/domain/event"
	"table-booking/internal/infra/realtime"
	"table-booking/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startRedis(t *testing.T) string {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
			Labels:       map[string]string{"purpose": "e2e-tests"},
		},
		Started: true,
	})
	require.NoError(t, err, "failed to start redis container")
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := c.Terminate(ctx); err != nil {
			slog.Warn("failed to terminate redis container", "error", err.Error())
		}
	})

	endpoint, err := c.Endpoint(ctx, "")
	require.NoError(t, err)
	return endpoint
}

// Two hubs stand in for two server instances sharing one Redis channel.
func TestRedisRelayFansOutAcrossInstances(t *testing.T) {
	cfg := config.RedisConfig{Addr: startRedis(t), EventsChannel: "reservations.events.test"}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	client, err := realtime.NewRedisClient(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	hubs := []*realtime.Hub{realtime.NewHub(8, logger), realtime.NewHub(8, logger)}
	var subs []<-chan event.Event
	for _, hub := range hubs {
		relay := realtime.NewRedisRelay(client, cfg.EventsChannel, hub, logger)
		go func() { _ = relay.Run(ctx) }()

		ch, unsubscribe := hub.Subscribe()
		t.Cleanup(unsubscribe)
		subs = append(subs, ch)
	}

	publisher := realtime.NewRedisPublisher(client, cfg.EventsChannel)
	occurred := time.Date(2030, time.June, 10, 12, 0, 0, 0, time.UTC)

	// Relays subscribe asynchronously.
	require.Eventually(t, func() bool {
		n, err := client.PubSubNumSub(ctx, cfg.EventsChannel).Result()
		return err == nil && n[cfg.EventsChannel] == int64(len(hubs))
	}, 10*time.Second, 50*time.Millisecond)

	require.NoError(t, publisher.Publish(ctx, event.Metrics(occurred)))

	for i, ch := range subs {
		select {
		case got := <-ch:
			assert.Equal(t, event.MetricsChanged, got.Type, "hub %d", i)
			assert.True(t, got.OccurredAt.Equal(occurred), "hub %d", i)
		case <-time.After(5 * time.Second):
			t.Fatalf("hub %d received nothing", i)
		}
	}
}

func TestRedisClientRejectsUnreachableServer(t *testing.T) {
	_, err := realtime.NewRedisClient(config.RedisConfig{Addr: "127.0.0.1:1"})
	assert.Error(t, err)
}
