package redis

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/HTTPArchive/tech-report-apis/v1/query"
)

// initializeRedis starts a Redis container and returns its host and port.
func initializeRedis(ctx context.Context, t *testing.T) (string, int, testcontainers.Container) {
	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	port, err := strconv.Atoi(mappedPort.Port())
	require.NoError(t, err)

	return host, port, container
}

// TestCacheWithFXModule serves repeated reads from Redis.
func TestCacheWithFXModule(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	host, port, container := initializeRedis(ctx, t)
	defer func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}()

	backing := seededStore()
	var store query.Store

	app := fxtest.New(t,
		fx.Provide(
			func() Config { return Config{Enabled: true, Host: host, Port: port, TTL: time.Minute} },
			func() Logger { return &recordingLogger{} },
			func() query.Store { return backing },
		),
		FXModule,
		fx.Decorate(DecorateStore),
		fx.Populate(&store),
	)
	app.RequireStart()
	defer app.RequireStop()

	require.IsType(t, &Cache{}, store)

	spec := query.QuerySpec{Collection: "adoption", Sort: query.SortAsc("date")}

	t.Run("QueryServedFromCache", func(t *testing.T) {
		first, err := store.Query(ctx, spec)
		require.NoError(t, err)
		require.Len(t, first, 2)

		backing.Put("adoption", query.Document{ID: "a3", Data: map[string]any{"technology": "Svelte", "date": "2024-03-01"}})

		second, err := store.Query(ctx, spec)
		require.NoError(t, err)
		assert.Equal(t, first, second)

		fresh, err := backing.Query(ctx, spec)
		require.NoError(t, err)
		assert.Len(t, fresh, 3)
	})

	t.Run("MaxValueServedFromCache", func(t *testing.T) {
		v, ok, err := store.MaxValue(ctx, "adoption", "date")
		require.NoError(t, err)
		require.True(t, ok)

		backing.Put("adoption", query.Document{ID: "a4", Data: map[string]any{"technology": "Solid", "date": "2024-09-01"}})

		again, ok, err := store.MaxValue(ctx, "adoption", "date")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, v, again)
	})

	t.Run("MissingMaxIsCached", func(t *testing.T) {
		_, ok, err := store.MaxValue(ctx, "empty", "date")
		require.NoError(t, err)
		assert.False(t, ok)

		_, ok, err = store.MaxValue(ctx, "empty", "date")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
