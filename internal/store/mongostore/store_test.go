package mongostore

import (
	"context"
	"testing"

	"github.com/NathanBartolo/echo/internal/core"
	"github.com/NathanBartolo/echo/internal/store/storetest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
)

// TestStoreWithMongoDB runs the shared store suite against a MongoDB container
func TestStoreWithMongoDB(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping MongoDB integration test in short mode")
	}

	// Recover from panic if Docker is not available
	defer func() {
		if r := recover(); r != nil {
			t.Skipf("Skipping MongoDB test: Docker not available (panic: %v)", r)
		}
	}()

	ctx := context.Background()

	container, err := mongodb.Run(ctx, "mongo:7")
	if err != nil {
		t.Skipf("Skipping MongoDB test: Docker not available (%v)", err)
		return
	}
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	storetest.Run(t, func(t *testing.T) core.Store {
		t.Helper()
		// Each subtest gets its own database for isolation
		s, err := New(ctx, uri, "test_"+uuid.New().String()[:8])
		require.NoError(t, err)
		t.Cleanup(func() {
			_ = s.db.Drop(context.Background())
			_ = s.Close()
		})
		return s
	})
}

func TestNew_UnreachableServer(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 0)
	defer cancel()

	_, err := New(ctx, "mongodb://127.0.0.1:1", "echo")
	require.Error(t, err)
}
