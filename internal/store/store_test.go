package store_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/NathanBartolo/echo/internal/core"
	"github.com/NathanBartolo/echo/internal/store"
	"github.com/NathanBartolo/echo/internal/store/storetest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// TestStoreWithSQLite tests store operations with SQLite
func TestStoreWithSQLite(t *testing.T) {
	storetest.Run(t, func(t *testing.T) core.Store {
		return createFreshStore(t, "sqlite", nil)
	})
}

// TestStoreWithPostgres tests store operations with PostgreSQL
func TestStoreWithPostgres(t *testing.T) {
	// Skip if running short tests or Docker is not available
	if testing.Short() {
		t.Skip("Skipping PostgreSQL integration test in short mode")
	}

	// Recover from panic if Docker is not available
	defer func() {
		if r := recover(); r != nil {
			t.Skipf("Skipping PostgreSQL test: Docker not available (panic: %v)", r)
		}
	}()

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Skipf("Skipping PostgreSQL test: Docker not available (%v)", err)
		return
	}
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	storetest.Run(t, func(t *testing.T) core.Store {
		return createFreshStore(t, "postgres", pgContainer)
	})
}

// createFreshStore creates a new store instance for test isolation
// For SQLite, each call creates a fresh :memory: database
// For PostgreSQL, each call creates a uniquely-named database in the container
func createFreshStore(
	t *testing.T,
	driver string,
	pgContainer *postgres.PostgresContainer,
) *store.Store {
	t.Helper()
	ctx := context.Background()

	var dsn string
	switch driver {
	case "sqlite":
		dsn = ":memory:"
	case "postgres":
		dbName := "test_" + uuid.New().String()[:8]

		createDBCmd := fmt.Sprintf("CREATE DATABASE %s", dbName)
		_, _, err := pgContainer.Exec(
			ctx,
			[]string{"psql", "-U", "testuser", "-d", "testdb", "-c", createDBCmd},
		)
		require.NoError(t, err)

		host, err := pgContainer.Host(ctx)
		require.NoError(t, err)
		port, err := pgContainer.MappedPort(ctx, "5432")
		require.NoError(t, err)
		dsn = fmt.Sprintf(
			"host=%s port=%s user=testuser password=testpass dbname=%s sslmode=disable",
			host, port.Port(), dbName,
		)

		t.Cleanup(func() {
			dropDBCmd := fmt.Sprintf("DROP DATABASE IF EXISTS %s WITH (FORCE)", dbName)
			_, _, _ = pgContainer.Exec(
				context.Background(),
				[]string{"psql", "-U", "testuser", "-d", "testdb", "-c", dropDBCmd},
			)
		})
	default:
		t.Fatalf("unsupported driver: %s", driver)
	}

	s, err := store.New(ctx, driver, dsn)
	require.NoError(t, err)
	require.NotNil(t, s)
	t.Cleanup(func() { _ = s.Close() })

	return s
}

// TestDriverFactory tests the driver factory pattern
func TestDriverFactory(t *testing.T) {
	tests := []struct {
		name        string
		driver      string
		dsn         string
		expectError bool
	}{
		{
			name:        "SQLite valid",
			driver:      "sqlite",
			dsn:         ":memory:",
			expectError: false,
		},
		{
			name:        "Unsupported driver",
			driver:      "mysql",
			dsn:         "user:pass@tcp(localhost:3306)/dbname",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dialector, err := store.GetDialector(tt.driver, tt.dsn)
			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, dialector)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, dialector)
			}
		})
	}
}

// TestRegisterDriver tests registering custom drivers
func TestRegisterDriver(t *testing.T) {
	customDriverCalled := false
	store.RegisterDriver("custom", func(dsn string) gorm.Dialector {
		customDriverCalled = true
		return nil
	})

	dialector, err := store.GetDialector("custom", "test-dsn")
	assert.NoError(t, err)
	assert.True(t, customDriverCalled)
	assert.Nil(t, dialector)
}

func TestNew_UnsupportedDriver(t *testing.T) {
	_, err := store.New(context.Background(), "mongodb", "mongodb://localhost")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

// BenchmarkStoreOperations benchmarks basic store operations
func BenchmarkStoreOperations(b *testing.B) {
	ctx := context.Background()
	s, err := store.New(ctx, "sqlite", ":memory:")
	require.NoError(b, err)

	b.Run("CreateUser", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = s.CreateUser(ctx, storetest.NewUser("user"))
		}
	})

	b.Run("GetUserByEmail", func(b *testing.B) {
		user := storetest.NewUser("user")
		require.NoError(b, s.CreateUser(ctx, user))

		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, _ = s.GetUserByEmail(ctx, user.Email)
		}
	})
}
