package txid

import (
	"context"
	"testing"

	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

func TestPostgresStoreIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("eopayment"),
		postgres.WithUsername("eopayment"),
		postgres.WithPassword("eopayment"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		t.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	defer pgContainer.Terminate(ctx)

	connectionString, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("Failed to get connection string: %v", err)
	}

	store, err := NewPostgresStore(connectionString)
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	// idempotent
	if err := store.EnsureSchema(ctx); err != nil {
		t.Fatalf("Second schema creation failed: %v", err)
	}

	t.Run("TestClaimOnce", func(t *testing.T) {
		ok, err := store.Claim(ctx, "2026-10-19_systempay-12345678_000042")
		if err != nil || !ok {
			t.Fatalf("first claim should succeed: %v %v", ok, err)
		}
		ok, err = store.Claim(ctx, "2026-10-19_systempay-12345678_000042")
		if err != nil || ok {
			t.Fatalf("second claim should be refused: %v %v", ok, err)
		}
	})

	t.Run("TestGenerator", func(t *testing.T) {
		g := NewGenerator(store)
		seen := make(map[string]bool)
		for i := 0; i < 20; i++ {
			id, err := g.New(ctx, 2, Digits, "spplus")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if seen[id] {
				t.Fatalf("duplicate id %s", id)
			}
			seen[id] = true
		}
	})
}
