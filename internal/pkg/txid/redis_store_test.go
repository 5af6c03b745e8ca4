package txid

import (
	"context"
	"testing"

	"github.com/testcontainers/testcontainers-go/modules/redis"
)

func TestRedisStoreIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	ctx := context.Background()

	redisContainer, err := redis.Run(ctx, "redis:7-alpine")
	if err != nil {
		t.Fatalf("Failed to start Redis container: %v", err)
	}
	defer redisContainer.Terminate(ctx)

	connectionString, err := redisContainer.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("Failed to get connection string: %v", err)
	}

	store, err := NewRedisStore(connectionString)
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	defer store.Close()

	t.Run("TestClaimOnce", func(t *testing.T) {
		ok, err := store.Claim(ctx, "2026-10-19_sips-014213245611111_123456")
		if err != nil || !ok {
			t.Fatalf("first claim should succeed: %v %v", ok, err)
		}
		ok, err = store.Claim(ctx, "2026-10-19_sips-014213245611111_123456")
		if err != nil || ok {
			t.Fatalf("second claim should be refused: %v %v", ok, err)
		}
	})

	t.Run("TestMarkerExpires", func(t *testing.T) {
		if _, err := store.Claim(ctx, "expiring"); err != nil {
			t.Fatalf("claim failed: %v", err)
		}
		ttl, err := store.client.TTL(ctx, "txid:expiring").Result()
		if err != nil {
			t.Fatalf("ttl failed: %v", err)
		}
		if ttl <= 0 {
			t.Fatalf("expected a positive TTL, got %v", ttl)
		}
	})

	t.Run("TestGenerator", func(t *testing.T) {
		g := NewGenerator(store)
		seen := make(map[string]bool)
		for i := 0; i < 20; i++ {
			id, err := g.New(ctx, 2, Digits, "dummy")
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
