package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"

	redisAdapter "github.com/aretw0/nbtest/pkg/adapters/redis"
	"github.com/aretw0/nbtest/pkg/domain"
	"github.com/aretw0/nbtest/pkg/ports"
)

func TestRedisStore_Contract(t *testing.T) {
	// Setup miniredis
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	defer mr.Close()

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})

	store := redisAdapter.NewFromClient(client)
	ports.RunSessionStoreContract(t, store)
}

func TestRedisStore_TTL(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	defer mr.Close()

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})

	store := redisAdapter.NewFromClient(client, redisAdapter.WithTTL(time.Minute))

	ctx := context.Background()
	if err := store.Save(ctx, "expiring", domain.NewNotebook()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Past the TTL the session must be gone.
	mr.FastForward(2 * time.Minute)

	if _, err := store.Load(ctx, "expiring"); err != domain.ErrSessionNotFound {
		t.Errorf("expected ErrSessionNotFound after TTL, got %v", err)
	}
}
