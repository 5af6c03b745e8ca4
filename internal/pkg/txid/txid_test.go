package txid

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

var fixedDay = func() time.Time { return time.Date(2026, 10, 19, 14, 0, 0, 0, time.UTC) }

// scriptedStore refuses the first n claims, then accepts
type scriptedStore struct {
	refuse int
	names  []string
	err    error
}

func (s *scriptedStore) Claim(ctx context.Context, name string) (bool, error) {
	s.names = append(s.names, name)
	if s.err != nil {
		return false, s.err
	}
	if s.refuse > 0 {
		s.refuse--
		return false, nil
	}
	return true, nil
}

func TestNew_LengthAndAlphabet(t *testing.T) {
	g := NewGenerator(NewMemoryStore(), WithClock(fixedDay))
	id, err := g.New(context.Background(), 6, Digits, "systempay", "93413345")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(id) != 6 || strings.Trim(id, Digits) != "" {
		t.Fatalf("expected 6 digits, got %q", id)
	}

	id, err = g.New(context.Background(), 30, Alphanumeric, "dummy")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(id) != 30 || strings.Trim(id, Alphanumeric) != "" {
		t.Fatalf("expected 30 alphanumerics, got %q", id)
	}
}

func TestNew_MarkerName(t *testing.T) {
	store := &scriptedStore{}
	g := NewGenerator(store, WithClock(fixedDay))
	id, err := g.New(context.Background(), 6, Digits, "spplus", "00000000000001-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "2026-10-19_spplus-00000000000001-01_" + id
	if len(store.names) != 1 || store.names[0] != want {
		t.Fatalf("expected marker %q, got %v", want, store.names)
	}
}

func TestNew_RetriesOnCollision(t *testing.T) {
	store := &scriptedStore{refuse: 3}
	g := NewGenerator(store, WithClock(fixedDay))
	if _, err := g.New(context.Background(), 6, Digits, "sips"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.names) != 4 {
		t.Fatalf("expected 4 claim attempts, got %d", len(store.names))
	}
}

func TestNew_PropagatesStoreError(t *testing.T) {
	boom := errors.New("disk full")
	g := NewGenerator(&scriptedStore{err: boom}, WithClock(fixedDay))
	if _, err := g.New(context.Background(), 6, Digits, "sips"); !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestNew_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	g := NewGenerator(NewMemoryStore())
	if _, err := g.New(ctx, 6, Digits); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestNew_InvalidArguments(t *testing.T) {
	g := NewGenerator(NewMemoryStore())
	if _, err := g.New(context.Background(), 0, Digits); err == nil {
		t.Fatal("expected error for zero length")
	}
	if _, err := g.New(context.Background(), 6, ""); err == nil {
		t.Fatal("expected error for empty alphabet")
	}
}

func TestNew_ConcurrentCallersGetDistinctIDs(t *testing.T) {
	store := NewMemoryStore()
	g := NewGenerator(store, WithClock(fixedDay))

	// 2 digits leaves 100 candidates, so collisions are certain
	const callers = 60
	ids := make(chan string, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := g.New(context.Background(), 2, Digits, "systempay", "1")
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			ids <- id
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool)
	for id := range ids {
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
	}
	if len(seen) != callers || store.Len() != callers {
		t.Fatalf("expected %d distinct ids, got %d (store %d)", callers, len(seen), store.Len())
	}
}

func TestFileStore_ExclusiveClaim(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "markers")
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx := context.Background()

	ok, err := store.Claim(ctx, "2026-10-19_dummy_abc")
	if err != nil || !ok {
		t.Fatalf("first claim should succeed: %v %v", ok, err)
	}
	ok, err = store.Claim(ctx, "2026-10-19_dummy_abc")
	if err != nil || ok {
		t.Fatalf("second claim should be refused: %v %v", ok, err)
	}
	if _, err := os.Stat(filepath.Join(dir, "2026-10-19_dummy_abc")); err != nil {
		t.Fatalf("marker file missing: %v", err)
	}
}

func TestFileStore_RejectsPathSeparators(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := store.Claim(context.Background(), "2026-10-19_a/b_1"); err == nil {
		t.Fatal("expected error for name with separator")
	}
}

func TestFileStore_UnwritableDirectoryIsFatal(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := os.RemoveAll(dir); err != nil {
		t.Fatalf("remove dir: %v", err)
	}
	g := NewGenerator(store, WithClock(fixedDay))
	if _, err := g.New(context.Background(), 6, Digits, "sips"); err == nil {
		t.Fatal("expected error when marker directory is gone")
	}
}

func TestRedisStore_TTLCoversNextDay(t *testing.T) {
	s := &RedisStore{now: func() time.Time { return time.Date(2026, 10, 19, 23, 0, 0, 0, time.UTC) }}
	if got := s.ttl(); got != 25*time.Hour {
		t.Fatalf("expected 25h, got %v", got)
	}
}
