package txid

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// FileStore claims names by exclusively creating marker files in a directory
type FileStore struct {
	dir string
}

// NewFileStore creates the directory if needed. An empty dir means os.TempDir().
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create marker directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) Claim(ctx context.Context, name string) (bool, error) {
	if strings.ContainsAny(name, `/\`) {
		return false, fmt.Errorf("invalid marker name %q", name)
	}
	f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return false, nil
		}
		return false, err
	}
	return true, f.Close()
}

// MemoryStore keeps claims in process memory
type MemoryStore struct {
	mu      sync.Mutex
	claimed map[string]struct{}
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{claimed: make(map[string]struct{})}
}

func (s *MemoryStore) Claim(ctx context.Context, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.claimed[name]; ok {
		return false, nil
	}
	s.claimed[name] = struct{}{}
	return true, nil
}

// Len returns the number of claimed names
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.claimed)
}

// RedisStore claims names with SETNX so several hosts can share a namespace
type RedisStore struct {
	client *redis.Client
	now    func() time.Time
}

// NewRedisStore connects to redisURL and verifies the connection
func NewRedisStore(redisURL string) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	opt.DialTimeout = 5 * time.Second
	opt.ReadTimeout = 3 * time.Second
	opt.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	log.Info().Msg("Connected to Redis")
	return NewRedisStoreFromClient(client), nil
}

func NewRedisStoreFromClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, now: time.Now}
}

func (s *RedisStore) Claim(ctx context.Context, name string) (bool, error) {
	return s.client.SetNX(ctx, "txid:"+name, s.now().Unix(), s.ttl()).Result()
}

// ttl keeps a marker until the end of the next day, after which the date part
// of the name can no longer collide
func (s *RedisStore) ttl() time.Duration {
	now := s.now()
	end := time.Date(now.Year(), now.Month(), now.Day()+2, 0, 0, 0, 0, now.Location())
	return end.Sub(now)
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

// PostgresStore claims names through a primary key constraint
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore connects to databaseURL and verifies the connection
func NewPostgresStore(databaseURL string) (*PostgresStore, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	log.Info().Msg("Connected to PostgreSQL")
	return NewPostgresStoreFromDB(db), nil
}

func NewPostgresStoreFromDB(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const claimTableDDL = `CREATE TABLE IF NOT EXISTS txid_claims (
	name       TEXT PRIMARY KEY,
	claimed_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// EnsureSchema creates the claim table
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, claimTableDDL)
	return err
}

func (s *PostgresStore) Claim(ctx context.Context, name string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO txid_claims (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return false, nil
		}
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
