// Package txid issues random transaction identifiers that are unique per day
// and namespace. Uniqueness is enforced by atomically claiming a marker in a
// ClaimStore; a marker that already exists triggers a redraw.
package txid

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	Digits       = "0123456789"
	Alphanumeric = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// ClaimStore atomically claims marker names. Claim returns false with a nil
// error when the name was already claimed. Any error is fatal for the caller.
type ClaimStore interface {
	Claim(ctx context.Context, name string) (bool, error)
}

// Generator draws identifiers and claims them in a store
type Generator struct {
	store  ClaimStore
	random io.Reader
	now    func() time.Time
}

// Option customizes a Generator
type Option func(*Generator)

// WithRandom replaces the cryptographic random source
func WithRandom(r io.Reader) Option {
	return func(g *Generator) { g.random = r }
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

func NewGenerator(store ClaimStore, opts ...Option) *Generator {
	g := &Generator{
		store:  store,
		random: rand.Reader,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// New returns an identifier of length characters drawn from alphabet that no
// other caller got today for the same prefixes.
func (g *Generator) New(ctx context.Context, length int, alphabet string, prefixes ...string) (string, error) {
	if length <= 0 {
		return "", errors.New("txid: length must be > 0")
	}
	if alphabet == "" {
		return "", errors.New("txid: empty alphabet")
	}
	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		id, err := g.draw(length, alphabet)
		if err != nil {
			return "", fmt.Errorf("txid: draw: %w", err)
		}
		name := MarkerName(g.now(), id, prefixes...)
		ok, err := g.store.Claim(ctx, name)
		if err != nil {
			return "", fmt.Errorf("txid: claim %s: %w", name, err)
		}
		if ok {
			return id, nil
		}
		log.Debug().Str("marker", name).Int("attempt", attempt).Msg("transaction id already used, drawing again")
	}
}

func (g *Generator) draw(length int, alphabet string) (string, error) {
	max := big.NewInt(int64(len(alphabet)))
	var b strings.Builder
	b.Grow(length)
	for i := 0; i < length; i++ {
		n, err := rand.Int(g.random, max)
		if err != nil {
			return "", err
		}
		b.WriteByte(alphabet[n.Int64()])
	}
	return b.String(), nil
}

// MarkerName is the claim key: "<date>_<prefixes joined by '-'>_<id>"
func MarkerName(day time.Time, id string, prefixes ...string) string {
	return fmt.Sprintf("%s_%s_%s", day.Format("2006-01-02"), strings.Join(prefixes, "-"), id)
}
