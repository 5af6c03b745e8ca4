package payment

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/mwork/eopayment/internal/pkg/dummy"
	"github.com/mwork/eopayment/internal/pkg/gateway"
	"github.com/mwork/eopayment/internal/pkg/sips"
	"github.com/mwork/eopayment/internal/pkg/spplus"
	"github.com/mwork/eopayment/internal/pkg/systempay"
	"github.com/shopspring/decimal"
)

// Backend defines the interface that all bank backends implement
type Backend interface {
	// Kind returns the backend identifier
	Kind() gateway.Kind

	// Request builds the artifact that sends the customer to the bank.
	// amount is in currency units: 100 means 100 euros. Backends convert it
	// to their wire format, so SystemPay sends vads_amount=10000, SIPS
	// amount=10000, SPPlus montant=100.00 and Dummy amount=100. More than
	// two decimal places is a validation error.
	Request(ctx context.Context, amount decimal.Decimal, opts gateway.RequestOptions) (*gateway.Request, error)

	// Response authenticates and normalizes a bank notification
	Response(ctx context.Context, rawQuery string) (*gateway.Response, error)

	// Describe documents the backend configuration options
	Describe() gateway.Description
}

// BackendConfig is implemented by every backend Config struct
type BackendConfig interface {
	Kind() gateway.Kind
}

// Dependencies are the collaborators shared by backends
type Dependencies struct {
	IDs gateway.IDGenerator
	// SIPSRunner overrides the os/exec runner of the SIPS middleware
	SIPSRunner sips.Runner
}

// New builds the backend matching cfg
func New(cfg BackendConfig, deps Dependencies) (Backend, error) {
	if deps.IDs == nil {
		return nil, fmt.Errorf("payment: transaction id generator is required")
	}

	var (
		backend Backend
		err     error
	)
	switch c := cfg.(type) {
	case spplus.Config:
		backend, err = spplus.NewClient(c, deps.IDs)
	case systempay.Config:
		backend, err = systempay.NewClient(c, deps.IDs)
	case sips.Config:
		backend, err = sips.NewClient(c, deps.IDs, deps.SIPSRunner)
	case dummy.Config:
		backend, err = dummy.NewClient(c, deps.IDs)
	default:
		return nil, fmt.Errorf("payment: unsupported backend configuration %T", cfg)
	}
	if err != nil {
		return nil, err
	}
	return backend, nil
}

// Describe returns the configuration options of a backend kind
func Describe(kind gateway.Kind) (gateway.Description, error) {
	switch kind {
	case gateway.KindSPPlus:
		return spplus.Describe(), nil
	case gateway.KindSystemPayV1:
		return systempay.Describe(systempay.V1), nil
	case gateway.KindSystemPayV2:
		return systempay.Describe(systempay.V2), nil
	case gateway.KindSIPS:
		return sips.Describe(), nil
	case gateway.KindDummy:
		return dummy.Describe(), nil
	default:
		return gateway.Description{}, fmt.Errorf("payment: unknown backend %q", kind)
	}
}

// Registry holds named backends for deployments serving several banks
type Registry struct {
	mu       sync.RWMutex
	backends map[string]Backend
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		backends: make(map[string]Backend),
	}
}

// Register adds a backend under name, replacing any previous one
func (r *Registry) Register(name string, backend Backend) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backends[name] = backend
}

// Get retrieves a backend by name
func (r *Registry) Get(name string) (Backend, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	backend, exists := r.backends[name]
	if !exists {
		return nil, fmt.Errorf("payment backend '%s' not found", name)
	}
	return backend, nil
}

// List returns all registered backend names, sorted
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.backends))
	for name := range r.backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
