package tfa

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/tfakit/pkg/otpcode"
)

// Method is the capability every second-factor validation method
// implements. Validate reports the three-way code result; Ready reports
// whether the method can currently run for the user.
type Method interface {
	ID() string
	Validate(ctx context.Context, userID uuid.UUID, code string) (otpcode.Result, error)
	Ready(ctx context.Context, userID uuid.UUID) (bool, error)
}

// Registry holds the configured validation methods keyed by identifier.
// Methods are registered explicitly at wiring time; selection is always
// by identifier, never by discovery.
type Registry struct {
	mu      sync.RWMutex
	methods map[string]Method
	order   []string
}

// NewRegistry creates an empty method registry.
func NewRegistry() *Registry {
	return &Registry{methods: make(map[string]Method)}
}

// Register adds a method under its identifier.
func (r *Registry) Register(m Method) error {
	id := m.ID()
	if id == "" {
		return ErrEmptyMethodID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.methods[id]; exists {
		return fmt.Errorf("%w: %q", ErrMethodAlreadyRegistered, id)
	}
	r.methods[id] = m
	r.order = append(r.order, id)
	return nil
}

// Get returns the method registered under id.
func (r *Registry) Get(id string) (Method, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.methods[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, id)
	}
	return m, nil
}

// IDs lists registered method identifiers in registration order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// ReadyMethods returns the identifiers of registered methods that are
// currently ready for the user, in registration order.
func (r *Registry) ReadyMethods(ctx context.Context, userID uuid.UUID) ([]string, error) {
	r.mu.RLock()
	ids := make([]string, len(r.order))
	copy(ids, r.order)
	r.mu.RUnlock()

	ready := make([]string, 0, len(ids))
	for _, id := range ids {
		m, err := r.Get(id)
		if err != nil {
			return nil, err
		}

		ok, err := m.Ready(ctx, userID)
		if err != nil {
			return nil, err
		}
		if ok {
			ready = append(ready, id)
		}
	}
	return ready, nil
}
