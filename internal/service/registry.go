// Package service adapts named operation calls with loose field bundles
// into typed inventory store calls. It is the surface a host platform's
// service dispatch talks to.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
)

// ErrUnknownService is returned by Call for an unregistered name.
var ErrUnknownService = errors.New("unknown service")

// Handler executes one named operation against its data bundle and
// returns the affected record (or a boolean, for deletes).
type Handler func(ctx context.Context, data map[string]any) (any, error)

// Registry maps fixed operation names to handlers. An instance is
// injected wherever it is needed; there is no process-wide registry.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register binds a handler to an operation name, replacing any previous
// binding.
func (r *Registry) Register(name string, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[name] = h
}

// Call dispatches a data bundle to the named operation.
func (r *Registry) Call(ctx context.Context, name string, data map[string]any) (any, error) {
	r.mu.RLock()
	h, ok := r.handlers[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownService, name)
	}
	return h(ctx, data)
}

// Services returns the registered operation names, sorted.
func (r *Registry) Services() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// decodeBundle converts a loose field bundle into a typed request.
// Bundle keys without a matching field are silently dropped.
func decodeBundle(data map[string]any, target any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encoding bundle: %w", err)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decoding bundle: %w", err)
	}
	return nil
}

// requireString extracts a required string field from a bundle.
func requireString(data map[string]any, key string) (string, error) {
	v, ok := data[key].(string)
	if !ok || v == "" {
		return "", fmt.Errorf("missing required field %q", key)
	}
	return v, nil
}

// optionalString extracts a nullable string field from a bundle. Absent
// and explicit null both come back as nil, matching the loose get
// semantics of the host's call bundles.
func optionalString(data map[string]any, key string) *string {
	if v, ok := data[key].(string); ok {
		return &v
	}
	return nil
}
