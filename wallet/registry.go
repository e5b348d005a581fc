// Package wallet provides the wallet provider registry used for wallet
// selection at connect time.
package wallet

import (
	"fmt"
	"sort"
	"sync"

	"github.com/nacorid/stellarpay"
)

// Registry maps wallet ids to providers. The session manager selects a
// provider from it when connecting; unknown ids fail with
// stellarpay.ErrProviderUnavailable.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]stellarpay.WalletProvider
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]stellarpay.WalletProvider)}
}

// Register adds or replaces a provider under the given id.
func (r *Registry) Register(id string, provider stellarpay.WalletProvider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[id] = provider
}

// Select returns the provider registered under the given id.
func (r *Registry) Select(id string) (stellarpay.WalletProvider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	provider, ok := r.providers[id]
	if !ok {
		return nil, fmt.Errorf("%w: unknown wallet %q", stellarpay.ErrProviderUnavailable, id)
	}
	return provider, nil
}

// IDs returns the registered wallet ids in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.providers))
	for id := range r.providers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
