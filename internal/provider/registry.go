package provider

import (
	"fmt"

	"github.com/thanhnp/chain-explorer/internal/apperrors"
	"github.com/thanhnp/chain-explorer/internal/models"
)

// Registry maps network ids to their provider
type Registry struct {
	providers map[string]Provider
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[string]Provider),
	}
}

// Register registers the provider of a network. The network must be one of
// the supported ids.
func (r *Registry) Register(network string, p Provider) error {
	if _, err := models.LookupNetwork(network); err != nil {
		return err
	}
	r.providers[network] = p
	return nil
}

// Get returns the provider of a network
func (r *Registry) Get(network string) (Provider, error) {
	p, ok := r.providers[network]
	if !ok {
		return nil, fmt.Errorf("network not registered: %s: %w", network, apperrors.ErrInvalidNetwork)
	}
	return p, nil
}

// Complete reports the first supported network without a provider
func (r *Registry) Complete() error {
	for _, n := range models.Networks() {
		if _, ok := r.providers[n.ID]; !ok {
			return fmt.Errorf("no provider registered for %s", n.ID)
		}
	}
	return nil
}
