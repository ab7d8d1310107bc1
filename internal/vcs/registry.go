package vcs

import (
	"context"
	"fmt"
	"sort"
	"sync"

	domainErrors "github.com/thomas-vilte/commitcost/internal/errors"
)

// ProviderFactory creates Commit Sources for one hosting provider.
type ProviderFactory interface {
	// CreateSource creates a Commit Source bound to repo. An empty baseURL means the public API.
	CreateSource(ctx context.Context, repo Repository, token, baseURL string) (CommitSource, error)
	// Name returns the provider name used in configuration.
	Name() string
}

// Registry maps provider names to factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]ProviderFactory
}

func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]ProviderFactory),
	}
}

// Register adds a factory under its own name.
func (r *Registry) Register(factory ProviderFactory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := factory.Name()
	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("provider '%s' is already registered", name)
	}

	r.factories[name] = factory
	return nil
}

// Get gets a factory by name.
func (r *Registry) Get(name string) (ProviderFactory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, exists := r.factories[name]
	if !exists {
		return nil, domainErrors.ErrProviderNotSupported.
			WithContext("provider", name).
			WithSuggestion(fmt.Sprintf("Supported providers: %v", r.listLocked()))
	}

	return factory, nil
}

// List returns the registered provider names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.listLocked()
}

func (r *Registry) IsRegistered(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.factories[name]
	return exists
}

// CreateSource resolves the provider and creates a Commit Source for repo.
func (r *Registry) CreateSource(ctx context.Context, provider string, repo Repository, token, baseURL string) (CommitSource, error) {
	if token == "" {
		return nil, domainErrors.ErrTokenMissing
	}

	factory, err := r.Get(provider)
	if err != nil {
		return nil, err
	}

	return factory.CreateSource(ctx, repo, token, baseURL)
}

func (r *Registry) listLocked() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
