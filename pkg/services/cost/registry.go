package cost

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/de-tools/cost-advisor/pkg/models/domain"
)

// SourceFactory creates a billing Source for a cloud context. Warehouse-backed
// platforms read the context profile as the path of their connection file.
type SourceFactory func(ctx context.Context, cc domain.CloudContext) (Source, error)

// Registry manages billing source factories
type Registry interface {
	// Register adds a new platform source factory
	Register(platform string, factory SourceFactory) error
	// Create instantiates a source for the specified platform
	Create(ctx context.Context, platform string, cc domain.CloudContext) (Source, error)
	// ListPlatforms returns the registered platforms in name order
	ListPlatforms() []string
}

type registry struct {
	mu        sync.RWMutex
	factories map[string]SourceFactory
}

// NewRegistry creates a new source registry
func NewRegistry() Registry {
	return &registry{
		factories: make(map[string]SourceFactory),
	}
}

func (r *registry) Register(platform string, factory SourceFactory) error {
	if platform == "" {
		return fmt.Errorf("platform name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[platform]; exists {
		return fmt.Errorf("platform %q is already registered", platform)
	}

	r.factories[platform] = factory
	return nil
}

func (r *registry) Create(ctx context.Context, platform string, cc domain.CloudContext) (Source, error) {
	r.mu.RLock()
	factory, exists := r.factories[platform]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("platform %q is not registered", platform)
	}

	return factory(ctx, cc)
}

func (r *registry) ListPlatforms() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	platforms := make([]string, 0, len(r.factories))
	for platform := range r.factories {
		platforms = append(platforms, platform)
	}
	sort.Strings(platforms)
	return platforms
}
