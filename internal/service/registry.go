package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/GriffinCanCode/AgentOS/workspace/internal/shared/errs"
	"github.com/GriffinCanCode/AgentOS/workspace/internal/types"
)

// Registry manages service discovery and execution
type Registry struct {
	services sync.Map
}

// Provider interface for service implementations
type Provider interface {
	Definition() types.Service
	Execute(ctx context.Context, toolID string, params map[string]interface{}) (*types.Result, error)
}

// NewRegistry creates a new service registry
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a service provider
func (r *Registry) Register(provider Provider) error {
	def := provider.Definition()
	if def.ID == "" {
		return fmt.Errorf("service ID cannot be empty: %w", errs.ErrInvalidConfiguration)
	}
	if _, loaded := r.services.LoadOrStore(def.ID, provider); loaded {
		return fmt.Errorf("service %s already registered: %w", def.ID, errs.ErrInvalidConfiguration)
	}
	return nil
}

// Get retrieves a service by ID
func (r *Registry) Get(serviceID string) (Provider, bool) {
	val, ok := r.services.Load(serviceID)
	if !ok {
		return nil, false
	}
	return val.(Provider), true
}

// List returns all registered services sorted by ID
func (r *Registry) List(category *types.Category) []types.Service {
	var services []types.Service
	r.services.Range(func(_, value interface{}) bool {
		def := value.(Provider).Definition()
		if category == nil || def.Category == *category {
			services = append(services, def)
		}
		return true
	})
	sort.Slice(services, func(i, j int) bool {
		return services[i].ID < services[j].ID
	})
	return services
}

// Tools returns every tool of every registered service
func (r *Registry) Tools() []types.Tool {
	var tools []types.Tool
	for _, def := range r.List(nil) {
		tools = append(tools, def.Tools...)
	}
	return tools
}

// Discover finds tools relevant to an intent such as "edit a line"
func (r *Registry) Discover(intent string, limit int) []types.Tool {
	type scoredTool struct {
		tool  types.Tool
		score float64
	}

	intentLower := strings.ToLower(intent)
	var results []scoredTool
	for _, tool := range r.Tools() {
		if score := relevance(intentLower, tool); score > 0 {
			results = append(results, scoredTool{tool: tool, score: score})
		}
	}

	// Sort by score descending
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})

	output := make([]types.Tool, 0, limit)
	for i := 0; i < len(results) && i < limit; i++ {
		output = append(output, results[i].tool)
	}
	return output
}

// Execute routes "<service>.<tool>" to the owning provider
func (r *Registry) Execute(ctx context.Context, toolID string, params map[string]interface{}) (*types.Result, error) {
	serviceID, _, found := strings.Cut(toolID, ".")
	if !found {
		err := fmt.Errorf("invalid tool ID format %q: %w", toolID, errs.ErrInvalidConfiguration)
		return types.Failure(err), err
	}

	provider, ok := r.Get(serviceID)
	if !ok {
		err := fmt.Errorf("service not found: %s: %w", serviceID, errs.ErrInvalidConfiguration)
		return types.Failure(err), err
	}

	return provider.Execute(ctx, toolID, params)
}

// Stats returns registry statistics
func (r *Registry) Stats() map[string]interface{} {
	var total, totalTools int
	categories := make(map[string]int)

	for _, def := range r.List(nil) {
		total++
		totalTools += len(def.Tools)
		categories[string(def.Category)]++
	}

	return map[string]interface{}{
		"total_services": total,
		"total_tools":    totalTools,
		"categories":     categories,
	}
}

func relevance(intent string, tool types.Tool) float64 {
	score := 0.0

	// Check tool ID and name
	_, name, _ := strings.Cut(tool.ID, ".")
	if strings.Contains(intent, strings.ReplaceAll(name, "_", " ")) || strings.Contains(intent, strings.ToLower(tool.Name)) {
		score += 10.0
	}

	// Check description words
	for _, word := range strings.Fields(strings.ToLower(tool.Description)) {
		if len(word) > 3 && strings.Contains(intent, word) {
			score += 2.0
		}
	}

	return score
}
