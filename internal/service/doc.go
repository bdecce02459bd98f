// Package service provides the tool registry for the workspace.
//
// Providers register a service definition listing their tools; the registry
// routes "<service>.<tool>" IDs to the owning provider and ranks tools
// against a free-text intent.
//
// Example Usage:
//
//	registry := service.NewRegistry()
//	registry.Register(providers.NewWorkspace(store, ing, ed, sink))
//	tools := registry.Discover("edit a line", 3)
//	result, err := registry.Execute(ctx, "file.read", map[string]interface{}{"filename": "notes.txt"})
package service
