// Package native implements the host-capability side of bare-specifier
// resolution: a registry of named bindings, optionally paired with the
// JavaScript source of a companion CommonJS bundle that wraps the binding.
package native

import (
	"sync"

	"github.com/agentic-research/requirekit/api"
)

// entry pairs a binding with its optional companion CommonJS source.
type entry struct {
	binding api.NativeBinding
	sources map[string]string // module id → companion source
}

// Registry is an api.NativeProvider backed by explicit registration. A host
// registers its capabilities up front; the loader only reads.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*entry)}
}

// Register adds a binding under name, replacing any previous registration.
func (r *Registry) Register(name string, b api.NativeBinding) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[name] = &entry{binding: b}
}

// RegisterCommonJS attaches companion CommonJS source to the named binding.
// The id is the full specifier the source answers to (the binding name
// itself, or a sub-path like "name/feature").
func (r *Registry) RegisterCommonJS(name, id, source string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[name]
	if !ok {
		e = &entry{}
		r.entries[name] = e
	}
	if e.sources == nil {
		e.sources = make(map[string]string)
	}
	e.sources[id] = source
}

// Lookup implements api.NativeProvider.
func (r *Registry) Lookup(name string) (api.NativeBinding, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	if !ok || e.binding == nil {
		return nil, false
	}
	return e.binding, true
}

// IsExternalCommonJS implements api.NativeProvider.
func (r *Registry) IsExternalCommonJS(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	return ok && len(e.sources) > 0
}

// ExternalCommonJSSource implements api.NativeProvider. The id is matched
// against the sources registered under its first segment.
func (r *Registry) ExternalCommonJSSource(id string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	name := id
	for i := 0; i < len(id); i++ {
		if id[i] == '/' {
			name = id[:i]
			break
		}
	}
	e, ok := r.entries[name]
	if !ok {
		return "", false
	}
	src, ok := e.sources[id]
	return src, ok
}

// BindingFunc adapts a plain function to api.NativeBinding.
type BindingFunc func(moduleID string) any

func (f BindingFunc) Exports(moduleID string) any { return f(moduleID) }

// StaticBinding wraps a fixed export surface shared by every requester.
func StaticBinding(exports any) api.NativeBinding {
	return BindingFunc(func(string) any { return exports })
}
