package loader

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/agentic-research/requirekit/jspath"
)

// Module is one loaded (or loading) unit of code. A module is inserted into
// the loader's cache before its body runs, so circular require chains observe
// the in-progress exports object instead of recursing forever.
type Module struct {
	loader   *Loader
	id       string // canonical id: resolved path, or "." for the entry module
	filename string
	parent   *Module
	paths    []string // node_modules search list for this module's directory
	exports  any
	loaded   bool

	// wrappers memoizes native/external export surfaces per requesting
	// module, replacing the original's self-replacing lazy getters.
	wrappers map[string]any
}

func (l *Loader) newModule(id, filename string, parent *Module) *Module {
	return &Module{
		loader:   l,
		id:       id,
		filename: filename,
		parent:   parent,
		paths:    nodeModulesPaths(jspath.Dirname(filename)),
		exports:  map[string]any{},
		wrappers: make(map[string]any),
	}
}

// ID implements api.ModuleHandle.
func (m *Module) ID() string { return m.id }

// Exports implements api.ModuleHandle.
func (m *Module) Exports() any { return m.exports }

// SetExports implements api.ModuleHandle.
func (m *Module) SetExports(v any) { m.exports = v }

// Filename returns the module's resolved virtual path.
func (m *Module) Filename() string { return m.filename }

// Loaded reports whether the module body has finished executing.
func (m *Module) Loaded() bool { return m.loaded }

// Paths returns a copy of the module's node_modules search list.
func (m *Module) Paths() []string {
	out := make([]string, len(m.paths))
	copy(out, m.paths)
	return out
}

// Require resolves and loads a specifier relative to this module, returning
// the target's exports. Repeated calls for the same resolved id return the
// identical exports value.
func (m *Module) Require(spec string) (any, error) {
	l := m.loader
	dir := jspath.Dirname(m.filename)
	l.log.Debug("require",
		zap.String("specifier", spec),
		zap.String("from", m.id))

	res, err := l.resolveFrom(spec, dir, m.paths)
	if err != nil {
		return nil, err
	}
	switch res.Kind {
	case KindNative:
		return m.nativeExports(res.Path)
	case KindExternalCommonJS:
		src, ok := l.natives.ExternalCommonJSSource(res.Path)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrModuleNotFound, spec)
		}
		return l.loadJavaScript(res.Path, "/"+res.Path+".js", src, m)
	case KindFile:
		return l.loadFile(res.Path, m)
	default:
		return nil, fmt.Errorf("%w: %s", ErrModuleNotFound, spec)
	}
}

// nativeExports returns the binding's export surface for this module,
// computing it at most once per module.
func (m *Module) nativeExports(name string) (any, error) {
	if w, ok := m.wrappers[name]; ok {
		return w, nil
	}
	binding, ok := m.loader.natives.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrModuleNotFound, name)
	}
	w := binding.Exports(m.id)
	m.wrappers[name] = w
	return w, nil
}
