// Package api declares the collaborator contracts between the requirekit
// loader and its host: where module source comes from (AssetStore), which
// bare specifiers map to host capabilities (NativeProvider), and how source
// text is turned into a runnable module body (Engine).
package api

// AssetStore is the abstract read-only content provider backing "files" in
// the sandboxed bundle. Paths are virtual absolute paths ("/app.js").
// Implementations are assumed synchronous and side-effect-free.
type AssetStore interface {
	// Exists reports whether the named asset is present in the bundle.
	Exists(path string) bool
	// ReadText returns the asset's text content. Fails if the asset is absent.
	ReadText(path string) (string, error)
}

// NativeBinding is a host capability reachable via a bare specifier.
type NativeBinding interface {
	// Exports returns the binding's export surface for the requesting module.
	// Implementations may hand back a shared value or a per-module wrapper;
	// the loader memoizes the result per requesting module either way.
	Exports(moduleID string) any
}

// NativeProvider resolves bare specifiers to host capabilities.
type NativeProvider interface {
	// Lookup returns the native binding registered under name, if any.
	Lookup(name string) (NativeBinding, bool)
	// IsExternalCommonJS reports whether the named native module ships a
	// companion CommonJS bundle alongside its binding.
	IsExternalCommonJS(name string) bool
	// ExternalCommonJSSource returns the companion bundle's JavaScript
	// source for the given module id.
	ExternalCommonJSSource(id string) (string, bool)
}

// ModuleHandle is the loader-owned module record as seen by a running body.
type ModuleHandle interface {
	// ID is the module's canonical id ("." for the entry module).
	ID() string
	// Exports returns the module's current exports value.
	Exports() any
	// SetExports replaces the exports value wholesale, the way a body
	// assigns `module.exports = ...`.
	SetExports(v any)
}

// Sandbox carries the bindings a module body executes against. The loader
// builds one per body run; the engine decides how to expose the bindings.
type Sandbox struct {
	// Exports is the module's exports value at the start of the run
	// (an empty map for a fresh module).
	Exports any
	// Require resolves and loads a specifier relative to this module.
	Require func(specifier string) (any, error)
	// Module is the record being executed.
	Module ModuleHandle
	// Filename is the module's resolved virtual path.
	Filename string
	// Dirname is the directory portion of Filename.
	Dirname string
	// Globals are host-provided ambient values.
	Globals map[string]any
	// Ambient selects global-scope binding for the entry module instead of
	// the isolated closure wrapper used for every other module.
	Ambient bool
}

// Program is a compiled module body, run exactly once.
type Program interface {
	Run(sb *Sandbox) error
}

// Engine compiles JavaScript source into a runnable Program. requirekit does
// not bundle an engine; the host supplies one.
type Engine interface {
	Compile(source, filename string) (Program, error)
}
