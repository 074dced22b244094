package native

import (
	"github.com/agentic-research/requirekit/api"
	"github.com/agentic-research/requirekit/jspath"
)

// PathBinding exposes the jspath library as the "path" core module: the
// POSIX functions form the default surface, with posix/win32 namespaces
// alongside. Every function validates its arguments at the script boundary
// via Style.Call.
func PathBinding() api.NativeBinding {
	posix := pathNamespace(jspath.Posix)
	win32 := pathNamespace(jspath.Win32)
	surface := make(map[string]any, len(posix)+2)
	for name, fn := range posix {
		surface[name] = fn
	}
	surface["posix"] = posix
	surface["win32"] = win32
	return StaticBinding(surface)
}

// RegisterPath registers the path core module on the registry.
func RegisterPath(r *Registry) {
	r.Register("path", PathBinding())
}

func pathNamespace(st *jspath.Style) map[string]any {
	fns := []string{
		"normalize", "join", "resolve", "relative",
		"dirname", "basename", "extname", "isAbsolute",
		"parse", "format", "toNamespacedPath",
	}
	ns := make(map[string]any, len(fns)+1)
	for _, name := range fns {
		name := name
		ns[name] = func(args ...any) (any, error) {
			return st.Call(name, args...)
		}
	}
	ns["sep"] = st.Separator()
	return ns
}
