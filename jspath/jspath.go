// Package jspath implements CommonJS path-string arithmetic for the sandboxed
// bundle runtime: POSIX and Windows semantics as two parallel Styles, with the
// package-level functions defaulting to POSIX. Everything here is pure string
// manipulation with no filesystem access.
//
// The semantics intentionally reproduce the bundle runtime's path library,
// including its accepted edge cases: Normalize pops ".." segments past an
// empty stack silently, and Relative walks Dirname without guarding against
// disjoint roots. See DESIGN.md before "fixing" either.
package jspath

import "strings"

// Style is one separator flavor of the path library. Styles are stateless
// apart from Cwd, which Resolve consults when no segment is absolute.
type Style struct {
	sep   byte
	posix bool

	// Cwd returns the working directory used by Resolve when no argument is
	// absolute. Bundles are rooted at "/", so the POSIX default returns "/".
	Cwd func() string
}

// Posix and Win32 are the two shared Style instances.
var (
	Posix = &Style{sep: '/', posix: true, Cwd: func() string { return "/" }}
	Win32 = &Style{sep: '\\', Cwd: func() string { return `C:\` }}
)

// Parsed is the value decomposition of a path string. It has no identity;
// Parse recomputes it on every call.
type Parsed struct {
	Root string
	Dir  string
	Base string
	Ext  string
	Name string
}

// WithCwd returns a copy of the style whose Resolve uses fn as the working
// directory source.
func (s *Style) WithCwd(fn func() string) *Style {
	c := *s
	c.Cwd = fn
	return &c
}

// Separator returns the style's separator as a string.
func (s *Style) Separator() string { return string(s.sep) }

func isWindowsDeviceName(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

// isSep reports whether c separates segments under this style. Windows
// accepts both slashes; POSIX only the forward slash.
func (s *Style) isSep(c byte) bool {
	return c == '/' || (!s.posix && c == '\\')
}

// lastSep returns the index of the last separator at or before end, or -1.
// On Windows both slash flavors count; on POSIX only '/'.
func (s *Style) lastSep(p string, end int) int {
	for i := end; i >= 0; i-- {
		if s.isSep(p[i]) {
			return i
		}
	}
	return -1
}

// bareDrive reports whether p is exactly "C:" or "C:\"-shaped.
func (s *Style) bareDrive(p string) bool {
	if s.posix || len(p) < 2 || p[1] != ':' || !isWindowsDeviceName(p[0]) {
		return false
	}
	return len(p) == 2 || (len(p) == 3 && s.isSep(p[2]))
}

// IsAbsolute reports whether the path is absolute under this style. POSIX:
// a leading "/". Windows: additionally a leading "\" or a drive-letter prefix
// followed by a slash of either flavor. The empty string is never absolute,
// and a bare "C:" is not absolute either.
func (s *Style) IsAbsolute(p string) bool {
	if len(p) == 0 {
		return false
	}
	if p[0] == '/' {
		return true
	}
	if s.posix {
		return false
	}
	if p[0] == '\\' {
		return true
	}
	if len(p) > 2 && isWindowsDeviceName(p[0]) && p[1] == ':' {
		return p[2] == '/' || p[2] == '\\'
	}
	return false
}

// Dirname returns the directory portion of the path: everything before the
// last separator, ignoring a single trailing separator. "." when the path has
// no separators. A bare Windows drive ("C:") is its own dirname, and a POSIX
// path with exactly two leading slashes keeps its "//" root.
func (s *Style) Dirname(p string) string {
	if len(p) == 0 {
		return "."
	}
	from := len(p) - 1
	if p[from] == s.sep {
		from--
	}
	if from < 0 {
		from = 0 // separator-only input still yields its root
	}
	found := strings.LastIndexByte(p[:from+1], s.sep)
	if found == -1 {
		if !s.posix && len(p) >= 2 && p[1] == ':' && isWindowsDeviceName(p[0]) {
			return p // root windows path
		}
		return "."
	}
	if found == 0 {
		return string(s.sep)
	}
	if found == 1 && s.posix && p[0] == '/' {
		return "//"
	}
	return p[:found]
}

// Basename returns the last segment of the path, ignoring a single trailing
// separator. A bare Windows drive ("C:" or "C:\") has no basename.
func (s *Style) Basename(p string) string {
	return s.basename(p, "")
}

// BasenameExt is Basename with a trailing extension stripped when present.
func (s *Style) BasenameExt(p, ext string) string {
	return s.basename(p, ext)
}

func (s *Style) basename(p, ext string) string {
	if len(p) == 0 {
		return ""
	}
	if s.bareDrive(p) {
		return ""
	}
	end := len(p)
	if s.isSep(p[end-1]) {
		end--
	}
	last := s.lastSep(p, end-1)
	base := p[last+1 : end]
	if ext != "" && strings.HasSuffix(base, ext) {
		base = base[:len(base)-len(ext)]
	}
	return base
}

// Extname returns the extension: from the last "." to the end of the path,
// minus a single trailing separator. A dot that starts a segment (".bashrc")
// marks a hidden name, not an extension.
func (s *Style) Extname(p string) string {
	idx := strings.LastIndexByte(p, '.')
	if idx <= 0 {
		return ""
	}
	if s.isSep(p[idx-1]) {
		return ""
	}
	end := len(p)
	if s.isSep(p[end-1]) {
		end--
	}
	if idx >= end {
		return ""
	}
	return p[idx:end]
}

// Normalize collapses "." segments, repeated separators, and ".." segments by
// popping the previously kept segment. Popping past an empty stack drops the
// ".." silently instead of erroring: callers that walk above the root get a
// root-relative result. A single leading and a single trailing separator are
// preserved when the input had them, and a Windows UNC prefix ("\\host")
// keeps its double backslash.
func (s *Style) Normalize(p string) string {
	if len(p) == 0 {
		return "."
	}
	if !s.posix {
		p = strings.ReplaceAll(p, "/", `\`)
	}
	sep := string(s.sep)
	hadLeading := strings.HasPrefix(p, sep)
	isUNC := hadLeading && !s.posix && len(p) > 2 && p[1] == '\\'
	hadTrailing := strings.HasSuffix(p, sep)

	var kept []string
	for _, seg := range strings.Split(p, sep) {
		switch seg {
		case "", ".":
		case "..":
			if len(kept) > 0 {
				kept = kept[:len(kept)-1]
			}
		default:
			kept = append(kept, seg)
		}
	}

	out := strings.Join(kept, sep)
	if hadLeading {
		out = sep + out
	}
	if hadTrailing {
		out += sep
	}
	if isUNC {
		out = `\` + out
	}
	return out
}

// Join concatenates the non-empty segments with the separator and normalizes
// the result.
func (s *Style) Join(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if len(p) != 0 {
			kept = append(kept, p)
		}
	}
	return s.Normalize(strings.Join(kept, string(s.sep)))
}

// Resolve builds an absolute path from the segments, scanning right to left
// and stopping at the first absolute segment. When none is absolute the
// style's working directory is prepended. The result is normalized with a
// single trailing separator stripped, except for a Windows drive root.
func (s *Style) Resolve(parts ...string) string {
	sep := string(s.sep)
	resolved := ""
	hitRoot := false
	for i := len(parts) - 1; i >= 0; i-- {
		p := parts[i]
		if len(p) == 0 {
			continue
		}
		resolved = p + sep + resolved
		if s.IsAbsolute(p) {
			hitRoot = true
			break
		}
	}
	if !hitRoot {
		resolved = s.Cwd() + sep + resolved
	}
	normalized := s.Normalize(resolved)
	if strings.HasSuffix(normalized, sep) {
		if !s.posix && strings.HasSuffix(normalized, `:\`) {
			return normalized // win32 drive root like "C:\"
		}
		return normalized[:len(normalized)-1]
	}
	return normalized
}

// Relative computes the path from `from` to `to`. Both are resolved to
// absolute form first; equal paths yield "". The walk takes Dirname of `from`
// until `to` has it as a prefix, so paths on disjoint Windows drive roots
// never converge. That matches the runtime this library reproduces.
func (s *Style) Relative(from, to string) string {
	if from == to {
		return ""
	}
	from = s.Resolve(from)
	to = s.Resolve(to)
	if from == to {
		return ""
	}
	sep := string(s.sep)
	upCount := 0
	remaining := ""
	for {
		if strings.HasPrefix(to, from) {
			remaining = to[len(from):]
			break
		}
		from = s.Dirname(from)
		upCount++
	}
	// the suffix keeps no leading separator; when the walk bottoms out at the
	// root, from already ends with one and the suffix starts mid-segment
	if strings.HasPrefix(remaining, sep) {
		remaining = remaining[1:]
	}
	return strings.Repeat(".."+sep, upCount) + remaining
}

// Parse decomposes a path into root, dir, base, name and ext.
func (s *Style) Parse(p string) Parsed {
	var out Parsed
	if len(p) == 0 {
		return out
	}
	out.Base = s.Basename(p)
	out.Ext = s.Extname(p)
	if len(out.Ext) <= len(out.Base) {
		out.Name = out.Base[:len(out.Base)-len(out.Ext)]
	}
	toSubtract := 0
	if len(out.Base) != 0 {
		toSubtract = len(out.Base) + 1 // drop the base and its preceding separator
	}
	if end := len(p) - toSubtract; end > 0 {
		out.Dir = p[:end]
	}

	if p[0] == '/' {
		out.Root = "/"
		return out
	}
	if s.posix {
		return out
	}
	if p[0] == '\\' {
		out.Root = `\`
		return out
	}
	if len(p) > 1 && isWindowsDeviceName(p[0]) && p[1] == ':' {
		if len(p) > 2 && (p[2] == '/' || p[2] == '\\') {
			out.Root = p[:3]
		} else {
			out.Root = p[:2]
		}
	}
	return out
}

// Format is the inverse of Parse. Base wins over Name+Ext; a dir that is
// empty or equal to the root collapses onto the root.
func (s *Style) Format(p Parsed) string {
	base := p.Base
	if base == "" {
		base = p.Name + p.Ext
	}
	if p.Dir == "" || p.Dir == p.Root {
		return p.Root + base
	}
	return p.Dir + string(s.sep) + base
}

// ToNamespacedPath converts a Windows path to a long "\\?\"-prefixed path.
// UNC roots become "\\?\UNC\host\...", drive-rooted paths get the plain
// prefix, and anything else passes through. The POSIX style is an identity
// function.
func (s *Style) ToNamespacedPath(p string) string {
	if s.posix {
		return p
	}
	if len(p) == 0 {
		return ""
	}
	resolved := s.Resolve(p)
	if len(resolved) < 3 {
		return p
	}
	if resolved[0] == '\\' {
		if resolved[1] == '\\' && resolved[2] != '?' && resolved[2] != '.' {
			return `\\?\UNC\` + resolved[2:]
		}
	} else if isWindowsDeviceName(resolved[0]) && resolved[1] == ':' && resolved[2] == '\\' {
		return `\\?\` + resolved
	}
	return p
}

// Package-level functions delegate to the POSIX style, which is the default
// namespace in the bundle runtime.

func IsAbsolute(p string) bool         { return Posix.IsAbsolute(p) }
func Dirname(p string) string          { return Posix.Dirname(p) }
func Basename(p string) string         { return Posix.Basename(p) }
func BasenameExt(p, ext string) string { return Posix.BasenameExt(p, ext) }
func Extname(p string) string          { return Posix.Extname(p) }
func Normalize(p string) string        { return Posix.Normalize(p) }
func Join(parts ...string) string      { return Posix.Join(parts...) }
func Resolve(parts ...string) string   { return Posix.Resolve(parts...) }
func Relative(from, to string) string  { return Posix.Relative(from, to) }
func Parse(p string) Parsed            { return Posix.Parse(p) }
func Format(p Parsed) string           { return Posix.Format(p) }
func ToNamespacedPath(p string) string { return Posix.ToNamespacedPath(p) }
