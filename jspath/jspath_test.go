package jspath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAbsolute(t *testing.T) {
	assert.True(t, Posix.IsAbsolute("/x"))
	assert.False(t, Posix.IsAbsolute("x"))
	assert.False(t, Posix.IsAbsolute(""))
	assert.False(t, Posix.IsAbsolute(`\x`), "backslash is not a POSIX separator")

	assert.True(t, Win32.IsAbsolute(`C:\x`))
	assert.True(t, Win32.IsAbsolute("C:/x"))
	assert.False(t, Win32.IsAbsolute("C:x"), "drive-relative is not absolute")
	assert.False(t, Win32.IsAbsolute("C:"), "bare drive is not absolute")
	assert.True(t, Win32.IsAbsolute(`\x`))
	assert.True(t, Win32.IsAbsolute("/x"))
	assert.False(t, Win32.IsAbsolute(""))
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"/a/b/../c", "/a/c"},
		{"a/./b", "a/b"},
		{"", "."},
		{"a//b///c", "a/b/c"},
		{"/a/b/", "/a/b/"},
		{"./a", "a"},
		// ".." past the top of the stack is dropped silently, not an error
		{"a/../../b", "b"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Posix.Normalize(tc.in), "normalize(%q)", tc.in)
	}
}

func TestNormalizeWin32(t *testing.T) {
	assert.Equal(t, `C:\users\foo`, Win32.Normalize("C:/users//foo"), "forward slashes are translated first")
	assert.Equal(t, `\\host\share\x`, Win32.Normalize(`\\host\share\up\..\x`), "UNC prefix survives")
	assert.Equal(t, `a\b`, Win32.Normalize(`a\.\b`))
}

func TestDirname(t *testing.T) {
	assert.Equal(t, "/a", Posix.Dirname("/a/b"))
	assert.Equal(t, "/a", Posix.Dirname("/a/b/"), "single trailing separator is ignored")
	assert.Equal(t, ".", Posix.Dirname("b"))
	assert.Equal(t, ".", Posix.Dirname(""))
	assert.Equal(t, "/", Posix.Dirname("/a"))
	assert.Equal(t, "/", Posix.Dirname("/"))
	assert.Equal(t, "//", Posix.Dirname("//a"))

	assert.Equal(t, "C:", Win32.Dirname("C:"), "bare drive is its own dirname")
	assert.Equal(t, `C:\`, Win32.Dirname(`C:\`))
	assert.Equal(t, "C:", Win32.Dirname(`C:\a`))
	assert.Equal(t, `C:\a`, Win32.Dirname(`C:\a\b`))
}

func TestBasename(t *testing.T) {
	assert.Equal(t, "c.js", Posix.Basename("/a/b/c.js"))
	assert.Equal(t, "c", Posix.BasenameExt("/a/b/c.js", ".js"))
	assert.Equal(t, "b", Posix.Basename("/a/b/"))
	assert.Equal(t, "", Posix.Basename(""))
	assert.Equal(t, "c.js", Posix.BasenameExt("/a/b/c.js", ".txt"), "mismatched ext is kept")

	assert.Equal(t, "foo.txt", Win32.Basename(`C:\foo.txt`))
	assert.Equal(t, "foo.txt", Win32.Basename("C:/dir/foo.txt"), "either separator counts on win32")
	assert.Equal(t, "", Win32.Basename("C:"))
	assert.Equal(t, "", Win32.Basename(`C:\`))
}

func TestExtname(t *testing.T) {
	assert.Equal(t, ".js", Posix.Extname("/a/b.c.js"))
	assert.Equal(t, "", Posix.Extname("/a/.bashrc"), "dot-files have no extension")
	assert.Equal(t, "", Posix.Extname(".bashrc"))
	assert.Equal(t, "", Posix.Extname("noext"))
	assert.Equal(t, ".", Posix.Extname("trailingdot."))
	assert.Equal(t, ".js", Posix.Extname("/a/b.js/"), "trailing separator is dropped from the result")
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "a/b/c", Posix.Join("a", "b", "c"))
	assert.Equal(t, "/a/b/", Posix.Join("/a", "b/"))
	assert.Equal(t, "a/c", Posix.Join("a", "", "c"), "empty segments are skipped")
	assert.Equal(t, ".", Posix.Join())
	assert.Equal(t, `C:\a\b`, Win32.Join("C:", "a", "b"))
}

func TestResolve(t *testing.T) {
	assert.Equal(t, "/a/c", Posix.Resolve("/a/b", "../c"))
	assert.Equal(t, "/x", Posix.Resolve("x"), "cwd is the bundle root")
	assert.Equal(t, "/b", Posix.Resolve("/a", "/b"), "rightmost absolute segment wins")
	assert.Equal(t, "/", Posix.Resolve())
	assert.Equal(t, "/a/b", Posix.Resolve("/a/b/"), "trailing separator is stripped")

	assert.Equal(t, `C:\`, Win32.Resolve(`C:\`), "drive root keeps its separator")
	assert.Equal(t, `C:\b`, Win32.Resolve(`C:\a`, `..\b`))
}

func TestRelative(t *testing.T) {
	assert.Equal(t, "", Posix.Relative("/a/b", "/a/b"))
	assert.Equal(t, "../c/d", Posix.Relative("/a/b", "/a/c/d"))
	assert.Equal(t, "b/c", Posix.Relative("/a", "/a/b/c"))
	assert.Equal(t, "../../", Posix.Relative("/a/b/c", "/a"))
	// the walk bottoms out at the root, where the suffix has no leading
	// separator to strip
	assert.Equal(t, "../a/c", Posix.Relative("/b", "/a/c"))
	assert.Equal(t, "a/b", Posix.Relative("/", "/a/b"))
}

func TestRelativeResolveRoundTrip(t *testing.T) {
	pairs := [][2]string{
		{"/a/b", "/a/c/d"},
		{"/a", "/a/b/c"},
		{"/x/y/z", "/x/q"},
		// pairs whose only common ancestor is the root
		{"/b", "/a/c"},
		{"/", "/a/b"},
	}
	for _, p := range pairs {
		rel := Posix.Relative(p[0], p[1])
		assert.Equal(t, p[1], Posix.Resolve(p[0], rel), "relative(%q, %q) = %q should resolve back", p[0], p[1], rel)
	}
}

func TestJoinDirnameBasenameIdentity(t *testing.T) {
	for _, p := range []string{"/a/b/c.js", "a/b", "c", "/x"} {
		joined := Posix.Join(Posix.Dirname(p), Posix.Basename(p))
		assert.Equal(t, Posix.Normalize(p), joined, "p=%q", p)
	}
}

func TestParse(t *testing.T) {
	got := Posix.Parse("/home/user/dir/file.txt")
	assert.Equal(t, Parsed{Root: "/", Dir: "/home/user/dir", Base: "file.txt", Ext: ".txt", Name: "file"}, got)

	got = Posix.Parse("file.txt")
	assert.Equal(t, Parsed{Root: "", Dir: "", Base: "file.txt", Ext: ".txt", Name: "file"}, got)

	got = Win32.Parse(`C:\path\dir\file.txt`)
	assert.Equal(t, Parsed{Root: `C:\`, Dir: `C:\path\dir`, Base: "file.txt", Ext: ".txt", Name: "file"}, got)

	got = Win32.Parse("C:file.txt")
	assert.Equal(t, "C:", got.Root)

	assert.Equal(t, Parsed{}, Posix.Parse(""))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "/a/b.js", Posix.Format(Parsed{Root: "/", Dir: "/a", Base: "b.js"}))
	assert.Equal(t, "/b.js", Posix.Format(Parsed{Root: "/", Dir: "/", Base: "b.js"}), "dir equal to root collapses")
	assert.Equal(t, "/b.js", Posix.Format(Parsed{Root: "/", Name: "b", Ext: ".js"}), "name+ext when base is empty")
	assert.Equal(t, "b.js", Posix.Format(Parsed{Base: "b.js", Name: "ignored", Ext: ".x"}), "base wins over name+ext")
}

func TestParseFormatRoundTrip(t *testing.T) {
	for _, p := range []string{"/home/user/dir/file.txt", "/a/b.js", "/x"} {
		assert.Equal(t, p, Posix.Format(Posix.Parse(p)), "p=%q", p)
	}
	for _, p := range []string{`C:\path\dir\file.txt`, `C:\a.js`} {
		assert.Equal(t, p, Win32.Format(Win32.Parse(p)), "p=%q", p)
	}
}

func TestToNamespacedPath(t *testing.T) {
	assert.Equal(t, "/a/b", Posix.ToNamespacedPath("/a/b"), "posix is a no-op")
	assert.Equal(t, `\\?\C:\foo\bar`, Win32.ToNamespacedPath(`C:\foo\bar`))
	assert.Equal(t, `\\?\UNC\host\share\foo`, Win32.ToNamespacedPath(`\\host\share\foo`))
	assert.Equal(t, `\\?\C:\foo`, Win32.ToNamespacedPath("foo"), "relative paths are resolved first")
	assert.Equal(t, "", Win32.ToNamespacedPath(""))
}

func TestWithCwd(t *testing.T) {
	st := Posix.WithCwd(func() string { return "/work" })
	assert.Equal(t, "/work/x", st.Resolve("x"))
	// the shared instance is untouched
	assert.Equal(t, "/x", Posix.Resolve("x"))
}
