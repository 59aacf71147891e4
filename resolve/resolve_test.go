/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolve

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"bennypowers.dev/netivim/internal/mapfs"
)

// newProjectFS builds a project with an import map and a populated
// dependency cache.
func newProjectFS() *mapfs.MapFileSystem {
	mfs := mapfs.New()
	mfs.AddFile("/project/tsconfig.json", `{
		"denoOptions": {"importMap": "import_map.json"}
	}`, 0644)
	mfs.AddFile("/project/import_map.json", `{
		"imports": {
			"std/": "https://deno.land/std/"
		}
	}`, 0644)
	mfs.AddFile("/deno/deps/https/deno.land/std/http/mod.ts", "export {}", 0644)
	return mfs
}

func TestResolveOne_AliasToCache(t *testing.T) {
	ctx, err := New(newProjectFS(), "/project", "/deno")
	require.NoError(t, err)

	// alias expands to a remote URL, the .ts suffix is stripped, and the
	// remote maps into the cache mirror
	resolved, err := ctx.ResolveOne("std/http/mod.ts")
	require.NoError(t, err)
	require.Equal(t, "/deno/deps/https/deno.land/std/http/mod", resolved)
}

func TestResolveOne_RemoteWithoutAlias(t *testing.T) {
	ctx, err := New(newProjectFS(), "/project", "/deno")
	require.NoError(t, err)

	resolved, err := ctx.ResolveOne("https://deno.land/std/http/mod.ts")
	require.NoError(t, err)
	require.Equal(t, "/deno/deps/https/deno.land/std/http/mod", resolved)
}

func TestResolveOne_LocalPassThrough(t *testing.T) {
	ctx, err := New(newProjectFS(), "/project", "/deno")
	require.NoError(t, err)

	// no scheme, no mapped prefix, no .ts suffix: unchanged end to end
	resolved, err := ctx.ResolveOne("./util/helpers.js")
	require.NoError(t, err)
	require.Equal(t, "./util/helpers.js", resolved)
}

func TestResolveOne_QueryKept(t *testing.T) {
	ctx, err := New(newProjectFS(), "/project", "/deno")
	require.NoError(t, err)

	resolved, err := ctx.ResolveOne("./mod.ts?x=1")
	require.NoError(t, err)
	require.Equal(t, "./mod.ts?x=1", resolved)
}

func TestResolveBatch_OrderAndLength(t *testing.T) {
	ctx, err := New(newProjectFS(), "/project", "/deno")
	require.NoError(t, err)

	specs := []string{
		"std/http/mod.ts",
		"./local.ts",
		"lodash",
	}

	resolved, err := ctx.ResolveBatch(specs)
	require.NoError(t, err)
	require.Equal(t, []string{
		"/deno/deps/https/deno.land/std/http/mod",
		"./local",
		"lodash",
	}, resolved)
}

func TestResolveBatch_RedirectFollowed(t *testing.T) {
	mfs := newProjectFS()
	mfs.AddFile(
		"/deno/deps/https/deno.land/x/old/mod.ts.headers.json",
		`{"redirect_to": "https://deno.land/x/new/mod.ts"}`,
		0644)
	mfs.AddFile("/deno/deps/https/deno.land/x/new/mod.ts", "export {}", 0644)

	ctx, err := New(mfs, "/project", "/deno")
	require.NoError(t, err)

	resolved, err := ctx.ResolveBatch([]string{"https://deno.land/x/old/mod.ts"})
	require.NoError(t, err)
	require.Equal(t, []string{"/deno/deps/https/deno.land/x/new/mod"}, resolved)
}

func TestNew_NoProjectConfig(t *testing.T) {
	mfs := mapfs.New()

	ctx, err := New(mfs, "/project", "/deno")
	require.NoError(t, err)

	// no config means identity substitution; bare names stay bare
	resolved, err := ctx.ResolveOne("std/http/mod.ts")
	require.NoError(t, err)
	require.Equal(t, "std/http/mod", resolved)
}

func TestNew_ConfigWithoutImportMap(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/project/tsconfig.json", `{"compilerOptions": {}}`, 0644)

	ctx, err := New(mfs, "/project", "/deno")
	require.NoError(t, err)

	resolved, err := ctx.ResolveOne("std/version.ts")
	require.NoError(t, err)
	require.Equal(t, "std/version", resolved)
}

func TestNew_MissingImportMapDegradesToIdentity(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/project/tsconfig.json", `{"denoOptions": {"importMap": "nowhere.json"}}`, 0644)

	ctx, err := New(mfs, "/project", "/deno")
	require.NoError(t, err)

	resolved, err := ctx.ResolveOne("std/version.ts")
	require.NoError(t, err)
	require.Equal(t, "std/version", resolved)
}

func TestNew_MalformedImportMapFails(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/project/tsconfig.json", `{"denoOptions": {"importMap": "import_map.json"}}`, 0644)
	mfs.AddFile("/project/import_map.json", `{"no": "imports"}`, 0644)

	_, err := New(mfs, "/project", "/deno")
	require.Error(t, err)
}

func TestRebuild_PicksUpEditedImportMap(t *testing.T) {
	mfs := newProjectFS()

	ctx, err := New(mfs, "/project", "/deno")
	require.NoError(t, err)

	resolved, err := ctx.ResolveOne("std/http/mod.ts")
	require.NoError(t, err)
	require.Equal(t, "/deno/deps/https/deno.land/std/http/mod", resolved)

	// Simulate an editor save remapping the alias, then the host's
	// configuration-change signal.
	mfs.AddFile("/project/import_map.json", `{
		"imports": {
			"std/": "https://example.com/std/"
		}
	}`, 0644)
	mfs.Touch("/project/import_map.json", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, ctx.Rebuild())

	resolved, err = ctx.ResolveOne("std/http/mod.ts")
	require.NoError(t, err)
	require.Equal(t, "/deno/deps/https/example.com/std/http/mod", resolved)
}

func TestSetProjectDir(t *testing.T) {
	mfs := newProjectFS()
	mfs.AddFile("/other/tsconfig.json", `{"denoOptions": {"importMap": "im.json"}}`, 0644)
	mfs.AddFile("/other/im.json", `{"imports": {"std/": "https://other.example/std/"}}`, 0644)

	ctx, err := New(mfs, "/project", "/deno")
	require.NoError(t, err)
	require.NoError(t, ctx.SetProjectDir("/other"))

	resolved, err := ctx.ResolveOne("std/version.ts")
	require.NoError(t, err)
	require.Equal(t, "/deno/deps/https/other.example/std/version", resolved)
}

func TestMiddleware_Delegates(t *testing.T) {
	ctx, err := New(newProjectFS(), "/project", "/deno")
	require.NoError(t, err)

	var seen []string
	next := func(specifiers []string, containingFile string) []string {
		seen = specifiers
		return specifiers
	}

	wrapped := Middleware(ctx, next)
	result := wrapped([]string{"std/http/mod.ts", "./a.ts"}, "/project/main.ts")

	require.Equal(t, []string{"/deno/deps/https/deno.land/std/http/mod", "./a"}, seen)
	require.Equal(t, seen, result)
}

func TestMiddleware_FallsBackOnError(t *testing.T) {
	mfs := newProjectFS()
	mfs.AddFile(
		"/deno/deps/https/a.example/mod.ts.headers.json",
		`{"redirect_to": "https://a.example/mod.ts"}`,
		0644)

	ctx, err := New(mfs, "/project", "/deno")
	require.NoError(t, err)

	next := func(specifiers []string, containingFile string) []string {
		return specifiers
	}

	wrapped := Middleware(ctx, next)

	// the self-redirect trips the hop limit; raw specifiers pass through
	raw := []string{"https://a.example/mod.ts"}
	require.Equal(t, raw, wrapped(raw, "/project/main.ts"))
}
