/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package denodir maps remote module specifiers into a local Deno-style
// dependency cache and follows cached redirect metadata.
package denodir

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	netfs "bennypowers.dev/netivim/fs"
	"bennypowers.dev/netivim/specifier"
)

const (
	depsDir    = "deps"
	runtimeLib = "lib.deno_runtime.d.ts"
)

// DefaultMaxRedirects caps sidecar redirect chains. The cache format itself
// has no bound; a malformed chain of sidecars could otherwise recurse forever.
const DefaultMaxRedirects = 20

// ErrRedirectLoop indicates a sidecar redirect chain exceeded the hop limit.
var ErrRedirectLoop = errors.New("redirect chain exceeded maximum length")

// Headers is the sidecar metadata written next to a cached module at
// <module>.ts.headers.json. MimeType is recorded by the cache writer;
// only RedirectTo steers resolution.
type Headers struct {
	MimeType   string `json:"mime_type"`
	RedirectTo string `json:"redirect_to"`
}

// Dir is a Deno dependency cache root. Remote modules are mirrored beneath
// it as deps/<scheme>/<host>/<path>.
type Dir struct {
	// MaxRedirects bounds redirect chains. Defaults to DefaultMaxRedirects.
	MaxRedirects int

	fs   netfs.FileSystem
	root string
}

// New creates a Dir rooted at the given cache directory.
func New(filesystem netfs.FileSystem, root string) *Dir {
	return &Dir{
		MaxRedirects: DefaultMaxRedirects,
		fs:           filesystem,
		root:         root,
	}
}

// Root returns the cache root directory.
func (d *Dir) Root() string {
	return d.root
}

// CachePath converts an absolute remote specifier into its mirror path,
// replacing the "://" separator with a path separator:
//
//	https://deno.land/x/std/log/mod -> <root>/deps/https/deno.land/x/std/log/mod
//
// Non-remote specifiers pass through unchanged.
func (d *Dir) CachePath(spec string) string {
	if !specifier.IsRemote(spec) {
		return spec
	}
	mirror := strings.Replace(spec, "://", "/", 1)
	return filepath.Join(d.root, depsDir, filepath.FromSlash(mirror))
}

// Resolve follows redirect sidecars until a cache path exists on disk.
//
// The existence probe appends ".ts" when the path does not already carry it;
// the probe suffix never leaks into the returned path. When neither the
// module nor a sidecar exists the input is returned unchanged: the miss is
// reported by the host's own diagnostics, not here.
func (d *Dir) Resolve(cachePath string) (string, error) {
	return d.resolve(cachePath, 0)
}

func (d *Dir) resolve(cachePath string, hops int) (string, error) {
	if hops > d.MaxRedirects {
		return "", fmt.Errorf("%w: %s", ErrRedirectLoop, cachePath)
	}

	probe := cachePath
	if !strings.HasSuffix(probe, ".ts") {
		probe += ".ts"
	}
	if d.fs.Exists(probe) {
		return cachePath, nil
	}

	sidecar := probe + ".headers.json"
	if !d.fs.Exists(sidecar) {
		return cachePath, nil
	}

	headers, err := d.readHeaders(sidecar)
	if err != nil {
		return "", err
	}
	if headers.RedirectTo == "" {
		return cachePath, nil
	}

	next := d.CachePath(specifier.Normalize(headers.RedirectTo))
	return d.resolve(next, hops+1)
}

func (d *Dir) readHeaders(path string) (*Headers, error) {
	data, err := d.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	headers := &Headers{}
	if err := json.Unmarshal(data, headers); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return headers, nil
}

// RuntimeLib reports the path of the global runtime declaration file when the
// cache carries one. Hosts append it to their tracked file set so ambient
// runtime types resolve.
func (d *Dir) RuntimeLib() (string, bool) {
	path := filepath.Join(d.root, runtimeLib)
	if d.fs.Exists(path) {
		return path, true
	}
	return "", false
}

// DefaultRoot returns the dependency cache root the companion runtime uses:
// $DENO_DIR when set, otherwise ~/.deno.
func DefaultRoot() string {
	if dir := os.Getenv("DENO_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".deno"
	}
	return filepath.Join(home, ".deno")
}
