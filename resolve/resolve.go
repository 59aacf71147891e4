/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package resolve composes import map substitution, specifier normalization,
// and dependency cache mapping into the module resolution pipeline.
package resolve

import (
	"errors"

	"bennypowers.dev/netivim/config"
	"bennypowers.dev/netivim/denodir"
	netfs "bennypowers.dev/netivim/fs"
	"bennypowers.dev/netivim/importmap"
	"bennypowers.dev/netivim/specifier"
)

// Context owns the state a project session resolves against: the import map
// store, the current substitution, and the dependency cache. One Context per
// project; callers are serialized by the host's single-threaded invocation
// model.
type Context struct {
	fs         netfs.FileSystem
	store      *importmap.Store
	dir        *denodir.Dir
	projectDir string
	substitute func(string) string
}

// New creates a resolution context for projectDir against the given
// dependency cache root, deriving the import map substitution from the
// nearest project configuration.
func New(filesystem netfs.FileSystem, projectDir, cacheRoot string) (*Context, error) {
	c := &Context{
		fs:         filesystem,
		store:      importmap.NewStore(filesystem),
		dir:        denodir.New(filesystem, cacheRoot),
		projectDir: projectDir,
	}
	if err := c.Rebuild(); err != nil {
		return nil, err
	}
	return c, nil
}

// Dir returns the dependency cache.
func (c *Context) Dir() *denodir.Dir {
	return c.dir
}

// SetProjectDir points the context at a different project directory and
// rebuilds the substitution.
func (c *Context) SetProjectDir(dir string) error {
	c.projectDir = dir
	return c.Rebuild()
}

// Rebuild re-derives the import map substitution. Hosts call this on their
// configuration-change signal: the substitution is rebuilt wholesale, never
// patched incrementally.
//
// A missing project configuration or a configuration naming no import map
// degrades to the identity substitution. A configuration pointing at a
// missing map file also degrades to identity; a malformed map is an error.
func (c *Context) Rebuild() error {
	c.substitute = importmap.Identity

	cfg, err := config.FindProject(c.fs, c.projectDir)
	if err != nil {
		return err
	}
	if cfg == nil {
		return nil
	}

	path, ok := cfg.ImportMapPath()
	if !ok {
		return nil
	}

	m, err := c.store.Load(path)
	if err != nil {
		if errors.Is(err, importmap.ErrNotFound) {
			return nil
		}
		return err
	}

	c.substitute = m.Resolve
	return nil
}

// ResolveOne runs a single specifier through the pipeline stages in order:
// import map substitution, then normalization, then cache mapping with
// redirect following. Substitution runs first so an alias can expand into a
// remote URL before the remote rules apply; normalization runs before
// mapping so the cache mirror is built from the canonical name.
func (c *Context) ResolveOne(spec string) (string, error) {
	spec = c.substitute(spec)
	spec = specifier.Normalize(spec)
	if !specifier.IsRemote(spec) {
		return spec, nil
	}
	return c.dir.Resolve(c.dir.CachePath(spec))
}

// ResolveBatch applies the pipeline to each specifier independently. The
// result has the same length and order as the input.
func (c *Context) ResolveBatch(specs []string) ([]string, error) {
	resolved := make([]string, len(specs))
	for i, spec := range specs {
		r, err := c.ResolveOne(spec)
		if err != nil {
			return nil, err
		}
		resolved[i] = r
	}
	return resolved, nil
}
