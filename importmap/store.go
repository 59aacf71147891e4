/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package importmap

import (
	"fmt"
	"sync"

	netfs "bennypowers.dev/netivim/fs"
)

// Store loads and caches parsed import maps.
//
// The cache key combines the file path with its modification time, so an
// editor save invalidates the previous parse without any explicit
// invalidation signal. Stale entries are never evicted: the universe of
// import map files in a session is small and bounded by open projects.
type Store struct {
	fs    netfs.FileSystem
	mu    sync.Mutex
	cache map[string]*ImportMap
}

// NewStore creates a Store reading through the given filesystem.
func NewStore(filesystem netfs.FileSystem) *Store {
	return &Store{
		fs:    filesystem,
		cache: make(map[string]*ImportMap),
	}
}

// Load returns the parsed import map at path. Repeated loads of an unchanged
// file return the same *ImportMap. A missing file is ErrNotFound; malformed
// content is ErrParse.
func (s *Store) Load(path string) (*ImportMap, error) {
	info, err := s.fs.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	key := fmt.Sprintf("%s-%d", path, info.ModTime().UnixMilli())

	s.mu.Lock()
	defer s.mu.Unlock()

	if m, ok := s.cache[key]; ok {
		return m, nil
	}

	data, err := s.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	s.cache[key] = m
	return m, nil
}
