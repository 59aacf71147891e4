/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolve

import "bennypowers.dev/netivim/internal/logger"

// ModuleNamesFunc is the host's batch resolution signature: the specifiers
// of one containing file, resolved in order.
type ModuleNamesFunc func(specifiers []string, containingFile string) []string

// Middleware wraps a host resolution function, pre-transforming each
// specifier through the pipeline before delegating. When the pipeline fails
// the raw specifiers are passed through untouched so the host's own
// diagnostics report the unresolved imports; resolution never takes the host
// down.
func Middleware(ctx *Context, next ModuleNamesFunc) ModuleNamesFunc {
	return func(specifiers []string, containingFile string) []string {
		transformed, err := ctx.ResolveBatch(specifiers)
		if err != nil {
			logger.Warn("resolving imports of %s: %v", containingFile, err)
			return next(specifiers, containingFile)
		}
		return next(transformed, containingFile)
	}
}
