/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package specifier

import "strings"

// Normalize converts a specifier to the canonical name the companion runtime
// resolves by: a ".ts" suffix is dropped so the host can run its own extension
// probing afterwards.
//
// A specifier that carries a query string after a ".ts" boundary is returned
// completely unchanged, query included: the runtime treats "mod.ts?x=1" as an
// opaque cache key, so stripping either part would name a different module.
func Normalize(spec string) string {
	if before, _, found := strings.Cut(spec, "?"); found && strings.HasSuffix(before, ".ts") {
		return spec
	}
	if !strings.HasSuffix(spec, ".ts") {
		return spec
	}
	return spec[:len(spec)-len(".ts")]
}
