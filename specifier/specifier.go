/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package specifier classifies and normalizes module specifiers.
package specifier

import "strings"

// Kind indicates the type of specifier.
type Kind int

const (
	// KindLocal is a relative or absolute filesystem path.
	KindLocal Kind = iota
	// KindRemote is an absolute http or https URL.
	KindRemote
	// KindBare is a bare name, a candidate for import map substitution.
	KindBare
)

// IsRemote returns true for absolute http or https specifiers.
func IsRemote(spec string) bool {
	return strings.HasPrefix(spec, "http://") || strings.HasPrefix(spec, "https://")
}

// Classify returns the Kind of a specifier. It is a total function: every
// string falls into exactly one Kind, and unmatched shapes are KindBare.
func Classify(spec string) Kind {
	switch {
	case IsRemote(spec):
		return KindRemote
	case strings.HasPrefix(spec, "./"),
		strings.HasPrefix(spec, "../"),
		strings.HasPrefix(spec, "/"):
		return KindLocal
	default:
		return KindBare
	}
}

// IsLocal returns true for relative or absolute filesystem paths.
func IsLocal(spec string) bool {
	return Classify(spec) == KindLocal
}
