/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package importmap

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse_PreservesDocumentOrder(t *testing.T) {
	data := []byte(`{
		"imports": {
			"std/http/": "https://deno.land/std/http/",
			"std/": "https://deno.land/std/",
			"lodash": "https://unpkg.com/lodash-es"
		}
	}`)

	m, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, m.Imports, 3)
	require.Equal(t, "std/http/", m.Imports[0].From)
	require.Equal(t, "std/", m.Imports[1].From)
	require.Equal(t, "lodash", m.Imports[2].From)
}

func TestParse_ToleratesComments(t *testing.T) {
	data := []byte(`{
		// maps the standard library
		"imports": {
			"std/": "https://deno.land/std/", // trailing comma below
		},
	}`)

	m, err := Parse(data)
	require.NoError(t, err)
	require.Equal(t, "https://deno.land/std/", m.Resolve("std/"))
}

func TestParse_MissingImports(t *testing.T) {
	_, err := Parse([]byte(`{"scopes": {}}`))
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrParse))
}

func TestParse_InvalidJSON(t *testing.T) {
	_, err := Parse([]byte(`{"imports": `))
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrParse))
}

func TestParse_ImportsNotAnObject(t *testing.T) {
	_, err := Parse([]byte(`{"imports": ["std/"]}`))
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrParse))
}

func TestParse_NonStringValue(t *testing.T) {
	_, err := Parse([]byte(`{"imports": {"std/": 42}}`))
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrParse))
}

func TestResolve_PrefixSubstitution(t *testing.T) {
	m := &ImportMap{Imports: []Mapping{
		{From: "std/", To: "https://deno.land/std/"},
	}}

	require.Equal(t,
		"https://deno.land/std/http/mod.ts",
		m.Resolve("std/http/mod.ts"))
}

func TestResolve_FirstMatchWins(t *testing.T) {
	m := &ImportMap{Imports: []Mapping{
		{From: "std/", To: "https://first.example/"},
		{From: "std/http/", To: "https://second.example/"},
	}}

	// "std/" appears first in the document, so the longer key never matches.
	require.Equal(t,
		"https://first.example/http/mod.ts",
		m.Resolve("std/http/mod.ts"))
}

func TestResolve_Unmatched(t *testing.T) {
	m := &ImportMap{Imports: []Mapping{
		{From: "std/", To: "https://deno.land/std/"},
	}}

	require.Equal(t, "./local/mod.ts", m.Resolve("./local/mod.ts"))
	require.Equal(t, "lodash", m.Resolve("lodash"))
}

func TestResolve_SinglePass(t *testing.T) {
	m := &ImportMap{Imports: []Mapping{
		{From: "a/", To: "b/"},
		{From: "b/", To: "c/"},
	}}

	// Substitution is applied once; the output is not re-resolved.
	require.Equal(t, "b/mod.ts", m.Resolve("a/mod.ts"))
}

func TestIdentity(t *testing.T) {
	require.Equal(t, "anything", Identity("anything"))
}
