/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package importmap loads and applies import map documents.
package importmap

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/jsonc"
)

// Sentinel errors for import map operations.
var (
	// ErrNotFound indicates the import map file does not exist.
	ErrNotFound = errors.New("import map not found")

	// ErrParse indicates the import map file is not valid JSON or lacks
	// an "imports" object.
	ErrParse = errors.New("invalid import map")
)

// Mapping is a single prefix substitution entry.
type Mapping struct {
	// From is the specifier prefix to match. Matched literally, not as a pattern.
	From string

	// To is the replacement prefix.
	To string
}

// ImportMap is a parsed import map document. Entries keep document order:
// the first matching prefix wins, so order is part of the document's meaning.
// An ImportMap is immutable once parsed.
type ImportMap struct {
	Imports []Mapping
}

// Parse parses an import map document. Comments and trailing commas are
// tolerated, since import maps are edited by hand alongside JSONC configs.
func Parse(data []byte) (*ImportMap, error) {
	clean := jsonc.ToJSON(data)

	var doc struct {
		Imports json.RawMessage `json:"imports"`
	}
	if err := json.Unmarshal(clean, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if doc.Imports == nil {
		return nil, fmt.Errorf("%w: missing \"imports\" object", ErrParse)
	}

	imports, err := parseOrdered(doc.Imports)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	return &ImportMap{Imports: imports}, nil
}

// parseOrdered decodes a JSON object into mappings preserving document order.
// json.Unmarshal into a map would lose it.
func parseOrdered(raw []byte) ([]Mapping, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("\"imports\" must be an object")
	}

	var imports []Mapping
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key := keyTok.(string)

		var value string
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("value for %q must be a string", key)
		}

		imports = append(imports, Mapping{From: key, To: value})
	}

	return imports, nil
}

// Resolve applies the first mapping whose From is a literal prefix of the
// specifier, replacing the prefix and keeping the remainder verbatim.
// Unmatched specifiers pass through unchanged. Substitution is applied once
// per call, not recursively: if the output itself starts with a mapped
// prefix, it is not substituted again.
func (m *ImportMap) Resolve(spec string) string {
	for _, mapping := range m.Imports {
		if strings.HasPrefix(spec, mapping.From) {
			return mapping.To + spec[len(mapping.From):]
		}
	}
	return spec
}

// Identity is the substitution used when no import map applies.
func Identity(spec string) string {
	return spec
}
