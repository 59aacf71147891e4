/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package imports extracts module specifiers from TypeScript sources.
// This is how the CLI builds the batch a plugin host would hand over: the
// raw specifier strings of one containing file, in source order.
package imports

import (
	"fmt"
	"sync"

	ts "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// ModuleImport is one import specifier found in a source file.
type ModuleImport struct {
	// Specifier is the module specifier string, without quotes.
	Specifier string

	// IsDynamic is true for import() expressions.
	IsDynamic bool

	// Line is the 1-indexed source line of the specifier.
	Line int
}

const importsQuery = `
(import_statement source: (string (string_fragment) @import.spec))
(export_statement source: (string (string_fragment) @reexport.spec))
(call_expression
  function: (import)
  arguments: (arguments (string (string_fragment) @dynamicImport.spec)))
`

var (
	initOnce sync.Once
	language *ts.Language
	query    *ts.Query
	initErr  error
)

func initQuery() {
	language = ts.NewLanguage(tree_sitter_typescript.LanguageTypescript())

	var qerr *ts.QueryError
	query, qerr = ts.NewQuery(language, importsQuery)
	if qerr != nil {
		initErr = fmt.Errorf("compiling imports query: %s", qerr.Message)
	}
}

// Extract parses TypeScript content and returns all static, dynamic, and
// re-export specifiers in source order.
func Extract(content []byte) ([]ModuleImport, error) {
	initOnce.Do(initQuery)
	if initErr != nil {
		return nil, initErr
	}

	parser := ts.NewParser()
	defer parser.Close()
	if err := parser.SetLanguage(language); err != nil {
		return nil, fmt.Errorf("setting language: %w", err)
	}

	tree := parser.Parse(content, nil)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse content")
	}
	defer tree.Close()

	cursor := ts.NewQueryCursor()
	defer cursor.Close()

	var imports []ModuleImport
	matches := cursor.Matches(query, tree.RootNode(), content)
	captureNames := query.CaptureNames()

	for {
		match := matches.Next()
		if match == nil {
			break
		}

		for _, capture := range match.Captures {
			name := captureNames[capture.Index]
			text := capture.Node.Utf8Text(content)
			line := int(capture.Node.StartPosition().Row) + 1 // 1-indexed

			switch name {
			case "import.spec", "reexport.spec":
				imports = append(imports, ModuleImport{
					Specifier: text,
					IsDynamic: false,
					Line:      line,
				})
			case "dynamicImport.spec":
				imports = append(imports, ModuleImport{
					Specifier: text,
					IsDynamic: true,
					Line:      line,
				})
			}
		}
	}

	return imports, nil
}

// Specifiers returns just the specifier strings of a source file, in order.
func Specifiers(content []byte) ([]string, error) {
	found, err := Extract(content)
	if err != nil {
		return nil, err
	}

	specs := make([]string, len(found))
	for i, imp := range found {
		specs[i] = imp.Specifier
	}
	return specs, nil
}
