/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package resolve provides the resolve command for netivim.
package resolve

import (
	"fmt"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/netivim/config"
	"bennypowers.dev/netivim/denodir"
	netfs "bennypowers.dev/netivim/fs"
	"bennypowers.dev/netivim/imports"
	resolvelib "bennypowers.dev/netivim/resolve"
)

// Cmd is the resolve cobra command that runs specifiers through the
// resolution pipeline and prints one resolved path per line.
var Cmd = &cobra.Command{
	Use:   "resolve [specifier...]",
	Short: "Resolve module specifiers to local paths",
	Long: `Resolve module specifiers the way the companion runtime would.

Specifiers can be given as arguments, or extracted from TypeScript sources
with --from (globs supported). With neither, the "files" globs from
.config/netivim.{yaml,yml,json} are used.`,
	RunE: run,
}

func init() {
	Cmd.Flags().StringP("project-dir", "p", ".", "Project directory for configuration discovery")
	Cmd.Flags().String("deno-dir", "", "Dependency cache root (defaults to $DENO_DIR, then ~/.deno)")
	Cmd.Flags().StringArrayP("from", "f", nil, "TypeScript files or globs whose imports to resolve")
	Cmd.Flags().Bool("lib", false, "Also print the cached runtime declaration file when present")

	// CLI flag wins, then DENO_DIR from the environment.
	viper.BindPFlag("deno-dir", Cmd.Flags().Lookup("deno-dir"))
	viper.BindEnv("deno-dir", "DENO_DIR")
}

func run(cmd *cobra.Command, args []string) error {
	filesystem := netfs.NewOSFileSystem()

	projectDir, err := cmd.Flags().GetString("project-dir")
	if err != nil {
		return fmt.Errorf("error reading project-dir flag: %w", err)
	}
	if projectDir, err = filepath.Abs(projectDir); err != nil {
		return fmt.Errorf("failed to resolve project directory: %w", err)
	}

	settings := config.LoadSettingsOrDefault(filesystem, projectDir)

	cacheRoot := viper.GetString("deno-dir")
	if cacheRoot == "" {
		cacheRoot = settings.DenoDir
	}
	if cacheRoot == "" {
		cacheRoot = denodir.DefaultRoot()
	}

	ctx, err := resolvelib.New(filesystem, projectDir, cacheRoot)
	if err != nil {
		return err
	}
	if settings.MaxRedirects > 0 {
		ctx.Dir().MaxRedirects = settings.MaxRedirects
	}

	specs := args

	froms, err := cmd.Flags().GetStringArray("from")
	if err != nil {
		return fmt.Errorf("error reading from flag: %w", err)
	}
	if len(froms) == 0 && len(args) == 0 {
		froms = settings.Files
	}

	for _, pattern := range froms {
		if !filepath.IsAbs(pattern) {
			pattern = filepath.Join(projectDir, pattern)
		}

		paths, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return fmt.Errorf("bad glob %q: %w", pattern, err)
		}
		if len(paths) == 0 {
			// Not a glob match: treat it as a literal path so a missing
			// file reports a read error instead of vanishing silently.
			paths = []string{pattern}
		}

		for _, path := range paths {
			fileSpecs, err := specifiersOf(filesystem, path)
			if err != nil {
				return err
			}
			specs = append(specs, fileSpecs...)
		}
	}

	resolved, err := ctx.ResolveBatch(specs)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, path := range resolved {
		fmt.Fprintln(out, path)
	}

	if showLib, _ := cmd.Flags().GetBool("lib"); showLib {
		if lib, ok := ctx.Dir().RuntimeLib(); ok {
			fmt.Fprintln(out, lib)
		}
	}

	return nil
}

func specifiersOf(filesystem netfs.FileSystem, path string) ([]string, error) {
	content, err := filesystem.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	specs, err := imports.Specifiers(content)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return specs, nil
}
