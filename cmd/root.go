/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package cmd provides CLI commands for netivim.
package cmd

import (
	"github.com/spf13/cobra"

	"bennypowers.dev/netivim/cmd/resolve"
	"bennypowers.dev/netivim/cmd/version"
)

var rootCmd = &cobra.Command{
	Use:   "netivim",
	Short: "Resolve Deno-style module specifiers",
	Long: `netivim resolves import specifiers the way the Deno runtime does:
import map aliases expand, ".ts" suffixes normalize away, and remote URLs map
into the local dependency cache, redirects included.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(resolve.Cmd)
	rootCmd.AddCommand(version.Cmd)
}
