// Package main provides the entry point for the dsa-wiki-crawler CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for dsa-wiki-crawler.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dsa-wiki-crawler",
		Short: "Mirror the Ulisses Regelwiki as local markdown documents",
		Long: `dsa-wiki-crawler walks the DSA rule wiki from its entry points and
writes every reachable page as a markdown document. Links between pages
are rewritten into stable local identifiers, so the mirrored corpus is
self-contained and survives URL layout changes on the wiki.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewMirrorCmd())
	cmd.AddCommand(NewCheckCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
