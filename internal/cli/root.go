// Package cli implements the symtool command-line interface: ad hoc
// validation and dedup analysis of values against a declared kind set.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-symbol/pkg/kindset"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
)

// rootFlags holds global flag values shared by all subcommands.
type rootFlags struct {
	kindsPath string
	jsonMode  bool
}

// NewRootCmd creates the top-level "symtool" command with global flags and
// all subcommands registered.
func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}
	root := &cobra.Command{
		Use:   "symtool",
		Short: "Validate and dedup strings against a declared kind set",
		Long: "Symtool loads a YAML kind-set file, validates values against its rules,\n" +
			"and reports how much duplication interning would remove.",
		// Do not print usage on errors returned by subcommands.
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flags.kindsPath, "kinds", "", "path to a YAML kind-set file (required)")
	root.PersistentFlags().BoolVar(&flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(newCheckCmd(flags))
	root.AddCommand(newDedupCmd(flags))
	root.AddCommand(newKindsCmd(flags))
	root.AddCommand(newVersionCmd())

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(exitUserError)
	}
	os.Exit(exitSuccess)
}

// loadSet builds the kind set declared by the --kinds flag.
func loadSet(flags *rootFlags) (*kindset.Set, error) {
	if flags.kindsPath == "" {
		return nil, fmt.Errorf("--kinds is required")
	}
	set := kindset.New()
	if err := set.LoadFile(flags.kindsPath); err != nil {
		return nil, err
	}
	return set, nil
}
