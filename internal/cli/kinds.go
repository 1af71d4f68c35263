package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newKindsCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List the kinds declared by the kind-set file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := loadSet(flags)
			if err != nil {
				return err
			}
			doc := set.Describe()

			if flags.jsonMode {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(doc)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tENGINE\tRULE")
			for _, kind := range doc.Kinds {
				fmt.Fprintf(w, "%s\t%s\t%s\n", kind.Name, kind.Engine, kind.Rule)
			}
			return w.Flush()
		},
	}
}
