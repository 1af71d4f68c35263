package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	symbol "github.com/goliatone/go-symbol"
)

type dedupReport struct {
	Kind     string `json:"kind"`
	Lines    int    `json:"lines"`
	Distinct int    `json:"distinct"`
	Rejected int    `json:"rejected"`
}

func newDedupCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "dedup KIND [FILE]",
		Short: "Intern one value per input line and report duplication",
		Long: "Dedup reads values line by line from FILE (or stdin), interns each under\n" +
			"KIND, and reports total, distinct, and rejected counts.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := loadSet(flags)
			if err != nil {
				return err
			}
			kind := args[0]

			var in io.Reader = cmd.InOrStdin()
			if len(args) == 2 {
				f, err := os.Open(args[1])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			report := dedupReport{Kind: kind}
			// Handles are retained until the end of the run so every
			// line of a repeated value resolves to the same live entry.
			var handles []symbol.Handle
			defer func() {
				for _, h := range handles {
					h.Release()
				}
			}()

			scanner := bufio.NewScanner(in)
			for scanner.Scan() {
				report.Lines++
				handle, err := set.Intern(kind, scanner.Text())
				switch {
				case err == nil:
					handles = append(handles, handle)
				case isValidation(err):
					report.Rejected++
				default:
					return err
				}
			}
			if err := scanner.Err(); err != nil {
				return err
			}

			for _, stats := range set.Stats() {
				if stats.Kind == kind {
					report.Distinct = stats.Entries
				}
			}

			if flags.jsonMode {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "kind: %s\nlines: %d\ndistinct: %d\nrejected: %d\n",
				report.Kind, report.Lines, report.Distinct, report.Rejected)
			return nil
		},
	}
}
