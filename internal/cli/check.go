package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	symbol "github.com/goliatone/go-symbol"
)

type checkResult struct {
	Value string `json:"value"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

func newCheckCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "check KIND VALUE...",
		Short: "Validate values against a kind's rule",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := loadSet(flags)
			if err != nil {
				return err
			}
			kind, values := args[0], args[1:]

			results := make([]checkResult, 0, len(values))
			rejected := 0
			for _, value := range values {
				result := checkResult{Value: value, OK: true}
				handle, err := set.Intern(kind, value)
				switch {
				case err == nil:
					handle.Release()
				case isValidation(err):
					result.OK = false
					result.Error = err.Error()
					rejected++
				default:
					return err
				}
				results = append(results, result)
			}

			if flags.jsonMode {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(results); err != nil {
					return err
				}
			} else {
				for _, result := range results {
					if result.OK {
						fmt.Fprintf(cmd.OutOrStdout(), "ok\t%s\n", result.Value)
					} else {
						fmt.Fprintf(cmd.OutOrStdout(), "rejected\t%s\t%s\n", result.Value, result.Error)
					}
				}
			}
			if rejected > 0 {
				return fmt.Errorf("%d of %d values rejected", rejected, len(values))
			}
			return nil
		},
	}
}

func isValidation(err error) bool {
	var verr *symbol.ValidationError
	return errors.As(err, &verr)
}
