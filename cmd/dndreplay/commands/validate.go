package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/sortable/scenario"
)

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>...",
		Short: "Check scenario files without replaying them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var failed int
			for _, path := range args {
				sc, err := scenario.Load(path)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "%v\n", err)
					failed++
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "ok %s (%d containers, %d steps)\n", path, len(sc.Containers), len(sc.Steps))
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d scenario(s) invalid", failed, len(args))
			}
			return nil
		},
	}
}
