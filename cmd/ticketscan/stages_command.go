package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"ticketscan/internal/repair"
)

func newStagesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stages",
		Short: "List the repair stages in execution order and the available fallbacks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := [][]string{}
			for i, name := range repair.DefaultChain().Names() {
				rows = append(rows, []string{strconv.Itoa(i + 1), name, "always"})
			}
			for _, name := range repair.FallbackNames() {
				rows = append(rows, []string{"-", name, "fallback (--fallback " + name + ")"})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"#", "Stage", "Runs"}, rows))
			return nil
		},
	}
}
