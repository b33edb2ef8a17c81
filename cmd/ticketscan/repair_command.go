package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"ticketscan/internal/repair"
)

func newRepairCommand(flags *pipelineFlags) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "repair [file]",
		Short: "Run a raw model reply through the repair pipeline and trace each stage",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			p, err := flags.build()
			if err != nil {
				return err
			}

			res := p.Run(raw)
			out := cmd.OutOrStdout()
			if jsonOutput {
				return writeResultJSON(out, res)
			}

			if candidate, err := repair.ExtractCandidate(raw); err == nil {
				fmt.Fprintln(out, renderTrace(p.Chain().Trace(candidate)))
			}
			if len(res.Nulled) > 0 {
				rows := make([][]string, 0, len(res.Nulled))
				for _, n := range res.Nulled {
					rows = append(rows, []string{n.Field, n.Value})
				}
				fmt.Fprintln(out, renderTable([]string{"Nulled field", "Rejected value"}, rows))
			}
			fmt.Fprintf(out, "State: %s\n", res.State)
			if res.FallbackUsed {
				fmt.Fprintln(out, "Fallback pass: used")
			}
			return writeResultJSON(out, res)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print only the record or diagnostic as JSON")
	return cmd
}

func renderTrace(trace []repair.StageTrace) string {
	rows := make([][]string, 0, len(trace))
	for i, st := range trace {
		changed := ""
		if st.Changed {
			changed = "yes"
		}
		rows = append(rows, []string{strconv.Itoa(i + 1), st.Stage, changed, st.Output})
	}
	return renderTable([]string{"#", "Stage", "Changed", "Output"}, rows)
}

// writeResultJSON prints the record on success or the diagnostic on failure.
func writeResultJSON(w io.Writer, res *repair.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if diag := res.Diagnostic(); diag != nil {
		if err := enc.Encode(diag); err != nil {
			return err
		}
		return res.Err
	}
	return enc.Encode(res.Record)
}
