package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/fiftytwo/internal/core/domain"
)

type planRow struct {
	Week       int `json:"week"`
	Amount     int `json:"amount"`
	Cumulative int `json:"cumulative"`
}

func planCmd() *cobra.Command {
	var (
		target int
		weeks  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Preview the weekly schedule for a target",
		Long: `Print the amount due each week for a target spread over a number of weeks.

Examples:
  savectl plan
  savectl plan --target 137800 --weeks 52
  savectl plan -t 500 -w 10 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			amounts, err := domain.Allocate(target, weeks)
			if err != nil {
				return err
			}

			rows := make([]planRow, len(amounts))
			running := 0
			for i, amount := range amounts {
				running += amount
				rows[i] = planRow{Week: i + 1, Amount: amount, Cumulative: running}
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(tw, "WEEK\tAMOUNT\tTOTAL\t")
			for _, r := range rows {
				fmt.Fprintf(tw, "%d\t%d\t%d\t\n", r.Week, r.Amount, r.Cumulative)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVarP(&target, "target", "t", domain.DefaultTargetAmount, "total amount to save")
	cmd.Flags().IntVarP(&weeks, "weeks", "w", domain.DefaultTotalWeeks, "number of weeks")
	cmd.Flags().BoolVarP(&asJSON, "json", "j", false, "output as JSON")

	return cmd
}
