package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/strengthscope/backend/internal/domain/category"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Validate the catalogs and print a summary",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cats, err := loadCatalogs()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		bank := cats.Strengths
		fmt.Fprintf(out, "Strengths: %d strengths, %d statements\n", len(bank.Strengths()), len(bank.Questions()))

		grouped := bank.ByCategory()
		for _, c := range category.All() {
			fmt.Fprintf(out, "  %s\n", c.Name())
			for _, s := range grouped[c] {
				fmt.Fprintf(out, "    %-14s %d statements\n", s.ID, len(bank.QuestionsFor(s.ID)))
			}
		}

		fc := cats.ForcedChoice
		fmt.Fprintf(out, "Forced choice: %d traits, %d questions\n", len(fc.Traits()), len(fc.Questions()))
		for _, t := range fc.Traits() {
			fmt.Fprintf(out, "    %-16s appears %d times\n", t.Name, fc.Appearances(t.Name))
		}
		return nil
	},
}
