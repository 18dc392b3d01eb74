package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/strengthscope/backend/internal/scoring"
	"github.com/strengthscope/backend/internal/simulation"
)

var (
	simScheme      string
	simRespondents int
	simWorkers     int
	simSeed        int64
	simRebuilds    int
	simJSON        bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run simulated respondents through the scoring engine",
	Long: `Run simulated respondents concurrently. Each respondent favours one random
strength and answers everything else at random; the report shows how often
scoring ranks the favourite first, how often pair construction came out
short, and which strengths ranked first.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		scheme, err := scoring.ParseScheme(simScheme)
		if err != nil {
			return err
		}
		cats, err := loadCatalogs()
		if err != nil {
			return err
		}

		report, err := simulation.Run(cmd.Context(), cats, simulation.Options{
			Scheme:      scheme,
			Respondents: simRespondents,
			Workers:     simWorkers,
			Seed:        simSeed,
			Rebuilds:    simRebuilds,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if simJSON {
			return writeJSON(out, report)
		}

		fmt.Fprintf(out, "Scheme:       %s\n", report.Scheme)
		fmt.Fprintf(out, "Respondents:  %d\n", report.Respondents)
		fmt.Fprintf(out, "Recovered:    %d (%.1f%%)\n", report.Recovered, report.RecoveryRate*100)
		if report.Scheme == scoring.SchemePairwise {
			fmt.Fprintf(out, "Short sets:   %d (%.1f%%)\n", report.ShortPairSets, report.ShortRate*100)
		}
		fmt.Fprintf(out, "Elapsed:      %s\n", report.Elapsed)
		fmt.Fprintln(out, "Top strengths:")
		for _, tc := range report.TopCounts {
			fmt.Fprintf(out, "  %-16s %d\n", tc.Strength, tc.Count)
		}
		return nil
	},
}

func init() {
	simulateCmd.Flags().StringVar(&simScheme, "scheme", "pairwise", "Scoring scheme (likert|pairwise|forced_choice)")
	simulateCmd.Flags().IntVarP(&simRespondents, "respondents", "n", 200, "Number of simulated respondents")
	simulateCmd.Flags().IntVarP(&simWorkers, "workers", "w", 8, "Concurrent respondents")
	simulateCmd.Flags().Int64Var(&simSeed, "seed", 1, "Base random seed")
	simulateCmd.Flags().IntVar(&simRebuilds, "rebuilds", 10, "Whole pair-set rebuilds when a build comes out short")
	simulateCmd.Flags().BoolVar(&simJSON, "json", false, "Print the report as JSON")
}
