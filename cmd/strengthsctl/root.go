package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/strengthscope/backend/internal/catalog"
)

var catalogDir string

var rootCmd = &cobra.Command{
	Use:   "strengthsctl",
	Short: "Operator tooling for the strengths assessment",
	Long: `strengthsctl inspects the strengths catalogs and exercises the scoring
engine offline: validate catalogs, build pair sets, score response files and
run simulated respondents.

Catalogs are the embedded defaults unless --catalog-dir points at a directory
holding strengths.yaml and forced_choice.yaml.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&catalogDir, "catalog-dir", "", "Directory with catalog YAML files (embedded catalogs if empty)")

	rootCmd.AddCommand(catalogCmd, pairsCmd, scoreCmd, simulateCmd)
}

func loadCatalogs() (*catalog.Catalogs, error) {
	cats, err := catalog.Load(catalogDir)
	if err != nil {
		return nil, fmt.Errorf("error loading catalogs: %w", err)
	}
	return cats, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
