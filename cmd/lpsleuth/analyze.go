package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/lpsleuth/lpsleuth/lpfile"
	"github.com/lpsleuth/lpsleuth/numerics"
	"github.com/lpsleuth/lpsleuth/report"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <model.lp> [more.lp ...]",
	Short: "Summarize coefficient magnitudes and model shape",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		small, _ := cmd.Flags().GetFloat64("small")
		large, _ := cmd.Flags().GetFloat64("large")

		analyzer := &numerics.Analyzer{SmallThreshold: small, LargeThreshold: large}
		renderer := &report.Renderer{Color: useColor(cmd)}

		for _, path := range args {
			model, err := lpfile.ParseFile(path)
			if err != nil {
				return err
			}
			renderer.Numerics(os.Stdout, analyzer.Analyze(model))
		}
		return nil
	},
}

func init() {
	analyzeCmd.Flags().Float64("small", numerics.DefaultSmallThreshold, "flag coefficients below this magnitude")
	analyzeCmd.Flags().Float64("large", numerics.DefaultLargeThreshold, "flag coefficients above this magnitude")
}
