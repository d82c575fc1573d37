// lpsleuth diagnoses why LP and MIP models are infeasible: conflicting
// variable bounds, constraints that can never be satisfied, or an
// irreducible infeasible subset of constraints found with the solver.
package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/lpsleuth/lpsleuth/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "lpsleuth",
	Short: "Diagnose infeasible LP and MIP models",
	Long: `lpsleuth reads linear and mixed-integer models in LP text format and
explains why they cannot be solved: conflicting variable bounds, constraints
whose achievable range excludes their target, or a minimal conflicting set
of constraints (an irreducible infeasible subset).`,
	SilenceUsage: true,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(diagnoseCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the lpsleuth version",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println("lpsleuth " + version.Version)
	},
}

// useColor resolves the --color flag against the terminal.
func useColor(cmd *cobra.Command) bool {
	mode, _ := cmd.Flags().GetString("color")
	switch mode {
	case "on":
		return true
	case "off":
		return false
	}
	if color.NoColor {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}
