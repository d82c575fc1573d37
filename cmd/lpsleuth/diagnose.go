package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/lpsleuth/lpsleuth/diagnose"
	"github.com/lpsleuth/lpsleuth/lpfile"
	"github.com/lpsleuth/lpsleuth/mip"
	"github.com/lpsleuth/lpsleuth/report"
	"github.com/lpsleuth/lpsleuth/solve"
)

var diagnoseCmd = &cobra.Command{
	Use:   "diagnose <model.lp> [more.lp ...]",
	Short: "Explain why models are infeasible",
	Long: `Diagnose loads each model, solves it, and runs the diagnosis cascade:
bound consistency, constraint-range consistency, and - when the solver
confirms infeasibility - extraction of one irreducible infeasible subset.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDiagnose,
}

func init() {
	diagnoseCmd.Flags().Float64("penalty", diagnose.DefaultPenalty, "penalty coefficient on elastic slacks")
	diagnoseCmd.Flags().Float64("slack-tol", diagnose.DefaultSlackTol, "tolerance above which a slack counts as active")
	diagnoseCmd.Flags().Bool("no-iis", false, "skip the solver-driven IIS search")
	diagnoseCmd.Flags().Int("workers", 0, "branch-and-bound workers (0 = default)")
}

func runDiagnose(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	penalty, _ := cmd.Flags().GetFloat64("penalty")
	slackTol, _ := cmd.Flags().GetFloat64("slack-tol")
	noIIS, _ := cmd.Flags().GetBool("no-iis")
	workers, _ := cmd.Flags().GetInt("workers")
	quiet, _ := cmd.Flags().GetBool("quiet")

	if !cmd.Flags().Changed("penalty") && cfg.Diagnose.Penalty > 0 {
		penalty = cfg.Diagnose.Penalty
	}
	if !cmd.Flags().Changed("slack-tol") && cfg.Diagnose.SlackTol > 0 {
		slackTol = cfg.Diagnose.SlackTol
	}
	if !cmd.Flags().Changed("no-iis") {
		noIIS = noIIS || cfg.Diagnose.NoIIS
	}
	if workers == 0 {
		workers = cfg.Diagnose.Workers
	}

	renderer := &report.Renderer{Color: useColor(cmd)}

	// each model is diagnosed independently; render buffers keep the
	// output per file in argument order.
	outputs := make([]bytes.Buffer, len(args))
	clean := make([]bool, len(args))

	var g errgroup.Group
	for i, path := range args {
		i, path := i, path
		g.Go(func() error {
			res, name, err := diagnoseOne(path, penalty, slackTol, noIIS, workers)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			renderer.Diagnosis(&outputs[i], name, res)
			clean[i] = res.Clean()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i := range outputs {
		if quiet && clean[i] {
			continue
		}
		outputs[i].WriteTo(os.Stdout)
	}
	return nil
}

func diagnoseOne(path string, penalty, slackTol float64, noIIS bool, workers int) (*diagnose.Result, string, error) {
	model, err := lpfile.ParseFile(path)
	if err != nil {
		return nil, "", err
	}

	solver := &solve.Simplex{Workers: workers}
	model.SetSolver(solver)
	model.SetQuiet(true)

	// the solve verdict is the precondition for the IIS layer; the two
	// cheap layers run regardless.
	if err := model.Optimize(); err != nil {
		return nil, "", fmt.Errorf("solving: %w", err)
	}

	var iisSolver mip.Solver
	if !noIIS {
		iisSolver = solver
	}

	cascade := &diagnose.Cascade{Penalty: penalty, SlackTol: slackTol}
	res, err := cascade.Run(model, iisSolver)
	if err != nil {
		return nil, "", err
	}
	return res, model.Name(), nil
}
