package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lpsleuth/lpsleuth/feascheck"
	"github.com/lpsleuth/lpsleuth/lpfile"
	"github.com/lpsleuth/lpsleuth/mip"
	"github.com/lpsleuth/lpsleuth/report"
)

var checkCmd = &cobra.Command{
	Use:   "check <model.lp> --point x=1,y=2.5",
	Short: "Check a candidate point against a model",
	Long: `Check evaluates the model at the given point and reports constraint,
bound and integrality violations. With --duals it also checks dual sign
admissibility and complementary slackness.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("point", "", "comma-separated variable assignments, e.g. x=1,y=2.5")
	checkCmd.Flags().String("duals", "", "comma-separated dual assignments per constraint name")
	checkCmd.Flags().Float64("tol", 0, "violation tolerance (0 = default)")
	checkCmd.MarkFlagRequired("point")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	model, err := lpfile.ParseFile(args[0])
	if err != nil {
		return err
	}

	pointArg, _ := cmd.Flags().GetString("point")
	point, err := parsePoint(model, pointArg)
	if err != nil {
		return err
	}

	tol, _ := cmd.Flags().GetFloat64("tol")
	if tol == 0 {
		tol = cfg.Check.Tolerance
	}
	checker := &feascheck.Checker{Tol: tol}

	var rep *feascheck.Report
	if dualsArg, _ := cmd.Flags().GetString("duals"); dualsArg != "" {
		duals, err := parseDuals(model, dualsArg)
		if err != nil {
			return err
		}
		rep = checker.CheckDuals(model, point, duals)
	} else {
		rep = checker.CheckPoint(model, point)
	}

	renderer := &report.Renderer{Color: useColor(cmd)}
	renderer.Feasibility(os.Stdout, model.Name(), rep)

	if !rep.PrimalFeasible() {
		return fmt.Errorf("point is infeasible")
	}
	return nil
}

func parsePoint(model *mip.Model, arg string) (map[*mip.Variable]float64, error) {
	byName := make(map[string]*mip.Variable)
	for _, v := range model.Variables() {
		byName[v.Name()] = v
	}

	point := make(map[*mip.Variable]float64)
	for _, pair := range strings.Split(arg, ",") {
		name, value, err := splitAssignment(pair)
		if err != nil {
			return nil, err
		}
		v, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown variable %q", name)
		}
		point[v] = value
	}
	return point, nil
}

func parseDuals(model *mip.Model, arg string) (map[*mip.Constraint]float64, error) {
	byName := make(map[string]*mip.Constraint)
	for _, c := range model.Constraints() {
		byName[c.Name()] = c
	}

	duals := make(map[*mip.Constraint]float64)
	for _, pair := range strings.Split(arg, ",") {
		name, value, err := splitAssignment(pair)
		if err != nil {
			return nil, err
		}
		c, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown constraint %q", name)
		}
		duals[c] = value
	}
	return duals, nil
}

func splitAssignment(pair string) (string, float64, error) {
	name, raw, found := strings.Cut(strings.TrimSpace(pair), "=")
	if !found {
		return "", 0, fmt.Errorf("bad assignment %q, want name=value", pair)
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return "", 0, fmt.Errorf("bad value in %q: %w", pair, err)
	}
	return strings.TrimSpace(name), value, nil
}
