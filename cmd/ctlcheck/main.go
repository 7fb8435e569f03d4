/*
Ctlcheck loads a Kripke model and evaluates CTL formulas against it.

Usage:

	ctlcheck check --model model.json --formula "AG(s -> AF h)" [--metrics]
	ctlcheck batch SUITE.toml

The check subcommand evaluates a single formula against a single model and
prints the states in its extension, plus the session's metrics table when
--metrics is given. The batch subcommand runs every (model, formula) pair
named in a TOML suite and prints a combined report along with the shared
session's metrics table.
*/
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rfielding/ctlcheck/checker"
	"github.com/rfielding/ctlcheck/ctl"
	"github.com/rfielding/ctlcheck/diagnostics"
	"github.com/rfielding/ctlcheck/kripke"
	"github.com/rfielding/ctlcheck/suite"
)

// Exit codes, per spec.md §6's CLI reference: 0 on success, and a distinct
// code per failure class so scripts can distinguish a malformed formula
// from a bad model without parsing stderr.
const (
	ExitSuccess = iota
	ExitUsageError
	ExitParseError
	ExitLoadError
	ExitCheckError
)

func main() {
	os.Exit(run())
}

func run() int {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		return exitCodeFor(err)
	}
	return ExitSuccess
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "ctlcheck",
		Short:        "ctlcheck evaluates CTL formulas against explicit-state Kripke models",
		SilenceUsage: true,
	}
	root.AddCommand(newCheckCommand(), newBatchCommand())
	return root
}

type cliError struct {
	code int
	err  error
}

func (e *cliError) Error() string { return e.err.Error() }
func (e *cliError) Unwrap() error { return e.err }

func exitCodeFor(err error) int {
	if ce, ok := err.(*cliError); ok {
		return ce.code
	}
	return ExitUsageError
}

func newCheckCommand() *cobra.Command {
	var modelPath, formulaSrc string
	var showMetrics bool
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Evaluate one CTL formula against a model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, modelPath, formulaSrc, showMetrics)
		},
	}
	cmd.Flags().StringVarP(&modelPath, "model", "m", "", "path to the Kripke model JSON file (required)")
	cmd.Flags().StringVarP(&formulaSrc, "formula", "f", "", "CTL formula to evaluate (required)")
	cmd.Flags().BoolVar(&showMetrics, "metrics", false, "print the check session's metrics table")
	cmd.MarkFlagRequired("model")
	cmd.MarkFlagRequired("formula")
	return cmd
}

func runCheck(cmd *cobra.Command, modelPath, formulaSrc string, showMetrics bool) error {
	formula, warnings, err := ctl.Parse(formulaSrc)
	if err != nil {
		return &cliError{code: ExitParseError, err: err}
	}
	for _, w := range warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
	}

	f, err := os.Open(modelPath)
	if err != nil {
		return &cliError{code: ExitLoadError, err: err}
	}
	defer f.Close()

	m, err := kripke.LoadModel(f)
	if err != nil {
		return &cliError{code: ExitLoadError, err: err}
	}

	session, err := checker.NewSession()
	if err != nil {
		return &cliError{code: ExitCheckError, err: err}
	}
	id, err := session.Check(m, formula)
	if err != nil {
		return &cliError{code: ExitCheckError, err: err}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, diagnostics.Build(m).StatesByLabel)
	fmt.Fprintf(out, "Sat(%s) = %v\n\n", formula, m.Extension(id))
	if showMetrics {
		fmt.Fprintln(out, session.Report())
	}
	return nil
}

func newBatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch SUITE.toml",
		Short: "Run a TOML suite of named checks against one model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, args[0])
		},
	}
	return cmd
}

func runBatch(cmd *cobra.Command, suitePath string) error {
	s, err := suite.Load(suitePath)
	if err != nil {
		return &cliError{code: ExitLoadError, err: err}
	}

	results, session, err := s.Run(cmd.Context())
	if err != nil {
		return &cliError{code: ExitCheckError, err: err}
	}

	out := cmd.OutOrStdout()
	failed := false
	for _, r := range results {
		for _, w := range r.Warnings {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning[%s]: %s\n", r.Name, w)
		}
		if r.Err != nil {
			failed = true
			fmt.Fprintf(out, "%s: FAIL (%s): %v\n", r.Name, r.Formula, r.Err)
			continue
		}
		fmt.Fprintf(out, "%s: Sat(%s) = %v\n", r.Name, r.Formula, r.Sat)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, session.Report())

	if failed {
		return &cliError{code: ExitCheckError, err: fmt.Errorf("one or more checks failed")}
	}
	return nil
}
