package main

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/untillpro/goutils/cobrau"
	"github.com/untillpro/goutils/logger"
)

//go:embed version
var version string

func main() {
	if err := execRootCmd(os.Args, version); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func execRootCmd(args []string, ver string) error {
	rootCmd := cobrau.PrepareRootCmd(
		"tossform",
		"Collects, validates and fills toss forms in HTML documents",
		args,
		ver,
		newCollectCmd(),
		newValidateCmd(),
		newFillCmd(),
	)

	return cobrau.ExecCommandAndCatchInterrupt(rootCmd)
}

// applyVerbose raises the log level when the root --verbose flag is set.
func applyVerbose(cmd *cobra.Command) {
	if v, err := cmd.Flags().GetBool("verbose"); err == nil && v {
		logger.SetLogLevel(logger.LogLevelVerbose)
	}
}

func newCollectCmd() *cobra.Command {
	p := &params{}
	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Collects the form and prints the result as JSON",
		Long: `Collects every field of the form and prints
{obj, missingFields, invalidFields, isOkay, onlyOneError, fieldToFocus}.
With --data the form is filled from a JSON object first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			applyVerbose(cmd)
			return runCollect(p, cmd.OutOrStdout())
		},
	}
	p.bind(cmd)
	return cmd
}

func newValidateCmd() *cobra.Command {
	p := &params{}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validates every field and writes the document with messages rendered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			applyVerbose(cmd)
			return runValidate(p, cmd.OutOrStdout())
		},
	}
	p.bind(cmd)
	return cmd
}

func newFillCmd() *cobra.Command {
	p := &params{}
	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Fills the form from a JSON object and writes the document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			applyVerbose(cmd)
			return runFill(p, cmd.OutOrStdout())
		},
	}
	p.bind(cmd)
	if err := cmd.MarkFlagRequired("data"); err != nil {
		panic(err)
	}
	return cmd
}
