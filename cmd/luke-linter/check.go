package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/luketych/luke-linter/lint"
	"github.com/luketych/luke-linter/report"
	"github.com/luketych/luke-linter/schema"
)

const (
	formatText = "text"
	formatJSON = "json"

	failOnNever = "never"
)

func newCheckCmd() *cobra.Command {
	cfg := lint.NewConfig()

	var (
		format string
		failOn string
	)

	cmd := &cobra.Command{
		Use:   "check [flags] [path ...]",
		Short: "Analyze files and report missing documentation properties",
		Long: `check analyzes the given files and directories (default: the current
directory) and reports required documentation properties that are missing.
Directories are walked recursively; which files participate is controlled
by the extension allowlist and ignore patterns.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, cfg, format, failOn, args)
		},
	}

	cfg.RegisterFlags(cmd.Flags())

	cmd.Flags().StringVar(&format, "format", formatText,
		fmt.Sprintf("output format, one of: %s", []string{formatText, formatJSON}))
	cmd.Flags().StringVar(&failOn, "fail-on", string(schema.SeverityError),
		fmt.Sprintf("lowest severity that fails the run, one of: %s",
			append(schema.GetAllSeverityStrings(), failOnNever)))

	completionErr := cfg.RegisterCompletions(cmd)
	if completionErr != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "register completions: %v\n", completionErr)
	}

	registerFixedCompletion(cmd, "format", []string{formatText, formatJSON})
	registerFixedCompletion(cmd, "fail-on", append(schema.GetAllSeverityStrings(), failOnNever))

	return cmd
}

func runCheck(cmd *cobra.Command, cfg *lint.Config, format, failOn string, args []string) error {
	switch strings.ToLower(format) {
	case formatText, formatJSON:
		format = strings.ToLower(format)
	default:
		return fmt.Errorf("%w: unknown format %q", errUsage, format)
	}

	threshold, failEnabled, err := parseFailOn(failOn)
	if err != nil {
		return err
	}

	var diags []report.Diagnostic

	runner, err := cfg.NewRunner(lint.WithHandler(func(fr lint.FileReport) {
		diags = append(diags, report.Flatten(fr)...)
	}))
	if err != nil {
		return err
	}

	if !runner.Enabled() {
		slog.Debug("engine disabled, skipping analysis")

		return nil
	}

	if len(args) == 0 {
		args = []string{"."}
	}

	summary := runner.Run(args...)
	out := cmd.OutOrStdout()

	if format == formatJSON {
		err = report.JSON(out, diags, summary)
	} else {
		p := report.NewPrinter(out)

		err = p.Print(diags)
		if err == nil {
			err = p.Summary(summary)
		}
	}

	if err != nil {
		return err
	}

	if failEnabled && summary.Total(threshold) > 0 {
		return errFindings
	}

	return nil
}

// parseFailOn maps the fail-on flag to a severity threshold. "never"
// disables failure entirely.
func parseFailOn(s string) (schema.Severity, bool, error) {
	if strings.EqualFold(s, failOnNever) {
		return "", false, nil
	}

	sev, err := schema.ParseSeverity(s)
	if err != nil {
		return "", false, fmt.Errorf("%w: %w", errUsage, err)
	}

	return sev, true, nil
}
