// Command luke-linter checks source files for required documentation
// properties.
//
// Documentation lives in block comments as tagged sections:
//
//	/*
//	[[OPEN:masterFormula]][[CLOSE:masterFormula]]
//	[[OPEN:author]]
//	Ada Lovelace
//	[[CLOSE:author]]
//	*/
//
// The first block in a file documents the file; a block immediately above
// a function documents that function. Which properties are required comes
// from built-in defaults, a project configuration file, and host settings,
// merged field by field.
//
// # Commands
//
//	check     analyze files and report missing properties
//	template  print a comment block that satisfies validation
//	fix       insert file templates where blocks are missing
//	schema    print the JSON Schema for project configuration
//	version   print build metadata
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/luketych/luke-linter/log"
	"github.com/luketych/luke-linter/profile"
	"github.com/luketych/luke-linter/version"
)

var (
	// errUsage marks errors that should exit with a usage status.
	errUsage = errors.New("invalid usage")
	// errFindings signals findings at or above the fail-on threshold. It is
	// never printed; the diagnostics already were.
	errFindings = errors.New("findings at or above threshold")
)

func main() {
	os.Exit(run())
}

func run() int {
	logCfg := log.NewConfig()
	profCfg := profile.NewConfig()
	profiler := profCfg.NewProfiler()

	rootCmd := &cobra.Command{
		Use:   "luke-linter",
		Short: "Check source files for required documentation properties",
		Long: `luke-linter scans block comments for property tags like [[OPEN:author]] and
reports required properties that are missing, per file and per function.
Requirements come from built-in defaults, a project configuration file, and
host settings, merged field by field.`,
		Version:       version.String(),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			handler, err := logCfg.NewHandler(cmd.ErrOrStderr())
			if err != nil {
				return fmt.Errorf("%w: %w", errUsage, err)
			}

			slog.SetDefault(slog.New(handler))

			return profiler.Start()
		},
	}

	logCfg.RegisterFlags(rootCmd.PersistentFlags())
	profCfg.RegisterFlags(rootCmd.PersistentFlags())

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", errUsage, err)
	})

	rootCmd.AddCommand(
		newCheckCmd(),
		newTemplateCmd(),
		newFixCmd(),
		newSchemaCmd(),
		newVersionCmd(),
	)

	completionErr := logCfg.RegisterCompletions(rootCmd)
	if completionErr != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", completionErr)
	}

	completionErr = profCfg.RegisterCompletions(rootCmd)
	if completionErr != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", completionErr)
	}

	err := rootCmd.Execute()

	stopErr := profiler.Stop()
	if stopErr != nil {
		fmt.Fprintf(os.Stderr, "stop profiling: %v\n", stopErr)
	}

	switch {
	case err == nil:
		return 0

	case errors.Is(err, errFindings):
		return 1

	case errors.Is(err, errUsage):
		fmt.Fprintf(os.Stderr, "%v\n", err)

		return 2

	default:
		fmt.Fprintf(os.Stderr, "%v\n", err)

		return 1
	}
}

// registerFixedCompletion wires a fixed value list to a flag, reporting
// registration failures without aborting startup.
func registerFixedCompletion(cmd *cobra.Command, flag string, values []string) {
	err := cmd.RegisterFlagCompletionFunc(flag,
		cobra.FixedCompletions(values, cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
	}
}
