package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/luketych/luke-linter/lint"
	"github.com/luketych/luke-linter/schema"
	"github.com/luketych/luke-linter/source"
)

func newFixCmd() *cobra.Command {
	cfg := lint.NewConfig()

	var (
		diffMode bool
		listMode bool
	)

	cmd := &cobra.Command{
		Use:   "fix [flags] [path ...]",
		Short: "Insert file templates where documentation blocks are missing",
		Long: `fix prepends a file-scope template to every analyzed file that has no
comment block, so a subsequent check reports no file-level findings.
Function blocks are not inserted; their placement needs human judgment.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFix(cmd, cfg, diffMode, listMode, args)
		},
	}

	cfg.RegisterFlags(cmd.Flags())

	cmd.Flags().BoolVarP(&diffMode, "diff", "d", false,
		"show changes without writing")
	cmd.Flags().BoolVarP(&listMode, "list", "l", false,
		"only list files that would change")

	completionErr := cfg.RegisterCompletions(cmd)
	if completionErr != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "register completions: %v\n", completionErr)
	}

	return cmd
}

func runFix(cmd *cobra.Command, cfg *lint.Config, diffMode, listMode bool, args []string) error {
	if diffMode && listMode {
		return fmt.Errorf("%w: --diff and --list are mutually exclusive", errUsage)
	}

	registry := source.DefaultRegistry()
	out := cmd.OutOrStdout()

	failed := 0

	// Resolved from the runner's own store, so the inserted templates and
	// the analysis see the same schema.
	var snap *schema.Snapshot

	runner, err := cfg.NewRunner(lint.WithHandler(func(fr lint.FileReport) {
		result, changed := lint.InsertFileTemplate(fr.Source, snap, registry.ForPath(fr.Path))
		if !changed {
			return
		}

		switch {
		case diffMode:
			fmt.Fprintf(out, "--- %s\n+++ %s\n", fr.Path, fr.Path)
			printDiff(out, fr.Source, result)

		case listMode:
			fmt.Fprintln(out, fr.Path)

		default:
			writeErr := os.WriteFile(fr.Path, []byte(result), 0o644)
			if writeErr != nil {
				slog.Warn("write failed, continuing batch",
					slog.String("path", fr.Path),
					slog.Any("error", writeErr))

				failed++
			}
		}
	}))
	if err != nil {
		return err
	}

	snap = runner.Store().Resolve()

	if !runner.Enabled() {
		slog.Debug("engine disabled, skipping fix")

		return nil
	}

	if len(args) == 0 {
		args = []string{"."}
	}

	summary := runner.Run(args...)

	if total := failed + summary.Failures; total > 0 {
		return fmt.Errorf("%d files could not be processed", total)
	}

	return nil
}

// printDiff prints a simple unified diff.
func printDiff(w io.Writer, before, after string) {
	aLines := strings.Split(before, "\n")
	bLines := strings.Split(after, "\n")

	// Line-by-line with a resync scan; not minimal, but an inserted
	// template run resyncs at the first unchanged line.
	ai, bi := 0, 0
	for ai < len(aLines) || bi < len(bLines) {
		switch {
		case ai >= len(aLines):
			fmt.Fprintf(w, "+%s\n", bLines[bi])

			bi++

		case bi >= len(bLines):
			fmt.Fprintf(w, "-%s\n", aLines[ai])

			ai++

		case aLines[ai] == bLines[bi]:
			fmt.Fprintf(w, " %s\n", aLines[ai])

			ai++
			bi++

		default:
			found := false
			for lookahead := 1; ai+lookahead < len(aLines); lookahead++ {
				if aLines[ai+lookahead] == bLines[bi] {
					for j := range lookahead {
						fmt.Fprintf(w, "-%s\n", aLines[ai+j])
					}

					ai += lookahead
					found = true

					break
				}
			}
			if !found {
				for lookahead := 1; bi+lookahead < len(bLines); lookahead++ {
					if bLines[bi+lookahead] == aLines[ai] {
						for j := range lookahead {
							fmt.Fprintf(w, "+%s\n", bLines[bi+j])
						}

						bi += lookahead
						found = true

						break
					}
				}
			}
			if !found {
				fmt.Fprintf(w, "-%s\n", aLines[ai])
				fmt.Fprintf(w, "+%s\n", bLines[bi])

				ai++
				bi++
			}
		}
	}
}
