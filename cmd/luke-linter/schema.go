package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/luketych/luke-linter/schema"
)

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema for project configuration",
		Long: `schema prints the JSON Schema describing the project configuration file,
for editor validation and completion. Point an editor's JSON language
server at the output to validate ` + schema.DefaultProjectFile + `.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSchema(cmd)
		},
	}
}

func runSchema(cmd *cobra.Command) error {
	out, err := json.MarshalIndent(schema.ProjectSchema(), "", "  ")
	if err != nil {
		return fmt.Errorf("encode schema: %w", err)
	}

	out = append(out, '\n')

	_, err = cmd.OutOrStdout().Write(out)
	if err != nil {
		return fmt.Errorf("write schema: %w", err)
	}

	return nil
}
