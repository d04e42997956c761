package main

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/luketych/luke-linter/lint"
	"github.com/luketych/luke-linter/schema"
	"github.com/luketych/luke-linter/source"
)

func newTemplateCmd() *cobra.Command {
	cfg := lint.NewConfig()

	var (
		scopeName string
		langName  string
	)

	cmd := &cobra.Command{
		Use:   "template [flags]",
		Short: "Print a comment block that satisfies validation",
		Long: `template prints a comment block carrying the master marker and one empty
tag pair per property defined for the scope. Checking the printed block
yields zero findings, so it works as a starting point for new files.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTemplate(cmd, cfg, scopeName, langName)
		},
	}

	cfg.RegisterSchemaFlags(cmd.Flags())

	cmd.Flags().StringVar(&scopeName, "scope", string(schema.ScopeFile),
		fmt.Sprintf("template scope, one of: %s", scopeNames()))
	cmd.Flags().StringVar(&langName, "lang", source.CStyle.Name,
		fmt.Sprintf("language for comment delimiters, one of: %s", languageNames()))

	registerFixedCompletion(cmd, "scope", scopeNames())
	registerFixedCompletion(cmd, "lang", languageNames())

	return cmd
}

func runTemplate(cmd *cobra.Command, cfg *lint.Config, scopeName, langName string) error {
	sc, err := schema.ParseScope(scopeName)
	if err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}

	lang, ok := languageByName(langName)
	if !ok {
		return fmt.Errorf("%w: unknown language %q", errUsage, langName)
	}

	store, err := cfg.NewStore()
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(cmd.OutOrStdout(), lint.Template(sc, store.Resolve(), lang))
	if err != nil {
		return fmt.Errorf("write template: %w", err)
	}

	return nil
}

func scopeNames() []string {
	scopes := schema.Scopes()

	names := make([]string, 0, len(scopes))
	for _, sc := range scopes {
		names = append(names, string(sc))
	}

	return names
}

// languageByName resolves a language flag value: a profile name such as
// "python", or a file extension with or without its dot.
func languageByName(name string) (source.Language, bool) {
	registry := source.DefaultRegistry()

	for _, lang := range registry {
		if strings.EqualFold(lang.Name, name) {
			return lang, true
		}
	}

	ext := strings.ToLower(name)
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	lang, ok := registry[ext]

	return lang, ok
}

func languageNames() []string {
	unique := make(map[string]struct{})
	for _, lang := range source.DefaultRegistry() {
		unique[lang.Name] = struct{}{}
	}

	return slices.Sorted(maps.Keys(unique))
}
