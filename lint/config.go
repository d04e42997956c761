package lint

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/luketych/luke-linter/schema"
	"github.com/luketych/luke-linter/source"
)

// Flags holds CLI flag names for analysis configuration, allowing callers
// to customize flag names while keeping sensible defaults.
type Flags struct {
	Project  string
	Settings string
	Ext      string
	Ignore   string
	Enabled  string
}

// Config holds CLI flag values for analysis configuration.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Use [Config.NewRunner] to build the full
// analysis pipeline, or [Config.NewStore] when only the resolved schema
// is needed.
type Config struct {
	Flags       Flags
	ProjectFile string
	Settings    string
	Extensions  []string
	Ignore      []string
	Enabled     bool
}

// NewConfig returns a new [Config] with default flag names.
func NewConfig() *Config {
	f := Flags{
		Project:  "config",
		Settings: "settings",
		Ext:      "ext",
		Ignore:   "ignore",
		Enabled:  "enabled",
	}

	return &Config{Flags: f, Enabled: true}
}

// RegisterFlags adds analysis flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	c.RegisterSchemaFlags(flags)

	flags.StringArrayVar(&c.Extensions, c.Flags.Ext, nil,
		"file extension to analyze, added to the settings allowlist (repeatable)")
	flags.StringArrayVar(&c.Ignore, c.Flags.Ignore, nil,
		"glob pattern to skip, added to the settings patterns (repeatable)")
	flags.BoolVar(&c.Enabled, c.Flags.Enabled, true,
		"run analysis; false disables the engine entirely")
}

// RegisterSchemaFlags adds only the configuration-source flags, for
// commands that resolve the schema without running a batch.
func (c *Config) RegisterSchemaFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&c.ProjectFile, c.Flags.Project, "c", schema.DefaultProjectFile,
		"project configuration file (JSON)")
	flags.StringVar(&c.Settings, c.Flags.Settings, "",
		"host settings file (YAML)")
}

// RegisterCompletions registers shell completions for analysis flags on
// cmd. The project and settings flags keep cobra's default file
// completion.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	exts := slices.Sorted(maps.Keys(source.DefaultRegistry()))

	err := cmd.RegisterFlagCompletionFunc(c.Flags.Ext,
		cobra.FixedCompletions(exts, cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Ext, err)
	}

	noFileComp := func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	err = cmd.RegisterFlagCompletionFunc(c.Flags.Ignore, noFileComp)
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Ignore, err)
	}

	return nil
}

// NewStore builds and reloads the schema store from the project file and
// the settings overlay, highest priority last.
func (c *Config) NewStore() (*schema.Store, error) {
	settings, err := LoadSettings(c.Settings)
	if err != nil {
		return nil, err
	}

	return c.store(settings)
}

// NewRunner builds the full analysis pipeline from this Config: host
// settings, the layered schema store, an [Analyzer], and a [Runner].
// Extensions and ignore patterns from flags add to those from settings;
// the engine runs only when neither surface disables it.
func (c *Config) NewRunner(opts ...RunnerOption) (*Runner, error) {
	settings, err := LoadSettings(c.Settings)
	if err != nil {
		return nil, err
	}

	store, err := c.store(settings)
	if err != nil {
		return nil, err
	}

	ignore, err := CompileIgnore(append(settings.Ignore, c.Ignore...))
	if err != nil {
		return nil, err
	}

	base := []RunnerOption{
		WithExtensions(append(settings.Extensions, c.Extensions...)...),
		WithIgnore(ignore...),
		WithEnabled(c.Enabled && settings.EngineEnabled()),
	}

	analyzer := NewAnalyzer(WithStore(store))

	return NewRunner(analyzer, append(base, opts...)...), nil
}

func (c *Config) store(settings Settings) (*schema.Store, error) {
	store := schema.NewStore(
		schema.WithProjectFile(c.ProjectFile),
		schema.WithLayer(settings.Layer()),
	)

	if _, err := store.Reload(); err != nil {
		return nil, err
	}

	return store, nil
}
