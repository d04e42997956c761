package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luketych/luke-linter/lint"
	"github.com/luketych/luke-linter/report"
	"github.com/luketych/luke-linter/schema"
	"github.com/luketych/luke-linter/source"
	"github.com/luketych/luke-linter/stringtest"
)

// runCommand executes cmd with args and returns its combined output.
func runCommand(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	// The production root silences cobra's own error and usage printing;
	// match it here so assertions see only command output.
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	if args == nil {
		// Keep cobra off os.Args, which holds test flags here.
		args = []string{}
	}

	var buf bytes.Buffer

	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return buf.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

// cleanSource returns a file whose leading block satisfies the default
// schema.
func cleanSource() string {
	return lint.Template(schema.ScopeFile, schema.NewStore().Resolve(), source.CStyle)
}

func TestParseFailOn(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input       string
		want        schema.Severity
		wantEnabled bool
		expectError bool
	}{
		"error": {
			input:       "error",
			want:        schema.SeverityError,
			wantEnabled: true,
		},
		"warning": {
			input:       "warning",
			want:        schema.SeverityWarning,
			wantEnabled: true,
		},
		"info": {
			input:       "info",
			want:        schema.SeverityInfo,
			wantEnabled: true,
		},
		"never": {
			input:       "never",
			wantEnabled: false,
		},
		"never case insensitive": {
			input:       "NEVER",
			wantEnabled: false,
		},
		"unknown": {
			input:       "fatal",
			expectError: true,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			sev, enabled, err := parseFailOn(tc.input)
			if tc.expectError {
				require.ErrorIs(t, err, errUsage)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.wantEnabled, enabled)
			assert.Equal(t, tc.want, sev)
		})
	}
}

func TestCheckCmd_CleanFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "clean.js", cleanSource())

	out, err := runCommand(t, newCheckCmd(), dir)
	require.NoError(t, err)

	assert.Equal(t, "1 files, 0 findings\n", out)
}

func TestCheckCmd_Findings(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "bare.js", "function add(a, b) { return a + b; }\n")

	out, err := runCommand(t, newCheckCmd(), path)
	require.ErrorIs(t, err, errFindings)

	want := stringtest.JoinLF(
		path+":1:1: error: No documentation block found at top of file",
		path+`:1:1: error: No documentation block found for function "add" (add)`,
		"1 files, 2 findings",
		"",
	)
	assert.Equal(t, want, out)
}

func TestCheckCmd_FailOnNever(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "bare.js", "function add(a, b) { return a + b; }\n")

	out, err := runCommand(t, newCheckCmd(), "--fail-on", "never", path)
	require.NoError(t, err)

	assert.Contains(t, out, "1 files, 2 findings")
}

func TestCheckCmd_JSON(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "bare.js", "function add(a, b) { return a + b; }\n")

	out, err := runCommand(t, newCheckCmd(), "--format", "json", path)
	require.ErrorIs(t, err, errFindings)

	var decoded struct {
		Diagnostics []report.Diagnostic `json:"diagnostics"`
		Files       int                 `json:"files"`
		Failures    int                 `json:"failures"`
		Counts      map[string]int      `json:"counts"`
	}

	require.NoError(t, json.Unmarshal([]byte(out), &decoded))

	assert.Len(t, decoded.Diagnostics, 2)
	assert.Equal(t, 1, decoded.Files)
	assert.Zero(t, decoded.Failures)
	assert.Equal(t, map[string]int{"error": 2}, decoded.Counts)
}

func TestCheckCmd_Disabled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "bare.js", "function add(a, b) { return a + b; }\n")

	out, err := runCommand(t, newCheckCmd(), "--enabled=false", dir)
	require.NoError(t, err)

	assert.Empty(t, out)
}

func TestCheckCmd_UnknownFormat(t *testing.T) {
	t.Parallel()

	_, err := runCommand(t, newCheckCmd(), "--format", "yaml", t.TempDir())
	require.ErrorIs(t, err, errUsage)
}

func TestFixCmd_List(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	bare := writeFile(t, dir, "bare.js", "const limit = 10;\n")
	writeFile(t, dir, "clean.js", cleanSource())

	out, err := runCommand(t, newFixCmd(), "--list", dir)
	require.NoError(t, err)

	assert.Equal(t, bare+"\n", out)
}

func TestFixCmd_Diff(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	bare := writeFile(t, dir, "bare.js", "const limit = 10;\n")

	out, err := runCommand(t, newFixCmd(), "--diff", dir)
	require.NoError(t, err)

	assert.Contains(t, out, "--- "+bare)
	assert.Contains(t, out, "+++ "+bare)
	assert.Contains(t, out, "+/*")
	assert.Contains(t, out, " const limit = 10;")
}

func TestFixCmd_Write(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	bare := writeFile(t, dir, "bare.js", "const limit = 10;\n")
	clean := writeFile(t, dir, "clean.js", cleanSource())

	_, err := runCommand(t, newFixCmd(), dir)
	require.NoError(t, err)

	fixed, err := os.ReadFile(bare)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(fixed), "/*"))
	assert.True(t, strings.HasSuffix(string(fixed), "const limit = 10;\n"))

	// The fixed file now passes file-scope validation.
	fr := lint.NewAnalyzer().File(bare, string(fixed))
	assert.Empty(t, fr.Findings)

	// Files that already have a block stay untouched.
	unchanged, err := os.ReadFile(clean)
	require.NoError(t, err)
	assert.Equal(t, cleanSource(), string(unchanged))
}

func TestFixCmd_ConfiguredSchema(t *testing.T) {
	t.Parallel()

	project := writeFile(t, t.TempDir(), "project.json",
		`{"scopes": {"file": ["license"]}}`)

	dir := t.TempDir()
	bare := writeFile(t, dir, "bare.js", "const limit = 10;\n")

	_, err := runCommand(t, newFixCmd(), "--config", project, dir)
	require.NoError(t, err)

	fixed, err := os.ReadFile(bare)
	require.NoError(t, err)
	assert.Contains(t, string(fixed), "[[OPEN:license]]")

	// The fixed file is clean under the same configuration.
	store := schema.NewStore(schema.WithProjectFile(project))
	_, err = store.Reload()
	require.NoError(t, err)

	fr := lint.NewAnalyzer(lint.WithStore(store)).File(bare, string(fixed))
	assert.Empty(t, fr.Findings)
}

func TestFixCmd_DiffAndListConflict(t *testing.T) {
	t.Parallel()

	_, err := runCommand(t, newFixCmd(), "--diff", "--list", t.TempDir())
	require.ErrorIs(t, err, errUsage)
}

func TestTemplateCmd(t *testing.T) {
	t.Parallel()

	out, err := runCommand(t, newTemplateCmd())
	require.NoError(t, err)

	assert.Equal(t, lint.Template(schema.ScopeFile, schema.NewStore().Resolve(), source.CStyle), out)
}

func TestTemplateCmd_FunctionScopePython(t *testing.T) {
	t.Parallel()

	out, err := runCommand(t, newTemplateCmd(), "--scope", "function", "--lang", "python")
	require.NoError(t, err)

	assert.Equal(t, lint.Template(schema.ScopeFunction, schema.NewStore().Resolve(), source.Python), out)
	assert.Contains(t, out, `"""`)
	assert.Contains(t, out, "[[OPEN:params]]")
}

func TestTemplateCmd_UnknownLanguage(t *testing.T) {
	t.Parallel()

	_, err := runCommand(t, newTemplateCmd(), "--lang", "fortran")
	require.ErrorIs(t, err, errUsage)
}

func TestTemplateCmd_UnknownScope(t *testing.T) {
	t.Parallel()

	_, err := runCommand(t, newTemplateCmd(), "--scope", "class")
	require.ErrorIs(t, err, errUsage)
}

func TestSchemaCmd(t *testing.T) {
	t.Parallel()

	out, err := runCommand(t, newSchemaCmd())
	require.NoError(t, err)

	var decoded map[string]any

	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "luke-linter project configuration", decoded["title"])
	assert.Equal(t, "object", decoded["type"])
	assert.Contains(t, decoded, "properties")
}

func TestVersionCmd(t *testing.T) {
	t.Parallel()

	out, err := runCommand(t, newVersionCmd())
	require.NoError(t, err)

	assert.Contains(t, out, "go version:")
	assert.Contains(t, out, "platform:")
}

func TestLanguageByName(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		want  string
		ok    bool
	}{
		"profile name":          {input: "python", want: "python", ok: true},
		"profile name go":       {input: "go", want: "go", ok: true},
		"profile name cstyle":   {input: "cstyle", want: "cstyle", ok: true},
		"upper case":            {input: "PYTHON", want: "python", ok: true},
		"extension with dot":    {input: ".ts", want: "cstyle", ok: true},
		"extension without dot": {input: "py", want: "python", ok: true},
		"unknown":               {input: "fortran", ok: false},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			lang, ok := languageByName(tc.input)

			require.Equal(t, tc.ok, ok)
			if ok {
				assert.Equal(t, tc.want, lang.Name)
			}
		})
	}
}

func TestLanguageNames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"cstyle", "go", "python"}, languageNames())
}

func TestScopeNames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"file", "function"}, scopeNames())
}

func TestPrintDiff(t *testing.T) {
	t.Parallel()

	before := stringtest.JoinLF("one", "two", "")
	after := stringtest.JoinLF("zero", "one", "two", "")

	var buf bytes.Buffer

	printDiff(&buf, before, after)

	assert.Equal(t, stringtest.JoinLF(
		"+zero",
		" one",
		" two",
		" ",
		"",
	), buf.String())
}
