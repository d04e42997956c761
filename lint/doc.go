// Package lint enforces property-tag documentation on source files.
//
// A conforming document carries block comments whose text embeds property
// tags in the [[OPEN:name]]...[[CLOSE:name]] wire format: one block at the
// top of the file for file-level properties, and one block immediately
// above each function declaration for function-level properties. This
// package ties the lower layers together: it locates blocks and functions
// with the source package's heuristics, scans block text into property
// mappings with the proptag package, and validates the mappings against a
// resolved schema snapshot.
//
// # Analysis Pipeline
//
// [Analyzer.File] processes one document in five steps:
//
//  1. Pick a language profile from the path's extension.
//  2. Capture one schema snapshot; a concurrent reload never changes
//     rules mid-document.
//  3. Locate the first comment block and validate it against the file
//     scope, or emit the file-scope block-absence finding.
//  4. Locate function declarations (matches inside comment blocks are
//     discarded), associate each with its preceding comment block, and
//     validate against the function scope, or emit a per-function
//     block-absence finding.
//  5. Assemble a [FileReport] in declaration order.
//
// # Validation Rules
//
// [Validate] applies rules in a fixed order. The master marker rule runs
// first: every block must contain the [MasterProperty] tag, and its
// absence is an error-severity finding regardless of configuration. The
// schema-driven rules follow in resolved property order: a required
// property absent from the mapping produces a finding with its configured
// severity; presence satisfies a rule without content inspection; tags
// not defined for the scope are never flagged, because the schema is
// additive rather than closed.
//
// File and function scopes use independent property partitions. A file
// block missing a function-level property is not an error, and vice
// versa.
//
// # Positions
//
// Findings carry byte offsets relative to the comment block's own text.
// Hosts add the block's absolute start before converting to line and
// column; the report package does this for the CLI. The engine never
// reports absolute document offsets, which keeps it testable on raw
// strings.
//
// # Batch Runs
//
// [Runner.Run] walks paths sequentially and analyzes one document fully
// before the next. Files are admitted by an extension allowlist
// (defaulting to the language registry's known extensions) and filtered
// by ignore globs. A file that cannot be read is logged and counted in
// [Summary.Failures], never fatal: the batch always runs to the end.
// Finding counts and failure counts stay separate so a partially failed
// run is distinguishable from a clean one.
//
// # Templates
//
// [Template] renders a comment block that satisfies validation for a
// scope: the master marker plus an empty tag pair per configured
// property. [InsertFileTemplate] prepends one to a document lacking a
// file block. Scanning and validating a generated template always yields
// zero findings.
//
// # CLI Integration
//
// [Config] bridges CLI flags to the package, following the RegisterFlags
// and RegisterCompletions pattern. Host settings come from a YAML file
// ([Settings]): an engine toggle, extension and ignore lists, and inline
// property overrides that become the highest-priority schema layer.
//
// # Errors
//
// Nothing in the analysis path is fatal. Scan ambiguities degrade to
// absent tags, absent blocks surface as findings, and batch I/O failures
// are counted. The only errors returned are configuration errors:
// [ErrReadSettings] and [ErrParseSettings] from the settings loader, and
// the schema package's sentinels passed through [Config.NewStore] and
// [Config.NewRunner].
package lint
