// Package log provides structured logging handler construction for use with
// [log/slog].
//
// It supports multiple output formats ([FormatText], [FormatJSON], and
// [FormatLogfmt]) and severity levels ([LevelError], [LevelWarn],
// [LevelInfo], and [LevelDebug]). Use [NewHandler] to create a handler
// directly, or use [Config] with CLI flag integration via
// [github.com/spf13/pflag] and shell completion support via
// [github.com/spf13/cobra].
//
// Typical usage creates a [Config], registers flags, then builds a handler
// at startup:
//
//	cfg := log.NewConfig()
//	cfg.RegisterFlags(rootCmd.PersistentFlags())
//	cfg.RegisterCompletions(rootCmd)
//
//	handler, err := cfg.NewHandler(os.Stderr)
//	slog.SetDefault(slog.New(handler))
//
// [FormatText] renders through [charm.land/log/v2] for interactive use;
// [FormatJSON] and [FormatLogfmt] use the [log/slog] handlers and include
// source locations for machine consumption.
package log
