// Package cli implements the trnamod command tree.
//
// Commands share a small set of global flags (--format, --verbose,
// --config, --db) carried through RootOptions. Configuration precedence
// is flags over config file over defaults; the merge happens once in the
// root command's PersistentPreRunE so subcommands only ever see resolved
// options.
//
// Errors surface as ExitError values with stable exit codes: 0 success,
// 1 analysis found odd sequences or validation failed, 2 command error.
package cli
