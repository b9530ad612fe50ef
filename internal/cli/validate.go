package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trnamod/trnamod/internal/mods"
	"github.com/trnamod/trnamod/internal/report"
)

// ValidationIssue is one problem found while validating overrides.
type ValidationIssue struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid   bool              `json:"valid"`
	Files   int               `json:"files"`
	Entries int               `json:"entries"`
	Issues  []ValidationIssue `json:"issues,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <mods-dir>",
		Short: "Validate catalogue override files",
		Long: `Validate a directory of CUE catalogue overrides without applying them.

Checks schema conformance, entry conversion, and that the merged
catalogue still satisfies every invariant (non-empty incompatible sets,
parent excluded, known positions). All problems are reported, not just
the first.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, modsDir string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	result := ValidationResult{Valid: true}

	loadResult, loadErrors := LoadOverrides(modsDir, LoadModeCollectAll)
	if loadResult != nil {
		result.Files = loadResult.FileCount
		result.Entries = len(loadResult.Entries)
	}
	for _, err := range loadErrors {
		result.Valid = false
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			result.Issues = append(result.Issues, ValidationIssue{Code: loadErr.Code, Message: loadErr.Error()})
		} else {
			result.Issues = append(result.Issues, ValidationIssue{Code: ErrCodeGeneric, Message: err.Error()})
		}
	}

	// The merge enforces the catalogue invariants over the combined set.
	if loadResult != nil && len(loadResult.Entries) > 0 {
		if _, err := mods.Eukaryotic().Merge(loadResult.Entries); err != nil {
			result.Valid = false
			var buildErr *mods.BuildError
			if errors.As(err, &buildErr) {
				result.Issues = append(result.Issues, ValidationIssue{Code: string(buildErr.Code), Message: buildErr.Error()})
			} else {
				result.Issues = append(result.Issues, ValidationIssue{Code: ErrCodeCatalogue, Message: err.Error()})
			}
		}
	}

	if opts.Format == string(report.FormatJSON) {
		if err := report.WriteJSON(formatter.Writer, result); err != nil {
			return WrapExitError(ExitCommandError, "writing result", err)
		}
	} else {
		if result.Valid {
			fmt.Fprintf(formatter.Writer, "valid: %d entries in %d file(s)\n", result.Entries, result.Files)
		} else {
			for _, issue := range result.Issues {
				fmt.Fprintf(formatter.Writer, "Error [%s]: %s\n", issue.Code, issue.Message)
			}
		}
	}

	if !result.Valid {
		return &ExitError{Code: ExitFailure, Message: "validation failed"}
	}
	return nil
}
