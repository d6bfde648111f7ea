package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/roach88/recipebox/internal/seed"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid   bool `json:"valid"`
	Recipes int  `json:"recipes"`
}

// ValidationDetails locates a seed validation failure.
type ValidationDetails struct {
	Index int    `json:"index"`
	Field string `json:"field,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <seed.yaml>",
		Short: "Validate a seed catalog file",
		Long: `Validate a seed catalog file without starting the server.

Every record is checked against the recipe schema: positive unique ids,
non-blank title, category and instructions, at least one ingredient and a
YYYY-MM-DD date_added.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
	formatter.VerboseLog("Validating %s", path)

	recipes, err := seed.Load(path)
	if err != nil {
		var vErr *seed.ValidationError
		switch {
		case errors.As(err, &vErr):
			_ = formatter.Error(ErrCodeInvalidSeed, vErr.Error(), ValidationDetails{
				Index: vErr.Index,
				Field: vErr.Field,
			})
			return WrapExitError(ExitFailure, "seed file invalid", err)
		case errors.Is(err, seed.ErrEmpty):
			_ = formatter.Error(ErrCodeEmptySeed, err.Error(), nil)
			return WrapExitError(ExitFailure, "seed file invalid", err)
		case errors.As(err, new(*fs.PathError)):
			_ = formatter.Error(ErrCodeReadFailed, err.Error(), nil)
			return WrapExitError(ExitCommandError, "failed to read seed file", err)
		default:
			_ = formatter.Error(ErrCodeMalformedSeed, err.Error(), nil)
			return WrapExitError(ExitFailure, "seed file invalid", err)
		}
	}

	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true, Recipes: len(recipes)})
	}
	return formatter.Success(fmt.Sprintf("✓ %d recipe(s) valid", len(recipes)))
}
