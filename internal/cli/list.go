package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/recipebox/internal/recipe"
	"github.com/roach88/recipebox/internal/web"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Category string
	Seed     string
}

// ListResult is the JSON payload of the list command.
type ListResult struct {
	Recipes    []recipe.Recipe `json:"recipes"`
	Categories []string        `json:"categories"`
	Selected   string          `json:"selected_category,omitempty"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the seed catalog",
		Long: `Print the recipes a fresh server would start with.

The --category filter behaves like the web list: "All" or an empty value
shows everything, any other value must match a category exactly.

Example:
  recipebox list
  recipebox list --category Italian --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Category, "category", "", `only show this category ("All" for every recipe)`)
	cmd.Flags().StringVar(&opts.Seed, "seed", "", "seed catalog YAML file (default: embedded catalog)")

	return cmd
}

func runList(opts *ListOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	recipes, err := loadCatalog(opts.Seed)
	if err != nil {
		_ = formatter.Error(ErrCodeReadFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to load seed catalog", err)
	}
	formatter.VerboseLog("Loaded %d recipe(s)", len(recipes))

	st, err := openSeededStore(ctx, recipes)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open store", err)
	}
	defer st.Close()

	result := ListResult{Selected: opts.Category}
	if opts.Category == "" || opts.Category == web.AllCategories {
		result.Recipes, err = st.List(ctx)
	} else {
		result.Recipes, err = st.ListByCategory(ctx, recipe.Normalize(opts.Category))
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list recipes", err)
	}

	result.Categories, err = st.Categories(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list categories", err)
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	return formatter.Success(formatTable(result.Recipes))
}

// formatTable renders recipes as aligned text columns.
func formatTable(recipes []recipe.Recipe) string {
	if len(recipes) == 0 {
		return "No recipes found."
	}

	var b strings.Builder
	tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCATEGORY\tADDED\tTITLE")
	for _, r := range recipes {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", r.ID, r.Category, r.DateAdded, r.Title)
	}
	tw.Flush()

	return strings.TrimRight(b.String(), "\n")
}
