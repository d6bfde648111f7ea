package seed

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"

	"github.com/roach88/recipebox/internal/recipe"
)

//go:embed recipes.yaml
var defaultCatalog []byte

//go:embed schema.cue
var schemaCUE string

// ErrEmpty is returned when a seed file holds no recipes.
var ErrEmpty = errors.New("seed file contains no recipes")

// ValidationError reports the first problem found in one seed record.
type ValidationError struct {
	Index   int    // position in the recipes list, 0-based
	Field   string // offending field, e.g. "title"
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("recipes[%d]: %s", e.Index, e.Message)
	}
	return fmt.Sprintf("recipes[%d].%s: %s", e.Index, e.Field, e.Message)
}

type file struct {
	Recipes []recipe.Recipe `yaml:"recipes"`
}

// Default returns the embedded seed catalog.
func Default() ([]recipe.Recipe, error) {
	recipes, err := Parse(defaultCatalog)
	if err != nil {
		return nil, fmt.Errorf("default catalog: %w", err)
	}
	return recipes, nil
}

// Load reads and validates a seed file from disk.
func Load(path string) ([]recipe.Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML seed data and validates every record.
// Unknown keys are rejected so typos do not silently drop data.
func Parse(data []byte) ([]recipe.Recipe, error) {
	var f file
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if len(f.Recipes) == 0 {
		return nil, ErrEmpty
	}

	if err := Validate(f.Recipes); err != nil {
		return nil, err
	}

	return f.Recipes, nil
}

// Validate checks records against the #Recipe schema, then checks id
// uniqueness and calendar dates.
func Validate(recipes []recipe.Recipe) error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile seed schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Recipe"))

	seen := make(map[int64]int, len(recipes))
	for i, r := range recipes {
		v := def.Unify(ctx.Encode(r))
		if err := v.Validate(cue.Concrete(true)); err != nil {
			return schemaError(i, err)
		}

		if prev, ok := seen[r.ID]; ok {
			return &ValidationError{
				Index:   i,
				Field:   "id",
				Message: fmt.Sprintf("id %d already used by recipes[%d]", r.ID, prev),
			}
		}
		seen[r.ID] = i

		if _, err := time.Parse(recipe.DateLayout, r.DateAdded); err != nil {
			return &ValidationError{
				Index:   i,
				Field:   "date_added",
				Message: fmt.Sprintf("%q is not a calendar date", r.DateAdded),
			}
		}
	}

	return nil
}

// schemaError converts the first CUE error into a ValidationError.
func schemaError(index int, err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &ValidationError{Index: index, Message: err.Error()}
	}

	first := errs[0]
	path := first.Path()
	if len(path) > 0 && strings.HasPrefix(path[0], "#") {
		path = path[1:]
	}
	format, args := first.Msg()

	return &ValidationError{
		Index:   index,
		Field:   strings.Join(path, "."),
		Message: fmt.Sprintf(format, args...),
	}
}
