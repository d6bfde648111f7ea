package recipe

import (
	"errors"
	"net/url"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Form field names accepted by the add-recipe endpoint.
const (
	FieldTitle        = "title"
	FieldCategory     = "category"
	FieldIngredients  = "ingredients"
	FieldInstructions = "instructions"
	FieldImage        = "image"
)

// ErrMissingFields is returned by Validate when a required field is blank.
var ErrMissingFields = errors.New("all fields (except image) are required")

// Submission is the raw add-recipe form exactly as the user typed it.
// Values are kept untrimmed so a failed submission can be echoed back.
type Submission struct {
	Title          string
	Category       string
	IngredientsRaw string
	Instructions   string
	Image          string
}

// SubmissionFromForm reads the add-recipe fields from parsed form values.
// Missing keys decode as empty strings.
func SubmissionFromForm(form url.Values) Submission {
	return Submission{
		Title:          form.Get(FieldTitle),
		Category:       form.Get(FieldCategory),
		IngredientsRaw: form.Get(FieldIngredients),
		Instructions:   form.Get(FieldInstructions),
		Image:          form.Get(FieldImage),
	}
}

// Validate checks that every field except Image is non-blank.
func (s Submission) Validate() error {
	for _, v := range []string{s.Title, s.Category, s.IngredientsRaw, s.Instructions} {
		if strings.TrimSpace(v) == "" {
			return ErrMissingFields
		}
	}
	return nil
}

// Recipe builds the recipe described by a valid submission.
// The returned recipe has ID 0; the store assigns the real one.
func (s Submission) Recipe(clock Clock) Recipe {
	r := Recipe{
		Title:        Normalize(s.Title),
		Category:     Normalize(s.Category),
		Ingredients:  SplitIngredients(s.IngredientsRaw),
		Instructions: Normalize(s.Instructions),
		DateAdded:    FormatDate(clock.Now()),
	}
	if img := strings.TrimSpace(s.Image); img != "" {
		r.Image = &img
	}
	return r
}

// SplitIngredients splits raw text into one ingredient per line.
// Lines are trimmed and blank lines dropped; order is preserved.
func SplitIngredients(raw string) []string {
	lines := strings.Split(raw, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = Normalize(line)
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

// Normalize trims s and converts it to Unicode NFC so composed and
// decomposed spellings of the same text compare equal.
func Normalize(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
