package recipe

import "time"

// DateLayout is the calendar-date format used for DateAdded.
const DateLayout = "2006-01-02"

// Recipe is a single catalog entry.
//
// Recipes are append-only: once stored they are never updated or deleted.
type Recipe struct {
	ID           int64    `json:"id" yaml:"id"`
	Title        string   `json:"title" yaml:"title"`
	Category     string   `json:"category" yaml:"category"`
	Ingredients  []string `json:"ingredients" yaml:"ingredients"`
	Instructions string   `json:"instructions" yaml:"instructions"`
	Image        *string  `json:"image" yaml:"image"`
	DateAdded    string   `json:"date_added" yaml:"date_added"`
}

// HasImage reports whether the recipe references an image file.
func (r Recipe) HasImage() bool {
	return r.Image != nil && *r.Image != ""
}

// ImageName returns the image filename, or "" when there is none.
func (r Recipe) ImageName() string {
	if r.Image == nil {
		return ""
	}
	return *r.Image
}

// Clock supplies the current time for DateAdded.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time {
	return time.Now()
}

// FormatDate renders t as a DateAdded value in t's own location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
