package request

import (
	"fmt"
	"strings"

	"library-catalog/pkg/utils"
)

const MaxGenreNameLength = 100

var genreRules = []utils.Rule{
	{Field: "name", Tag: "required", Message: "Genre name required"},
	{
		Field:   "name",
		Tag:     fmt.Sprintf("max=%d", MaxGenreNameLength),
		Message: fmt.Sprintf("Genre name must not exceed %d characters", MaxGenreNameLength),
	},
}

// GenreRequest is the create and update form body.
type GenreRequest struct {
	Name string `form:"name"`
}

// Normalize validates the trimmed name and then stores it trimmed and
// HTML-escaped. Errors are reported against the trimmed input.
func (r *GenreRequest) Normalize() []utils.FieldError {
	trimmed := strings.TrimSpace(r.Name)
	errs := utils.ValidateForm(map[string]string{"name": trimmed}, genreRules)
	r.Name = utils.EscapeHTML(trimmed)
	return errs
}

// GenreDeleteRequest is the delete confirmation form body.
type GenreDeleteRequest struct {
	GenreID string `form:"genreid"`
}
