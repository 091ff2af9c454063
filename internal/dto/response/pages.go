package response

import "library-catalog/pkg/utils"

// Template data for each catalog page. Title is shown in the layout header.

type GenreListPage struct {
	Title  string
	Genres []GenreResponse
}

type GenreDetailPage struct {
	Title string
	Genre *GenreResponse
	Books []BookResponse
}

type GenreFormPage struct {
	Title  string
	Genre  *GenreResponse
	Errors []utils.FieldError
}

type GenreDeletePage struct {
	Title string
	Genre *GenreResponse
	Books []BookResponse
}

type ErrorPage struct {
	Title   string
	Status  int
	Message string
	Detail  string
}
