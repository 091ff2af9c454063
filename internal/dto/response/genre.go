package response

import (
	"html"

	"library-catalog/internal/data/entity"
)

type GenreResponse struct {
	ID   string
	Name string // as stored, HTML-escaped
	URL  string
}

// DisplayName undoes the storage escaping so templates can escape once.
func (g GenreResponse) DisplayName() string {
	return html.UnescapeString(g.Name)
}

type BookResponse struct {
	ID      string
	Title   string
	Summary string
	URL     string
}

type GenreDetailResponse struct {
	Genre *GenreResponse
	Books []BookResponse
}

// Helper converter
func GenreToResponse(genre *entity.Genre) GenreResponse {
	return GenreResponse{
		ID:   genre.ID.String(),
		Name: genre.Name,
		URL:  genre.URL(),
	}
}

// GenreToResponsePtr is GenreToResponse that maps a nil genre to nil.
func GenreToResponsePtr(genre *entity.Genre) *GenreResponse {
	if genre == nil {
		return nil
	}
	resp := GenreToResponse(genre)
	return &resp
}

func GenresToResponse(genres []*entity.Genre) []GenreResponse {
	out := make([]GenreResponse, len(genres))
	for i, g := range genres {
		out[i] = GenreToResponse(g)
	}
	return out
}

func BooksToResponse(books []*entity.Book) []BookResponse {
	out := make([]BookResponse, len(books))
	for i, b := range books {
		out[i] = BookResponse{
			ID:      b.ID.String(),
			Title:   b.Title,
			Summary: b.Summary,
			URL:     b.URL(),
		}
	}
	return out
}
