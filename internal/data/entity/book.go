package entity

import "github.com/google/uuid"

type Book struct {
	BaseSimple
	Title   string  `db:"title"`
	Summary string  `db:"summary"`
	ISBN    *string `db:"isbn"`
}

func (b *Book) URL() string {
	return "/catalog/book/" + b.ID.String()
}

// BookGenre is a row of the book_genres bridge table.
type BookGenre struct {
	BookID  uuid.UUID `db:"book_id"`
	GenreID uuid.UUID `db:"genre_id"`
}
