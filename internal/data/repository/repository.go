package repository

import (
	"library-catalog/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Genre GenreRepository
	Book  BookRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Genre: NewGenreRepository(db, log),
		Book:  NewBookRepository(db, log),
	}
}
