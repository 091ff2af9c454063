package repository

import (
	"context"
	"fmt"

	"library-catalog/internal/data/entity"
	"library-catalog/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookRepository is read-only; books are managed elsewhere in the catalog.
type BookRepository interface {
	FindByGenreID(ctx context.Context, genreID uuid.UUID) ([]*entity.Book, error)
}

type bookRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookRepository(db database.PgxIface, log *zap.Logger) BookRepository {
	return &bookRepository{
		db:  db,
		log: log.With(zap.String("repository", "book")),
	}
}

func (r *bookRepository) FindByGenreID(ctx context.Context, genreID uuid.UUID) ([]*entity.Book, error) {
	query := `
		SELECT b.id, b.title, b.summary, b.isbn, b.created_at
		FROM books b
		INNER JOIN book_genres bg ON b.id = bg.book_id
		WHERE bg.genre_id = $1
		ORDER BY b.title
	`

	rows, err := r.db.Query(ctx, query, genreID)
	if err != nil {
		r.log.Error("Failed to find books by genre ID",
			zap.Error(err),
			zap.String("genre_id", genreID.String()),
		)
		return nil, fmt.Errorf("find books by genre id: %w", err)
	}
	defer rows.Close()

	books := make([]*entity.Book, 0)
	for rows.Next() {
		var book entity.Book
		err := rows.Scan(
			&book.ID,
			&book.Title,
			&book.Summary,
			&book.ISBN,
			&book.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan book row", zap.Error(err))
			return nil, fmt.Errorf("scan book row: %w", err)
		}
		books = append(books, &book)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate book rows: %w", err)
	}

	return books, nil
}
