package repository

import (
	"context"
	"errors"
	"fmt"

	"library-catalog/internal/data/entity"
	"library-catalog/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type GenreRepository interface {
	FindAll(ctx context.Context) ([]*entity.Genre, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Genre, error)
	FindByName(ctx context.Context, name string) (*entity.Genre, error)
	Create(ctx context.Context, genre *entity.Genre) error
	Update(ctx context.Context, genre *entity.Genre) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type genreRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewGenreRepository(db database.PgxIface, log *zap.Logger) GenreRepository {
	return &genreRepository{
		db:  db,
		log: log.With(zap.String("repository", "genre")),
	}
}

// FindAll returns every genre ordered by name ascending.
func (r *genreRepository) FindAll(ctx context.Context) ([]*entity.Genre, error) {
	query := `SELECT id, name, created_at, updated_at FROM genres ORDER BY name ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find all genres", zap.Error(err))
		return nil, fmt.Errorf("find genres: %w", err)
	}
	defer rows.Close()

	genres := make([]*entity.Genre, 0)
	for rows.Next() {
		var genre entity.Genre
		if err := rows.Scan(&genre.ID, &genre.Name, &genre.CreatedAt, &genre.UpdatedAt); err != nil {
			r.log.Error("Failed to scan genre row", zap.Error(err))
			return nil, fmt.Errorf("scan genre row: %w", err)
		}
		genres = append(genres, &genre)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate genre rows: %w", err)
	}

	r.log.Debug("Genres found", zap.Int("count", len(genres)))

	return genres, nil
}

// FindByID returns nil, nil when no genre has the given id.
func (r *genreRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Genre, error) {
	query := `SELECT id, name, created_at, updated_at FROM genres WHERE id = $1`
	return r.findOne(ctx, query, id, zap.String("genre_id", id.String()))
}

// FindByName matches the stored (escaped) name exactly. nil, nil means no match.
func (r *genreRepository) FindByName(ctx context.Context, name string) (*entity.Genre, error) {
	query := `SELECT id, name, created_at, updated_at FROM genres WHERE name = $1`
	return r.findOne(ctx, query, name, zap.String("name", name))
}

func (r *genreRepository) findOne(ctx context.Context, query string, arg any, field zap.Field) (*entity.Genre, error) {
	var genre entity.Genre
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&genre.ID,
		&genre.Name,
		&genre.CreatedAt,
		&genre.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find genre", zap.Error(err), field)
		return nil, fmt.Errorf("find genre: %w", err)
	}

	return &genre, nil
}

func (r *genreRepository) Create(ctx context.Context, genre *entity.Genre) error {
	query := `INSERT INTO genres (id, name, created_at, updated_at) VALUES ($1, $2, $3, $4)`

	_, err := r.db.Exec(ctx, query, genre.ID, genre.Name, genre.CreatedAt, genre.UpdatedAt)
	if isUniqueViolation(err) {
		r.log.Warn("Genre name taken on insert", zap.String("name", genre.Name))
		return ErrDuplicateGenreName
	}
	if err != nil {
		r.log.Error("Failed to create genre",
			zap.Error(err),
			zap.String("name", genre.Name),
		)
		return fmt.Errorf("create genre: %w", err)
	}

	return nil
}

// Update renames the genre in place. Only name and updated_at change.
func (r *genreRepository) Update(ctx context.Context, genre *entity.Genre) error {
	query := `UPDATE genres SET name = $2, updated_at = $3 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, genre.ID, genre.Name, genre.UpdatedAt)
	if isUniqueViolation(err) {
		r.log.Warn("Genre name taken on update",
			zap.String("genre_id", genre.ID.String()),
			zap.String("name", genre.Name),
		)
		return ErrDuplicateGenreName
	}
	if err != nil {
		r.log.Error("Failed to update genre",
			zap.Error(err),
			zap.String("genre_id", genre.ID.String()),
		)
		return fmt.Errorf("update genre: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrGenreNotFound
	}

	return nil
}

// Delete removes the genre permanently. Deleting a missing id is not an error.
func (r *genreRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM genres WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if isForeignKeyViolation(err) {
		r.log.Warn("Genre still referenced by books", zap.String("genre_id", id.String()))
		return ErrGenreInUse
	}
	if err != nil {
		r.log.Error("Failed to delete genre",
			zap.Error(err),
			zap.String("genre_id", id.String()),
		)
		return fmt.Errorf("delete genre: %w", err)
	}

	r.log.Info("Genre deleted",
		zap.String("genre_id", id.String()),
		zap.Int64("rows", result.RowsAffected()),
	)
	return nil
}
