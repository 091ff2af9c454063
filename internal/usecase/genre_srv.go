package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"library-catalog/internal/data/entity"
	"library-catalog/internal/data/repository"
	"library-catalog/internal/dto/request"
	"library-catalog/internal/dto/response"
	"library-catalog/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// GenreListCache holds the sorted genre list between writes. Genres reports
// the current generation on a miss, and SetGenres only stores under that
// generation. A fill that started before an Invalidate is never served.
// A negative generation means it is unknown and nothing is stored.
type GenreListCache interface {
	Genres(ctx context.Context) (genres []*entity.Genre, generation int64, ok bool)
	SetGenres(ctx context.Context, generation int64, genres []*entity.Genre)
	Invalidate(ctx context.Context)
}

type GenreService interface {
	ListGenres(ctx context.Context) ([]response.GenreResponse, error)
	GetGenreDetail(ctx context.Context, genreID string) (*response.GenreDetailResponse, error)
	GetGenre(ctx context.Context, genreID string) (*response.GenreResponse, error)
	GetGenreForDelete(ctx context.Context, genreID string) (*response.GenreDetailResponse, error)
	DeleteGenre(ctx context.Context, genreID string) (*DeleteResult, error)
	CreateGenre(ctx context.Context, req *request.GenreRequest) (*SaveResult, error)
	UpdateGenre(ctx context.Context, genreID string, req *request.GenreRequest) (*SaveResult, error)
}

// SaveResult is the genre a create or update should redirect to. Applied is
// false when another genre already held the name and nothing was written.
type SaveResult struct {
	Genre   response.GenreResponse
	Applied bool
}

// DeleteResult reports whether the genre is gone. When Deleted is false,
// Blocking holds the genre and the books that still reference it.
type DeleteResult struct {
	Deleted  bool
	Blocking *response.GenreDetailResponse
}

type genreService struct {
	repo  *repository.Repository
	cache GenreListCache
	log   *zap.Logger
}

func NewGenreService(repo *repository.Repository, cache GenreListCache, log *zap.Logger) GenreService {
	return &genreService{
		repo:  repo,
		cache: cache,
		log:   log.With(zap.String("service", "genre")),
	}
}

func (s *genreService) ListGenres(ctx context.Context) ([]response.GenreResponse, error) {
	cached, generation, ok := s.cache.Genres(ctx)
	if ok {
		s.log.Debug("Genre list served from cache", zap.Int("count", len(cached)))
		return response.GenresToResponse(cached), nil
	}

	genres, err := s.repo.Genre.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list genres", zap.Error(err))
		return nil, fmt.Errorf("list genres: %w", err)
	}
	s.cache.SetGenres(ctx, generation, genres)

	return response.GenresToResponse(genres), nil
}

func (s *genreService) GetGenreDetail(ctx context.Context, genreID string) (*response.GenreDetailResponse, error) {
	detail, err := s.loadDetail(ctx, genreID)
	if err != nil {
		return nil, fmt.Errorf("get genre detail: %w", err)
	}
	if detail.Genre == nil {
		s.log.Warn("Genre not found", zap.String("genre_id", genreID))
		return nil, utils.NotFound("Genre")
	}

	return detail, nil
}

// GetGenre returns nil, nil for an unknown id.
func (s *genreService) GetGenre(ctx context.Context, genreID string) (*response.GenreResponse, error) {
	id, err := uuid.Parse(genreID)
	if err != nil {
		return nil, nil
	}

	genre, err := s.repo.Genre.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get genre: %w", err)
	}

	return response.GenreToResponsePtr(genre), nil
}

// GetGenreForDelete returns a detail whose Genre is nil when the id is unknown.
func (s *genreService) GetGenreForDelete(ctx context.Context, genreID string) (*response.GenreDetailResponse, error) {
	detail, err := s.loadDetail(ctx, genreID)
	if err != nil {
		return nil, fmt.Errorf("get genre for delete: %w", err)
	}
	return detail, nil
}

func (s *genreService) DeleteGenre(ctx context.Context, genreID string) (*DeleteResult, error) {
	detail, err := s.loadDetail(ctx, genreID)
	if err != nil {
		return nil, fmt.Errorf("delete genre: %w", err)
	}

	if len(detail.Books) > 0 {
		s.log.Info("Genre delete refused",
			zap.String("genre_id", genreID),
			zap.Int("book_count", len(detail.Books)),
		)
		return &DeleteResult{Blocking: detail}, nil
	}

	if detail.Genre == nil {
		return &DeleteResult{Deleted: true}, nil
	}

	id := uuid.MustParse(detail.Genre.ID)
	err = s.repo.Genre.Delete(ctx, id)
	if errors.Is(err, repository.ErrGenreInUse) {
		// A book was linked after the check; show the current blockers.
		detail, err = s.loadDetail(ctx, genreID)
		if err != nil {
			return nil, fmt.Errorf("delete genre: %w", err)
		}
		return &DeleteResult{Blocking: detail}, nil
	}
	if err != nil {
		s.log.Error("Failed to delete genre", zap.Error(err), zap.String("genre_id", genreID))
		return nil, fmt.Errorf("delete genre: %w", err)
	}

	s.cache.Invalidate(ctx)
	s.log.Info("Genre deleted",
		zap.String("genre_id", genreID),
		zap.String("name", detail.Genre.Name),
	)

	return &DeleteResult{Deleted: true}, nil
}

// CreateGenre expects a normalized request.
func (s *genreService) CreateGenre(ctx context.Context, req *request.GenreRequest) (*SaveResult, error) {
	existing, err := s.repo.Genre.FindByName(ctx, req.Name)
	if err != nil {
		return nil, fmt.Errorf("check genre name: %w", err)
	}
	if existing != nil {
		s.log.Info("Genre already exists", zap.String("genre_id", existing.ID.String()), zap.String("name", req.Name))
		return &SaveResult{Genre: response.GenreToResponse(existing)}, nil
	}

	genre := entity.NewGenre(req.Name)
	err = s.repo.Genre.Create(ctx, genre)
	if errors.Is(err, repository.ErrDuplicateGenreName) {
		return s.existingByName(ctx, req.Name)
	}
	if err != nil {
		return nil, fmt.Errorf("create genre: %w", err)
	}

	s.cache.Invalidate(ctx)
	s.log.Info("Genre created",
		zap.String("genre_id", genre.ID.String()),
		zap.String("name", genre.Name),
	)

	return &SaveResult{Genre: response.GenreToResponse(genre), Applied: true}, nil
}

// UpdateGenre expects a normalized request. A name already held by any genre
// redirects there without writing.
func (s *genreService) UpdateGenre(ctx context.Context, genreID string, req *request.GenreRequest) (*SaveResult, error) {
	id, err := uuid.Parse(genreID)
	if err != nil {
		return nil, utils.NotFound("Genre")
	}

	existing, err := s.repo.Genre.FindByName(ctx, req.Name)
	if err != nil {
		return nil, fmt.Errorf("check genre name: %w", err)
	}
	if existing != nil {
		s.log.Info("Genre update skipped, name in use",
			zap.String("genre_id", genreID),
			zap.String("holder_id", existing.ID.String()),
		)
		return &SaveResult{Genre: response.GenreToResponse(existing)}, nil
	}

	genre := &entity.Genre{
		Base: entity.Base{ID: id, UpdatedAt: time.Now().UTC()},
		Name: req.Name,
	}
	err = s.repo.Genre.Update(ctx, genre)
	switch {
	case errors.Is(err, repository.ErrGenreNotFound):
		return nil, utils.NotFound("Genre")
	case errors.Is(err, repository.ErrDuplicateGenreName):
		return s.existingByName(ctx, req.Name)
	case err != nil:
		return nil, fmt.Errorf("update genre: %w", err)
	}

	s.cache.Invalidate(ctx)
	s.log.Info("Genre updated",
		zap.String("genre_id", genreID),
		zap.String("name", genre.Name),
	)

	return &SaveResult{Genre: response.GenreToResponse(genre), Applied: true}, nil
}

// existingByName resolves a lost race on the unique name index to the winner.
func (s *genreService) existingByName(ctx context.Context, name string) (*SaveResult, error) {
	winner, err := s.repo.Genre.FindByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("find genre by name: %w", err)
	}
	if winner == nil {
		return nil, fmt.Errorf("genre name %q conflicted but no holder found", name)
	}

	s.log.Info("Genre name taken concurrently", zap.String("genre_id", winner.ID.String()))
	return &SaveResult{Genre: response.GenreToResponse(winner)}, nil
}

// loadDetail fetches the genre and its books concurrently. An unparsable id
// behaves like an unknown one.
func (s *genreService) loadDetail(ctx context.Context, genreID string) (*response.GenreDetailResponse, error) {
	id, err := uuid.Parse(genreID)
	if err != nil {
		return &response.GenreDetailResponse{Books: []response.BookResponse{}}, nil
	}

	var (
		genre *entity.Genre
		books []*entity.Book
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		genre, err = s.repo.Genre.FindByID(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		books, err = s.repo.Book.FindByGenreID(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.Error("Failed to load genre with books", zap.Error(err), zap.String("genre_id", genreID))
		return nil, err
	}

	return &response.GenreDetailResponse{
		Genre: response.GenreToResponsePtr(genre),
		Books: response.BooksToResponse(books),
	}, nil
}
