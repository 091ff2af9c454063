package usecase

import (
	"library-catalog/internal/data/repository"

	"go.uber.org/zap"
)

type Service struct {
	Genre GenreService
}

func NewService(repo *repository.Repository, cache GenreListCache, log *zap.Logger) *Service {
	return &Service{
		Genre: NewGenreService(repo, cache, log),
	}
}
