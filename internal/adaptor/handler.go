package adaptor

import (
	"net/http"

	"library-catalog/internal/usecase"

	"go.uber.org/zap"
)

// Renderer writes a named page template with the given status.
type Renderer interface {
	Render(w http.ResponseWriter, status int, name string, data any) error
}

type Handler struct {
	Genre *GenreHandler
}

func NewHandler(service *usecase.Service, view Renderer, debug bool, log *zap.Logger) *Handler {
	return &Handler{
		Genre: NewGenreHandler(service.Genre, view, debug, log),
	}
}
