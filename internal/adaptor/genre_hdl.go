package adaptor

import (
	"net/http"

	"library-catalog/internal/dto/request"
	"library-catalog/internal/dto/response"
	"library-catalog/internal/usecase"
	"library-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

const (
	genreListPath = "/catalog/genres"

	titleGenreList   = "Genre List"
	titleGenreDetail = "Genre Detail"
	titleCreateGenre = "Create Genre"
	titleUpdateGenre = "Update Genre"
	titleDeleteGenre = "Delete Genre"
)

type GenreHandler struct {
	service usecase.GenreService
	view    Renderer
	debug   bool
	log     *zap.Logger
}

func NewGenreHandler(service usecase.GenreService, view Renderer, debug bool, log *zap.Logger) *GenreHandler {
	return &GenreHandler{
		service: service,
		view:    view,
		debug:   debug,
		log:     log.With(zap.String("handler", "genre")),
	}
}

// GenreList handles GET /catalog/genres
func (h *GenreHandler) GenreList(w http.ResponseWriter, r *http.Request) {
	genres, err := h.service.ListGenres(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err, "list genres")
		return
	}

	h.render(w, r, http.StatusOK, "genre_list", response.GenreListPage{
		Title:  titleGenreList,
		Genres: genres,
	})
}

// GenreDetail handles GET /catalog/genre/{id}
func (h *GenreHandler) GenreDetail(w http.ResponseWriter, r *http.Request) {
	detail, err := h.service.GetGenreDetail(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, r, err, "get genre detail")
		return
	}

	h.render(w, r, http.StatusOK, "genre_detail", response.GenreDetailPage{
		Title: titleGenreDetail,
		Genre: detail.Genre,
		Books: detail.Books,
	})
}

// GenreCreateGet handles GET /catalog/genre/create
func (h *GenreHandler) GenreCreateGet(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "genre_form", response.GenreFormPage{Title: titleCreateGenre})
}

// GenreCreatePost handles POST /catalog/genre/create
func (h *GenreHandler) GenreCreatePost(w http.ResponseWriter, r *http.Request) {
	req, ok := h.parseGenreForm(w, r)
	if !ok {
		return
	}

	if errs := req.Normalize(); len(errs) > 0 {
		h.log.Debug("Create genre validation failed", zap.String("errors", utils.FormatValidationErrors(errs)))
		h.render(w, r, http.StatusOK, "genre_form", response.GenreFormPage{
			Title:  titleCreateGenre,
			Genre:  &response.GenreResponse{Name: req.Name},
			Errors: errs,
		})
		return
	}

	result, err := h.service.CreateGenre(r.Context(), req)
	if err != nil {
		h.handleServiceError(w, r, err, "create genre")
		return
	}

	utils.Redirect(w, r, result.Genre.URL)
}

// GenreDeleteGet handles GET /catalog/genre/{id}/delete
func (h *GenreHandler) GenreDeleteGet(w http.ResponseWriter, r *http.Request) {
	detail, err := h.service.GetGenreForDelete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, r, err, "get genre for delete")
		return
	}

	if detail.Genre == nil {
		utils.Redirect(w, r, genreListPath)
		return
	}

	h.render(w, r, http.StatusOK, "genre_delete", response.GenreDeletePage{
		Title: titleDeleteGenre,
		Genre: detail.Genre,
		Books: detail.Books,
	})
}

// GenreDeletePost handles POST /catalog/genre/{id}/delete. The form's genreid
// names the genre to delete; the route id is used when it is missing.
func (h *GenreHandler) GenreDeletePost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.handleServiceError(w, r, badForm(err), "parse delete form")
		return
	}

	req := request.GenreDeleteRequest{GenreID: r.PostFormValue("genreid")}
	if req.GenreID == "" {
		req.GenreID = chi.URLParam(r, "id")
	}

	result, err := h.service.DeleteGenre(r.Context(), req.GenreID)
	if err != nil {
		h.handleServiceError(w, r, err, "delete genre")
		return
	}

	if !result.Deleted {
		h.render(w, r, http.StatusOK, "genre_delete", response.GenreDeletePage{
			Title: titleDeleteGenre,
			Genre: result.Blocking.Genre,
			Books: result.Blocking.Books,
		})
		return
	}

	utils.Redirect(w, r, genreListPath)
}

// GenreUpdateGet handles GET /catalog/genre/{id}/update. An unknown id renders
// an empty form.
func (h *GenreHandler) GenreUpdateGet(w http.ResponseWriter, r *http.Request) {
	genreID := chi.URLParam(r, "id")

	genre, err := h.service.GetGenre(r.Context(), genreID)
	if err != nil {
		h.handleServiceError(w, r, err, "get genre for update")
		return
	}
	if genre == nil {
		h.log.Warn("Update form requested for unknown genre", zap.String("genre_id", genreID))
	}

	h.render(w, r, http.StatusOK, "genre_form", response.GenreFormPage{
		Title: titleUpdateGenre,
		Genre: genre,
	})
}

// GenreUpdatePost handles POST /catalog/genre/{id}/update
func (h *GenreHandler) GenreUpdatePost(w http.ResponseWriter, r *http.Request) {
	genreID := chi.URLParam(r, "id")

	req, ok := h.parseGenreForm(w, r)
	if !ok {
		return
	}

	if errs := req.Normalize(); len(errs) > 0 {
		h.log.Debug("Update genre validation failed",
			zap.String("genre_id", genreID),
			zap.String("errors", utils.FormatValidationErrors(errs)),
		)
		h.render(w, r, http.StatusOK, "genre_form", response.GenreFormPage{
			Title:  titleUpdateGenre,
			Genre:  &response.GenreResponse{ID: genreID, Name: req.Name},
			Errors: errs,
		})
		return
	}

	result, err := h.service.UpdateGenre(r.Context(), genreID, req)
	if err != nil {
		h.handleServiceError(w, r, err, "update genre")
		return
	}

	utils.Redirect(w, r, result.Genre.URL)
}

func (h *GenreHandler) parseGenreForm(w http.ResponseWriter, r *http.Request) (*request.GenreRequest, bool) {
	if err := r.ParseForm(); err != nil {
		h.handleServiceError(w, r, badForm(err), "parse genre form")
		return nil, false
	}
	return &request.GenreRequest{Name: r.PostFormValue("name")}, true
}

func badForm(err error) *utils.AppError {
	return &utils.AppError{Status: http.StatusBadRequest, Message: "Invalid form submission", Cause: err}
}

func (h *GenreHandler) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	if err := h.view.Render(w, status, page, data); err != nil {
		h.log.Error("Failed to render page",
			zap.Error(err),
			zap.String("page", page),
			zap.String("request_id", chimw.GetReqID(r.Context())),
		)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// handleServiceError logs err and renders the shared error page with its status.
func (h *GenreHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error, operation string) {
	appErr := utils.AsAppError(err)
	fields := []zap.Field{
		zap.Error(err),
		zap.String("operation", operation),
		zap.String("request_id", chimw.GetReqID(r.Context())),
	}

	if appErr.Status >= http.StatusInternalServerError {
		h.log.Error("Failed to "+operation, fields...)
	} else {
		h.log.Warn(operation+" failed", fields...)
	}

	page := response.ErrorPage{
		Title:   "Error",
		Status:  appErr.Status,
		Message: appErr.Message,
	}
	if h.debug && appErr.Cause != nil {
		page.Detail = appErr.Cause.Error()
	}

	if renderErr := h.view.Render(w, appErr.Status, "error", page); renderErr != nil {
		h.log.Error("Failed to render error page", zap.Error(renderErr))
		http.Error(w, appErr.Message, appErr.Status)
	}
}
