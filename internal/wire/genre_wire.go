package wire

import (
	"net/http"

	"library-catalog/internal/adaptor"
	"library-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
)

func wireGenre(r chi.Router, genreHandler *adaptor.GenreHandler) {
	r.Route("/catalog", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			utils.Redirect(w, r, "/catalog/genres")
		})

		// GET /catalog/genres - all genres by name
		r.Get("/genres", genreHandler.GenreList)

		// chi matches the static /genre/create ahead of /genre/{id}
		r.Get("/genre/create", genreHandler.GenreCreateGet)
		r.Post("/genre/create", genreHandler.GenreCreatePost)

		r.Route("/genre/{id}", func(r chi.Router) {
			r.Get("/", genreHandler.GenreDetail)
			r.Get("/delete", genreHandler.GenreDeleteGet)
			r.Post("/delete", genreHandler.GenreDeletePost)
			r.Get("/update", genreHandler.GenreUpdateGet)
			r.Post("/update", genreHandler.GenreUpdatePost)
		})
	})
}
