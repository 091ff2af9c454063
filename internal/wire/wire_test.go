package wire

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"library-catalog/internal/data/entity"
	"library-catalog/internal/data/repository"
	"library-catalog/pkg/cache"
	"library-catalog/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestApp(t *testing.T, ping PingFunc) (*App, *repository.MemoryStore) {
	t.Helper()
	log := zaptest.NewLogger(t)
	store := repository.NewMemoryStore()
	config := &utils.Config{
		App: utils.AppConfig{Name: "library-catalog", Store: utils.StoreMemory, MaxFormBytes: 1 << 20},
	}
	if ping == nil {
		ping = func(context.Context) error { return nil }
	}

	app, err := Wiring(store.Repository(log), cache.Noop{}, ping, config, log)
	require.NoError(t, err)
	return app, store
}

func do(t *testing.T, app *App, method, target string, form url.Values) (*http.Response, string) {
	t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	res := rec.Result()
	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res, string(raw)
}

func TestWiring_Redirects(t *testing.T) {
	app, _ := newTestApp(t, nil)

	for _, path := range []string{"/", "/catalog", "/catalog/"} {
		t.Run(path, func(t *testing.T) {
			res, _ := do(t, app, http.MethodGet, path, nil)
			assert.Equal(t, http.StatusFound, res.StatusCode)
			assert.Equal(t, "/catalog/genres", res.Header.Get("Location"))
		})
	}
}

func TestWiring_Health(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		app, _ := newTestApp(t, nil)
		res, body := do(t, app, http.MethodGet, "/health", nil)

		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.Equal(t, "application/json", res.Header.Get("Content-Type"))
		assert.Contains(t, body, `"store":"memory"`)
	})

	t.Run("store down", func(t *testing.T) {
		app, _ := newTestApp(t, func(context.Context) error {
			return errors.New("dial tcp db.internal:5432: connection refused")
		})
		res, body := do(t, app, http.MethodGet, "/health", nil)

		assert.Equal(t, http.StatusServiceUnavailable, res.StatusCode)
		assert.Contains(t, body, "store unreachable")
		assert.NotContains(t, body, "db.internal")
		assert.NotContains(t, body, "connection refused")
	})
}

func TestWiring_GenreLifecycle(t *testing.T) {
	app, store := newTestApp(t, nil)

	res, body := do(t, app, http.MethodGet, "/catalog/genres", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "There are no genres.")

	res, body = do(t, app, http.MethodGet, "/catalog/genre/create", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "Create Genre")

	res, _ = do(t, app, http.MethodPost, "/catalog/genre/create", url.Values{"name": {" Horror & Gothic "}})
	require.Equal(t, http.StatusFound, res.StatusCode)
	location := res.Header.Get("Location")
	require.True(t, strings.HasPrefix(location, "/catalog/genre/"), location)

	res, body = do(t, app, http.MethodGet, location, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "Genre: Horror &amp; Gothic")
	assert.NotContains(t, body, "&amp;amp;")
	assert.Contains(t, body, "This genre has no books.")

	res, body = do(t, app, http.MethodGet, location+"/update", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "Update Genre")
	assert.Contains(t, body, `value="Horror &amp; Gothic"`)

	res, _ = do(t, app, http.MethodPost, location+"/update", url.Values{"name": {"Gothic Horror"}})
	require.Equal(t, http.StatusFound, res.StatusCode)
	assert.Equal(t, location, res.Header.Get("Location"))

	res, body = do(t, app, http.MethodGet, "/catalog/genres", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "Gothic Horror")

	id := strings.TrimPrefix(location, "/catalog/genre/")
	res, _ = do(t, app, http.MethodPost, location+"/delete", url.Values{"genreid": {id}})
	require.Equal(t, http.StatusFound, res.StatusCode)
	assert.Equal(t, "/catalog/genres", res.Header.Get("Location"))
	assert.Equal(t, 0, store.GenreCount())
}

func TestWiring_CreateValidationError(t *testing.T) {
	app, store := newTestApp(t, nil)

	long := strings.Repeat("x", 101)
	res, body := do(t, app, http.MethodPost, "/catalog/genre/create", url.Values{"name": {long}})

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "Genre name must not exceed 100 characters")
	assert.Contains(t, body, long)
	assert.Equal(t, 0, store.GenreCount())
}

func TestWiring_DeleteBlockedByBooks(t *testing.T) {
	app, store := newTestApp(t, nil)
	log := zaptest.NewLogger(t)
	repo := store.Repository(log)

	g := entity.NewGenre("Fantasy")
	require.NoError(t, repo.Genre.Create(context.Background(), g))
	store.AddBook(&entity.Book{BaseSimple: entity.BaseSimple{ID: uuid.New()}, Title: "The Hobbit"}, g.ID)

	res, body := do(t, app, http.MethodPost, g.URL()+"/delete", url.Values{"genreid": {g.ID.String()}})

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "The Hobbit")
	assert.Equal(t, 1, store.GenreCount())
}

func TestWiring_UnknownGenre(t *testing.T) {
	app, _ := newTestApp(t, nil)
	id := uuid.NewString()

	res, body := do(t, app, http.MethodGet, "/catalog/genre/"+id, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Contains(t, body, "Genre not found")

	res, _ = do(t, app, http.MethodGet, "/catalog/genre/not-a-uuid/delete", nil)
	assert.Equal(t, http.StatusFound, res.StatusCode)
	assert.Equal(t, "/catalog/genres", res.Header.Get("Location"))
}
