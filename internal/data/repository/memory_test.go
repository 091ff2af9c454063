package repository

import (
	"context"
	"sync"
	"testing"

	"library-catalog/internal/data/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newMemoryRepo(t *testing.T) (*MemoryStore, *Repository) {
	t.Helper()
	store := NewMemoryStore()
	return store, store.Repository(zaptest.NewLogger(t))
}

func TestMemoryGenreRepository_FindAllSorted(t *testing.T) {
	_, repo := newMemoryRepo(t)
	ctx := context.Background()

	for _, name := range []string{"Poetry", "Fantasy", "Horror"} {
		require.NoError(t, repo.Genre.Create(ctx, entity.NewGenre(name)))
	}

	genres, err := repo.Genre.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, genres, 3)
	assert.Equal(t, "Fantasy", genres[0].Name)
	assert.Equal(t, "Horror", genres[1].Name)
	assert.Equal(t, "Poetry", genres[2].Name)
}

func TestMemoryGenreRepository_UniqueName(t *testing.T) {
	_, repo := newMemoryRepo(t)
	ctx := context.Background()

	first := entity.NewGenre("Fantasy")
	second := entity.NewGenre("Poetry")
	require.NoError(t, repo.Genre.Create(ctx, first))
	require.NoError(t, repo.Genre.Create(ctx, second))

	assert.ErrorIs(t, repo.Genre.Create(ctx, entity.NewGenre("Fantasy")), ErrDuplicateGenreName)

	second.Name = "Fantasy"
	assert.ErrorIs(t, repo.Genre.Update(ctx, second), ErrDuplicateGenreName)

	first.Name = "Fantasy"
	assert.NoError(t, repo.Genre.Update(ctx, first), "keeping its own name is allowed")
}

func TestMemoryGenreRepository_UpdateReleasesOldName(t *testing.T) {
	_, repo := newMemoryRepo(t)
	ctx := context.Background()

	g := entity.NewGenre("Scifi")
	require.NoError(t, repo.Genre.Create(ctx, g))

	g.Name = "Science Fiction"
	require.NoError(t, repo.Genre.Update(ctx, g))

	old, err := repo.Genre.FindByName(ctx, "Scifi")
	require.NoError(t, err)
	assert.Nil(t, old)

	renamed, err := repo.Genre.FindByName(ctx, "Science Fiction")
	require.NoError(t, err)
	require.NotNil(t, renamed)
	assert.Equal(t, g.ID, renamed.ID)

	assert.NoError(t, repo.Genre.Create(ctx, entity.NewGenre("Scifi")))
}

func TestMemoryGenreRepository_UpdateUnknown(t *testing.T) {
	_, repo := newMemoryRepo(t)

	err := repo.Genre.Update(context.Background(), entity.NewGenre("Drama"))
	assert.ErrorIs(t, err, ErrGenreNotFound)
}

func TestMemoryGenreRepository_DeleteRestricted(t *testing.T) {
	store, repo := newMemoryRepo(t)
	ctx := context.Background()

	g := entity.NewGenre("Fantasy")
	require.NoError(t, repo.Genre.Create(ctx, g))
	store.AddBook(&entity.Book{BaseSimple: entity.BaseSimple{ID: uuid.New()}, Title: "The Hobbit"}, g.ID)

	assert.ErrorIs(t, repo.Genre.Delete(ctx, g.ID), ErrGenreInUse)
	assert.Equal(t, 1, store.GenreCount())

	assert.NoError(t, repo.Genre.Delete(ctx, uuid.New()), "missing id is not an error")
}

func TestMemoryGenreRepository_DeleteFreesName(t *testing.T) {
	store, repo := newMemoryRepo(t)
	ctx := context.Background()

	g := entity.NewGenre("Poetry")
	require.NoError(t, repo.Genre.Create(ctx, g))
	require.NoError(t, repo.Genre.Delete(ctx, g.ID))

	assert.Equal(t, 0, store.GenreCount())
	found, err := repo.Genre.FindByID(ctx, g.ID)
	require.NoError(t, err)
	assert.Nil(t, found)
	assert.NoError(t, repo.Genre.Create(ctx, entity.NewGenre("Poetry")))
}

func TestMemoryBookRepository_FindByGenreID(t *testing.T) {
	store, repo := newMemoryRepo(t)
	fantasy, poetry := uuid.New(), uuid.New()

	store.AddBook(&entity.Book{BaseSimple: entity.BaseSimple{ID: uuid.New()}, Title: "The Hobbit"}, fantasy)
	store.AddBook(&entity.Book{BaseSimple: entity.BaseSimple{ID: uuid.New()}, Title: "Earthsea"}, fantasy, poetry)
	store.AddBook(&entity.Book{BaseSimple: entity.BaseSimple{ID: uuid.New()}, Title: "Leaves of Grass"}, poetry)

	books, err := repo.Book.FindByGenreID(context.Background(), fantasy)
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "Earthsea", books[0].Title)
	assert.Equal(t, "The Hobbit", books[1].Title)

	none, err := repo.Book.FindByGenreID(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestMemoryGenreRepository_ConcurrentCreateSameName(t *testing.T) {
	store, repo := newMemoryRepo(t)
	ctx := context.Background()

	const workers = 16
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := repo.Genre.Create(ctx, entity.NewGenre("Fantasy")); err == nil {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	assert.Equal(t, 1, store.GenreCount())
}
