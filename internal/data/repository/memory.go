package repository

import (
	"context"
	"sort"
	"sync"

	"library-catalog/internal/data/entity"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MemoryStore keeps genres, books and their links in process memory. It
// enforces the same unique-name and restrict-on-delete rules as the schema.
type MemoryStore struct {
	mu     sync.RWMutex
	genres map[uuid.UUID]entity.Genre
	names  map[string]uuid.UUID
	books  map[uuid.UUID]entity.Book
	links  []entity.BookGenre
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		genres: make(map[uuid.UUID]entity.Genre),
		names:  make(map[string]uuid.UUID),
		books:  make(map[uuid.UUID]entity.Book),
	}
}

// Repository exposes the store through the repository interfaces.
func (s *MemoryStore) Repository(log *zap.Logger) *Repository {
	return &Repository{
		Genre: &memoryGenreRepository{store: s, log: log.With(zap.String("repository", "genre_memory"))},
		Book:  &memoryBookRepository{store: s},
	}
}

// AddBook inserts a book and links it to the given genres.
func (s *MemoryStore) AddBook(book *entity.Book, genreIDs ...uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.books[book.ID] = *book
	for _, genreID := range genreIDs {
		s.links = append(s.links, entity.BookGenre{BookID: book.ID, GenreID: genreID})
	}
}

// GenreCount reports how many genres are stored.
func (s *MemoryStore) GenreCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.genres)
}

func (s *MemoryStore) referenced(genreID uuid.UUID) bool {
	for _, link := range s.links {
		if link.GenreID == genreID {
			return true
		}
	}
	return false
}

type memoryGenreRepository struct {
	store *MemoryStore
	log   *zap.Logger
}

func (r *memoryGenreRepository) FindAll(ctx context.Context) ([]*entity.Genre, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	genres := make([]*entity.Genre, 0, len(r.store.genres))
	for _, g := range r.store.genres {
		genre := g
		genres = append(genres, &genre)
	}
	sort.Slice(genres, func(i, j int) bool { return genres[i].Name < genres[j].Name })

	return genres, nil
}

func (r *memoryGenreRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Genre, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	genre, ok := r.store.genres[id]
	if !ok {
		return nil, nil
	}
	return &genre, nil
}

func (r *memoryGenreRepository) FindByName(ctx context.Context, name string) (*entity.Genre, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	id, ok := r.store.names[name]
	if !ok {
		return nil, nil
	}
	genre := r.store.genres[id]
	return &genre, nil
}

func (r *memoryGenreRepository) Create(ctx context.Context, genre *entity.Genre) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, taken := r.store.names[genre.Name]; taken {
		return ErrDuplicateGenreName
	}
	r.store.genres[genre.ID] = *genre
	r.store.names[genre.Name] = genre.ID

	r.log.Debug("Genre stored", zap.String("genre_id", genre.ID.String()))
	return nil
}

func (r *memoryGenreRepository) Update(ctx context.Context, genre *entity.Genre) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	current, ok := r.store.genres[genre.ID]
	if !ok {
		return ErrGenreNotFound
	}
	if owner, taken := r.store.names[genre.Name]; taken && owner != genre.ID {
		return ErrDuplicateGenreName
	}

	delete(r.store.names, current.Name)
	current.Name = genre.Name
	current.UpdatedAt = genre.UpdatedAt
	r.store.genres[genre.ID] = current
	r.store.names[current.Name] = genre.ID

	return nil
}

func (r *memoryGenreRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	genre, ok := r.store.genres[id]
	if !ok {
		return nil
	}
	if r.store.referenced(id) {
		return ErrGenreInUse
	}
	delete(r.store.genres, id)
	delete(r.store.names, genre.Name)

	return nil
}

type memoryBookRepository struct {
	store *MemoryStore
}

func (r *memoryBookRepository) FindByGenreID(ctx context.Context, genreID uuid.UUID) ([]*entity.Book, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	books := make([]*entity.Book, 0)
	for _, link := range r.store.links {
		if link.GenreID != genreID {
			continue
		}
		if b, ok := r.store.books[link.BookID]; ok {
			book := b
			books = append(books, &book)
		}
	}
	sort.Slice(books, func(i, j int) bool { return books[i].Title < books[j].Title })

	return books, nil
}
