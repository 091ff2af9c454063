package entity

import (
	"time"

	"github.com/google/uuid"
)

const genreURLPrefix = "/catalog/genre/"

type Genre struct {
	Base
	Name string `db:"name"` // trimmed and HTML-escaped
}

// NewGenre builds an unsaved genre with a fresh ID.
func NewGenre(name string) *Genre {
	now := time.Now().UTC()
	return &Genre{
		Base: Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name: name,
	}
}

// URL is the canonical path of the genre's detail page.
func (g *Genre) URL() string {
	return GenreURL(g.ID)
}

func GenreURL(id uuid.UUID) string {
	return genreURLPrefix + id.String()
}
