package zaim

import (
	"context"
	"fmt"
	"time"
)

// Genre is a sub category of a payment category.
type Genre struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Sort          int       `json:"sort"`
	Active        bool      `json:"active"`
	CategoryID    int64     `json:"categoryId"`
	ParentGenreID *int64    `json:"parentGenreId"`
	Modified      time.Time `json:"modified"`
}

type DefaultGenre struct {
	ID         int64  `json:"id"`
	CategoryID int64  `json:"categoryId"`
	Name       string `json:"name"`
}

type genreWire struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Sort          int    `json:"sort"`
	Active        int    `json:"active"`
	CategoryID    int64  `json:"category_id"`
	ParentGenreID int64  `json:"parent_genre_id"`
	Modified      string `json:"modified"`
}

func (w *genreWire) UnmarshalJSON(data []byte) error {
	type plain genreWire
	return decodeRequired(data, (*plain)(w),
		"id", "name", "sort", "active", "category_id", "parent_genre_id",
		"modified",
	)
}

func (w genreWire) normalize() (Genre, error) {
	modified, err := parseTimestamp(w.Modified)
	if err != nil {
		return Genre{}, fmt.Errorf("modified: %w", err)
	}
	return Genre{
		ID:            w.ID,
		Name:          w.Name,
		Sort:          w.Sort,
		Active:        flag(w.Active),
		CategoryID:    w.CategoryID,
		ParentGenreID: nullID(w.ParentGenreID),
		Modified:      modified,
	}, nil
}

type defaultGenreWire struct {
	ID         int64  `json:"id"`
	CategoryID int64  `json:"category_id"`
	Name       string `json:"name"`
}

func (w defaultGenreWire) normalize() (DefaultGenre, error) {
	return DefaultGenre{ID: w.ID, CategoryID: w.CategoryID, Name: w.Name}, nil
}

type GenreService struct {
	transport *Transport
}

// List returns the genres of the authenticated user.
func (s *GenreService) List(ctx context.Context) ([]Genre, error) {
	raw, err := s.transport.Get(ctx, "/v2/home/genre")
	if err != nil {
		return nil, err
	}
	var res struct {
		Genres []genreWire `json:"genres"`
	}
	if err := decodeInto(raw, "genre", &res); err != nil {
		return nil, err
	}
	return normalizeAll("genre", "genres", res.Genres, genreWire.normalize)
}

// Default returns the genre master list in lang; an empty lang means "ja".
func (s *GenreService) Default(ctx context.Context, lang string) ([]DefaultGenre, error) {
	raw, err := s.transport.Get(ctx, "/v2/genre?lang="+langOrDefault(lang))
	if err != nil {
		return nil, err
	}
	var res struct {
		Genres []defaultGenreWire `json:"genres"`
	}
	if err := decodeInto(raw, "default genre", &res); err != nil {
		return nil, err
	}
	return normalizeAll("default genre", "genres", res.Genres, defaultGenreWire.normalize)
}
