package zaim

import (
	"context"
	"fmt"
	"time"
)

// Category is a user category. Payments are filed under a category and a
// genre; incomes under a category only.
type Category struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	Mode             Mode      `json:"mode"`
	Sort             int       `json:"sort"`
	ParentCategoryID *int64    `json:"parentCategoryId"`
	Active           bool      `json:"active"`
	Modified         time.Time `json:"modified"`
}

type DefaultCategory struct {
	ID   int64  `json:"id"`
	Mode Mode   `json:"mode"`
	Name string `json:"name"`
}

type categoryWire struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	Mode             Mode   `json:"mode"`
	Sort             int    `json:"sort"`
	ParentCategoryID int64  `json:"parent_category_id"`
	Active           int    `json:"active"`
	Modified         string `json:"modified"`
}

func (w *categoryWire) UnmarshalJSON(data []byte) error {
	type plain categoryWire
	return decodeRequired(data, (*plain)(w),
		"id", "name", "mode", "sort", "parent_category_id", "active", "modified",
	)
}

func (w categoryWire) normalize() (Category, error) {
	modified, err := parseTimestamp(w.Modified)
	if err != nil {
		return Category{}, fmt.Errorf("modified: %w", err)
	}
	return Category{
		ID:               w.ID,
		Name:             w.Name,
		Mode:             w.Mode,
		Sort:             w.Sort,
		ParentCategoryID: nullID(w.ParentCategoryID),
		Active:           flag(w.Active),
		Modified:         modified,
	}, nil
}

func (w DefaultCategory) normalize() (DefaultCategory, error) {
	if !w.Mode.Valid() {
		return DefaultCategory{}, fmt.Errorf("mode: unknown mode %q", w.Mode)
	}
	return w, nil
}

type CategoryService struct {
	transport *Transport
}

// List returns the categories of the authenticated user.
func (s *CategoryService) List(ctx context.Context) ([]Category, error) {
	raw, err := s.transport.Get(ctx, "/v2/home/category")
	if err != nil {
		return nil, err
	}
	var res struct {
		Categories []categoryWire `json:"categories"`
	}
	if err := decodeInto(raw, "category", &res); err != nil {
		return nil, err
	}
	return normalizeAll("category", "categories", res.Categories, categoryWire.normalize)
}

// Default returns the category master list in lang; an empty lang means "ja".
func (s *CategoryService) Default(ctx context.Context, lang string) ([]DefaultCategory, error) {
	raw, err := s.transport.Get(ctx, "/v2/category?lang="+langOrDefault(lang))
	if err != nil {
		return nil, err
	}
	var res struct {
		Categories []DefaultCategory `json:"categories"`
	}
	if err := decodeInto(raw, "default category", &res); err != nil {
		return nil, err
	}
	return normalizeAll("default category", "categories", res.Categories, DefaultCategory.normalize)
}
