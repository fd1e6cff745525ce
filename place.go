package zaim

import (
	"fmt"
	"time"
)

// Place is merchant metadata the API attaches to a new money entry.
type Place struct {
	ID                int64      `json:"id"`
	UserID            int64      `json:"userId"`
	GenreID           int64      `json:"genreId"`
	CategoryID        int64      `json:"categoryId"`
	AccountID         *int64     `json:"accountId"`
	Mode              Mode       `json:"mode"`
	PlaceUID          string     `json:"placeUid"`
	Service           string     `json:"service"`
	Name              string     `json:"name"`
	OriginalName      string     `json:"originalName"`
	Tel               *string    `json:"tel"`
	Count             int        `json:"count"`
	CalcFlag          int        `json:"calcFlag"`
	PlacePatternID    *int64     `json:"placePatternId"`
	TransferAccountID *int64     `json:"transferAccountId"`
	EditFlag          bool       `json:"editFlag"`
	Active            bool       `json:"active"`
	Modified          *time.Time `json:"modified"`
	Created           time.Time  `json:"created"`
}

type placeWire struct {
	ID                int64   `json:"id"`
	UserID            int64   `json:"user_id"`
	GenreID           int64   `json:"genre_id"`
	CategoryID        int64   `json:"category_id"`
	AccountID         int64   `json:"account_id"`
	Mode              Mode    `json:"mode"`
	PlaceUID          string  `json:"place_uid"`
	Service           string  `json:"service"`
	Name              string  `json:"name"`
	OriginalName      string  `json:"original_name"`
	Tel               *string `json:"tel"`
	Count             int     `json:"count"`
	CalcFlag          int     `json:"calc_flag"`
	PlacePatternID    int64   `json:"place_pattern_id"`
	TransferAccountID int64   `json:"transfer_account_id"`
	EditFlag          int     `json:"edit_flag"`
	Active            int     `json:"active"`
	Modified          *string `json:"modified"`
	Created           string  `json:"created"`
}

func (w *placeWire) UnmarshalJSON(data []byte) error {
	type plain placeWire
	return decodeRequired(data, (*plain)(w),
		"id", "user_id", "genre_id", "category_id", "account_id", "mode",
		"place_uid", "service", "name", "original_name", "count", "calc_flag",
		"place_pattern_id", "transfer_account_id", "edit_flag", "active",
		"created",
	)
}

func (w placeWire) normalize() (Place, error) {
	created, err := parseTimestamp(w.Created)
	if err != nil {
		return Place{}, fmt.Errorf("created: %w", err)
	}
	modified, err := parseOptionalTimestamp(w.Modified)
	if err != nil {
		return Place{}, fmt.Errorf("modified: %w", err)
	}
	return Place{
		ID:                w.ID,
		UserID:            w.UserID,
		GenreID:           w.GenreID,
		CategoryID:        w.CategoryID,
		AccountID:         nullID(w.AccountID),
		Mode:              w.Mode,
		PlaceUID:          w.PlaceUID,
		Service:           w.Service,
		Name:              w.Name,
		OriginalName:      w.OriginalName,
		Tel:               nullOptionalString(w.Tel),
		Count:             w.Count,
		CalcFlag:          w.CalcFlag,
		PlacePatternID:    nullID(w.PlacePatternID),
		TransferAccountID: nullID(w.TransferAccountID),
		EditFlag:          flag(w.EditFlag),
		Active:            flag(w.Active),
		Modified:          modified,
		Created:           created,
	}, nil
}
