package zaim

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// GroupedMoneyEntry is the aggregate of the rows sharing one receipt.
type GroupedMoneyEntry struct {
	Amount        decimal.Decimal `json:"amount"`
	ToAccountID   *int64          `json:"toAccountId"`
	FromAccountID *int64          `json:"fromAccountId"`
	Date          Date            `json:"date"`
	ReceiptID     *int64          `json:"receiptId"`
	Mode          Mode            `json:"mode"`
	PlaceUID      *string         `json:"placeUid"`
	CategoryID    int64           `json:"categoryId"`
	GenreID       int64           `json:"genreId"`
	CurrencyCode  string          `json:"currencyCode"`
	Place         *string         `json:"place"`

	// Data holds the receipt's rows. It is nil when the API sent none.
	Data []GroupedMoneyItem `json:"data,omitempty"`
}

// GroupedMoneyItem is one row of a receipt.
type GroupedMoneyItem struct {
	ID         int64           `json:"id"`
	CategoryID int64           `json:"categoryId"`
	GenreID    int64           `json:"genreId"`
	Amount     decimal.Decimal `json:"amount"`
	Comment    *string         `json:"comment"`
	Active     bool            `json:"active"`
	Created    time.Time       `json:"created"`
	Name       string          `json:"name"`
	ReceiptID  *int64          `json:"receiptId"`
}

type groupedMoneyWire struct {
	Amount        decimal.Decimal        `json:"amount"`
	ToAccountID   int64                  `json:"to_account_id"`
	FromAccountID int64                  `json:"from_account_id"`
	Date          Date                   `json:"date"`
	ReceiptID     int64                  `json:"receipt_id"`
	Mode          Mode                   `json:"mode"`
	PlaceUID      string                 `json:"place_uid"`
	CategoryID    int64                  `json:"category_id"`
	GenreID       int64                  `json:"genre_id"`
	CurrencyCode  string                 `json:"currency_code"`
	Place         string                 `json:"place"`
	Data          []groupedMoneyItemWire `json:"data"`
}

func (w *groupedMoneyWire) UnmarshalJSON(data []byte) error {
	type plain groupedMoneyWire
	return decodeRequired(data, (*plain)(w),
		"amount", "to_account_id", "from_account_id", "date", "receipt_id", "mode",
		"place_uid", "category_id", "genre_id", "currency_code", "place",
	)
}

type groupedMoneyItemWire struct {
	ID         int64           `json:"id"`
	CategoryID int64           `json:"category_id"`
	GenreID    int64           `json:"genre_id"`
	Amount     decimal.Decimal `json:"amount"`
	Comment    string          `json:"comment"`
	Active     int             `json:"active"`
	Created    string          `json:"created"`
	Name       string          `json:"name"`
	ReceiptID  int64           `json:"receipt_id"`
}

func (w *groupedMoneyItemWire) UnmarshalJSON(data []byte) error {
	type plain groupedMoneyItemWire
	return decodeRequired(data, (*plain)(w),
		"id", "category_id", "genre_id", "amount", "comment", "active", "created",
		"name", "receipt_id",
	)
}

func (w groupedMoneyWire) normalize() (GroupedMoneyEntry, error) {
	e := GroupedMoneyEntry{
		Amount:        w.Amount,
		ToAccountID:   nullID(w.ToAccountID),
		FromAccountID: nullID(w.FromAccountID),
		Date:          w.Date,
		ReceiptID:     nullID(w.ReceiptID),
		Mode:          w.Mode,
		PlaceUID:      nullString(w.PlaceUID),
		CategoryID:    w.CategoryID,
		GenreID:       w.GenreID,
		CurrencyCode:  w.CurrencyCode,
		Place:         nullString(w.Place),
	}
	if w.Data == nil {
		return e, nil
	}
	e.Data = make([]GroupedMoneyItem, 0, len(w.Data))
	for i, item := range w.Data {
		created, err := parseTimestamp(item.Created)
		if err != nil {
			return GroupedMoneyEntry{}, fmt.Errorf("data[%d].created: %w", i, err)
		}
		e.Data = append(e.Data, GroupedMoneyItem{
			ID:         item.ID,
			CategoryID: item.CategoryID,
			GenreID:    item.GenreID,
			Amount:     item.Amount,
			Comment:    nullString(item.Comment),
			Active:     flag(item.Active),
			Created:    created,
			Name:       item.Name,
			ReceiptID:  nullID(item.ReceiptID),
		})
	}
	return e, nil
}
