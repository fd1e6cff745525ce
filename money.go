package zaim

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// MoneyEntry is one ledger transaction.
type MoneyEntry struct {
	ID            int64           `json:"id"`
	Mode          Mode            `json:"mode"`
	UserID        int64           `json:"userId"`
	Date          Date            `json:"date"`
	CategoryID    int64           `json:"categoryId"`
	GenreID       int64           `json:"genreId"`
	ToAccountID   *int64          `json:"toAccountId"`
	FromAccountID *int64          `json:"fromAccountId"`
	Amount        decimal.Decimal `json:"amount"`
	Comment       *string         `json:"comment"`
	Active        bool            `json:"active"`
	Name          string          `json:"name"`
	ReceiptID     *int64          `json:"receiptId"`
	Place         *string         `json:"place"`
	PlaceUID      *string         `json:"placeUid"`
	Created       time.Time       `json:"created"`
	CurrencyCode  string          `json:"currencyCode"`
}

type moneyWire struct {
	ID            int64           `json:"id"`
	Mode          Mode            `json:"mode"`
	UserID        int64           `json:"user_id"`
	Date          Date            `json:"date"`
	CategoryID    int64           `json:"category_id"`
	GenreID       int64           `json:"genre_id"`
	ToAccountID   int64           `json:"to_account_id"`
	FromAccountID int64           `json:"from_account_id"`
	Amount        decimal.Decimal `json:"amount"`
	Comment       string          `json:"comment"`
	Active        int             `json:"active"`
	Name          string          `json:"name"`
	ReceiptID     int64           `json:"receipt_id"`
	Place         string          `json:"place"`
	PlaceUID      string          `json:"place_uid"`
	Created       string          `json:"created"`
	CurrencyCode  string          `json:"currency_code"`
}

func (w *moneyWire) UnmarshalJSON(data []byte) error {
	type plain moneyWire
	return decodeRequired(data, (*plain)(w),
		"id", "mode", "user_id", "date", "category_id", "genre_id",
		"to_account_id", "from_account_id", "amount", "comment", "active", "name",
		"receipt_id", "place", "place_uid", "created", "currency_code",
	)
}

func (w moneyWire) normalize() (MoneyEntry, error) {
	created, err := parseTimestamp(w.Created)
	if err != nil {
		return MoneyEntry{}, fmt.Errorf("created: %w", err)
	}
	return MoneyEntry{
		ID:            w.ID,
		Mode:          w.Mode,
		UserID:        w.UserID,
		Date:          w.Date,
		CategoryID:    w.CategoryID,
		GenreID:       w.GenreID,
		ToAccountID:   nullID(w.ToAccountID),
		FromAccountID: nullID(w.FromAccountID),
		Amount:        w.Amount,
		Comment:       nullString(w.Comment),
		Active:        flag(w.Active),
		Name:          w.Name,
		ReceiptID:     nullID(w.ReceiptID),
		Place:         nullString(w.Place),
		PlaceUID:      nullString(w.PlaceUID),
		Created:       created,
		CurrencyCode:  w.CurrencyCode,
	}, nil
}

// MoneyQuery filters a money listing. Nil fields are left out of the query.
type MoneyQuery struct {
	CategoryID *int64
	GenreID    *int64
	Mode       *Mode
	Order      *Order
	StartDate  *Date
	EndDate    *Date
	Page       *int
	Limit      *int
}

func (q MoneyQuery) validate() error {
	v := newValidator()
	v.optionalID("categoryId", q.CategoryID)
	v.optionalID("genreId", q.GenreID)
	v.mode("mode", q.Mode)
	v.order("order", q.Order)
	v.page("page", q.Page)
	v.limit("limit", q.Limit)
	if q.StartDate != nil && q.EndDate != nil && q.EndDate.Time().Before(q.StartDate.Time()) {
		v.add("endDate", "must not be before startDate")
	}
	return v.err()
}

func (q MoneyQuery) encode() string {
	f := newMoneyForm()
	setOptionalInt(f, "category_id", q.CategoryID)
	setOptionalInt(f, "genre_id", q.GenreID)
	if q.Mode != nil {
		f.Set("mode", q.Mode.String())
	}
	if q.Order != nil {
		f.Set("order", string(*q.Order))
	}
	setOptionalDate(f, "start_date", q.StartDate)
	setOptionalDate(f, "end_date", q.EndDate)
	setOptionalCount(f, "page", q.Page)
	setOptionalCount(f, "limit", q.Limit)
	return f.Encode()
}

// MoneyService lists ledger entries. Mutations live on the payment, income
// and transfer services.
type MoneyService struct {
	transport *Transport
}

// List returns one entry per transaction.
func (s *MoneyService) List(ctx context.Context, q MoneyQuery) ([]MoneyEntry, error) {
	raw, err := s.list(ctx, q, false)
	if err != nil {
		return nil, err
	}
	var res struct {
		Money []moneyWire `json:"money"`
	}
	if err := decodeInto(raw, "money", &res); err != nil {
		return nil, err
	}
	return normalizeAll("money", "money", res.Money, moneyWire.normalize)
}

// ListGrouped returns one entry per receipt, with the receipt's rows in Data.
func (s *MoneyService) ListGrouped(ctx context.Context, q MoneyQuery) ([]GroupedMoneyEntry, error) {
	raw, err := s.list(ctx, q, true)
	if err != nil {
		return nil, err
	}
	var res struct {
		Money []groupedMoneyWire `json:"money"`
	}
	if err := decodeInto(raw, "grouped money", &res); err != nil {
		return nil, err
	}
	return normalizeAll("grouped money", "money", res.Money, groupedMoneyWire.normalize)
}

func (s *MoneyService) list(ctx context.Context, q MoneyQuery, grouped bool) (json.RawMessage, error) {
	if err := q.validate(); err != nil {
		return nil, err
	}
	query := q.encode()
	if grouped {
		query += "&group_by=receipt_id"
	}
	return s.transport.Get(ctx, "/v2/home/money?"+query)
}

// MoneyRef identifies the entry a mutation touched.
type MoneyRef struct {
	ID       int64      `json:"id"`
	Modified *time.Time `json:"modified"`
}

// UserStats is the user counter block returned with mutations.
type UserStats struct {
	InputCount   int        `json:"inputCount"`
	DataModified *time.Time `json:"dataModified"`
}

// MoneyResult is the response to a create, update or delete of a money
// entry. Place is only set when the API attached merchant metadata.
type MoneyResult struct {
	Money     MoneyRef   `json:"money"`
	Place     *Place     `json:"place,omitempty"`
	User      *UserStats `json:"user,omitempty"`
	Requested int64      `json:"requested"`
}

type moneyResultWire struct {
	Money *struct {
		ID       int64   `json:"id"`
		Modified *string `json:"modified"`
	} `json:"money"`
	Place *placeWire `json:"place"`
	User  *struct {
		InputCount   int     `json:"input_count"`
		DataModified *string `json:"data_modified"`
	} `json:"user"`
	Requested int64 `json:"requested"`
}

func (w moneyResultWire) normalize() (MoneyResult, error) {
	if w.Money == nil {
		return MoneyResult{}, errors.New(`missing field "money"`)
	}
	modified, err := parseOptionalTimestamp(w.Money.Modified)
	if err != nil {
		return MoneyResult{}, fmt.Errorf("money.modified: %w", err)
	}
	res := MoneyResult{
		Money:     MoneyRef{ID: w.Money.ID, Modified: modified},
		Requested: w.Requested,
	}
	if w.Place != nil {
		place, err := w.Place.normalize()
		if err != nil {
			return MoneyResult{}, fmt.Errorf("place: %w", err)
		}
		res.Place = &place
	}
	if w.User != nil {
		dataModified, err := parseOptionalTimestamp(w.User.DataModified)
		if err != nil {
			return MoneyResult{}, fmt.Errorf("user.data_modified: %w", err)
		}
		res.User = &UserStats{InputCount: w.User.InputCount, DataModified: dataModified}
	}
	return res, nil
}

func decodeMoneyResult(resource string, raw json.RawMessage) (MoneyResult, error) {
	var w moneyResultWire
	if err := decodeInto(raw, resource, &w); err != nil {
		return MoneyResult{}, err
	}
	res, err := w.normalize()
	if err != nil {
		return MoneyResult{}, &DecodeError{Resource: resource, Err: err}
	}
	return res, nil
}

func moneyPath(mode Mode, id int64) string {
	path := "/v2/home/money/" + mode.String()
	if id != 0 {
		path += fmt.Sprintf("/%d", id)
	}
	return path
}
