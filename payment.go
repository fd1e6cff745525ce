package zaim

import (
	"context"

	"github.com/shopspring/decimal"
)

// CreatePaymentParams records a payment. Nil optional fields are not sent.
type CreatePaymentParams struct {
	CategoryID int64
	GenreID    int64
	Amount     decimal.Decimal
	Date       Date

	FromAccountID *int64
	Comment       *string
	Name          *string
	Place         *string
}

func (p CreatePaymentParams) validate() error {
	v := newValidator()
	v.positiveID("categoryId", p.CategoryID)
	v.positiveID("genreId", p.GenreID)
	v.amount("amount", p.Amount)
	v.date("date", p.Date)
	v.optionalID("fromAccountId", p.FromAccountID)
	v.maxLength("comment", p.Comment)
	v.maxLength("name", p.Name)
	v.maxLength("place", p.Place)
	return v.err()
}

// UpdatePaymentParams replaces the amount and date of a payment and,
// optionally, its classification.
type UpdatePaymentParams struct {
	Amount decimal.Decimal
	Date   Date

	FromAccountID *int64
	GenreID       *int64
	CategoryID    *int64
	PlaceUID      *string
	Comment       *string
}

func (p UpdatePaymentParams) validate(id int64) error {
	v := newValidator()
	v.positiveID("id", id)
	v.amount("amount", p.Amount)
	v.date("date", p.Date)
	v.optionalID("fromAccountId", p.FromAccountID)
	v.optionalID("genreId", p.GenreID)
	v.optionalID("categoryId", p.CategoryID)
	v.maxLength("comment", p.Comment)
	return v.err()
}

type PaymentService struct {
	transport *Transport
}

func (s *PaymentService) Create(ctx context.Context, p CreatePaymentParams) (MoneyResult, error) {
	if err := p.validate(); err != nil {
		return MoneyResult{}, err
	}
	f := newMoneyForm()
	setInt(f, "category_id", p.CategoryID)
	setInt(f, "genre_id", p.GenreID)
	f.Set("amount", p.Amount.String())
	f.Set("date", p.Date.String())
	setOptionalInt(f, "from_account_id", p.FromAccountID)
	setOptionalString(f, "comment", p.Comment)
	setOptionalString(f, "name", p.Name)
	setOptionalString(f, "place", p.Place)

	raw, err := s.transport.Post(ctx, moneyPath(ModePayment, 0), f)
	if err != nil {
		return MoneyResult{}, err
	}
	return decodeMoneyResult("payment", raw)
}

func (s *PaymentService) Update(ctx context.Context, id int64, p UpdatePaymentParams) (MoneyResult, error) {
	if err := p.validate(id); err != nil {
		return MoneyResult{}, err
	}
	f := newMoneyForm()
	f.Set("amount", p.Amount.String())
	f.Set("date", p.Date.String())
	setOptionalInt(f, "from_account_id", p.FromAccountID)
	setOptionalInt(f, "genre_id", p.GenreID)
	setOptionalInt(f, "category_id", p.CategoryID)
	setOptionalString(f, "place_uid", p.PlaceUID)
	setOptionalString(f, "comment", p.Comment)

	raw, err := s.transport.Put(ctx, moneyPath(ModePayment, id), f)
	if err != nil {
		return MoneyResult{}, err
	}
	return decodeMoneyResult("payment", raw)
}

func (s *PaymentService) Delete(ctx context.Context, id int64) (MoneyResult, error) {
	return deleteMoney(ctx, s.transport, ModePayment, id)
}

func deleteMoney(ctx context.Context, t *Transport, mode Mode, id int64) (MoneyResult, error) {
	v := newValidator()
	v.positiveID("id", id)
	if err := v.err(); err != nil {
		return MoneyResult{}, err
	}
	raw, err := t.Delete(ctx, moneyPath(mode, id), nil)
	if err != nil {
		return MoneyResult{}, err
	}
	return decodeMoneyResult(mode.String(), raw)
}
