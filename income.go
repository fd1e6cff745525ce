package zaim

import (
	"context"

	"github.com/shopspring/decimal"
)

type CreateIncomeParams struct {
	CategoryID int64
	Amount     decimal.Decimal
	Date       Date

	ToAccountID *int64
	Place       *string
	Comment     *string
}

func (p CreateIncomeParams) validate() error {
	v := newValidator()
	v.positiveID("categoryId", p.CategoryID)
	v.amount("amount", p.Amount)
	v.date("date", p.Date)
	v.optionalID("toAccountId", p.ToAccountID)
	v.maxLength("place", p.Place)
	v.maxLength("comment", p.Comment)
	return v.err()
}

type UpdateIncomeParams struct {
	Amount decimal.Decimal
	Date   Date

	ToAccountID *int64
	CategoryID  *int64
	PlaceUID    *string
	Comment     *string
}

func (p UpdateIncomeParams) validate(id int64) error {
	v := newValidator()
	v.positiveID("id", id)
	v.amount("amount", p.Amount)
	v.date("date", p.Date)
	v.optionalID("toAccountId", p.ToAccountID)
	v.optionalID("categoryId", p.CategoryID)
	v.maxLength("comment", p.Comment)
	return v.err()
}

type IncomeService struct {
	transport *Transport
}

func (s *IncomeService) Create(ctx context.Context, p CreateIncomeParams) (MoneyResult, error) {
	if err := p.validate(); err != nil {
		return MoneyResult{}, err
	}
	f := newMoneyForm()
	setInt(f, "category_id", p.CategoryID)
	f.Set("amount", p.Amount.String())
	f.Set("date", p.Date.String())
	setOptionalInt(f, "to_account_id", p.ToAccountID)
	setOptionalString(f, "place", p.Place)
	setOptionalString(f, "comment", p.Comment)

	raw, err := s.transport.Post(ctx, moneyPath(ModeIncome, 0), f)
	if err != nil {
		return MoneyResult{}, err
	}
	return decodeMoneyResult("income", raw)
}

func (s *IncomeService) Update(ctx context.Context, id int64, p UpdateIncomeParams) (MoneyResult, error) {
	if err := p.validate(id); err != nil {
		return MoneyResult{}, err
	}
	f := newMoneyForm()
	f.Set("amount", p.Amount.String())
	f.Set("date", p.Date.String())
	setOptionalInt(f, "to_account_id", p.ToAccountID)
	setOptionalInt(f, "category_id", p.CategoryID)
	setOptionalString(f, "place_uid", p.PlaceUID)
	setOptionalString(f, "comment", p.Comment)

	raw, err := s.transport.Put(ctx, moneyPath(ModeIncome, id), f)
	if err != nil {
		return MoneyResult{}, err
	}
	return decodeMoneyResult("income", raw)
}

func (s *IncomeService) Delete(ctx context.Context, id int64) (MoneyResult, error) {
	return deleteMoney(ctx, s.transport, ModeIncome, id)
}
