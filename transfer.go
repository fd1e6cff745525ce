package zaim

import (
	"context"

	"github.com/shopspring/decimal"
)

// CreateTransferParams moves Amount between two of the user's accounts in a
// single entry.
type CreateTransferParams struct {
	Amount        decimal.Decimal
	Date          Date
	FromAccountID int64
	ToAccountID   int64

	Comment *string
}

func (p CreateTransferParams) validate() error {
	v := newValidator()
	v.amount("amount", p.Amount)
	v.date("date", p.Date)
	v.positiveID("fromAccountId", p.FromAccountID)
	v.positiveID("toAccountId", p.ToAccountID)
	v.maxLength("comment", p.Comment)
	return v.err()
}

type UpdateTransferParams struct {
	Amount decimal.Decimal
	Date   Date

	Comment *string
}

func (p UpdateTransferParams) validate(id int64) error {
	v := newValidator()
	v.positiveID("id", id)
	v.amount("amount", p.Amount)
	v.date("date", p.Date)
	v.maxLength("comment", p.Comment)
	return v.err()
}

type TransferService struct {
	transport *Transport
}

func (s *TransferService) Create(ctx context.Context, p CreateTransferParams) (MoneyResult, error) {
	if err := p.validate(); err != nil {
		return MoneyResult{}, err
	}
	f := newMoneyForm()
	f.Set("amount", p.Amount.String())
	f.Set("date", p.Date.String())
	setInt(f, "from_account_id", p.FromAccountID)
	setInt(f, "to_account_id", p.ToAccountID)
	setOptionalString(f, "comment", p.Comment)

	raw, err := s.transport.Post(ctx, moneyPath(ModeTransfer, 0), f)
	if err != nil {
		return MoneyResult{}, err
	}
	return decodeMoneyResult("transfer", raw)
}

func (s *TransferService) Update(ctx context.Context, id int64, p UpdateTransferParams) (MoneyResult, error) {
	if err := p.validate(id); err != nil {
		return MoneyResult{}, err
	}
	f := newMoneyForm()
	f.Set("amount", p.Amount.String())
	f.Set("date", p.Date.String())
	setOptionalString(f, "comment", p.Comment)

	raw, err := s.transport.Put(ctx, moneyPath(ModeTransfer, id), f)
	if err != nil {
		return MoneyResult{}, err
	}
	return decodeMoneyResult("transfer", raw)
}

func (s *TransferService) Delete(ctx context.Context, id int64) (MoneyResult, error) {
	return deleteMoney(ctx, s.transport, ModeTransfer, id)
}
