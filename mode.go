package zaim

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Mode is the kind of a money entry.
type Mode string

const (
	ModeIncome   Mode = "income"
	ModePayment  Mode = "payment"
	ModeTransfer Mode = "transfer"
)

func (m Mode) Valid() bool {
	switch m {
	case ModeIncome, ModePayment, ModeTransfer:
		return true
	}
	return false
}

func (m Mode) String() string { return string(m) }

// ParseMode accepts income, payment or transfer in any case.
func ParseMode(value string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(value)))
	if !m.Valid() {
		return "", fmt.Errorf("unknown mode %q", value)
	}
	return m, nil
}

// Decode implements envconfig.Decoder.
func (m *Mode) Decode(value string) error {
	parsed, err := ParseMode(value)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m *Mode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("mode: %w", err)
	}
	if !Mode(s).Valid() {
		return fmt.Errorf("unknown mode %q", s)
	}
	*m = Mode(s)
	return nil
}

// Order is the sort key of a money listing.
type Order string

const (
	OrderID   Order = "id"
	OrderDate Order = "date"
)

func (o Order) Valid() bool { return o == OrderID || o == OrderDate }
