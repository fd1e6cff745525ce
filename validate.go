package zaim

import (
	"fmt"
	"net/url"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const (
	maxTextLength = 100
	maxPageLimit  = 100
	dateWindow    = 5 // years either side of today
)

// now is replaced in tests.
var now = time.Now

// Ptr returns a pointer to v. Optional parameters are pointers; nil means the
// field is left out of the request.
func Ptr[T any](v T) *T { return &v }

// validator collects every violation of a parameter set.
type validator struct {
	errs  []FieldError
	today Date
}

func newValidator() *validator {
	n := now().In(Location)
	return &validator{today: NewDate(n.Year(), n.Month(), n.Day())}
}

func (v *validator) add(field, format string, args ...any) {
	v.errs = append(v.errs, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

func (v *validator) positiveID(field string, id int64) {
	if id <= 0 {
		v.add(field, "must be a positive number")
	}
}

func (v *validator) optionalID(field string, id *int64) {
	if id != nil {
		v.positiveID(field, *id)
	}
}

func (v *validator) amount(field string, a decimal.Decimal) {
	if !a.IsPositive() {
		v.add(field, "must be a positive number")
	}
}

// date requires d to be set and within five years of today.
func (v *validator) date(field string, d Date) {
	if d.IsZero() {
		v.add(field, "is required")
		return
	}
	t := d.Time()
	if t.Before(v.today.Time().AddDate(-dateWindow, 0, 0)) {
		v.add(field, "must not be more than %d years in the past", dateWindow)
	}
	if t.After(v.today.Time().AddDate(dateWindow, 0, 0)) {
		v.add(field, "must not be more than %d years in the future", dateWindow)
	}
}

func (v *validator) maxLength(field string, s *string) {
	if s != nil && utf8.RuneCountInString(*s) > maxTextLength {
		v.add(field, "must not exceed %d characters", maxTextLength)
	}
}

func (v *validator) mode(field string, m *Mode) {
	if m != nil && !m.Valid() {
		v.add(field, "must be one of income, payment, transfer")
	}
}

func (v *validator) order(field string, o *Order) {
	if o != nil && !o.Valid() {
		v.add(field, "must be one of id, date")
	}
}

func (v *validator) limit(field string, n *int) {
	if n != nil && (*n < 1 || *n > maxPageLimit) {
		v.add(field, "must be an integer between 1 and %d", maxPageLimit)
	}
}

func (v *validator) page(field string, n *int) {
	if n != nil && *n < 1 {
		v.add(field, "must be a positive integer")
	}
}

func (v *validator) err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return &ValidationError{Errors: v.errs}
}

// newMoneyForm starts every money query and mutation. mapping=1 selects the
// richer response schema and is not configurable.
func newMoneyForm() url.Values {
	f := url.Values{}
	f.Set("mapping", "1")
	return f
}

func setInt(f url.Values, key string, n int64) {
	f.Set(key, strconv.FormatInt(n, 10))
}

func setOptionalInt(f url.Values, key string, n *int64) {
	if n != nil {
		setInt(f, key, *n)
	}
}

func setOptionalCount(f url.Values, key string, n *int) {
	if n != nil {
		f.Set(key, strconv.Itoa(*n))
	}
}

func setOptionalString(f url.Values, key string, s *string) {
	if s != nil {
		f.Set(key, *s)
	}
}

func setOptionalDate(f url.Values, key string, d *Date) {
	if d != nil {
		f.Set(key, d.String())
	}
}
