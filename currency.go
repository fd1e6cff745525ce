package zaim

import "context"

type Currency struct {
	CurrencyCode string `json:"currencyCode"`
	Unit         string `json:"unit"`
	Name         string `json:"name"`
	// Point is the number of decimal places used by the currency.
	Point int `json:"point"`
}

type currencyWire struct {
	CurrencyCode string `json:"currency_code"`
	Unit         string `json:"unit"`
	Name         string `json:"name"`
	Point        int    `json:"point"`
}

func (w *currencyWire) UnmarshalJSON(data []byte) error {
	type plain currencyWire
	return decodeRequired(data, (*plain)(w),
		"currency_code", "unit", "name", "point",
	)
}

func (w currencyWire) normalize() (Currency, error) {
	return Currency{CurrencyCode: w.CurrencyCode, Unit: w.Unit, Name: w.Name, Point: w.Point}, nil
}

type CurrencyService struct {
	transport *Transport
}

// List returns every currency the service knows.
func (s *CurrencyService) List(ctx context.Context) ([]Currency, error) {
	raw, err := s.transport.Get(ctx, "/v2/currency")
	if err != nil {
		return nil, err
	}
	var res struct {
		Currencies []currencyWire `json:"currencies"`
	}
	if err := decodeInto(raw, "currency", &res); err != nil {
		return nil, err
	}
	return normalizeAll("currency", "currencies", res.Currencies, currencyWire.normalize)
}
