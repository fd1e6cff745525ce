package zaim

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// Account is one of the user's accounts (wallet, bank, card).
type Account struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Modified        time.Time `json:"modified"`
	Sort            int       `json:"sort"`
	Active          bool      `json:"active"`
	LocalID         int64     `json:"localId"`
	WebsiteID       *int64    `json:"websiteId"`
	ParentAccountID *int64    `json:"parentAccountId"`
}

// DefaultAccount is an entry of the service wide account master list.
type DefaultAccount struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type accountWire struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Modified        string `json:"modified"`
	Sort            int    `json:"sort"`
	Active          int    `json:"active"`
	LocalID         int64  `json:"local_id"`
	WebsiteID       int64  `json:"website_id"`
	ParentAccountID int64  `json:"parent_account_id"`
}

func (w *accountWire) UnmarshalJSON(data []byte) error {
	type plain accountWire
	return decodeRequired(data, (*plain)(w),
		"id", "name", "modified", "sort", "active", "local_id", "website_id",
		"parent_account_id",
	)
}

func (w accountWire) normalize() (Account, error) {
	modified, err := parseTimestamp(w.Modified)
	if err != nil {
		return Account{}, fmt.Errorf("modified: %w", err)
	}
	return Account{
		ID:              w.ID,
		Name:            w.Name,
		Modified:        modified,
		Sort:            w.Sort,
		Active:          flag(w.Active),
		LocalID:         w.LocalID,
		WebsiteID:       nullID(w.WebsiteID),
		ParentAccountID: nullID(w.ParentAccountID),
	}, nil
}

func (w DefaultAccount) normalize() (DefaultAccount, error) { return w, nil }

// AccountService reads accounts.
type AccountService struct {
	transport *Transport
}

// List returns the accounts of the authenticated user.
func (s *AccountService) List(ctx context.Context) ([]Account, error) {
	raw, err := s.transport.Get(ctx, "/v2/home/account")
	if err != nil {
		return nil, err
	}
	var res struct {
		Accounts []accountWire `json:"accounts"`
	}
	if err := decodeInto(raw, "account", &res); err != nil {
		return nil, err
	}
	return normalizeAll("account", "accounts", res.Accounts, accountWire.normalize)
}

// Default returns the account master list in lang; an empty lang means "ja".
func (s *AccountService) Default(ctx context.Context, lang string) ([]DefaultAccount, error) {
	raw, err := s.transport.Get(ctx, "/v2/account?lang="+langOrDefault(lang))
	if err != nil {
		return nil, err
	}
	var res struct {
		Accounts []DefaultAccount `json:"accounts"`
	}
	if err := decodeInto(raw, "default account", &res); err != nil {
		return nil, err
	}
	return normalizeAll("default account", "accounts", res.Accounts, DefaultAccount.normalize)
}

const defaultLang = "ja"

func langOrDefault(lang string) string {
	if lang == "" {
		lang = defaultLang
	}
	return url.QueryEscape(lang)
}
