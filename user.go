package zaim

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// User is the profile of the authenticated user.
type User struct {
	ID           int64  `json:"id"`
	Login        string `json:"login"`
	Name         string `json:"name"`
	InputCount   int    `json:"inputCount"`
	DayCount     int    `json:"dayCount"`
	RepeatCount  int    `json:"repeatCount"`
	Day          int    `json:"day"`
	Week         int    `json:"week"`
	Month        int    `json:"month"`
	CurrencyCode string `json:"currencyCode"`

	ProfileImageURL string    `json:"profileImageUrl"`
	CoverImageURL   string    `json:"coverImageUrl"`
	ProfileModified time.Time `json:"profileModified"`
}

type userWire struct {
	ID              int64  `json:"id"`
	Login           string `json:"login"`
	Name            string `json:"name"`
	InputCount      int    `json:"input_count"`
	DayCount        int    `json:"day_count"`
	RepeatCount     int    `json:"repeat_count"`
	Day             int    `json:"day"`
	Week            int    `json:"week"`
	Month           int    `json:"month"`
	CurrencyCode    string `json:"currency_code"`
	ProfileImageURL string `json:"profile_image_url"`
	CoverImageURL   string `json:"cover_image_url"`
	ProfileModified string `json:"profile_modified"`
}

func (w *userWire) UnmarshalJSON(data []byte) error {
	type plain userWire
	return decodeRequired(data, (*plain)(w),
		"id", "login", "name", "input_count", "day_count", "repeat_count", "day",
		"week", "month", "currency_code", "profile_image_url", "cover_image_url",
		"profile_modified",
	)
}

func (w userWire) normalize() (User, error) {
	modified, err := parseTimestamp(w.ProfileModified)
	if err != nil {
		return User{}, fmt.Errorf("profile_modified: %w", err)
	}
	return User{
		ID:              w.ID,
		Login:           w.Login,
		Name:            w.Name,
		InputCount:      w.InputCount,
		DayCount:        w.DayCount,
		RepeatCount:     w.RepeatCount,
		Day:             w.Day,
		Week:            w.Week,
		Month:           w.Month,
		CurrencyCode:    w.CurrencyCode,
		ProfileImageURL: w.ProfileImageURL,
		CoverImageURL:   w.CoverImageURL,
		ProfileModified: modified,
	}, nil
}

type UserService struct {
	transport *Transport
}

// Verify returns the profile of the user the access token belongs to. It is
// the cheapest way to check that a token pair works.
func (s *UserService) Verify(ctx context.Context) (User, error) {
	raw, err := s.transport.Get(ctx, "/v2/home/user/verify")
	if err != nil {
		return User{}, err
	}
	var res struct {
		Me *userWire `json:"me"`
	}
	if err := decodeInto(raw, "user", &res); err != nil {
		return User{}, err
	}
	if res.Me == nil {
		return User{}, &DecodeError{Resource: "user", Err: errors.New(`missing field "me"`)}
	}
	user, err := res.Me.normalize()
	if err != nil {
		return User{}, &DecodeError{Resource: "user", Err: err}
	}
	return user, nil
}
