package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/gookit/validate"

	"github.com/Veraticus/context-lens/internal/common"
)

// UserProfile is the locally entered identity of the device owner.
// At most one profile exists at a time.
type UserProfile struct {
	CreatedAt time.Time `json:"createdAt"`
	Username  string    `json:"username" validate:"required|maxLen:64"`
	Currency  string    `json:"currency" validate:"required|len:3|alpha"`
}

// NewUserProfile builds a normalized profile from login form input.
// Whitespace around the username is dropped and the currency is upper-cased;
// an empty currency falls back to DefaultCurrency.
func NewUserProfile(username, currency string, now time.Time) (*UserProfile, error) {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = DefaultCurrency
	}

	profile := &UserProfile{
		Username:  strings.TrimSpace(username),
		Currency:  currency,
		CreatedAt: now,
	}
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	return profile, nil
}

// Validate checks the profile fields.
func (p *UserProfile) Validate() error {
	if p == nil {
		return fmt.Errorf("%w: profile is nil", common.ErrInvalidProfile)
	}
	if strings.TrimSpace(p.Username) == "" {
		return fmt.Errorf("%w: username is required", common.ErrInvalidProfile)
	}

	v := validate.Struct(p)
	if !v.Validate() {
		return fmt.Errorf("%w: %s", common.ErrInvalidProfile, v.Errors.One())
	}
	return nil
}
