package model

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/context-lens/internal/common"
)

func TestNewUserProfile(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		username     string
		currency     string
		wantUsername string
		wantCurrency string
		wantErr      bool
	}{
		{
			name:         "valid profile",
			username:     "Dana",
			currency:     "EUR",
			wantUsername: "Dana",
			wantCurrency: "EUR",
		},
		{
			name:         "trims username and upper-cases currency",
			username:     "  Dana  ",
			currency:     " eur ",
			wantUsername: "Dana",
			wantCurrency: "EUR",
		},
		{
			name:         "empty currency defaults to USD",
			username:     "Sam",
			currency:     "",
			wantUsername: "Sam",
			wantCurrency: "USD",
		},
		{
			name:         "unlisted but well-formed currency",
			username:     "Sam",
			currency:     "CHF",
			wantUsername: "Sam",
			wantCurrency: "CHF",
		},
		{
			name:     "blank username",
			username: "   ",
			currency: "USD",
			wantErr:  true,
		},
		{
			name:     "currency too long",
			username: "Sam",
			currency: "EURO",
			wantErr:  true,
		},
		{
			name:     "currency with digits",
			username: "Sam",
			currency: "U5D",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile, err := NewUserProfile(tt.username, tt.currency, now)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, common.ErrInvalidProfile))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantUsername, profile.Username)
			assert.Equal(t, tt.wantCurrency, profile.Currency)
			assert.Equal(t, now, profile.CreatedAt)
		})
	}
}

func TestUserProfile_ValidateNil(t *testing.T) {
	var p *UserProfile
	err := p.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInvalidProfile)
}

func TestIsSupportedCurrency(t *testing.T) {
	assert.True(t, IsSupportedCurrency("KES"))
	assert.True(t, IsSupportedCurrency(DefaultCurrency))
	assert.False(t, IsSupportedCurrency("CHF"))
	assert.False(t, IsSupportedCurrency("usd"))
}
