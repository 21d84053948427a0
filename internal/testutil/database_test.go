package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/context-lens/internal/model"
	"github.com/Veraticus/context-lens/internal/testutil/analyses"
)

func TestSetupTestDB_Empty(t *testing.T) {
	db := SetupTestDB(t)
	assert.Empty(t, db.MustHistory())
}

func TestSetupTestDBWithOptions_Seeds(t *testing.T) {
	profile, err := model.NewUserProfile("Dana", "EUR", time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	db := SetupTestDBWithOptions(t, TestDBOptions{
		User: profile,
		History: []Entry{
			{Note: "first", Result: analyses.Phone()},
			{Note: "second", Result: analyses.WashingMachine()},
		},
	})

	items := db.MustHistory()
	require.Len(t, items, 2)
	assert.Equal(t, "second", items[0].Note)
	assert.Equal(t, "Washing Machine", items[0].Title())
	assert.Equal(t, "first", items[1].Note)
}

func TestMustLogin(t *testing.T) {
	db := SetupTestDB(t)
	profile := db.MustLogin("  Sam ", "gbp")
	assert.Equal(t, "Sam", profile.Username)
	assert.Equal(t, "GBP", profile.Currency)
}
