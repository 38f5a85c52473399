package repository_test

import (
	"context"
	"testing"
	"time"

	. "github.com/rmaciel/fundiario/internal/repository"
	"github.com/rmaciel/fundiario/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReminderMark_ClaimOncePerDay(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteReminderMarkRepo(database)

	day := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	claimed, err := repo.Claim(ctx, testutil.TestOwner, day)
	require.NoError(t, err)
	assert.True(t, claimed)

	claimed, err = repo.Claim(ctx, testutil.TestOwner, day)
	require.NoError(t, err)
	assert.False(t, claimed)
}

func TestReminderMark_NewDayClaimsAgain(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteReminderMarkRepo(database)

	day := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	claimed, err := repo.Claim(ctx, testutil.TestOwner, day)
	require.NoError(t, err)
	require.True(t, claimed)

	claimed, err = repo.Claim(ctx, testutil.TestOwner, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.True(t, claimed)
}

func TestReminderMark_ScopedByOwner(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteReminderMarkRepo(database)

	day := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	claimed, err := repo.Claim(ctx, testutil.TestOwner, day)
	require.NoError(t, err)
	require.True(t, claimed)

	claimed, err = repo.Claim(ctx, "outro-dono", day)
	require.NoError(t, err)
	assert.True(t, claimed)
}

func TestAppointmentRepo_ListOnDay(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteAppointmentRepo(database)

	day := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	today := testutil.NewTestAppointment("Visita de campo", day.Add(9*time.Hour))
	tomorrow := testutil.NewTestAppointment("Cartório", day.AddDate(0, 0, 1))
	require.NoError(t, repo.Create(ctx, today))
	require.NoError(t, repo.Create(ctx, tomorrow))

	appts, err := repo.ListOnDay(ctx, testutil.TestOwner, day)
	require.NoError(t, err)
	require.Len(t, appts, 1)
	assert.Equal(t, "Visita de campo", appts[0].Title)
}
