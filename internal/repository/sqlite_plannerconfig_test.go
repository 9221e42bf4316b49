package repository

import (
	"context"
	"testing"
	"time"

	"github.com/mariakotova/atelier/internal/domain"
	"github.com/mariakotova/atelier/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlannerConfigRepo_GetByUser_NotFound(t *testing.T) {
	database := testutil.NewTestDB(t)
	settings := NewSQLitePlannerConfigRepo(database)

	_, err := settings.GetByUser(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPlannerConfigRepo_UpsertAndGet_RoundTrip(t *testing.T) {
	database := testutil.NewTestDB(t)
	settings := NewSQLitePlannerConfigRepo(database)
	ctx := context.Background()

	cfg := testutil.NewTestConfig(testutil.TestUser)
	require.NoError(t, settings.Upsert(ctx, cfg))

	got, err := settings.GetByUser(ctx, testutil.TestUser)
	require.NoError(t, err)
	assert.Equal(t, 8, got.HoursPerDay)
	assert.Equal(t, "1,2,3,4,5", got.WorkDays.String())
	assert.True(t, got.WorkDays[1])
	assert.False(t, got.WorkDays[6])
}

func TestPlannerConfigRepo_Upsert_OverwritesExisting(t *testing.T) {
	database := testutil.NewTestDB(t)
	settings := NewSQLitePlannerConfigRepo(database)
	ctx := context.Background()

	cfg := testutil.NewTestConfig(testutil.TestUser)
	require.NoError(t, settings.Upsert(ctx, cfg))

	cfg.HoursPerDay = 6
	cfg.WorkDays = domain.ParseWorkDays("2,4,6")
	cfg.UpdatedAt = cfg.UpdatedAt.Add(time.Hour)
	require.NoError(t, settings.Upsert(ctx, cfg))

	got, err := settings.GetByUser(ctx, testutil.TestUser)
	require.NoError(t, err)
	assert.Equal(t, 6, got.HoursPerDay)
	assert.Equal(t, "2,4,6", got.WorkDays.String())
}
