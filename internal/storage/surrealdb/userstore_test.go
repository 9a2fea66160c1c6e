package surrealdb

import (
	"context"
	"testing"

	"github.com/sajid-itinnovator/stock-analyzer/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUser(t *testing.T) {
	db := testDB(t)
	store := NewUserStore(db, testLogger())
	ctx := context.Background()

	profile := models.MockProfile("John Doe", "john.doe@example.com")
	require.NoError(t, store.SaveUser(ctx, profile))

	got, err := store.GetUser(ctx, "john.doe@example.com")
	require.NoError(t, err)
	assert.Equal(t, "John Doe", got.Name)
	assert.Equal(t, "john.doe@example.com", got.Email)
	assert.Equal(t, models.Subscription{Plan: "Pro", Status: "Active"}, got.Subscription)
	assert.Equal(t, models.Notifications{Email: true, Push: false, Reports: true}, got.Notifications)
	assert.Equal(t, 3, got.RiskProfile.RiskLevel)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestGetUser_CaseInsensitiveEmail(t *testing.T) {
	db := testDB(t)
	store := NewUserStore(db, testLogger())
	ctx := context.Background()

	require.NoError(t, store.SaveUser(ctx, models.MockProfile("", "Jane@Example.com")))

	got, err := store.GetUser(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Jane@Example.com", got.Email)
}

func TestGetUserNotFound(t *testing.T) {
	db := testDB(t)
	store := NewUserStore(db, testLogger())

	_, err := store.GetUser(context.Background(), "nobody@example.com")
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrUserNotFound)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestSaveUser_Overwrite(t *testing.T) {
	db := testDB(t)
	store := NewUserStore(db, testLogger())
	ctx := context.Background()

	profile := models.MockProfile("", "")
	require.NoError(t, store.SaveUser(ctx, profile))
	created := profile.CreatedAt

	profile.Name = "Johnny"
	profile.RiskProfile = models.RiskProfile{InvestmentStyle: "Aggressive", RiskLevel: 5}
	require.NoError(t, store.SaveUser(ctx, profile))

	got, err := store.GetUser(ctx, profile.Email)
	require.NoError(t, err)
	assert.Equal(t, "Johnny", got.Name)
	assert.Equal(t, "Aggressive", got.RiskProfile.InvestmentStyle)
	assert.True(t, got.CreatedAt.Equal(created), "created_at preserved across saves")
}

func TestSaveUser_RequiresEmail(t *testing.T) {
	db := testDB(t)
	store := NewUserStore(db, testLogger())

	err := store.SaveUser(context.Background(), &models.UserProfile{Name: "No Email"})
	assert.ErrorIs(t, err, models.ErrInvalidRecord)
}
