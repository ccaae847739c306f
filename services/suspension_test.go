package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studylink/api-go/models"
)

func TestSuspendAndLift(t *testing.T) {
	db := newTestDB(t)
	svc := NewSuspensionService(db)

	user := createUser(t, db, "offender")
	until := time.Now().Add(24 * time.Hour)

	require.NoError(t, svc.Suspend(user.ID, until, "spam"))

	var loaded models.User
	require.NoError(t, db.First(&loaded, user.ID).Error)
	assert.Equal(t, models.StatusSuspended, loaded.Status)
	require.NotNil(t, loaded.SuspendUntil)
	assert.WithinDuration(t, until, *loaded.SuspendUntil, time.Second)
	assert.Equal(t, "spam", loaded.SuspendReason)
	assert.True(t, svc.IsCurrentlySuspended(&loaded))

	require.NoError(t, svc.Lift(user.ID))
	loaded = models.User{}
	require.NoError(t, db.First(&loaded, user.ID).Error)
	assert.Equal(t, models.StatusActive, loaded.Status)
	assert.Nil(t, loaded.SuspendUntil)
	assert.Empty(t, loaded.SuspendReason)
	assert.False(t, svc.IsCurrentlySuspended(&loaded))
}

func TestSuspendUnknownMember(t *testing.T) {
	db := newTestDB(t)
	svc := NewSuspensionService(db)

	err := svc.Suspend(9999, time.Now().Add(time.Hour), "spam")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Lift(9999), ErrNotFound)
}

func TestSuspensionExpiresWithoutLift(t *testing.T) {
	db := newTestDB(t)
	svc := NewSuspensionService(db)

	user := createUser(t, db, "offender")
	until := time.Now().Add(24 * time.Hour)
	require.NoError(t, svc.Suspend(user.ID, until, "harassment"))

	var loaded models.User
	require.NoError(t, db.First(&loaded, user.ID).Error)
	assert.True(t, svc.IsCurrentlySuspended(&loaded))

	// Advance virtual time past the expiry. The stored status still reads
	// suspended, but the suspension no longer counts.
	svc.now = func() time.Time { return until.Add(time.Minute) }

	require.NoError(t, db.First(&loaded, user.ID).Error)
	assert.Equal(t, models.StatusSuspended, loaded.Status)
	assert.False(t, svc.IsCurrentlySuspended(&loaded))
}

func TestCheckLogin(t *testing.T) {
	db := newTestDB(t)
	svc := NewSuspensionService(db)

	t.Run("active member passes", func(t *testing.T) {
		user := createUser(t, db, "active")
		assert.NoError(t, svc.CheckLogin(user))
	})

	t.Run("suspended member is rejected with reason and expiry", func(t *testing.T) {
		user := createUser(t, db, "suspended")
		until := time.Now().Add(time.Hour)
		require.NoError(t, svc.Suspend(user.ID, until, "spam"))

		var loaded models.User
		require.NoError(t, db.First(&loaded, user.ID).Error)

		err := svc.CheckLogin(&loaded)
		require.Error(t, err)
		var suspended *SuspendedError
		require.ErrorAs(t, err, &suspended)
		assert.Equal(t, "spam", suspended.Reason)
		assert.WithinDuration(t, until, suspended.Until, time.Second)
	})

	t.Run("elapsed suspension logs in before unsuspend", func(t *testing.T) {
		user := createUser(t, db, "elapsed")
		until := time.Now().Add(time.Hour)
		require.NoError(t, svc.Suspend(user.ID, until, "spam"))
		svc.now = func() time.Time { return until.Add(time.Minute) }
		defer func() { svc.now = time.Now }()

		var loaded models.User
		require.NoError(t, db.First(&loaded, user.ID).Error)
		assert.NoError(t, svc.CheckLogin(&loaded))
	})

	t.Run("withdrawn member is rejected", func(t *testing.T) {
		user := createUser(t, db, "gone")
		require.NoError(t, db.Model(user).Update("status", models.StatusWithdrawn).Error)

		var loaded models.User
		require.NoError(t, db.First(&loaded, user.ID).Error)
		assert.ErrorIs(t, svc.CheckLogin(&loaded), ErrWithdrawn)
	})
}
