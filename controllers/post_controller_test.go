package controllers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studylink/api-go/models"
	"github.com/studylink/api-go/services"
)

func TestCreatePostSuspensionGate(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db)
	user := createUser(t, db, "writer")
	header := authHeader(t, user)

	post := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/posts",
			strings.NewReader(`{"title":"hello","content":"world"}`))
		req.Header.Set("Authorization", header)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := post()
	require.Equal(t, http.StatusCreated, w.Code)

	// The token stays valid for a day; the suspension must bite anyway.
	until := time.Now().Add(24 * time.Hour)
	require.NoError(t, services.NewSuspensionService(db).Suspend(user.ID, until, "spam"))

	w = post()
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Account suspended")

	var count int64
	require.NoError(t, db.Model(&models.Post{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count, "no post is persisted while suspended")

	t.Run("elapsed suspension posts again without an unsuspend", func(t *testing.T) {
		past := time.Now().Add(-time.Minute)
		require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).
			Update("suspend_until", past).Error)

		w := post()
		assert.Equal(t, http.StatusCreated, w.Code)
	})
}
