package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"admin-gateway/internal/models"
	"admin-gateway/pkg/contract"
)

func userRouter(db *gorm.DB) *gin.Engine {
	h := NewUserHandler(db, nil)
	r := gin.New()
	r.GET("/api/users", h.GetUsers)
	r.GET("/api/users/metrics", h.GetMetrics)
	return r
}

func seedUsers(t *testing.T, db *gorm.DB) {
	t.Helper()

	number := "+15550001111"
	users := []models.User{
		{Name: "Ada", Email: "ada@example.com", Role: "admin", Active: true, Balance: 120.5, WhatsAppNumber: &number},
		{Name: "Bob", Email: "bob@example.com", Role: "user", Active: true},
		{Name: "Carol", Email: "carol@example.com", Role: "user", Active: false, Balance: 3},
	}
	for i := range users {
		require.NoError(t, db.Create(&users[i]).Error)
	}

	now := time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)
	sessions := []models.UserSession{
		{UserID: users[0].ID, Active: true, StartedAt: now.Add(-time.Hour), LastSeenAt: now},
		{UserID: users[0].ID, Active: true, StartedAt: now.Add(-10 * time.Minute), LastSeenAt: now.Add(5 * time.Minute)},
		{UserID: users[1].ID, Active: false, StartedAt: now.Add(-48 * time.Hour), LastSeenAt: now.Add(-47 * time.Hour)},
	}
	for i := range sessions {
		require.NoError(t, db.Create(&sessions[i]).Error)
	}
}

func TestGetUsers(t *testing.T) {
	db := openTestDB(t)
	seedUsers(t, db)
	r := userRouter(db)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var summaries []contract.UserSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summaries))
	require.Len(t, summaries, 3)

	// Every produced record satisfies the contract, role enum included.
	for _, s := range summaries {
		data, err := json.Marshal(s)
		require.NoError(t, err)
		_, err = contract.ValidateUserSummary(data)
		require.NoError(t, err, "user %d", s.ID)
	}

	ada, bob, carol := summaries[0], summaries[1], summaries[2]

	assert.Equal(t, contract.RoleAdmin, ada.Role)
	assert.True(t, ada.Role.IsAdmin())
	assert.Equal(t, int64(2), ada.SessionCount)
	require.NotNil(t, ada.LastSessionAt)
	assert.Equal(t, "2024-04-01T12:05:00Z", *ada.LastSessionAt)
	require.NotNil(t, ada.WhatsAppNumber)

	assert.Equal(t, contract.RoleUser, bob.Role)
	assert.Equal(t, int64(0), bob.SessionCount, "inactive sessions are not counted")
	assert.NotNil(t, bob.LastSessionAt, "last session covers inactive sessions too")

	assert.False(t, carol.Active)
	assert.Equal(t, int64(0), carol.SessionCount)
	assert.Nil(t, carol.LastSessionAt)
	assert.Nil(t, carol.AvatarURL)
}

func TestGetMetrics(t *testing.T) {
	db := openTestDB(t)
	seedUsers(t, db)
	r := userRouter(db)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	metrics, err := contract.ValidateUserMetrics(w.Body.Bytes())
	require.NoError(t, err)

	assert.Equal(t, int64(3), metrics.TotalUsers)
	assert.Equal(t, int64(2), metrics.ActiveUsers)
	assert.Equal(t, int64(1), metrics.InactiveUsers)
	assert.Equal(t, int64(2), metrics.ActiveSessions)
	assert.Equal(t, metrics.TotalUsers, metrics.ActiveUsers+metrics.InactiveUsers)
}

func TestGetMetrics_EmptyDatabase(t *testing.T) {
	r := userRouter(openTestDB(t))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	metrics, err := contract.ValidateUserMetrics(w.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, int64(0), metrics.TotalUsers)
	assert.Equal(t, int64(0), metrics.ActiveSessions)
}
