package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"statusworld/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func authedApp(s *Server, userID uint) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		return c.Next()
	})
	return app
}

func TestCreateStatus(t *testing.T) {
	s, deps := newTestServer()
	app := authedApp(s, 1)
	app.Post("/statuses", s.CreateStatus)

	tests := []struct {
		name           string
		body           map[string]string
		mockSetup      func()
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]string{
				"media_url": "/media/abc123.webp",
				"caption":   "sunset",
			},
			mockSetup: func() {
				deps.userRepo.On("GetByID", mock.Anything, uint(1)).
					Return(&models.User{ID: 1, DisplayName: "Ada"}, nil)
				deps.statusRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Missing media URL",
			body: map[string]string{
				"caption": "no media",
			},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Unknown media kind",
			body: map[string]string{
				"media_url":  "/media/abc123.webp",
				"media_kind": "hologram",
			},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/statuses", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, _ := app.Test(req)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestGetFeed_FiltersAndRanks(t *testing.T) {
	s, deps := newTestServer()
	app := fiber.New()
	app.Get("/feed", s.GetFeed)

	now := time.Now()
	snapshot := []models.Status{
		{ID: 1, MediaURL: "/m/1", CreatedAt: now.Add(-time.Hour)},
		{ID: 2, MediaURL: "/m/2", Featured: true, CreatedAt: now.Add(-2 * time.Hour)},
		{ID: 3, MediaURL: "/m/3", Hidden: true, CreatedAt: now},
		{ID: 4, MediaURL: "/m/4", CreatedAt: now.Add(-49 * time.Hour)},
	}
	deps.statusRepo.On("ListSnapshot", mock.Anything, uint(0)).Return(snapshot, nil)

	req := httptest.NewRequest(http.MethodGet, "/feed", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got []models.Status
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))

	// Hidden and expired are dropped; featured ranks first.
	require.Len(t, got, 2)
	assert.Equal(t, uint(2), got[0].ID)
	assert.Equal(t, uint(1), got[1].ID)
}

func TestToggleLike(t *testing.T) {
	s, deps := newTestServer()
	app := authedApp(s, 7)
	app.Post("/statuses/:id/like", s.ToggleLike)

	status := &models.Status{ID: 3, MediaURL: "/m/3", LikeCount: 1}
	deps.statusRepo.On("GetByID", mock.Anything, uint(3), uint(0)).Return(status, nil)
	deps.statusRepo.On("IsLiked", mock.Anything, uint(7), uint(3)).Return(false, nil)
	deps.statusRepo.On("Like", mock.Anything, uint(7), uint(3)).Return(true, nil)
	liked := &models.Status{ID: 3, MediaURL: "/m/3", LikeCount: 2, Liked: true}
	deps.statusRepo.On("GetByID", mock.Anything, uint(3), uint(7)).Return(liked, nil)

	req := httptest.NewRequest(http.MethodPost, "/statuses/3/like", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got models.Status
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.True(t, got.Liked)
	assert.Equal(t, 2, got.LikeCount)
	deps.statusRepo.AssertCalled(t, "Like", mock.Anything, uint(7), uint(3))
}

func TestToggleLike_InvalidID(t *testing.T) {
	s, _ := newTestServer()
	app := authedApp(s, 7)
	app.Post("/statuses/:id/like", s.ToggleLike)

	req := httptest.NewRequest(http.MethodPost, "/statuses/0/like", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRecordView(t *testing.T) {
	s, deps := newTestServer()
	app := authedApp(s, 7)
	app.Post("/statuses/:id/view", s.RecordView)

	deps.statusRepo.On("IncrementViewCount", mock.Anything, uint(9)).Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/statuses/9/view", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestDeleteStatus_NotOwnerNotAdmin(t *testing.T) {
	s, deps := newTestServer()
	app := authedApp(s, 2)
	app.Delete("/statuses/:id", s.DeleteStatus)

	deps.statusRepo.On("GetByID", mock.Anything, uint(5), uint(0)).
		Return(&models.Status{ID: 5, AuthorID: 1}, nil)
	deps.userRepo.On("GetByID", mock.Anything, uint(2)).
		Return(&models.User{ID: 2}, nil)

	req := httptest.NewRequest(http.MethodDelete, "/statuses/5", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestCreateComment(t *testing.T) {
	s, deps := newTestServer()
	app := authedApp(s, 4)
	app.Post("/statuses/:id/comments", s.CreateComment)

	deps.statusRepo.On("GetByID", mock.Anything, uint(6), uint(0)).
		Return(&models.Status{ID: 6, AuthorID: 9}, nil)
	deps.userRepo.On("GetByID", mock.Anything, uint(4)).
		Return(&models.User{ID: 4, DisplayName: "Kim"}, nil)
	deps.commentRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	deps.statusRepo.On("IncrementCommentCount", mock.Anything, uint(6)).Return(nil)

	body, _ := json.Marshal(map[string]string{"text": "love this"})
	req := httptest.NewRequest(http.MethodPost, "/statuses/6/comments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var got models.Comment
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "love this", got.Text)
	assert.Equal(t, "Kim", got.AuthorName)
}

func TestCreateComment_Blank(t *testing.T) {
	s, _ := newTestServer()
	app := authedApp(s, 4)
	app.Post("/statuses/:id/comments", s.CreateComment)

	body, _ := json.Marshal(map[string]string{"text": "   "})
	req := httptest.NewRequest(http.MethodPost, "/statuses/6/comments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
