package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"statusworld/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func adminApp(s *Server, userID uint) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		return c.Next()
	})
	app.Use(s.AdminRequired())
	return app
}

func TestAdminRequired_RejectsNonAdmin(t *testing.T) {
	s, deps := newTestServer()
	deps.userRepo.On("GetByID", mock.Anything, uint(2)).
		Return(&models.User{ID: 2}, nil)

	app := adminApp(s, 2)
	app.Get("/admin/statuses", s.AdminListStatuses)

	req := httptest.NewRequest(http.MethodGet, "/admin/statuses", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAdminSetFeatured(t *testing.T) {
	s, deps := newTestServer()
	deps.userRepo.On("GetByID", mock.Anything, uint(1)).
		Return(&models.User{ID: 1, IsAdmin: true}, nil)
	deps.statusRepo.On("SetFeatured", mock.Anything, uint(7), true).Return(nil)
	deps.statusRepo.On("GetByID", mock.Anything, uint(7), uint(0)).
		Return(&models.Status{ID: 7, MediaURL: "/m/7", Featured: true}, nil)

	app := adminApp(s, 1)
	app.Post("/admin/statuses/:id/feature", s.AdminSetFeatured)

	body, _ := json.Marshal(map[string]bool{"featured": true})
	req := httptest.NewRequest(http.MethodPost, "/admin/statuses/7/feature", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got models.Status
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.True(t, got.Featured)
}

func TestAdminSetViews(t *testing.T) {
	s, deps := newTestServer()
	deps.userRepo.On("GetByID", mock.Anything, uint(1)).
		Return(&models.User{ID: 1, IsAdmin: true}, nil)

	app := adminApp(s, 1)
	app.Put("/admin/statuses/:id/views", s.AdminSetViews)

	t.Run("Overwrites counter", func(t *testing.T) {
		deps.statusRepo.On("SetViewCount", mock.Anything, uint(7), 4200).Return(nil)
		deps.statusRepo.On("GetByID", mock.Anything, uint(7), uint(0)).
			Return(&models.Status{ID: 7, MediaURL: "/m/7", ViewCount: 4200}, nil)

		body, _ := json.Marshal(map[string]int{"views": 4200})
		req := httptest.NewRequest(http.MethodPut, "/admin/statuses/7/views", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got models.Status
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, 4200, got.ViewCount)
	})

	t.Run("Rejects negative", func(t *testing.T) {
		body, _ := json.Marshal(map[string]int{"views": -1})
		req := httptest.NewRequest(http.MethodPut, "/admin/statuses/7/views", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestAdminBanUser_SelfBanRejected(t *testing.T) {
	s, deps := newTestServer()
	deps.userRepo.On("GetByID", mock.Anything, uint(1)).
		Return(&models.User{ID: 1, IsAdmin: true}, nil)

	app := adminApp(s, 1)
	app.Post("/admin/users/:id/ban", s.AdminBanUser)

	req := httptest.NewRequest(http.MethodPost, "/admin/users/1/ban", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAdminPromote(t *testing.T) {
	s, deps := newTestServer()
	deps.userRepo.On("GetByID", mock.Anything, uint(1)).
		Return(&models.User{ID: 1, IsAdmin: true}, nil)
	deps.userRepo.On("SetAdmin", mock.Anything, uint(4), true).Return(nil)
	deps.userRepo.On("GetByID", mock.Anything, uint(4)).
		Return(&models.User{ID: 4, IsAdmin: true}, nil)

	app := adminApp(s, 1)
	app.Post("/admin/users/:id/promote-admin", s.AdminPromote)

	req := httptest.NewRequest(http.MethodPost, "/admin/users/4/promote-admin", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got models.User
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.True(t, got.IsAdmin)
	deps.userRepo.AssertCalled(t, "SetAdmin", mock.Anything, uint(4), true)
}

func TestAdminListStatuses_IncludesHidden(t *testing.T) {
	s, deps := newTestServer()
	deps.userRepo.On("GetByID", mock.Anything, uint(1)).
		Return(&models.User{ID: 1, IsAdmin: true}, nil)
	deps.statusRepo.On("ListSnapshot", mock.Anything, uint(0)).Return([]models.Status{
		{ID: 1, MediaURL: "/m/1"},
		{ID: 2, MediaURL: "/m/2", Hidden: true},
	}, nil)

	app := adminApp(s, 1)
	app.Get("/admin/statuses", s.AdminListStatuses)

	req := httptest.NewRequest(http.MethodGet, "/admin/statuses", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got []models.Status
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Len(t, got, 2)
}
