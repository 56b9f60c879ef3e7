package server

import (
	"statusworld/internal/models"

	"github.com/gofiber/fiber/v2"
)

// AdminListStatuses handles GET /api/admin/statuses
// The moderation listing includes hidden and expired statuses.
func (s *Server) AdminListStatuses(c *fiber.Ctx) error {
	statuses, err := s.moderationService.ListAllStatuses(c.Context())
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(statuses)
}

// AdminSetFeatured handles POST /api/admin/statuses/:id/feature
func (s *Server) AdminSetFeatured(c *fiber.Ctx) error {
	statusID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Featured bool `json:"featured"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	status, err := s.moderationService.SetFeatured(c.Context(), statusID, req.Featured)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	s.publishModerationEvent(status)
	return c.JSON(status)
}

// AdminSetHidden handles POST /api/admin/statuses/:id/hide
func (s *Server) AdminSetHidden(c *fiber.Ctx) error {
	statusID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Hidden bool `json:"hidden"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	status, err := s.moderationService.SetHidden(c.Context(), statusID, req.Hidden)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	s.publishModerationEvent(status)
	return c.JSON(status)
}

// AdminSetViews handles PUT /api/admin/statuses/:id/views
// Unlike organic view counting this overwrites the counter outright.
func (s *Server) AdminSetViews(c *fiber.Ctx) error {
	statusID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Views int `json:"views"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	status, err := s.moderationService.SetViews(c.Context(), statusID, req.Views)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(status)
}

// AdminDeleteStatus handles DELETE /api/admin/statuses/:id
func (s *Server) AdminDeleteStatus(c *fiber.Ctx) error {
	statusID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.moderationService.DeleteStatus(c.Context(), statusID); err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	s.publishFeedEvent(EventStatusDeleted, map[string]interface{}{
		"status_id": statusID,
	})

	return c.SendStatus(fiber.StatusNoContent)
}

// AdminListUsers handles GET /api/admin/users
func (s *Server) AdminListUsers(c *fiber.Ctx) error {
	page := parsePagination(c, 50)

	users, err := s.userService.ListUsers(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(users)
}

// AdminBanUser handles POST /api/admin/users/:id/ban
func (s *Server) AdminBanUser(c *fiber.Ctx) error {
	return s.setBanned(c, true)
}

// AdminUnbanUser handles POST /api/admin/users/:id/unban
func (s *Server) AdminUnbanUser(c *fiber.Ctx) error {
	return s.setBanned(c, false)
}

func (s *Server) setBanned(c *fiber.Ctx, banned bool) error {
	adminID := c.Locals("userID").(uint)
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.moderationService.SetBanned(c.Context(), adminID, targetID, banned)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(user)
}

// AdminPromote handles POST /api/admin/users/:id/promote-admin
func (s *Server) AdminPromote(c *fiber.Ctx) error {
	return s.setAdmin(c, true)
}

// AdminDemote handles POST /api/admin/users/:id/demote-admin
func (s *Server) AdminDemote(c *fiber.Ctx) error {
	return s.setAdmin(c, false)
}

func (s *Server) setAdmin(c *fiber.Ctx, admin bool) error {
	adminID := c.Locals("userID").(uint)
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.moderationService.SetAdmin(c.Context(), adminID, targetID, admin)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(user)
}

// AdminStats handles GET /api/admin/stats
func (s *Server) AdminStats(c *fiber.Ctx) error {
	stats, err := s.moderationService.GetStats(c.Context())
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(stats)
}

func (s *Server) publishModerationEvent(status *models.Status) {
	s.publishFeedEvent(EventStatusModerated, map[string]interface{}{
		"status_id": status.ID,
		"featured":  status.Featured,
		"hidden":    status.Hidden,
	})
}
