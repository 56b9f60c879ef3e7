// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"time"

	"statusworld/internal/models"
	"statusworld/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetFeed handles GET /api/feed
func (s *Server) GetFeed(c *fiber.Ctx) error {
	ctx := c.Context()
	userID, _ := s.optionalUserID(c)

	statuses, err := s.statusService.GetFeed(ctx, userID)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(statuses)
}

// CreateStatus handles POST /api/statuses
func (s *Server) CreateStatus(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var req struct {
		MediaURL  string `json:"media_url"`
		MediaKind string `json:"media_kind"`
		Caption   string `json:"caption"`
		SongURL   string `json:"song_url,omitempty"`
		SongName  string `json:"song_name,omitempty"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	status, err := s.statusService.CreateStatus(ctx, service.CreateStatusInput{
		AuthorID:  userID,
		MediaURL:  req.MediaURL,
		MediaKind: req.MediaKind,
		Caption:   req.Caption,
		SongURL:   req.SongURL,
		SongName:  req.SongName,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	s.publishFeedEvent(EventStatusCreated, map[string]interface{}{
		"status_id":  status.ID,
		"author_id":  status.AuthorID,
		"created_at": time.Now().UTC().Format(time.RFC3339Nano),
	})

	return c.Status(fiber.StatusCreated).JSON(status)
}

// GetStatus handles GET /api/statuses/:id
func (s *Server) GetStatus(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID, _ := s.optionalUserID(c)

	status, err := s.statusService.GetStatus(ctx, id, userID)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(status)
}

// GetUserStatuses handles GET /api/users/:id/statuses
func (s *Server) GetUserStatuses(c *fiber.Ctx) error {
	ctx := c.Context()
	authorID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	page := parsePagination(c, 20)
	currentUserID := c.Locals("userID").(uint)

	statuses, err := s.statusService.GetUserStatuses(ctx, authorID, page.Limit, page.Offset, currentUserID)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(statuses)
}

// DeleteStatus handles DELETE /api/statuses/:id
func (s *Server) DeleteStatus(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	statusID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.statusService.DeleteStatus(ctx, userID, statusID); err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	s.publishFeedEvent(EventStatusDeleted, map[string]interface{}{
		"status_id": statusID,
	})

	return c.SendStatus(fiber.StatusNoContent)
}

// ToggleLike handles POST /api/statuses/:id/like
// The endpoint toggles the like: if already liked, it unlikes; if not liked,
// it likes.
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	statusID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	status, err := s.statusService.ToggleLike(ctx, userID, statusID)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	s.publishReactionEvent(status)
	return c.JSON(status)
}

// DoubleTap handles POST /api/statuses/:id/tap
// Taps landing within the double-tap window carry like intent: they like a
// not-yet-liked status and never unlike one.
func (s *Server) DoubleTap(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	statusID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	applied, status, err := s.statusService.DoubleTap(ctx, userID, statusID)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	if applied {
		s.publishReactionEvent(status)
	}

	return c.JSON(fiber.Map{
		"liked_applied": applied,
		"status":        status,
	})
}

// RecordView handles POST /api/statuses/:id/view
func (s *Server) RecordView(c *fiber.Ctx) error {
	ctx := c.Context()
	statusID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.statusService.RecordView(ctx, statusID); err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) publishReactionEvent(status *models.Status) {
	s.publishFeedEvent(EventStatusReactionUpdated, map[string]interface{}{
		"status_id":     status.ID,
		"like_count":    status.LikeCount,
		"comment_count": status.CommentCount,
		"updated_at":    time.Now().UTC().Format(time.RFC3339Nano),
	})
}
