package server

import (
	"time"

	"statusworld/internal/models"
	"statusworld/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateComment handles POST /api/statuses/:id/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	statusID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.statusService.AddComment(ctx, service.AddCommentInput{
		UserID:   userID,
		StatusID: statusID,
		Text:     req.Text,
	})
	if err != nil {
		// The comment row may exist even when the counter bump failed;
		// clients re-fetch on the feed event either way.
		if comment == nil {
			return models.RespondWithError(c, models.StatusForError(err), err)
		}
	}

	s.publishFeedEvent(EventCommentCreated, map[string]interface{}{
		"status_id":  statusID,
		"comment_id": comment.ID,
		"author_id":  comment.AuthorID,
		"created_at": time.Now().UTC().Format(time.RFC3339Nano),
	})

	// Tell the status author someone commented.
	if status, gerr := s.statusService.GetStatus(ctx, statusID, 0); gerr == nil && status.AuthorID != userID {
		s.publishUserEvent(status.AuthorID, EventCommentCreated, map[string]interface{}{
			"status_id":   statusID,
			"comment_id":  comment.ID,
			"author_name": comment.AuthorName,
		})
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

// GetComments handles GET /api/statuses/:id/comments
func (s *Server) GetComments(c *fiber.Ctx) error {
	ctx := c.Context()
	statusID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	page := parsePagination(c, 50)
	comments, err := s.statusService.ListComments(ctx, statusID, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(comments)
}
