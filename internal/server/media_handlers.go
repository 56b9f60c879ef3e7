package server

import (
	"io"
	"strings"

	"statusworld/internal/models"
	"statusworld/internal/service"

	"github.com/gofiber/fiber/v2"
)

// MediaUploadResponse is the API response after uploading a media file.
type MediaUploadResponse struct {
	ID        uint   `json:"id"`
	Hash      string `json:"hash"`
	Kind      string `json:"kind"`
	MimeType  string `json:"mime_type"`
	SizeBytes int64  `json:"size_bytes"`
	URL       string `json:"url"`
}

// UploadMedia handles POST /api/media/upload
func (s *Server) UploadMedia(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	file, err := c.FormFile("file")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("No file uploaded"))
	}

	src, err := file.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Unable to read uploaded file"))
	}
	defer func() { _ = src.Close() }()

	content, err := io.ReadAll(src)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Unable to read uploaded file"))
	}

	uploaded, err := s.mediaService.Upload(c.UserContext(), service.UploadMediaInput{
		UserID:      userID,
		Filename:    file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		Content:     content,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(MediaUploadResponse{
		ID:        uploaded.ID,
		Hash:      uploaded.Hash,
		Kind:      uploaded.Kind,
		MimeType:  uploaded.MimeType,
		SizeBytes: uploaded.SizeBytes,
		URL:       uploaded.URL,
	})
}

// ServeMedia handles GET /media/:filename
func (s *Server) ServeMedia(c *fiber.Ctx) error {
	filename := strings.TrimSpace(c.Params("filename"))
	if filename == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid media file"))
	}

	path, err := s.mediaService.ResolveForServing(filename)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.SendFile(path)
}
