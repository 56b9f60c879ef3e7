package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"statusworld/internal/config"
	"statusworld/internal/models"
	"statusworld/internal/observability"
	"statusworld/internal/repository"

	"github.com/chai2010/webp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoder
)

const (
	DefaultMediaUploadDir       = "/tmp/statusworld/uploads"
	DefaultMediaMaxUploadSizeMB = 25
	DefaultMediaBaseURL         = "/media"
	MasterMaxSize               = 2048
	WebPQuality                 = 70
)

type UploadMediaInput struct {
	UserID      uint
	Filename    string
	ContentType string
	Content     []byte
}

type MediaService struct {
	repo               repository.MediaRepository
	uploadDir          string
	baseURL            string
	maxUploadSizeBytes int64
}

func NewMediaService(repo repository.MediaRepository, cfg *config.Config) *MediaService {
	uploadDir := DefaultMediaUploadDir
	baseURL := DefaultMediaBaseURL
	maxUploadSizeMB := DefaultMediaMaxUploadSizeMB

	if cfg != nil {
		if cfg.MediaUploadDir != "" {
			uploadDir = cfg.MediaUploadDir
		}
		if cfg.MediaBaseURL != "" {
			baseURL = strings.TrimRight(cfg.MediaBaseURL, "/")
		}
		if cfg.MediaMaxUploadSizeMB > 0 {
			maxUploadSizeMB = cfg.MediaMaxUploadSizeMB
		}
	}

	return &MediaService{
		repo:               repo,
		uploadDir:          uploadDir,
		baseURL:            baseURL,
		maxUploadSizeBytes: int64(maxUploadSizeMB) * 1024 * 1024,
	}
}

// Upload stores the file and returns its public record. Images are re-encoded
// to a WebP master; video and audio are stored byte-for-byte. Re-uploading
// identical content by the same user returns the existing record.
func (s *MediaService) Upload(ctx context.Context, in UploadMediaInput) (*models.Media, error) {
	if in.UserID == 0 {
		return nil, models.NewValidationError("Invalid user")
	}
	if len(in.Content) == 0 {
		return nil, models.NewValidationError("No file uploaded")
	}
	if int64(len(in.Content)) > s.maxUploadSizeBytes {
		return nil, models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", s.maxUploadSizeBytes/(1024*1024)))
	}

	detectedType := http.DetectContentType(in.Content)
	kind := kindForContentType(detectedType)
	if kind == "" {
		// Sniffing misses some containers; fall back to the client's word,
		// then the filename.
		kind = kindForContentType(normalizeContentType(in.ContentType))
	}
	if kind == "" {
		kind = kindForExtension(in.Filename)
	}
	if kind == "" {
		return nil, models.NewValidationError("Unsupported media type")
	}

	content := in.Content
	mimeType := detectedType
	ext := extensionForContentType(detectedType, in.Filename)

	if kind == models.MediaKindImage {
		decoded, _, err := image.Decode(bytes.NewReader(in.Content))
		if err != nil {
			return nil, models.NewValidationError("Invalid image file")
		}
		master := resizeToFit(decoded, MasterMaxSize, MasterMaxSize)
		encoded, err := encodeWebP(master, WebPQuality)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		content = encoded
		mimeType = "image/webp"
		ext = ".webp"
	}

	hash := buildMediaHash(in.UserID, content)
	existing, err := s.repo.GetByHash(ctx, hash)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	filename := hash + ext
	if err := writeBytesToFile(filepath.Join(s.uploadDir, filename), content); err != nil {
		return nil, models.NewInternalError(err)
	}

	record := &models.Media{
		Hash:      hash,
		URL:       s.baseURL + "/" + filename,
		Kind:      kind,
		MimeType:  mimeType,
		SizeBytes: int64(len(content)),
		UserID:    in.UserID,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		_ = os.Remove(filepath.Join(s.uploadDir, filename))
		return nil, err
	}

	observability.MediaUploadBytes.WithLabelValues(kind).Observe(float64(record.SizeBytes))
	return record, nil
}

// ResolveForServing maps a requested filename back to a file on disk. The
// filename must be hash+ext to rule out path traversal.
func (s *MediaService) ResolveForServing(filename string) (string, error) {
	base := filepath.Base(filename)
	ext := filepath.Ext(base)
	hash := strings.TrimSuffix(base, ext)
	if !isValidMediaHash(hash) {
		return "", models.NewValidationError("Invalid media path")
	}
	fullPath := filepath.Join(s.uploadDir, base)
	if _, err := os.Stat(fullPath); err != nil {
		if os.IsNotExist(err) {
			return "", models.NewNotFoundError("Media", base)
		}
		return "", models.NewInternalError(err)
	}
	return fullPath, nil
}

func kindForContentType(contentType string) string {
	ct := normalizeContentType(contentType)
	switch {
	case strings.HasPrefix(ct, "image/"):
		return models.MediaKindImage
	case strings.HasPrefix(ct, "video/"):
		return models.MediaKindVideo
	case strings.HasPrefix(ct, "audio/"):
		return models.MediaKindAudio
	default:
		return ""
	}
}

func kindForExtension(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return models.MediaKindImage
	case ".mp4", ".webm", ".mov":
		return models.MediaKindVideo
	case ".mp3", ".ogg", ".m4a", ".wav":
		return models.MediaKindAudio
	default:
		return ""
	}
}

func extensionForContentType(contentType, filename string) string {
	switch normalizeContentType(contentType) {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "video/mp4":
		return ".mp4"
	case "video/webm":
		return ".webm"
	case "audio/mpeg":
		return ".mp3"
	case "audio/ogg":
		return ".ogg"
	case "audio/wave", "audio/wav", "audio/x-wav":
		return ".wav"
	}
	if ext := strings.ToLower(filepath.Ext(filename)); ext != "" {
		return ext
	}
	return ".bin"
}

func normalizeContentType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return strings.ToLower(strings.TrimSpace(mediaType))
}

func resizeToFit(src image.Image, maxWidth, maxHeight int) image.Image {
	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	if w <= 0 || h <= 0 {
		return src
	}
	if w <= maxWidth && h <= maxHeight {
		return src
	}

	scaleW := float64(maxWidth) / float64(w)
	scaleH := float64(maxHeight) / float64(h)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}
	newW := int(float64(w) * scale)
	newH := int(float64(h) * scale)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
	return dst
}

func encodeWebP(img image.Image, quality int) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := webp.Encode(buf, img, &webp.Options{Quality: float32(quality)}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func buildMediaHash(userID uint, content []byte) string {
	h := sha256.New()
	_, _ = fmt.Fprintf(h, "%d:", userID)
	h.Write(content)
	return hex.EncodeToString(h.Sum(nil))
}

// isValidMediaHash checks that the hash is strictly lowercase hex (SHA-256
// style). This prevents path traversal attacks via crafted filenames.
func isValidMediaHash(hash string) bool {
	if len(hash) == 0 || len(hash) > 128 {
		return false
	}
	for _, c := range hash {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

func writeBytesToFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
