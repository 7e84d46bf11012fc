package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/24studio/finance-backend/internal/repository/storage"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const (
	MaxReceiptSize  = 5 * 1024 * 1024 // 5MB
	MaxReceiptWidth = 1600
	JPEGQuality     = 85
	// PresignExpiry bounds how long a receipt link stays fetchable
	PresignExpiry = 15 * time.Minute
)

var (
	ErrReceiptTooLarge             = errors.New("file too large. Maximum size is 5MB")
	ErrInvalidReceiptFormat        = errors.New("invalid format. Supported: JPEG, PNG, PDF")
	ErrInvalidReceiptData          = errors.New("invalid receipt data")
	ErrReceiptStorageNotConfigured = errors.New("receipt storage not configured")
)

// allowedReceiptExtensions maps extensions to content types
var allowedReceiptExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".pdf":  "application/pdf",
}

var unsafePathChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// ReceiptService handles receipt file validation, processing and storage
type ReceiptService struct {
	storage storage.ReceiptRepository
}

// NewReceiptService creates a new ReceiptService
func NewReceiptService(storage storage.ReceiptRepository) *ReceiptService {
	return &ReceiptService{storage: storage}
}

// IsEnabled indicates whether uploads are supported (storage configured)
func (s *ReceiptService) IsEnabled() bool {
	return s != nil && s.storage != nil
}

// Upload validates a receipt file and stores it, returning the object path.
// Wide image receipts are downscaled and re-encoded as JPEG; PDFs are
// stored untouched.
func (s *ReceiptService) Upload(ctx context.Context, data []byte, filename string) (string, error) {
	if !s.IsEnabled() {
		return "", ErrReceiptStorageNotConfigured
	}
	if len(data) == 0 {
		return "", ErrInvalidReceiptData
	}
	if len(data) > MaxReceiptSize {
		return "", ErrReceiptTooLarge
	}

	ext := strings.ToLower(filepath.Ext(filename))
	contentType, ok := allowedReceiptExtensions[ext]
	if !ok {
		return "", ErrInvalidReceiptFormat
	}

	if contentType != "application/pdf" {
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return "", ErrInvalidReceiptData
		}
		if img.Bounds().Dx() > MaxReceiptWidth {
			resized := imaging.Resize(img, MaxReceiptWidth, 0, imaging.Lanczos)
			var buf bytes.Buffer
			if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: JPEGQuality}); err != nil {
				return "", fmt.Errorf("failed to encode receipt image: %w", err)
			}
			data = buf.Bytes()
			contentType = "image/jpeg"
			ext = ".jpg"
		}
	}

	objectPath := fmt.Sprintf("receipts/%d_%s_%s%s",
		time.Now().Unix(),
		uuid.New().String()[:8],
		sanitizeFilename(strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))),
		ext,
	)

	return s.storage.Upload(ctx, objectPath, bytes.NewReader(data), contentType, int64(len(data)))
}

// PresignURL returns a temporary download URL for a stored receipt
func (s *ReceiptService) PresignURL(ctx context.Context, objectPath string) (string, error) {
	if !s.IsEnabled() {
		return "", ErrReceiptStorageNotConfigured
	}
	if objectPath == "" || strings.Contains(objectPath, "..") {
		return "", ErrInvalidReceiptData
	}
	return s.storage.GeneratePresignedURL(ctx, objectPath, PresignExpiry)
}

// Delete removes a stored receipt, best effort
func (s *ReceiptService) Delete(ctx context.Context, objectPath string) error {
	if !s.IsEnabled() {
		return ErrReceiptStorageNotConfigured
	}
	return s.storage.Delete(ctx, objectPath)
}

func sanitizeFilename(name string) string {
	name = unsafePathChars.ReplaceAllString(name, "_")
	if len(name) > 64 {
		name = name[:64]
	}
	if name == "" {
		name = "receipt"
	}
	return name
}
