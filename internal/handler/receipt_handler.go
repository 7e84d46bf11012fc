package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/24studio/finance-backend/internal/middleware"
	"github.com/24studio/finance-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// ReceiptHandler handles receipt upload and presign HTTP requests
type ReceiptHandler struct {
	receiptService *service.ReceiptService
}

// NewReceiptHandler creates a new ReceiptHandler
func NewReceiptHandler(receiptService *service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

// UploadReceiptResponse represents the upload response
type UploadReceiptResponse struct {
	Path string `json:"path"`
}

// PresignReceiptResponse represents the presign response
type PresignReceiptResponse struct {
	URL string `json:"url"`
}

// UploadReceipt handles POST /api/v1/receipts
func (h *ReceiptHandler) UploadReceipt(c echo.Context) error {
	principal := middleware.GetPrincipal(c)
	if principal == nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	if h.receiptService == nil || !h.receiptService.IsEnabled() {
		return NewServiceUnavailableError(c, "Receipt uploads are disabled (storage not configured)")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return NewValidationError(c, "No file provided", []ValidationError{
			{Field: "file", Message: "File is required"},
		})
	}

	src, err := file.Open()
	if err != nil {
		log.Error().Err(err).Msg("Failed to open uploaded receipt")
		return NewInternalError(c, "Failed to process file")
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		log.Error().Err(err).Msg("Failed to read uploaded receipt")
		return NewInternalError(c, "Failed to read file")
	}

	path, err := h.receiptService.Upload(c.Request().Context(), data, file.Filename)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReceiptTooLarge):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "file", Message: "File too large. Maximum size is 5MB"},
			})
		case errors.Is(err, service.ErrInvalidReceiptFormat):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "file", Message: "Invalid format. Supported: JPEG, PNG, PDF"},
			})
		case errors.Is(err, service.ErrInvalidReceiptData):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "file", Message: "File content does not match its extension"},
			})
		}
		log.Error().Err(err).Int32("user_id", principal.UserID).Msg("Failed to upload receipt")
		return NewInternalError(c, "Failed to upload receipt")
	}

	log.Info().Int32("user_id", principal.UserID).Str("path", path).Msg("Receipt uploaded")

	return c.JSON(http.StatusCreated, UploadReceiptResponse{Path: path})
}

// PresignReceipt handles GET /api/v1/receipts/*
func (h *ReceiptHandler) PresignReceipt(c echo.Context) error {
	if h.receiptService == nil || !h.receiptService.IsEnabled() {
		return NewServiceUnavailableError(c, "Receipt storage is not configured")
	}

	path := c.Param("*")
	if path == "" {
		return NewValidationError(c, "Receipt path is required", nil)
	}

	url, err := h.receiptService.PresignURL(c.Request().Context(), path)
	if err != nil {
		if errors.Is(err, service.ErrInvalidReceiptData) {
			return NewValidationError(c, "Invalid receipt path", nil)
		}
		log.Error().Err(err).Str("path", path).Msg("Failed to presign receipt URL")
		return NewNotFoundError(c, "Receipt not found")
	}

	return c.JSON(http.StatusOK, PresignReceiptResponse{URL: url})
}
