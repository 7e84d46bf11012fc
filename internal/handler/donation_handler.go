package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/24studio/finance-backend/internal/domain"
	"github.com/24studio/finance-backend/internal/middleware"
	"github.com/24studio/finance-backend/internal/service"
	"github.com/24studio/finance-backend/internal/ws"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// DonationHandler handles donation-related HTTP requests
type DonationHandler struct {
	donationService *service.DonationService
	events          ws.EventPublisher
}

// NewDonationHandler creates a new DonationHandler
func NewDonationHandler(donationService *service.DonationService, events ws.EventPublisher) *DonationHandler {
	return &DonationHandler{donationService: donationService, events: events}
}

// CreateDonationRequest represents the create donation request body
type CreateDonationRequest struct {
	DonorID            int32   `json:"donorId"`
	Date               string  `json:"date"`
	Amount             string  `json:"amount"`
	Type               string  `json:"type"`
	PaymentMethod      string  `json:"paymentMethod"`
	AccountID          int32   `json:"accountId"`
	TransactionRef     *string `json:"transactionRef"`
	Purpose            *string `json:"purpose"`
	TaxReceiptRequired bool    `json:"taxReceiptRequired"`
	ReceiptPath        *string `json:"receiptPath"`
}

// DonationResponse represents a donation in API responses
type DonationResponse struct {
	ID                 int32     `json:"id"`
	DonorID            int32     `json:"donorId"`
	DonorName          string    `json:"donorName,omitempty"`
	Date               time.Time `json:"date"`
	Amount             string    `json:"amount"`
	Type               string    `json:"type"`
	PaymentMethod      string    `json:"paymentMethod"`
	AccountID          int32     `json:"accountId"`
	TransactionRef     *string   `json:"transactionRef,omitempty"`
	Purpose            *string   `json:"purpose,omitempty"`
	TaxReceiptRequired bool      `json:"taxReceiptRequired"`
	ReceiptPath        *string   `json:"receiptPath,omitempty"`
	RecordedByID       int32     `json:"recordedById"`
	RecordedByName     string    `json:"recordedByName,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
}

func toDonationResponse(d *domain.Donation) DonationResponse {
	return DonationResponse{
		ID:                 d.ID,
		DonorID:            d.DonorID,
		DonorName:          d.DonorName,
		Date:               d.Date,
		Amount:             d.Amount.StringFixed(2),
		Type:               d.Type,
		PaymentMethod:      d.PaymentMethod,
		AccountID:          d.AccountID,
		TransactionRef:     d.TransactionRef,
		Purpose:            d.Purpose,
		TaxReceiptRequired: d.TaxReceiptRequired,
		ReceiptPath:        d.ReceiptPath,
		RecordedByID:       d.RecordedByID,
		RecordedByName:     d.RecordedByName,
		CreatedAt:          d.CreatedAt,
	}
}

// CreateDonation handles POST /api/v1/donations
func (h *DonationHandler) CreateDonation(c echo.Context) error {
	principal := middleware.GetPrincipal(c)
	if principal == nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req CreateDonationRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	input := service.CreateDonationInput{
		DonorID:            req.DonorID,
		Date:               req.Date,
		Amount:             amount,
		Type:               req.Type,
		PaymentMethod:      req.PaymentMethod,
		AccountID:          req.AccountID,
		TransactionRef:     req.TransactionRef,
		Purpose:            req.Purpose,
		TaxReceiptRequired: req.TaxReceiptRequired,
		ReceiptPath:        req.ReceiptPath,
	}

	donation, err := h.donationService.CreateDonation(principal, input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			return NewForbiddenError(c, "Your role does not permit recording donations")
		case errors.Is(err, domain.ErrInvalidAmount):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "amount", Message: "Amount must be greater than zero"},
			})
		case errors.Is(err, domain.ErrCategoryRequired):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "type", Message: "Donation type is required"},
			})
		case errors.Is(err, domain.ErrDateRequired):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "date", Message: "A valid date (YYYY-MM-DD) is required"},
			})
		case errors.Is(err, domain.ErrDonorNotFound):
			return NewNotFoundError(c, "Donor not found")
		case errors.Is(err, domain.ErrAccountNotFound):
			return NewNotFoundError(c, "Account not found")
		}
		log.Error().Err(err).Msg("Failed to create donation")
		return NewInternalError(c, "Failed to create donation")
	}

	log.Info().
		Int32("donation_id", donation.ID).
		Int32("donor_id", donation.DonorID).
		Str("amount", donation.Amount.String()).
		Msg("Donation recorded")
	h.events.Publish(ws.DonationCreated(donation.ID))

	return c.JSON(http.StatusCreated, toDonationResponse(donation))
}

// GetDonations handles GET /api/v1/donations
func (h *DonationHandler) GetDonations(c echo.Context) error {
	donations, err := h.donationService.GetDonations()
	if err != nil {
		log.Error().Err(err).Msg("Failed to get donations")
		return NewInternalError(c, "Failed to get donations")
	}

	response := make([]DonationResponse, len(donations))
	for i, donation := range donations {
		response[i] = toDonationResponse(donation)
	}
	return c.JSON(http.StatusOK, response)
}
