package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/24studio/finance-backend/internal/domain"
	"github.com/24studio/finance-backend/internal/middleware"
	"github.com/24studio/finance-backend/internal/service"
	"github.com/24studio/finance-backend/internal/ws"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// DonorHandler handles donor-related HTTP requests
type DonorHandler struct {
	donorService *service.DonorService
	events       ws.EventPublisher
}

// NewDonorHandler creates a new DonorHandler
func NewDonorHandler(donorService *service.DonorService, events ws.EventPublisher) *DonorHandler {
	return &DonorHandler{donorService: donorService, events: events}
}

// CreateDonorRequest represents the create donor request body
type CreateDonorRequest struct {
	Name                       string  `json:"name"`
	Email                      *string `json:"email"`
	Phone                      *string `json:"phone"`
	Address                    *string `json:"address"`
	NationalID                 *string `json:"nationalId"`
	Status                     string  `json:"status"`
	YearlyContributionRequired *string `json:"yearlyContributionRequired"`
}

// DonorResponse represents a donor in API responses
type DonorResponse struct {
	ID                         int32      `json:"id"`
	Name                       string     `json:"name"`
	Email                      *string    `json:"email,omitempty"`
	Phone                      *string    `json:"phone,omitempty"`
	Address                    *string    `json:"address,omitempty"`
	NationalID                 *string    `json:"nationalId,omitempty"`
	Status                     string     `json:"status"`
	YearlyContributionRequired *string    `json:"yearlyContributionRequired,omitempty"`
	TotalDonated               string     `json:"totalDonated"`
	LastDonationDate           *time.Time `json:"lastDonationDate,omitempty"`
	CreatedAt                  time.Time  `json:"createdAt"`
}

// DonorStatsResponse summarizes a donor's giving for the profile view
type DonorStatsResponse struct {
	YearlyDonated    string     `json:"yearlyDonated"`
	MonthlyDonated   string     `json:"monthlyDonated"`
	LifetimeDonated  string     `json:"lifetimeDonated"`
	LastDonationDate *time.Time `json:"lastDonationDate,omitempty"`
}

// DonorProfileResponse is a donor with stats and full donation history
type DonorProfileResponse struct {
	Donor   DonorResponse      `json:"donor"`
	Stats   DonorStatsResponse `json:"stats"`
	History []DonationResponse `json:"history"`
}

func toDonorResponse(d *domain.Donor) DonorResponse {
	resp := DonorResponse{
		ID:               d.ID,
		Name:             d.Name,
		Email:            d.Email,
		Phone:            d.Phone,
		Address:          d.Address,
		NationalID:       d.NationalID,
		Status:           string(d.Status),
		TotalDonated:     d.TotalDonated.StringFixed(2),
		LastDonationDate: d.LastDonationDate,
		CreatedAt:        d.CreatedAt,
	}
	if d.YearlyContributionRequired != nil {
		s := d.YearlyContributionRequired.StringFixed(2)
		resp.YearlyContributionRequired = &s
	}
	return resp
}

// CreateDonor handles POST /api/v1/donors
func (h *DonorHandler) CreateDonor(c echo.Context) error {
	principal := middleware.GetPrincipal(c)
	if principal == nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req CreateDonorRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	var yearly *decimal.Decimal
	if req.YearlyContributionRequired != nil && *req.YearlyContributionRequired != "" {
		parsed, err := decimal.NewFromString(*req.YearlyContributionRequired)
		if err != nil {
			return NewValidationError(c, "Invalid yearly contribution", []ValidationError{
				{Field: "yearlyContributionRequired", Message: "Must be a valid decimal number"},
			})
		}
		yearly = &parsed
	}

	input := service.CreateDonorInput{
		Name:                       req.Name,
		Email:                      req.Email,
		Phone:                      req.Phone,
		Address:                    req.Address,
		NationalID:                 req.NationalID,
		Status:                     domain.DonorStatus(req.Status),
		YearlyContributionRequired: yearly,
	}

	donor, err := h.donorService.CreateDonor(principal, input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			return NewForbiddenError(c, "Your role does not permit managing donors")
		case errors.Is(err, domain.ErrNameRequired):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "name", Message: "Name is required"},
			})
		case errors.Is(err, domain.ErrNameTooLong):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "name", Message: "Name must be 255 characters or less"},
			})
		case errors.Is(err, domain.ErrInvalidStatus):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "status", Message: "Status must be Internal or External"},
			})
		}
		log.Error().Err(err).Msg("Failed to create donor")
		return NewInternalError(c, "Failed to create donor")
	}

	log.Info().Int32("donor_id", donor.ID).Str("name", donor.Name).Msg("Donor created")
	h.events.Publish(ws.DonorCreated(donor.ID))

	return c.JSON(http.StatusCreated, toDonorResponse(donor))
}

// GetDonors handles GET /api/v1/donors
func (h *DonorHandler) GetDonors(c echo.Context) error {
	donors, err := h.donorService.GetDonors()
	if err != nil {
		log.Error().Err(err).Msg("Failed to get donors")
		return NewInternalError(c, "Failed to get donors")
	}

	response := make([]DonorResponse, len(donors))
	for i, donor := range donors {
		response[i] = toDonorResponse(donor)
	}
	return c.JSON(http.StatusOK, response)
}

// GetDonorProfile handles GET /api/v1/donors/:id
func (h *DonorHandler) GetDonorProfile(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid donor ID", nil)
	}

	profile, err := h.donorService.GetDonorProfile(int32(id))
	if err != nil {
		if errors.Is(err, domain.ErrDonorNotFound) {
			return NewNotFoundError(c, "Donor not found")
		}
		log.Error().Err(err).Int("donor_id", id).Msg("Failed to get donor profile")
		return NewInternalError(c, "Failed to get donor profile")
	}

	history := make([]DonationResponse, len(profile.History))
	for i, donation := range profile.History {
		history[i] = toDonationResponse(donation)
	}

	return c.JSON(http.StatusOK, DonorProfileResponse{
		Donor: toDonorResponse(profile.Donor),
		Stats: DonorStatsResponse{
			YearlyDonated:    profile.Stats.YearlyDonated.StringFixed(2),
			MonthlyDonated:   profile.Stats.MonthlyDonated.StringFixed(2),
			LifetimeDonated:  profile.Stats.LifetimeDonated.StringFixed(2),
			LastDonationDate: profile.Stats.LastDonationDate,
		},
		History: history,
	})
}
