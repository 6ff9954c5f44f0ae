package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"collegeevents/internal/delivery/http/helpers"
	"collegeevents/internal/domain"
)

// VenueRequest is the request body for POST /api/venues and PUT /api/venues/{venueID}.
type VenueRequest struct {
	Name        string `json:"venue_name" validate:"required,max=200"`
	Description string `json:"venue_description"`
	ImageURL    string `json:"image_url" validate:"omitempty,url"`
	PhoneNumber string `json:"phone_number"`
	MailID      string `json:"mail_id" validate:"omitempty,email"`
}

func (req VenueRequest) toVenue(id string) *domain.Venue {
	return &domain.Venue{
		ID:          id,
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		ImageURL:    strings.TrimSpace(req.ImageURL),
		PhoneNumber: strings.TrimSpace(req.PhoneNumber),
		MailID:      strings.TrimSpace(req.MailID),
	}
}

// VenueSuccessResponse is the success response envelope for endpoints returning one venue.
type VenueSuccessResponse struct {
	Data  *domain.Venue     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// VenueListSuccessResponse is the success response envelope for GET /api/venues (200).
type VenueListSuccessResponse struct {
	Data  []*domain.Venue   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type VenueController struct {
	Logger  *slog.Logger
	Service domain.VenueService
}

func NewVenueController(logger *slog.Logger, svc domain.VenueService) *VenueController {
	return &VenueController{
		Logger:  logger,
		Service: svc,
	}
}

// ListVenues godoc
// @Summary List venues
// @Tags venues
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.VenueListSuccessResponse
// @Router /venues [get]
func (c *VenueController) ListVenues(w http.ResponseWriter, r *http.Request) {
	venues, err := c.Service.List(r.Context())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	if venues == nil {
		venues = []*domain.Venue{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, venues)
}

// GetVenue godoc
// @Summary Get a venue by ID
// @Tags venues
// @Produce json
// @Security BearerAuth
// @Param venueID path string true "Venue ID (UUID)"
// @Success 200 {object} controllers.VenueSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /venues/{venueID} [get]
func (c *VenueController) GetVenue(w http.ResponseWriter, r *http.Request) {
	venueID, ok := helpers.PathUUID(w, r, "venueID")
	if !ok {
		return
	}
	venue, err := c.Service.GetByID(r.Context(), venueID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, venue)
}

// CreateVenue godoc
// @Summary Create a venue
// @Tags venues
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body VenueRequest true "Venue data"
// @Success 201 {object} controllers.VenueSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /venues [post]
func (c *VenueController) CreateVenue(w http.ResponseWriter, r *http.Request) {
	var req VenueRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	venue := req.toVenue("")
	if err := c.Service.Create(r.Context(), venue); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, venue)
}

// UpdateVenue godoc
// @Summary Update a venue
// @Tags venues
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param venueID path string true "Venue ID (UUID)"
// @Param body body VenueRequest true "Venue data"
// @Success 200 {object} controllers.VenueSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /venues/{venueID} [put]
func (c *VenueController) UpdateVenue(w http.ResponseWriter, r *http.Request) {
	venueID, ok := helpers.PathUUID(w, r, "venueID")
	if !ok {
		return
	}
	var req VenueRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	venue := req.toVenue(venueID)
	if err := c.Service.Update(r.Context(), venue); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, venue)
}

// DeleteVenue godoc
// @Summary Delete a venue
// @Tags venues
// @Security BearerAuth
// @Param venueID path string true "Venue ID (UUID)"
// @Success 204 "No Content"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /venues/{venueID} [delete]
func (c *VenueController) DeleteVenue(w http.ResponseWriter, r *http.Request) {
	venueID, ok := helpers.PathUUID(w, r, "venueID")
	if !ok {
		return
	}
	if err := c.Service.Delete(r.Context(), venueID); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
