package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"collegeevents/internal/delivery/http/helpers"
	"collegeevents/internal/delivery/http/middleware"
	"collegeevents/internal/domain"
)

// RegisterParticipantRequest is the request body for POST /api/events/{eventID}/registrations.
type RegisterParticipantRequest struct {
	Name       string `json:"name" validate:"max=200"`
	Email      string `json:"email" validate:"omitempty,email"`
	Phone      string `json:"phone"`
	RegNo      string `json:"reg_no" validate:"max=64"`
	Department string `json:"department"`
	Year       string `json:"year"`
}

// Validate implements Validator. Email or reg_no identifies the participant.
func (req RegisterParticipantRequest) Validate() []string {
	if strings.TrimSpace(req.Email) == "" && strings.TrimSpace(req.RegNo) == "" {
		return []string{"email or reg_no is required"}
	}
	return nil
}

// UpdateRegistrationRequest is the request body for PUT /api/registrations/{registrationID}.
type UpdateRegistrationRequest struct {
	Status         *string        `json:"status" validate:"omitempty,oneof=Registered Attended Cancelled Waitlisted"`
	TeamName       *string        `json:"team_name" validate:"omitempty,max=200"`
	AdditionalInfo map[string]any `json:"additional_info"`
}

// RegistrationSuccessResponse is the success response envelope for endpoints returning one registration.
type RegistrationSuccessResponse struct {
	Data  *domain.Registration `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// EventRegistrationsSuccessResponse is the success response envelope for GET /api/events/{eventID}/registrations.
type EventRegistrationsSuccessResponse struct {
	Data  []*domain.RegistrationWithParticipant `json:"data"`
	Error *helpers.APIError                     `json:"error"`
}

// RegisteredEventsSuccessResponse is the success response envelope for GET /api/student/registered-events.
type RegisteredEventsSuccessResponse struct {
	Data  []*domain.RegistrationWithEvent `json:"data"`
	Error *helpers.APIError               `json:"error"`
}

type RegistrationController struct {
	Logger  *slog.Logger
	Service domain.RegistrationService
}

func NewRegistrationController(logger *slog.Logger, svc domain.RegistrationService) *RegistrationController {
	return &RegistrationController{
		Logger:  logger,
		Service: svc,
	}
}

// ListEventRegistrations godoc
// @Summary List an event's registrations
// @Description Registrations joined with participant data, newest first. Only the owning organizer may list.
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.EventRegistrationsSuccessResponse
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/registrations [get]
func (c *RegistrationController) ListEventRegistrations(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathUUID(w, r, "eventID")
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	regs, err := c.Service.ListByEvent(r.Context(), eventID, userID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	if regs == nil {
		regs = []*domain.RegistrationWithParticipant{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, regs)
}

// RegisterParticipant godoc
// @Summary Register a participant for an event
// @Description Finds the participant by email, then reg_no, or creates one. Returns 201 for a new registration and 200 with the existing one if already registered.
// @Tags registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body RegisterParticipantRequest true "Participant data"
// @Success 201 {object} controllers.RegistrationSuccessResponse "new registration"
// @Success 200 {object} controllers.RegistrationSuccessResponse "already registered"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/registrations [post]
func (c *RegistrationController) RegisterParticipant(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathUUID(w, r, "eventID")
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req RegisterParticipantRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	p := &domain.Participant{
		Name:       strings.TrimSpace(req.Name),
		Email:      domain.NormalizeEmail(req.Email),
		Phone:      strings.TrimSpace(req.Phone),
		RegNo:      strings.TrimSpace(req.RegNo),
		Department: strings.TrimSpace(req.Department),
		Year:       strings.TrimSpace(req.Year),
	}
	reg, created, err := c.Service.Register(r.Context(), eventID, userID, p)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	helpers.WriteJSONSuccess(w, status, reg)
}

// GetRegistration godoc
// @Summary Get a registration by ID
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param registrationID path string true "Registration ID (UUID)"
// @Success 200 {object} controllers.RegistrationSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /registrations/{registrationID} [get]
func (c *RegistrationController) GetRegistration(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathUUID(w, r, "registrationID")
	if !ok {
		return
	}
	reg, err := c.Service.GetByID(r.Context(), id)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, reg)
}

// UpdateRegistration godoc
// @Summary Update a registration
// @Description Updates status, team name and additional info. Only the event's organizer may update.
// @Tags registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param registrationID path string true "Registration ID (UUID)"
// @Param body body UpdateRegistrationRequest true "Fields to update"
// @Success 200 {object} controllers.RegistrationSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /registrations/{registrationID} [put]
func (c *RegistrationController) UpdateRegistration(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathUUID(w, r, "registrationID")
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req UpdateRegistrationRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	reg, err := c.Service.Update(r.Context(), id, userID, domain.RegistrationPatch{
		Status:         req.Status,
		TeamName:       req.TeamName,
		AdditionalInfo: req.AdditionalInfo,
	})
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, reg)
}

// DeleteRegistration godoc
// @Summary Delete a registration
// @Description Removes the registration and recomputes the event's registrations count.
// @Tags registrations
// @Security BearerAuth
// @Param registrationID path string true "Registration ID (UUID)"
// @Success 204 "No Content"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /registrations/{registrationID} [delete]
func (c *RegistrationController) DeleteRegistration(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathUUID(w, r, "registrationID")
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.Delete(r.Context(), id, userID); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListRegisteredEvents godoc
// @Summary List the current student's registered events
// @Description Matched through the participant record that shares the student's email.
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.RegisteredEventsSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /student/registered-events [get]
func (c *RegistrationController) ListRegisteredEvents(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	regs, err := c.Service.ListForUser(r.Context(), userID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	if regs == nil {
		regs = []*domain.RegistrationWithEvent{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, regs)
}
