package controllers

import (
	"log/slog"
	"net/http"

	"collegeevents/internal/delivery/http/helpers"
	"collegeevents/internal/domain"
)

// UpdateParticipantRequest is the request body for PUT /api/participants/{participantID}.
// Omitted fields are unchanged; the result must keep an email or a registration number.
type UpdateParticipantRequest struct {
	Name       *string `json:"name" validate:"omitempty,max=200"`
	Email      *string `json:"email" validate:"omitempty,email"`
	Phone      *string `json:"phone"`
	RegNo      *string `json:"reg_no" validate:"omitempty,max=64"`
	Department *string `json:"department"`
	Year       *string `json:"year"`
}

// ParticipantSuccessResponse is the success response envelope for endpoints returning one participant.
type ParticipantSuccessResponse struct {
	Data  *domain.Participant `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// ParticipantPageSuccessResponse is the success response envelope for GET /api/participants (200).
type ParticipantPageSuccessResponse struct {
	Data  helpers.Page[*domain.Participant] `json:"data"`
	Error *helpers.APIError                 `json:"error"`
}

type ParticipantController struct {
	Logger  *slog.Logger
	Service domain.ParticipantService
}

func NewParticipantController(logger *slog.Logger, svc domain.ParticipantService) *ParticipantController {
	return &ParticipantController{
		Logger:  logger,
		Service: svc,
	}
}

// ListParticipants godoc
// @Summary List participants
// @Tags participants
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (1-based)" default(1)
// @Param page_size query int false "Items per page (max 100)" default(20)
// @Success 200 {object} controllers.ParticipantPageSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /participants [get]
func (c *ParticipantController) ListParticipants(w http.ResponseWriter, r *http.Request) {
	params := helpers.ParsePagination(r)
	participants, total, err := c.Service.List(r.Context(), params)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, helpers.NewPage(participants, params, total))
}

// GetParticipant godoc
// @Summary Get a participant by ID
// @Tags participants
// @Produce json
// @Security BearerAuth
// @Param participantID path string true "Participant ID (UUID)"
// @Success 200 {object} controllers.ParticipantSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /participants/{participantID} [get]
func (c *ParticipantController) GetParticipant(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathUUID(w, r, "participantID")
	if !ok {
		return
	}
	p, err := c.Service.GetByID(r.Context(), id)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, p)
}

// UpdateParticipant godoc
// @Summary Update a participant
// @Tags participants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param participantID path string true "Participant ID (UUID)"
// @Param body body UpdateParticipantRequest true "Fields to update"
// @Success 200 {object} controllers.ParticipantSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /participants/{participantID} [put]
func (c *ParticipantController) UpdateParticipant(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathUUID(w, r, "participantID")
	if !ok {
		return
	}
	var req UpdateParticipantRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	p, err := c.Service.Update(r.Context(), id, domain.ParticipantPatch{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		RegNo:      req.RegNo,
		Department: req.Department,
		Year:       req.Year,
	})
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, p)
}

// DeleteParticipant godoc
// @Summary Delete a participant
// @Description Deletes the participant and all its registrations. Matching sign-up sheet rows are marked "Deleted" when possible.
// @Tags participants
// @Security BearerAuth
// @Param participantID path string true "Participant ID (UUID)"
// @Success 204 "No Content"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /participants/{participantID} [delete]
func (c *ParticipantController) DeleteParticipant(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathUUID(w, r, "participantID")
	if !ok {
		return
	}
	if err := c.Service.Delete(r.Context(), id); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
