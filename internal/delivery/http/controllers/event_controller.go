package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"collegeevents/internal/delivery/http/helpers"
	"collegeevents/internal/delivery/http/middleware"
	"collegeevents/internal/domain"
	"collegeevents/internal/signup"
)

// EventRequest is the request body for POST /api/events and PUT /api/events/{eventID}.
type EventRequest struct {
	Title           string `json:"title" validate:"required,max=200"`
	Description     string `json:"description"`
	Category        string `json:"category"`
	VenueID         string `json:"venue_id" validate:"omitempty,uuid"`
	Venue           string `json:"venue"`
	Date            string `json:"date"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	MaxParticipants int    `json:"max_participants" validate:"min=0"`
	Status          string `json:"status" validate:"omitempty,oneof=Green Yellow Red"`
	ImageURL        string `json:"image_url"`
	PhoneNumber     string `json:"phone_number"`
	MailID          string `json:"mail_id" validate:"omitempty,email"`
	SheetLink       string `json:"sheet_link"`
}

// Validate implements Validator. A non-empty sheet_link must contain a spreadsheet ID.
func (req EventRequest) Validate() []string {
	var errs []string
	if link := strings.TrimSpace(req.SheetLink); link != "" {
		if _, ok := signup.ExtractSheetID(link); !ok {
			errs = append(errs, "sheet_link must be a Google Sheets URL or spreadsheet ID")
		}
	}
	return errs
}

func (req EventRequest) toEvent(id, organizerID string) *domain.Event {
	return &domain.Event{
		ID:              id,
		OrganizerID:     organizerID,
		Title:           req.Title,
		Description:     req.Description,
		Category:        req.Category,
		VenueID:         req.VenueID,
		Venue:           req.Venue,
		Date:            req.Date,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		MaxParticipants: req.MaxParticipants,
		Status:          req.Status,
		ImageURL:        req.ImageURL,
		PhoneNumber:     req.PhoneNumber,
		MailID:          req.MailID,
		SheetLink:       req.SheetLink,
	}
}

// EventSuccessResponse is the success response envelope for endpoints returning one event.
type EventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// EventListSuccessResponse is the success response envelope for event lists.
type EventListSuccessResponse struct {
	Data  []*domain.Event   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

func writeEvents(w http.ResponseWriter, events []*domain.Event) {
	if events == nil {
		events = []*domain.Event{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// ListEvents godoc
// @Summary List all events
// @Description Also served at /student/events.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.EventListSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := c.Service.List(r.Context())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	writeEvents(w, events)
}

// ListMyEvents godoc
// @Summary List the current organizer's events
// @Tags organizer
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.EventListSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /organizer/events [get]
func (c *EventController) ListMyEvents(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	events, err := c.Service.ListByOrganizer(r.Context(), userID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	writeEvents(w, events)
}

// GetEvent godoc
// @Summary Get an event by ID
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathUUID(w, r, "eventID")
	if !ok {
		return
	}
	event, err := c.Service.GetByID(r.Context(), eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// CreateEvent godoc
// @Summary Create an event
// @Description The authenticated organizer becomes the event owner. Status defaults to Green.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body EventRequest true "Event data"
// @Success 201 {object} controllers.EventSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req EventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event := req.toEvent("", userID)
	if err := c.Service.Create(r.Context(), event); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// UpdateEvent godoc
// @Summary Update an event
// @Description Replaces the editable fields. Only the owning organizer may update.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body EventRequest true "Event data"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID} [put]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathUUID(w, r, "eventID")
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req EventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Service.Update(r.Context(), userID, req.toEvent(eventID, userID))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Deletes the event and its registrations. Only the owning organizer may delete.
// @Tags events
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 204 "No Content"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID} [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathUUID(w, r, "eventID")
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.Delete(r.Context(), eventID, userID); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
