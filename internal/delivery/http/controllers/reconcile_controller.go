package controllers

import (
	"log/slog"
	"net/http"

	"collegeevents/internal/delivery/http/helpers"
	"collegeevents/internal/delivery/http/middleware"
	"collegeevents/internal/domain"
)

// ReconcileRequest is the optional request body for POST /api/events/{eventID}/reconcile.
// SheetID, when set, overrides the event's stored sheet link (URL or bare ID).
type ReconcileRequest struct {
	SheetID string `json:"sheet_id"`
}

// ReconcileSuccessResponse is the success response envelope for POST /api/events/{eventID}/reconcile (200).
type ReconcileSuccessResponse struct {
	Data  *domain.ReconcileResult `json:"data"`
	Error *helpers.APIError       `json:"error"`
}

// ReconcileController imports an event's sign-up sheet.
type ReconcileController struct {
	Logger  *slog.Logger
	Service domain.ReconcileService
}

// NewReconcileController creates a ReconcileController with the given logger and service.
func NewReconcileController(logger *slog.Logger, svc domain.ReconcileService) *ReconcileController {
	return &ReconcileController{
		Logger:  logger,
		Service: svc,
	}
}

// Reconcile godoc
// @Summary Import the event's sign-up sheet
// @Description Reads every row of the linked Google Sheet and creates the missing participants and registrations. Rows marked processed are skipped; rows without email and reg_no are skipped; already registered participants are reported as duplicates. Per-row failures are reported in errors and do not stop the import.
// @Tags registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body ReconcileRequest false "Optional sheet override"
// @Success 200 {object} controllers.ReconcileSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (no spreadsheet id)"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 502 {object} helpers.APIResponse "error.code: bad_gateway (sheet unreadable)"
// @Router /events/{eventID}/reconcile [post]
func (c *ReconcileController) Reconcile(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathUUID(w, r, "eventID")
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req ReconcileRequest
	if r.ContentLength != 0 {
		if !helpers.DecodeAndValidate(w, r, &req) {
			return
		}
	}
	result, err := c.Service.Reconcile(r.Context(), eventID, userID, req.SheetID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, result)
}
