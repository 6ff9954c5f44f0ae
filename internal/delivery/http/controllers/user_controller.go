package controllers

import (
	"log/slog"
	"net/http"

	"collegeevents/internal/delivery/http/helpers"
	"collegeevents/internal/delivery/http/middleware"
	"collegeevents/internal/domain"
)

// UpdateUserRequest is the request body for PUT /api/users/{userID}. All fields optional.
type UpdateUserRequest struct {
	RegNo       *string `json:"reg_no" validate:"omitempty,max=64"`
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Password    *string `json:"password" validate:"omitempty,min=8"`
	Role        *string `json:"role" validate:"omitempty,oneof=admin organizer student"`
	Department  *string `json:"department"`
	Year        *string `json:"year"`
	PhoneNumber *string `json:"phone_number"`
}

func (req UpdateUserRequest) patch() domain.UserPatch {
	p := domain.UserPatch{
		RegNo:       req.RegNo,
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		Role:        req.Role,
		Department:  req.Department,
		PhoneNumber: req.PhoneNumber,
	}
	if req.Year != nil {
		y := domain.ParseYear(*req.Year)
		p.Year = &y
	}
	return p
}

// UpdateProfileRequest is the request body for PUT /api/student/profile.
type UpdateProfileRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	PhoneNumber *string `json:"phone_number"`
	Department  *string `json:"department"`
	Year        *string `json:"year"`
}

// UserListSuccessResponse is the success response envelope for GET /api/users (200).
type UserListSuccessResponse struct {
	Data  []*domain.User    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// UserController handles user administration and the student profile.
type UserController struct {
	Logger  *slog.Logger
	Service domain.UserService
}

// NewUserController creates a UserController with the given logger and service.
func NewUserController(logger *slog.Logger, svc domain.UserService) *UserController {
	return &UserController{
		Logger:  logger,
		Service: svc,
	}
}

// ListUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.UserListSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /users [get]
func (c *UserController) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := c.Service.List(r.Context())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	if users == nil {
		users = []*domain.User{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, users)
}

// CreateUser godoc
// @Summary Create a user
// @Description Admin-only account creation; same body as sign-up.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SignUpRequest true "User data"
// @Success 201 {object} controllers.UserSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /users [post]
func (c *UserController) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	user := req.toUser()
	if err := c.Service.SignUp(r.Context(), user, req.Password); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, user)
}

// GetUser godoc
// @Summary Get a user by ID
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param userID path string true "User ID (UUID)"
// @Success 200 {object} controllers.UserSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /users/{userID} [get]
func (c *UserController) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := helpers.PathUUID(w, r, "userID")
	if !ok {
		return
	}
	user, err := c.Service.GetByID(r.Context(), userID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, user)
}

// UpdateUser godoc
// @Summary Update a user
// @Description Partial update; omitted fields are unchanged. A new password is rehashed.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userID path string true "User ID (UUID)"
// @Param body body UpdateUserRequest true "Fields to update"
// @Success 200 {object} controllers.UserSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /users/{userID} [put]
func (c *UserController) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := helpers.PathUUID(w, r, "userID")
	if !ok {
		return
	}
	var req UpdateUserRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	user, err := c.Service.Update(r.Context(), userID, req.patch())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, user)
}

// DeleteUser godoc
// @Summary Delete a user
// @Tags users
// @Security BearerAuth
// @Param userID path string true "User ID (UUID)"
// @Success 204 "No Content"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /users/{userID} [delete]
func (c *UserController) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := helpers.PathUUID(w, r, "userID")
	if !ok {
		return
	}
	if err := c.Service.Delete(r.Context(), userID); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateProfile godoc
// @Summary Update the current student's profile
// @Tags student
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} controllers.UserSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /student/profile [put]
func (c *UserController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req UpdateProfileRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	patch := domain.UserPatch{
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Department:  req.Department,
	}
	if req.Year != nil {
		y := domain.ParseYear(*req.Year)
		patch.Year = &y
	}
	user, err := c.Service.Update(r.Context(), userID, patch)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, user)
}
