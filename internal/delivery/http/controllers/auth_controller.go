package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"collegeevents/internal/delivery/http/helpers"
	"collegeevents/internal/domain"
)

// SignUpRequest is the request body for POST /api/auth/signup.
type SignUpRequest struct {
	RegNo       string `json:"reg_no" validate:"max=64"`
	Name        string `json:"name" validate:"required,max=200"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	Role        string `json:"role" validate:"omitempty,oneof=admin organizer student"` // defaults to student
	Department  string `json:"department"`
	Year        string `json:"year"` // "1st year".."4th year" or 1..4
	PhoneNumber string `json:"phone_number"`
}

// LoginRequest is the request body for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is the response body for POST /api/auth/login.
type LoginResponse struct {
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
	User      *domain.User `json:"user"`
}

// UserSuccessResponse is the success response envelope for endpoints returning one user.
type UserSuccessResponse struct {
	Data  *domain.User      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// LoginSuccessResponse is the success response envelope for POST /api/auth/login (200).
type LoginSuccessResponse struct {
	Data  LoginResponse     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// AuthController handles sign-up and login.
type AuthController struct {
	Logger  *slog.Logger
	Service domain.UserService
}

// NewAuthController creates an AuthController with the given logger and service.
func NewAuthController(logger *slog.Logger, svc domain.UserService) *AuthController {
	return &AuthController{
		Logger:  logger,
		Service: svc,
	}
}

func (req SignUpRequest) toUser() *domain.User {
	return &domain.User{
		RegNo:       strings.TrimSpace(req.RegNo),
		Name:        strings.TrimSpace(req.Name),
		Email:       domain.NormalizeEmail(req.Email),
		Role:        strings.ToLower(strings.TrimSpace(req.Role)),
		Department:  strings.TrimSpace(req.Department),
		Year:        domain.ParseYear(req.Year),
		PhoneNumber: strings.TrimSpace(req.PhoneNumber),
	}
}

// SignUp godoc
// @Summary Sign up a new user
// @Description Create an account. Role defaults to "student". Password is stored hashed.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body SignUpRequest true "Sign-up data"
// @Success 201 {object} controllers.UserSuccessResponse "data contains the created user"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/signup [post]
func (c *AuthController) SignUp(w http.ResponseWriter, r *http.Request) {
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

// Login godoc
// @Summary Log in
// @Description Authenticate with email and password. Returns a JWT carrying the user id, email and role.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} controllers.LoginSuccessResponse "data contains token, token_type, and user"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/login [post]
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	token, user, err := c.Service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, LoginResponse{Token: token, TokenType: "Bearer", User: user})
}
