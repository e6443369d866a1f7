package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "internhub/internal/errors"
	"internhub/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// SignupRequest represents an intern registration request.
type SignupRequest struct {
	InternID  string `json:"internID" validate:"required"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required"`
	Password  string `json:"password" validate:"required"`
}

// LoginRequest represents a password login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// GoogleLoginRequest carries the Google-issued ID token.
type GoogleLoginRequest struct {
	Token string `json:"token"`
}

// UpdateInternIDRequest represents a profile reconciliation request.
type UpdateInternIDRequest struct {
	Email     string `json:"email" validate:"required"`
	InternID  string `json:"internId" validate:"required"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
}

// TokenResponse carries an issued identity token.
type TokenResponse struct {
	Token string `json:"token"`
}

// GoogleLoginResponse is the federated login outcome. Email is only set for
// new users, Token only for existing ones.
type GoogleLoginResponse struct {
	Token     string `json:"token,omitempty"`
	IsNewUser bool   `json:"isNewUser"`
	Email     string `json:"email,omitempty"`
}

// fail converts a service error into the standard error envelope, keeping
// detail out of 500 responses.
func fail(c echo.Context, err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	if httpErr.StatusCode == http.StatusInternalServerError {
		c.Logger().Errorf("request failed: %v", err)
	}
	return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// Signup godoc
// @Summary Register a new intern
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Registration data"
// @Success 201 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, apperrors.ErrMissingFields)
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, apperrors.ErrMissingFields)
	}

	err := h.authService.Signup(c.Request().Context(), req.InternID, req.FirstName, req.LastName, req.Email, req.Password)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]string{
		"message": "intern registered successfully",
	})
}

// Login godoc
// @Summary Login with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} TokenResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, apperrors.ErrMissingFields)
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, apperrors.ErrMissingFields)
	}

	token, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, TokenResponse{Token: token})
}

// GoogleLogin godoc
// @Summary Login with a Google ID token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body GoogleLoginRequest true "Google ID token"
// @Success 200 {object} GoogleLoginResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /google-login [post]
func (h *AuthHandler) GoogleLogin(c echo.Context) error {
	var req GoogleLoginRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, apperrors.ErrMissingFields)
	}

	result, err := h.authService.GoogleLogin(c.Request().Context(), req.Token)
	if err != nil {
		// Verification failures are opaque to the caller by design.
		c.Logger().Errorf("google login failed: %v", err)
		return c.JSON(http.StatusInternalServerError, apperrors.ErrorResponse{
			Error: "google login failed",
			Code:  "GOOGLE_LOGIN_FAILED",
		})
	}

	if result.IsNewUser {
		return c.JSON(http.StatusOK, GoogleLoginResponse{IsNewUser: true, Email: result.Email})
	}
	return c.JSON(http.StatusOK, GoogleLoginResponse{Token: result.Token})
}

// UpdateInternID godoc
// @Summary Create or update an intern profile after federated login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body UpdateInternIDRequest true "Profile fields"
// @Success 200 {object} TokenResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /update-intern-id [post]
func (h *AuthHandler) UpdateInternID(c echo.Context) error {
	var req UpdateInternIDRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, apperrors.ErrMissingFields)
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, apperrors.ErrMissingFields)
	}

	token, err := h.authService.ReconcileProfile(c.Request().Context(), req.Email, req.InternID, req.FirstName, req.LastName)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, TokenResponse{Token: token})
}
