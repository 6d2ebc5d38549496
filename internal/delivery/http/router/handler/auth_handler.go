// Package handler contains the HTTP handlers for the application.
package handler

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"talentgate/internal/delivery/http/middleware"
	"talentgate/internal/delivery/http/response"
	"talentgate/internal/domain/entity"
	domainerrors "talentgate/internal/domain/errors"
	"talentgate/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// resumeFormField is the multipart field carrying the uploaded resume.
const resumeFormField = "resume"

// AuthHandler holds dependencies for signup/login/profile handlers.
type AuthHandler struct {
	uc     usecase.AccountUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AccountUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		uc:     uc,
		logger: logger,
	}
}

// SignupRequest represents the multipart form fields for registration.
type SignupRequest struct {
	Name     string `form:"name" validate:"required"`
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ProfileResponse is the client-facing view of a user. The password hash is
// deliberately absent.
type ProfileResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	ResumeURL string    `json:"resume_url"`
	CreatedAt time.Time `json:"created_at"`
}

// Signup handles the registration request: multipart form fields plus a
// resume file, all of which must pass validation before any flow side effect.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid signup input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	resume, contentType, err := readResumeFile(c)
	if err != nil {
		return errors.WithStack(err)
	}

	input := &usecase.SignupInput{
		Name:              req.Name,
		Email:             req.Email,
		Password:          req.Password,
		Resume:            resume,
		ResumeContentType: contentType,
	}

	if _, err := h.uc.Signup(c.Request().Context(), input); err != nil {
		return errors.WithStack(err)
	}

	// Do not echo any sensitive fields back in the response.
	return response.Success(c, http.StatusOK, nil, "Success")
}

// Login handles the login request and returns the issued bearer token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Login(c.Request().Context(), &usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"token": output.Token}, "Login successful")
}

// GetProfile handles the request to get the current user's profile.
func (h *AuthHandler) GetProfile(c echo.Context) error {
	userIDVal := c.Get(middleware.ContextKeyUserID)
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Invalid user identity in token")
	}

	user, err := h.uc.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProfileResponse(user), "Profile retrieved successfully")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}

// readResumeFile pulls the uploaded resume into memory. A missing file is a
// client error reported before the signup flow starts.
func readResumeFile(c echo.Context) ([]byte, string, error) {
	fileHeader, err := c.FormFile(resumeFormField)
	if err != nil {
		return nil, "", domainerrors.ErrMissingResume.WrapMessage("no resume in signup form")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return nil, "", errors.Wrap(err, "failed to open uploaded resume")
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, "", errors.Wrap(err, "failed to read uploaded resume")
	}

	return data, fileHeader.Header.Get("Content-Type"), nil
}

func toProfileResponse(user *entity.User) *ProfileResponse {
	return &ProfileResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		ResumeURL: user.ResumeURL,
		CreatedAt: user.CreatedAt,
	}
}
