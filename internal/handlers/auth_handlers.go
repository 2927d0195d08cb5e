package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"docfinder/internal/middleware"
	"docfinder/internal/models"
	"docfinder/internal/repository"
	"docfinder/internal/services"
	"docfinder/internal/utils"
)

const tokenCookieName = "token"

// AuthHandler exposes the account endpoints.
type AuthHandler struct {
	svc           *services.AuthService
	log           *zap.Logger
	secureCookies bool
	cookieTTLDays int
}

func NewAuthHandler(svc *services.AuthService, log *zap.Logger, secureCookies bool, cookieTTLDays int) *AuthHandler {
	return &AuthHandler{
		svc:           svc,
		log:           log,
		secureCookies: secureCookies,
		cookieTTLDays: cookieTTLDays,
	}
}

type signupReq struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// Signup creates an account and returns the user plus a fresh token.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req signupReq
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := utils.Validate.Struct(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, utils.FormatValidationError(err))
	}

	user, token, err := h.svc.Signup(c.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return utils.JSONError(c, fiber.StatusBadRequest, "Email already registered")
		}
		h.log.Error("signup failed", zap.Error(err))
		return utils.JSONError(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return utils.JSONSuccess(c, fiber.StatusCreated, fiber.Map{
		"user":  user,
		"token": token,
	})
}

type loginReq struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login verifies credentials, returns the token in the body and mirrors it
// into an http-only cookie for clients that prefer cookie auth.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginReq
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := utils.Validate.Struct(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, utils.FormatValidationError(err))
	}

	user, token, err := h.svc.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			// One message for both unknown email and wrong password.
			return utils.JSONError(c, fiber.StatusUnauthorized, "Invalid email or password")
		}
		h.log.Error("login failed", zap.Error(err))
		return utils.JSONError(c, fiber.StatusInternalServerError, "Internal server error")
	}

	c.Cookie(&fiber.Cookie{
		Name:     tokenCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   h.cookieTTLDays * 24 * 60 * 60,
		HTTPOnly: true,
		Secure:   h.secureCookies,
		SameSite: fiber.CookieSameSiteStrictMode,
	})

	return c.JSON(fiber.Map{
		"success": true,
		"token":   token,
		"url":     "/",
		"data":    fiber.Map{"user": user},
	})
}

// Logout clears the auth cookie. No token is required and the operation is
// idempotent regardless of prior auth state.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     tokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   h.secureCookies,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
	return utils.JSONMessage(c, fiber.StatusOK, "Logged out successfully")
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, _ := c.Locals(middleware.UserIDKey).(string)

	user, err := h.svc.GetProfile(c.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return utils.JSONError(c, fiber.StatusNotFound, "User not found")
		}
		h.log.Error("get profile failed", zap.Error(err))
		return utils.JSONError(c, fiber.StatusInternalServerError, "Internal server error")
	}
	return utils.JSONSuccess(c, fiber.StatusOK, user)
}

// updateProfileReq deliberately has no email or password fields; both are
// stripped from this path and change through their dedicated endpoints.
type updateProfileReq struct {
	Name           *string                `json:"name" validate:"omitempty,min=1"`
	Phone          *string                `json:"phone" validate:"omitempty,len=10,numeric"`
	Gender         *string                `json:"gender" validate:"omitempty,oneof=male female other"`
	DateOfBirth    *time.Time             `json:"dateOfBirth"`
	Address        *models.Address        `json:"address"`
	MedicalHistory *models.MedicalHistory `json:"medicalHistory"`
}

// UpdateMe applies a partial profile update.
func (h *AuthHandler) UpdateMe(c *fiber.Ctx) error {
	userID, _ := c.Locals(middleware.UserIDKey).(string)

	var req updateProfileReq
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := utils.Validate.Struct(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, utils.FormatValidationError(err))
	}

	user, err := h.svc.UpdateProfile(c.Context(), userID, repository.UpdateUserParams{
		Name:           req.Name,
		Phone:          req.Phone,
		Gender:         req.Gender,
		DateOfBirth:    req.DateOfBirth,
		Address:        req.Address,
		MedicalHistory: req.MedicalHistory,
	})
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return utils.JSONError(c, fiber.StatusNotFound, "User not found")
		}
		h.log.Error("update profile failed", zap.Error(err))
		return utils.JSONError(c, fiber.StatusInternalServerError, "Internal server error")
	}
	return utils.JSONSuccess(c, fiber.StatusOK, user)
}

type changePasswordReq struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
}

// ChangePassword replaces the password after checking the current one.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	userID, _ := c.Locals(middleware.UserIDKey).(string)

	var req changePasswordReq
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := utils.Validate.Struct(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, utils.FormatValidationError(err))
	}

	if err := h.svc.ChangePassword(c.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, services.ErrWrongPassword):
			return utils.JSONError(c, fiber.StatusUnauthorized, "Current password is incorrect")
		case errors.Is(err, repository.ErrUserNotFound):
			return utils.JSONError(c, fiber.StatusNotFound, "User not found")
		default:
			h.log.Error("change password failed", zap.Error(err))
			return utils.JSONError(c, fiber.StatusInternalServerError, "Internal server error")
		}
	}
	return utils.JSONMessage(c, fiber.StatusOK, "Password updated successfully")
}
