package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/autolane-tms/autolane_api/dto"
	"github.com/autolane-tms/autolane_api/shared"
)

type AuthHandler struct {
	authSvc AuthServiceInterface

	setSessionCookie   func(c *fiber.Ctx, token string)
	clearSessionCookie func(c *fiber.Ctx)
}

func NewAuthHandler(authSvc AuthServiceInterface, setCookie func(c *fiber.Ctx, token string), clearCookie func(c *fiber.Ctx)) *AuthHandler {
	return &AuthHandler{
		authSvc:            authSvc,
		setSessionCookie:   setCookie,
		clearSessionCookie: clearCookie,
	}
}

// @Summary Login
// @Description Authenticate with email and password, set the session cookie and return the token
// @Tags auth
// @Accept json
// @Produce json
// @Param loginRequest body dto.LoginRequest true "Login credentials"
// @Success 200 {object} shared.Response{data=dto.LoginResponse}
// @Router /api/v1/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.authSvc.Login(req)
	if err != nil {
		return err
	}

	h.setSessionCookie(c, resp.AccessToken)

	return shared.ResponseJSON(c, http.StatusOK, "Login successful", resp)
}

// @Summary Login rate-limit status
// @Description Report remaining login attempts for an email without consuming one
// @Tags auth
// @Produce json
// @Param email query string true "Email address"
// @Success 200 {object} shared.Response{data=dto.LoginStatusResponse}
// @Router /api/v1/login/status [get]
func (h *AuthHandler) LoginStatus(c *fiber.Ctx) error {
	email := c.Query("email")
	if email == "" {
		return shared.NewBadRequestError(nil, "email is required")
	}

	return shared.ResponseOK(c, h.authSvc.LoginStatus(email))
}

// @Summary Logout
// @Description Clear the session cookie
// @Tags auth
// @Produce json
// @Success 200 {object} shared.Response{data=nil}
// @Router /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.clearSessionCookie(c)
	return shared.ResponseJSON(c, http.StatusOK, "Logged out", nil)
}

// @Summary Request password reset
// @Description Send a reset code to the given email. The response is identical whether or not the account exists.
// @Tags auth
// @Accept json
// @Produce json
// @Param forgotRequest body dto.ForgotPasswordRequest true "Account email"
// @Success 200 {object} shared.Response{data=nil}
// @Router /api/v1/auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req dto.ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	if err := h.authSvc.ForgotPassword(req.Email); err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "If the email exists, a reset code has been sent", nil)
}

// @Summary Reset password
// @Description Set a new password using the emailed reset code
// @Tags auth
// @Accept json
// @Produce json
// @Param resetRequest body dto.ResetPasswordRequest true "Reset code and new password"
// @Success 200 {object} shared.Response{data=nil}
// @Router /api/v1/auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	if err := h.authSvc.ResetPassword(req); err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Password has been reset", nil)
}

// @Summary Change password
// @Description Change the current user's password
// @Tags auth
// @Accept json
// @Produce json
// @Security Bearer
// @Param changeRequest body dto.ChangePasswordRequest true "Current and new password"
// @Success 200 {object} shared.Response{data=nil}
// @Router /api/v1/dealer/password [put]
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	userID, _ := c.Locals(shared.UserID).(string)
	if err := h.authSvc.ChangePassword(userID, req); err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Password updated", nil)
}
