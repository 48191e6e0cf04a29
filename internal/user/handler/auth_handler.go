package handler

import (
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Dayasagar88/Chai-or-Nodejs/config"
	"github.com/Dayasagar88/Chai-or-Nodejs/internal/apperror"
	"github.com/Dayasagar88/Chai-or-Nodejs/internal/media"
	"github.com/Dayasagar88/Chai-or-Nodejs/internal/user/dto"
	"github.com/Dayasagar88/Chai-or-Nodejs/internal/user/service"
)

const (
	accessCookie  = "accessToken"
	refreshCookie = "refreshToken"
)

type AuthHandler struct {
	userService *service.UserService
	tokens      service.TokenGenerator
	uploader    media.Uploader
	cfg         *config.Config
}

func NewAuthHandler(userService *service.UserService, tokens service.TokenGenerator, uploader media.Uploader, cfg *config.Config) *AuthHandler {
	return &AuthHandler{userService: userService, tokens: tokens, uploader: uploader, cfg: cfg}
}

// Response envelopes: {statusCode, data, message} on success,
// {statusCode, message} on failure.
func respond(c *fiber.Ctx, status int, data interface{}, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"statusCode": status,
		"data":       data,
		"message":    message,
	})
}

func respondError(c *fiber.Ctx, err *apperror.Error) error {
	status := err.StatusCode()

	return c.Status(status).JSON(fiber.Map{
		"statusCode": status,
		"message":    err.Message,
	})
}

// stageFile copies an uploaded part to a temp path for the media relay. The
// uploader removes the temp file when done.
func (h *AuthHandler) stageFile(c *fiber.Ctx, fh *multipart.FileHeader) (string, error) {
	path := filepath.Join(os.TempDir(), uuid.NewString()+filepath.Ext(fh.Filename))
	if err := c.SaveFile(fh, path); err != nil {
		return "", err
	}

	return path, nil
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input dto.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return respondError(c, apperror.InvalidInput("invalid input"))
	}

	avatarFile, err := c.FormFile("avatar")
	if err != nil {
		return respondError(c, apperror.MissingAvatar("avatar image required"))
	}

	avatarPath, err := h.stageFile(c, avatarFile)
	if err != nil {
		return respondError(c, apperror.Internal("failed to stage avatar", err))
	}

	avatarURL, err := h.uploader.Upload(c.Context(), avatarPath)
	if err != nil {
		return respondError(c, apperror.UploadFailed("avatar image not uploaded, try again"))
	}
	input.AvatarURL = avatarURL

	// Cover image is optional and a failed upload just leaves it empty.
	if coverFile, err := c.FormFile("coverImage"); err == nil {
		if coverPath, err := h.stageFile(c, coverFile); err == nil {
			if coverURL, err := h.uploader.Upload(c.Context(), coverPath); err == nil {
				input.CoverImageURL = coverURL
			}
		}
	}

	user, appErr := h.userService.Register(c.Context(), input)
	if appErr != nil {
		return respondError(c, appErr)
	}

	return respond(c, fiber.StatusCreated, user, "registration successful")
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input dto.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return respondError(c, apperror.InvalidInput("invalid input"))
	}

	out, appErr := h.userService.Login(c.Context(), input)
	if appErr != nil {
		return respondError(c, appErr)
	}

	h.setTokenCookies(c, out.AccessToken, out.RefreshToken)

	return respond(c, fiber.StatusOK, out, "login successful")
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	userID := c.Locals(localUserID).(string)

	if appErr := h.userService.Logout(c.Context(), userID); appErr != nil {
		return respondError(c, appErr)
	}

	h.clearTokenCookies(c)

	return respond(c, fiber.StatusOK, nil, "logout successful")
}

// Refresh accepts the refresh token from the http-only cookie or, for
// non-browser clients, from the request body.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var input dto.RefreshInput
	_ = c.BodyParser(&input)

	if cookie := c.Cookies(refreshCookie); cookie != "" {
		input.RefreshToken = cookie
	}

	pair, appErr := h.userService.Refresh(c.Context(), input)
	if appErr != nil {
		return respondError(c, appErr)
	}

	h.setTokenCookies(c, pair.AccessToken, pair.RefreshToken)

	return respond(c, fiber.StatusOK, pair, "token refreshed")
}

func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	userID := c.Locals(localUserID).(string)

	var input dto.ChangePasswordInput
	if err := c.BodyParser(&input); err != nil {
		return respondError(c, apperror.InvalidInput("invalid input"))
	}

	if appErr := h.userService.ChangePassword(c.Context(), userID, input); appErr != nil {
		return respondError(c, appErr)
	}

	return respond(c, fiber.StatusOK, nil, "password changed successfully")
}

func (h *AuthHandler) CurrentUser(c *fiber.Ctx) error {
	userID := c.Locals(localUserID).(string)

	user, appErr := h.userService.GetCurrentUser(c.Context(), userID)
	if appErr != nil {
		return respondError(c, appErr)
	}

	return respond(c, fiber.StatusOK, user, "current user fetched")
}

func (h *AuthHandler) UpdateAccount(c *fiber.Ctx) error {
	userID := c.Locals(localUserID).(string)

	var input dto.UpdateAccountInput
	if err := c.BodyParser(&input); err != nil {
		return respondError(c, apperror.InvalidInput("invalid input"))
	}

	user, appErr := h.userService.UpdateAccount(c.Context(), userID, input)
	if appErr != nil {
		return respondError(c, appErr)
	}

	return respond(c, fiber.StatusOK, user, "account updated")
}

func (h *AuthHandler) UpdateAvatar(c *fiber.Ctx) error {
	userID := c.Locals(localUserID).(string)

	avatarFile, err := c.FormFile("avatar")
	if err != nil {
		return respondError(c, apperror.MissingAvatar("avatar image required"))
	}

	avatarPath, err := h.stageFile(c, avatarFile)
	if err != nil {
		return respondError(c, apperror.Internal("failed to stage avatar", err))
	}

	avatarURL, err := h.uploader.Upload(c.Context(), avatarPath)
	if err != nil {
		return respondError(c, apperror.UploadFailed("avatar image not uploaded, try again"))
	}

	user, appErr := h.userService.UpdateAvatar(c.Context(), userID, avatarURL)
	if appErr != nil {
		return respondError(c, appErr)
	}

	return respond(c, fiber.StatusOK, user, "avatar updated")
}

func (h *AuthHandler) UpdateCoverImage(c *fiber.Ctx) error {
	userID := c.Locals(localUserID).(string)

	coverFile, err := c.FormFile("coverImage")
	if err != nil {
		return respondError(c, apperror.InvalidInput("cover image required"))
	}

	coverPath, err := h.stageFile(c, coverFile)
	if err != nil {
		return respondError(c, apperror.Internal("failed to stage cover image", err))
	}

	coverURL, err := h.uploader.Upload(c.Context(), coverPath)
	if err != nil {
		return respondError(c, apperror.UploadFailed("cover image not uploaded, try again"))
	}

	user, appErr := h.userService.UpdateCoverImage(c.Context(), userID, coverURL)
	if appErr != nil {
		return respondError(c, appErr)
	}

	return respond(c, fiber.StatusOK, user, "cover image updated")
}

func (h *AuthHandler) setTokenCookies(c *fiber.Ctx, accessToken, refreshToken string) {
	c.Cookie(&fiber.Cookie{
		Name:     accessCookie,
		Value:    accessToken,
		MaxAge:   int(h.tokens.Expiry(service.AccessToken).Seconds()),
		HTTPOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
	c.Cookie(&fiber.Cookie{
		Name:     refreshCookie,
		Value:    refreshToken,
		MaxAge:   int(h.tokens.Expiry(service.RefreshToken).Seconds()),
		HTTPOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

func (h *AuthHandler) clearTokenCookies(c *fiber.Ctx) {
	for _, name := range []string{accessCookie, refreshCookie} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			MaxAge:   -1,
			HTTPOnly: true,
			Secure:   h.cfg.CookieSecure,
			SameSite: fiber.CookieSameSiteStrictMode,
		})
	}
}
