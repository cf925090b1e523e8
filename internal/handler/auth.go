package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hexanode/accounts/internal/constants"
	"github.com/hexanode/accounts/internal/dto"
	apperrors "github.com/hexanode/accounts/internal/errors"
	"github.com/hexanode/accounts/internal/service"
	ctxutil "github.com/hexanode/accounts/pkg/context"
	"github.com/hexanode/accounts/pkg/logger"
	"github.com/hexanode/accounts/pkg/useragent"
	"github.com/hexanode/accounts/pkg/validation"
)

type AuthHandler struct {
	userService *service.UserService
}

func NewAuthHandler(userService *service.UserService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
	}
}

// connectionMeta merges client-supplied metadata with what the request
// itself reveals. IP and browser are always taken from the request.
func connectionMeta(c *gin.Context, device, location string) service.ConnectionMeta {
	if device == "" {
		device = useragent.DescribeDevice(c.Request)
	}
	return service.ConnectionMeta{
		Device:    device,
		Location:  location,
		IPAddress: useragent.ClientIP(c.Request),
		Browser:   c.Request.UserAgent(),
	}
}

// Login authenticates with email and password and returns the token pair.
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Login")

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WarnWithContext(ctx, "Invalid login request").
			Err(err).
			Log()
		c.JSON(http.StatusBadRequest, constants.BuildValidationErrorResponse(constants.MsgBadRequest, validation.CollectErrors(err)))
		return
	}

	response, err := h.userService.Login(ctx, req.Email, req.Password, connectionMeta(c, req.Device, req.Location))
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse("Authentication failed", apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, response)
}

// Register creates an account together with its settings and signs the
// new user in immediately.
func (h *AuthHandler) Register(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Register")

	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WarnWithContext(ctx, "Invalid registration request").
			Err(err).
			Log()
		c.JSON(http.StatusBadRequest, constants.BuildValidationErrorResponse(constants.MsgBadRequest, validation.CollectErrors(err)))
		return
	}

	response, err := h.userService.Register(ctx, &req)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse("Registration failed", apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusCreated, response)
}

// refreshTokenFrom pulls the refresh token from the Authorization bearer
// header, falling back to a JSON body.
func refreshTokenFrom(c *gin.Context) string {
	if header := c.GetHeader(constants.HeaderAuthorization); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
	}

	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err == nil {
		return req.RefreshToken
	}
	return ""
}

// Refresh exchanges a valid refresh token for a new access token.
func (h *AuthHandler) Refresh(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Refresh")

	refreshToken := refreshTokenFrom(c)
	if refreshToken == "" {
		logger.WarnWithContext(ctx, "Refresh request without token").
			Log()
		c.JSON(apperrors.ToHTTPStatus(apperrors.ErrMissingToken), constants.BuildErrorResponse(constants.MsgUnauthorized, apperrors.GetErrorMessage(apperrors.ErrMissingToken)))
		return
	}

	response, err := h.userService.Refresh(ctx, refreshToken)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse("Token refresh failed", apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, response)
}

// Logout revokes every outstanding token for the authenticated user.
func (h *AuthHandler) Logout(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Logout")

	userID, ok := ctxutil.GetUserID(ctx)
	if !ok {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(constants.MsgUnauthorized, nil))
		return
	}

	if err := h.userService.Logout(ctx, userID); err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse("Logout failed", apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse(constants.MsgLogoutSuccess))
}
