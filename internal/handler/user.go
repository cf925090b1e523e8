package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hexanode/accounts/internal/constants"
	"github.com/hexanode/accounts/internal/dto"
	apperrors "github.com/hexanode/accounts/internal/errors"
	"github.com/hexanode/accounts/internal/service"
	ctxutil "github.com/hexanode/accounts/pkg/context"
	"github.com/hexanode/accounts/pkg/logger"
	"github.com/hexanode/accounts/pkg/validation"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// pathID parses the :id route parameter.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgBadRequest, "id must be a positive integer"))
		return 0, false
	}
	return uint(id), true
}

// requireOwner rejects requests targeting another user's resources.
func requireOwner(c *gin.Context, targetID uint) bool {
	userID, ok := ctxutil.GetUserID(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(constants.MsgUnauthorized, nil))
		return false
	}
	if userID != targetID {
		c.JSON(http.StatusForbidden, constants.BuildErrorResponse(constants.MsgForbidden, nil))
		return false
	}
	return true
}

// GetAll lists users with pagination and optional name/email search.
func (h *UserHandler) GetAll(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "GetAll")

	params := constants.ParsePaginationParams(c)

	users, total, pageTotal, err := h.userService.GetAll(ctx, params.Limit, params.Offset, params.Search)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(constants.MsgInternalError, apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, constants.BuildListResponse(total, params.Page, pageTotal, users))
}

// GetByID returns a single user profile.
func (h *UserHandler) GetByID(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "GetByID")

	id, ok := pathID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetByID(ctx, id)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(constants.MsgNotFound, apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, user)
}

// Update modifies the authenticated user's own profile fields.
func (h *UserHandler) Update(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Update")

	id, ok := pathID(c)
	if !ok || !requireOwner(c, id) {
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WarnWithContext(ctx, "Invalid update request").
			Uint("user_id", id).
			Err(err).
			Log()
		c.JSON(http.StatusBadRequest, constants.BuildValidationErrorResponse(constants.MsgBadRequest, validation.CollectErrors(err)))
		return
	}

	user, err := h.userService.Update(ctx, id, &req)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse("Update failed", apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdatePassword replaces the password after verifying the current one.
func (h *UserHandler) UpdatePassword(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "UpdatePassword")

	id, ok := pathID(c)
	if !ok || !requireOwner(c, id) {
		return
	}

	var req dto.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WarnWithContext(ctx, "Invalid password change request").
			Uint("user_id", id).
			Err(err).
			Log()
		c.JSON(http.StatusBadRequest, constants.BuildValidationErrorResponse(constants.MsgBadRequest, validation.CollectErrors(err)))
		return
	}

	if err := h.userService.UpdatePassword(ctx, id, &req); err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse("Password change failed", apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse(constants.MsgUpdated))
}

// UpdateSettings applies preference changes.
func (h *UserHandler) UpdateSettings(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "UpdateSettings")

	id, ok := pathID(c)
	if !ok || !requireOwner(c, id) {
		return
	}

	var req dto.SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WarnWithContext(ctx, "Invalid settings request").
			Uint("user_id", id).
			Err(err).
			Log()
		c.JSON(http.StatusBadRequest, constants.BuildValidationErrorResponse(constants.MsgBadRequest, validation.CollectErrors(err)))
		return
	}

	settings, err := h.userService.UpdateSettings(ctx, id, &req)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse("Settings update failed", apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, settings)
}

// ListConnections returns the user's login history, newest first.
func (h *UserHandler) ListConnections(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "ListConnections")

	id, ok := pathID(c)
	if !ok || !requireOwner(c, id) {
		return
	}

	params := constants.ParsePaginationParams(c)

	conns, total, err := h.userService.ListConnections(ctx, id, params.Limit, params.Offset)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(constants.MsgInternalError, apperrors.GetErrorMessage(err)))
		return
	}

	pageTotal := int((total + int64(params.Limit) - 1) / int64(params.Limit))
	c.JSON(http.StatusOK, constants.BuildListResponse(total, params.Page, pageTotal, conns))
}

// Delete removes the authenticated user's own account.
func (h *UserHandler) Delete(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Delete")

	id, ok := pathID(c)
	if !ok || !requireOwner(c, id) {
		return
	}

	if err := h.userService.Delete(ctx, id); err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse("Deletion failed", apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse(constants.MsgDeleted))
}
