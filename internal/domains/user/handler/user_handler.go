package handler

import (
	"errors"
	"net/http"

	"merchant-directory-backend/internal/domains/user/model"
	"merchant-directory-backend/internal/domains/user/service"
	"merchant-directory-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type UserHandler struct {
	service service.ServiceInterface
}

func NewUserHandler(svc service.ServiceInterface) *UserHandler {
	return &UserHandler{service: svc}
}

// currentUserID reads the authenticated user id set by the auth middleware.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get("user_id")
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// GetUserType - GET /api/v1/users/me/type
func (h *UserHandler) GetUserType(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Unauthorized(c, "user_id not found in context")
		return
	}

	u, err := h.service.GetUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			response.NotFound(c, "user not found")
			return
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to fetch user")
		response.InternalServerError(c, "failed to fetch user")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user_type": u.UserType})
}

// UpdateUserType - PUT /api/v1/users/me/type
func (h *UserHandler) UpdateUserType(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Unauthorized(c, "user_id not found in context")
		return
	}

	var req model.UpdateUserTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", err)
		return
	}

	if err := h.service.UpdateUserType(c.Request.Context(), userID, req.UserType); err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidUserType):
			response.BadRequest(c, "invalid user type")
		case errors.Is(err, model.ErrUserNotFound):
			response.NotFound(c, "user not found")
		default:
			log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to update user type")
			response.InternalServerError(c, "failed to update user type")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user_type": req.UserType})
}

// UpdateProfile - PUT /api/v1/users/me/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Unauthorized(c, "user_id not found in context")
		return
	}

	var req model.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", err)
		return
	}

	if err := h.service.UpdateProfile(c.Request.Context(), userID, req.Location, req.Slug); err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			response.NotFound(c, "user not found")
			return
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to update profile")
		response.InternalServerError(c, "failed to update profile")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"location": req.Location,
		"slug":     req.Slug,
	})
}
