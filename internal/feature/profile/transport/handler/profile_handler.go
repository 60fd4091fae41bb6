// Package handler exposes the profile operations over HTTP.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"devsocial_backend/internal/api"
	"devsocial_backend/internal/feature/profile/domain/entity"
	"devsocial_backend/internal/feature/profile/transport/http/dto"
	"devsocial_backend/internal/feature/profile/usecase"
	jwtmw "devsocial_backend/internal/platform/jwt"
	"devsocial_backend/internal/shared/validation"
)

const (
	MsgNoProfile       = "There is no profile for this user"
	MsgProfileNotFound = "Profile not found"
	MsgNoGitHubProfile = "No Github profile found"
	MsgUserDeleted     = "User deleted"
	MsgNotAuthorized   = "User not authorized"
)

// ProfileUsecase is the set of profile operations used by the handler.
type ProfileUsecase interface {
	GetOwn(ctx context.Context, userID string) (*entity.Profile, error)
	GetByUser(ctx context.Context, userID string) (*entity.Profile, error)
	List(ctx context.Context) ([]entity.Profile, error)
	Upsert(ctx context.Context, userID string, patch entity.ProfilePatch) (*entity.Profile, error)
	AddExperience(ctx context.Context, userID string, in usecase.ExperienceInput) (*entity.Profile, error)
	RemoveExperience(ctx context.Context, userID, expID string) (*entity.Profile, error)
	AddEducation(ctx context.Context, userID string, in usecase.EducationInput) (*entity.Profile, error)
	RemoveEducation(ctx context.Context, userID, eduID string) (*entity.Profile, error)
	DeleteAccount(ctx context.Context, userID string) error
	GitHubRepos(ctx context.Context, username string) ([]entity.Repo, error)
}

// ProfileHandler handles the /api/profile routes.
type ProfileHandler struct {
	profiles ProfileUsecase
}

// NewProfileHandler returns a ProfileHandler backed by profiles.
func NewProfileHandler(profiles ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// Me handles GET /api/profile/me.
func (h *ProfileHandler) Me(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	p, err := h.profiles.GetOwn(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err, MsgNoProfile)
		return
	}
	c.JSON(http.StatusOK, p)
}

// List handles GET /api/profile.
func (h *ProfileHandler) List(c *gin.Context) {
	profiles, err := h.profiles.List(c.Request.Context())
	if err != nil {
		h.fail(c, err, MsgProfileNotFound)
		return
	}
	c.JSON(http.StatusOK, profiles)
}

// ByUser handles GET /api/profile/user/:user_id.
func (h *ProfileHandler) ByUser(c *gin.Context) {
	p, err := h.profiles.GetByUser(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		h.fail(c, err, MsgProfileNotFound)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Upsert handles POST /api/profile.
func (h *ProfileHandler) Upsert(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req dto.ProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("profile body rejected", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.Errors(validation.FromError(err).Messages...))
		return
	}
	p, err := h.profiles.Upsert(c.Request.Context(), userID, req.ToPatch())
	if err != nil {
		h.fail(c, err, MsgProfileNotFound)
		return
	}
	c.JSON(http.StatusOK, p)
}

// DeleteAccount handles DELETE /api/profile.
func (h *ProfileHandler) DeleteAccount(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	if err := h.profiles.DeleteAccount(c.Request.Context(), userID); err != nil {
		h.fail(c, err, MsgProfileNotFound)
		return
	}
	slog.Info("account deleted", "user_id", userID)
	c.JSON(http.StatusOK, api.MessageResponse{Msg: MsgUserDeleted})
}

// AddExperience handles PUT /api/profile/experience.
func (h *ProfileHandler) AddExperience(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var in usecase.ExperienceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, api.Errors(validation.FromError(err).Messages...))
		return
	}
	p, err := h.profiles.AddExperience(c.Request.Context(), userID, in)
	if err != nil {
		h.fail(c, err, MsgProfileNotFound)
		return
	}
	c.JSON(http.StatusOK, p)
}

// RemoveExperience handles DELETE /api/profile/experience/:exp_id.
func (h *ProfileHandler) RemoveExperience(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	p, err := h.profiles.RemoveExperience(c.Request.Context(), userID, c.Param("exp_id"))
	if err != nil {
		h.fail(c, err, MsgProfileNotFound)
		return
	}
	c.JSON(http.StatusOK, p)
}

// AddEducation handles PUT /api/profile/education.
func (h *ProfileHandler) AddEducation(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var in usecase.EducationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, api.Errors(validation.FromError(err).Messages...))
		return
	}
	p, err := h.profiles.AddEducation(c.Request.Context(), userID, in)
	if err != nil {
		h.fail(c, err, MsgProfileNotFound)
		return
	}
	c.JSON(http.StatusOK, p)
}

// RemoveEducation handles DELETE /api/profile/education/:edu_id.
func (h *ProfileHandler) RemoveEducation(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	p, err := h.profiles.RemoveEducation(c.Request.Context(), userID, c.Param("edu_id"))
	if err != nil {
		h.fail(c, err, MsgProfileNotFound)
		return
	}
	c.JSON(http.StatusOK, p)
}

// GitHubRepos handles GET /api/profile/github/:username.
func (h *ProfileHandler) GitHubRepos(c *gin.Context) {
	repos, err := h.profiles.GitHubRepos(c.Request.Context(), c.Param("username"))
	if err != nil {
		h.fail(c, err, MsgProfileNotFound)
		return
	}
	c.JSON(http.StatusOK, repos)
}

// fail maps a usecase error to a response. notFoundMsg is used for ErrProfileNotFound.
func (h *ProfileHandler) fail(c *gin.Context, err error, notFoundMsg string) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, api.Errors(verr.Messages...))
	case errors.Is(err, usecase.ErrProfileNotFound):
		c.JSON(http.StatusNotFound, api.Errors(notFoundMsg))
	case errors.Is(err, usecase.ErrNotAuthorized):
		c.JSON(http.StatusUnauthorized, api.Errors(MsgNotAuthorized))
	case errors.Is(err, usecase.ErrGitHubUserNotFound):
		c.JSON(http.StatusNotFound, api.Errors(MsgNoGitHubProfile))
	default:
		slog.Error("profile request failed", "error", err, "path", c.FullPath())
		c.JSON(http.StatusInternalServerError, api.Errors(api.MsgServerError))
	}
}

func requireUser(c *gin.Context) (string, bool) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, api.Errors(jwtmw.MsgInvalidToken))
	}
	return userID, ok
}
