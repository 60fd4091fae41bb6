// Package handler exposes the post operations over HTTP.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"devsocial_backend/internal/api"
	"devsocial_backend/internal/feature/post/domain"
	"devsocial_backend/internal/feature/post/domain/entity"
	"devsocial_backend/internal/feature/post/transport/http/dto"
	jwtmw "devsocial_backend/internal/platform/jwt"
	"devsocial_backend/internal/shared/validation"
)

const (
	MsgPostNotFound    = "Post not found"
	MsgCommentNotFound = "Comment not found"
	MsgNotAuthorized   = "User not authorized"
	MsgAlreadyLiked    = "Post already liked"
	MsgNotLiked        = "Post has not yet been liked"
	MsgPostRemoved     = "Post removed"
)

// PostUsecase is the set of post operations used by the handler.
type PostUsecase interface {
	Create(ctx context.Context, userID, text string) (*entity.Post, error)
	List(ctx context.Context) ([]entity.Post, error)
	Get(ctx context.Context, postID string) (*entity.Post, error)
	Delete(ctx context.Context, userID, postID string) error
	Like(ctx context.Context, userID, postID string) ([]entity.Like, error)
	Unlike(ctx context.Context, userID, postID string) ([]entity.Like, error)
	AddComment(ctx context.Context, userID, postID, text string) ([]entity.Comment, error)
	RemoveComment(ctx context.Context, userID, postID, commentID string) ([]entity.Comment, error)
}

// PostHandler handles the /api/posts routes. Every route requires a token.
type PostHandler struct {
	posts PostUsecase
}

// NewPostHandler returns a PostHandler backed by posts.
func NewPostHandler(posts PostUsecase) *PostHandler {
	return &PostHandler{posts: posts}
}

// Create handles POST /api/posts.
func (h *PostHandler) Create(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req dto.TextReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.Errors(validation.FromError(err).Messages...))
		return
	}
	p, err := h.posts.Create(c.Request.Context(), userID, req.Text)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// List handles GET /api/posts.
func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.posts.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// Get handles GET /api/posts/:id.
func (h *PostHandler) Get(c *gin.Context) {
	p, err := h.posts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Delete handles DELETE /api/posts/:id.
func (h *PostHandler) Delete(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	if err := h.posts.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Msg: MsgPostRemoved})
}

// Like handles PUT /api/posts/like/:id.
func (h *PostHandler) Like(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	likes, err := h.posts.Like(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, likes)
}

// Unlike handles PUT /api/posts/unlike/:id.
func (h *PostHandler) Unlike(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	likes, err := h.posts.Unlike(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, likes)
}

// AddComment handles POST /api/posts/comment/:id.
func (h *PostHandler) AddComment(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req dto.TextReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.Errors(validation.FromError(err).Messages...))
		return
	}
	comments, err := h.posts.AddComment(c.Request.Context(), userID, c.Param("id"), req.Text)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

// RemoveComment handles DELETE /api/posts/comment/:id/:comment_id.
func (h *PostHandler) RemoveComment(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	comments, err := h.posts.RemoveComment(c.Request.Context(), userID, c.Param("id"), c.Param("comment_id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

func fail(c *gin.Context, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, api.Errors(verr.Messages...))
	case errors.Is(err, domain.ErrPostNotFound):
		c.JSON(http.StatusNotFound, api.Errors(MsgPostNotFound))
	case errors.Is(err, domain.ErrCommentNotFound):
		c.JSON(http.StatusNotFound, api.Errors(MsgCommentNotFound))
	case errors.Is(err, domain.ErrNotAuthorized):
		c.JSON(http.StatusUnauthorized, api.Errors(MsgNotAuthorized))
	case errors.Is(err, domain.ErrAlreadyLiked):
		c.JSON(http.StatusBadRequest, api.Errors(MsgAlreadyLiked))
	case errors.Is(err, domain.ErrNotLiked):
		c.JSON(http.StatusBadRequest, api.Errors(MsgNotLiked))
	default:
		slog.Error("post request failed", "error", err, "path", c.FullPath())
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
