// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"devsocial_backend/internal/api"
	"devsocial_backend/internal/feature/auth/domain/entity"
	"devsocial_backend/internal/feature/auth/transport/http/dto"
	"devsocial_backend/internal/feature/auth/usecase"
	jwtmw "devsocial_backend/internal/platform/jwt"
	"devsocial_backend/internal/shared/validation"
)

const (
	MsgUserExists         = "User already exists"
	MsgInvalidCredentials = "Invalid credentials"
	MsgUserNotFound       = "User not found"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	Register(ctx context.Context, name, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	CurrentUser(ctx context.Context, userID string) (*entity.User, error)
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register はユーザー登録APIエンドポイントを処理します。
// - バリデーションエラー時は違反した全フィールドを400で返却
// - メール重複時は400を返却
// - 成功時はトークン付きで200を返却
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.Errors(validation.FromError(err).Messages...))
		return
	}
	token, err := h.auth.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
			c.JSON(http.StatusBadRequest, api.Errors(verr.Messages...))
			return
		}
		if errors.Is(err, usecase.ErrEmailAlreadyExists) {
			slog.Warn("register rejected", "error", err, "remote_addr", c.ClientIP())
			c.JSON(http.StatusBadRequest, api.Errors(MsgUserExists))
			return
		}
		slog.Error("register failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.Errors(api.MsgServerError))
		return
	}
	slog.Info("user registered", "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.TokenResponse{Token: token})
}

// Login はユーザーログインAPIエンドポイントを処理します。
// 認証失敗時はユーザー列挙を防ぐため、理由を区別せず400を返却します。
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.Errors(validation.FromError(err).Messages...))
		return
	}
	token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			slog.Warn("login failed", "remote_addr", c.ClientIP())
			c.JSON(http.StatusBadRequest, api.Errors(MsgInvalidCredentials))
			return
		}
		slog.Error("login failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.Errors(api.MsgServerError))
		return
	}
	slog.Info("user login successful", "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.TokenResponse{Token: token})
}

// Me は認証済みユーザーの情報を返します。パスワードは含みません。
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.Errors(jwtmw.MsgInvalidToken))
		return
	}
	user, err := h.auth.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, api.Errors(MsgUserNotFound))
			return
		}
		slog.Error("current user lookup failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.Errors(api.MsgServerError))
		return
	}
	c.JSON(http.StatusOK, user)
}
