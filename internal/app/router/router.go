// Package router maps URLs to handlers.
package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "devsocial_backend/internal/feature/auth/transport/handler"
	posthandler "devsocial_backend/internal/feature/post/transport/handler"
	profilehandler "devsocial_backend/internal/feature/profile/transport/handler"
	healthhandler "devsocial_backend/internal/platform/http/handler"
	jwtmw "devsocial_backend/internal/platform/jwt"
)

// Handlers groups every HTTP handler mounted by NewRouter.
type Handlers struct {
	Auth    *authhandler.AuthHandler
	Profile *profilehandler.ProfileHandler
	Post    *posthandler.PostHandler
	Health  *healthhandler.HealthHandler
}

// NewRouter builds the gin engine. An empty allowedOrigins allows any origin.
func NewRouter(h Handlers, verifier jwtmw.TokenVerifier, allowedOrigins []string) *gin.Engine {
	r := gin.Default()
	r.Use(cors.New(corsConfig(allowedOrigins)))

	authRequired := jwtmw.AuthRequired(verifier)

	// 導通確認用
	r.GET("/healthz", h.Health.Health)
	r.HEAD("/healthz", h.Health.Health)

	api := r.Group("/api")

	// 新規ユーザー登録
	api.POST("/users", h.Auth.Register)
	// ログイン（トークン発行）
	api.POST("/auth", h.Auth.Login)
	api.GET("/auth", authRequired, h.Auth.Me)

	profile := api.Group("/profile")
	{
		profile.GET("", h.Profile.List)
		profile.GET("/user/:user_id", h.Profile.ByUser)
		profile.GET("/github/:username", h.Profile.GitHubRepos)

		// 認証必須
		profile.GET("/me", authRequired, h.Profile.Me)
		profile.POST("", authRequired, h.Profile.Upsert)
		profile.DELETE("", authRequired, h.Profile.DeleteAccount)
		profile.PUT("/experience", authRequired, h.Profile.AddExperience)
		profile.DELETE("/experience/:exp_id", authRequired, h.Profile.RemoveExperience)
		profile.PUT("/education", authRequired, h.Profile.AddEducation)
		profile.DELETE("/education/:edu_id", authRequired, h.Profile.RemoveEducation)
	}

	// 投稿APIはすべて認証必須
	posts := api.Group("/posts")
	posts.Use(authRequired)
	{
		posts.POST("", h.Post.Create)
		posts.GET("", h.Post.List)
		posts.GET("/:id", h.Post.Get)
		posts.DELETE("/:id", h.Post.Delete)
		posts.PUT("/like/:id", h.Post.Like)
		posts.PUT("/unlike/:id", h.Post.Unlike)
		posts.POST("/comment/:id", h.Post.AddComment)
		posts.DELETE("/comment/:id/:comment_id", h.Post.RemoveComment)
	}

	return r
}

func corsConfig(allowedOrigins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", jwtmw.HeaderToken},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(allowedOrigins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = allowedOrigins
	}
	return cfg
}
