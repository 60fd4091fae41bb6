// Package dto defines data transfer objects for the auth feature's HTTP transport layer.
package dto

// RegisterReq is the body of POST /api/users.
type RegisterReq struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginReq is the body of POST /api/auth.
type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
