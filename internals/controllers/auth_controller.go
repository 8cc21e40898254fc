package controllers

import (
	"net/http"

	"github.com/te6695/LibraryWebAPI/internals/middleware"
	"github.com/te6695/LibraryWebAPI/internals/service"

	"github.com/gin-gonic/gin"
)

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=100"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Username string `json:"username"`
	Token    string `json:"token"`
	Role     string `json:"role"`
}

type AuthController struct {
	auth *service.AuthService
}

func NewAuthController(auth *service.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

func (ctrl *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	if _, err := ctrl.auth.Register(c.Request.Context(), req.Username, req.Password); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "registration successful"})
}

func (ctrl *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	result, err := ctrl.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, AuthResponse{
		Username: result.Username,
		Token:    result.Token,
		Role:     result.Role,
	})
}

func (ctrl *AuthController) Logout(c *gin.Context) {
	jti := c.GetString(middleware.CtxTokenId)
	if err := ctrl.auth.Logout(c.Request.Context(), jti); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
