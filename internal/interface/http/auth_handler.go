package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/mesto-api/internal/application"
	"github.com/oksasatya/mesto-api/internal/interface/middleware"
	"github.com/oksasatya/mesto-api/pkg/helpers"
	"github.com/oksasatya/mesto-api/pkg/response"
)

type AuthHandler struct {
	Svc     UserService
	Logger  *logrus.Logger
	Cookies *helpers.Manager
}

func NewAuthHandler(svc UserService, logger *logrus.Logger, cookies *helpers.Manager) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger, Cookies: cookies}
}

type signupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"omitempty,username"`
	About    string `json:"about" binding:"omitempty,username"`
	Avatar   string `json:"avatar" binding:"omitempty,link"`
}

type signinRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBinding(c, err)
		return
	}
	u, err := h.Svc.Signup(c.Request.Context(), application.SignupInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		About:    req.About,
		Avatar:   req.Avatar,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, toUser(u), "user created", nil)
}

func (h *AuthHandler) Signin(c *gin.Context) {
	var req signinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBinding(c, err)
		return
	}
	token, claims, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	h.Cookies.SetSession(c, token, claims.ExpiresAt.Time)
	response.Token(c, token, "login successful")
}

// Signout clears the cookie even when revoking the token fails.
func (h *AuthHandler) Signout(c *gin.Context) {
	h.Cookies.Clear(c)
	if err := h.Svc.Signout(c.Request.Context(), middleware.ClaimsFrom(c)); err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "signed out", nil)
}
