package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/recipe-app-api/internal/application"
	"github.com/oksasatya/recipe-app-api/internal/interface/middleware"
	"github.com/oksasatya/recipe-app-api/pkg/response"
	"github.com/oksasatya/recipe-app-api/pkg/validation"
)

type UserHandler struct {
	Users  *application.UserService
	Auth   *application.AuthService
	Logger *logrus.Logger
}

func NewUserHandler(users *application.UserService, auth *application.AuthService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Users: users, Auth: auth, Logger: logger}
}

// Create POST /api/user/create
func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Users.CreateUser(c.Request.Context(), req.Email, req.Password, application.UserExtra{Name: req.Name})
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, toUserResponse(u))
}

// Token POST /api/user/token
func (h *UserHandler) Token(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	tok, err := h.Auth.IssueToken(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, tokenResponse{Token: tok.Key})
}

// RevokeToken DELETE /api/user/token
func (h *UserHandler) RevokeToken(c *gin.Context) {
	if err := h.Auth.RevokeToken(c.Request.Context(), middleware.CurrentUser(c)); err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Me GET /api/user/me
func (h *UserHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, toUserResponse(middleware.CurrentUser(c)))
}

// UpdateMe PATCH /api/user/me
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Users.UpdateProfile(c.Request.Context(), middleware.CurrentUser(c).ID, application.UpdateProfileInput{
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(u))
}
