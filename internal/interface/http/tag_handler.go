package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/recipe-app-api/internal/application"
	"github.com/oksasatya/recipe-app-api/internal/interface/middleware"
	"github.com/oksasatya/recipe-app-api/pkg/response"
	"github.com/oksasatya/recipe-app-api/pkg/validation"
)

type TagHandler struct {
	Tags   *application.TagService
	Logger *logrus.Logger
}

func NewTagHandler(tags *application.TagService, logger *logrus.Logger) *TagHandler {
	return &TagHandler{Tags: tags, Logger: logger}
}

// List GET /api/recipe/tags
func (h *TagHandler) List(c *gin.Context) {
	tags, err := h.Tags.ListTags(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, toTagResponses(tags))
}

// Create POST /api/recipe/tags
func (h *TagHandler) Create(c *gin.Context) {
	var req createTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	t, err := h.Tags.CreateTag(c.Request.Context(), middleware.CurrentUser(c), req.Name)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, tagResponse{ID: t.ID, Name: t.Name})
}

// Delete DELETE /api/recipe/tags/:id
func (h *TagHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error[any](c, http.StatusNotFound, "tag not found", nil)
		return
	}
	if err := h.Tags.DeleteTag(c.Request.Context(), middleware.CurrentUser(c), id); err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
