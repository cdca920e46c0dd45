package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"filmlink/internal/models"
	"filmlink/internal/services"
	"filmlink/internal/utils"
)

type DirectorHandler struct {
	directors *services.DirectorService
}

func NewDirectorHandler(directors *services.DirectorService) *DirectorHandler {
	return &DirectorHandler{directors: directors}
}

func (h *DirectorHandler) FindAll(c *gin.Context) {
	directors, err := h.directors.FindAll(c.Request.Context())
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, directors)
}

func (h *DirectorHandler) FindByID(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		Fail(c, err)
		return
	}
	director, err := h.directors.FindByID(c.Request.Context(), id)
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, director)
}

func (h *DirectorHandler) Create(c *gin.Context) {
	var director models.Director
	if err := c.ShouldBindJSON(&director); err != nil {
		BindFail(c, err)
		return
	}
	created, err := h.directors.Create(c.Request.Context(), &director)
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *DirectorHandler) Update(c *gin.Context) {
	var director models.Director
	if err := c.ShouldBindJSON(&director); err != nil {
		BindFail(c, err)
		return
	}
	updated, err := h.directors.Update(c.Request.Context(), &director)
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *DirectorHandler) Delete(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		Fail(c, err)
		return
	}
	if err := h.directors.Delete(c.Request.Context(), id); err != nil {
		Fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
