package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"filmlink/internal/services"
	"filmlink/internal/utils"
)

type MpaHandler struct {
	mpa *services.MpaService
}

func NewMpaHandler(mpa *services.MpaService) *MpaHandler {
	return &MpaHandler{mpa: mpa}
}

func (h *MpaHandler) FindAll(c *gin.Context) {
	ratings, err := h.mpa.FindAll(c.Request.Context())
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ratings)
}

func (h *MpaHandler) FindByID(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		Fail(c, err)
		return
	}
	rating, err := h.mpa.FindByID(c.Request.Context(), id)
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rating)
}
