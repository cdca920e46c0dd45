package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"filmlink/internal/services"
	"filmlink/internal/utils"
)

type GenreHandler struct {
	genres *services.GenreService
}

func NewGenreHandler(genres *services.GenreService) *GenreHandler {
	return &GenreHandler{genres: genres}
}

func (h *GenreHandler) FindAll(c *gin.Context) {
	genres, err := h.genres.FindAll(c.Request.Context())
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, genres)
}

func (h *GenreHandler) FindByID(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		Fail(c, err)
		return
	}
	genre, err := h.genres.FindByID(c.Request.Context(), id)
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, genre)
}
