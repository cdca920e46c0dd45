package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"filmlink/internal/models"
	"filmlink/internal/services"
	"filmlink/internal/utils"
)

type FilmHandler struct {
	films   *services.FilmService
	popular *services.PopularityService
}

func NewFilmHandler(films *services.FilmService, popular *services.PopularityService) *FilmHandler {
	return &FilmHandler{films: films, popular: popular}
}

func (h *FilmHandler) FindAll(c *gin.Context) {
	films, err := h.films.FindAll(c.Request.Context())
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, films)
}

func (h *FilmHandler) FindByID(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		Fail(c, err)
		return
	}
	film, err := h.films.FindByID(c.Request.Context(), id)
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, film)
}

func (h *FilmHandler) Create(c *gin.Context) {
	var film models.Film
	if err := c.ShouldBindJSON(&film); err != nil {
		BindFail(c, err)
		return
	}
	created, err := h.films.Create(c.Request.Context(), &film)
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *FilmHandler) Update(c *gin.Context) {
	var film models.Film
	if err := c.ShouldBindJSON(&film); err != nil {
		BindFail(c, err)
		return
	}
	updated, err := h.films.Update(c.Request.Context(), &film)
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *FilmHandler) Delete(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		Fail(c, err)
		return
	}
	if err := h.films.Delete(c.Request.Context(), id); err != nil {
		Fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *FilmHandler) PutLike(c *gin.Context) {
	filmID, userID, err := pairParams(c, "id", "userId")
	if err != nil {
		Fail(c, err)
		return
	}
	if err := h.films.PutLike(c.Request.Context(), filmID, userID); err != nil {
		Fail(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *FilmHandler) DeleteLike(c *gin.Context) {
	filmID, userID, err := pairParams(c, "id", "userId")
	if err != nil {
		Fail(c, err)
		return
	}
	if err := h.films.DeleteLike(c.Request.Context(), filmID, userID); err != nil {
		Fail(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// Popular GET /films/popular?count=10&genreId=1&year=2000
func (h *FilmHandler) Popular(c *gin.Context) {
	count := utils.StringToInt(c.Query("count"), 10)
	genreID := int64(utils.StringToInt(c.Query("genreId"), 0))
	year := utils.StringToInt(c.Query("year"), 0)

	films, err := h.popular.Popular(c.Request.Context(), count, genreID, year)
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, films)
}

// Common GET /films/common?userId=1&friendId=2
func (h *FilmHandler) Common(c *gin.Context) {
	userID, err := utils.ParseID(c.Query("userId"))
	if err != nil {
		Fail(c, err)
		return
	}
	friendID, err := utils.ParseID(c.Query("friendId"))
	if err != nil {
		Fail(c, err)
		return
	}
	films, err := h.films.CommonFilms(c.Request.Context(), userID, friendID)
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, films)
}

// ByDirector GET /films/director/:directorId?sortBy=year|likes
func (h *FilmHandler) ByDirector(c *gin.Context) {
	directorID, err := utils.ParseID(c.Param("directorId"))
	if err != nil {
		Fail(c, err)
		return
	}
	films, err := h.films.DirectorFilms(c.Request.Context(), directorID, c.Query("sortBy"))
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, films)
}

// Search GET /films/search?query=крад&by=director,title
func (h *FilmHandler) Search(c *gin.Context) {
	films, err := h.films.Search(c.Request.Context(), c.Query("query"), c.Query("by"))
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, films)
}
