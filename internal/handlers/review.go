package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"filmlink/internal/models"
	"filmlink/internal/services"
	"filmlink/internal/utils"
)

type ReviewHandler struct {
	reviews *services.ReviewService
}

func NewReviewHandler(reviews *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

// FindAll GET /reviews?filmId=1&count=10
func (h *ReviewHandler) FindAll(c *gin.Context) {
	filmID := int64(utils.StringToInt(c.Query("filmId"), 0))
	count := utils.StringToInt(c.Query("count"), 10)

	reviews, err := h.reviews.FindAll(c.Request.Context(), filmID, count)
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

func (h *ReviewHandler) FindByID(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		Fail(c, err)
		return
	}
	review, err := h.reviews.FindByID(c.Request.Context(), id)
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

func (h *ReviewHandler) Create(c *gin.Context) {
	var review models.Review
	if err := c.ShouldBindJSON(&review); err != nil {
		BindFail(c, err)
		return
	}
	created, err := h.reviews.Create(c.Request.Context(), &review)
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *ReviewHandler) Update(c *gin.Context) {
	var review models.Review
	if err := c.ShouldBindJSON(&review); err != nil {
		BindFail(c, err)
		return
	}
	updated, err := h.reviews.Update(c.Request.Context(), &review)
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		Fail(c, err)
		return
	}
	if err := h.reviews.Delete(c.Request.Context(), id); err != nil {
		Fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ReviewHandler) Like(c *gin.Context) {
	h.vote(c, true)
}

func (h *ReviewHandler) Dislike(c *gin.Context) {
	h.vote(c, false)
}

func (h *ReviewHandler) RetractLike(c *gin.Context) {
	h.retract(c, true)
}

func (h *ReviewHandler) RetractDislike(c *gin.Context) {
	h.retract(c, false)
}

func (h *ReviewHandler) vote(c *gin.Context, isLike bool) {
	reviewID, userID, err := pairParams(c, "id", "userId")
	if err != nil {
		Fail(c, err)
		return
	}
	review, err := h.reviews.Vote(c.Request.Context(), reviewID, userID, isLike)
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

func (h *ReviewHandler) retract(c *gin.Context, wasLike bool) {
	reviewID, userID, err := pairParams(c, "id", "userId")
	if err != nil {
		Fail(c, err)
		return
	}
	review, err := h.reviews.Retract(c.Request.Context(), reviewID, userID, wasLike)
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}
