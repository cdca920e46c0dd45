package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"filmlink/internal/models"
	"filmlink/internal/services"
	"filmlink/internal/utils"
)

type UserHandler struct {
	users     *services.UserService
	feed      *services.FeedService
	recommend *services.RecommendService
}

func NewUserHandler(users *services.UserService, feed *services.FeedService, recommend *services.RecommendService) *UserHandler {
	return &UserHandler{users: users, feed: feed, recommend: recommend}
}

func (h *UserHandler) FindAll(c *gin.Context) {
	users, err := h.users.FindAll(c.Request.Context())
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) FindByID(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		Fail(c, err)
		return
	}
	user, err := h.users.FindByID(c.Request.Context(), id)
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Create(c *gin.Context) {
	var user models.User
	if err := c.ShouldBindJSON(&user); err != nil {
		BindFail(c, err)
		return
	}
	created, err := h.users.Create(c.Request.Context(), &user)
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *UserHandler) Update(c *gin.Context) {
	var user models.User
	if err := c.ShouldBindJSON(&user); err != nil {
		BindFail(c, err)
		return
	}
	updated, err := h.users.Update(c.Request.Context(), &user)
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		Fail(c, err)
		return
	}
	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		Fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *UserHandler) PutFriend(c *gin.Context) {
	id, friendID, err := pairParams(c, "id", "friendId")
	if err != nil {
		Fail(c, err)
		return
	}
	if err := h.users.PutFriend(c.Request.Context(), id, friendID); err != nil {
		Fail(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *UserHandler) DeleteFriend(c *gin.Context) {
	id, friendID, err := pairParams(c, "id", "friendId")
	if err != nil {
		Fail(c, err)
		return
	}
	if err := h.users.DeleteFriend(c.Request.Context(), id, friendID); err != nil {
		Fail(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *UserHandler) Friends(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		Fail(c, err)
		return
	}
	friends, err := h.users.Friends(c.Request.Context(), id)
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, friends)
}

func (h *UserHandler) CommonFriends(c *gin.Context) {
	id, otherID, err := pairParams(c, "id", "otherId")
	if err != nil {
		Fail(c, err)
		return
	}
	common, err := h.users.CommonFriends(c.Request.Context(), id, otherID)
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, common)
}

func (h *UserHandler) Recommendations(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		Fail(c, err)
		return
	}
	films, err := h.recommend.Recommendations(c.Request.Context(), id)
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, films)
}

func (h *UserHandler) Feed(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		Fail(c, err)
		return
	}
	limit := utils.StringToInt(c.Query("limit"), 0)
	events, err := h.feed.FeedFor(c.Request.Context(), id, limit)
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

func pairParams(c *gin.Context, first, second string) (int64, int64, error) {
	a, err := utils.ParseID(c.Param(first))
	if err != nil {
		return 0, 0, err
	}
	b, err := utils.ParseID(c.Param(second))
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}
