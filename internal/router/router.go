package router

import (
	"github.com/gin-gonic/gin"

	"filmlink/internal/handlers"
)

type Handlers struct {
	Users     *handlers.UserHandler
	Films     *handlers.FilmHandler
	Reviews   *handlers.ReviewHandler
	Genres    *handlers.GenreHandler
	Mpa       *handlers.MpaHandler
	Directors *handlers.DirectorHandler
}

// RegisterRoutes 挂载全部 REST 路由
func RegisterRoutes(r *gin.Engine, h Handlers) {
	users := r.Group("/users")
	{
		users.GET("", h.Users.FindAll)
		users.POST("", h.Users.Create)
		users.PUT("", h.Users.Update)
		users.GET("/:id", h.Users.FindByID)
		users.DELETE("/:id", h.Users.Delete)
		users.PUT("/:id/friends/:friendId", h.Users.PutFriend)
		users.DELETE("/:id/friends/:friendId", h.Users.DeleteFriend)
		users.GET("/:id/friends", h.Users.Friends)
		users.GET("/:id/friends/common/:otherId", h.Users.CommonFriends)
		users.GET("/:id/recommendations", h.Users.Recommendations)
		users.GET("/:id/feed", h.Users.Feed)
	}

	films := r.Group("/films")
	{
		films.GET("", h.Films.FindAll)
		films.POST("", h.Films.Create)
		films.PUT("", h.Films.Update)
		films.GET("/popular", h.Films.Popular)
		films.GET("/common", h.Films.Common)
		films.GET("/search", h.Films.Search)
		films.GET("/director/:directorId", h.Films.ByDirector)
		films.GET("/:id", h.Films.FindByID)
		films.DELETE("/:id", h.Films.Delete)
		films.PUT("/:id/like/:userId", h.Films.PutLike)
		films.DELETE("/:id/like/:userId", h.Films.DeleteLike)
	}

	reviews := r.Group("/reviews")
	{
		reviews.GET("", h.Reviews.FindAll)
		reviews.POST("", h.Reviews.Create)
		reviews.PUT("", h.Reviews.Update)
		reviews.GET("/:id", h.Reviews.FindByID)
		reviews.DELETE("/:id", h.Reviews.Delete)
		reviews.PUT("/:id/like/:userId", h.Reviews.Like)
		reviews.DELETE("/:id/like/:userId", h.Reviews.RetractLike)
		reviews.PUT("/:id/dislike/:userId", h.Reviews.Dislike)
		reviews.DELETE("/:id/dislike/:userId", h.Reviews.RetractDislike)
	}

	genres := r.Group("/genres")
	{
		genres.GET("", h.Genres.FindAll)
		genres.GET("/:id", h.Genres.FindByID)
	}

	mpa := r.Group("/mpa")
	{
		mpa.GET("", h.Mpa.FindAll)
		mpa.GET("/:id", h.Mpa.FindByID)
	}

	directors := r.Group("/directors")
	{
		directors.GET("", h.Directors.FindAll)
		directors.POST("", h.Directors.Create)
		directors.PUT("", h.Directors.Update)
		directors.GET("/:id", h.Directors.FindByID)
		directors.DELETE("/:id", h.Directors.Delete)
	}
}
