package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"filmlink/internal/db"
	"filmlink/internal/handlers"
	"filmlink/internal/logger"
	"filmlink/internal/middleware"
	"filmlink/internal/router"
	"filmlink/internal/services"
	"filmlink/internal/storage"
	"filmlink/internal/validation"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}

	logger.Init()
	defer logger.Sync()

	// Initialize Database
	db.Init()
	cache := db.InitRedis()

	validation.Register()

	// Storage
	likes := storage.NewLikeIndex(db.DB)
	friends := storage.NewFriendGraph(db.DB)
	votes := storage.NewVoteLedger(db.DB)
	feed := storage.NewFeedLog(db.DB)

	// Services
	popularSvc := services.NewPopularityService(db.DB, cache)
	userSvc := services.NewUserService(db.DB, friends, feed)
	filmSvc := services.NewFilmService(db.DB, likes, feed, popularSvc)
	reviewSvc := services.NewReviewService(db.DB, votes, feed)
	feedSvc := services.NewFeedService(db.DB, feed)
	recommendSvc := services.NewRecommendService(db.DB, likes)
	genreSvc := services.NewGenreService(db.DB)
	mpaSvc := services.NewMpaService(db.DB)
	directorSvc := services.NewDirectorService(db.DB)

	// Initialize Gin
	r := gin.New()
	r.Use(middleware.RequestLogger(), middleware.Recovery())

	router.RegisterRoutes(r, router.Handlers{
		Users:     handlers.NewUserHandler(userSvc, feedSvc, recommendSvc),
		Films:     handlers.NewFilmHandler(filmSvc, popularSvc),
		Reviews:   handlers.NewReviewHandler(reviewSvc),
		Genres:    handlers.NewGenreHandler(genreSvc),
		Mpa:       handlers.NewMpaHandler(mpaSvc),
		Directors: handlers.NewDirectorHandler(directorSvc),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logger.L.Info("FilmLink server starting", zap.String("port", port))
	if err := r.Run(":" + port); err != nil {
		logger.L.Fatal("Server stopped", zap.Error(err))
	}
}
