package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/hongphuc2004/Music-Flow/controllers"
	"github.com/hongphuc2004/Music-Flow/platform/cache"
	"github.com/hongphuc2004/Music-Flow/platform/config"
	"github.com/hongphuc2004/Music-Flow/platform/database"
	"github.com/hongphuc2004/Music-Flow/platform/kafka"
	"github.com/hongphuc2004/Music-Flow/platform/middleware"
	"github.com/hongphuc2004/Music-Flow/platform/storage"
	"github.com/hongphuc2004/Music-Flow/repository"
)

func main() {
	cfg := config.LoadConfig()

	if cfg.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	media, err := storage.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize MinIO client: %v", err)
	}

	catalogCache := cache.Connect(cfg)
	events := kafka.NewProducer(cfg)

	setupGracefulShutdown(func() {
		database.Close(db)
		catalogCache.Close()
		if err := events.Close(); err != nil {
			log.Printf("Error closing Kafka producer: %v", err)
		}
	})

	users := repository.NewUserRepo(db)
	songs := repository.NewSongRepo(db)
	topics := repository.NewTopicRepo(db)
	playlists := repository.NewPlaylistRepo(db)

	authController := controllers.NewAuthController(users, cfg)
	userController := controllers.NewUserController(users, songs, playlists)
	songController := controllers.NewSongController(songs, topics, media, catalogCache, events)
	topicController := controllers.NewTopicController(topics, songs, catalogCache)
	playlistController := controllers.NewPlaylistController(playlists, songs, users)
	uploadController := controllers.NewUploadController(media)

	router := gin.Default()
	router.MaxMultipartMemory = cfg.MaxUploadSize
	router.Use(cors())

	setupRoutes(router, cfg,
		authController, userController, songController,
		topicController, playlistController, uploadController)

	log.Printf("Starting musicflow API on :%s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRoutes(
	router *gin.Engine,
	cfg *config.Config,
	auth *controllers.AuthController,
	user *controllers.UserController,
	song *controllers.SongController,
	topic *controllers.TopicController,
	playlist *controllers.PlaylistController,
	upload *controllers.UploadController,
) {
	router.GET("/health", controllers.HealthCheck)

	authGroup := router.Group("/api/auth")
	{
		authGroup.POST("/register", auth.Register)
		authGroup.POST("/login", auth.Login)
	}

	songs := router.Group("/api/songs")
	{
		songs.GET("", song.List)
		songs.GET("/search", song.Search)
		songs.GET("/:id", song.Get)
		songs.POST("", song.Upload)
		songs.DELETE("/:id", song.Delete)
	}

	topics := router.Group("/api/topics")
	{
		topics.GET("", topic.List)
		topics.GET("/:topicId/songs", topic.Songs)
		topics.POST("", topic.Create)
		topics.PUT("/:id", topic.Update)
		topics.DELETE("/:id", topic.Delete)
	}

	uploads := router.Group("/api/upload")
	{
		uploads.POST("/audio", upload.Audio)
	}

	authed := router.Group("/api")
	authed.Use(middleware.Auth([]byte(cfg.JWTSecret)))
	{
		users := authed.Group("/users")
		{
			users.GET("/me", user.Me)
			users.PUT("/me", user.UpdateProfile)
			users.POST("/me/favorites", user.AddFavorite)
			users.DELETE("/me/favorites/:songId", user.RemoveFavorite)
		}

		playlists := authed.Group("/playlists")
		{
			playlists.GET("", playlist.List)
			playlists.GET("/:id", playlist.Get)
			playlists.POST("", playlist.Create)
			playlists.PUT("/:id", playlist.Update)
			playlists.DELETE("/:id", playlist.Delete)
			playlists.POST("/:id/songs", playlist.AddSong)
			playlists.DELETE("/:id/songs/:songId", playlist.RemoveSong)
			playlists.PUT("/:id/reorder", playlist.Reorder)
		}
	}
}

func setupGracefulShutdown(shutdown func()) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Shutting down services...")
		shutdown()
		log.Println("All services shut down gracefully")
		os.Exit(0)
	}()
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
