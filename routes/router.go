package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mbelova/canvashare/config"
	"github.com/mbelova/canvashare/controllers"
	"github.com/mbelova/canvashare/middleware"
	"github.com/mbelova/canvashare/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Access log through zap (rolling file), replacing the default console logger.
	al, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(al, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(al, false))
	} else {
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	// Uploaded images are served from local static storage.
	r.Static("/static", "./static")

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	authController := controllers.NewAuthController(db)
	contentController := controllers.NewContentController(db)
	categoryController := controllers.NewCategoryController(db)
	tagController := controllers.NewTagController(db)
	commentController := controllers.NewCommentController(db)
	reactionController := controllers.NewReactionController(db)

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimit())
	authGroup.POST("/signup", authController.Signup)
	authGroup.POST("/login", authController.Login)
	authGroup.POST("/logout", middleware.AuthRequired(), authController.Logout)
	authGroup.GET("/me", middleware.AuthRequired(), authController.Me)

	// Everything below requires a bearer token and shares the per-IP budget.
	protected := api.Group("")
	protected.Use(middleware.RateLimit(), middleware.AuthRequired())

	contentGroup := protected.Group("/content")
	contentGroup.GET("/filter", contentController.Filter)
	contentGroup.POST("", contentController.Create)
	contentGroup.GET("", contentController.List)
	contentGroup.POST("/upload-image", contentController.UploadImage)
	contentGroup.GET("/:id", contentController.Get)
	contentGroup.PUT("/:id", contentController.Update)
	contentGroup.DELETE("/:id", contentController.Delete)

	categoryGroup := protected.Group("/categories")
	categoryGroup.POST("", categoryController.Create)
	categoryGroup.GET("", categoryController.List)
	categoryGroup.POST("/content-categories", categoryController.AddContentCategories)
	categoryGroup.GET("/:id", categoryController.Get)
	categoryGroup.PUT("/:id", categoryController.Update)
	categoryGroup.DELETE("/:id", categoryController.Delete)

	tagGroup := protected.Group("/tags")
	tagGroup.POST("", tagController.Create)
	tagGroup.GET("", tagController.List)
	tagGroup.POST("/content-tags", tagController.AddContentTags)
	tagGroup.GET("/:id", tagController.Get)
	tagGroup.DELETE("/:id", tagController.Delete)

	commentGroup := protected.Group("/comments")
	commentGroup.POST("", commentController.Create)
	commentGroup.GET("/:contentId", commentController.ListByContent)
	commentGroup.PUT("/:commentId", commentController.Update)
	commentGroup.DELETE("/:commentId", commentController.Delete)

	reactionGroup := protected.Group("/reactions")
	reactionGroup.POST("", reactionController.Create)
	reactionGroup.GET("/:contentId", reactionController.Get)
	reactionGroup.PUT("/:contentId", reactionController.Update)
	reactionGroup.DELETE("/:contentId", reactionController.Delete)

	r.NoRoute(func(ctx *gin.Context) {
		if strings.HasPrefix(ctx.Request.URL.Path, "/api/") {
			utils.Error(ctx, http.StatusNotFound, 40400, "api route not found")
			return
		}
		ctx.JSON(http.StatusNotFound, gin.H{"message": "not found"})
	})

	return r
}
