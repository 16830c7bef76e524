package main

import (
	"time"

	"github.com/mbelova/canvashare/config"
	"github.com/mbelova/canvashare/models"
	"github.com/mbelova/canvashare/routes"
	"github.com/mbelova/canvashare/utils"
)

func main() {
	cfg := config.Load()

	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(
		&models.User{},
		&models.Content{},
		&models.Category{},
		&models.Tag{},
		&models.ContentCategory{},
		&models.ContentTag{},
		&models.Comment{},
		&models.Reaction{},
		&models.UploadedFile{},
	)

	r := routes.SetupRouter(db)

	// Background cleanup for expired uploads (best-effort).
	utils.StartUploadCleaner(5 * time.Minute)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
