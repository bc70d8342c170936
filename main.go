package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"edumatch-server/config"
	"edumatch-server/controllers"
	"edumatch-server/services"
	"edumatch-server/storage"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	store, err := storage.OpenMongo(ctx, cfg.DatabaseURL, cfg.DatabaseName)
	if err != nil {
		log.Fatal(err)
	}

	catalog := services.NewCatalog(store)
	resolver := services.NewResolver(store)
	reconciler := services.NewReconciler(store)
	grader := services.NewGrader(store, reconciler, cfg.GradingStrict)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Auth-UID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	(&controllers.StudentController{Catalog: catalog, Resolver: resolver}).RegisterHandlers(r)
	(&controllers.CollegeController{Catalog: catalog}).RegisterHandlers(r)
	(&controllers.ApplicationController{Catalog: catalog}).RegisterHandlers(r)
	(&controllers.TestController{Catalog: catalog, Grader: grader}).RegisterHandlers(r)

	if err := r.Run(cfg.ServerAddr); err != nil {
		log.Fatal(err)
	}
}
