package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"tramper/cmd/fx/db_fx"
	"tramper/cmd/fx/drivetime_fx"
	"tramper/cmd/fx/mapslink_fx"
	"tramper/cmd/fx/sync_fx"
	"tramper/internal/api/controllers"
	"tramper/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	app := fx.New(
		db_fx.Module,
		sync_fx.Module,
		drivetime_fx.Module,
		mapslink_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Println("Starting HTTP server at ${PORT}")
				if err := engine.Run(":" + os.Getenv("PORT")); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	syncController *controllers.SyncController,
	mapsLinkController *controllers.MapsLinkController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, syncController, mapsLinkController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	syncController *controllers.SyncController,
	mapsLinkController *controllers.MapsLinkController) {

	r.GET("/sync", syncController.GetState)
	r.POST("/sync", syncController.ApplyAction)

	r.POST("/resolve-maps-link", mapsLinkController.ResolveLink)
}
