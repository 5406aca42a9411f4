package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Bala-Chandrudu/project/config"
	"github.com/Bala-Chandrudu/project/database"
	"github.com/Bala-Chandrudu/project/handlers"
	"github.com/Bala-Chandrudu/project/relay"
	"github.com/Bala-Chandrudu/project/routes"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	// early fail: if the DB is down the process exits immediately
	database.Connect(cfg)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewValidator()
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORS())

	rc := relay.NewClient(cfg.RelayEndpoint, cfg.RelayPrimaryKey, cfg.RelaySecondaryKey)
	routes.Register(e, rc)

	addr := ":" + cfg.AppPort
	log.Printf("server listening at %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
