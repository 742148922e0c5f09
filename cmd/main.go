package main

import (
	"log"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/zaid9866/employee-management-system/config"
	"github.com/zaid9866/employee-management-system/database"
	"github.com/zaid9866/employee-management-system/routes"
	"github.com/zaid9866/employee-management-system/storage"
	"github.com/zaid9866/employee-management-system/views"
)

func main() {
	cfg := config.Load()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal(err)
	}

	photos, err := storage.NewPhotos(cfg.UploadDir)
	if err != nil {
		log.Fatal(err)
	}

	renderer, err := views.New()
	if err != nil {
		log.Fatal(err)
	}

	store := sessions.NewCookieStore([]byte(cfg.SessionSecret))

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORS())

	routes.Register(e, db, photos, store)

	addr := ":" + cfg.AppPort
	log.Printf("server listening at %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
