// Package main BookShare API.
//
// @title           BookShare API
// @version         1.0
// @description     peer-to-peer textbook rental marketplace (listings, browse, rental requests).
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"bookshare/app/echoServer"
	bookctrl "bookshare/app/echoServer/controller/book"
	profilectrl "bookshare/app/echoServer/controller/profile"
	rentalctrl "bookshare/app/echoServer/controller/rental"
	"bookshare/app/echoServer/validation"
	"bookshare/config"
	listingrepo "bookshare/repository/listing"
	profilerepo "bookshare/repository/profile"
	requestrepo "bookshare/repository/request"
	authsvc "bookshare/service/auth"
	catalogsvc "bookshare/service/catalog"
	rentalsvc "bookshare/service/rental"
	"bookshare/store"
	"bookshare/store/blinkhttp"
	"bookshare/store/postgres"
	"bookshare/util/database"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// document store + collaborators
	var (
		st       store.Store
		uploader store.Uploader
	)
	blink := blinkhttp.New(cfg.BackendURL, cfg.BackendKey)
	switch cfg.StoreDriver {
	case "postgres":
		db, err := database.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("db connect failed", "err", err)
			os.Exit(1)
		}
		defer db.Close()
		st = postgres.New(db.Pool)
		uploader = blink // object storage stays on the hosted backend
	default:
		st = blink
		uploader = blink
	}

	// backend auth session (explicit handle, torn down on exit)
	session := authsvc.NewSession(blink)
	defer session.Close()
	unsub := session.Subscribe(func(s store.AuthState) {
		log.Info("backend auth state", "loading", s.IsLoading, "user", s.User != nil)
	})
	defer unsub()

	// repos
	lr := listingrepo.New(st)
	rr := requestrepo.New(st)
	pr := profilerepo.New(st)

	// services
	cs := catalogsvc.New(lr, pr, uploader)
	rs := rentalsvc.New(lr, rr)

	// controllers
	v := validator.New()
	bookC := &bookctrl.Controller{Svc: cs, V: v, Log: log}
	rentalC := &rentalctrl.Controller{Svc: rs, V: v, Log: log}
	profileC := &profilectrl.Controller{Profiles: pr, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status": "ok",
			"store":  cfg.StoreDriver,
		})
	})

	echoServer.Register(e, echoServer.C{
		Book:      bookC,
		Rental:    rentalC,
		Profile:   profileC,
		JWTSecret: cfg.JWTSecret,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	log.Info("starting server", "port", port, "env", cfg.Env, "store", cfg.StoreDriver)

	e.Logger.Fatal(e.Start(":" + port))
}
