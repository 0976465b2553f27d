package echoServer

import (
	"bookshare/app/echoServer/controller/book"
	"bookshare/app/echoServer/controller/profile"
	"bookshare/app/echoServer/controller/rental"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

type C struct {
	Book      *book.Controller
	Rental    *rental.Controller
	Profile   *profile.Controller
	JWTSecret string
}

func Register(e *echo.Echo, c C) {
	v1 := e.Group("/v1")
	v1.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(c.JWTSecret),

		NewClaimsFunc: func(c echo.Context) jwt.Claims { return jwt.MapClaims{} },
	}))

	// Browse & listings
	v1.GET("/books", c.Book.List)
	v1.GET("/books/mine", c.Book.Mine)
	v1.GET("/books/:id", c.Book.Detail)
	v1.POST("/books", c.Book.Create)
	v1.DELETE("/books/:id", c.Book.Delete)
	v1.PATCH("/books/:id/availability", c.Rental.ToggleAvailability)

	// Rental requests
	v1.POST("/rentals", c.Rental.Create)
	v1.GET("/rentals/my", c.Rental.My)
	v1.POST("/rentals/:id/approve", c.Rental.Approve)
	v1.POST("/rentals/:id/reject", c.Rental.Reject)

	// Profile
	v1.GET("/me", c.Profile.Me)
}
