package profile

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"bookshare/app/echoServer/jwtx"
	profilerepo "bookshare/repository/profile"
)

type Controller struct {
	Profiles profilerepo.Repo
	Log      *slog.Logger
}

// GET /v1/me
func (h *Controller) Me(c echo.Context) error {
	uid, err := jwtx.UserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	u, err := h.Profiles.ByID(c.Request().Context(), uid)
	if err != nil {
		h.Log.Error("profile lookup error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	if u == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "profile not found"})
	}
	return c.JSON(http.StatusOK, u)
}
