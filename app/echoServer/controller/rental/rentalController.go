package rental

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"bookshare/app/echoServer/jwtx"
	"bookshare/model"
	rentalsvc "bookshare/service/rental"
)

type Controller struct {
	Svc rentalsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/rentals
func (h *Controller) Create(c echo.Context) error {
	uid, err := jwtx.UserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	var req model.CreateRequestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  echo.Map{"bookId": "required", "startDate": "YYYY-MM-DD", "endDate": "YYYY-MM-DD", "totalPrice": "gte 0"},
		})
	}

	rr, err := h.Svc.Request(c.Request().Context(), uid, req)
	if err != nil {
		switch rentalsvc.Code(err) {
		case rentalsvc.ErrBadInput:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request"})
		case rentalsvc.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "book not found"})
		case rentalsvc.ErrUnavailable:
			return c.JSON(http.StatusConflict, echo.Map{"message": "book is not available"})
		}
		h.Log.Error("rental request error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusCreated, rr)
}

// GET /v1/rentals/my
func (h *Controller) My(c echo.Context) error {
	uid, err := jwtx.UserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	ov, err := h.Svc.MyRentals(c.Request().Context(), uid)
	if err != nil {
		h.Log.Error("my rentals error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, ov)
}

// POST /v1/rentals/:id/approve
func (h *Controller) Approve(c echo.Context) error {
	return h.decide(c, rentalsvc.ActionApprove)
}

// POST /v1/rentals/:id/reject
func (h *Controller) Reject(c echo.Context) error {
	return h.decide(c, rentalsvc.ActionReject)
}

func (h *Controller) decide(c echo.Context, action rentalsvc.Action) error {
	uid, err := jwtx.UserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	rr, err := h.Svc.Decide(c.Request().Context(), uid, c.Param("id"), action)
	if err != nil {
		switch rentalsvc.Code(err) {
		case rentalsvc.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "not found"})
		case rentalsvc.ErrNotOwner:
			return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
		case rentalsvc.ErrNotPending:
			return c.JSON(http.StatusConflict, echo.Map{"message": "request is not pending"})
		}
		h.Log.Error("rental decide error", "err", err, "action", action)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, rr)
}

// PATCH /v1/books/:id/availability
func (h *Controller) ToggleAvailability(c echo.Context) error {
	uid, err := jwtx.UserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	b, err := h.Svc.ToggleAvailability(c.Request().Context(), uid, c.Param("id"))
	if err != nil {
		switch rentalsvc.Code(err) {
		case rentalsvc.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "not found"})
		case rentalsvc.ErrNotOwner:
			return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
		}
		h.Log.Error("toggle availability error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, b)
}
