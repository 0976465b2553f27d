package book

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"bookshare/app/echoServer/jwtx"
	"bookshare/model"
	catalogsvc "bookshare/service/catalog"
	"bookshare/service/query"
)

type Controller struct {
	Svc catalogsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// GET /v1/books
func (h *Controller) List(c echo.Context) error {
	var q BrowseQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid query"})
	}

	books, err := h.Svc.Browse(c.Request().Context(), q.Limit)
	if err != nil {
		h.Log.Error("browse error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}

	filtered := query.Filter(books, q.Q, query.Facets{
		Subject:   q.Subject,
		Condition: q.Condition,
		PriceMin:  q.MinPrice,
		PriceMax:  q.MaxPrice,
		Location:  q.Location,
	})
	sorted := query.Sort(filtered, q.Sort)

	return c.JSON(http.StatusOK, echo.Map{
		"data":     sorted,
		"total":    len(sorted),
		"subjects": query.Subjects(books),
	})
}

// GET /v1/books/mine
func (h *Controller) Mine(c echo.Context) error {
	uid, err := jwtx.UserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	books, err := h.Svc.Owned(c.Request().Context(), uid)
	if err != nil {
		h.Log.Error("owned listings error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": books})
}

// GET /v1/books/:id
func (h *Controller) Detail(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	b, err := h.Svc.Detail(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, catalogsvc.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "not found"})
		}
		h.Log.Error("book detail error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, b)
}

// POST /v1/books (multipart: listing fields + up to 5 image files)
func (h *Controller) Create(c echo.Context) error {
	uid, err := jwtx.UserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	req, err := bindCreateForm(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  echo.Map{"title": "required", "author": "required", "condition": "one of new|like_new|good|fair|poor", "pricePerDay": "gte 0"},
		})
	}

	var images []catalogsvc.ImageUpload
	if form, err := c.MultipartForm(); err == nil && form != nil {
		for _, fh := range form.File["images"] {
			f, err := fh.Open()
			if err != nil {
				return c.JSON(http.StatusBadRequest, echo.Map{"message": "unreadable image"})
			}
			defer f.Close()
			images = append(images, catalogsvc.ImageUpload{Name: fh.Filename, Content: f})
		}
	}

	b, err := h.Svc.Create(c.Request().Context(), uid, req, images)
	if err != nil {
		if errors.Is(err, catalogsvc.ErrBadInput) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid listing"})
		}
		h.Log.Error("book create error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusCreated, b)
}

// DELETE /v1/books/:id
func (h *Controller) Delete(c echo.Context) error {
	uid, err := jwtx.UserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	if err := h.Svc.Delete(c.Request().Context(), uid, c.Param("id")); err != nil {
		switch {
		case errors.Is(err, catalogsvc.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"message": "not found"})
		case errors.Is(err, catalogsvc.ErrNotOwner):
			return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
		}
		h.Log.Error("book delete error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.NoContent(http.StatusNoContent)
}

func bindCreateForm(c echo.Context) (model.CreateBookReq, error) {
	req := model.CreateBookReq{
		Title:       c.FormValue("title"),
		Author:      c.FormValue("author"),
		ISBN:        c.FormValue("isbn"),
		Edition:     c.FormValue("edition"),
		Subject:     c.FormValue("subject"),
		CourseCode:  c.FormValue("courseCode"),
		Description: c.FormValue("description"),
		Condition:   c.FormValue("condition"),
		Location:    c.FormValue("location"),
	}

	day, err := strconv.ParseFloat(c.FormValue("pricePerDay"), 64)
	if err != nil {
		return req, errors.New("invalid pricePerDay")
	}
	req.PricePerDay = day

	if v := c.FormValue("pricePerWeek"); v != "" {
		week, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return req, errors.New("invalid pricePerWeek")
		}
		req.PricePerWeek = &week
	}
	if v := c.FormValue("pricePerMonth"); v != "" {
		month, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return req, errors.New("invalid pricePerMonth")
		}
		req.PricePerMonth = &month
	}
	return req, nil
}
