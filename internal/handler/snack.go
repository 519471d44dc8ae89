package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jeycc/festival-booking/internal/model"
	"github.com/jeycc/festival-booking/internal/repository"
)

// SnackStore is the persistence surface the snack menu needs.
// *repository.SnackRepo satisfies it; tests substitute fakes.
type SnackStore interface {
	Create(ctx context.Context, s *model.Snack) error
	GetByName(ctx context.Context, name string) (*model.Snack, error)
	Exists(ctx context.Context, name string) (bool, error)
	IsBoycotted(ctx context.Context, name string) (bool, error)
	List(ctx context.Context) ([]model.Snack, error)
	Update(ctx context.Context, s *model.Snack) error
	Delete(ctx context.Context, name string) error
}

// SnackHandler exposes CRUD for the snack menu. Creation consults the
// boycott table before anything else; a match is rejected with 422.
type SnackHandler struct {
	Snacks SnackStore
}

// NewSnackHandler constructs a SnackHandler.
func NewSnackHandler(snacks SnackStore) *SnackHandler {
	if snacks == nil {
		panic("nil store passed to NewSnackHandler")
	}
	return &SnackHandler{Snacks: snacks}
}

type snackRequest struct {
	Name      string   `json:"name"`
	SnackType string   `json:"snack_type"`
	Price     *float64 `json:"price"`
}

// Create handles POST /app/snacks.
func (h *SnackHandler) Create(c echo.Context) error {
	var req snackRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body."})
	}
	if req.Name == "" || req.SnackType == "" || req.Price == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, snack_type, and price are required"})
	}

	ctx := c.Request().Context()
	boycotted, err := h.Snacks.IsBoycotted(ctx, req.Name)
	if err != nil {
		return internalError(c, err)
	}
	if boycotted {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "Boycott for a Better Future 🍉."})
	}
	exists, err := h.Snacks.Exists(ctx, req.Name)
	if err != nil {
		return internalError(c, err)
	}
	if exists {
		return c.JSON(http.StatusConflict, echo.Map{"error": "A snack with the same name already exists."})
	}

	snack := model.Snack{Name: req.Name, SnackType: req.SnackType, Price: *req.Price}
	if err := h.Snacks.Create(ctx, &snack); err != nil {
		return internalError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Snack registered successfully!"})
}

// List handles GET /app/snacks.
func (h *SnackHandler) List(c echo.Context) error {
	snacks, err := h.Snacks.List(c.Request().Context())
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(http.StatusOK, snacks)
}

// Get handles GET /app/snacks/:name.
func (h *SnackHandler) Get(c echo.Context) error {
	snack, err := h.Snacks.GetByName(c.Request().Context(), c.Param("name"))
	if err != nil {
		if errors.Is(err, repository.ErrSnackNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Snack not found."})
		}
		return internalError(c, err)
	}
	return c.JSON(http.StatusOK, snack)
}

// Update handles PUT /app/snacks. The snack is addressed by name in
// the body; only type and price change.
func (h *SnackHandler) Update(c echo.Context) error {
	var req snackRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body."})
	}
	if req.Name == "" || req.SnackType == "" || req.Price == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, snack_type, and price are required."})
	}

	ctx := c.Request().Context()
	if _, err := h.Snacks.GetByName(ctx, req.Name); err != nil {
		if errors.Is(err, repository.ErrSnackNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Snack not found."})
		}
		return internalError(c, err)
	}
	snack := model.Snack{Name: req.Name, SnackType: req.SnackType, Price: *req.Price}
	if err := h.Snacks.Update(ctx, &snack); err != nil {
		return internalError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Snack updated successfully."})
}

// Delete handles DELETE /app/snacks/:name.
func (h *SnackHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	name := c.Param("name")
	if _, err := h.Snacks.GetByName(ctx, name); err != nil {
		if errors.Is(err, repository.ErrSnackNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Snack not found."})
		}
		return internalError(c, err)
	}
	if err := h.Snacks.Delete(ctx, name); err != nil {
		return internalError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Snack deleted successfully."})
}
