package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"arcadestore/internal/errors"
	"arcadestore/internal/middleware"
	"arcadestore/internal/model"
	"arcadestore/internal/service"
)

// GameHandler handles catalog endpoints.
type GameHandler struct {
	catalogService service.CatalogService
}

// NewGameHandler creates a new game handler.
func NewGameHandler(catalogService service.CatalogService) *GameHandler {
	return &GameHandler{catalogService: catalogService}
}

// CreateGameRequest represents a new catalog entry payload. The creator is
// always the authenticated caller, never taken from the body.
type CreateGameRequest struct {
	Name        string          `json:"name" validate:"required,max=100"`
	Description string          `json:"description" validate:"required,max=1000"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category" validate:"required,oneof=action puzzle strategy adventure arcade other"`
	Icon        string          `json:"icon" validate:"omitempty,max=512"`
	GameType    string          `json:"gameType" validate:"required,oneof=balloon-pop puzzle other"`
	IsActive    *bool           `json:"isActive"`
}

// UpdateGameRequest represents a partial update; absent fields are left
// unchanged.
type UpdateGameRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string          `json:"description" validate:"omitempty,min=1,max=1000"`
	Price       *decimal.Decimal `json:"price"`
	Category    *string          `json:"category" validate:"omitempty,oneof=action puzzle strategy adventure arcade other"`
	Icon        *string          `json:"icon" validate:"omitempty,max=512"`
	GameType    *string          `json:"gameType" validate:"omitempty,oneof=balloon-pop puzzle other"`
	IsActive    *bool            `json:"isActive"`
}

func negativePriceError() *echo.HTTPError {
	return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
		Error: "validation failed",
		Code:  "VALIDATION_ERROR",
		Details: []errors.FieldError{
			{Field: "price", Message: "must not be negative"},
		},
	})
}

// List godoc
// @Summary List all active games
// @Tags games
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /games [get]
func (h *GameHandler) List(c echo.Context) error {
	games, err := h.catalogService.List(c.Request().Context())
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"games": games})
}

// Get godoc
// @Summary Get one game by id
// @Tags games
// @Produce json
// @Param id path string true "Game ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /games/{id} [get]
func (h *GameHandler) Get(c echo.Context) error {
	id, err := requireIDParam(c, "id")
	if err != nil {
		return err
	}

	game, err := h.catalogService.Get(c.Request().Context(), id)
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"game": game})
}

// Create godoc
// @Summary Create a catalog entry
// @Tags games
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateGameRequest true "Game data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /games [post]
func (h *GameHandler) Create(c echo.Context) error {
	caller, ok := middleware.AccountFromContext(c)
	if !ok {
		return unauthenticated()
	}

	var req CreateGameRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if req.Price.IsNegative() {
		return negativePriceError()
	}

	game, err := h.catalogService.Create(c.Request().Context(), caller, service.CreateGameInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    model.Category(req.Category),
		Icon:        req.Icon,
		GameType:    model.GameType(req.GameType),
		IsActive:    req.IsActive,
	})
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "game created successfully",
		"game":    game,
	})
}

// Update godoc
// @Summary Update a catalog entry (creator or admin only)
// @Tags games
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Game ID"
// @Param request body UpdateGameRequest true "Fields to update"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /games/{id} [put]
func (h *GameHandler) Update(c echo.Context) error {
	caller, ok := middleware.AccountFromContext(c)
	if !ok {
		return unauthenticated()
	}

	id, err := requireIDParam(c, "id")
	if err != nil {
		return err
	}

	var req UpdateGameRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if req.Price != nil && req.Price.IsNegative() {
		return negativePriceError()
	}

	in := service.UpdateGameInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Icon:        req.Icon,
		IsActive:    req.IsActive,
	}
	if req.Category != nil {
		category := model.Category(*req.Category)
		in.Category = &category
	}
	if req.GameType != nil {
		gameType := model.GameType(*req.GameType)
		in.GameType = &gameType
	}

	game, err := h.catalogService.Update(c.Request().Context(), caller, id, in)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "game updated successfully",
		"game":    game,
	})
}

// Delete godoc
// @Summary Delete a catalog entry (creator or admin only)
// @Tags games
// @Produce json
// @Security BearerAuth
// @Param id path string true "Game ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /games/{id} [delete]
func (h *GameHandler) Delete(c echo.Context) error {
	caller, ok := middleware.AccountFromContext(c)
	if !ok {
		return unauthenticated()
	}

	id, err := requireIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.catalogService.Delete(c.Request().Context(), caller, id); err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "game deleted successfully",
	})
}
