package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"arcadestore/internal/middleware"
	"arcadestore/internal/service"
)

// CommerceHandler handles purchase, library, score, and ranking endpoints.
type CommerceHandler struct {
	commerceService service.CommerceService
}

// NewCommerceHandler creates a new commerce handler.
func NewCommerceHandler(commerceService service.CommerceService) *CommerceHandler {
	return &CommerceHandler{commerceService: commerceService}
}

// PurchaseRequest represents a purchase-by-id request.
type PurchaseRequest struct {
	GameID string `json:"gameId" validate:"required,objectid"`
}

// SubmitScoreRequest represents a score submission. GameData is an opaque
// payload stored verbatim.
type SubmitScoreRequest struct {
	GameID   string                 `json:"gameId" validate:"required,objectid"`
	Score    *int                   `json:"score" validate:"required,gte=0"`
	GameData map[string]interface{} `json:"gameData"`
}

// Purchase godoc
// @Summary Purchase a game by id
// @Tags games
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PurchaseRequest true "Purchase data"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /games/purchase [post]
func (h *CommerceHandler) Purchase(c echo.Context) error {
	caller, ok := middleware.AccountFromContext(c)
	if !ok {
		return unauthenticated()
	}

	var req PurchaseRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	purchase, free, err := h.commerceService.Purchase(c.Request().Context(), caller, req.GameID)
	if err != nil {
		return mapServiceError(err)
	}

	message := "game purchased successfully"
	if free {
		message = "free game added to your library"
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":  message,
		"purchase": purchase,
	})
}

// Library godoc
// @Summary List the caller's owned games
// @Tags games
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Router /games/user/library [get]
func (h *CommerceHandler) Library(c echo.Context) error {
	caller, ok := middleware.AccountFromContext(c)
	if !ok {
		return unauthenticated()
	}

	games, err := h.commerceService.Library(c.Request().Context(), caller.ID)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"games": games})
}

// SubmitScore godoc
// @Summary Record a score for an owned or free game
// @Tags games
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SubmitScoreRequest true "Score data"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /games/submit-score [post]
func (h *CommerceHandler) SubmitScore(c echo.Context) error {
	caller, ok := middleware.AccountFromContext(c)
	if !ok {
		return unauthenticated()
	}

	var req SubmitScoreRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	score, err := h.commerceService.SubmitScore(
		c.Request().Context(), caller, req.GameID, uint(*req.Score), req.GameData)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "score submitted successfully",
		"score":   score,
	})
}

// Rankings godoc
// @Summary Top-10 leaderboard for a game
// @Tags games
// @Produce json
// @Param id path string true "Game ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Router /games/{id}/rankings [get]
func (h *CommerceHandler) Rankings(c echo.Context) error {
	id, err := requireIDParam(c, "id")
	if err != nil {
		return err
	}

	rankings, err := h.commerceService.Rankings(c.Request().Context(), id)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"rankings": rankings})
}
