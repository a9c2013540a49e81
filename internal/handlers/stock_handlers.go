package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"stockwatch/internal/repositories"
	"stockwatch/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// StockHandlers exposes computed group stock and the alert badge
type StockHandlers struct {
	reconciler services.StockReconciler
	alertRepo  repositories.AlertRepository
}

// NewStockHandlers creates a new stock handlers instance
func NewStockHandlers(reconciler services.StockReconciler, alertRepo repositories.AlertRepository) *StockHandlers {
	return &StockHandlers{
		reconciler: reconciler,
		alertRepo:  alertRepo,
	}
}

// Register mounts the stock routes on g
func (h *StockHandlers) Register(g *echo.Group) {
	g.GET("/items/:id/stock", h.GetItemStock)
	g.GET("/alerts/unresolved/count", h.CountUnresolvedAlerts)
	g.POST("/alerts/:id/resolve", h.ResolveAlert)
}

// GetItemStock reconciles the item-group containing :id and returns its record
func (h *StockHandlers) GetItemStock(c echo.Context) error {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid item ID")
	}

	stock, err := h.reconciler.Reconcile(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrItemNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Item not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to compute stock")
	}

	return c.JSON(http.StatusOK, stock)
}

// CountUnresolvedAlerts backs the notification badge
func (h *StockHandlers) CountUnresolvedAlerts(c echo.Context) error {
	count, err := h.alertRepo.CountUnresolved(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to count alerts")
	}

	return c.JSON(http.StatusOK, map[string]int{"count": count})
}

// ResolveAlert closes an open alert. A later breach of the same slot opens a new one.
func (h *StockHandlers) ResolveAlert(c echo.Context) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid alert ID")
	}

	if err := h.alertRepo.Resolve(c.Request().Context(), id); err != nil {
		if errors.Is(err, repositories.ErrAlertNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Alert not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to resolve alert")
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Alert resolved",
		"id":      id.String(),
	})
}
