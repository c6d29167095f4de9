package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/merchops/support-assistant/internal/domain"
	"github.com/merchops/support-assistant/pkg/logger"
)

// DataHandler serves the direct per-topic projection reads, the aggregate
// summary, and the document maintenance endpoints.
type DataHandler struct {
	repo   domain.Repository
	logger *logger.Logger
}

func NewDataHandler(repo domain.Repository, log *logger.Logger) *DataHandler {
	return &DataHandler{
		repo:   repo,
		logger: log,
	}
}

func (h *DataHandler) Merchant(c echo.Context) error {
	return c.JSON(http.StatusOK, h.repo.MerchantInfo(c.Request().Context()))
}

func (h *DataHandler) Account(c echo.Context) error {
	return c.JSON(http.StatusOK, h.repo.AccountStatus(c.Request().Context()))
}

func (h *DataHandler) KYC(c echo.Context) error {
	return c.JSON(http.StatusOK, h.repo.KYCStatus(c.Request().Context()))
}

func (h *DataHandler) Payout(c echo.Context) error {
	return c.JSON(http.StatusOK, h.repo.PayoutInfo(c.Request().Context()))
}

func (h *DataHandler) Limits(c echo.Context) error {
	return c.JSON(http.StatusOK, h.repo.TransactionLimits(c.Request().Context()))
}

func (h *DataHandler) Tickets(c echo.Context) error {
	return c.JSON(http.StatusOK, h.repo.SupportTickets(c.Request().Context()))
}

func (h *DataHandler) Notifications(c echo.Context) error {
	return c.JSON(http.StatusOK, h.repo.NotificationPreferences(c.Request().Context()))
}

func (h *DataHandler) Dashboard(c echo.Context) error {
	return c.JSON(http.StatusOK, h.repo.DashboardInsights(c.Request().Context()))
}

func (h *DataHandler) Summary(c echo.Context) error {
	return c.JSON(http.StatusOK, h.repo.Summary(c.Request().Context()))
}

func (h *DataHandler) Reload(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.repo.Reload(ctx); err != nil {
		h.logger.Error(ctx, "Failed to reload documents",
			"error", err,
		)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "failed to reload data",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Data reloaded successfully",
	})
}

func (h *DataHandler) Files(c echo.Context) error {
	ctx := c.Request().Context()

	files, err := h.repo.ListDocuments(ctx)
	if err != nil {
		h.logger.Error(ctx, "Failed to list documents",
			"error", err,
		)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "failed to list data files",
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"files": files,
	})
}
