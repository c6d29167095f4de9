package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/merchops/support-assistant/internal/domain"
	"github.com/merchops/support-assistant/internal/service"
	"github.com/merchops/support-assistant/pkg/logger"
)

type SupportHandler struct {
	service service.SupportService
	logger  *logger.Logger
}

func NewSupportHandler(svc service.SupportService, log *logger.Logger) *SupportHandler {
	return &SupportHandler{
		service: svc,
		logger:  log,
	}
}

type queryRequest struct {
	Query         string `json:"query"`
	TicketHistory string `json:"ticket_history"`
}

func (h *SupportHandler) Query(c echo.Context) error {
	ctx := c.Request().Context()

	var req queryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "invalid request body",
		})
	}

	resp, err := h.service.Respond(ctx, req.Query, req.TicketHistory)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return c.JSON(http.StatusBadRequest, map[string]string{
				"error": err.Error(),
			})
		}

		h.logger.Error(ctx, "Failed to respond to query",
			"error", err,
		)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "failed to process query",
		})
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *SupportHandler) Analyze(c echo.Context) error {
	ctx := c.Request().Context()

	var req queryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "invalid request body",
		})
	}

	analysis, err := h.service.Analyze(ctx, req.Query)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return c.JSON(http.StatusBadRequest, map[string]string{
				"error": err.Error(),
			})
		}

		h.logger.Error(ctx, "Failed to analyze query",
			"error", err,
		)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "failed to analyze query",
		})
	}

	return c.JSON(http.StatusOK, analysis)
}

func (h *SupportHandler) Scenario(c echo.Context) error {
	ctx := c.Request().Context()
	scenarioType := c.Param("type")

	var req queryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "invalid request body",
		})
	}

	resp, err := h.service.Scenario(ctx, scenarioType, req.Query)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return c.JSON(http.StatusBadRequest, map[string]string{
				"error": err.Error(),
			})
		}

		h.logger.Error(ctx, "Failed to handle scenario",
			"scenario_type", scenarioType,
			"error", err,
		)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "failed to handle scenario",
		})
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *SupportHandler) ConversationSummary(c echo.Context) error {
	ctx := c.Request().Context()

	summary, err := h.service.ConversationSummary(ctx)
	if err != nil {
		h.logger.Error(ctx, "Failed to summarize conversation",
			"error", err,
		)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "failed to summarize conversation",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"summary": summary,
	})
}
