package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/merchops/support-assistant/internal/domain"
	"github.com/merchops/support-assistant/internal/service"
	"github.com/merchops/support-assistant/pkg/logger"
)

type TicketHandler struct {
	service service.SupportService
	logger  *logger.Logger
}

func NewTicketHandler(svc service.SupportService, log *logger.Logger) *TicketHandler {
	return &TicketHandler{
		service: svc,
		logger:  log,
	}
}

type createTicketRequest struct {
	Subject     string `json:"subject"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

func (h *TicketHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var req createTicketRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "invalid request body",
		})
	}

	ticket, err := h.service.CreateTicket(ctx, req.Subject, req.Description, domain.TicketPriority(req.Priority))
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return c.JSON(http.StatusBadRequest, map[string]string{
				"error": err.Error(),
			})
		}

		h.logger.Error(ctx, "Failed to create ticket",
			"error", err,
		)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "failed to create ticket",
		})
	}

	return c.JSON(http.StatusCreated, ticket)
}

type updateTicketStatusRequest struct {
	Status string `json:"status"`
}

func (h *TicketHandler) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	ticketID := c.Param("id")

	var req updateTicketStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "invalid request body",
		})
	}

	if req.Status == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "status is required",
		})
	}

	err := h.service.UpdateTicketStatus(ctx, ticketID, domain.TicketStatus(req.Status))
	if err != nil {
		if errors.Is(err, domain.ErrTicketNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{
				"error": "ticket not found",
			})
		}
		if errors.Is(err, domain.ErrValidation) {
			return c.JSON(http.StatusBadRequest, map[string]string{
				"error": err.Error(),
			})
		}

		h.logger.Error(ctx, "Failed to update ticket status",
			"error", err,
		)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "failed to update ticket status",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Ticket %s status updated to %s", ticketID, req.Status),
	})
}

type addKYCDocumentRequest struct {
	DocumentType string `json:"document_type"`
	Status       string `json:"status"`
}

func (h *TicketHandler) AddKYCDocument(c echo.Context) error {
	ctx := c.Request().Context()

	var req addKYCDocumentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "invalid request body",
		})
	}

	added, err := h.service.AddKYCDocument(ctx, req.DocumentType, req.Status)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return c.JSON(http.StatusBadRequest, map[string]string{
				"error": err.Error(),
			})
		}

		h.logger.Error(ctx, "Failed to add KYC document",
			"error", err,
		)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "failed to add KYC document",
		})
	}

	if !added {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "document already exists",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Document %s added successfully", req.DocumentType),
	})
}
