package handlers

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/notehive/payout-ledger-api/internal/domain"
	"github.com/notehive/payout-ledger-api/internal/domain/vo"
)

const routingDateLayout = "2006-01-02"

type AdminWithdrawalService interface {
	AdminAccept(ctx context.Context, recordID string) (vo.WithdrawalMutation, error)
	AdminReject(ctx context.Context, recordID string) (vo.WithdrawalMutation, error)
	AdminComplete(ctx context.Context, recordID, routingNumber string, routingDate time.Time) (vo.WithdrawalMutation, error)
	AdminAddNote(ctx context.Context, recordID, note string) (vo.WithdrawalMutation, error)
	GetWithdrawal(ctx context.Context, recordID, callerID string, isAdmin bool) (vo.WithdrawalView, error)
	ListWithdrawals(ctx context.Context, filter domain.WithdrawalFilter, callerID string, isAdmin bool) (vo.WithdrawalList, error)
}

type AdminWithdrawalHandler struct {
	service AdminWithdrawalService
	logger  *slog.Logger
}

type completeRequest struct {
	RoutingNumber string `json:"routing_number"`
	RoutingDate   string `json:"routing_date"`
}

type noteRequest struct {
	Note string `json:"note"`
}

func NewAdminWithdrawalHandler(service AdminWithdrawalService, logger *slog.Logger) *AdminWithdrawalHandler {
	return &AdminWithdrawalHandler{service: service, logger: logger}
}

func (h *AdminWithdrawalHandler) Register(router fiber.Router) {
	router.Get("/withdrawals", h.HandleList)
	router.Get("/withdrawals/:id", h.HandleGet)
	router.Post("/withdrawals/:id/accept", h.HandleAccept)
	router.Post("/withdrawals/:id/reject", h.HandleReject)
	router.Post("/withdrawals/:id/complete", h.HandleComplete)
	router.Put("/withdrawals/:id/notes", h.HandleAddNote)
}

func (h *AdminWithdrawalHandler) HandleList(c fiber.Ctx) error {
	adminID, ok := authenticatedUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing authenticated user"})
	}

	filter, err := withdrawalFilterFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown status filter"})
	}
	if userID := strings.TrimSpace(c.Query("user_id")); userID != "" {
		filter.UserID = userID
	}

	result, listErr := h.service.ListWithdrawals(c.Context(), filter, adminID, isAdmin(c))
	if listErr != nil {
		return h.respondError(c, listErr, "list")
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *AdminWithdrawalHandler) HandleGet(c fiber.Ctx) error {
	adminID, ok := authenticatedUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing authenticated user"})
	}

	result, err := h.service.GetWithdrawal(c.Context(), c.Params("id"), adminID, isAdmin(c))
	if err != nil {
		return h.respondError(c, err, "get")
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *AdminWithdrawalHandler) HandleAccept(c fiber.Ctx) error {
	result, err := h.service.AdminAccept(c.Context(), c.Params("id"))
	if err != nil {
		return h.respondError(c, err, "accept")
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *AdminWithdrawalHandler) HandleReject(c fiber.Ctx) error {
	result, err := h.service.AdminReject(c.Context(), c.Params("id"))
	if err != nil {
		return h.respondError(c, err, "reject")
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *AdminWithdrawalHandler) HandleComplete(c fiber.Ctx) error {
	var requestBody completeRequest
	if err := c.Bind().JSON(&requestBody); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	var routingDate time.Time
	if raw := strings.TrimSpace(requestBody.RoutingDate); raw != "" {
		parsed, err := time.Parse(routingDateLayout, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "routing_date must be formatted as YYYY-MM-DD",
			})
		}
		routingDate = parsed
	}

	result, err := h.service.AdminComplete(c.Context(), c.Params("id"), requestBody.RoutingNumber, routingDate)
	if err != nil {
		return h.respondError(c, err, "complete")
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *AdminWithdrawalHandler) HandleAddNote(c fiber.Ctx) error {
	var requestBody noteRequest
	if err := c.Bind().JSON(&requestBody); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	result, err := h.service.AdminAddNote(c.Context(), c.Params("id"), requestBody.Note)
	if err != nil {
		return h.respondError(c, err, "add note")
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *AdminWithdrawalHandler) respondError(c fiber.Ctx, err error, action string) error {
	if status, message := ledgerErrorStatus(err); status != 0 {
		return c.Status(status).JSON(fiber.Map{"error": message})
	}
	h.logger.Error("admin withdrawal action failed", "action", action, "record_id", c.Params("id"), "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
}
