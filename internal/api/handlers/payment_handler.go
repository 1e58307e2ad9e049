package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/reservapp/reservapp/internal/service"
	"github.com/reservapp/reservapp/internal/transfer"
)

type PaymentHandler struct {
	s service.SubscriptionService
}

func NewPaymentHandler(service service.SubscriptionService) *PaymentHandler {
	return &PaymentHandler{s: service}
}

// Webhook receives MercadoPago preapproval notifications and re-reconciles
// the referenced subscription. Unknown references are acknowledged so the
// gateway stops retrying.
func (h *PaymentHandler) Webhook(c *fiber.Ctx) error {
	var notification transfer.WebhookNotification

	if err := c.BodyParser(&notification); err != nil {
		slog.Info(err.Error())
		return c.SendStatus(fiber.StatusBadRequest)
	}

	if notification.Type != "subscription_preapproval" || notification.Data.ID == "" {
		return c.SendStatus(fiber.StatusOK)
	}

	_, err := h.s.ReconcileByGatewayID(c.Context(), notification.Data.ID)
	if err != nil {
		if errors.Is(err, service.ErrSubscriptionNotFound) {
			return c.SendStatus(fiber.StatusOK)
		}
		return c.Status(fiber.StatusInternalServerError).SendString(err.Error())
	}

	return c.SendStatus(fiber.StatusOK)
}
