package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/reservapp/reservapp/internal/service"
	"github.com/reservapp/reservapp/internal/transfer"
)

type SubscriptionHandler struct {
	s service.SubscriptionService
}

func NewSubscriptionHandler(service service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{s: service}
}

func (h *SubscriptionHandler) Checkout(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var req transfer.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	result, err := h.s.Checkout(c.Context(), userID, req.PlanID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPlanNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Plan no encontrado",
			})
		case errors.Is(err, service.ErrPlanInactive):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "El plan no está disponible",
			})
		case errors.Is(err, service.ErrAlreadySubscribed):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Ya tienes una suscripción activa",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "something went wrong",
		})
	}

	return c.JSON(result)
}

func (h *SubscriptionHandler) GetMySubscription(c *fiber.Ctx) error {
	userID := GetUserID(c)

	subscription, err := h.s.GetByUserID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrSubscriptionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "No tienes ninguna suscripción",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "something went wrong",
		})
	}

	return c.JSON(subscription)
}

// Refresh reconciles the caller's subscription against the payment gateway.
func (h *SubscriptionHandler) Refresh(c *fiber.Ctx) error {
	userID := GetUserID(c)

	subscription, err := h.s.GetByUserID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrSubscriptionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "No tienes ninguna suscripción",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "something went wrong",
		})
	}

	result, err := h.s.Reconcile(c.Context(), subscription.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "something went wrong",
		})
	}

	return c.JSON(result)
}

func (h *SubscriptionHandler) Cancel(c *fiber.Ctx) error {
	userID := GetUserID(c)

	err := h.s.Cancel(c.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrSubscriptionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "No tienes ninguna suscripción",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "something went wrong",
		})
	}

	return c.SendStatus(fiber.StatusOK)
}
