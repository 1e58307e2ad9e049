package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/reservapp/reservapp/internal/service"
	"github.com/reservapp/reservapp/internal/transfer"
)

type PlanHandler struct {
	s service.PlanService
}

func NewPlanHandler(service service.PlanService) *PlanHandler {
	return &PlanHandler{s: service}
}

func (h *PlanHandler) ListPlans(c *fiber.Ctx) error {
	plans, err := h.s.List(c.Context(), true)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to list plans",
		})
	}
	return c.JSON(plans)
}

func (h *PlanHandler) ListAllPlans(c *fiber.Ctx) error {
	plans, err := h.s.List(c.Context(), false)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to list plans",
		})
	}
	return c.JSON(plans)
}

func (h *PlanHandler) CreatePlan(c *fiber.Ctx) error {
	var creation transfer.PlanCreation
	if err := c.BodyParser(&creation); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	if creation.Name == "" || creation.PriceCents <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "El nombre y el precio del plan son obligatorios",
		})
	}

	planID, err := h.s.Create(c.Context(), &creation)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInterval) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Intervalo de facturación inválido",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to create plan",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": planID})
}

func (h *PlanHandler) UpdatePlan(c *fiber.Ctx) error {
	var update transfer.PlanUpdate
	if err := c.BodyParser(&update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	err := h.s.Update(c.Context(), &update)
	if err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Plan no encontrado",
			})
		}
		if errors.Is(err, service.ErrInvalidInterval) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Intervalo de facturación inválido",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to update plan",
		})
	}

	return c.SendStatus(fiber.StatusOK)
}

func (h *PlanHandler) RemovePlan(c *fiber.Ctx) error {
	var remove transfer.PlanRemove
	if err := c.BodyParser(&remove); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	err := h.s.Remove(c.Context(), remove.ID)
	if err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Plan no encontrado",
			})
		}
		if errors.Is(err, service.ErrPlanHasSubscriptions) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "No se puede eliminar un plan con suscripciones activas",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to remove plan",
		})
	}

	return c.SendStatus(fiber.StatusOK)
}
