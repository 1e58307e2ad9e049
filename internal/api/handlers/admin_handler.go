package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/reservapp/reservapp/internal/service"
	"github.com/reservapp/reservapp/internal/transfer"
)

type AdminHandler struct {
	a  service.AdminService
	e  service.ExportService
	u  service.UserService
	ss service.SubscriptionService
}

func NewAdminHandler(
	adminService service.AdminService,
	exportService service.ExportService,
	userService service.UserService,
	subscriptionService service.SubscriptionService) *AdminHandler {
	return &AdminHandler{
		a:  adminService,
		e:  exportService,
		u:  userService,
		ss: subscriptionService,
	}
}

func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	metrics, err := h.a.DashboardMetrics(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to load dashboard metrics",
		})
	}
	return c.JSON(metrics)
}

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.u.ListUsers(c.Context(), c.Query("q"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to list users",
		})
	}
	return c.JSON(users)
}

func (h *AdminHandler) ExportUsers(c *fiber.Ctx) error {
	data, err := h.e.UsersCSV(c.Context(), c.Query("q"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to export users",
		})
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="users.csv"`)
	return c.Send(data)
}

func (h *AdminHandler) ExportSubscriptions(c *fiber.Ctx) error {
	data, err := h.e.SubscriptionsCSV(c.Context(), c.Query("status"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to export subscriptions",
		})
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="subscriptions.csv"`)
	return c.Send(data)
}

// OverrideSubscription force-writes a subscription status, bypassing
// reconciliation.
func (h *AdminHandler) OverrideSubscription(c *fiber.Ctx) error {
	var req transfer.StatusOverrideRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	err := h.ss.OverrideStatus(c.Context(), req.SubscriptionID, req.Status)
	if err != nil {
		if errors.Is(err, service.ErrSubscriptionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Suscripción no encontrada",
			})
		}
		if errors.Is(err, service.ErrInvalidStatus) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Estado de suscripción inválido",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to override subscription",
		})
	}

	return c.SendStatus(fiber.StatusOK)
}

func (h *AdminHandler) ReconcileSubscription(c *fiber.Ctx) error {
	var req transfer.ReconcileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	result, err := h.ss.Reconcile(c.Context(), req.SubscriptionID)
	if err != nil {
		if errors.Is(err, service.ErrSubscriptionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Suscripción no encontrada",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "something went wrong",
		})
	}

	return c.JSON(result)
}
