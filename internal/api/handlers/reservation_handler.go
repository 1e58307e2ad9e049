package handlers

import (
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/reservapp/reservapp/internal/queue"
	"github.com/reservapp/reservapp/internal/service"
	"github.com/reservapp/reservapp/internal/transfer"
)

type ReservationHandler struct {
	s           service.ReservationService
	u           service.UserService
	AsynqClient *asynq.Client
}

func NewReservationHandler(service service.ReservationService, userService service.UserService, asynqClient *asynq.Client) *ReservationHandler {
	return &ReservationHandler{s: service, u: userService, AsynqClient: asynqClient}
}

func (h *ReservationHandler) CreateReservation(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var creation transfer.ReservationCreation
	if err := c.BodyParser(&creation); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	reservation, err := h.s.Create(c.Context(), userID, &creation)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidTimeWindow):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "El horario de la reserva no es válido",
			})
		case errors.Is(err, service.ErrSubscriptionRequired):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Necesitas una suscripción activa para reservar",
			})
		case errors.Is(err, service.ErrResourceNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Sala no encontrada",
			})
		case errors.Is(err, service.ErrResourceUnavailable):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "La sala no está disponible",
			})
		case errors.Is(err, service.ErrTimeSlotTaken):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "El horario seleccionado ya está reservado",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "something went wrong",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(reservation)
}

func (h *ReservationHandler) ListReservations(c *fiber.Ctx) error {
	userID := GetUserID(c)

	reservations, err := h.s.List(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "something went wrong",
		})
	}

	return c.JSON(reservations)
}

// CancelReservation applies the 24-hour policy. The notification email is
// queued after the cancellation commits, so a queue failure never undoes it.
func (h *ReservationHandler) CancelReservation(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var req transfer.ReservationCancel
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	reservation, err := h.s.Cancel(c.Context(), userID, req.ReservationID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReservationNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Reserva no encontrada",
			})
		case errors.Is(err, service.ErrNotReservationOwner):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "No tienes permiso para cancelar esta reserva",
			})
		case errors.Is(err, service.ErrReservationNotActive):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "La reserva ya fue cancelada",
			})
		case errors.Is(err, service.ErrCancellationTooLate):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": "No se puede cancelar con menos de 24 horas de antelación",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "something went wrong",
		})
	}

	user, err := h.u.GetUserInfo(c.Context(), userID)
	if err == nil {
		payload := queue.EmailPayload{
			To:      user.Email,
			Subject: "Reserva cancelada - Reservapp",
			Body: fmt.Sprintf(
				"Hola %s,<br><br>Tu reserva %s del %s fue cancelada correctamente.<br><br>El equipo de Reservapp",
				user.Name, reservation.Code, reservation.StartsAt.Format("02/01/2006 15:04"),
			),
		}
		if err := queue.EnqueueEmail(h.AsynqClient, payload); err != nil {
			log.Printf("Error enqueueing cancellation email for reservation %d: %v", reservation.ID, err)
		}
	}

	return c.JSON(reservation)
}
