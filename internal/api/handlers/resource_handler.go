package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/reservapp/reservapp/internal/service"
	"github.com/reservapp/reservapp/internal/transfer"
)

type ResourceHandler struct {
	s service.ResourceService
}

func NewResourceHandler(service service.ResourceService) *ResourceHandler {
	return &ResourceHandler{s: service}
}

func (h *ResourceHandler) ListResources(c *fiber.Ctx) error {
	resources, err := h.s.List(c.Context(), true)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to list resources",
		})
	}
	return c.JSON(resources)
}

func (h *ResourceHandler) ListAllResources(c *fiber.Ctx) error {
	resources, err := h.s.List(c.Context(), false)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to list resources",
		})
	}
	return c.JSON(resources)
}

func (h *ResourceHandler) CreateResource(c *fiber.Ctx) error {
	var creation transfer.ResourceCreation
	if err := c.BodyParser(&creation); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	if creation.Name == "" || creation.Capacity <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "El nombre y la capacidad de la sala son obligatorios",
		})
	}

	id, err := h.s.Create(c.Context(), &creation)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to create resource",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

func (h *ResourceHandler) UpdateResource(c *fiber.Ctx) error {
	var update transfer.ResourceUpdate
	if err := c.BodyParser(&update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	err := h.s.Update(c.Context(), &update)
	if err != nil {
		if errors.Is(err, service.ErrResourceNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Sala no encontrada",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to update resource",
		})
	}

	return c.SendStatus(fiber.StatusOK)
}

func (h *ResourceHandler) RemoveResource(c *fiber.Ctx) error {
	var remove transfer.ResourceRemove
	if err := c.BodyParser(&remove); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	err := h.s.Remove(c.Context(), remove.ID)
	if err != nil {
		if errors.Is(err, service.ErrResourceNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Sala no encontrada",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to remove resource",
		})
	}

	return c.SendStatus(fiber.StatusOK)
}

func (h *ResourceHandler) UploadPhoto(c *fiber.Ctx) error {
	resourceID, err := strconv.ParseInt(c.FormValue("resource_id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid resource id",
		})
	}

	file, err := c.FormFile("photo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file selected",
		})
	}

	photoURL, err := h.s.UploadPhoto(c.Context(), resourceID, file)
	if err != nil {
		if errors.Is(err, service.ErrResourceNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Sala no encontrada",
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"photo_url": photoURL})
}
