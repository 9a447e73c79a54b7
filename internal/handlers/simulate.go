package handlers

import (
	"errors"
	"fmt"

	"gbm-go-api/internal/config"
	"gbm-go-api/internal/gbm"
	"gbm-go-api/internal/models"
	"gbm-go-api/internal/services"

	"github.com/gofiber/fiber/v2"
)

type SimulationHandler struct {
	service *services.SimulationService
	config  *config.Config
}

func NewSimulationHandler(service *services.SimulationService, cfg *config.Config) *SimulationHandler {
	return &SimulationHandler{
		service: service,
		config:  cfg,
	}
}

// Simulate handles POST /v1/simulate
func (h *SimulationHandler) Simulate(c *fiber.Ctx) error {
	var req models.SimulateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(models.ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
			Code:    400,
		})
	}

	if req.Steps > h.config.MaxSteps {
		return c.Status(400).JSON(models.ErrorResponse{
			Error:   "Too many steps",
			Message: fmt.Sprintf("Maximum %d steps allowed per request", h.config.MaxSteps),
			Code:    400,
		})
	}

	resp, err := h.service.Run(c.Context(), req)
	if err != nil {
		return simulationError(c, err)
	}

	return c.JSON(resp)
}

// SimulateBatch handles POST /v1/simulate/batch
func (h *SimulationHandler) SimulateBatch(c *fiber.Ctx) error {
	var req models.BatchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(models.ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
			Code:    400,
		})
	}

	if req.Steps > h.config.MaxSteps {
		return c.Status(400).JSON(models.ErrorResponse{
			Error:   "Too many steps",
			Message: fmt.Sprintf("Maximum %d steps allowed per request", h.config.MaxSteps),
			Code:    400,
		})
	}

	if req.Paths > h.config.MaxPaths {
		return c.Status(400).JSON(models.ErrorResponse{
			Error:   "Too many paths",
			Message: fmt.Sprintf("Maximum %d paths allowed per request", h.config.MaxPaths),
			Code:    400,
		})
	}

	resp, err := h.service.RunBatch(c.Context(), req)
	if err != nil {
		return simulationError(c, err)
	}

	return c.JSON(resp)
}

// GetResult handles GET /v1/simulations/:id
func (h *SimulationHandler) GetResult(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(400).JSON(models.ErrorResponse{
			Error: "Simulation id is required",
			Code:  400,
		})
	}

	resp, found := h.service.Result(id)
	if !found {
		return c.Status(404).JSON(models.ErrorResponse{
			Error:   "Simulation not found",
			Message: "The result either never existed or has expired",
			Code:    404,
		})
	}

	return c.JSON(resp)
}

// simulationError maps parameter violations to client errors and
// everything else to a server error.
func simulationError(c *fiber.Ctx, err error) error {
	if errors.Is(err, gbm.ErrInvalidParameter) {
		return c.Status(400).JSON(models.ErrorResponse{
			Error:   "Invalid simulation parameters",
			Message: err.Error(),
			Code:    400,
		})
	}

	return c.Status(500).JSON(models.ErrorResponse{
		Error:   "Simulation failed",
		Message: err.Error(),
		Code:    500,
	})
}

// CustomErrorHandler handles Fiber errors
func CustomErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(models.ErrorResponse{
		Error:   "Request failed",
		Message: err.Error(),
		Code:    code,
	})
}
