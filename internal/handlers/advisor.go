package handlers

import (
	"handshake/internal/services/advisor"
	"handshake/internal/utils/response"
	"handshake/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// AdvisorHandler proxies the external AI advisory service so clients
// never talk to it directly.
type AdvisorHandler struct {
	client *advisor.Client
}

func NewAdvisorHandler(client *advisor.Client) *AdvisorHandler {
	return &AdvisorHandler{client: client}
}

func (h *AdvisorHandler) EvaluatePrice(c *fiber.Ctx) error {
	var input struct {
		Description string   `json:"desc"`
		Price       int64    `json:"price"`
		Seller      string   `json:"seller"`
		ImageURLs   []string `json:"image_urls"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	v := validation.New()
	v.Required("desc", input.Description)
	v.Check(input.Price >= 0, "price", "must be non-negative")
	if !v.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": v.Errors})
	}

	eval, err := h.client.EvaluatePrice(c.Context(), advisor.EvaluatePriceRequest{
		Description: input.Description,
		Price:       input.Price,
		Seller:      input.Seller,
		ImageURLs:   input.ImageURLs,
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return response.Success(c, "Price evaluated", eval)
}

func (h *AdvisorHandler) GenerateLocations(c *fiber.Ctx) error {
	var input advisor.LocationRequest
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	v := validation.New()
	v.Coordinate("point1", input.Lat1, input.Lon1)
	v.Coordinate("point2", input.Lat2, input.Lon2)
	if !v.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": v.Errors})
	}

	suggestions, err := h.client.GenerateLocations(c.Context(), input)
	if err != nil {
		return respondDomainError(c, err)
	}
	return response.Success(c, "Locations generated", fiber.Map{"data": suggestions})
}
