package handlers

import (
	"handshake/internal/models"
	"handshake/internal/repositories"
	"handshake/internal/utils"
	"handshake/internal/utils/response"
	"handshake/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type ListingHandler struct {
	listings repositories.ListingRepository
}

func NewListingHandler(listings repositories.ListingRepository) *ListingHandler {
	return &ListingHandler{listings: listings}
}

// List returns all listings, newest first.
func (h *ListingHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	listings, err := h.listings.List(c.Context(), limit, offset)
	if err != nil {
		return response.ServerError(c, err.Error())
	}
	return response.Success(c, "Listings fetched", listings)
}

func (h *ListingHandler) Get(c *fiber.Ctx) error {
	listing, err := h.listings.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return response.Success(c, "Listing fetched", listing)
}

func (h *ListingHandler) Create(c *fiber.Ctx) error {
	actor := actorFrom(c)

	var input struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Price       int64    `json:"price"`
		ImageURLs   []string `json:"image_urls"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	v := validation.New()
	v.Required("title", input.Title)
	v.Price("price", input.Price)
	if !v.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": v.Errors})
	}

	listing := &models.Listing{
		ID:          utils.NewTransactionID(),
		SellerID:    actor.ID,
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		ImageURLs:   input.ImageURLs,
		Status:      models.ListingStatusActive,
	}
	if err := h.listings.Create(c.Context(), listing); err != nil {
		return response.ServerError(c, err.Error())
	}
	return response.Success(c, "Listing created", listing)
}

// Update patches a listing. Seller only; used to adjust the asking
// price or mark the item sold after handover.
func (h *ListingHandler) Update(c *fiber.Ctx) error {
	actor := actorFrom(c)

	listing, err := h.listings.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	if listing.SellerID != actor.ID {
		return response.Forbidden(c, "only the seller may update a listing")
	}

	var input struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Price       *int64  `json:"price"`
		Status      *string `json:"status"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	if input.Title != nil {
		listing.Title = *input.Title
	}
	if input.Description != nil {
		listing.Description = *input.Description
	}
	if input.Price != nil {
		v := validation.New()
		v.Price("price", *input.Price)
		if !v.Valid() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": v.Errors})
		}
		listing.Price = *input.Price
	}
	if input.Status != nil {
		if *input.Status != models.ListingStatusActive && *input.Status != models.ListingStatusSold {
			return response.BadRequest(c, "invalid status")
		}
		listing.Status = *input.Status
	}

	if err := h.listings.Update(c.Context(), listing); err != nil {
		return response.ServerError(c, err.Error())
	}
	return response.Success(c, "Listing updated", listing)
}
