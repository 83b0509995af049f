package handlers

import (
	"handshake/internal/services/meetup"
	"handshake/internal/services/orchestrator"
	"handshake/internal/utils/response"
	"handshake/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ChatHandler exposes the negotiation over a listing: the message log,
// price agreement, meetup suggestion, and the OTP handover exchange.
type ChatHandler struct {
	orchestrator orchestrator.Service
}

func NewChatHandler(orchestratorSvc orchestrator.Service) *ChatHandler {
	return &ChatHandler{orchestrator: orchestratorSvc}
}

// Create opens the negotiation for a listing. Idempotent: repeat calls
// for the same listing return the existing transaction.
func (h *ChatHandler) Create(c *fiber.Ctx) error {
	actor := actorFrom(c)

	var input struct {
		ListingID string `json:"listing_id"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	if input.ListingID == "" {
		return response.BadRequest(c, "listing_id is required")
	}

	snap, err := h.orchestrator.Start(c.Context(), input.ListingID, actor.ID)
	if err != nil {
		return respondDomainError(c, err)
	}
	return response.Success(c, "Chat ready", snap)
}

// List returns the caller's transactions, most recently active first.
func (h *ChatHandler) List(c *fiber.Ctx) error {
	actor := actorFrom(c)

	txs, err := h.orchestrator.ListForUser(c.Context(), actor.ID)
	if err != nil {
		return response.ServerError(c, err.Error())
	}
	return response.Success(c, "Chats fetched", txs)
}

// Get is the poll read: the caller's current snapshot of the
// transaction, including phase and the actions legal for them.
func (h *ChatHandler) Get(c *fiber.Ctx) error {
	snap, err := h.orchestrator.Refresh(c.Context(), c.Params("id"), actorFrom(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return response.Success(c, "Chat fetched", snap)
}

// SendMessage appends a chat message. A tagged price (e.g. "€450")
// additionally triggers an advisory fairness evaluation, returned
// alongside the message but never persisted.
func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	var input struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	v := validation.New()
	v.Message("text", input.Text)
	if !v.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": v.Errors})
	}

	msg, eval, err := h.orchestrator.SendMessage(c.Context(), c.Params("id"), actorFrom(c), input.Text)
	if err != nil {
		return respondDomainError(c, err)
	}
	return response.Success(c, "Message sent", fiber.Map{
		"message":    msg,
		"evaluation": eval,
	})
}

// AcceptPrice records the agreed price. Seller only.
func (h *ChatHandler) AcceptPrice(c *fiber.Ctx) error {
	var input struct {
		Price *int64 `json:"price"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	if input.Price != nil {
		v := validation.New()
		v.Price("price", *input.Price)
		if !v.Valid() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": v.Errors})
		}
	}

	snap, err := h.orchestrator.AcceptPrice(c.Context(), c.Params("id"), actorFrom(c), input.Price)
	if err != nil {
		return respondDomainError(c, err)
	}
	return response.Success(c, "Price agreed", snap)
}

// SuggestMeetup asks the location service for candidates between the
// two parties and records the chosen one.
func (h *ChatHandler) SuggestMeetup(c *fiber.Ctx) error {
	var input struct {
		BuyerLat  float64 `json:"lat1"`
		BuyerLon  float64 `json:"lon1"`
		SellerLat float64 `json:"lat2"`
		SellerLon float64 `json:"lon2"`
		Choice    int     `json:"choice"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	v := validation.New()
	v.Coordinate("buyer", input.BuyerLat, input.BuyerLon)
	v.Coordinate("seller", input.SellerLat, input.SellerLon)
	if !v.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": v.Errors})
	}

	snap, candidates, err := h.orchestrator.SuggestMeetup(c.Context(), c.Params("id"), actorFrom(c), meetup.SuggestRequest{
		BuyerLat:  input.BuyerLat,
		BuyerLon:  input.BuyerLon,
		SellerLat: input.SellerLat,
		SellerLon: input.SellerLon,
		Choice:    input.Choice,
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return response.Success(c, "Meetup agreed", fiber.Map{
		"snapshot":   snap,
		"candidates": candidates,
	})
}

// Update patches the negotiable metadata; currently the handover time.
func (h *ChatHandler) Update(c *fiber.Ctx) error {
	var input struct {
		MeetupTime string `json:"meetup_time"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	if input.MeetupTime == "" {
		return response.BadRequest(c, "meetup_time is required")
	}

	snap, err := h.orchestrator.SetMeetupTime(c.Context(), c.Params("id"), actorFrom(c), input.MeetupTime)
	if err != nil {
		return respondDomainError(c, err)
	}
	return response.Success(c, "Chat updated", snap)
}

// Actions returns the operations legal for the caller in the
// transaction's current phase.
func (h *ChatHandler) Actions(c *fiber.Ctx) error {
	snap, err := h.orchestrator.Refresh(c.Context(), c.Params("id"), actorFrom(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return response.Success(c, "Actions fetched", fiber.Map{
		"phase":   snap.Phase,
		"actions": snap.Actions,
	})
}

// DisplayToken is the seller-side read of the handover token for QR
// rendering.
func (h *ChatHandler) DisplayToken(c *fiber.Ctx) error {
	token, err := h.orchestrator.DisplayToken(c.Context(), c.Params("id"), actorFrom(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return response.Success(c, "Token fetched", fiber.Map{"token": token})
}

// ConfirmToken validates the buyer's scanned code and closes the
// transaction.
func (h *ChatHandler) ConfirmToken(c *fiber.Ctx) error {
	var input struct {
		OTP string `json:"otp"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	if input.OTP == "" {
		return response.BadRequest(c, "otp is required")
	}

	snap, err := h.orchestrator.ConfirmToken(c.Context(), c.Params("id"), actorFrom(c), input.OTP)
	if err != nil {
		return respondDomainError(c, err)
	}
	return response.Success(c, "OTP confirmed successfully", snap)
}
