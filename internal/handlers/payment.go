package handlers

import (
	"handshake/internal/services/orchestrator"
	"handshake/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type PaymentHandler struct {
	orchestrator orchestrator.Service
}

func NewPaymentHandler(orchestratorSvc orchestrator.Service) *PaymentHandler {
	return &PaymentHandler{orchestrator: orchestratorSvc}
}

// CreateIntent requests a payment intent for the agreed price and
// returns the client secret for the hosted payment sheet. Buyer only.
func (h *PaymentHandler) CreateIntent(c *fiber.Ctx) error {
	var input struct {
		TransactionID string `json:"transaction_id"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	if input.TransactionID == "" {
		return response.BadRequest(c, "transaction_id is required")
	}

	intent, err := h.orchestrator.InitiatePayment(c.Context(), input.TransactionID, actorFrom(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return response.Success(c, "Payment intent created", intent)
}

// Confirm records a settled payment reported by the hosted sheet and
// triggers handover-token issuance.
func (h *PaymentHandler) Confirm(c *fiber.Ctx) error {
	var input struct {
		PaymentIntentID string `json:"payment_intent_id"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	if input.PaymentIntentID == "" {
		return response.BadRequest(c, "payment_intent_id is required")
	}

	snap, err := h.orchestrator.ConfirmPayment(c.Context(), c.Params("id"), actorFrom(c), input.PaymentIntentID)
	if err != nil {
		return respondDomainError(c, err)
	}
	return response.Success(c, "Payment recorded", snap)
}
