// Package handlers contains the HTTP layer: request parsing, identity
// extraction, and mapping domain errors to status codes.
package handlers

import (
	stderrors "errors"

	domain "handshake/internal/errors"
	"handshake/internal/models"
	"handshake/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// actorFrom builds the explicit actor identity for a request. The
// buyer/seller role is derived downstream from the transaction record.
func actorFrom(c *fiber.Ctx) models.Actor {
	claims := c.Locals("claims").(*models.UserClaims)
	return models.Actor{ID: claims.UserID}
}

// respondDomainError maps a typed domain failure to an HTTP status. The
// transaction phase never regresses on failure, so every branch is a
// plain advisory message.
func respondDomainError(c *fiber.Ctx, err error) error {
	var de *domain.DomainError
	if !stderrors.As(err, &de) {
		return response.ServerError(c, err.Error())
	}

	switch de {
	case domain.ErrTransactionNotFound, domain.ErrListingNotFound:
		return response.NotFound(c, de.Message)
	case domain.ErrActionNotAllowed:
		return response.Forbidden(c, de.Message)
	case domain.ErrIllegalPhaseTransition, domain.ErrAlreadyPaid,
		domain.ErrAlreadyConfirmed, domain.ErrStaleTransaction:
		return response.Conflict(c, de.Message)
	case domain.ErrLocationServiceUnavailable, domain.ErrNetworkUnavailable:
		return response.Error(c, fiber.StatusServiceUnavailable, de.Message)
	case domain.ErrInvalidServerResponse:
		return response.Error(c, fiber.StatusBadGateway, de.Message)
	default:
		// NoPriceAvailable, PriceNotAgreed, InvalidToken, TokenNotIssued
		return response.BadRequest(c, de.Message)
	}
}
