package errors

var (
	ErrIllegalPhaseTransition = &DomainError{
		Code:    "ILLEGAL_PHASE_TRANSITION",
		Message: "action is not legal in the current phase",
	}
	ErrNoPriceAvailable = &DomainError{
		Code:    "NO_PRICE_AVAILABLE",
		Message: "no price could be resolved for this transaction",
	}
	ErrPriceNotAgreed = &DomainError{
		Code:    "PRICE_NOT_AGREED",
		Message: "a price must be agreed first",
	}
	ErrLocationServiceUnavailable = &DomainError{
		Code:    "LOCATION_SERVICE_UNAVAILABLE",
		Message: "meetup location service is unreachable",
	}
	ErrAlreadyPaid = &DomainError{
		Code:    "ALREADY_PAID",
		Message: "payment has already been completed",
	}
	ErrTokenNotIssued = &DomainError{
		Code:    "TOKEN_NOT_ISSUED",
		Message: "no handover token has been issued",
	}
	ErrInvalidToken = &DomainError{
		Code:    "INVALID_TOKEN",
		Message: "handover token does not match",
	}
	ErrAlreadyConfirmed = &DomainError{
		Code:    "ALREADY_CONFIRMED",
		Message: "handover has already been confirmed",
	}
	ErrInvalidServerResponse = &DomainError{
		Code:    "INVALID_SERVER_RESPONSE",
		Message: "upstream service returned an unparseable response",
	}
	ErrNetworkUnavailable = &DomainError{
		Code:    "NETWORK_UNAVAILABLE",
		Message: "upstream service is unreachable",
	}
	ErrActionNotAllowed = &DomainError{
		Code:    "ACTION_NOT_ALLOWED",
		Message: "actor may not perform this action",
	}
	ErrStaleTransaction = &DomainError{
		Code:    "STALE_TRANSACTION",
		Message: "transaction was modified by another party, refresh and retry",
	}
	ErrTransactionNotFound = &DomainError{
		Code:    "TRANSACTION_NOT_FOUND",
		Message: "transaction not found",
	}
	ErrListingNotFound = &DomainError{
		Code:    "LISTING_NOT_FOUND",
		Message: "listing not found",
	}
)
