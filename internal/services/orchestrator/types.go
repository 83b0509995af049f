package orchestrator

import (
	"handshake/internal/models"
)

// Action is one of the operations the UI may offer in a given phase.
type Action string

const (
	ActionSendMessage     Action = "send_message"
	ActionProposePrice    Action = "propose_price"
	ActionAcceptPrice     Action = "accept_price"
	ActionSuggestMeetup   Action = "suggest_meetup"
	ActionInitiatePayment Action = "initiate_payment"
	ActionDisplayToken    Action = "display_token"
	ActionConfirmToken    Action = "confirm_token"
)

// Snapshot is the reconciled view of a transaction for one actor.
// Re-applying the same snapshot is a no-op by construction: it carries
// no deltas, only current state.
type Snapshot struct {
	ID        string           `json:"id"`
	ListingID string           `json:"listing_id"`
	BuyerID   uint             `json:"buyer_id"`
	SellerID  uint             `json:"seller_id"`
	Phase     models.Phase     `json:"phase"`
	Messages  []models.Message `json:"messages"`
	Meetup    MeetupView       `json:"meetup"`
	OTP       OTPView          `json:"otp"`
	Actions   []Action         `json:"actions"`
	Version   uint             `json:"version"`
}

type MeetupView struct {
	Price    *int64        `json:"price,omitempty"`
	Agreed   bool          `json:"agreed"`
	Location *LocationView `json:"location,omitempty"`
	Time     string        `json:"time,omitempty"`
}

type LocationView struct {
	Name    string `json:"name"`
	MapLink string `json:"mapLink"`
}

// OTPView redacts the token for everyone but the seller; the buyer
// learns it by scanning the QR code, not from the API.
type OTPView struct {
	Token     string `json:"token,omitempty"`
	Confirmed bool   `json:"confirmed"`
}

// AllowedActions lists the operations legal for the actor in the
// transaction's current phase. Anything not listed fails with
// IllegalPhaseTransition when attempted.
func AllowedActions(tx *models.Transaction, actor models.Actor) []Action {
	role := tx.RoleOf(actor.ID)
	if role == models.RoleNone {
		return nil
	}

	var actions []Action
	switch models.PhaseOf(tx) {
	case models.PhaseNegotiating:
		actions = append(actions, ActionSendMessage, ActionProposePrice)
		if role == models.RoleSeller {
			actions = append(actions, ActionAcceptPrice)
		}
	case models.PhasePriceAgreed:
		actions = append(actions, ActionSendMessage, ActionSuggestMeetup)
	case models.PhaseMeetupAgreed:
		actions = append(actions, ActionSendMessage)
		if role == models.RoleBuyer {
			actions = append(actions, ActionInitiatePayment)
		}
	case models.PhasePaid:
		actions = append(actions, ActionSendMessage)
		if role == models.RoleSeller {
			actions = append(actions, ActionDisplayToken)
		}
		if role == models.RoleBuyer {
			actions = append(actions, ActionConfirmToken)
		}
	case models.PhaseCompleted:
		// Terminal: nothing left to do.
	}
	return actions
}
