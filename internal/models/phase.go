package models

// Phase classifies a transaction's progress. It is derived from the
// persisted record on every read and never stored, so two snapshots of
// the same fields always classify identically.
type Phase string

const (
	PhaseNegotiating  Phase = "negotiating"
	PhasePriceAgreed  Phase = "price_agreed"
	PhaseMeetupAgreed Phase = "meetup_agreed"
	PhasePaid         Phase = "paid"
	PhaseCompleted    Phase = "completed"
)

// PhaseOf derives the current phase. Checks run from terminal backwards
// so a record that has progressed never classifies as an earlier phase.
func PhaseOf(t *Transaction) Phase {
	switch {
	case t.OTPConfirmed:
		return PhaseCompleted
	case t.PaymentStatus == PaymentStatusCompleted:
		return PhasePaid
	case t.MeetupAgreed:
		return PhaseMeetupAgreed
	case t.MeetupPrice != nil:
		return PhasePriceAgreed
	default:
		return PhaseNegotiating
	}
}
