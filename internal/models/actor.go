package models

// Role is an actor's side of a transaction. It is never stored on the
// user; the same user is a buyer on one transaction and a seller on
// another.
type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
	RoleNone   Role = ""
)

// Actor is the explicit identity passed into every negotiation action.
// Role checks always go through Transaction.RoleOf rather than trusting
// a caller-supplied role.
type Actor struct {
	ID   uint
	Role Role
}
