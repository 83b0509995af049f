package utils

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
)

// NewMessageID mints a ULID for a chat message. ULIDs sort by mint time
// with a monotonic tiebreak, so the message log's ID order is its append
// order regardless of client clock skew.
func NewMessageID() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Now(), entropy).String()
}

// NewTransactionID mints a UUID for a transaction or listing.
func NewTransactionID() string {
	return uuid.NewString()
}
