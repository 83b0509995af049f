package utils

import (
	"crypto/rand"
	"math/big"
)

// Handover tokens use the same alphabet the QR rendering expects:
// uppercase letters and digits, six characters.
const (
	otpAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	otpLength   = 6
)

// GenerateOTPToken generates a random handover token. Tokens are always
// minted here, server-side; there is no fallback constant.
func GenerateOTPToken() (string, error) {
	b := make([]byte, otpLength)
	max := big.NewInt(int64(len(otpAlphabet)))
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = otpAlphabet[n.Int64()]
	}
	return string(b), nil
}
