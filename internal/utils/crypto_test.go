package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOTPToken(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := GenerateOTPToken()
		require.NoError(t, err)
		assert.Len(t, token, 6)
		for _, c := range token {
			assert.True(t, strings.ContainsRune(otpAlphabet, c), "unexpected character %q", c)
		}
		seen[token] = true
	}
	// 100 draws from a 36^6 space colliding down to a handful would mean
	// the generator is broken.
	assert.Greater(t, len(seen), 90)
}

func TestNewMessageID(t *testing.T) {
	prev := NewMessageID()
	for i := 0; i < 1000; i++ {
		next := NewMessageID()
		assert.Len(t, next, 26)
		// Minted order and lexicographic order must agree.
		assert.Less(t, prev, next)
		prev = next
	}
}
