// Package randx generates the random identifiers and secrets used by the
// registrar: profile IDs and lookup tokens. All randomness comes from
// crypto/rand; math/rand is never acceptable for token material.
package randx

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	idAlphabet    = "abcdefghijklmnopqrstuvwxyz0123456789"

	// TokenLength is the number of characters in a lookup token.
	// 16 chars over a 62-symbol alphabet gives ~95 bits of entropy.
	TokenLength = 16

	// IDPrefix and IDSuffixLength define the shape of generated profile IDs,
	// e.g. "user_k3x9q2mf".
	IDPrefix       = "user_"
	IDSuffixLength = 8
)

// MakeRandString returns a string of n characters drawn uniformly from
// alphabet. It uses rejection-free sampling via crypto/rand.Int, so no
// modulo bias is introduced.
func MakeRandString(alphabet string, n int) (string, error) {
	max := big.NewInt(int64(len(alphabet)))
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("rand error: %w", err)
		}
		b[i] = alphabet[idx.Int64()]
	}
	return string(b), nil
}

// MakeToken generates a fresh lookup token.
func MakeToken() (string, error) {
	return MakeRandString(tokenAlphabet, TokenLength)
}

// MakeProfileID generates a profile ID with the fixed prefix and a random
// lowercase-alphanumeric suffix.
func MakeProfileID() (string, error) {
	suffix, err := MakeRandString(idAlphabet, IDSuffixLength)
	if err != nil {
		return "", err
	}
	return IDPrefix + suffix, nil
}
