// Package service holds the core URL-shortening logic: random key
// generation, collision-free allocation against the record store, and the
// façade consumed by the HTTP layer.
package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// alphabet is the 62-symbol set short keys are drawn from.
const alphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// DefaultKeyLength matches the original service's 8-character keys.
const DefaultKeyLength = 8

// KeyGenerator produces random short-key candidates. It knows nothing
// about uniqueness; that is the allocator's job.
type KeyGenerator struct {
	elements string
}

func NewKeyGenerator() *KeyGenerator {
	return &KeyGenerator{elements: alphabet}
}

// Generate returns a string of exactly length characters, each drawn
// independently and uniformly from the alphanumeric alphabet.
// crypto/rand keeps concurrent generators from tracking each other's
// draws and keeps issued keys non-enumerable.
func (g *KeyGenerator) Generate(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("key length must be positive, got %d", length)
	}

	max := big.NewInt(int64(len(g.elements)))
	key := make([]byte, length)
	for i := range key {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("read random index: %w", err)
		}
		key[i] = g.elements[n.Int64()]
	}

	return string(key), nil
}
