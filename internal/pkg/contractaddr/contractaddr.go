// Package contractaddr produces placeholder contract addresses. The values are
// opaque labels; nothing is deployed and nothing about them is verifiable.
package contractaddr

import (
	"crypto/rand"
	"encoding/hex"
)

type Generator interface {
	Generate() (string, error)
}

// Func adapts a plain function to Generator.
type Func func() (string, error)

func (f Func) Generate() (string, error) { return f() }

// hexChars is the length of the random part after the "0x" prefix.
const hexChars = 10

// Random returns "0x" followed by ten random lowercase hex digits.
func Random() Generator {
	return Func(func() (string, error) {
		buf := make([]byte, hexChars/2)
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		return "0x" + hex.EncodeToString(buf), nil
	})
}

// Fixed always returns addr.
func Fixed(addr string) Generator {
	return Func(func() (string, error) { return addr, nil })
}
