// Package solana has small helpers for Solana addresses and explorer links.
package solana

import (
	"filippo.io/edwards25519"
	"github.com/mr-tron/base58"
)

// IsValidAddress reports whether s is a base58 string decoding to 32 bytes,
// the shape of every Solana account address. Label-store keys stay opaque;
// this only gates explorer-link markup.
func IsValidAddress(s string) bool {
	decoded, err := base58.Decode(s)
	if err != nil {
		return false
	}
	return len(decoded) == 32
}

// IsOnCurve reports whether the address is a canonical ed25519 curve point,
// i.e. a keypair-controlled wallet rather than a program-derived address.
func IsOnCurve(s string) bool {
	decoded, err := base58.Decode(s)
	if err != nil || len(decoded) != 32 {
		return false
	}
	_, err = new(edwards25519.Point).SetBytes(decoded)
	return err == nil
}
