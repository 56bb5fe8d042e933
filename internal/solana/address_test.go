package solana

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidAddress(t *testing.T) {
	// wSOL mint: canonical 32-byte base58 address
	assert.True(t, IsValidAddress("So11111111111111111111111111111111111111112"))
	// system program
	assert.True(t, IsValidAddress("11111111111111111111111111111111"))

	assert.False(t, IsValidAddress(""))
	assert.False(t, IsValidAddress("abc"), "too short after decode")
	assert.False(t, IsValidAddress("ABCDEF1234567890"), "0 is not in the base58 alphabet")
	assert.False(t, IsValidAddress("not a wallet at all"))
}

func TestIsOnCurve(t *testing.T) {
	// The all-zero key decodes as a canonical curve point.
	assert.True(t, IsOnCurve("11111111111111111111111111111111"))

	assert.False(t, IsOnCurve(""))
	assert.False(t, IsOnCurve("ABCDEF1234567890"))
}

func TestExplorerURLs(t *testing.T) {
	assert.Equal(t, "https://solscan.io/tx/SIG1", TxURL("SIG1"))
	assert.Equal(t, "https://solscan.io/account/WalletA", AccountURL("WalletA"))
}
