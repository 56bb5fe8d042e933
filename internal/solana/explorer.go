package solana

import "fmt"

const solscanBase = "https://solscan.io"

// TxURL returns the Solscan link for a transaction signature.
func TxURL(signature string) string {
	return fmt.Sprintf("%s/tx/%s", solscanBase, signature)
}

// AccountURL returns the Solscan link for an account address.
func AccountURL(address string) string {
	return fmt.Sprintf("%s/account/%s", solscanBase, address)
}
