package domain

// LabelEntry is one wallet→label pair from the label store. Wallet addresses
// are opaque case-sensitive keys; the label is whatever the operator set.
type LabelEntry struct {
	Wallet string `json:"wallet"`
	Label  string `json:"label"`
}

// DisplayLabel returns the operator label when present, otherwise a truncated
// wallet form: first 4 and last 4 characters joined by "...". Wallets shorter
// than 8 characters are shown raw.
func DisplayLabel(wallet, label string) string {
	if label != "" {
		return label
	}
	return TruncateWallet(wallet)
}

// TruncateWallet shortens a wallet address for display.
func TruncateWallet(wallet string) string {
	if len(wallet) < 8 {
		return wallet
	}
	return wallet[:4] + "..." + wallet[len(wallet)-4:]
}
