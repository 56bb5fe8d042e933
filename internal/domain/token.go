package domain

// Default display values used when a token lookup fails or returns nothing.
const (
	UnknownTokenName = "Unknown Token"
	UnknownValue     = "N/A"
)

// TokenSummary holds display-ready token metadata from the market-data
// provider. Values are kept as provider-native strings; missing fields carry
// the defaults above. A summary is built fresh per lookup and never cached.
type TokenSummary struct {
	Name      string
	Symbol    string
	Price     string
	MarketCap string
}

// UnknownTokenSummary returns the fallback summary used whenever enrichment
// fails. The notification pipeline must keep moving on lookup failure, so
// this is the total-function answer for every error path.
func UnknownTokenSummary() TokenSummary {
	return TokenSummary{
		Name:      UnknownTokenName,
		Symbol:    "",
		Price:     UnknownValue,
		MarketCap: UnknownValue,
	}
}
