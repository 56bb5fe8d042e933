package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// TransactionEvent is one raw transaction record from an inbound webhook batch.
// Every field may be absent; downstream components default rather than reject.
type TransactionEvent struct {
	Wallet       string `json:"wallet"`
	TokenAddress string `json:"tokenAddress"`
	Amount       Amount `json:"amount"`
	Signature    string `json:"signature"`
	Description  string `json:"description,omitempty"`
}

// Amount is a SOL quantity that decodes from a JSON number, a numeric string,
// or null. Anything unparsable decodes as 0 so a malformed record is filtered
// by the threshold instead of failing the batch.
type Amount float64

// UnmarshalJSON implements json.Unmarshaler.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = 0
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*a = 0
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			*a = 0
			return nil
		}
		*a = Amount(v)
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		*a = 0
		return nil
	}
	*a = Amount(v)
	return nil
}

// Float64 returns the amount as a plain float64.
func (a Amount) Float64() float64 {
	return float64(a)
}
