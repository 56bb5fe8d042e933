package domain

// NotificationRecord is the audit row written after each notification
// attempt. The archive is best-effort: a failed write never blocks or fails
// the pipeline.
type NotificationRecord struct {
	Wallet       string
	TokenAddress string
	Symbol       string
	Amount       float64
	Signature    string
	Text         string
	Delivered    bool
	SentAt       int64 // unix ms
}
