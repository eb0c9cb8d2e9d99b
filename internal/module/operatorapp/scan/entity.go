package scan

import "time"

// ScanAttempt is the operator-facing read model: the ledger row joined
// with ticket and event display data. Scanner accounts live in the
// identity service, so only the scanner id is carried here.
type ScanAttempt struct {
	ID             string
	OrderID        string
	EventID        string
	EventName      string
	ScannerID      int64
	IsValid        bool
	ScanResult     string
	Notes          string
	ScannedAt      time.Time
	CustomerName   string
	CustomerEmail  string
	TicketQuantity int64
}
