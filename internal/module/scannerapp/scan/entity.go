package scan

import "time"

// Scan results recorded on the ledger.
const (
	ResultValid          = "VALID"
	ResultWrongEvent     = "WRONG_EVENT"
	ResultAlreadyScanned = "ALREADY_SCANNED"
	ResultExpired        = "EXPIRED"
)

// ScanAttempt is one immutable ledger entry. Every submission writes
// exactly one row, rejected ones included; rows are never updated or
// deleted.
type ScanAttempt struct {
	ID         string
	OrderID    string
	EventID    string
	ScannerID  int64
	IsValid    bool
	ScanResult string
	Notes      string
	ScannedAt  time.Time
}
