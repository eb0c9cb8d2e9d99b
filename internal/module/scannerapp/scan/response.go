package scan

import "time"

type ScanAttemptResponse struct {
	ID         string    `json:"id"`
	OrderID    string    `json:"order_id"`
	EventID    string    `json:"event_id"`
	ScannerID  int64     `json:"scanner_id"`
	IsValid    bool      `json:"is_valid"`
	ScanResult string    `json:"scan_result"`
	Notes      string    `json:"notes"`
	ScannedAt  time.Time `json:"scanned_at"`
}

func (r *ScanAttemptResponse) PopulateFromEntity(sa ScanAttempt) {
	r.ID = sa.ID
	r.OrderID = sa.OrderID
	r.EventID = sa.EventID
	r.ScannerID = sa.ScannerID
	r.IsValid = sa.IsValid
	r.ScanResult = sa.ScanResult
	r.Notes = sa.Notes
	r.ScannedAt = sa.ScannedAt
}

type SubmitScanResponse struct {
	Success bool                 `json:"success"`
	Result  string               `json:"result"`
	Message string               `json:"message"`
	Scan    *ScanAttemptResponse `json:"scan"`
}
