package scan

import "time"

type ScanAttemptResponse struct {
	ID             string    `json:"id"`
	OrderID        string    `json:"order_id"`
	EventID        string    `json:"event_id"`
	EventName      string    `json:"event_name"`
	ScannerID      int64     `json:"scanner_id"`
	IsValid        bool      `json:"is_valid"`
	ScanResult     string    `json:"scan_result"`
	Notes          string    `json:"notes"`
	ScannedAt      time.Time `json:"scanned_at"`
	CustomerName   string    `json:"customer_name"`
	CustomerEmail  string    `json:"customer_email"`
	TicketQuantity int64     `json:"ticket_quantity"`
}

func (r *ScanAttemptResponse) PopulateFromEntity(sa ScanAttempt) {
	r.ID = sa.ID
	r.OrderID = sa.OrderID
	r.EventID = sa.EventID
	r.EventName = sa.EventName
	r.ScannerID = sa.ScannerID
	r.IsValid = sa.IsValid
	r.ScanResult = sa.ScanResult
	r.Notes = sa.Notes
	r.ScannedAt = sa.ScannedAt
	r.CustomerName = sa.CustomerName
	r.CustomerEmail = sa.CustomerEmail
	r.TicketQuantity = sa.TicketQuantity
}

type GetManyScanAttemptResponse struct {
	Items      []ScanAttemptResponse `json:"items"`
	Page       int64                 `json:"page"`
	Size       int64                 `json:"size"`
	TotalCount int64                 `json:"total_count"`
	TotalPages int64                 `json:"total_pages"`
}

type GetAdmittedCountResponse struct {
	EventID       string `json:"event_id"`
	AdmittedCount int64  `json:"admitted_count"`
}
