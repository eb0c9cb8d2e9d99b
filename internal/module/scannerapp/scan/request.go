package scan

type SubmitScanRequest struct {
	// TicketID may be supplied directly (manual entry) or left empty
	// with RawPayload carrying the scanned QR/barcode content.
	TicketID   string `json:"ticket_id" validate:"required"`
	EventID    string `json:"event_id" validate:"required"`
	RawPayload string `json:"raw_payload,omitempty" validate:"-"`
}
