package scan

import (
	"encoding/json"
	"strings"
)

// ExtractTicketID pulls a ticket identifier out of whatever a scanning
// device hands over: a JSON payload from our own QR codes, a ticket
// URL, or a bare identifier typed at the manual-entry form.
func ExtractTicketID(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	if strings.HasPrefix(raw, "{") {
		var payload map[string]interface{}
		if err := json.Unmarshal([]byte(raw), &payload); err == nil {
			for _, field := range []string{"ticket_id", "order_id", "id"} {
				if v, ok := payload[field].(string); ok && v != "" {
					return v
				}
			}
		}

		return ""
	}

	if strings.Contains(raw, "://") {
		trimmed := strings.TrimRight(raw, "/")
		if idx := strings.LastIndex(trimmed, "/"); idx >= 0 {
			return trimmed[idx+1:]
		}
	}

	return raw
}
