package scan

import (
	"fmt"
	"time"

	"github.com/tsel-ticketmaster/tm-scan/internal/module/scannerapp/event"
	"github.com/tsel-ticketmaster/tm-scan/internal/module/scannerapp/ticket"
)

// Verdict is the outcome of one admission decision.
type Verdict struct {
	IsValid bool
	Result  string
	Notes   string
}

// Evaluate decides whether a presented ticket may be admitted. It is a
// pure function: correctness of "at most one valid scan per ticket and
// event" is the coordinator's job, which serializes the read-evaluate-
// append span per ticket.
//
// The checks run in a fixed priority order: wrong event beats already
// scanned beats expired. A ticket presented at the wrong gate must be
// reported as such even when it is also past its event's end.
func Evaluate(t ticket.Ticket, homeEvent event.Event, priorScans []ScanAttempt, eventID string, now time.Time) Verdict {
	if t.EventID != eventID {
		return Verdict{
			IsValid: false,
			Result:  ResultWrongEvent,
			Notes:   fmt.Sprintf("Ticket belongs to event '%s' (%s)", homeEvent.Name, t.EventID),
		}
	}

	for _, prior := range priorScans {
		if prior.IsValid && prior.EventID == eventID {
			return Verdict{
				IsValid: false,
				Result:  ResultAlreadyScanned,
				Notes:   fmt.Sprintf("Ticket was already scanned at %s", prior.ScannedAt.Format(time.RFC3339)),
			}
		}
	}

	if now.After(homeEvent.EndDateTime) {
		return Verdict{
			IsValid: false,
			Result:  ResultExpired,
			Notes:   fmt.Sprintf("Event ended at %s", homeEvent.EndDateTime.Format(time.RFC3339)),
		}
	}

	return Verdict{
		IsValid: true,
		Result:  ResultValid,
		Notes:   "Valid ticket entry",
	}
}
