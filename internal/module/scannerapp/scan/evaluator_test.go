package scan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tsel-ticketmaster/tm-scan/internal/module/scannerapp/event"
	"github.com/tsel-ticketmaster/tm-scan/internal/module/scannerapp/ticket"
)

func TestEvaluate(t *testing.T) {
	now := time.Date(2026, 8, 28, 19, 0, 0, 0, time.UTC)
	tomorrow := now.Add(24 * time.Hour)
	yesterday := now.Add(-24 * time.Hour)

	homeEvent := event.Event{
		ID:          "E1",
		Name:        "Dewa 19 Reunion",
		EndDateTime: tomorrow,
	}

	tkt := ticket.Ticket{
		ID:      "T1",
		EventID: "E1",
	}

	firstScan := ScanAttempt{
		ID:        "SA1",
		OrderID:   "T1",
		EventID:   "E1",
		IsValid:   true,
		ScannedAt: now.Add(-time.Hour),
	}

	testCases := []struct {
		name       string
		ticket     ticket.Ticket
		homeEvent  event.Event
		priorScans []ScanAttempt
		eventID    string
		expected   string
		valid      bool
	}{
		{
			name:      "fresh ticket at its own event is valid",
			ticket:    tkt,
			homeEvent: homeEvent,
			eventID:   "E1",
			expected:  ResultValid,
			valid:     true,
		},
		{
			name:      "ticket presented at another event",
			ticket:    tkt,
			homeEvent: homeEvent,
			eventID:   "E2",
			expected:  ResultWrongEvent,
		},
		{
			name:       "ticket already validly scanned",
			ticket:     tkt,
			homeEvent:  homeEvent,
			priorScans: []ScanAttempt{firstScan},
			eventID:    "E1",
			expected:   ResultAlreadyScanned,
		},
		{
			name:      "ticket scanned after the event ended",
			ticket:    tkt,
			homeEvent: event.Event{ID: "E1", Name: "Dewa 19 Reunion", EndDateTime: yesterday},
			eventID:   "E1",
			expected:  ResultExpired,
		},
		{
			name:      "wrong event wins over expired",
			ticket:    tkt,
			homeEvent: event.Event{ID: "E1", Name: "Dewa 19 Reunion", EndDateTime: yesterday},
			eventID:   "E2",
			expected:  ResultWrongEvent,
		},
		{
			name:       "already scanned wins over expired",
			ticket:     tkt,
			homeEvent:  event.Event{ID: "E1", Name: "Dewa 19 Reunion", EndDateTime: yesterday},
			priorScans: []ScanAttempt{firstScan},
			eventID:    "E1",
			expected:   ResultAlreadyScanned,
		},
		{
			name:      "prior rejected scans do not block admission",
			ticket:    tkt,
			homeEvent: homeEvent,
			priorScans: []ScanAttempt{
				{OrderID: "T1", EventID: "E2", IsValid: false, ScanResult: ResultWrongEvent},
				{OrderID: "T1", EventID: "E1", IsValid: false, ScanResult: ResultExpired},
			},
			eventID:  "E1",
			expected: ResultValid,
			valid:    true,
		},
		{
			name:      "valid scan at a different event does not block admission",
			ticket:    tkt,
			homeEvent: homeEvent,
			priorScans: []ScanAttempt{
				{OrderID: "T1", EventID: "E2", IsValid: true},
			},
			eventID:  "E1",
			expected: ResultValid,
			valid:    true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			verdict := Evaluate(tc.ticket, tc.homeEvent, tc.priorScans, tc.eventID, now)

			assert.Equal(t, tc.expected, verdict.Result)
			assert.Equal(t, tc.valid, verdict.IsValid)
		})
	}
}

func TestEvaluateNotes(t *testing.T) {
	now := time.Date(2026, 8, 28, 19, 0, 0, 0, time.UTC)

	homeEvent := event.Event{ID: "E1", Name: "Dewa 19 Reunion", EndDateTime: now.Add(-time.Hour)}
	tkt := ticket.Ticket{ID: "T1", EventID: "E1"}

	wrongEvent := Evaluate(tkt, homeEvent, nil, "E2", now)
	assert.Contains(t, wrongEvent.Notes, "Dewa 19 Reunion")
	assert.Contains(t, wrongEvent.Notes, "E1")

	scannedAt := now.Add(-2 * time.Hour)
	already := Evaluate(tkt, homeEvent, []ScanAttempt{{EventID: "E1", IsValid: true, ScannedAt: scannedAt}}, "E1", now)
	assert.Contains(t, already.Notes, scannedAt.Format(time.RFC3339))

	expired := Evaluate(tkt, homeEvent, nil, "E1", now)
	assert.Contains(t, expired.Notes, homeEvent.EndDateTime.Format(time.RFC3339))

	valid := Evaluate(tkt, event.Event{ID: "E1", EndDateTime: now.Add(time.Hour)}, nil, "E1", now)
	assert.Equal(t, "Valid ticket entry", valid.Notes)
}

func TestEvaluateIsDeterministic(t *testing.T) {
	now := time.Now()
	homeEvent := event.Event{ID: "E1", EndDateTime: now.Add(time.Hour)}
	tkt := ticket.Ticket{ID: "T1", EventID: "E1"}
	history := []ScanAttempt{{EventID: "E1", IsValid: true, ScannedAt: now.Add(-time.Minute)}}

	first := Evaluate(tkt, homeEvent, history, "E1", now)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, Evaluate(tkt, homeEvent, history, "E1", now))
	}
}
