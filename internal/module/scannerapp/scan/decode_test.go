package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTicketID(t *testing.T) {
	testCases := []struct {
		name     string
		raw      string
		expected string
	}{
		{
			name:     "json payload with ticket_id",
			raw:      `{"ticket_id":"TO1700000000000000000","event_id":"E1"}`,
			expected: "TO1700000000000000000",
		},
		{
			name:     "json payload with order_id",
			raw:      `{"order_id":"TO1700000000000000001"}`,
			expected: "TO1700000000000000001",
		},
		{
			name:     "json payload with bare id",
			raw:      `{"id":"TO1700000000000000002"}`,
			expected: "TO1700000000000000002",
		},
		{
			name:     "ticket_id preferred over id",
			raw:      `{"id":"other","ticket_id":"TO1700000000000000003"}`,
			expected: "TO1700000000000000003",
		},
		{
			name:     "ticket url",
			raw:      "https://ticketmaster.tsel.id/tickets/TO1700000000000000004",
			expected: "TO1700000000000000004",
		},
		{
			name:     "ticket url with trailing slash",
			raw:      "https://ticketmaster.tsel.id/tickets/TO1700000000000000005/",
			expected: "TO1700000000000000005",
		},
		{
			name:     "raw identifier from manual entry",
			raw:      "  TO1700000000000000006\n",
			expected: "TO1700000000000000006",
		},
		{
			name:     "malformed json yields nothing",
			raw:      `{"ticket_id":`,
			expected: "",
		},
		{
			name:     "json without known fields yields nothing",
			raw:      `{"foo":"bar"}`,
			expected: "",
		},
		{
			name:     "empty input",
			raw:      "   ",
			expected: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ExtractTicketID(tc.raw))
		})
	}
}
