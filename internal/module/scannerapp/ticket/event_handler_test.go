package ticket

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingTicketUseCase struct {
	events []OrderPaidEvent
}

func (u *recordingTicketUseCase) OnOrderPaid(ctx context.Context, e OrderPaidEvent) error {
	u.events = append(u.events, e)
	return nil
}

func TestEventHandler_OnOrderPaid(t *testing.T) {
	useCase := &recordingTicketUseCase{}
	handler := EventHandler{TicketUseCase: useCase}

	payload := []byte(`{"ID":"TO1","Status":"PAID","Items":[{"OrderID":"TO1","EventID":"E1","Quantity":1}]}`)

	require.NoError(t, handler.OnOrderPaid(context.Background(), []byte("TO1"), payload))
	require.Len(t, useCase.events, 1)
	assert.Equal(t, "TO1", useCase.events[0].ID)
	assert.Equal(t, "E1", useCase.events[0].Items[0].EventID)
}

func TestEventHandler_OnOrderPaidDropsMalformedPayload(t *testing.T) {
	useCase := &recordingTicketUseCase{}
	handler := EventHandler{TicketUseCase: useCase}

	// Garbage must not be retried forever.
	require.NoError(t, handler.OnOrderPaid(context.Background(), nil, []byte("not-json")))
	assert.Empty(t, useCase.events)
}
