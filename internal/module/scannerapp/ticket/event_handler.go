package ticket

import (
	"context"
	"encoding/json"

	"github.com/tsel-ticketmaster/tm-scan/pkg/pubsub"
)

type EventHandler struct {
	TicketUseCase TicketUseCase
}

func InitEventHandler(subscriber pubsub.Subscriber, ticketUseCase TicketUseCase) {
	handler := &EventHandler{
		TicketUseCase: ticketUseCase,
	}

	subscriber.Subscribe("order-paid", handler.OnOrderPaid)
}

func (handler EventHandler) OnOrderPaid(ctx context.Context, key []byte, message []byte) error {
	e := OrderPaidEvent{}
	if err := json.Unmarshal(message, &e); err != nil {
		// Malformed payloads are dropped instead of being redelivered
		// forever.
		return nil
	}

	return handler.TicketUseCase.OnOrderPaid(ctx, e)
}
