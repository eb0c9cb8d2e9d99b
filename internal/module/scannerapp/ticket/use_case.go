package ticket

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

type TicketUseCase interface {
	OnOrderPaid(ctx context.Context, e OrderPaidEvent) error
}

type ticketUseCase struct {
	logger           *logrus.Logger
	timeout          time.Duration
	ticketRepository TicketRepository
}

type TicketUseCaseProperty struct {
	Logger           *logrus.Logger
	Timeout          time.Duration
	TicketRepository TicketRepository
}

func NewTicketUseCase(props TicketUseCaseProperty) TicketUseCase {
	return &ticketUseCase{
		logger:           props.Logger,
		timeout:          props.Timeout,
		ticketRepository: props.TicketRepository,
	}
}

// OnOrderPaid implements TicketUseCase. One ticket row is written per
// order item. Every item of an order carries the parent order's id, so
// the ticket id is the order id suffixed with the item position; being
// deterministic, it keeps replayed events idempotent.
func (u *ticketUseCase) OnOrderPaid(ctx context.Context, e OrderPaidEvent) error {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	if e.Status != "PAID" {
		return nil
	}

	tx, err := u.ticketRepository.BeginTx(ctx)
	if err != nil {
		return err
	}

	now := time.Now()

	for k, item := range e.Items {
		t := Ticket{
			ID:            fmt.Sprintf("%s-%d", item.OrderID, k+1),
			EventID:       item.EventID,
			CustomerID:    e.CustomerID,
			CustomerName:  e.CustomerName,
			CustomerEmail: e.CustomerEmail,
			Quantity:      item.Quantity,
			CreatedAt:     now,
		}

		if err := u.ticketRepository.Save(ctx, t, tx); err != nil {
			u.ticketRepository.Rollback(ctx, tx)
			return err
		}
	}

	if err := u.ticketRepository.CommitTx(ctx, tx); err != nil {
		return err
	}

	return nil
}
