package ticket

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsel-ticketmaster/tm-scan/pkg/errors"
	"github.com/tsel-ticketmaster/tm-scan/pkg/status"
)

type memoryTicketRepository struct {
	tickets map[string]Ticket
}

func newMemoryTicketRepository() *memoryTicketRepository {
	return &memoryTicketRepository{tickets: make(map[string]Ticket)}
}

func (r *memoryTicketRepository) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return new(sql.Tx), nil
}

func (r *memoryTicketRepository) CommitTx(ctx context.Context, tx *sql.Tx) error {
	return nil
}

func (r *memoryTicketRepository) Rollback(ctx context.Context, tx *sql.Tx) error {
	return nil
}

func (r *memoryTicketRepository) Save(ctx context.Context, t Ticket, tx *sql.Tx) error {
	if _, exists := r.tickets[t.ID]; exists {
		return nil
	}

	r.tickets[t.ID] = t

	return nil
}

func (r *memoryTicketRepository) FindByID(ctx context.Context, ID string, tx *sql.Tx) (Ticket, error) {
	t, ok := r.tickets[ID]
	if !ok {
		return Ticket{}, errors.New(http.StatusNotFound, status.NOT_FOUND, fmt.Sprintf("ticket with id '%s' is not found", ID))
	}

	return t, nil
}

func (r *memoryTicketRepository) FindByIDForUpdate(ctx context.Context, ID string, tx *sql.Tx) (Ticket, error) {
	return r.FindByID(ctx, ID, tx)
}

func newUseCase(repo TicketRepository) TicketUseCase {
	return NewTicketUseCase(TicketUseCaseProperty{
		Logger:           logrus.New(),
		Timeout:          5 * time.Second,
		TicketRepository: repo,
	})
}

func TestOnOrderPaid(t *testing.T) {
	repo := newMemoryTicketRepository()
	useCase := newUseCase(repo)

	e := OrderPaidEvent{
		ID:            "TO1700000000000000000",
		Status:        "PAID",
		CustomerID:    7,
		CustomerName:  gofakeit.Name(),
		CustomerEmail: gofakeit.Email(),
		Items: []OrderPaidEventItem{
			{OrderID: "TO1700000000000000000", EventID: "E1", Quantity: 2},
		},
	}

	require.NoError(t, useCase.OnOrderPaid(context.Background(), e))

	saved, err := repo.FindByID(context.Background(), e.ID+"-1", nil)
	require.NoError(t, err)
	assert.Equal(t, "E1", saved.EventID)
	assert.Equal(t, int64(2), saved.Quantity)
	assert.Equal(t, e.CustomerEmail, saved.CustomerEmail)
}

func TestOnOrderPaid_MultiItemOrder(t *testing.T) {
	repo := newMemoryTicketRepository()
	useCase := newUseCase(repo)

	// Every item carries the parent order's id, exactly as tm-order
	// publishes it. Each one must still end up as its own ticket.
	e := OrderPaidEvent{
		ID:            "TO1700000000000000003",
		Status:        "PAID",
		CustomerID:    9,
		CustomerName:  gofakeit.Name(),
		CustomerEmail: gofakeit.Email(),
		Items: []OrderPaidEventItem{
			{OrderID: "TO1700000000000000003", EventID: "E1", Quantity: 1},
			{OrderID: "TO1700000000000000003", EventID: "E2", Quantity: 3},
		},
	}

	require.NoError(t, useCase.OnOrderPaid(context.Background(), e))
	require.Len(t, repo.tickets, 2)
	assert.Equal(t, "E1", repo.tickets["TO1700000000000000003-1"].EventID)
	assert.Equal(t, "E2", repo.tickets["TO1700000000000000003-2"].EventID)
	assert.Equal(t, int64(3), repo.tickets["TO1700000000000000003-2"].Quantity)
}

func TestOnOrderPaid_IgnoresUnpaidOrders(t *testing.T) {
	repo := newMemoryTicketRepository()
	useCase := newUseCase(repo)

	e := OrderPaidEvent{
		ID:     "TO1700000000000000001",
		Status: "WAITING_FOR_PAYMENT",
		Items: []OrderPaidEventItem{
			{OrderID: "TO1700000000000000001", EventID: "E1", Quantity: 1},
		},
	}

	require.NoError(t, useCase.OnOrderPaid(context.Background(), e))
	assert.Empty(t, repo.tickets)
}

func TestOnOrderPaid_ReplayedEventIsIdempotent(t *testing.T) {
	repo := newMemoryTicketRepository()
	useCase := newUseCase(repo)

	e := OrderPaidEvent{
		ID:            "TO1700000000000000002",
		Status:        "PAID",
		CustomerName:  gofakeit.Name(),
		CustomerEmail: gofakeit.Email(),
		Items: []OrderPaidEventItem{
			{OrderID: "TO1700000000000000002", EventID: "E1", Quantity: 1},
		},
	}

	require.NoError(t, useCase.OnOrderPaid(context.Background(), e))
	first := repo.tickets[e.ID+"-1"]

	require.NoError(t, useCase.OnOrderPaid(context.Background(), e))
	assert.Len(t, repo.tickets, 1)
	assert.Equal(t, first, repo.tickets[e.ID+"-1"])
}
