package ticket

import "time"

// Ticket is one paid order entitling its holder to admission to a
// single event. Rows are written once by the order-paid consumer and
// never mutated here.
type Ticket struct {
	ID            string
	EventID       string
	CustomerID    int64
	CustomerName  string
	CustomerEmail string
	Quantity      int64
	CreatedAt     time.Time
}
