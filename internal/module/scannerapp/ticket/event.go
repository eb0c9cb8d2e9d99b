package ticket

import "time"

// OrderPaidEvent mirrors the order payload tm-order publishes on the
// order-paid topic once a payment settles.
type OrderPaidEvent struct {
	ID            string               `json:"ID"`
	Status        string               `json:"Status"`
	CustomerID    int64                `json:"CustomerID"`
	CustomerName  string               `json:"CustomerName"`
	CustomerEmail string               `json:"CustomerEmail"`
	Items         []OrderPaidEventItem `json:"Items"`
	CreatedAt     time.Time            `json:"CreatedAt"`
}

type OrderPaidEventItem struct {
	OrderID  string `json:"OrderID"`
	EventID  string `json:"EventID"`
	Quantity int64  `json:"Quantity"`
}
