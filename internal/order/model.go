package order

import "time"

// Line captures the unit price at order time; later product price changes
// never touch it.
type Line struct {
	ProductID string  `json:"productId"`
	Size      string  `json:"size"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// Order is immutable once created. The repository exposes no update or
// delete: the orders table is an append-only ledger.
type Order struct {
	ID          string    `json:"orderId"`
	UserID      string    `json:"userId"`
	Lines       []Line    `json:"items"`
	TotalAmount float64   `json:"totalAmount"`
	CreatedAt   time.Time `json:"createdAt"`
}
