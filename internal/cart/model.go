package cart

import (
	"time"

	"github.com/gumballparkerdev-cyber/Driply-Backend/internal/catalog"
)

type Line struct {
	ProductID string `json:"productId"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

type Cart struct {
	ID        string    `json:"cartId"`
	UserID    string    `json:"userId"`
	Lines     []Line    `json:"items"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ViewLine is a cart line joined with live product data. Product is nil when
// the referenced product no longer exists; the join is computed at read time
// and never persisted.
type ViewLine struct {
	Line
	Product *catalog.Product `json:"product,omitempty"`
}

type View struct {
	ID        string     `json:"cartId,omitempty"`
	UserID    string     `json:"userId"`
	Items     []ViewLine `json:"items"`
	UpdatedAt time.Time  `json:"updatedAt,omitempty"`
}
