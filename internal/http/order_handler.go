package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/gumballparkerdev-cyber/Driply-Backend/internal/cart"
	"github.com/gumballparkerdev-cyber/Driply-Backend/internal/catalog"
	"github.com/gumballparkerdev-cyber/Driply-Backend/internal/order"
)

type OrderHandler struct {
	repo     order.Repository
	products cart.ProductSource
}

func NewOrderHandler(repo order.Repository, products cart.ProductSource) *OrderHandler {
	return &OrderHandler{repo: repo, products: products}
}

type orderItemView struct {
	order.Line
	Product *catalog.Product `json:"product,omitempty"`
}

type orderView struct {
	ID          string          `json:"orderId"`
	UserID      string          `json:"userId"`
	Items       []orderItemView `json:"items"`
	TotalAmount float64         `json:"totalAmount"`
	CreatedAt   time.Time       `json:"createdAt"`
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")

	o, err := h.repo.GetByID(r.Context(), orderID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	// Join each line with current product data at response time; lines
	// whose product is gone keep their frozen snapshot only.
	view := orderView{
		ID:          o.ID,
		UserID:      o.UserID,
		Items:       make([]orderItemView, 0, len(o.Lines)),
		TotalAmount: o.TotalAmount,
		CreatedAt:   o.CreatedAt,
	}
	for _, l := range o.Lines {
		item := orderItemView{Line: l}
		p, err := h.products.GetByID(r.Context(), l.ProductID)
		switch {
		case err == nil:
			item.Product = &p
		case errors.Is(err, catalog.ErrNotFound):
		default:
			writeError(w, http.StatusInternalServerError, "failed to load order items")
			return
		}
		view.Items = append(view.Items, item)
	}

	writeJSON(w, http.StatusOK, view)
}
