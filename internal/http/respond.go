package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gumballparkerdev-cyber/Driply-Backend/internal/cart"
	"github.com/gumballparkerdev-cyber/Driply-Backend/internal/catalog"
	"github.com/gumballparkerdev-cyber/Driply-Backend/internal/checkout"
	"github.com/gumballparkerdev-cyber/Driply-Backend/internal/order"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeServiceError maps domain errors onto the HTTP surface. Stock errors
// additionally report current availability so the client can retry with a
// corrected quantity.
func writeServiceError(w http.ResponseWriter, err error) {
	var stockErr *catalog.InsufficientStockError
	switch {
	case errors.As(err, &stockErr):
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":          stockErr.Error(),
			"productId":      stockErr.ProductID,
			"availableStock": stockErr.Available,
		})
	case errors.Is(err, checkout.ErrUserRequired),
		errors.Is(err, checkout.ErrEmptyCart),
		errors.Is(err, checkout.ErrNoValidItems),
		errors.Is(err, checkout.ErrInvalidQuantity),
		errors.Is(err, cart.ErrInvalidQuantity):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, catalog.ErrNotFound):
		writeError(w, http.StatusNotFound, "product not found")
	case errors.Is(err, order.ErrNotFound):
		writeError(w, http.StatusNotFound, "order not found")
	case errors.Is(err, cart.ErrCartNotFound):
		writeError(w, http.StatusNotFound, "cart not found")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
