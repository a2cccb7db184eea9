package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gumballparkerdev-cyber/Driply-Backend/internal/checkout"
)

// CheckoutService is what the purchase endpoints need from
// internal/checkout.Service.
type CheckoutService interface {
	Checkout(ctx context.Context, userID string, selection []checkout.Selection) (*checkout.Receipt, error)
	BuyNow(ctx context.Context, productID string, quantity int) (float64, error)
}

type CheckoutHandler struct {
	svc CheckoutService
}

func NewCheckoutHandler(svc CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{svc: svc}
}

type checkoutRequest struct {
	UserID string               `json:"userId"`
	Items  []checkout.Selection `json:"items"`
}

func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	receipt, err := h.svc.Checkout(r.Context(), req.UserID, req.Items)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":     "Checkout successful",
		"orderId":     receipt.OrderID,
		"totalAmount": receipt.TotalAmount,
	})
}

type buyNowRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

func (h *CheckoutHandler) BuyNow(w http.ResponseWriter, r *http.Request) {
	var req buyNowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.ProductID == "" {
		writeError(w, http.StatusBadRequest, "productId is required")
		return
	}

	total, err := h.svc.BuyNow(r.Context(), req.ProductID, req.Quantity)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":     "Purchase successful",
		"totalAmount": total,
	})
}
