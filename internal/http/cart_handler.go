package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gumballparkerdev-cyber/Driply-Backend/internal/cart"
)

// CartService is what the cart endpoints need from internal/cart.Service.
type CartService interface {
	View(ctx context.Context, userID string) (*cart.View, error)
	AddItem(ctx context.Context, userID, productID, size string, quantity int) (*cart.View, error)
	SetItemQuantity(ctx context.Context, userID, productID, size string, quantity int) (*cart.View, error)
	RemoveItem(ctx context.Context, userID, productID, size string) (*cart.View, error)
}

type CartHandler struct {
	svc CartService
}

func NewCartHandler(svc CartService) *CartHandler {
	return &CartHandler{svc: svc}
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "missing userId")
		return
	}

	v, err := h.svc.View(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

type cartItemRequest struct {
	UserID    string `json:"userId"`
	ProductID string `json:"productId"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

func (req *cartItemRequest) valid() bool {
	return req.UserID != "" && req.ProductID != ""
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if !req.valid() {
		writeError(w, http.StatusBadRequest, "userId and productId are required")
		return
	}

	v, err := h.svc.AddItem(r.Context(), req.UserID, req.ProductID, req.Size, req.Quantity)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if !req.valid() {
		writeError(w, http.StatusBadRequest, "userId and productId are required")
		return
	}

	v, err := h.svc.SetItemQuantity(r.Context(), req.UserID, req.ProductID, req.Size, req.Quantity)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if !req.valid() {
		writeError(w, http.StatusBadRequest, "userId and productId are required")
		return
	}

	v, err := h.svc.RemoveItem(r.Context(), req.UserID, req.ProductID, req.Size)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}
