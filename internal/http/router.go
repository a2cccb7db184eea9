package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	productCacheTTL     = 60 * time.Second
	productCacheEntries = 256
)

type Handlers struct {
	Products *ProductHandler
	Cart     *CartHandler
	Checkout *CheckoutHandler
	Orders   *OrderHandler
}

func NewRouter(h Handlers) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	r.Get("/health", health)

	productCache := newResponseCache(productCacheTTL, productCacheEntries)

	r.Route("/api", func(r chi.Router) {
		r.With(productCache.Middleware).Get("/products", h.Products.List)
		r.Get("/products/{id}", h.Products.Get)

		r.Get("/cart/{userId}", h.Cart.Get)
		r.Post("/cart/add", h.Cart.AddItem)
		r.Post("/cart/update", h.Cart.UpdateItem)
		r.Post("/cart/remove", h.Cart.RemoveItem)

		r.Post("/checkout", h.Checkout.Checkout)
		r.Post("/buy-now", h.Checkout.BuyNow)

		r.Get("/orders/{id}", h.Orders.Get)
	})

	return r
}

func health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
