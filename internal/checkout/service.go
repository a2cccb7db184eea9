package checkout

import (
	"context"
	"errors"
	"log"

	"github.com/gumballparkerdev-cyber/Driply-Backend/internal/cart"
	"github.com/gumballparkerdev-cyber/Driply-Backend/internal/catalog"
	"github.com/gumballparkerdev-cyber/Driply-Backend/internal/order"
)

var (
	ErrUserRequired    = errors.New("user id is required")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrNoValidItems    = errors.New("no valid items to checkout")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)

// Selection names one cart line by its (product, size) pair.
type Selection struct {
	ProductID string `json:"productId"`
	Size      string `json:"size"`
}

type Receipt struct {
	OrderID     string  `json:"orderId"`
	TotalAmount float64 `json:"totalAmount"`
}

// Carts is the slice of the cart service checkout needs: the joined view
// plus pruning of processed lines.
type Carts interface {
	View(ctx context.Context, userID string) (*cart.View, error)
	RemoveLines(ctx context.Context, userID string, keys map[cart.LineKey]struct{}) error
	Clear(ctx context.Context, userID string) error
}

type Stock interface {
	GetByID(ctx context.Context, id string) (catalog.Product, error)
	DecrementStock(ctx context.Context, id string, quantity int) error
}

type Orders interface {
	Create(ctx context.Context, o *order.Order) error
}

type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, o *order.Order) error
}

// Service turns cart contents into immutable orders. The sequence is
// deliberately best-effort rather than one cross-store transaction: the
// order is written first so a sale is never lost, and a stock decrement
// lost to a concurrent checkout after that point is logged, not rolled
// back. The pre-pass stock check keeps that window small.
type Service struct {
	carts     Carts
	stock     Stock
	orders    Orders
	publisher EventPublisher
	logger    *log.Logger
}

func NewService(carts Carts, stock Stock, orders Orders, publisher EventPublisher, logger *log.Logger) *Service {
	return &Service{
		carts:     carts,
		stock:     stock,
		orders:    orders,
		publisher: publisher,
		logger:    logger,
	}
}

// Checkout processes the user's cart, or the selected subset of it, into a
// new order.
func (s *Service) Checkout(ctx context.Context, userID string, selection []Selection) (*Receipt, error) {
	if userID == "" {
		return nil, ErrUserRequired
	}

	view, err := s.carts.View(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(view.Items) == 0 {
		return nil, ErrEmptyCart
	}

	working := workingSet(view.Items, selection)
	if len(working) == 0 {
		return nil, ErrNoValidItems
	}

	// Pre-pass over the whole working set: validate stock and freeze prices
	// before anything is mutated.
	var total float64
	lines := make([]order.Line, 0, len(working))
	for _, item := range working {
		p := item.Product
		if p.Stock < item.Quantity {
			return nil, &catalog.InsufficientStockError{
				ProductID: p.ID,
				Name:      p.Name,
				Requested: item.Quantity,
				Available: p.Stock,
			}
		}
		total += p.Price * float64(item.Quantity)
		lines = append(lines, order.Line{
			ProductID: p.ID,
			Size:      item.Size,
			Quantity:  item.Quantity,
			Price:     p.Price,
		})
	}
	if total < 0 {
		total = 0
	}

	// The order is written before stock moves; it is the audit record of
	// intent even if a later step fails.
	o := &order.Order{UserID: userID, Lines: lines, TotalAmount: total}
	if err := s.orders.Create(ctx, o); err != nil {
		return nil, err
	}

	for _, l := range lines {
		if err := s.stock.DecrementStock(ctx, l.ProductID, l.Quantity); err != nil {
			// A race lost since the pre-pass, or a store failure. The order
			// stands; reconcile stock out of band.
			s.logger.Printf("checkout %s: stock decrement for product %s: %v", o.ID, l.ProductID, err)
		}
	}

	if len(selection) > 0 {
		keys := make(map[cart.LineKey]struct{}, len(working))
		for _, item := range working {
			keys[cart.LineKey{ProductID: item.ProductID, Size: item.Size}] = struct{}{}
		}
		if err := s.carts.RemoveLines(ctx, userID, keys); err != nil {
			s.logger.Printf("checkout %s: prune cart for user %s: %v", o.ID, userID, err)
		}
	} else {
		if err := s.carts.Clear(ctx, userID); err != nil {
			s.logger.Printf("checkout %s: clear cart for user %s: %v", o.ID, userID, err)
		}
	}

	if s.publisher != nil {
		if err := s.publisher.PublishOrderCreated(ctx, o); err != nil {
			s.logger.Printf("checkout %s: publish order created: %v", o.ID, err)
		}
	}

	return &Receipt{OrderID: o.ID, TotalAmount: total}, nil
}

// BuyNow purchases a quantity of one product directly, bypassing the cart.
// No order record is created.
func (s *Service) BuyNow(ctx context.Context, productID string, quantity int) (float64, error) {
	if quantity < 1 {
		return 0, ErrInvalidQuantity
	}

	p, err := s.stock.GetByID(ctx, productID)
	if err != nil {
		return 0, err
	}

	if err := s.stock.DecrementStock(ctx, productID, quantity); err != nil {
		return 0, err
	}

	return p.Price * float64(quantity), nil
}

// workingSet filters the joined cart lines down to those checkout will
// process: lines whose product still resolves and, when a selection is
// given, whose (product, size) is selected. Cart order is preserved.
func workingSet(items []cart.ViewLine, selection []Selection) []cart.ViewLine {
	var working []cart.ViewLine
	for _, item := range items {
		if item.Product == nil {
			continue
		}
		if len(selection) > 0 && !selected(selection, item) {
			continue
		}
		working = append(working, item)
	}
	return working
}

func selected(selection []Selection, item cart.ViewLine) bool {
	for _, sel := range selection {
		if sel.ProductID == item.ProductID && sel.Size == item.Size {
			return true
		}
	}
	return false
}
