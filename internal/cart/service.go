package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/gumballparkerdev-cyber/Driply-Backend/internal/catalog"
)

var (
	ErrCartNotFound    = errors.New("cart not found")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)

// ProductSource is the slice of the catalog the cart needs for advisory
// stock checks and read-time joins.
type ProductSource interface {
	GetByID(ctx context.Context, id string) (catalog.Product, error)
}

// Service keeps the merge-by-(product,size) invariant and joins carts with
// live product data on every read. Stock checks here are advisory only;
// checkout re-validates against the catalog.
type Service struct {
	repo     Repository
	products ProductSource
}

func NewService(repo Repository, products ProductSource) *Service {
	return &Service{repo: repo, products: products}
}

// View returns the user's cart joined with live product data. A user without
// a cart gets an empty one; absence is never an error.
func (s *Service) View(ctx context.Context, userID string) (*View, error) {
	c, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return &View{UserID: userID, Items: []ViewLine{}}, nil
	}
	return s.join(ctx, c)
}

func (s *Service) AddItem(ctx context.Context, userID, productID, size string, quantity int) (*View, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if quantity > p.Stock {
		return nil, &catalog.InsufficientStockError{
			ProductID: p.ID,
			Name:      p.Name,
			Requested: quantity,
			Available: p.Stock,
		}
	}

	c, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		c = &Cart{UserID: userID}
	}

	// Merge into an existing (product, size) line, else append.
	merged := false
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID && c.Lines[i].Size == size {
			c.Lines[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		c.Lines = append(c.Lines, Line{ProductID: productID, Size: size, Quantity: quantity})
	}

	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}
	return s.join(ctx, c)
}

func (s *Service) SetItemQuantity(ctx context.Context, userID, productID, size string, quantity int) (*View, error) {
	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}

	if quantity == 0 {
		return s.RemoveItem(ctx, userID, productID, size)
	}

	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if quantity > p.Stock {
		return nil, &catalog.InsufficientStockError{
			ProductID: p.ID,
			Name:      p.Name,
			Requested: quantity,
			Available: p.Stock,
		}
	}

	c, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		c = &Cart{UserID: userID}
	}

	found := false
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID && c.Lines[i].Size == size {
			c.Lines[i].Quantity = quantity
			found = true
			break
		}
	}
	if !found {
		c.Lines = append(c.Lines, Line{ProductID: productID, Size: size, Quantity: quantity})
	}

	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}
	return s.join(ctx, c)
}

// RemoveItem drops the matching line. A missing line is a no-op; a missing
// cart is reported as ErrCartNotFound.
func (s *Service) RemoveItem(ctx context.Context, userID, productID, size string) (*View, error) {
	c, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCartNotFound
	}

	kept := c.Lines[:0]
	for _, l := range c.Lines {
		if l.ProductID == productID && l.Size == size {
			continue
		}
		kept = append(kept, l)
	}
	c.Lines = kept

	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}
	return s.join(ctx, c)
}

// RemoveLines drops every line whose (productID, size) key appears in keys
// and persists the shrunk cart. Used by checkout to prune processed lines.
func (s *Service) RemoveLines(ctx context.Context, userID string, keys map[LineKey]struct{}) error {
	c, err := s.repo.Get(ctx, userID)
	if err != nil {
		return err
	}
	if c == nil {
		return nil
	}

	kept := c.Lines[:0]
	for _, l := range c.Lines {
		if _, ok := keys[LineKey{ProductID: l.ProductID, Size: l.Size}]; ok {
			continue
		}
		kept = append(kept, l)
	}
	c.Lines = kept

	return s.repo.Save(ctx, c)
}

// Clear removes the user's cart entirely.
func (s *Service) Clear(ctx context.Context, userID string) error {
	return s.repo.Clear(ctx, userID)
}

// LineKey identifies a cart line by its (product, size) pair.
type LineKey struct {
	ProductID string
	Size      string
}

func (s *Service) join(ctx context.Context, c *Cart) (*View, error) {
	v := &View{ID: c.ID, UserID: c.UserID, Items: []ViewLine{}, UpdatedAt: c.UpdatedAt}
	for _, l := range c.Lines {
		vl := ViewLine{Line: l}
		p, err := s.products.GetByID(ctx, l.ProductID)
		switch {
		case err == nil:
			vl.Product = &p
		case errors.Is(err, catalog.ErrNotFound):
			// product deleted since the line was added; keep the line,
			// leave the join empty
		default:
			return nil, fmt.Errorf("join product %s: %w", l.ProductID, err)
		}
		v.Items = append(v.Items, vl)
	}
	return v, nil
}
