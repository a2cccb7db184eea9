package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gumballparkerdev-cyber/Driply-Backend/internal/cart"
	"github.com/gumballparkerdev-cyber/Driply-Backend/internal/catalog"
)

type fakeCartService struct {
	viewFunc   func(ctx context.Context, userID string) (*cart.View, error)
	addFunc    func(ctx context.Context, userID, productID, size string, quantity int) (*cart.View, error)
	setFunc    func(ctx context.Context, userID, productID, size string, quantity int) (*cart.View, error)
	removeFunc func(ctx context.Context, userID, productID, size string) (*cart.View, error)
}

func (f *fakeCartService) View(ctx context.Context, userID string) (*cart.View, error) {
	if f.viewFunc != nil {
		return f.viewFunc(ctx, userID)
	}
	return &cart.View{UserID: userID, Items: []cart.ViewLine{}}, nil
}

func (f *fakeCartService) AddItem(ctx context.Context, userID, productID, size string, quantity int) (*cart.View, error) {
	if f.addFunc != nil {
		return f.addFunc(ctx, userID, productID, size, quantity)
	}
	return &cart.View{UserID: userID, Items: []cart.ViewLine{}}, nil
}

func (f *fakeCartService) SetItemQuantity(ctx context.Context, userID, productID, size string, quantity int) (*cart.View, error) {
	if f.setFunc != nil {
		return f.setFunc(ctx, userID, productID, size, quantity)
	}
	return &cart.View{UserID: userID, Items: []cart.ViewLine{}}, nil
}

func (f *fakeCartService) RemoveItem(ctx context.Context, userID, productID, size string) (*cart.View, error) {
	if f.removeFunc != nil {
		return f.removeFunc(ctx, userID, productID, size)
	}
	return &cart.View{UserID: userID, Items: []cart.ViewLine{}}, nil
}

var _ CartService = (*cart.Service)(nil)

func TestGetCart_AbsentCartIsEmpty(t *testing.T) {
	r := newTestRouter(nil, &fakeCartService{}, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/cart/u1", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var v cart.View
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	require.Equal(t, "u1", v.UserID)
	require.Empty(t, v.Items)
}

func TestAddCartItem(t *testing.T) {
	svc := &fakeCartService{
		addFunc: func(ctx context.Context, userID, productID, size string, quantity int) (*cart.View, error) {
			require.Equal(t, "u1", userID)
			require.Equal(t, "p1", productID)
			require.Equal(t, "M", size)
			require.Equal(t, 2, quantity)
			return &cart.View{UserID: userID, Items: []cart.ViewLine{
				{Line: cart.Line{ProductID: productID, Size: size, Quantity: quantity}},
			}}, nil
		},
	}
	r := newTestRouter(nil, svc, nil, nil)

	body := `{"userId":"u1","productId":"p1","size":"M","quantity":2}`
	req := httptest.NewRequest(http.MethodPost, "/api/cart/add", strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var v cart.View
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	require.Len(t, v.Items, 1)
}

func TestAddCartItem_InvalidJSON(t *testing.T) {
	r := newTestRouter(nil, &fakeCartService{}, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/cart/add", strings.NewReader(`{invalid`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddCartItem_MissingFields(t *testing.T) {
	r := newTestRouter(nil, &fakeCartService{}, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/cart/add", strings.NewReader(`{"quantity":2}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddCartItem_InsufficientStock(t *testing.T) {
	svc := &fakeCartService{
		addFunc: func(ctx context.Context, userID, productID, size string, quantity int) (*cart.View, error) {
			return nil, &catalog.InsufficientStockError{
				ProductID: productID, Name: "Boots", Requested: quantity, Available: 0,
			}
		},
	}
	r := newTestRouter(nil, svc, nil, nil)

	body := `{"userId":"u1","productId":"pC","size":"42","quantity":1}`
	req := httptest.NewRequest(http.MethodPost, "/api/cart/add", strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Error          string `json:"error"`
		ProductID      string `json:"productId"`
		AvailableStock int    `json:"availableStock"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, "pC", resp.ProductID)
	require.Equal(t, 0, resp.AvailableStock)
	require.Contains(t, resp.Error, "insufficient stock")
}

func TestAddCartItem_ProductNotFound(t *testing.T) {
	svc := &fakeCartService{
		addFunc: func(ctx context.Context, userID, productID, size string, quantity int) (*cart.View, error) {
			return nil, catalog.ErrNotFound
		},
	}
	r := newTestRouter(nil, svc, nil, nil)

	body := `{"userId":"u1","productId":"ghost","size":"M","quantity":1}`
	req := httptest.NewRequest(http.MethodPost, "/api/cart/add", strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateCartItem(t *testing.T) {
	svc := &fakeCartService{
		setFunc: func(ctx context.Context, userID, productID, size string, quantity int) (*cart.View, error) {
			require.Equal(t, 0, quantity)
			return &cart.View{UserID: userID, Items: []cart.ViewLine{}}, nil
		},
	}
	r := newTestRouter(nil, svc, nil, nil)

	body := `{"userId":"u1","productId":"p1","size":"M","quantity":0}`
	req := httptest.NewRequest(http.MethodPost, "/api/cart/update", strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRemoveCartItem_CartNotFound(t *testing.T) {
	svc := &fakeCartService{
		removeFunc: func(ctx context.Context, userID, productID, size string) (*cart.View, error) {
			return nil, cart.ErrCartNotFound
		},
	}
	r := newTestRouter(nil, svc, nil, nil)

	body := `{"userId":"nobody","productId":"p1","size":"M"}`
	req := httptest.NewRequest(http.MethodPost, "/api/cart/remove", strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}
