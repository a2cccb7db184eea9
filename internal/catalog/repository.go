package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var ErrNotFound = errors.New("not found")

// InsufficientStockError reports a stock mutation or check that asked for
// more units than are available.
type InsufficientStockError struct {
	ProductID string
	Name      string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	name := e.Name
	if name == "" {
		name = e.ProductID
	}
	return fmt.Sprintf("insufficient stock for %s: requested %d, available %d", name, e.Requested, e.Available)
}

// DBPool matches the methods from *pgxpool.Pool that we use.
// This allows us to mock the database in tests.
type DBPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

type Repository interface {
	GetByID(ctx context.Context, id string) (Product, error)
	List(ctx context.Context, f Filter) ([]Product, error)
	DecrementStock(ctx context.Context, id string, quantity int) error
	Restock(ctx context.Context, id string, level int) error
	ListRestockCandidates(ctx context.Context, idleSince time.Time) ([]Product, error)
}

type PostgresRepository struct {
	pool DBPool
}

func NewPostgresRepository(pool DBPool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const productColumns = `id, name, slug, description, price, gender, category, season, age_group, brand, image, sizes, stock, created_at, updated_at`

func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Slug, &p.Description, &p.Price,
		&p.Gender, &p.Category, &p.Season, &p.AgeGroup,
		&p.Brand, &p.Image, &p.Sizes, &p.Stock,
		&p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (Product, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id=$1`, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, ErrNotFound
		}
		return Product{}, fmt.Errorf("select product: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) List(ctx context.Context, f Filter) ([]Product, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if len(f.Categories) > 0 {
		where = append(where, "category = ANY("+arg(f.Categories)+")")
	}
	if len(f.Genders) > 0 {
		where = append(where, "gender = ANY("+arg(f.Genders)+")")
	}
	if len(f.Seasons) > 0 {
		where = append(where, "season = ANY("+arg(f.Seasons)+")")
	}
	if f.Search != "" {
		where = append(where, "name ILIKE '%' || "+arg(f.Search)+" || '%'")
	}
	if f.MinPrice != nil {
		where = append(where, "price >= "+arg(*f.MinPrice))
	}
	if f.MaxPrice != nil {
		where = append(where, "price <= "+arg(*f.MaxPrice))
	}

	query := `SELECT ` + productColumns + ` FROM products`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, id"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return products, nil
}

// DecrementStock subtracts quantity from the product's stock as one
// conditional update. Stock never goes negative: the decrement applies only
// when stock >= quantity at the moment the update executes.
func (r *PostgresRepository) DecrementStock(ctx context.Context, id string, quantity int) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE products
		SET stock = stock - $2, updated_at = now()
		WHERE id = $1 AND stock >= $2
	`, id, quantity)
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	// The update did not apply: either the product is gone or it is short.
	var name string
	var available int
	err = r.pool.QueryRow(ctx, `SELECT name, stock FROM products WHERE id=$1`, id).Scan(&name, &available)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("check stock: %w", err)
	}
	return &InsufficientStockError{ProductID: id, Name: name, Requested: quantity, Available: available}
}

// Restock sets the product's stock to an absolute level.
func (r *PostgresRepository) Restock(ctx context.Context, id string, level int) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE products
		SET stock = $2, updated_at = now()
		WHERE id = $1
	`, id, level)
	if err != nil {
		return fmt.Errorf("restock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListRestockCandidates returns zero-stock products that have not been
// touched since idleSince.
func (r *PostgresRepository) ListRestockCandidates(ctx context.Context, idleSince time.Time) ([]Product, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE stock = 0 AND updated_at < $1
		ORDER BY updated_at
	`, idleSince)
	if err != nil {
		return nil, fmt.Errorf("select restock candidates: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return products, nil
}
