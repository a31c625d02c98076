package order

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("order not found")

// Tx is the slice of store operations available inside the checkout
// transaction. All of them run on the same dedicated connection.
type Tx interface {
	CartLines(ctx context.Context, userID string) ([]CartLine, error)
	InsertOrder(ctx context.Context, o *Order) error
	InsertItems(ctx context.Context, items []Item) error
	ClearCart(ctx context.Context, userID string) error
}

type Store interface {
	InTx(ctx context.Context, fn func(Tx) error) error
	ListByUser(ctx context.Context, userID string) ([]Order, error)
	GetOwned(ctx context.Context, id, userID string) (*OrderWithItems, error)
	ListWithItemsByUser(ctx context.Context, userID string) ([]OrderWithItems, error)
	ListAllWithItems(ctx context.Context) ([]OrderWithItems, error)
	UpdateStatus(ctx context.Context, id string, st Status) error
}

type PGStore struct{ db *pgxpool.Pool }

func NewPGStore(db *pgxpool.Pool) *PGStore { return &PGStore{db: db} }

// InTx runs fn in one transaction on one pooled connection. The deferred
// rollback is a no-op after a successful commit and guarantees the
// connection goes back to the pool on every path.
func (s *PGStore) InTx(ctx context.Context, fn func(Tx) error) error {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(&pgTx{tx: tx}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

type pgTx struct{ tx pgx.Tx }

func (t *pgTx) CartLines(ctx context.Context, userID string) ([]CartLine, error) {
	rows, err := t.tx.Query(ctx, `
		SELECT c.product_id, p.name, c.quantity, p.price::text
		FROM carts c
		JOIN products p ON c.product_id = p.id
		WHERE c.user_id = $1
		ORDER BY c.created_at
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CartLine
	for rows.Next() {
		var l CartLine
		if err := rows.Scan(&l.ProductID, &l.ProductName, &l.Quantity, &l.Price); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (t *pgTx) InsertOrder(ctx context.Context, o *Order) error {
	_, err := t.tx.Exec(ctx, `
		INSERT INTO orders (id, user_id, total_price, status, shipping_address, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,NOW(),NOW())
	`, o.ID, o.UserID, o.TotalPrice, string(o.Status), o.ShippingAddress)
	return err
}

func (t *pgTx) InsertItems(ctx context.Context, items []Item) error {
	for _, it := range items {
		if _, err := t.tx.Exec(ctx, `
			INSERT INTO order_items (id, order_id, product_id, product_name, quantity, price)
			VALUES ($1,$2,$3,$4,$5,$6)
		`, it.ID, it.OrderID, it.ProductID, it.ProductName, it.Quantity, it.Price); err != nil {
			return err
		}
	}
	return nil
}

func (t *pgTx) ClearCart(ctx context.Context, userID string) error {
	_, err := t.tx.Exec(ctx, `DELETE FROM carts WHERE user_id=$1`, userID)
	return err
}

func (s *PGStore) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, total_price::text, status, shipping_address, created_at, updated_at
		FROM orders WHERE user_id=$1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.TotalPrice, &o.Status, &o.ShippingAddress, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// GetOwned fetches one order with its items, scoped to the owner. Absent and
// not-owned are both ErrNotFound.
func (s *PGStore) GetOwned(ctx context.Context, id, userID string) (*OrderWithItems, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var o OrderWithItems
	err := s.db.QueryRow(ctx, `
		SELECT id, user_id, total_price::text, status, shipping_address, created_at, updated_at
		FROM orders WHERE id=$1 AND user_id=$2
	`, id, userID).Scan(&o.ID, &o.UserID, &o.TotalPrice, &o.Status, &o.ShippingAddress, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, ErrNotFound
	}

	rows, err := s.db.Query(ctx, `
		SELECT id, order_id, product_id, product_name, quantity, price::text
		FROM order_items WHERE order_id=$1
		ORDER BY created_at, id
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.Quantity, &it.Price); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, it)
	}
	if o.Items == nil {
		o.Items = []Item{}
	}
	return &o, rows.Err()
}

// orderRow is one row of the orders ⋈ order_items join. Item columns are
// nullable because an order can, in principle, have no surviving items.
type orderRow struct {
	order       Order
	itemID      *string
	productID   *string
	productName *string
	quantity    *int
	price       *string
}

func (s *PGStore) queryJoined(ctx context.Context, where string, args ...any) ([]OrderWithItems, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := s.db.Query(ctx, `
		SELECT o.id, o.user_id, o.total_price::text, o.status, o.shipping_address, o.created_at, o.updated_at,
		       oi.id, oi.product_id, oi.product_name, oi.quantity, oi.price::text
		FROM orders o
		LEFT JOIN order_items oi ON oi.order_id = o.id
		`+where+`
		ORDER BY o.created_at DESC, o.id, oi.created_at, oi.id
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var flat []orderRow
	for rows.Next() {
		var r orderRow
		if err := rows.Scan(&r.order.ID, &r.order.UserID, &r.order.TotalPrice, &r.order.Status,
			&r.order.ShippingAddress, &r.order.CreatedAt, &r.order.UpdatedAt,
			&r.itemID, &r.productID, &r.productName, &r.quantity, &r.price); err != nil {
			return nil, err
		}
		flat = append(flat, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return groupRows(flat), nil
}

// groupRows aggregates the flat join in one pass keyed by order id,
// preserving both order ordering and item order within each group.
func groupRows(flat []orderRow) []OrderWithItems {
	var out []OrderWithItems
	index := make(map[string]int, len(flat))
	for _, r := range flat {
		i, seen := index[r.order.ID]
		if !seen {
			i = len(out)
			index[r.order.ID] = i
			out = append(out, OrderWithItems{Order: r.order, Items: []Item{}})
		}
		if r.itemID != nil {
			out[i].Items = append(out[i].Items, Item{
				ID:          *r.itemID,
				OrderID:     r.order.ID,
				ProductID:   *r.productID,
				ProductName: *r.productName,
				Quantity:    *r.quantity,
				Price:       *r.price,
			})
		}
	}
	return out
}

func (s *PGStore) ListWithItemsByUser(ctx context.Context, userID string) ([]OrderWithItems, error) {
	return s.queryJoined(ctx, `WHERE o.user_id = $1`, userID)
}

func (s *PGStore) ListAllWithItems(ctx context.Context) ([]OrderWithItems, error) {
	return s.queryJoined(ctx, ``)
}

func (s *PGStore) UpdateStatus(ctx context.Context, id string, st Status) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := s.db.Exec(ctx, `
		UPDATE orders
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`, id, string(st))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
