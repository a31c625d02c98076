package order

import (
	"context"
	"errors"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyCart     = errors.New("cart is empty")
	ErrInvalidStatus = errors.New("invalid order status")
)

type Service struct {
	store Store
}

func NewService(store Store) *Service { return &Service{store: store} }

// Checkout converts the user's cart into a durable order inside a single
// transaction: read the cart with live prices, write the order and its
// snapshots, clear the cart. Any failure rolls the whole thing back and
// leaves the cart untouched.
//
// Two simultaneous checkouts by the same user are not serialized here and
// can both observe the same cart snapshot; see DESIGN.md.
func (s *Service) Checkout(ctx context.Context, userID, shippingAddress string) (string, error) {
	orderID := uuid.NewString()
	err := s.store.InTx(ctx, func(tx Tx) error {
		lines, err := tx.CartLines(ctx, userID)
		if err != nil {
			return pkgerrors.Wrap(err, "read cart")
		}
		if len(lines) == 0 {
			return ErrEmptyCart
		}

		total := decimal.Zero
		items := make([]Item, 0, len(lines))
		for _, ln := range lines {
			price, err := decimal.NewFromString(ln.Price)
			if err != nil {
				return pkgerrors.Wrapf(err, "bad price for product %s", ln.ProductID)
			}
			total = total.Add(price.Mul(decimal.NewFromInt(int64(ln.Quantity))))
			items = append(items, Item{
				ID:          uuid.NewString(),
				OrderID:     orderID,
				ProductID:   ln.ProductID,
				ProductName: ln.ProductName,
				Quantity:    ln.Quantity,
				Price:       ln.Price,
			})
		}

		o := &Order{
			ID:              orderID,
			UserID:          userID,
			TotalPrice:      total.StringFixed(2),
			Status:          StatusPending,
			ShippingAddress: shippingAddress,
		}
		if err := tx.InsertOrder(ctx, o); err != nil {
			return pkgerrors.Wrap(err, "insert order")
		}
		if err := tx.InsertItems(ctx, items); err != nil {
			return pkgerrors.Wrap(err, "insert order items")
		}
		if err := tx.ClearCart(ctx, userID); err != nil {
			return pkgerrors.Wrap(err, "clear cart")
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return orderID, nil
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	return s.store.ListByUser(ctx, userID)
}

func (s *Service) GetOwned(ctx context.Context, id, userID string) (*OrderWithItems, error) {
	return s.store.GetOwned(ctx, id, userID)
}

func (s *Service) ListWithItemsByUser(ctx context.Context, userID string) ([]OrderWithItems, error) {
	return s.store.ListWithItemsByUser(ctx, userID)
}

func (s *Service) ListAllWithItems(ctx context.Context) ([]OrderWithItems, error) {
	return s.store.ListAllWithItems(ctx)
}

// UpdateStatus validates membership in the status set and applies it. The
// transition table is intentionally permissive.
func (s *Service) UpdateStatus(ctx context.Context, id, raw string) error {
	st, err := ParseStatus(raw)
	if err != nil {
		return ErrInvalidStatus
	}
	return s.store.UpdateStatus(ctx, id, st)
}
