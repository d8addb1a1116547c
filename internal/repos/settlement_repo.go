package repos

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"threadline/internal/domain"
)

// SettlementRepo turns cart contents or live reservations into
// committed stock decrements. Each entry point is one transaction:
// every decrement plus the clearing mutation commit together or not at
// all, so a failure can never leave stock reduced while the cart or
// the holds still stand.
type SettlementRepo struct{ db *sqlx.DB }

func NewSettlementRepo(db *sqlx.DB) *SettlementRepo { return &SettlementRepo{db: db} }

type cartLine struct {
	ProductID string  `db:"product_id"`
	Size      string  `db:"size"`
	Qty       int     `db:"qty"`
	Title     string  `db:"title"`
	Price     float64 `db:"price"`
	Sized     bool    `db:"sized"`
}

// SettleCart loads the owner's cart, conditionally decrements stock
// for every line, writes the order with snapshot items (title/price as
// of now) and clears the cart. The first failing line aborts the whole
// transaction and surfaces its reason.
func (r *SettlementRepo) SettleCart(ownerID, orderID, paymentRef string, now time.Time) (domain.Order, []domain.OrderItem, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return domain.Order{}, nil, fmt.Errorf("%w: %v", domain.ErrTransactionAborted, err)
	}
	defer func() { _ = tx.Rollback() }()

	var lines []cartLine
	if err := tx.Select(&lines, `
		SELECT ci.product_id, ci.size, ci.qty, p.title, p.price, p.sized
		FROM cart_items ci
		JOIN carts c ON c.id = ci.cart_id
		JOIN products p ON p.id = ci.product_id
		WHERE c.owner_id = ?
		ORDER BY p.title, ci.size
	`, ownerID); err != nil {
		return domain.Order{}, nil, err
	}
	if len(lines) == 0 {
		return domain.Order{}, nil, domain.ErrEmptyCart
	}

	total := 0.0
	items := make([]domain.OrderItem, 0, len(lines))
	for _, ln := range lines {
		size := ln.Size
		if !ln.Sized {
			size = ""
		}
		if err := decrementStock(tx, ln.ProductID, size, ln.Qty); err != nil {
			return domain.Order{}, nil, err
		}
		total += ln.Price * float64(ln.Qty)
		items = append(items, domain.OrderItem{
			OrderID:   orderID,
			ProductID: ln.ProductID,
			Title:     ln.Title,
			Size:      size,
			Qty:       ln.Qty,
			Price:     ln.Price,
		})
	}

	order := domain.Order{
		ID:         orderID,
		OwnerID:    ownerID,
		Total:      total,
		Status:     domain.OrderPaid,
		PaymentRef: paymentRef,
		CreatedAt:  rfc3339(now),
	}
	if _, err := tx.Exec(`
		INSERT INTO orders(id, owner_id, total, status, payment_ref, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, order.ID, order.OwnerID, order.Total, order.Status, order.PaymentRef, order.CreatedAt); err != nil {
		return domain.Order{}, nil, err
	}
	for _, it := range items {
		if _, err := tx.Exec(`
			INSERT INTO order_items(order_id, product_id, title, size, qty, price)
			VALUES (?, ?, ?, ?, ?, ?)
		`, it.OrderID, it.ProductID, it.Title, it.Size, it.Qty, it.Price); err != nil {
			return domain.Order{}, nil, err
		}
	}
	if _, err := tx.Exec(`
		DELETE FROM cart_items
		WHERE cart_id IN (SELECT id FROM carts WHERE owner_id = ?)
	`, ownerID); err != nil {
		return domain.Order{}, nil, err
	}

	if err := tx.Commit(); err != nil {
		return domain.Order{}, nil, fmt.Errorf("%w: %v", domain.ErrTransactionAborted, err)
	}
	return order, items, nil
}

// ConfirmReservations commits all of an owner's live holds: stock is
// decremented once per (product, size) group and exactly the confirmed
// rows are deleted. On any shortfall nothing commits and the holds
// survive, so the caller may release or retry. No order record is
// written here; order bookkeeping belongs to the cart path.
func (r *SettlementRepo) ConfirmReservations(ownerID string, now time.Time) ([]domain.Reservation, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTransactionAborted, err)
	}
	defer func() { _ = tx.Rollback() }()

	var live []domain.Reservation
	if err := tx.Select(&live, `
		SELECT id, owner_id, product_id, size, qty, expires_at, created_at
		FROM reservations
		WHERE owner_id = ? AND expires_at > ?
		ORDER BY product_id, size, created_at
	`, ownerID, rfc3339(now)); err != nil {
		return nil, err
	}
	if len(live) == 0 {
		return nil, domain.ErrNothingToConfirm
	}

	// Group by (product, size); live is already ordered by the key.
	type key struct{ pid, size string }
	grouped := map[key]int{}
	order := []key{}
	ids := make([]string, 0, len(live))
	for _, res := range live {
		k := key{res.ProductID, res.Size}
		if _, seen := grouped[k]; !seen {
			order = append(order, k)
		}
		grouped[k] += res.Qty
		ids = append(ids, res.ID)
	}

	for _, k := range order {
		if err := decrementStock(tx, k.pid, k.size, grouped[k]); err != nil {
			return nil, err
		}
	}

	query, args, err := sqlx.In(`DELETE FROM reservations WHERE id IN (?)`, ids)
	if err != nil {
		return nil, err
	}
	if _, err := tx.Exec(query, args...); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTransactionAborted, err)
	}
	return live, nil
}
