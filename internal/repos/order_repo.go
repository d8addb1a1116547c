package repos

import (
	"github.com/jmoiron/sqlx"

	"threadline/internal/domain"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

func (r *OrderRepo) Get(orderID string) (domain.Order, []domain.OrderItem, error) {
	var o domain.Order
	if err := r.db.Get(&o, `
		SELECT id, owner_id, total, status, COALESCE(payment_ref,'') AS payment_ref, created_at
		FROM orders WHERE id = ?
	`, orderID); err != nil {
		return domain.Order{}, nil, err
	}

	var items []domain.OrderItem
	if err := r.db.Select(&items, `
		SELECT order_id, product_id, title, size, qty, price
		FROM order_items
		WHERE order_id = ?
		ORDER BY title, size
	`, orderID); err != nil {
		return domain.Order{}, nil, err
	}

	return o, items, nil
}

func (r *OrderRepo) ListByOwner(ownerID string) ([]domain.Order, error) {
	out := []domain.Order{}
	err := r.db.Select(&out, `
		SELECT id, owner_id, total, status, COALESCE(payment_ref,'') AS payment_ref, created_at
		FROM orders
		WHERE owner_id = ?
		ORDER BY created_at DESC, id
	`, ownerID)
	return out, err
}

func (r *OrderRepo) ListLatest(limit int) ([]domain.Order, error) {
	if limit <= 0 {
		limit = 100
	}
	out := []domain.Order{}
	err := r.db.Select(&out, `
		SELECT id, owner_id, total, status, COALESCE(payment_ref,'') AS payment_ref, created_at
		FROM orders
		ORDER BY created_at DESC, id
		LIMIT ?
	`, limit)
	return out, err
}

func (r *OrderRepo) UpdateStatus(id string, status domain.OrderStatus) error {
	_, err := r.db.Exec(`UPDATE orders SET status = ? WHERE id = ?`, status, id)
	return err
}
