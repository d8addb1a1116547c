package repos

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"threadline/internal/domain"
)

// InventoryRepo is the inventory ledger: the only writer of stock
// counts, and only through conditional atomic updates.
type InventoryRepo struct{ db *sqlx.DB }

func NewInventoryRepo(db *sqlx.DB) *InventoryRepo { return &InventoryRepo{db: db} }

// Row used by admin inventory pages
type InventoryRow struct {
	ProductID string `db:"product_id"`
	Title     string `db:"title"`
	Size      string `db:"size"`
	Qty       int    `db:"qty"`
}

// ListAll returns all ledger rows with product titles (for admin).
func (r *InventoryRepo) ListAll() ([]InventoryRow, error) {
	var rows []InventoryRow
	err := r.db.Select(&rows, `
		SELECT i.product_id, p.title, i.size, i.qty
		FROM inventory i
		JOIN products p ON p.id = i.product_id
		ORDER BY p.title, i.size
	`)
	return rows, err
}

// Qty returns the raw stock for (productID, size), not adjusted for
// reservations. Returns sql.ErrNoRows when no ledger row exists.
func (r *InventoryRepo) Qty(productID, size string) (int, error) {
	var qty int
	err := r.db.Get(&qty, `
		SELECT qty FROM inventory
		WHERE product_id = ? AND size = ?
	`, productID, size)
	if err != nil {
		return 0, err
	}
	return qty, nil
}

// Sizes returns all ledger rows for a product, ordered by size.
func (r *InventoryRepo) Sizes(productID string) ([]domain.SizeStock, error) {
	var out []domain.SizeStock
	err := r.db.Select(&out, `
		SELECT size, qty FROM inventory
		WHERE product_id = ?
		ORDER BY size
	`, productID)
	return out, err
}

// Decrement subtracts qty units in a single conditional write: the
// update only applies when the row still holds at least qty, so there
// is no read-check-write window for concurrent purchases to exploit.
func (r *InventoryRepo) Decrement(productID, size string, qty int) error {
	return decrementStock(r.db, productID, size, qty)
}

// Increment is the compensation primitive (admin corrections, reverting
// a decrement outside a transaction). It fails only when no ledger row
// exists for the key.
func (r *InventoryRepo) Increment(productID, size string, qty int) error {
	res, err := r.db.Exec(`
		UPDATE inventory
		SET qty = qty + ?, updated_at = ?
		WHERE product_id = ? AND size = ?
	`, qty, rfc3339(time.Now()), productID, size)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return classifyMissingRow(r.db, productID, size)
	}
	return nil
}

// UpsertQty sets qty for (productID, size), creating the row if needed.
func (r *InventoryRepo) UpsertQty(productID, size string, qty int) error {
	_, err := r.db.Exec(`
		INSERT INTO inventory(product_id, size, qty, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(product_id, size) DO UPDATE SET qty = excluded.qty, updated_at = excluded.updated_at
	`, productID, size, qty, rfc3339(time.Now()))
	return err
}

// decrementStock runs the conditional decrement against a db or an
// open transaction. On zero rows affected it distinguishes a missing
// product, a size the product does not track, and a plain shortfall.
func decrementStock(e sqlx.Ext, productID, size string, qty int) error {
	res, err := e.Exec(`
		UPDATE inventory
		SET qty = qty - ?, updated_at = ?
		WHERE product_id = ? AND size = ? AND qty >= ?
	`, qty, rfc3339(time.Now()), productID, size, qty)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		if err := classifyMissingRow(e, productID, size); err != nil {
			return err
		}
		return domain.ErrInsufficientStock
	}
	return nil
}

// classifyMissingRow returns ErrInvalidReference when the product does
// not exist, ErrInvalidSize when the product exists but has no ledger
// row for the requested size, and nil when the row is present.
func classifyMissingRow(e sqlx.Ext, productID, size string) error {
	var exists int
	if err := sqlx.Get(e, &exists, `SELECT 1 FROM products WHERE id = ?`, productID); err != nil {
		if err == sql.ErrNoRows {
			return domain.ErrInvalidReference
		}
		return err
	}
	if err := sqlx.Get(e, &exists, `SELECT 1 FROM inventory WHERE product_id = ? AND size = ?`, productID, size); err != nil {
		if err == sql.ErrNoRows {
			return domain.ErrInvalidSize
		}
		return err
	}
	return nil
}
