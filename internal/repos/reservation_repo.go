package repos

import (
	"time"

	"github.com/jmoiron/sqlx"

	"threadline/internal/domain"
)

// ReservationRepo stores holds. Expiry is enforced at read time in
// every query that feeds a liveness decision; PurgeExpired only
// reclaims space and is never relied on for correctness.
type ReservationRepo struct{ db *sqlx.DB }

func NewReservationRepo(db *sqlx.DB) *ReservationRepo { return &ReservationRepo{db: db} }

func (r *ReservationRepo) Insert(res domain.Reservation) error {
	_, err := r.db.Exec(`
		INSERT INTO reservations(id, owner_id, product_id, size, qty, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, res.ID, res.OwnerID, res.ProductID, res.Size, res.Qty, res.ExpiresAt, res.CreatedAt)
	return err
}

// LiveQty sums hold quantities for a (product, size) key across all
// owners, counting only rows that have not expired.
func (r *ReservationRepo) LiveQty(productID, size string, now time.Time) (int, error) {
	var total int
	err := r.db.Get(&total, `
		SELECT COALESCE(SUM(qty), 0) FROM reservations
		WHERE product_id = ? AND size = ? AND expires_at > ?
	`, productID, size, rfc3339(now))
	return total, err
}

// ListLive returns an owner's non-expired holds, oldest first.
func (r *ReservationRepo) ListLive(ownerID string, now time.Time) ([]domain.Reservation, error) {
	out := []domain.Reservation{}
	err := r.db.Select(&out, `
		SELECT id, owner_id, product_id, size, qty, expires_at, created_at
		FROM reservations
		WHERE owner_id = ? AND expires_at > ?
		ORDER BY created_at, id
	`, ownerID, rfc3339(now))
	return out, err
}

// Release deletes the owner's holds matching the given filters. A nil
// size or empty productID matches everything (size "" is itself a
// valid key for unsized products, so presence is a pointer). Deleting
// nothing is not an error.
func (r *ReservationRepo) Release(ownerID, productID string, size *string) error {
	q := `DELETE FROM reservations WHERE owner_id = ?`
	args := []any{ownerID}
	if productID != "" {
		q += ` AND product_id = ?`
		args = append(args, productID)
	}
	if size != nil {
		q += ` AND size = ?`
		args = append(args, *size)
	}
	_, err := r.db.Exec(q, args...)
	return err
}

// PurgeExpired drops rows past their expiry and reports how many went.
func (r *ReservationRepo) PurgeExpired(now time.Time) (int64, error) {
	res, err := r.db.Exec(`DELETE FROM reservations WHERE expires_at <= ?`, rfc3339(now))
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return n, nil
}
