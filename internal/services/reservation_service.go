package services

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"threadline/internal/domain"
	"threadline/internal/repos"
)

const (
	DefaultHoldTTL = 10 * time.Minute
	MaxHoldTTL     = 60 * time.Minute
)

type ReservationService struct {
	Res        *repos.ReservationRepo
	Inv        *repos.InventoryRepo
	Prods      *repos.ProductRepo
	Settlement *repos.SettlementRepo

	// TTL applies when a reservation request carries no explicit ttl;
	// operator-configurable via HOLD_TTL_MINUTES.
	TTL time.Duration
}

func NewReservationService(res *repos.ReservationRepo, inv *repos.InventoryRepo, prods *repos.ProductRepo, settle *repos.SettlementRepo, holdTTL time.Duration) *ReservationService {
	if holdTTL <= 0 {
		holdTTL = DefaultHoldTTL
	}
	return &ReservationService{Res: res, Inv: inv, Prods: prods, Settlement: settle, TTL: holdTTL}
}

// Reserve places a hold for qty units of (productID, size) if raw
// stock minus all live holds covers it. The availability check is a
// read-compute-write sequence and may race with a concurrent Reserve;
// that is tolerated: holds never touch the ledger, and the ledger's
// conditional decrement re-enforces correctness at confirm time.
func (s *ReservationService) Reserve(ownerID, productID, size string, qty int, ttl time.Duration) (domain.Reservation, error) {
	if qty < 1 {
		qty = 1
	}
	if ttl <= 0 {
		ttl = s.TTL
	}
	if ttl > MaxHoldTTL {
		ttl = MaxHoldTTL
	}

	p, err := s.Prods.Get(productID)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Reservation{}, domain.ErrInvalidReference
		}
		return domain.Reservation{}, err
	}
	if !p.Sized {
		size = "" // scalar stock lives under the empty size key
	}

	raw, err := s.Inv.Qty(productID, size)
	if err != nil {
		if err == sql.ErrNoRows {
			if p.Sized {
				return domain.Reservation{}, domain.ErrInvalidSize
			}
			raw = 0
		} else {
			return domain.Reservation{}, err
		}
	}

	now := time.Now()
	reserved, err := s.Res.LiveQty(productID, size, now)
	if err != nil {
		return domain.Reservation{}, err
	}
	if raw-reserved < qty {
		return domain.Reservation{}, domain.ErrOutOfStock
	}

	res := domain.Reservation{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		ProductID: productID,
		Size:      size,
		Qty:       qty,
		ExpiresAt: now.Add(ttl).UTC().Format(time.RFC3339),
		CreatedAt: now.UTC().Format(time.RFC3339),
	}
	if err := s.Res.Insert(res); err != nil {
		return domain.Reservation{}, err
	}
	return res, nil
}

// Release drops the owner's holds matching the filters. Idempotent:
// releasing nothing succeeds.
func (s *ReservationService) Release(ownerID, productID string, size *string) error {
	return s.Res.Release(ownerID, productID, size)
}

func (s *ReservationService) ListLive(ownerID string) ([]domain.Reservation, error) {
	return s.Res.ListLive(ownerID, time.Now())
}

// Confirm settles all of the owner's live holds against the ledger in
// one transaction. See SettlementRepo.ConfirmReservations.
func (s *ReservationService) Confirm(ownerID string) ([]domain.Reservation, error) {
	return s.Settlement.ConfirmReservations(ownerID, time.Now())
}

// Sweep purges expired rows; called from a background ticker. Purely a
// storage optimization, liveness is filtered at read time regardless.
func (s *ReservationService) Sweep() (int64, error) {
	return s.Res.PurgeExpired(time.Now())
}
