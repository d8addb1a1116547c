package services

import (
	"database/sql"
	"time"

	"threadline/internal/domain"
	"threadline/internal/repos"
)

type InventoryService struct {
	Inv *repos.InventoryRepo
	Res *repos.ReservationRepo
}

func NewInventoryService(inv *repos.InventoryRepo, res *repos.ReservationRepo) *InventoryService {
	return &InventoryService{Inv: inv, Res: res}
}

// CheckAvailability reports sellable quantity for (productID, size):
// raw ledger stock minus live holds, bucketed into
// IN_STOCK / LOW_STOCK / OUT_OF_STOCK.
func (s *InventoryService) CheckAvailability(productID, size string) (domain.Availability, error) {
	qty, err := s.Inv.Qty(productID, size)
	if err != nil {
		// No ledger row: treat as zero rather than an error.
		if err == sql.ErrNoRows {
			return domain.Availability{Status: "OUT_OF_STOCK", Qty: 0}, nil
		}
		return domain.Availability{}, err
	}

	reserved, err := s.Res.LiveQty(productID, size, time.Now())
	if err != nil {
		return domain.Availability{}, err
	}
	sellable := qty - reserved
	if sellable < 0 {
		sellable = 0
	}

	status := "OUT_OF_STOCK"
	switch {
	case sellable >= 5:
		status = "IN_STOCK"
	case sellable > 0:
		status = "LOW_STOCK"
	}
	return domain.Availability{Status: status, Qty: sellable}, nil
}
