package services

import (
	"time"

	"github.com/google/uuid"

	"threadline/internal/domain"
	"threadline/internal/repos"
)

type OrderService struct {
	Settlement *repos.SettlementRepo
	Orders     *repos.OrderRepo
}

func NewOrderService(settle *repos.SettlementRepo, orders *repos.OrderRepo) *OrderService {
	return &OrderService{Settlement: settle, Orders: orders}
}

// PlaceFromCart settles the owner's cart into a paid order. All stock
// decrements, the order insert and the cart wipe ride one transaction;
// any failure leaves cart and ledger untouched.
func (s *OrderService) PlaceFromCart(ownerID, paymentRef string) (domain.Order, []domain.OrderItem, error) {
	return s.Settlement.SettleCart(ownerID, uuid.NewString(), paymentRef, time.Now())
}

func (s *OrderService) Get(orderID string) (domain.Order, []domain.OrderItem, error) {
	return s.Orders.Get(orderID)
}

func (s *OrderService) History(ownerID string) ([]domain.Order, error) {
	return s.Orders.ListByOwner(ownerID)
}
