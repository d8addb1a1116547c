package services

import (
	"database/sql"

	"threadline/internal/domain"
	"threadline/internal/repos"
)

type CartService struct {
	Carts *repos.CartRepo
	Prods *repos.ProductRepo
}

func NewCartService(carts *repos.CartRepo, prods *repos.ProductRepo) *CartService {
	return &CartService{Carts: carts, Prods: prods}
}

// Add puts qty units of (productID, size) in the owner's cart. The
// size is normalized to "" for unsized products so cart lines always
// match a ledger key at settlement.
func (s *CartService) Add(ownerID, productID, size string, qty int) error {
	if qty < 1 {
		qty = 1
	}
	cartID, err := s.Carts.EnsureCart(ownerID)
	if err != nil {
		return err
	}
	p, err := s.Prods.Get(productID)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.ErrInvalidReference
		}
		return err
	}
	if !p.Sized {
		size = ""
	}
	return s.Carts.UpsertItem(cartID, productID, size, qty, p.Price)
}

func (s *CartService) Remove(ownerID, productID, size string) error {
	cartID, err := s.Carts.EnsureCart(ownerID)
	if err != nil {
		return err
	}
	return s.Carts.RemoveItem(cartID, productID, size)
}

func (s *CartService) Clear(ownerID string) error {
	cartID, err := s.Carts.EnsureCart(ownerID)
	if err != nil {
		return err
	}
	return s.Carts.Clear(cartID)
}

type CartView struct {
	Items []repos.CartItemRow `json:"items"`
	Total float64             `json:"total"`
}

func (s *CartService) View(ownerID string) (CartView, error) {
	cartID, err := s.Carts.EnsureCart(ownerID)
	if err != nil {
		return CartView{}, err
	}
	items, total, err := s.Carts.View(cartID)
	if err != nil {
		return CartView{}, err
	}
	return CartView{Items: items, Total: total}, nil
}
