package services

import (
	"database/sql"

	"threadline/internal/domain"
	"threadline/internal/repos"
)

type CatalogService struct {
	Prods *repos.ProductRepo
	Inv   *repos.InventoryRepo
}

func NewCatalogService(prods *repos.ProductRepo, inv *repos.InventoryRepo) *CatalogService {
	return &CatalogService{Prods: prods, Inv: inv}
}

type ProductDetail struct {
	domain.Product
	SizeStock []domain.SizeStock `json:"sizeStock"`
}

func (s *CatalogService) GetProduct(id string) (ProductDetail, error) {
	p, err := s.Prods.Get(id)
	if err != nil {
		if err == sql.ErrNoRows {
			return ProductDetail{}, domain.ErrInvalidReference
		}
		return ProductDetail{}, err
	}
	sizes, err := s.Inv.Sizes(id)
	if err != nil {
		return ProductDetail{}, err
	}
	return ProductDetail{Product: p, SizeStock: sizes}, nil
}

func (s *CatalogService) ListProducts(page, pageSize int) ([]domain.Product, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	return s.Prods.List(pageSize, (page-1)*pageSize)
}
