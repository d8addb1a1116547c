package handlers

import (
	"time"

	"github.com/jmoiron/sqlx"

	"threadline/internal/repos"
	"threadline/internal/services"
)

type Deps struct {
	AuthHandler        *AuthHandler
	ProductHandler     *ProductHandler
	InventoryHandler   *InventoryHandler
	CartHandler        *CartHandler
	OrderHandler       *OrderHandler
	ReservationHandler *ReservationHandler
	AdminHandler       *AdminHandler

	Reservations *services.ReservationService
}

func NewDeps(db *sqlx.DB, auth *services.AuthService, holdTTL time.Duration) *Deps {
	prodRepo := repos.NewProductRepo(db)
	invRepo := repos.NewInventoryRepo(db)
	resRepo := repos.NewReservationRepo(db)
	cartRepo := repos.NewCartRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	settleRepo := repos.NewSettlementRepo(db)

	catalogSvc := services.NewCatalogService(prodRepo, invRepo)
	invSvc := services.NewInventoryService(invRepo, resRepo)
	cartSvc := services.NewCartService(cartRepo, prodRepo)
	resSvc := services.NewReservationService(resRepo, invRepo, prodRepo, settleRepo, holdTTL)
	orderSvc := services.NewOrderService(settleRepo, orderRepo)

	return &Deps{
		AuthHandler:        &AuthHandler{Auth: auth},
		ProductHandler:     &ProductHandler{Catalog: catalogSvc},
		InventoryHandler:   &InventoryHandler{Inv: invSvc},
		CartHandler:        &CartHandler{Cart: cartSvc},
		OrderHandler:       &OrderHandler{Order: orderSvc},
		ReservationHandler: &ReservationHandler{Res: resSvc},
		AdminHandler:       &AdminHandler{Inv: invRepo, Orders: orderRepo},
		Reservations:       resSvc,
	}
}
