package services_test

import (
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"threadline/internal/domain"
	"threadline/internal/repos"
	"threadline/internal/services"
)

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	db.SetMaxOpenConns(1)
	schema := `
	CREATE TABLE products(id TEXT PRIMARY KEY, title TEXT, description TEXT,
	  price NUMERIC, sized INTEGER, active INTEGER DEFAULT 1, created_at TEXT, updated_at TEXT);
	CREATE TABLE inventory(product_id TEXT, size TEXT DEFAULT '', qty INTEGER CHECK (qty >= 0),
	  updated_at TEXT, PRIMARY KEY(product_id, size));
	CREATE TABLE reservations(id TEXT PRIMARY KEY, owner_id TEXT, product_id TEXT,
	  size TEXT DEFAULT '', qty INTEGER, expires_at TEXT, created_at TEXT);
	CREATE TABLE carts(id TEXT PRIMARY KEY, owner_id TEXT UNIQUE NOT NULL, updated_at TEXT);
	CREATE TABLE cart_items(cart_id TEXT, product_id TEXT, size TEXT DEFAULT '', qty INTEGER,
	  price_at_add NUMERIC, created_at TEXT, updated_at TEXT, PRIMARY KEY(cart_id, product_id, size));
	CREATE TABLE orders(id TEXT PRIMARY KEY, owner_id TEXT, total NUMERIC, status TEXT,
	  payment_ref TEXT, created_at TEXT);
	CREATE TABLE order_items(order_id TEXT, product_id TEXT, title TEXT, size TEXT DEFAULT '',
	  qty INTEGER, price NUMERIC, PRIMARY KEY(order_id, product_id, size));

	INSERT INTO products(id,title,price,sized) VALUES
	  ('tee-classic','Classic Crew Tee',24.50,1),
	  ('hoodie-zip','Zip Hoodie',59.00,1),
	  ('tote-canvas','Canvas Tote',18.00,0);
	INSERT INTO inventory(product_id,size,qty) VALUES
	  ('tee-classic','M',5),
	  ('hoodie-zip','M',4),
	  ('tote-canvas','',10);
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatal(err)
	}
	return db
}

type env struct {
	db    *sqlx.DB
	inv   *repos.InventoryRepo
	cart  *services.CartService
	order *services.OrderService
	res   *services.ReservationService
}

func newEnv(t *testing.T) env {
	t.Helper()
	db := memdb(t)
	prodRepo := repos.NewProductRepo(db)
	invRepo := repos.NewInventoryRepo(db)
	resRepo := repos.NewReservationRepo(db)
	cartRepo := repos.NewCartRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	settleRepo := repos.NewSettlementRepo(db)
	return env{
		db:    db,
		inv:   invRepo,
		cart:  services.NewCartService(cartRepo, prodRepo),
		order: services.NewOrderService(settleRepo, orderRepo),
		res:   services.NewReservationService(resRepo, invRepo, prodRepo, settleRepo, 0),
	}
}

func mustQty(t *testing.T, inv *repos.InventoryRepo, pid, size string) int {
	t.Helper()
	qty, err := inv.Qty(pid, size)
	if err != nil {
		t.Fatal(err)
	}
	return qty
}

func TestPlaceFromCart(t *testing.T) {
	e := newEnv(t)
	owner := "u-mira"

	if err := e.cart.Add(owner, "tee-classic", "M", 2); err != nil {
		t.Fatal(err)
	}
	// size values on unsized products are normalized away
	if err := e.cart.Add(owner, "tote-canvas", "L", 1); err != nil {
		t.Fatal(err)
	}

	order, items, err := e.order.PlaceFromCart(owner, "pay-123")
	if err != nil {
		t.Fatal(err)
	}
	if order.Status != domain.OrderPaid {
		t.Fatalf("want paid order, got %s", order.Status)
	}
	want := 2*24.50 + 18.00
	if order.Total != want {
		t.Fatalf("want total %.2f, got %.2f", want, order.Total)
	}
	if len(items) != 2 {
		t.Fatalf("want 2 items, got %d", len(items))
	}

	if got := mustQty(t, e.inv, "tee-classic", "M"); got != 3 {
		t.Fatalf("want tee M stock 3, got %d", got)
	}
	if got := mustQty(t, e.inv, "tote-canvas", ""); got != 9 {
		t.Fatalf("want tote stock 9, got %d", got)
	}

	cv, err := e.cart.View(owner)
	if err != nil {
		t.Fatal(err)
	}
	if len(cv.Items) != 0 {
		t.Fatalf("cart must be cleared after settlement, got %+v", cv.Items)
	}
}

// Order items are snapshots: later catalog edits must not change them.
func TestOrderItemsAreSnapshots(t *testing.T) {
	e := newEnv(t)
	owner := "u-mira"

	if err := e.cart.Add(owner, "tee-classic", "M", 1); err != nil {
		t.Fatal(err)
	}
	order, _, err := e.order.PlaceFromCart(owner, "")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := e.db.Exec(`UPDATE products SET price=99.00, title='Renamed Tee' WHERE id='tee-classic'`); err != nil {
		t.Fatal(err)
	}

	got, items, err := e.order.Get(order.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Total != 24.50 {
		t.Fatalf("stored total must not follow price change, got %.2f", got.Total)
	}
	if items[0].Price != 24.50 || items[0].Title != "Classic Crew Tee" {
		t.Fatalf("item snapshot changed: %+v", items[0])
	}
}

// A failure on any line must leave stock and cart exactly as before.
func TestPlaceFromCartRollsBackOnShortfall(t *testing.T) {
	e := newEnv(t)
	owner := "u-mira"

	if err := e.cart.Add(owner, "tee-classic", "M", 2); err != nil {
		t.Fatal(err)
	}
	// hoodie M has 4 in stock; ask for 6 so this line fails after the
	// tee line already decremented inside the transaction
	if err := e.cart.Add(owner, "hoodie-zip", "M", 6); err != nil {
		t.Fatal(err)
	}

	_, _, err := e.order.PlaceFromCart(owner, "")
	if !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("want ErrInsufficientStock, got %v", err)
	}

	if got := mustQty(t, e.inv, "tee-classic", "M"); got != 5 {
		t.Fatalf("tee stock must be restored to 5, got %d", got)
	}
	if got := mustQty(t, e.inv, "hoodie-zip", "M"); got != 4 {
		t.Fatalf("hoodie stock must stay 4, got %d", got)
	}

	cv, err := e.cart.View(owner)
	if err != nil {
		t.Fatal(err)
	}
	if len(cv.Items) != 2 {
		t.Fatalf("cart must keep both lines after failed settlement, got %d", len(cv.Items))
	}

	var orders int
	if err := e.db.Get(&orders, `SELECT COUNT(*) FROM orders`); err != nil {
		t.Fatal(err)
	}
	if orders != 0 {
		t.Fatalf("no order must be created on failure, got %d", orders)
	}
}

func TestPlaceFromCartEmpty(t *testing.T) {
	e := newEnv(t)
	if _, _, err := e.order.PlaceFromCart("u-nobody", ""); !errors.Is(err, domain.ErrEmptyCart) {
		t.Fatalf("want ErrEmptyCart, got %v", err)
	}
}

func TestConfirmWithNoHolds(t *testing.T) {
	e := newEnv(t)
	if _, err := e.res.Confirm("u-nobody"); !errors.Is(err, domain.ErrNothingToConfirm) {
		t.Fatalf("want ErrNothingToConfirm, got %v", err)
	}
}

// A failed confirm leaves the holds intact so the caller can release
// or retry.
func TestConfirmRollsBackAndKeepsHolds(t *testing.T) {
	e := newEnv(t)
	owner := "u-mira"

	if _, err := e.res.Reserve(owner, "tee-classic", "M", 3, 10*time.Minute); err != nil {
		t.Fatal(err)
	}
	// stock drops below the held quantity before confirmation
	if err := e.inv.UpsertQty("tee-classic", "M", 2); err != nil {
		t.Fatal(err)
	}

	if _, err := e.res.Confirm(owner); !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("want ErrInsufficientStock, got %v", err)
	}
	if got := mustQty(t, e.inv, "tee-classic", "M"); got != 2 {
		t.Fatalf("stock must stay 2, got %d", got)
	}
	live, err := e.res.ListLive(owner)
	if err != nil {
		t.Fatal(err)
	}
	if len(live) != 1 {
		t.Fatalf("hold must survive failed confirm, got %d", len(live))
	}
}
