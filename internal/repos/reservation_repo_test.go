package repos_test

import (
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"threadline/internal/domain"
	"threadline/internal/repos"
)

func memdbRes(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	db.SetMaxOpenConns(1)
	schema := `
	CREATE TABLE reservations(id TEXT PRIMARY KEY, owner_id TEXT, product_id TEXT,
	  size TEXT DEFAULT '', qty INTEGER, expires_at TEXT, created_at TEXT);
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatal(err)
	}
	return db
}

func hold(id, owner, pid, size string, qty int, expires time.Time) domain.Reservation {
	return domain.Reservation{
		ID: id, OwnerID: owner, ProductID: pid, Size: size, Qty: qty,
		ExpiresAt: expires.UTC().Format(time.RFC3339),
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

func TestLiveQtyIgnoresExpired(t *testing.T) {
	db := memdbRes(t)
	r := repos.NewReservationRepo(db)
	now := time.Now()

	if err := r.Insert(hold("r1", "u1", "tee-classic", "M", 3, now.Add(10*time.Minute))); err != nil {
		t.Fatal(err)
	}
	if err := r.Insert(hold("r2", "u2", "tee-classic", "M", 4, now.Add(-1*time.Minute))); err != nil {
		t.Fatal(err)
	}
	if err := r.Insert(hold("r3", "u3", "tee-classic", "L", 2, now.Add(10*time.Minute))); err != nil {
		t.Fatal(err)
	}

	total, err := r.LiveQty("tee-classic", "M", now)
	if err != nil {
		t.Fatal(err)
	}
	if total != 3 {
		t.Fatalf("want live qty 3 (expired and other sizes excluded), got %d", total)
	}

	live, err := r.ListLive("u2", now)
	if err != nil {
		t.Fatal(err)
	}
	if len(live) != 0 {
		t.Fatalf("expired hold must not be listed, got %+v", live)
	}
}

func TestReleaseFiltersAndIdempotency(t *testing.T) {
	db := memdbRes(t)
	r := repos.NewReservationRepo(db)
	now := time.Now()
	exp := now.Add(10 * time.Minute)

	_ = r.Insert(hold("r1", "u1", "tee-classic", "M", 1, exp))
	_ = r.Insert(hold("r2", "u1", "tee-classic", "L", 1, exp))
	_ = r.Insert(hold("r3", "u1", "tote-canvas", "", 1, exp))
	_ = r.Insert(hold("r4", "u2", "tee-classic", "M", 1, exp))

	// product + size filter
	size := "M"
	if err := r.Release("u1", "tee-classic", &size); err != nil {
		t.Fatal(err)
	}
	live, _ := r.ListLive("u1", now)
	if len(live) != 2 {
		t.Fatalf("want 2 holds left for u1, got %d", len(live))
	}

	// product only
	if err := r.Release("u1", "tee-classic", nil); err != nil {
		t.Fatal(err)
	}
	live, _ = r.ListLive("u1", now)
	if len(live) != 1 || live[0].ProductID != "tote-canvas" {
		t.Fatalf("want only the tote hold left, got %+v", live)
	}

	// no filters: everything for the owner; running it twice is a no-op
	if err := r.Release("u1", "", nil); err != nil {
		t.Fatal(err)
	}
	if err := r.Release("u1", "", nil); err != nil {
		t.Fatalf("second release must succeed, got %v", err)
	}
	live, _ = r.ListLive("u1", now)
	if len(live) != 0 {
		t.Fatalf("want no holds for u1, got %d", len(live))
	}

	// other owners untouched
	live, _ = r.ListLive("u2", now)
	if len(live) != 1 {
		t.Fatalf("u2 holds must survive, got %d", len(live))
	}
}

func TestPurgeExpired(t *testing.T) {
	db := memdbRes(t)
	r := repos.NewReservationRepo(db)
	now := time.Now()

	_ = r.Insert(hold("r1", "u1", "tee-classic", "M", 1, now.Add(-1*time.Hour)))
	_ = r.Insert(hold("r2", "u1", "tee-classic", "M", 1, now.Add(1*time.Hour)))

	n, err := r.PurgeExpired(now)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("want 1 purged, got %d", n)
	}
	live, _ := r.ListLive("u1", now)
	if len(live) != 1 {
		t.Fatalf("live hold must survive purge, got %d", len(live))
	}
}
