package repos_test

import (
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"threadline/internal/repos"
)

func memdbCart(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	db.SetMaxOpenConns(1)
	schema := `
	CREATE TABLE carts(id TEXT PRIMARY KEY, owner_id TEXT UNIQUE NOT NULL, updated_at TEXT);
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatal(err)
	}
	return db
}

func TestEnsureCartIdempotent(t *testing.T) {
	db := memdbCart(t)
	r := repos.NewCartRepo(db)

	first, err := r.EnsureCart("u1")
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.EnsureCart("u1")
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Fatalf("want the same cart id on repeat calls, got %q then %q", first, second)
	}
}

// A storage failure on the lookup must surface as-is, not as a
// constraint violation from a blind insert attempt.
func TestEnsureCartSurfacesReadErrors(t *testing.T) {
	db := memdbCart(t)
	r := repos.NewCartRepo(db)
	_ = db.Close()

	_, err := r.EnsureCart("u1")
	if err == nil {
		t.Fatal("want an error from a closed store")
	}
	if strings.Contains(strings.ToUpper(err.Error()), "UNIQUE") {
		t.Fatalf("read failure must not turn into a constraint error, got %v", err)
	}
}
