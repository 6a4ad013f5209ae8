//go:build integration_pg

package migrate

import (
	"context"
	"database/sql"
	"testing"

	"ticketdesk/internal/platform/store/storetest"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("pgx", storetest.Postgres(t))
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestMigrate_UpStatusDown(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()

	if err := Up(ctx, db); err != nil {
		t.Fatalf("Up: %v", err)
	}
	v, err := Status(ctx, db)
	if err != nil || v != 2 {
		t.Fatalf("Status after Up = %d, %v", v, err)
	}

	// schema accepts a ticket with defaults applied
	var status, priority string
	err = db.QueryRowContext(ctx, `
		INSERT INTO tickets (id, title, description)
		VALUES ('1b4e28ba-2fa1-11d2-883f-0016d3cca427', 'Hello', 'twenty characters long')
		RETURNING status, priority`).Scan(&status, &priority)
	if err != nil || status != "OPEN" || priority != "MEDIUM" {
		t.Fatalf("insert defaults: %s %s %v", status, priority, err)
	}

	if err := Down(ctx, db); err != nil {
		t.Fatalf("Down: %v", err)
	}
	if v, _ := Status(ctx, db); v != 1 {
		t.Fatalf("Status after Down = %d", v)
	}

	if err := Reset(ctx, db); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if v, _ := Status(ctx, db); v != 0 {
		t.Fatalf("Status after Reset = %d", v)
	}
}
