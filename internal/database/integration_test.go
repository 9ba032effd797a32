package database

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestDB connects to the throwaway database named by MYSQL_TEST_DSN
// (e.g. "root:root@tcp(127.0.0.1:3306)/komi_test?parseTime=true").  Its
// tables are dropped and recreated.
func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	dsn := os.Getenv("MYSQL_TEST_DSN")
	if dsn == "" {
		t.Skip("MYSQL_TEST_DSN not set")
	}
	db, err := sqlx.Open("mysql", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	for _, tbl := range []string{"reviews", "place_images", "places", "categories"} {
		_, err := db.ExecContext(ctx, "DROP TABLE IF EXISTS "+tbl)
		require.NoError(t, err)
	}
	require.NoError(t, Migrate(ctx, db))
	require.NoError(t, Migrate(ctx, db), "migrations must be re-runnable")
	return db
}

func count(t *testing.T, db *sqlx.DB, q string, args ...any) int {
	t.Helper()
	var n int
	require.NoError(t, db.Get(&n, q, args...))
	return n
}

func TestSchemaConstraints(t *testing.T) {
	db := openTestDB(t)

	res, err := db.Exec(`INSERT INTO categories (name, name_ru, slug) VALUES ('Nature', 'Природа', 'nature')`)
	require.NoError(t, err)
	catID, _ := res.LastInsertId()

	res, err = db.Exec(`INSERT INTO places (name, name_ru, description, description_ru, category_id, rating, address, amenities)
		VALUES ('Lake', 'Озеро', 'd', 'д', ?, 4.5, 'a', '[]')`, catID)
	require.NoError(t, err)
	placeID, _ := res.LastInsertId()

	_, err = db.Exec(`INSERT INTO place_images (place_id, image) VALUES (?, 'x.jpg')`, placeID)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO reviews (place_id, author, rating, comment, date) VALUES (?, 'A', 5, 'c', ?)`,
		placeID, time.Now().UTC())
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO reviews (place_id, author, rating, comment, date) VALUES (?, 'A', 6, 'c', NOW())`, placeID)
	assert.Error(t, err, "review rating above 5 must be rejected")
	_, err = db.Exec(`INSERT INTO places (name, name_ru, description, description_ru, rating, address, amenities)
		VALUES ('X', 'X', 'd', 'd', 5.5, 'a', '[]')`)
	assert.Error(t, err, "place rating above 5 must be rejected")
	_, err = db.Exec(`INSERT INTO categories (name, name_ru, slug) VALUES ('Other', 'Другое', 'nature')`)
	assert.Error(t, err, "duplicate slug must be rejected")

	_, err = db.Exec(`DELETE FROM categories WHERE id = ?`, catID)
	require.NoError(t, err)
	assert.Equal(t, 1, count(t, db, `SELECT COUNT(*) FROM places WHERE id = ? AND category_id IS NULL`, placeID))

	_, err = db.Exec(`DELETE FROM places WHERE id = ?`, placeID)
	require.NoError(t, err)
	assert.Zero(t, count(t, db, `SELECT COUNT(*) FROM place_images WHERE place_id = ?`, placeID))
	assert.Zero(t, count(t, db, `SELECT COUNT(*) FROM reviews WHERE place_id = ?`, placeID))
}
