package testutil

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-ReservationService/migrations"
)

// testDBLockID ключ advisory lock, сериализующий интеграционные тесты разных пакетов
const testDBLockID int64 = 731902214

// NewTestDB открывает тестовую базу из TEST_DATABASE_URL, применяет миграции и очищает таблицы.
// Если переменная не задана или база недоступна, тест пропускается.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("skipping Postgres integration tests: TEST_DATABASE_URL is not set")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		t.Skipf("skipping Postgres integration tests: %v", err)
	}

	lockTestDB(t, db)

	if err := migrations.Up(db); err != nil {
		t.Fatalf("failed to apply migrations: %v", err)
	}

	TruncateAll(t, db)

	return db
}

// TruncateAll очищает все таблицы сервиса
func TruncateAll(t *testing.T, db *sql.DB) {
	t.Helper()
	_, err := db.Exec(`TRUNCATE bookings, holds, resource_working_hours, resources RESTART IDENTITY CASCADE`)
	if err != nil {
		t.Fatalf("truncate: %v", err)
	}
}

// lockTestDB держит выделенное соединение с advisory lock до конца теста
func lockTestDB(t *testing.T, db *sql.DB) {
	t.Helper()

	conn, err := db.Conn(context.Background())
	if err != nil {
		t.Fatalf("failed to get conn for lock: %v", err)
	}
	if _, err := conn.ExecContext(context.Background(), `SELECT pg_advisory_lock($1)`, testDBLockID); err != nil {
		_ = conn.Close()
		t.Fatalf("failed to take advisory lock: %v", err)
	}

	t.Cleanup(func() {
		_, _ = conn.ExecContext(context.Background(), `SELECT pg_advisory_unlock($1)`, testDBLockID)
		_ = conn.Close()
		_ = db.Close()
	})
}
