package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createUserTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		phone_number TEXT,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'user',
		status TEXT NOT NULL DEFAULT 'active',
		profile TEXT,
		customer_id TEXT,
		is_deleted BOOLEAN NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE verifications (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL UNIQUE,
		otp INTEGER NOT NULL DEFAULT 0,
		expired_at DATETIME,
		status BOOLEAN NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE login_devices (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		ip TEXT,
		browser TEXT,
		os TEXT,
		device TEXT,
		created_at DATETIME
	);`)
}

func createPackageTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE packages (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT,
		price INTEGER NOT NULL DEFAULT 0,
		duration_day INTEGER NOT NULL DEFAULT 0,
		is_deleted BOOLEAN NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createSubscriptionTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE subscriptions (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		package_id TEXT NOT NULL,
		is_paid BOOLEAN NOT NULL DEFAULT 0,
		is_activate BOOLEAN NOT NULL DEFAULT 0,
		expired_at DATETIME,
		is_deleted BOOLEAN NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createPaymentTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE payments (
		id TEXT PRIMARY KEY,
		subscription_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		price INTEGER NOT NULL DEFAULT 0,
		is_paid BOOLEAN NOT NULL DEFAULT 0,
		trn_id TEXT,
		receipt_url TEXT,
		is_deleted BOOLEAN NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createSafeZoneTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE safe_zones (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		description TEXT,
		start_latitude REAL NOT NULL,
		start_longitude REAL NOT NULL,
		start_address TEXT,
		end_latitude REAL NOT NULL,
		end_longitude REAL NOT NULL,
		end_address TEXT,
		expected_return DATETIME,
		is_deleted BOOLEAN NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createEmergencyContactTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE emergency_contacts (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		relation TEXT,
		phone_number TEXT NOT NULL,
		is_deleted BOOLEAN NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createAlertPostTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE alert_posts (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		description TEXT NOT NULL,
		image TEXT,
		latitude REAL NOT NULL,
		longitude REAL NOT NULL,
		address TEXT,
		is_deleted BOOLEAN NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}
