// Package plutest provides an in-memory legacy schema with a known data set for tests.
package plutest

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Item ids of the seeded data set.
const (
	PlainItemID     = 1 // Kode 90005010, no tiers, no promotions
	CollisionItemID = 2 // Kode equals the barcode of BarcodeItemID
	BarcodeItemID   = 3 // Barcode 8997227891295, tiers and promotions
	InactiveItemID  = 4 // Aktif = Tidak, has an active tier
	SharedInactive  = 5 // Kode SAMA, inactive, lower id
	SharedActive    = 6 // Kode SAMA, active
)

// Today is the calendar date the promotion fixtures are arranged around.
var Today = time.Date(2026, time.October, 14, 0, 0, 0, 0, time.UTC)

var schema = []string{
	`CREATE TABLE mitem (
		IDItem INTEGER PRIMARY KEY,
		Kode VARCHAR(20) NOT NULL,
		Nama VARCHAR(255),
		Singkatan VARCHAR(20),
		Barcode VARCHAR(20),
		KodePabrik VARCHAR(30),
		JumlahDos REAL DEFAULT 0,
		Satuan VARCHAR(10),
		HargaNormal REAL NOT NULL DEFAULT 0,
		HargaJual REAL,
		Aktif TEXT NOT NULL DEFAULT 'Ya'
	)`,
	`CREATE TABLE mitemhargagrosir (
		IDItemHargaGrosir INTEGER PRIMARY KEY,
		IDItem INTEGER NOT NULL,
		Jumlah REAL NOT NULL DEFAULT 0,
		Harga REAL NOT NULL DEFAULT 0,
		IsDos TEXT NOT NULL DEFAULT 'Tidak',
		Aktif TEXT NOT NULL DEFAULT 'Ya'
	)`,
	`CREATE TABLE titemhargah (
		IDItemHargaH INTEGER PRIMARY KEY,
		Kode VARCHAR(30) NOT NULL,
		Nama VARCHAR(50) NOT NULL,
		TanggalAwal DATE NOT NULL,
		TanggalAkhir DATE NOT NULL,
		Keterangan TEXT,
		Aktif TEXT NOT NULL DEFAULT 'Ya'
	)`,
	`CREATE TABLE titemhargad (
		IDItemHargaD INTEGER PRIMARY KEY,
		IDItemHargaH INTEGER NOT NULL,
		IDItem INTEGER NOT NULL,
		HargaJual REAL NOT NULL DEFAULT 0,
		DiskonPersen REAL NOT NULL DEFAULT 0,
		Diskon REAL DEFAULT 0
	)`,
}

// NewDB opens a private in-memory database with the legacy tables and no rows.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	for _, stmt := range schema {
		if err := conn.Exec(stmt).Error; err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}
	return conn
}

// NewSeededDB opens a database and loads the standard data set.
func NewSeededDB(t testing.TB) *gorm.DB {
	t.Helper()
	conn := NewDB(t)
	Seed(t, conn)
	return conn
}

// day is the text form sqlite applications store in DATE columns.
func day(offset int) string {
	return Today.AddDate(0, 0, offset).Format("2006-01-02")
}

// Seed loads the standard data set.
func Seed(t testing.TB, conn *gorm.DB) {
	t.Helper()

	exec := func(sql string, args ...any) {
		t.Helper()
		if err := conn.Exec(sql, args...).Error; err != nil {
			t.Fatalf("seed %q: %v", sql, err)
		}
	}

	insertItem := `INSERT INTO mitem (IDItem, Kode, Nama, Singkatan, Barcode, KodePabrik, JumlahDos, Satuan, HargaNormal, HargaJual, Aktif) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	exec(insertItem, PlainItemID, "90005010", "GULA PASIR 1KG", "GULA1KG", nil, nil, nil, "PCS", 17500.0, 16900.0, "Ya")
	exec(insertItem, CollisionItemID, "8997227891295", "KODE BENTROK", nil, "8990000000022", nil, 1.0, "PCS", 1000.0, nil, "Ya")
	exec(insertItem, BarcodeItemID, "A100", "MIE GORENG 85G", "MIEGRG", "8997227891295", "IDM-085", 40.0, "PCS", 3500.0, 3300.0, "Ya")
	exec(insertItem, InactiveItemID, "OLD01", "BARANG LAMA", nil, "8990000000044", nil, nil, "PCS", 5000.0, nil, "Tidak")
	exec(insertItem, SharedInactive, "SAMA", "KODE SAMA LAMA", nil, nil, nil, nil, "PCS", 100.0, nil, "Tidak")
	exec(insertItem, SharedActive, "SAMA", "KODE SAMA BARU", nil, nil, nil, nil, "PCS", 200.0, nil, "Ya")

	insertTier := `INSERT INTO mitemhargagrosir (IDItemHargaGrosir, IDItem, Jumlah, Harga, IsDos, Aktif) VALUES (?, ?, ?, ?, ?, ?)`
	exec(insertTier, 10, BarcodeItemID, 12.0, 3150.0, "Tidak", "Ya")
	exec(insertTier, 11, BarcodeItemID, 3.0, 3400.0, "Tidak", "Ya")
	exec(insertTier, 12, BarcodeItemID, 6.0, 3200.0, "Tidak", "Tidak")
	exec(insertTier, 13, BarcodeItemID, 40.0, 3000.0, "Ya", "Ya")
	exec(insertTier, 20, InactiveItemID, 10.0, 4500.0, "Tidak", "Ya")
	exec(insertTier, 21, CollisionItemID, 5.0, 900.0, "Tidak", "Ya")

	insertHeader := `INSERT INTO titemhargah (IDItemHargaH, Kode, Nama, TanggalAwal, TanggalAkhir, Keterangan, Aktif) VALUES (?, ?, ?, ?, ?, ?, ?)`
	exec(insertHeader, 1, "PRM-B", "PROMO OKTOBER", day(-13), day(17), "Promo bulanan", "Ya")
	exec(insertHeader, 2, "PRM-A", "PROMO SEHARI", day(0), day(0), nil, "Ya")
	exec(insertHeader, 3, "PRM-C", "PROMO SEPTEMBER", day(-43), day(-14), nil, "Ya")
	exec(insertHeader, 4, "PRM-D", "PROMO BATAL", day(-13), day(17), nil, "Tidak")
	exec(insertHeader, 5, "PRM-E", "PROMO BERIKUT", day(1), day(32), nil, "Ya")

	insertLine := `INSERT INTO titemhargad (IDItemHargaD, IDItemHargaH, IDItem, HargaJual, DiskonPersen, Diskon) VALUES (?, ?, ?, ?, ?, ?)`
	exec(insertLine, 101, 1, BarcodeItemID, 3150.0, 5.0, 150.0)
	exec(insertLine, 102, 2, BarcodeItemID, 2990.0, 0.0, nil)
	exec(insertLine, 103, 3, BarcodeItemID, 3000.0, 0.0, 0.0)
	exec(insertLine, 104, 4, BarcodeItemID, 2500.0, 0.0, 0.0)
	exec(insertLine, 105, 5, BarcodeItemID, 3100.0, 10.0, 350.0)
	exec(insertLine, 106, 1, CollisionItemID, 950.0, 5.0, 50.0)
}
