package models

import (
	"time"

	"github.com/angelmondragon/plu-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// PromotionHeader is a dated price campaign. The window is inclusive on both ends.
type PromotionHeader struct {
	ID          int         `gorm:"column:IDItemHargaH;primaryKey"`
	Code        string      `gorm:"column:Kode;size:30;not null"`
	Name        string      `gorm:"column:Nama;size:50;not null"`
	StartDate   time.Time   `gorm:"column:TanggalAwal;type:date;not null"`
	EndDate     time.Time   `gorm:"column:TanggalAkhir;type:date;not null"`
	Description *string     `gorm:"column:Keterangan"`
	Active      enums.YesNo `gorm:"column:Aktif;not null"`
}

func (PromotionHeader) TableName() string {
	return "titemhargah"
}

// PromotionLine is the per-item price inside a campaign.
type PromotionLine struct {
	ID              int                 `gorm:"column:IDItemHargaD;primaryKey"`
	HeaderID        int                 `gorm:"column:IDItemHargaH;not null"`
	ItemID          int                 `gorm:"column:IDItem;not null"`
	SalePrice       decimal.Decimal     `gorm:"column:HargaJual;not null"`
	DiscountPercent decimal.Decimal     `gorm:"column:DiskonPersen;not null"`
	Discount        decimal.NullDecimal `gorm:"column:Diskon"`
}

func (PromotionLine) TableName() string {
	return "titemhargad"
}

// ActivePromotion is a promotion line joined with the fields of its header.
type ActivePromotion struct {
	LineID          int                 `gorm:"column:IDItemHargaD"`
	HeaderID        int                 `gorm:"column:IDItemHargaH"`
	ItemID          int                 `gorm:"column:IDItem"`
	Code            string              `gorm:"column:Kode"`
	Name            string              `gorm:"column:Nama"`
	StartDate       time.Time           `gorm:"column:TanggalAwal"`
	EndDate         time.Time           `gorm:"column:TanggalAkhir"`
	Description     *string             `gorm:"column:Keterangan"`
	SalePrice       decimal.Decimal     `gorm:"column:HargaJual"`
	DiscountPercent decimal.Decimal     `gorm:"column:DiskonPersen"`
	Discount        decimal.NullDecimal `gorm:"column:Diskon"`
}
