package models

import (
	"github.com/angelmondragon/plu-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// Item maps the back-office master item table.
type Item struct {
	ID          int                 `gorm:"column:IDItem;primaryKey"`
	Code        string              `gorm:"column:Kode;size:20;not null"`
	Name        *string             `gorm:"column:Nama;size:255"`
	ShortName   *string             `gorm:"column:Singkatan;size:20"`
	Barcode     *string             `gorm:"column:Barcode;size:20"`
	FactoryCode *string             `gorm:"column:KodePabrik;size:30"`
	BoxQty      decimal.NullDecimal `gorm:"column:JumlahDos"`
	Unit        *string             `gorm:"column:Satuan;size:10"`
	NormalPrice decimal.Decimal     `gorm:"column:HargaNormal;not null"`
	SalePrice   decimal.NullDecimal `gorm:"column:HargaJual"`
	Active      enums.YesNo         `gorm:"column:Aktif;not null"`
}

func (Item) TableName() string {
	return "mitem"
}

// IsActive reports whether the item may be shown to clients.
func (i Item) IsActive() bool {
	return i.Active == enums.Yes
}
