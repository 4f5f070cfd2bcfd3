package models

import (
	"github.com/angelmondragon/plu-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// ItemBulkPrice is a quantity-break unit price for one item.
type ItemBulkPrice struct {
	ID       int             `gorm:"column:IDItemHargaGrosir;primaryKey"`
	ItemID   int             `gorm:"column:IDItem;not null"`
	Quantity decimal.Decimal `gorm:"column:Jumlah;not null"`
	Price    decimal.Decimal `gorm:"column:Harga;not null"`
	IsBox    enums.YesNo     `gorm:"column:IsDos;not null"`
	Active   enums.YesNo     `gorm:"column:Aktif;not null"`
}

func (ItemBulkPrice) TableName() string {
	return "mitemhargagrosir"
}
