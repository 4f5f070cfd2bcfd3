package plu

import (
	"fmt"

	"github.com/angelmondragon/plu-backend/pkg/db/models"
	"github.com/angelmondragon/plu-backend/pkg/enums"
	"github.com/angelmondragon/plu-backend/pkg/types"
	"github.com/shopspring/decimal"
)

// ItemDTO carries the item identity and list prices. JSON names follow the back-office columns.
type ItemDTO struct {
	ID          int      `json:"IDItem"`
	Code        string   `json:"Kode"`
	Name        *string  `json:"Nama"`
	ShortName   *string  `json:"Singkatan"`
	Barcode     *string  `json:"Barcode"`
	FactoryCode *string  `json:"KodePabrik"`
	BoxQty      *float64 `json:"JumlahDos"`
	Unit        *string  `json:"Satuan"`
	NormalPrice float64  `json:"HargaNormal"`
	SalePrice   *float64 `json:"HargaJual"`
}

// BulkPriceDTO is one quantity-break tier.
type BulkPriceDTO struct {
	ID       int         `json:"IDItemHargaGrosir"`
	ItemID   int         `json:"IDItem"`
	Quantity float64     `json:"Jumlah"`
	Price    float64     `json:"Harga"`
	IsBox    enums.YesNo `json:"IsDos"`
}

// PromoPriceDTO is an active promotion line with its header fields.
type PromoPriceDTO struct {
	LineID          int        `json:"IDItemHargaD"`
	HeaderID        int        `json:"IDItemHargaH"`
	ItemID          int        `json:"IDItem"`
	Code            string     `json:"Kode"`
	Name            string     `json:"Nama"`
	StartDate       types.Date `json:"TanggalAwal"`
	EndDate         types.Date `json:"TanggalAkhir"`
	Description     *string    `json:"Keterangan"`
	SalePrice       float64    `json:"HargaJual"`
	DiscountPercent float64    `json:"DiskonPersen"`
	Discount        float64    `json:"Diskon"`
}

// PluResult is the composite answer of a REST lookup.
type PluResult struct {
	Item        ItemDTO         `json:"item"`
	BulkPrices  []BulkPriceDTO  `json:"hargaGrosir"`
	PromoPrices []PromoPriceDTO `json:"hargaPromo"`
}

type messages struct {
	label string
}

var (
	codeMessages = messages{label: "kode/barcode"}
	idMessages   = messages{label: "id"}
)

func (m messages) notFound(identifier string) string {
	return fmt.Sprintf("Barang dengan %s '%s' tidak ditemukan", m.label, identifier)
}

func (m messages) inactive(identifier string) string {
	return fmt.Sprintf("Barang dengan %s '%s' tidak aktif", m.label, identifier)
}

func newItemDTO(item *models.Item) ItemDTO {
	return ItemDTO{
		ID:          item.ID,
		Code:        item.Code,
		Name:        item.Name,
		ShortName:   item.ShortName,
		Barcode:     item.Barcode,
		FactoryCode: item.FactoryCode,
		BoxQty:      nullableFloat(item.BoxQty),
		Unit:        item.Unit,
		NormalPrice: item.NormalPrice.InexactFloat64(),
		SalePrice:   nullableFloat(item.SalePrice),
	}
}

func newBulkPriceDTO(row *models.ItemBulkPrice) BulkPriceDTO {
	return BulkPriceDTO{
		ID:       row.ID,
		ItemID:   row.ItemID,
		Quantity: row.Quantity.InexactFloat64(),
		Price:    row.Price.InexactFloat64(),
		IsBox:    row.IsBox,
	}
}

func newPromoPriceDTO(row *models.ActivePromotion) PromoPriceDTO {
	discount := 0.0
	if row.Discount.Valid {
		discount = row.Discount.Decimal.InexactFloat64()
	}
	return PromoPriceDTO{
		LineID:          row.LineID,
		HeaderID:        row.HeaderID,
		ItemID:          row.ItemID,
		Code:            row.Code,
		Name:            row.Name,
		StartDate:       types.NewDate(row.StartDate),
		EndDate:         types.NewDate(row.EndDate),
		Description:     row.Description,
		SalePrice:       row.SalePrice.InexactFloat64(),
		DiscountPercent: row.DiscountPercent.InexactFloat64(),
		Discount:        discount,
	}
}

func nullableFloat(v decimal.NullDecimal) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Decimal.InexactFloat64()
	return &f
}
