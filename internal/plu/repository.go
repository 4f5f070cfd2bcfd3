package plu

import (
	"context"
	"time"

	"github.com/angelmondragon/plu-backend/pkg/db"
	"github.com/angelmondragon/plu-backend/pkg/db/models"
	"github.com/angelmondragon/plu-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/plu-backend/pkg/errors"
	"github.com/angelmondragon/plu-backend/pkg/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Reader is the read-only data-access surface the resolvers depend on.
type Reader interface {
	FindItemByCode(ctx context.Context, code string) (*models.Item, error)
	FindItemByID(ctx context.Context, id int) (*models.Item, error)
	ListBulkPrices(ctx context.Context, itemID int) ([]models.ItemBulkPrice, error)
	ListActivePromotions(ctx context.Context, itemID int, asOf time.Time, orderByCode bool) ([]models.ActivePromotion, error)
}

// Repository reads items, bulk tiers and promotions from the legacy schema.
// Column names are passed through clause builders so every dialect quotes them.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// conn prefers the request session carried by ctx over the pooled handle.
func (r *Repository) conn(ctx context.Context) *gorm.DB {
	if sess, ok := db.SessionFromContext(ctx); ok {
		return sess.WithContext(ctx)
	}
	return r.db.WithContext(ctx)
}

// FindItemByCode returns the first item whose code or barcode equals code, preferring a
// barcode match. Activity is not filtered here. A nil item with nil error means no match.
func (r *Repository) FindItemByCode(ctx context.Context, code string) (*models.Item, error) {
	var rows []models.Item
	err := r.conn(ctx).
		Where(clause.Or(
			clause.Eq{Column: clause.Column{Name: "Kode"}, Value: code},
			clause.Eq{Column: clause.Column{Name: "Barcode"}, Value: code},
		)).
		Order(clause.OrderBy{Expression: clause.Expr{
			SQL:                "CASE WHEN ? = ? THEN 0 ELSE 1 END, ?",
			Vars:               []any{clause.Column{Name: "Barcode"}, code, clause.Column{Name: "IDItem"}},
			WithoutParentheses: true,
		}}).
		Limit(1).
		Find(&rows).
		Error
	if err != nil {
		return nil, dataAccessError(err, "finding item by code")
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// FindItemByID returns the item with the given primary key, or nil when absent.
func (r *Repository) FindItemByID(ctx context.Context, id int) (*models.Item, error) {
	var item models.Item
	err := r.conn(ctx).
		Where(clause.Eq{Column: clause.Column{Name: "IDItem"}, Value: id}).
		Take(&item).
		Error
	if db.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, dataAccessError(err, "finding item by id")
	}
	return &item, nil
}

// ListBulkPrices returns the active tiers of an item ordered by ascending quantity.
func (r *Repository) ListBulkPrices(ctx context.Context, itemID int) ([]models.ItemBulkPrice, error) {
	rows := []models.ItemBulkPrice{}
	err := r.conn(ctx).
		Where(
			clause.Eq{Column: clause.Column{Name: "IDItem"}, Value: itemID},
			clause.Eq{Column: clause.Column{Name: "Aktif"}, Value: enums.Yes},
		).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "Jumlah"}}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "IDItemHargaGrosir"}}).
		Find(&rows).
		Error
	if err != nil {
		return nil, dataAccessError(err, "listing bulk prices")
	}
	return rows, nil
}

// ListActivePromotions returns the promotion lines of an item whose header is active and
// whose window contains the calendar date of asOf. Both ends of the window are inclusive.
func (r *Repository) ListActivePromotions(ctx context.Context, itemID int, asOf time.Time, orderByCode bool) ([]models.ActivePromotion, error) {
	line := func(name string) clause.Column { return clause.Column{Table: "d", Name: name} }
	header := func(name string) clause.Column { return clause.Column{Table: "h", Name: name} }
	day := types.NewDate(asOf)

	q := r.conn(ctx).
		Table("titemhargad AS d").
		Select("?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?",
			line("IDItemHargaD"),
			line("IDItemHargaH"),
			line("IDItem"),
			header("Kode"),
			header("Nama"),
			header("TanggalAwal"),
			header("TanggalAkhir"),
			header("Keterangan"),
			line("HargaJual"),
			line("DiskonPersen"),
			line("Diskon"),
		).
		Joins("JOIN titemhargah AS h ON ? = ?", header("IDItemHargaH"), line("IDItemHargaH")).
		Where(
			clause.Eq{Column: line("IDItem"), Value: itemID},
			clause.Eq{Column: header("Aktif"), Value: enums.Yes},
			clause.Lte{Column: header("TanggalAwal"), Value: day},
			clause.Gte{Column: header("TanggalAkhir"), Value: day},
		)
	if orderByCode {
		q = q.Order(clause.OrderByColumn{Column: header("Kode")}).
			Order(clause.OrderByColumn{Column: line("IDItemHargaD")})
	}

	rows := []models.ActivePromotion{}
	if err := q.Scan(&rows).Error; err != nil {
		return nil, dataAccessError(err, "listing active promotions")
	}
	return rows, nil
}

func dataAccessError(err error, step string) error {
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, step).
		WithDetails(map[string]any{"step": step})
}
