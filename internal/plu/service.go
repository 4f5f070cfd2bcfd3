package plu

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/angelmondragon/plu-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/plu-backend/pkg/errors"
)

// MaxCodeLength is the width of the Kode and Barcode columns.
const MaxCodeLength = 20

// Service resolves items and their prices.
type Service interface {
	ResolveByCode(ctx context.Context, code string) (*ItemDTO, error)
	ResolveByID(ctx context.Context, id int) (*ItemDTO, error)
	BulkPrices(ctx context.Context, itemID int) ([]BulkPriceDTO, error)
	ActivePromotions(ctx context.Context, itemID int, query PromotionQuery) ([]PromoPriceDTO, error)
	Lookup(ctx context.Context, code string) (*PluResult, error)
}

// PromotionQuery controls ActivePromotions. A zero AsOf means today.
type PromotionQuery struct {
	AsOf        time.Time
	OrderByCode bool
}

// Option customises a service.
type Option func(*service)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLocation sets the timezone used to turn the clock into a calendar date.
func WithLocation(loc *time.Location) Option {
	return func(s *service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

type service struct {
	repo Reader
	now  func() time.Time
	loc  *time.Location
}

// NewService constructs the resolver service.
func NewService(repo Reader, opts ...Option) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("plu repository required")
	}
	s := &service{repo: repo, now: time.Now, loc: time.Local}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *service) ResolveByCode(ctx context.Context, code string) (*ItemDTO, error) {
	if err := validateCode(code); err != nil {
		return nil, err
	}

	item, err := s.repo.FindItemByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if err := ensureLive(item, codeMessages, code); err != nil {
		return nil, err
	}
	dto := newItemDTO(item)
	return &dto, nil
}

func (s *service) ResolveByID(ctx context.Context, id int) (*ItemDTO, error) {
	if id <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "id barang tidak valid").
			WithDetails(map[string]any{"field": "id", "identifier": strconv.Itoa(id)})
	}

	item, err := s.repo.FindItemByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := ensureLive(item, idMessages, strconv.Itoa(id)); err != nil {
		return nil, err
	}
	dto := newItemDTO(item)
	return &dto, nil
}

func (s *service) BulkPrices(ctx context.Context, itemID int) ([]BulkPriceDTO, error) {
	rows, err := s.repo.ListBulkPrices(ctx, itemID)
	if err != nil {
		return nil, err
	}
	out := make([]BulkPriceDTO, 0, len(rows))
	for i := range rows {
		out = append(out, newBulkPriceDTO(&rows[i]))
	}
	return out, nil
}

func (s *service) ActivePromotions(ctx context.Context, itemID int, query PromotionQuery) ([]PromoPriceDTO, error) {
	asOf := query.AsOf
	if asOf.IsZero() {
		asOf = s.now()
	}

	rows, err := s.repo.ListActivePromotions(ctx, itemID, CalendarDate(asOf, s.loc), query.OrderByCode)
	if err != nil {
		return nil, err
	}
	out := make([]PromoPriceDTO, 0, len(rows))
	for i := range rows {
		out = append(out, newPromoPriceDTO(&rows[i]))
	}
	return out, nil
}

// Lookup resolves the item first, then its bulk tiers and its promotions ordered by code.
func (s *service) Lookup(ctx context.Context, code string) (*PluResult, error) {
	item, err := s.ResolveByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	bulk, err := s.BulkPrices(ctx, item.ID)
	if err != nil {
		return nil, err
	}

	promos, err := s.ActivePromotions(ctx, item.ID, PromotionQuery{OrderByCode: true})
	if err != nil {
		return nil, err
	}

	return &PluResult{
		Item:        *item,
		BulkPrices:  bulk,
		PromoPrices: promos,
	}, nil
}

// CalendarDate returns the date of t in loc as a UTC midnight value, the form the
// repositories compare against DATE columns.
func CalendarDate(t time.Time, loc *time.Location) time.Time {
	if loc != nil {
		t = t.In(loc)
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func validateCode(code string) error {
	if strings.TrimSpace(code) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "kode/barcode wajib diisi").
			WithDetails(map[string]any{"field": "code"})
	}
	if utf8.RuneCountInString(code) > MaxCodeLength {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("kode/barcode maksimal %d karakter", MaxCodeLength)).
			WithDetails(map[string]any{"field": "code", "max": MaxCodeLength})
	}
	return nil
}

// ensureLive applies the not-found and inactive guards. It runs for every lookup path.
func ensureLive(item *models.Item, msgs messages, identifier string) error {
	details := map[string]any{"identifier": identifier}
	if item == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, msgs.notFound(identifier)).WithDetails(details)
	}
	if !item.IsActive() {
		return pkgerrors.New(pkgerrors.CodeInactive, msgs.inactive(identifier)).WithDetails(details)
	}
	return nil
}
