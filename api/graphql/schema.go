// Package graphql exposes the resolvers as a GraphQL schema. Nested price lists are resolved
// per field from the parent item id, inside the request's database session.
package graphql

import (
	"fmt"
	"strconv"

	gql "github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"

	"github.com/angelmondragon/plu-backend/internal/plu"
	pkgerrors "github.com/angelmondragon/plu-backend/pkg/errors"
	"github.com/angelmondragon/plu-backend/pkg/logger"
	"github.com/angelmondragon/plu-backend/pkg/metrics"
	"github.com/angelmondragon/plu-backend/pkg/types"
)

// Globals are the display settings exposed through the globals query.
type Globals struct {
	AppTitle    string
	AppSubtitle string
	Version     string
}

// DateScalar serializes calendar dates as YYYY-MM-DD.
var DateScalar = gql.NewScalar(gql.ScalarConfig{
	Name:        "Date",
	Description: "Calendar date formatted as YYYY-MM-DD.",
	Serialize: func(value interface{}) interface{} {
		switch v := value.(type) {
		case types.Date:
			return v.String()
		case *types.Date:
			if v == nil {
				return nil
			}
			return v.String()
		}
		return nil
	},
	ParseValue: func(value interface{}) interface{} {
		s, ok := value.(string)
		if !ok {
			return nil
		}
		d, err := types.ParseDate(s)
		if err != nil {
			return nil
		}
		return d
	},
	ParseLiteral: func(valueAST ast.Value) interface{} {
		sv, ok := valueAST.(*ast.StringValue)
		if !ok {
			return nil
		}
		d, err := types.ParseDate(sv.Value)
		if err != nil {
			return nil
		}
		return d
	},
})

type resolver struct {
	svc     plu.Service
	globals Globals
	logg    *logger.Logger
	metrics *metrics.Metrics
}

// NewSchema builds the executable schema.
func NewSchema(svc plu.Service, globals Globals, logg *logger.Logger, m *metrics.Metrics) (gql.Schema, error) {
	if svc == nil {
		return gql.Schema{}, fmt.Errorf("plu service required")
	}
	res := &resolver{svc: svc, globals: globals, logg: logg, metrics: m}

	bulkPriceType := gql.NewObject(gql.ObjectConfig{
		Name: "BulkPrice",
		Fields: gql.Fields{
			"id": &gql.Field{Type: gql.NewNonNull(gql.ID), Resolve: bulkField(func(b plu.BulkPriceDTO) interface{} {
				return strconv.Itoa(b.ID)
			})},
			"quantity": &gql.Field{Type: gql.NewNonNull(gql.Int), Resolve: bulkField(func(b plu.BulkPriceDTO) interface{} {
				return int(b.Quantity)
			})},
			"unitPrice": &gql.Field{Type: gql.NewNonNull(gql.Float), Resolve: bulkField(func(b plu.BulkPriceDTO) interface{} {
				return b.Price
			})},
			"isBox": &gql.Field{Type: gql.NewNonNull(gql.Boolean), Resolve: bulkField(func(b plu.BulkPriceDTO) interface{} {
				return b.IsBox.Bool()
			})},
		},
	})

	promoPriceType := gql.NewObject(gql.ObjectConfig{
		Name: "PromoPrice",
		Fields: gql.Fields{
			"id": &gql.Field{Type: gql.NewNonNull(gql.ID), Resolve: promoField(func(p plu.PromoPriceDTO) interface{} {
				return strconv.Itoa(p.LineID)
			})},
			"promoCode": &gql.Field{Type: gql.NewNonNull(gql.String), Resolve: promoField(func(p plu.PromoPriceDTO) interface{} {
				return p.Code
			})},
			"promoName": &gql.Field{Type: gql.NewNonNull(gql.String), Resolve: promoField(func(p plu.PromoPriceDTO) interface{} {
				return p.Name
			})},
			"start": &gql.Field{Type: gql.NewNonNull(DateScalar), Resolve: promoField(func(p plu.PromoPriceDTO) interface{} {
				return p.StartDate
			})},
			"end": &gql.Field{Type: gql.NewNonNull(DateScalar), Resolve: promoField(func(p plu.PromoPriceDTO) interface{} {
				return p.EndDate
			})},
			"discountPercent": &gql.Field{Type: gql.NewNonNull(gql.Float), Resolve: promoField(func(p plu.PromoPriceDTO) interface{} {
				return p.DiscountPercent
			})},
			"discount": &gql.Field{Type: gql.NewNonNull(gql.Float), Resolve: promoField(func(p plu.PromoPriceDTO) interface{} {
				return p.Discount
			})},
			"unitPrice": &gql.Field{Type: gql.NewNonNull(gql.Float), Resolve: promoField(func(p plu.PromoPriceDTO) interface{} {
				return p.SalePrice
			})},
			"description": &gql.Field{Type: gql.String, Resolve: promoField(func(p plu.PromoPriceDTO) interface{} {
				return derefString(p.Description)
			})},
		},
	})

	itemType := gql.NewObject(gql.ObjectConfig{
		Name: "Item",
		Fields: gql.Fields{
			"id": &gql.Field{Type: gql.NewNonNull(gql.ID), Resolve: itemField(func(i *plu.ItemDTO) interface{} {
				return strconv.Itoa(i.ID)
			})},
			"code": &gql.Field{Type: gql.NewNonNull(gql.String), Resolve: itemField(func(i *plu.ItemDTO) interface{} {
				return i.Code
			})},
			"barcode": &gql.Field{Type: gql.String, Resolve: itemField(func(i *plu.ItemDTO) interface{} {
				return derefString(i.Barcode)
			})},
			"name": &gql.Field{Type: gql.String, Resolve: itemField(func(i *plu.ItemDTO) interface{} {
				return derefString(i.Name)
			})},
			"normalPrice": &gql.Field{Type: gql.NewNonNull(gql.Float), Resolve: itemField(func(i *plu.ItemDTO) interface{} {
				return i.NormalPrice
			})},
			"discountedPrice": &gql.Field{Type: gql.Float, Resolve: itemField(func(i *plu.ItemDTO) interface{} {
				if i.SalePrice == nil {
					return nil
				}
				return *i.SalePrice
			})},
			"bulkPrices": &gql.Field{
				Type:    gql.NewNonNull(gql.NewList(gql.NewNonNull(bulkPriceType))),
				Resolve: res.bulkPrices,
			},
			"promoPrices": &gql.Field{
				Type:    gql.NewNonNull(gql.NewList(gql.NewNonNull(promoPriceType))),
				Resolve: res.promoPrices,
			},
		},
	})

	globalsType := gql.NewObject(gql.ObjectConfig{
		Name: "Globals",
		Fields: gql.Fields{
			"appTitle": &gql.Field{Type: gql.NewNonNull(gql.String), Resolve: func(p gql.ResolveParams) (interface{}, error) {
				return p.Source.(Globals).AppTitle, nil
			}},
			"appSubtitle": &gql.Field{Type: gql.NewNonNull(gql.String), Resolve: func(p gql.ResolveParams) (interface{}, error) {
				return p.Source.(Globals).AppSubtitle, nil
			}},
			"version": &gql.Field{Type: gql.NewNonNull(gql.String), Resolve: func(p gql.ResolveParams) (interface{}, error) {
				return p.Source.(Globals).Version, nil
			}},
		},
	})

	queryType := gql.NewObject(gql.ObjectConfig{
		Name: "Query",
		Fields: gql.Fields{
			"plu": &gql.Field{
				Type:        gql.NewNonNull(itemType),
				Description: "Look up an active item by code or barcode. A barcode match wins.",
				Args: gql.FieldConfigArgument{
					"barcode": &gql.ArgumentConfig{Type: gql.NewNonNull(gql.String)},
				},
				Resolve: res.plu,
			},
			"item": &gql.Field{
				Type:        gql.NewNonNull(itemType),
				Description: "Fetch an active item by id.",
				Args: gql.FieldConfigArgument{
					"id": &gql.ArgumentConfig{Type: gql.NewNonNull(gql.ID)},
				},
				Resolve: res.item,
			},
			"globals": &gql.Field{
				Type: gql.NewNonNull(globalsType),
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					return res.globals, nil
				},
			},
		},
	})

	return gql.NewSchema(gql.SchemaConfig{Query: queryType})
}

func (r *resolver) plu(p gql.ResolveParams) (interface{}, error) {
	code, _ := p.Args["barcode"].(string)
	ctx := p.Context
	if r.logg != nil {
		ctx = r.logg.WithLookup(ctx, code)
	}

	item, err := r.svc.ResolveByCode(ctx, code)
	r.metrics.IncLookup(metrics.SurfaceGraphQL, outcome(err))
	if err != nil {
		return nil, toPublic(ctx, r.logg, err)
	}
	return item, nil
}

func (r *resolver) item(p gql.ResolveParams) (interface{}, error) {
	raw, _ := p.Args["id"].(string)
	ctx := p.Context
	if r.logg != nil {
		ctx = r.logg.WithLookup(ctx, raw)
	}

	id, convErr := strconv.Atoi(raw)
	if convErr != nil {
		err := pkgerrors.Wrap(pkgerrors.CodeValidation, convErr, "id barang tidak valid").
			WithDetails(map[string]any{"field": "id", "identifier": raw})
		r.metrics.IncLookup(metrics.SurfaceGraphQL, outcome(err))
		return nil, toPublic(ctx, r.logg, err)
	}

	item, err := r.svc.ResolveByID(ctx, id)
	r.metrics.IncLookup(metrics.SurfaceGraphQL, outcome(err))
	if err != nil {
		return nil, toPublic(ctx, r.logg, err)
	}
	return item, nil
}

func (r *resolver) bulkPrices(p gql.ResolveParams) (interface{}, error) {
	parent, ok := p.Source.(*plu.ItemDTO)
	if !ok {
		return nil, toPublic(p.Context, r.logg, fmt.Errorf("unexpected bulkPrices parent %T", p.Source))
	}
	rows, err := r.svc.BulkPrices(p.Context, parent.ID)
	if err != nil {
		return nil, toPublic(p.Context, r.logg, err)
	}
	return rows, nil
}

func (r *resolver) promoPrices(p gql.ResolveParams) (interface{}, error) {
	parent, ok := p.Source.(*plu.ItemDTO)
	if !ok {
		return nil, toPublic(p.Context, r.logg, fmt.Errorf("unexpected promoPrices parent %T", p.Source))
	}
	rows, err := r.svc.ActivePromotions(p.Context, parent.ID, plu.PromotionQuery{})
	if err != nil {
		return nil, toPublic(p.Context, r.logg, err)
	}
	return rows, nil
}

func itemField(get func(*plu.ItemDTO) interface{}) gql.FieldResolveFn {
	return func(p gql.ResolveParams) (interface{}, error) {
		item, ok := p.Source.(*plu.ItemDTO)
		if !ok || item == nil {
			return nil, nil
		}
		return get(item), nil
	}
}

func bulkField(get func(plu.BulkPriceDTO) interface{}) gql.FieldResolveFn {
	return func(p gql.ResolveParams) (interface{}, error) {
		row, ok := p.Source.(plu.BulkPriceDTO)
		if !ok {
			return nil, nil
		}
		return get(row), nil
	}
}

func promoField(get func(plu.PromoPriceDTO) interface{}) gql.FieldResolveFn {
	return func(p gql.ResolveParams) (interface{}, error) {
		row, ok := p.Source.(plu.PromoPriceDTO)
		if !ok {
			return nil, nil
		}
		return get(row), nil
	}
}

func derefString(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}
