package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	gql "github.com/graphql-go/graphql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/plu-backend/internal/plu"
	"github.com/angelmondragon/plu-backend/internal/plu/plutest"
	pkgerrors "github.com/angelmondragon/plu-backend/pkg/errors"
	"github.com/angelmondragon/plu-backend/pkg/logger"
	"github.com/angelmondragon/plu-backend/pkg/types"
)

func newTestSchema(t *testing.T, svc plu.Service) gql.Schema {
	t.Helper()
	if svc == nil {
		clock := func() time.Time { return plutest.Today.Add(8 * time.Hour) }
		var err error
		svc, err = plu.NewService(plu.NewRepository(plutest.NewSeededDB(t)), plu.WithClock(clock), plu.WithLocation(time.UTC))
		require.NoError(t, err)
	}
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	schema, err := NewSchema(svc, Globals{AppTitle: "Cek Harga", AppSubtitle: "Toko Maju", Version: "1.2.0"}, logg, nil)
	require.NoError(t, err)
	return schema
}

func run(t *testing.T, schema gql.Schema, query string, vars map[string]interface{}) *gql.Result {
	t.Helper()
	return gql.Do(gql.Params{
		Schema:         schema,
		RequestString:  query,
		VariableValues: vars,
		Context:        context.Background(),
	})
}

func decode(t *testing.T, data interface{}, dest interface{}) {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, dest))
}

func TestPluQueryWithNestedPrices(t *testing.T) {
	schema := newTestSchema(t, nil)

	res := run(t, schema, `query($code: String!) {
		plu(barcode: $code) {
			id code barcode name normalPrice discountedPrice
			bulkPrices { id quantity unitPrice isBox }
			promoPrices { id promoCode promoName start end discountPercent discount unitPrice description }
		}
	}`, map[string]interface{}{"code": "8997227891295"})
	require.Empty(t, res.Errors)

	var out struct {
		Plu struct {
			ID              string   `json:"id"`
			Code            string   `json:"code"`
			Barcode         *string  `json:"barcode"`
			NormalPrice     float64  `json:"normalPrice"`
			DiscountedPrice *float64 `json:"discountedPrice"`
			BulkPrices      []struct {
				ID        string  `json:"id"`
				Quantity  int     `json:"quantity"`
				UnitPrice float64 `json:"unitPrice"`
				IsBox     bool    `json:"isBox"`
			} `json:"bulkPrices"`
			PromoPrices []struct {
				ID        string  `json:"id"`
				PromoCode string  `json:"promoCode"`
				Start     string  `json:"start"`
				End       string  `json:"end"`
				Discount  float64 `json:"discount"`
			} `json:"promoPrices"`
		} `json:"plu"`
	}
	decode(t, res.Data, &out)

	assert.Equal(t, "3", out.Plu.ID)
	assert.Equal(t, "A100", out.Plu.Code)
	require.NotNil(t, out.Plu.DiscountedPrice)
	assert.Equal(t, 3300.0, *out.Plu.DiscountedPrice)

	require.Len(t, out.Plu.BulkPrices, 3)
	assert.Equal(t, 3, out.Plu.BulkPrices[0].Quantity)
	assert.True(t, out.Plu.BulkPrices[2].IsBox)

	require.Len(t, out.Plu.PromoPrices, 2)
	byID := map[string]string{}
	for _, p := range out.Plu.PromoPrices {
		byID[p.ID] = p.Start + ".." + p.End
	}
	assert.Equal(t, map[string]string{"101": "2026-10-01..2026-10-31", "102": "2026-10-14..2026-10-14"}, byID)
}

func TestPluQueryNotFound(t *testing.T) {
	schema := newTestSchema(t, nil)

	res := run(t, schema, `{ plu(barcode: "NOOOOO") { id } }`, nil)
	require.NotEmpty(t, res.Errors)
	assert.Equal(t, "Barang dengan kode/barcode 'NOOOOO' tidak ditemukan", res.Errors[0].Message)
	assert.Equal(t, "NOT_FOUND", res.Errors[0].Extensions["code"])
}

func TestItemQuery(t *testing.T) {
	schema := newTestSchema(t, nil)

	res := run(t, schema, `{ item(id: "1") { code name bulkPrices { id } promoPrices { id } } }`, nil)
	require.Empty(t, res.Errors)

	var out struct {
		Item struct {
			Code        string        `json:"code"`
			Name        string        `json:"name"`
			BulkPrices  []interface{} `json:"bulkPrices"`
			PromoPrices []interface{} `json:"promoPrices"`
		} `json:"item"`
	}
	decode(t, res.Data, &out)
	assert.Equal(t, "90005010", out.Item.Code)
	assert.Equal(t, "GULA PASIR 1KG", out.Item.Name)
	assert.NotNil(t, out.Item.BulkPrices)
	assert.Empty(t, out.Item.BulkPrices)
	assert.Empty(t, out.Item.PromoPrices)
}

func TestItemQueryInactive(t *testing.T) {
	schema := newTestSchema(t, nil)

	res := run(t, schema, `{ item(id: "4") { id } }`, nil)
	require.NotEmpty(t, res.Errors)
	assert.Equal(t, "Barang dengan id '4' tidak aktif", res.Errors[0].Message)
	assert.Equal(t, "INACTIVE", res.Errors[0].Extensions["code"])
}

func TestItemQueryRejectsNonNumericID(t *testing.T) {
	schema := newTestSchema(t, nil)

	res := run(t, schema, `{ item(id: "abc") { id } }`, nil)
	require.NotEmpty(t, res.Errors)
	assert.Equal(t, "VALIDATION_ERROR", res.Errors[0].Extensions["code"])
}

func TestGlobalsQuery(t *testing.T) {
	schema := newTestSchema(t, nil)

	res := run(t, schema, `{ globals { appTitle appSubtitle version } }`, nil)
	require.Empty(t, res.Errors)

	var out struct {
		Globals Globals `json:"globals"`
	}
	decode(t, res.Data, &out)
	assert.Equal(t, Globals{AppTitle: "Cek Harga", AppSubtitle: "Toko Maju", Version: "1.2.0"}, out.Globals)
}

type brokenService struct {
	plu.Service
}

func (brokenService) ResolveByCode(context.Context, string) (*plu.ItemDTO, error) {
	return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, errors.New("Lost connection to MySQL server"), "finding item by code")
}

func TestDataAccessFailureIsGeneric(t *testing.T) {
	schema := newTestSchema(t, brokenService{})

	res := run(t, schema, `{ plu(barcode: "90005010") { id } }`, nil)
	require.NotEmpty(t, res.Errors)
	assert.Equal(t, pkgerrors.MessageRetryLater, res.Errors[0].Message)
	assert.Equal(t, "DEPENDENCY_ERROR", res.Errors[0].Extensions["code"])
}

func TestHandlerServesJSON(t *testing.T) {
	h := NewHandler(newTestSchema(t, nil), false)

	body, err := json.Marshal(map[string]interface{}{"query": `{ plu(barcode: "90005010") { code } }`})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var out struct {
		Data struct {
			Plu struct {
				Code string `json:"code"`
			} `json:"plu"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	assert.Equal(t, "90005010", out.Data.Plu.Code)
}

func TestDateScalarSerialize(t *testing.T) {
	assert.Equal(t, "2026-10-14", DateScalar.Serialize(types.NewDate(plutest.Today)))
	assert.Nil(t, DateScalar.Serialize("not a date"))
	assert.Equal(t, types.NewDate(plutest.Today), DateScalar.ParseValue("2026-10-14"))
}

func TestSelectsIntrospection(t *testing.T) {
	cases := map[string]bool{
		`{ __schema { queryType { name } } }`:                                     true,
		`{ __type(name: "Item") { name } }`:                                       true,
		`{ plu(barcode: "1") { ... on Item { __type(name: "Item") { name } } } }`: true,
		`query Q { ...F } fragment F on Query { __schema { types { name } } }`:    true,
		`{ plu(barcode: "1") { __typename code } }`:                               false,
		`{ globals { appTitle } }`:                                                false,
		`{ not valid`:                                                             false,
		``:                                                                        false,
	}
	for query, want := range cases {
		assert.Equal(t, want, selectsIntrospection(query), query)
	}
}

func TestHandlerRejectsIntrospectionWithoutExplorer(t *testing.T) {
	schema := newTestSchema(t, nil)
	body, err := json.Marshal(map[string]interface{}{"query": `{ __schema { queryType { name } } }`})
	require.NoError(t, err)

	post := func(h http.Handler) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	rec := post(NewHandler(schema, false))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var out struct {
		Data   interface{} `json:"data"`
		Errors []struct {
			Message    string                 `json:"message"`
			Extensions map[string]interface{} `json:"extensions"`
		} `json:"errors"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	assert.Nil(t, out.Data)
	require.Len(t, out.Errors, 1)
	assert.Equal(t, "introspection is disabled", out.Errors[0].Message)
	assert.Equal(t, "VALIDATION_ERROR", out.Errors[0].Extensions["code"])

	rec = post(NewHandler(schema, true))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"Query"`)
}

func TestHandlerRejectsIntrospectionOverGET(t *testing.T) {
	h := NewHandler(newTestSchema(t, nil), false)

	req := httptest.NewRequest(http.MethodGet, "/graphql?query=%7B__type(name:%22Item%22)%7Bname%7D%7D", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
