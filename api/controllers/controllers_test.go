package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/plu-backend/internal/plu"
	"github.com/angelmondragon/plu-backend/internal/plu/plutest"
	"github.com/angelmondragon/plu-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/plu-backend/pkg/errors"
	"github.com/angelmondragon/plu-backend/pkg/logger"
	"github.com/angelmondragon/plu-backend/pkg/metrics"
	"github.com/angelmondragon/plu-backend/pkg/types"
	"github.com/angelmondragon/plu-backend/pkg/version"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
}

func newItemHandler(t *testing.T) http.HandlerFunc {
	t.Helper()
	clock := func() time.Time { return plutest.Today.Add(10 * time.Hour) }
	svc, err := plu.NewService(plu.NewRepository(plutest.NewSeededDB(t)), plu.WithClock(clock), plu.WithLocation(time.UTC))
	require.NoError(t, err)
	return ItemLookup(svc, testLogger(), metrics.New(prometheus.NewRegistry()))
}

func get(h http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestItemLookupFound(t *testing.T) {
	rec := get(newItemHandler(t), "/item?code=90005010")
	require.Equal(t, http.StatusOK, rec.Code)

	var body plu.PluResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "90005010", body.Item.Code)
	assert.Empty(t, body.BulkPrices)
	assert.Empty(t, body.PromoPrices)
}

func TestItemLookupEmptyListsAreArrays(t *testing.T) {
	rec := get(newItemHandler(t), "/item?code=90005010")
	require.Equal(t, http.StatusOK, rec.Code)

	var raw map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&raw))
	assert.JSONEq(t, `[]`, string(raw["hargaGrosir"]))
	assert.JSONEq(t, `[]`, string(raw["hargaPromo"]))
}

func TestItemLookupBarcode(t *testing.T) {
	rec := get(newItemHandler(t), "/item?code=8997227891295")
	require.Equal(t, http.StatusOK, rec.Code)

	var body plu.PluResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, plutest.BarcodeItemID, body.Item.ID)
	assert.Len(t, body.BulkPrices, 3)
	require.Len(t, body.PromoPrices, 2)
	assert.Equal(t, "PRM-A", body.PromoPrices[0].Code)
}

func TestItemLookupErrors(t *testing.T) {
	h := newItemHandler(t)

	cases := []struct {
		name   string
		target string
		status int
		code   pkgerrors.Code
		detail string
	}{
		{name: "not found", target: "/item?code=NOOOOO", status: http.StatusNotFound, code: pkgerrors.CodeNotFound,
			detail: "Barang dengan kode/barcode 'NOOOOO' tidak ditemukan"},
		{name: "inactive", target: "/item?code=OLD01", status: http.StatusNotFound, code: pkgerrors.CodeInactive,
			detail: "Barang dengan kode/barcode 'OLD01' tidak aktif"},
		{name: "missing code", target: "/item", status: http.StatusBadRequest, code: pkgerrors.CodeValidation,
			detail: "code is required"},
		{name: "too long", target: "/item?code=123456789012345678901", status: http.StatusBadRequest, code: pkgerrors.CodeValidation,
			detail: "code must be at most 20 characters"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := get(h, tc.target)
			require.Equal(t, tc.status, rec.Code)

			var body types.ErrorBody
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, string(tc.code), body.Code)
			assert.Equal(t, tc.detail, body.Detail)
		})
	}
}

type brokenService struct {
	plu.Service
}

func (brokenService) Lookup(context.Context, string) (*plu.PluResult, error) {
	return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, errors.New("dial tcp: i/o timeout"), "finding item by code")
}

func TestItemLookupGenericizesDataAccessFailure(t *testing.T) {
	rec := get(ItemLookup(brokenService{}, testLogger(), nil), "/item?code=90005010")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body types.ErrorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, pkgerrors.MessageRetryLater, body.Detail)
	assert.NotContains(t, body.Detail, "timeout")
}

func TestInfoAndIndex(t *testing.T) {
	rec := get(Info(), "/info")
	require.Equal(t, http.StatusOK, rec.Code)
	var name string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&name))
	assert.Equal(t, version.ProgramName(), name)

	rec = get(Index(""), "/")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&name))
	assert.Equal(t, version.ProgramName(), name)
}

func TestIndexServesBundle(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>cek harga</html>"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "assets"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "assets", "app.js"), []byte("console.log(1)"), 0o644))

	rec := get(Index(dir), "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "cek harga")

	rec = get(Static(dir), "/assets/app.js")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "console.log(1)", rec.Body.String())

	rec = get(Static(filepath.Join(dir, "missing")), "/assets/app.js")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(context.Context) error {
	return s.err
}

func TestHealth(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "test"}}

	rec := get(HealthLive(cfg), "/health/live")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "test", rec.Header().Get("X-PLU-Env"))

	rec = get(HealthReady(cfg, testLogger(), stubPinger{}), "/health/ready")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = get(HealthReady(cfg, testLogger(), stubPinger{err: errors.New("refused")}), "/health/ready")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestOpenAPIDescribesItemRoute(t *testing.T) {
	rec := get(OpenAPI("Cek Harga"), "/openapi.json")
	require.Equal(t, http.StatusOK, rec.Code)

	var doc map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&doc))
	paths := doc["paths"].(map[string]any)
	assert.Contains(t, paths, "/item")
	assert.Equal(t, "Cek Harga", doc["info"].(map[string]any)["title"])
}
