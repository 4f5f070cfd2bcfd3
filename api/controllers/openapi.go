package controllers

import (
	"net/http"

	"github.com/angelmondragon/plu-backend/api/responses"
	"github.com/angelmondragon/plu-backend/pkg/version"
)

// OpenAPI serves a description of the REST surface. It is mounted in development mode only.
func OpenAPI(title string) http.HandlerFunc {
	doc := openAPIDocument(title)
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, doc)
	}
}

func openAPIDocument(title string) map[string]any {
	if title == "" {
		title = "PLU App"
	}
	str := map[string]any{"type": "string"}
	num := map[string]any{"type": "number"}
	integer := map[string]any{"type": "integer"}
	nullable := func(schema map[string]any) map[string]any {
		out := map[string]any{"nullable": true}
		for k, v := range schema {
			out[k] = v
		}
		return out
	}
	date := map[string]any{"type": "string", "format": "date"}
	errorBody := map[string]any{"$ref": "#/components/schemas/Error"}

	return map[string]any{
		"openapi": "3.0.3",
		"info": map[string]any{
			"title":       title,
			"description": "Price Look Up Web Application",
			"version":     version.Version(),
		},
		"paths": map[string]any{
			"/item": map[string]any{
				"get": map[string]any{
					"summary": "Get item by code or barcode with its bulk and promotion prices",
					"parameters": []any{map[string]any{
						"name":     "code",
						"in":       "query",
						"required": true,
						"schema":   map[string]any{"type": "string", "maxLength": 20},
					}},
					"responses": map[string]any{
						"200": jsonResponse("Item found", map[string]any{"$ref": "#/components/schemas/Plu"}),
						"400": jsonResponse("Invalid code", errorBody),
						"404": jsonResponse("Item not found or inactive", errorBody),
						"503": jsonResponse("Database unavailable", errorBody),
					},
				},
			},
			"/info": map[string]any{
				"get": map[string]any{
					"summary":   "Program identification",
					"responses": map[string]any{"200": jsonResponse("Program name", str)},
				},
			},
		},
		"components": map[string]any{
			"schemas": map[string]any{
				"Item": object(map[string]any{
					"IDItem": integer, "Kode": str, "Nama": nullable(str), "Singkatan": nullable(str),
					"Barcode": nullable(str), "KodePabrik": nullable(str), "JumlahDos": nullable(num),
					"Satuan": nullable(str), "HargaNormal": num, "HargaJual": nullable(num),
				}),
				"BulkPrice": object(map[string]any{
					"IDItemHargaGrosir": integer, "IDItem": integer, "Jumlah": num, "Harga": num,
					"IsDos": map[string]any{"type": "string", "enum": []string{"Ya", "Tidak"}},
				}),
				"PromoPrice": object(map[string]any{
					"IDItemHargaD": integer, "IDItemHargaH": integer, "IDItem": integer, "Kode": str,
					"Nama": str, "TanggalAwal": date, "TanggalAkhir": date, "Keterangan": nullable(str),
					"HargaJual": num, "DiskonPersen": num, "Diskon": num,
				}),
				"Plu": object(map[string]any{
					"item":        map[string]any{"$ref": "#/components/schemas/Item"},
					"hargaGrosir": map[string]any{"type": "array", "items": map[string]any{"$ref": "#/components/schemas/BulkPrice"}},
					"hargaPromo":  map[string]any{"type": "array", "items": map[string]any{"$ref": "#/components/schemas/PromoPrice"}},
				}),
				"Error": object(map[string]any{"detail": str, "code": str}),
			},
		},
	}
}

func object(props map[string]any) map[string]any {
	return map[string]any{"type": "object", "properties": props}
}

func jsonResponse(description string, schema map[string]any) map[string]any {
	return map[string]any{
		"description": description,
		"content": map[string]any{
			"application/json": map[string]any{"schema": schema},
		},
	}
}
